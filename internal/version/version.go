// Package version carries build metadata for the lamb CLI. The variables
// can be overridden with -ldflags "-X lamb/internal/version.GitCommit=...".
package version

import (
	"strings"

	"github.com/fatih/color"
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)

	Major = "0"
	Minor = "1"
	Patch = "0"
	Pre   = "dev"

	// GitCommit is an optional commit hash.
	GitCommit = ""
	// BuildDate is an optional ISO-8601 build date.
	BuildDate = ""
)

// Version returns "major.minor.patch[-pre]", colored when color output is
// enabled.
func Version() string {
	v := majorColor.Sprint(Major) + "." + minorColor.Sprint(Minor) + "." + patchColor.Sprint(Patch)
	if Pre != "" {
		v += "-" + Pre
	}
	return v
}

// Full returns the version followed by whatever build metadata is set.
func Full() string {
	parts := []string{"lamb " + Version()}
	if GitCommit != "" {
		parts = append(parts, "commit "+GitCommit)
	}
	if BuildDate != "" {
		parts = append(parts, "built "+BuildDate)
	}
	return strings.Join(parts, ", ")
}
