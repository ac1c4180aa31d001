package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"lamb/internal/version"
)

type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show lamb build metadata",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, _ := cmd.Flags().GetString("format")
			switch strings.ToLower(format) {
			case "pretty":
				// version.Full красит через глобальный флаг fatih/color
				color.NoColor = !useColor(cmd, cmd.OutOrStdout())
				fmt.Fprintln(cmd.OutOrStdout(), version.Full())
				return nil
			case "json":
				return renderVersionJSON(cmd.OutOrStdout())
			}
			return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
		},
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func renderVersionJSON(out io.Writer) error {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()
	return writeJSON(out, versionPayload{
		Tool:      "lamb",
		Version:   version.Version(),
		GitCommit: version.GitCommit,
		BuildDate: version.BuildDate,
	})
}
