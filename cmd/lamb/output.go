package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"lamb/internal/diag"
	"lamb/internal/diagfmt"
	"lamb/internal/observ"
	"lamb/internal/source"
)

type colorMode string

const (
	colorAuto colorMode = "auto"
	colorOn   colorMode = "on"
	colorOff  colorMode = "off"
)

func readColorMode(value string) (colorMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return colorAuto, nil
	case "on":
		return colorOn, nil
	case "off":
		return colorOff, nil
	default:
		return "", fmt.Errorf("invalid color value %q (expected auto|on|off)", value)
	}
}

// useColor reports whether output to w should be colored.
func useColor(cmd *cobra.Command, w io.Writer) bool {
	value, _ := cmd.Flags().GetString("color")
	mode, err := readColorMode(value)
	if err != nil {
		return false
	}
	switch mode {
	case colorOn:
		return true
	case colorOff:
		return false
	}
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}

func maxDiagnostics(cmd *cobra.Command) (int, error) {
	n, err := cmd.Flags().GetInt("max-diagnostics")
	if err != nil {
		return 0, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	return n, nil
}

// printDiagnostics renders bag in the given format (pretty|json|short).
func printDiagnostics(cmd *cobra.Command, w io.Writer, bag *diag.Bag, fs *source.FileSet, format string) error {
	switch format {
	case "pretty", "":
		if bag.Len() == 0 {
			return nil
		}
		opts := diagfmt.PrettyOpts{Color: useColor(cmd, w), ShowNotes: true}
		if err := diagfmt.Pretty(w, bag, fs, opts); err != nil {
			return err
		}
		return diagfmt.Summary(w, bag)
	case "json":
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: true})
	case "short":
		_, err := io.WriteString(w, diag.FormatShort(bag.Items(), fs, true))
		return err
	}
	return fmt.Errorf("unknown diagnostics format %q (expected pretty|json|short)", format)
}

func printTimings(cmd *cobra.Command, w io.Writer, report *observ.Report) {
	on, _ := cmd.Flags().GetBool("timings")
	if !on || report == nil {
		return
	}
	for _, p := range report.Phases {
		fmt.Fprintf(w, "%-10s %8.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			fmt.Fprintf(w, "  (%s)", p.Note)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "%-10s %8.2f ms\n", "total", report.TotalMS)
}
