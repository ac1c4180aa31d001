package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"lamb/internal/diag"
	"lamb/internal/diagfmt"
	"lamb/internal/driver"
	"lamb/internal/source"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [flags] file.lc|dir",
		Short: "Report every diagnostic of a file or of all *.lc files under a directory",
		Args:  cobra.ExactArgs(1),
		RunE:  runCheck,
	}
	cmd.Flags().String("format", "pretty", "diagnostics format (pretty|json|short)")
	cmd.Flags().Int("jobs", 0, "files checked in parallel (0 = GOMAXPROCS)")
	cmd.Flags().String("ui", "auto", "show directory progress (auto|on|off)")
	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	maxDiag, err := maxDiagnostics(cmd)
	if err != nil {
		return err
	}
	path := args[0]
	st, err := os.Stat(path)
	if err != nil {
		return err
	}
	if st.IsDir() {
		return runCheckDir(cmd, path, format, maxDiag)
	}

	res, err := driver.Check(cmd.Context(), path, maxDiag)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}
	if err := printDiagnostics(cmd, cmd.OutOrStdout(), res.Bag, res.FileSet, format); err != nil {
		return err
	}
	printTimings(cmd, cmd.ErrOrStderr(), res.Timing)
	if res.Bag.HasErrors() {
		return errDiagnostics
	}
	return nil
}

type fileDiagnostics struct {
	Path string                    `json:"path"`
	Diag diagfmt.DiagnosticsOutput `json:"diagnostics"`
}

func runCheckDir(cmd *cobra.Command, dir, format string, maxDiag int) error {
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}

	files, err := driver.ListSourceFiles(dir)
	if err != nil {
		return err
	}
	var results []driver.CheckDirResult
	if format == "pretty" && len(files) > 0 && shouldUseTUI(mode, cmd.InOrStdin(), cmd.OutOrStdout()) {
		results, err = runCheckWithUI(cmd.Context(), "check "+dir, files, maxDiag, jobs, cmd.OutOrStdout())
	} else {
		results, err = driver.CheckFiles(cmd.Context(), files, maxDiag, jobs, nil)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	failed := false
	total := diag.NewBag(0)
	var outputs []fileDiagnostics
	for _, r := range results {
		failed = failed || r.Bag.HasErrors()
		total.Merge(r.Bag)
		fs := fileSetOf(r)
		switch format {
		case "json":
			outputs = append(outputs, fileDiagnostics{
				Path: r.Path,
				Diag: diagfmt.BuildDiagnosticsOutput(r.Bag, fs, diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: true}),
			})
		case "pretty":
			if r.Bag.Len() == 0 {
				continue
			}
			opts := diagfmt.PrettyOpts{Color: useColor(cmd, out), ShowNotes: true}
			if err := diagfmt.Pretty(out, r.Bag, fs, opts); err != nil {
				return err
			}
		default:
			if err := printDiagnostics(cmd, out, r.Bag, fs, format); err != nil {
				return err
			}
		}
		if r.Result != nil {
			printTimings(cmd, cmd.ErrOrStderr(), r.Result.Timing)
		}
	}

	switch format {
	case "json":
		if err := writeJSON(out, outputs); err != nil {
			return err
		}
	case "pretty":
		fmt.Fprintf(out, "checked %d files\n", len(results))
		if err := diagfmt.Summary(out, total); err != nil {
			return err
		}
	}
	if failed {
		return errDiagnostics
	}
	return nil
}

func fileSetOf(r driver.CheckDirResult) *source.FileSet {
	if r.Result == nil {
		return nil
	}
	return r.Result.FileSet
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
