package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"lamb/internal/driver"
)

func newEvalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval [flags] file.lc",
		Short: "Normalize the definitions of a module",
		Long: `Eval checks a module and prints the normal form of every definition
(or of those named with --def). Normal forms are cached on disk, keyed by
the definition's core term.`,
		Args: cobra.ExactArgs(1),
		RunE: runEval,
	}
	cmd.Flags().StringSlice("def", nil, "normalize only these definitions")
	cmd.Flags().Int("max-steps", defaultMaxSteps, "step budget per definition (0 = unlimited)")
	cmd.Flags().Bool("no-cache", false, "do not read or write the normal-form cache")
	cmd.Flags().Bool("clear-cache", false, "drop the normal-form cache before evaluating")
	cmd.Flags().Bool("steps", false, "print the step count of every definition")
	return cmd
}

func runEval(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	defs, err := flags.GetStringSlice("def")
	if err != nil {
		return fmt.Errorf("failed to get def flag: %w", err)
	}
	maxSteps, err := flags.GetInt("max-steps")
	if err != nil {
		return fmt.Errorf("failed to get max-steps flag: %w", err)
	}
	showSteps, _ := flags.GetBool("steps")
	maxDiag, err := maxDiagnostics(cmd)
	if err != nil {
		return err
	}
	cache, err := openCache(cmd)
	if err != nil {
		return err
	}

	res, err := driver.Eval(cmd.Context(), args[0], driver.EvalOptions{
		MaxDiagnostics: maxDiag,
		MaxSteps:       maxSteps,
		Cache:          cache,
		Defs:           defs,
	})
	if err != nil {
		return err
	}
	if err := printDiagnostics(cmd, cmd.ErrOrStderr(), res.Bag, res.FileSet, "pretty"); err != nil {
		return err
	}
	writeNormalForms(cmd.OutOrStdout(), res.Defs, showSteps)
	printTimings(cmd, cmd.ErrOrStderr(), res.Timing)
	if res.Bag.HasErrors() {
		return errDiagnostics
	}
	return nil
}

// openCache returns the disk cache unless --no-cache is set. A cache that
// cannot be opened only costs speed, so it is reported and skipped.
func openCache(cmd *cobra.Command) (*driver.DiskCache, error) {
	off, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return nil, fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	if off {
		return nil, nil
	}
	cache, err := driver.OpenDiskCache("lamb")
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "lamb: cache disabled: %v\n", err)
		return nil, nil
	}
	if drop, _ := cmd.Flags().GetBool("clear-cache"); drop {
		if err := cache.DropAll(); err != nil {
			return nil, fmt.Errorf("clear cache: %w", err)
		}
	}
	return cache, nil
}

func writeNormalForms(w io.Writer, defs []driver.DefResult, showSteps bool) {
	for _, d := range defs {
		if d.Normal == nil {
			continue
		}
		fmt.Fprintf(w, "%s = %s", d.Name, d.Normal)
		if showSteps {
			fmt.Fprintf(w, "  (%d steps", d.Steps)
			if d.Cached {
				fmt.Fprint(w, ", cached")
			}
			fmt.Fprint(w, ")")
		}
		fmt.Fprintln(w)
	}
}
