package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lamb/internal/driver"
	"lamb/internal/histstore"
	"lamb/internal/ui"
)

func newReplCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl [flags] [file.lc]",
		Short: "Define aliases and normalize terms interactively",
		Long: `Repl reads one definition (Name = term;) or one term per line. The
definitions of file.lc, if given, are loaded first. When stdin is not a
terminal the lines are read without the interactive UI.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runRepl,
	}
	cmd.Flags().Int("max-steps", defaultMaxSteps, "step budget per input (0 = unlimited)")
	cmd.Flags().Bool("no-cache", false, "do not read or write the normal-form cache")
	cmd.Flags().String("history", "", "history database (default $XDG_STATE_HOME/lamb/history.db)")
	cmd.Flags().Bool("no-history", false, "do not record input history")
	cmd.Flags().String("ui", "auto", "interactive UI (auto|on|off)")
	return cmd
}

func runRepl(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	maxSteps, err := flags.GetInt("max-steps")
	if err != nil {
		return fmt.Errorf("failed to get max-steps flag: %w", err)
	}
	maxDiag, err := maxDiagnostics(cmd)
	if err != nil {
		return err
	}
	uiValue, _ := flags.GetString("ui")
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	cache, err := openCache(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	in, out := cmd.InOrStdin(), cmd.OutOrStdout()
	interactive := shouldUseTUI(mode, in, out)
	r := &ui.Repl{
		Session: driver.NewSession(driver.SessionOptions{MaxDiagnostics: maxDiag, MaxSteps: maxSteps, Cache: cache}),
		Color:   useColor(cmd, out),
	}

	if interactive {
		store, err := openHistory(cmd)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "lamb: history disabled: %v\n", err)
		} else if store != nil {
			defer store.Close()
			r.History = store
		}
	}

	if len(args) == 1 {
		res, err := r.Execute(ctx, ":load "+args[0])
		if err != nil {
			return err
		}
		fmt.Fprint(out, res.Text)
	}

	if interactive {
		return ui.RunInteractive(ctx, r, in, out)
	}
	f, isFile := out.(*os.File)
	return ui.RunPlain(ctx, r, in, out, isFile && isTerminal(f))
}

func openHistory(cmd *cobra.Command) (*histstore.Store, error) {
	if off, _ := cmd.Flags().GetBool("no-history"); off {
		return nil, nil
	}
	path, _ := cmd.Flags().GetString("history")
	if path == "" {
		var err error
		if path, err = histstore.DefaultPath(); err != nil {
			return nil, err
		}
	}
	return histstore.Open(path)
}
