package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"lamb/internal/trace"
	"lamb/internal/version"
)

// errDiagnostics makes the process exit with status 1 after the
// diagnostics were already printed.
var errDiagnostics = errors.New("errors reported")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "lamb",
		Short:         "Front end and evaluator for a small lambda calculus",
		Long:          `lamb parses, checks and normalizes lambda calculus modules (*.lc)`,
		Version:       version.Version(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := applyConfig(cmd); err != nil {
				return err
			}
			if err := startProfiling(cmd); err != nil {
				return err
			}
			return setupTracing(cmd)
		},
	}

	root.AddCommand(newTokenizeCmd())
	root.AddCommand(newParseCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newEvalCmd())
	root.AddCommand(newReplCmd())
	root.AddCommand(newVersionCmd())

	// Глобальные флаги
	pf := root.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	pf.String("config", "", "path to lamb.toml (default: search upwards from the working directory)")
	pf.String("trace", "", "trace output file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	pf.String("cpu-profile", "", "write a CPU profile to this file")
	pf.String("mem-profile", "", "write a heap profile to this file on exit")
	pf.String("exec-trace", "", "write a runtime execution trace to this file")
	return root
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			dumpTraceRing(os.Stderr)
			panic(r)
		}
	}()
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes one command line and returns the exit status.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if cerr := closeTracing(root); cerr != nil && err == nil {
		err = cerr
	}
	if perr := stopProfiling(); perr != nil && err == nil {
		err = perr
	}
	if err != nil {
		if !errors.Is(err, errDiagnostics) {
			fmt.Fprintf(stderr, "lamb: %v\n", err)
		}
		return 1
	}
	return 0
}

// dumpTraceRing writes the in-memory trace, if there is one, so a crash
// report shows what the pipeline was doing.
func dumpTraceRing(f *os.File) {
	if activeTracer == nil {
		return
	}
	if ring, ok := trace.Ring(activeTracer); ok {
		fmt.Fprintln(f, "--- trace (most recent last) ---")
		_ = ring.Dump(f, trace.FormatText)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // fd fits in int
}
