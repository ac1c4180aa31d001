package fuzztests

import (
	"context"
	"testing"
	"time"

	"lamb/internal/ast"
	"lamb/internal/diag"
	"lamb/internal/elab"
	"lamb/internal/nbe"
	"lamb/internal/parser"
	"lamb/internal/source"
	"lamb/internal/testkit"
)

// pipelineTimeout bounds a single input; going over it means a hang.
const pipelineTimeout = 5 * time.Second

// FuzzParseModule runs the whole module pipeline and checks the structural
// invariants of its output.
func FuzzParseModule(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.lc", input))

		bag := diag.NewBag(128)
		res := parser.ParseModule(file, parser.Options{Reporter: diag.BagReporter{Bag: bag}, MaxErrors: 128})
		if err := testkit.CheckTree(res.Tree, file); err != nil {
			t.Fatalf("tree invariant: %v\ninput: %q", err, truncateForLog(input, 200))
		}
		if res.Errors == 0 && bag.HasErrors() {
			t.Fatalf("diagnostics reported but no errors counted")
		}

		mod := ast.FromModule(res.Tree)
		if err := testkit.CheckModuleSpans(mod); err != nil {
			t.Fatalf("span invariant: %v\ninput: %q", err, truncateForLog(input, 200))
		}
		elab.ElaborateModule(mod, diag.BagReporter{Bag: bag})
	})
}

// FuzzReplInputNoHang feeds the REPL grammar and normalizes whatever
// elaborates, with a step limit.
func FuzzReplInputNoHang(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		ctx, cancel := context.WithTimeout(context.Background(), pipelineTimeout)
		defer cancel()

		done := make(chan struct{})
		go func() {
			defer close(done)
			fs := source.NewFileSet()
			file := fs.Get(fs.AddVirtual("fuzz.lc", input))
			r := diag.NopReporter{}

			tree := parser.ParseReplInput(file, parser.Options{Reporter: r}).Tree
			in := ast.FromReplInput(tree)
			if in == nil || in.Term == nil {
				return
			}
			res := elab.Elaborate(in.Term, r)
			if res.Core == nil {
				return
			}
			m := nbe.NewMachine(nbe.Limits{MaxSteps: 10_000})
			_, _ = m.NormalizeContext(ctx, res.Core)
		}()

		select {
		case <-done:
		case <-ctx.Done():
			t.Fatalf("pipeline hang: more than %v\ninput (%d bytes): %q",
				pipelineTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], "..."...)
}
