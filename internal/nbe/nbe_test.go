package nbe_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"lamb/internal/ast"
	"lamb/internal/core"
	"lamb/internal/diag"
	"lamb/internal/elab"
	"lamb/internal/nbe"
	"lamb/internal/parser"
	"lamb/internal/source"
)

func idx(i int) core.Term { return core.NewIndex(i) }

func abs(name string, body core.Term) core.Term { return core.NewAbs(name, body) }

func app(fn core.Term, args ...core.Term) core.Term { return core.Apps(fn, args...) }

var (
	id    = abs("x", idx(0))
	k     = abs("x", abs("y", idx(1)))
	omega = app(abs("x", app(idx(0), idx(0))), abs("x", app(idx(0), idx(0))))
)

// elaborate returns the named definition of src resolved against the rest.
func elaborate(t *testing.T, src, name string) core.Term {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.lc", []byte(src)))
	bag := diag.NewBag(0)
	r := diag.BagReporter{Bag: bag}
	tree := parser.ParseModule(file, parser.Options{Reporter: r}).Tree
	m := elab.ElaborateModule(ast.FromModule(tree), r)
	require.Zero(t, bag.Len(), "diagnostics: %v", bag.Items())
	d, ok := m.Lookup(name)
	require.True(t, ok, name)
	require.NotNil(t, d.Core, name)
	return d.Core
}

func TestNormalizeK(t *testing.T) {
	got := nbe.Normalize(k)
	require.True(t, core.Equal(abs("a", abs("b", idx(1))), got), "got %v", got)
	require.Equal(t, "x => y => x", got.String())
}

func TestNormalizeBeta(t *testing.T) {
	tests := []struct {
		name string
		in   core.Term
		want core.Term
	}{
		{"id id", app(id, id), id},
		{"k id id", app(k, id, id), id},
		{"under binder", abs("z", app(id, idx(0))), abs("z", idx(0))},
		{"stuck spine", abs("f", app(idx(0), app(id, idx(0)), idx(0))), abs("f", app(idx(0), idx(0), idx(0)))},
		{"discarded omega", app(k, id, omega), id},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := nbe.Normalize(tt.in)
			require.True(t, core.Equal(tt.want, got), "got %v, want %v", got, tt.want)
		})
	}
}

func TestNormalizeChurchArithmetic(t *testing.T) {
	src := `
Two = (s, z) => s (s z);
Plus = (m, n) => (s, z) => m s (n s z);
Mult = (m, n) => m (Plus n) (s => z => z);
Four = Plus Two Two;
AlsoFour = Mult Two Two;
`
	four := abs("s", abs("z", app(idx(1), app(idx(1), app(idx(1), app(idx(1), idx(0)))))))
	for _, name := range []string{"Four", "AlsoFour"} {
		got := nbe.Normalize(elaborate(t, src, name))
		require.True(t, core.Equal(four, got), "%s = %v", name, got)
		require.Equal(t, "s => z => (s (s (s (s z))))", got.String())
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	terms := []core.Term{
		k,
		app(k, id),
		abs("f", app(idx(0), app(id, idx(0)))),
		app(abs("x", abs("y", app(idx(1), idx(0)))), abs("y", idx(0))),
	}
	for _, tm := range terms {
		once := nbe.Normalize(tm)
		twice := nbe.Normalize(once)
		require.True(t, core.Equal(once, twice), "%v normalized to %v then %v", tm, once, twice)
	}
}

func TestQuoteFreshensCapturedNames(t *testing.T) {
	// y => (x => y => x) y
	tm := abs("y", app(abs("x", abs("y", idx(1))), idx(0)))
	got := nbe.Normalize(tm)
	require.True(t, core.Equal(abs("a", abs("b", idx(1))), got), "got %v", got)
	require.Equal(t, "y", got.(*core.Abs).Name)
	require.Equal(t, "y'", got.(*core.Abs).Body.(*core.Abs).Name)
	require.Equal(t, "y => y' => y", got.String())
}

func TestQuoteAcrossCaptureDepths(t *testing.T) {
	// Closures captured at depth 1 and quoted at depth 3 still point at the
	// right binder.
	// a => (f => b => c => f c) (x => a x)
	tm := abs("a", app(
		abs("f", abs("b", abs("c", app(idx(2), idx(0))))),
		abs("x", app(idx(1), idx(0))),
	))
	want := abs("a", abs("b", abs("c", app(idx(2), idx(0)))))
	got := nbe.Normalize(tm)
	require.True(t, core.Equal(want, got), "got %v", got)
}

func TestOmegaHitsStepLimit(t *testing.T) {
	m := nbe.NewMachine(nbe.Limits{MaxSteps: 10_000})
	out, err := m.NormalizeContext(context.Background(), omega)
	require.ErrorIs(t, err, nbe.ErrStepLimit)
	require.Nil(t, out)
	require.Equal(t, 10_001, m.Steps())

	// The machine is reusable after an abort.
	out, err = m.NormalizeContext(context.Background(), app(id, id))
	require.NoError(t, err)
	require.True(t, core.Equal(id, out))
}

func TestNormalizeContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := nbe.NewMachine(nbe.Limits{})
	_, err := m.NormalizeContext(ctx, omega)
	require.True(t, errors.Is(err, context.Canceled), "err = %v", err)
}

func TestNormalizeContextRejectsOpenTerms(t *testing.T) {
	_, err := nbe.NewMachine(nbe.Limits{}).NormalizeContext(context.Background(), abs("x", idx(1)))
	require.ErrorIs(t, err, nbe.ErrOpenTerm)
}

func TestThunkForcedOnce(t *testing.T) {
	m := nbe.NewMachine(nbe.Limits{})
	th := nbe.Delay(app(id, id), nil)
	require.False(t, th.Forced())

	v1 := m.Force(th)
	require.True(t, th.Forced())
	require.IsType(t, &nbe.Closure{}, v1)
	v2 := m.Force(th)
	require.Same(t, v1, v2)
}

func TestSharedOperandIsEvaluatedOnce(t *testing.T) {
	// (x => p => p x x) ((x => x) (x => x)): one step to enter x and one to
	// force the shared operand. Going under a binder while quoting is free.
	tm := app(abs("x", abs("p", app(idx(0), idx(1), idx(1)))), app(id, id))
	m := nbe.NewMachine(nbe.Limits{})
	got, err := m.NormalizeContext(context.Background(), tm)
	require.NoError(t, err)
	require.True(t, core.Equal(abs("p", app(idx(0), id, id)), got), "got %v", got)
	require.Equal(t, 2, m.Steps())
}

func TestEvalApplyQuote(t *testing.T) {
	v := nbe.Apply(nbe.Eval(k, nil), nbe.Eval(id, nil))
	require.IsType(t, &nbe.Closure{}, v)
	got := nbe.Quote(v)
	require.True(t, core.Equal(abs("y", id), got), "got %v", got)

	stuck := nbe.Apply(nbe.Placeholder(0), nbe.Eval(id, nil))
	require.IsType(t, &nbe.Stuck{}, stuck)
}
