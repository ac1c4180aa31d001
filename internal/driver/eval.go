package driver

import (
	"context"
	"errors"
	"fmt"

	"lamb/internal/core"
	"lamb/internal/diag"
	"lamb/internal/nbe"
	"lamb/internal/source"
	"lamb/internal/trace"
)

// Normalizer normalizes closed core terms with a step budget and an
// optional disk cache of earlier results.
type Normalizer struct {
	Limits nbe.Limits
	Cache  *DiskCache
}

// Normalize returns the normal form of t. Cache problems degrade to misses.
func (n *Normalizer) Normalize(ctx context.Context, t core.Term) (out core.Term, steps int, cached bool, err error) {
	key, keyErr := Key(t)
	if keyErr == nil && n.Cache != nil {
		if out, steps, ok, err := n.Cache.Get(key); err == nil && ok {
			return out, steps, true, nil
		} else if err != nil {
			trace.Point(trace.FromContext(ctx), trace.ScopeDef, "cache", "read failed: "+err.Error(), trace.CurrentSpan(ctx))
		}
	}

	m := nbe.NewMachine(n.Limits)
	out, err = m.NormalizeContext(ctx, t)
	if err != nil {
		return nil, m.Steps(), false, err
	}
	if keyErr == nil && n.Cache != nil {
		if err := n.Cache.Put(key, out, m.Steps()); err != nil {
			trace.Point(trace.FromContext(ctx), trace.ScopeDef, "cache", "write failed: "+err.Error(), trace.CurrentSpan(ctx))
		}
	}
	return out, m.Steps(), false, nil
}

type EvalOptions struct {
	MaxDiagnostics int
	MaxSteps       int
	Cache          *DiskCache
	// Defs names the definitions to normalize; empty means all of them.
	Defs []string
}

// DefResult is the outcome of normalizing one definition. Normal is nil
// when the definition did not elaborate or normalization stopped.
type DefResult struct {
	Name   string
	Span   source.Span
	Normal core.Term
	Steps  int
	Cached bool
	Err    error
}

type EvalResult struct {
	*CheckResult
	Defs []DefResult
}

// Eval checks path and normalizes its definitions.
func Eval(ctx context.Context, path string, opts EvalOptions) (*EvalResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return EvalFile(ctx, fs, fs.Get(fileID), opts)
}

// EvalFile checks file and normalizes the requested definitions in source
// order. A definition that exceeds the step budget gets an EVL4001
// diagnostic; a cancelled context aborts the whole run.
func EvalFile(ctx context.Context, fs *source.FileSet, file *source.File, opts EvalOptions) (*EvalResult, error) {
	cr, err := CheckFile(ctx, fs, file, opts.MaxDiagnostics)
	if err != nil {
		return nil, err
	}
	for _, name := range opts.Defs {
		if _, ok := cr.Elab.Lookup(name); !ok {
			return nil, fmt.Errorf("%s: no definition named %q", file.Path, name)
		}
	}
	want := make(map[string]bool, len(opts.Defs))
	for _, name := range opts.Defs {
		want[name] = true
	}

	ctx, span := trace.BeginCtx(ctx, trace.ScopePass, "normalize")
	defer span.End("")

	n := &Normalizer{Limits: opts.Limits(), Cache: opts.Cache}
	r := diag.BagReporter{Bag: cr.Bag}
	res := &EvalResult{CheckResult: cr}
	for _, d := range cr.Elab.Defs {
		if !d.Bound || (len(want) > 0 && !want[d.Name]) {
			continue
		}
		dr := DefResult{Name: d.Name, Span: d.NameSpan}
		if d.Core != nil {
			dctx, dspan := trace.BeginCtx(ctx, trace.ScopeDef, "def:"+d.Name)
			dr.Normal, dr.Steps, dr.Cached, dr.Err = n.Normalize(dctx, d.Core)
			dspan.WithExtra("steps", itoa(dr.Steps)).End("")
		}
		switch {
		case errors.Is(dr.Err, nbe.ErrStepLimit):
			diag.ReportError(r, diag.EvalStepLimit, d.NameSpan,
				fmt.Sprintf("normalizing '%s' took more than %d steps", d.Name, opts.MaxSteps)).Emit()
		case dr.Err != nil:
			return nil, fmt.Errorf("normalize %s: %w", d.Name, dr.Err)
		}
		res.Defs = append(res.Defs, dr)
	}
	cr.Bag.Sort()
	return res, nil
}

// Limits returns the machine limits opts describes.
func (opts EvalOptions) Limits() nbe.Limits {
	return nbe.Limits{MaxSteps: opts.MaxSteps}
}
