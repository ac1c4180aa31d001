package driver

import (
	"context"
	"fmt"

	"lamb/internal/diag"
	"lamb/internal/elab"
	"lamb/internal/observ"
	"lamb/internal/source"
	"lamb/internal/trace"
)

// CheckResult is a parsed and elaborated module.
type CheckResult struct {
	*ParseResult
	Elab   *elab.Module
	Timing *observ.Report
}

// Check loads, parses and elaborates path.
func Check(ctx context.Context, path string, maxDiagnostics int) (*CheckResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return CheckFile(ctx, fs, fs.Get(fileID), maxDiagnostics)
}

// CheckFile runs every diagnostic phase over file. Diagnostics are sorted.
func CheckFile(ctx context.Context, fs *source.FileSet, file *source.File, maxDiagnostics int) (*CheckResult, error) {
	ctx, span := trace.BeginCtx(ctx, trace.ScopeFile, "file:"+file.Path)
	defer span.End("")

	timer := observ.NewTimer()
	pr, err := ParseFile(ctx, fs, file, maxDiagnostics, timer)
	if err != nil {
		return nil, err
	}

	_, espan := trace.BeginCtx(ctx, trace.ScopePass, "elaborate")
	done := timer.Track("elaborate")
	r := diag.NewDedupReporter(diag.BagReporter{Bag: pr.Bag})
	for u := range pr.Module.Uses() {
		path := "another module"
		if u.Filepath != nil {
			path = fmt.Sprintf("%q", u.Filepath.Path)
		}
		diag.ReportWarning(r, diag.SemImportNotLoaded, u.Span,
			fmt.Sprintf("imports from %s are not loaded; imported aliases stay unresolved", path)).Emit()
	}
	m := elab.ElaborateModule(pr.Module, r)
	done(fmt.Sprintf("%d defs", len(m.Defs)))
	espan.WithExtra("defs", itoa(len(m.Defs))).End("")

	pr.Bag.Sort()
	report := timer.Report()
	return &CheckResult{ParseResult: pr, Elab: m, Timing: &report}, nil
}
