package driver

import (
	"context"

	"fortio.org/safecast"

	"lamb/internal/ast"
	"lamb/internal/cst"
	"lamb/internal/diag"
	"lamb/internal/observ"
	"lamb/internal/parser"
	"lamb/internal/source"
	"lamb/internal/trace"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tree    *cst.Inner
	Module  *ast.Module
	Bag     *diag.Bag
}

// Parse loads path and parses it as a module.
func Parse(ctx context.Context, path string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return ParseFile(ctx, fs, fs.Get(fileID), maxDiagnostics, nil)
}

// ParseSource parses src as a module named name.
func ParseSource(ctx context.Context, name string, src []byte, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	return ParseFile(ctx, fs, fs.Get(fs.AddVirtual(name, src)), maxDiagnostics, nil)
}

// ParseFile parses file and extracts its AST. Phases are recorded in timer
// when it is non-nil.
func ParseFile(ctx context.Context, fs *source.FileSet, file *source.File, maxDiagnostics int, timer *observ.Timer) (*ParseResult, error) {
	maxErrors, err := safecast.Conv[uint](max(maxDiagnostics, 0))
	if err != nil {
		return nil, err
	}
	bag := diag.NewBag(maxDiagnostics)

	_, span := trace.BeginCtx(ctx, trace.ScopePass, "lex+parse")
	done := timer.Track("lex+parse")
	res := parser.ParseModule(file, parser.Options{
		Reporter:  diag.BagReporter{Bag: bag},
		MaxErrors: maxErrors,
	})
	done("")
	span.WithExtra("errors", itoa(res.Errors)).End("")

	_, span = trace.BeginCtx(ctx, trace.ScopePass, "extract")
	done = timer.Track("extract")
	module := ast.FromModule(res.Tree)
	done("")
	span.End("")

	return &ParseResult{FileSet: fs, File: file, Tree: res.Tree, Module: module, Bag: bag}, nil
}
