package driver

import (
	"context"
	"errors"
	"fmt"

	"fortio.org/safecast"

	"lamb/internal/ast"
	"lamb/internal/core"
	"lamb/internal/diag"
	"lamb/internal/elab"
	"lamb/internal/lexer"
	"lamb/internal/nbe"
	"lamb/internal/parser"
	"lamb/internal/source"
	"lamb/internal/token"
	"lamb/internal/trace"
)

type ReplyKind uint8

const (
	ReplyEmpty   ReplyKind = iota // whitespace and comments only
	ReplyDefined                  // an alias was (re)bound
	ReplyNormal                   // a term was normalized
	ReplyFailed                   // diagnostics only
)

// Reply is the answer to one REPL input.
type Reply struct {
	Kind ReplyKind
	// Name is the alias bound by ReplyDefined.
	Name string
	// Redefined is set when Name replaced an earlier binding.
	Redefined bool
	// Normal is the normal form for ReplyNormal.
	Normal core.Term
	Steps  int
	Cached bool
	// Deps lists the aliases the input referenced.
	Deps        []string
	Diagnostics []diag.Diagnostic
	File        *source.File
}

type SessionOptions struct {
	MaxDiagnostics int
	MaxSteps       int
	Cache          *DiskCache
}

// Session keeps the aliases defined across REPL inputs. It is not safe for
// concurrent use.
type Session struct {
	FileSet *source.FileSet
	env     *elab.Env
	norm    *Normalizer
	maxDiag int
	inputs  int
}

func NewSession(opts SessionOptions) *Session {
	return &Session{
		FileSet: source.NewFileSet(),
		env:     elab.NewEnv(),
		norm:    &Normalizer{Limits: nbe.Limits{MaxSteps: opts.MaxSteps}, Cache: opts.Cache},
		maxDiag: opts.MaxDiagnostics,
	}
}

// Aliases returns the names bound so far, sorted.
func (s *Session) Aliases() []string { return s.env.Names() }

// Lookup returns the core term bound to name.
func (s *Session) Lookup(name string) (core.Term, bool) {
	b, ok := s.env.Lookup(name)
	if !ok || b.Term == nil {
		return nil, false
	}
	return b.Term, true
}

// Submit handles one line: a definition binds an alias, a term is
// normalized. Errors are reserved for cancellation; everything the user got
// wrong comes back as diagnostics.
func (s *Session) Submit(ctx context.Context, line string) (Reply, error) {
	s.inputs++
	file := s.FileSet.Get(s.FileSet.AddVirtual(fmt.Sprintf("<repl:%d>", s.inputs), []byte(line)))
	bag := diag.NewBag(s.maxDiag)
	r := diag.NewDedupReporter(diag.BagReporter{Bag: bag})

	ctx, span := trace.BeginCtx(ctx, trace.ScopePass, "repl-input")
	defer span.End("")

	if blank(file) {
		return Reply{Kind: ReplyEmpty, File: file}, nil
	}
	maxErrors, err := safecast.Conv[uint](max(s.maxDiag, 0))
	if err != nil {
		return Reply{}, err
	}
	tree := parser.ParseReplInput(file, parser.Options{Reporter: r, MaxErrors: maxErrors}).Tree
	in := ast.FromReplInput(tree)

	reply := Reply{Kind: ReplyFailed, File: file}
	switch {
	case in != nil && in.Def != nil:
		s.define(in.Def, r, bag, &reply)
	case in != nil && in.Term != nil:
		if err := s.normalize(ctx, in.Term, r, bag, &reply); err != nil {
			return Reply{}, err
		}
	}
	bag.Sort()
	reply.Diagnostics = bag.Items()
	return reply, nil
}

// blank reports whether file holds nothing but whitespace and comments.
func blank(file *source.File) bool {
	lx := lexer.New(file)
	for {
		tok := lx.Pop()
		if tok.Kind == token.EOF {
			return true
		}
		if !tok.IsTrivia() {
			return false
		}
	}
}

func (s *Session) define(def *ast.Def, r diag.Reporter, bag *diag.Bag, reply *Reply) {
	res := elab.Elaborate(def.Body, r)
	reply.Deps = elab.AliasesIn(res.Indexed)
	t := elab.Resolve(res.Indexed, s.env, r)
	if def.Name == nil || !def.Name.OK || t == nil || bag.HasErrors() {
		return
	}
	_, reply.Redefined = s.env.Define(def.Name.Text, t, def.Name.Span)
	reply.Kind, reply.Name = ReplyDefined, def.Name.Text
}

func (s *Session) normalize(ctx context.Context, term ast.Term, r diag.Reporter, bag *diag.Bag, reply *Reply) error {
	res := elab.Elaborate(term, r)
	reply.Deps = elab.AliasesIn(res.Indexed)
	t := elab.Resolve(res.Indexed, s.env, r)
	if t == nil || bag.HasErrors() {
		return nil
	}
	out, steps, cached, err := s.norm.Normalize(ctx, t)
	reply.Steps = steps
	switch {
	case errors.Is(err, nbe.ErrStepLimit):
		diag.ReportError(r, diag.EvalStepLimit, term.TermSpan(),
			fmt.Sprintf("normalization took more than %d steps", s.norm.Limits.MaxSteps)).Emit()
		return nil
	case err != nil:
		return err
	}
	reply.Kind, reply.Normal, reply.Cached = ReplyNormal, out, cached
	return nil
}

// Load checks the module at path and binds its definitions. Definitions
// that failed to elaborate are skipped; the diagnostics say why.
func (s *Session) Load(ctx context.Context, path string) (*CheckResult, error) {
	id, err := s.FileSet.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	res, err := CheckFile(ctx, s.FileSet, s.FileSet.Get(id), s.maxDiag)
	if err != nil {
		return nil, err
	}
	for _, d := range res.Elab.Defs {
		if d.Bound && d.Core != nil {
			s.env.Define(d.Name, d.Core, d.NameSpan)
		}
	}
	return res, nil
}
