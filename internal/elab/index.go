package elab

import (
	"fmt"

	"lamb/internal/diag"
	"lamb/internal/source"
)

// ITerm is one of *IVar, *IAlias, *IAbs, *IApp. Vars carry de Bruijn
// indices; aliases are still names.
type ITerm interface {
	ISpan() source.Span
	iterm()
}

// IVar is a variable occurrence. Bound is false when no enclosing binder
// has the name; the error was reported and Index is meaningless.
type IVar struct {
	Name  string
	Index int
	Bound bool
	Span  source.Span
}

type IAlias struct {
	Name string
	Span source.Span
}

// IAbs binds one var. BinderOK is false when the binder was missing or was
// not a valid var name; Body was then indexed in the enclosing scope.
type IAbs struct {
	Binder   string
	BinderOK bool
	Body     ITerm
	Span     source.Span
}

type IApp struct {
	Fn   ITerm
	Arg  ITerm
	Span source.Span
}

func (t *IVar) ISpan() source.Span   { return t.Span }
func (t *IAlias) ISpan() source.Span { return t.Span }
func (t *IAbs) ISpan() source.Span   { return t.Span }
func (t *IApp) ISpan() source.Span   { return t.Span }

func (*IVar) iterm()   {}
func (*IAlias) iterm() {}
func (*IAbs) iterm()   {}
func (*IApp) iterm()   {}

// Index replaces var names with their distance to the binding abstraction.
// Unbound vars and abstractions without vars are reported to r; indexing
// always covers the whole term.
func Index(t DTerm, r diag.Reporter) ITerm {
	ix := indexer{reporter: r}
	return ix.term(t)
}

type indexer struct {
	reporter diag.Reporter
	scope    []string
}

func (ix *indexer) term(t DTerm) ITerm {
	switch t := t.(type) {
	case *DVar:
		if i, ok := ix.lookup(t.Name); ok {
			return &IVar{Name: t.Name, Index: i, Bound: true, Span: t.Span}
		}
		ix.unbound(t)
		return &IVar{Name: t.Name, Span: t.Span}
	case *DAlias:
		return &IAlias{Name: t.Name, Span: t.Span}
	case *DAbs:
		return ix.abs(t)
	case *DApp:
		return &IApp{Fn: ix.term(t.Fn), Arg: ix.term(t.Arg), Span: t.Span}
	default:
		return nil
	}
}

func (ix *indexer) abs(t *DAbs) ITerm {
	if t.NoVars {
		diag.ReportError(ix.reporter, diag.SemAbsWithoutVars, t.Span, "abstraction needs at least one var").Emit()
	}
	if t.Binder == nil || !t.Binder.OK {
		out := &IAbs{Span: t.Span}
		if t.Binder != nil {
			out.Binder = t.Binder.Text
		}
		out.Body = ix.term(t.Body)
		return out
	}
	ix.scope = append(ix.scope, t.Binder.Text)
	body := ix.term(t.Body)
	ix.scope = ix.scope[:len(ix.scope)-1]
	return &IAbs{Binder: t.Binder.Text, BinderOK: true, Body: body, Span: t.Span}
}

// lookup returns the position of name counted from the top of the scope.
func (ix *indexer) lookup(name string) (int, bool) {
	for i := len(ix.scope) - 1; i >= 0; i-- {
		if ix.scope[i] == name {
			return len(ix.scope) - 1 - i, true
		}
	}
	return 0, false
}

func (ix *indexer) unbound(v *DVar) {
	b := diag.ReportError(ix.reporter, diag.SemUnboundVariable, v.Span, fmt.Sprintf("unbound variable '%s'", v.Name))
	if s := suggest(v.Name, ix.scope); s != "" {
		b.WithNote(v.Span, fmt.Sprintf("did you mean '%s'?", s))
	}
	b.Emit()
}
