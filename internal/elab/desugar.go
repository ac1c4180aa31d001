package elab

import (
	"lamb/internal/ast"
	"lamb/internal/source"
)

// DTerm is one of *DVar, *DAlias, *DAbs, *DApp. Every abstraction binds at
// most one var and every application has exactly one operand.
type DTerm interface {
	DSpan() source.Span
	dterm()
}

type DVar struct {
	Name string
	Span source.Span
}

type DAlias struct {
	Name string
	Span source.Span
}

// DAbs binds Binder in Body. Binder is nil when the surface var list was
// missing or empty; NoVars tells the two apart.
type DAbs struct {
	Binder *ast.Name
	NoVars bool
	Body   DTerm
	Span   source.Span
}

type DApp struct {
	Fn   DTerm
	Arg  DTerm
	Span source.Span
}

func (t *DVar) DSpan() source.Span   { return t.Span }
func (t *DAlias) DSpan() source.Span { return t.Span }
func (t *DAbs) DSpan() source.Span   { return t.Span }
func (t *DApp) DSpan() source.Span   { return t.Span }

func (*DVar) dterm()   {}
func (*DAlias) dterm() {}
func (*DAbs) dterm()   {}
func (*DApp) dterm()   {}

// Desugar folds (v1, .., vn) => b into v1 => (.. => (vn => b)) and
// f a1 .. an into ((f a1) ..) an. Synthesized nodes carry the span of the
// whole surface node. A nil term stays nil.
func Desugar(t ast.Term) DTerm {
	switch t := t.(type) {
	case *ast.Var:
		return &DVar{Name: t.Name, Span: t.Span}
	case *ast.Alias:
		return &DAlias{Name: t.Name, Span: t.Span}
	case *ast.Abs:
		return desugarAbs(t)
	case *ast.App:
		fn := Desugar(t.Fn)
		for _, arg := range t.Args {
			fn = &DApp{Fn: fn, Arg: Desugar(arg), Span: t.Span}
		}
		return fn
	default:
		return nil
	}
}

func desugarAbs(t *ast.Abs) DTerm {
	body := Desugar(t.Body)
	if t.Vars == nil || len(t.Vars.Names) == 0 {
		return &DAbs{NoVars: t.Vars != nil, Body: body, Span: t.Span}
	}
	names := t.Vars.Names
	for i := len(names) - 1; i >= 0; i-- {
		name := names[i]
		body = &DAbs{Binder: &name, Body: body, Span: t.Span}
	}
	return body
}
