// Package ast is the typed surface syntax of lamb, extracted from the
// lossless tree in internal/cst.
//
// A required child that the parser could not find is nil. A Name that
// appeared in the wrong slot (a var where an alias belongs, or the other way
// round) is kept with OK == false; the parser already reported it.
package ast

import (
	"iter"

	"lamb/internal/source"
)

// Name is an identifier in a binding position: a definition name, an
// abstraction var or an imported alias.
type Name struct {
	Text string      `json:"text"`
	Span source.Span `json:"span"`
	OK   bool        `json:"ok"`
}

// Filepath is the quoted target of a use declaration, quotes excluded and
// normalised to NFC. The tree keeps the original bytes.
type Filepath struct {
	Path       string      `json:"path"`
	Span       source.Span `json:"span"`
	Terminated bool        `json:"terminated"`
}

// Term is one of *Var, *Alias, *Abs, *App.
type Term interface {
	TermSpan() source.Span
	term()
}

// Var references a variable bound by an enclosing abstraction.
type Var struct {
	Name string      `json:"var"`
	Span source.Span `json:"span"`
}

// Alias references a definition.
type Alias struct {
	Name string      `json:"alias"`
	Span source.Span `json:"span"`
}

// AbsVars is the var list of an abstraction, possibly empty.
type AbsVars struct {
	Names []Name      `json:"names"`
	Span  source.Span `json:"span"`
}

// Abs is an abstraction over one or more vars. Vars is nil when the list is
// missing altogether; Body is nil when the term after '=>' is missing.
type Abs struct {
	Vars *AbsVars    `json:"vars"`
	Body Term        `json:"body"`
	Span source.Span `json:"span"`
}

// App applies Fn to one or more arguments.
type App struct {
	Fn   Term        `json:"fn"`
	Args []Term      `json:"args"`
	Span source.Span `json:"span"`
}

func (t *Var) TermSpan() source.Span   { return t.Span }
func (t *Alias) TermSpan() source.Span { return t.Span }
func (t *Abs) TermSpan() source.Span   { return t.Span }
func (t *App) TermSpan() source.Span   { return t.Span }

func (*Var) term()   {}
func (*Alias) term() {}
func (*Abs) term()   {}
func (*App) term()   {}

// Decl is one of *Use, *Def.
type Decl interface {
	DeclSpan() source.Span
	decl()
}

// UseAliases is the '{..}' list of a use declaration.
type UseAliases struct {
	Names []Name      `json:"names"`
	Span  source.Span `json:"span"`
}

// Use imports aliases from another module.
type Use struct {
	Aliases  *UseAliases `json:"aliases"`
	Filepath *Filepath   `json:"filepath"`
	Span     source.Span `json:"span"`
}

// Def binds an alias to a term.
type Def struct {
	Name *Name       `json:"name"`
	Body Term        `json:"body"`
	Span source.Span `json:"span"`
}

func (d *Use) DeclSpan() source.Span { return d.Span }
func (d *Def) DeclSpan() source.Span { return d.Span }

func (*Use) decl() {}
func (*Def) decl() {}

// Module is a whole source file.
type Module struct {
	Decls []Decl      `json:"decls"`
	Span  source.Span `json:"span"`
}

// Uses yields the use declarations in source order.
func (m *Module) Uses() iter.Seq[*Use] {
	return func(yield func(*Use) bool) {
		for _, d := range m.Decls {
			if u, ok := d.(*Use); ok && !yield(u) {
				return
			}
		}
	}
}

// Defs yields the definitions in source order.
func (m *Module) Defs() iter.Seq[*Def] {
	return func(yield func(*Def) bool) {
		for _, d := range m.Decls {
			if def, ok := d.(*Def); ok && !yield(def) {
				return
			}
		}
	}
}

// ReplInput is a single definition or a single term; at most one of Def and
// Term is set.
type ReplInput struct {
	Def  *Def        `json:"def,omitempty"`
	Term Term        `json:"term,omitempty"`
	Span source.Span `json:"span"`
}
