package elab

import (
	"maps"
	"slices"

	"lamb/internal/core"
	"lamb/internal/source"
)

// Binding is one alias known to an Env.
type Binding struct {
	Name string
	// Term is the closed core term the alias stands for. It is nil when the
	// definition failed to elaborate or the alias is imported.
	Term core.Term
	// Span locates the defining name or the import.
	Span     source.Span
	Imported bool
}

// Env maps aliases to their bindings. The zero value is not usable; call
// NewEnv.
type Env struct {
	bindings map[string]Binding
}

func NewEnv() *Env {
	return &Env{bindings: make(map[string]Binding)}
}

// Define binds name to t. The previous binding, if any, is returned and
// replaced.
func (e *Env) Define(name string, t core.Term, sp source.Span) (prev Binding, existed bool) {
	prev, existed = e.bindings[name]
	e.bindings[name] = Binding{Name: name, Term: t, Span: sp}
	return prev, existed
}

// Import records name as coming from another module. An existing binding
// wins.
func (e *Env) Import(name string, sp source.Span) {
	if _, ok := e.bindings[name]; ok {
		return
	}
	e.bindings[name] = Binding{Name: name, Span: sp, Imported: true}
}

func (e *Env) Lookup(name string) (Binding, bool) {
	b, ok := e.bindings[name]
	return b, ok
}

// Names returns every bound alias, sorted.
func (e *Env) Names() []string {
	return slices.Sorted(maps.Keys(e.bindings))
}

func (e *Env) Len() int { return len(e.bindings) }

// Clone returns an independent copy; core terms are shared.
func (e *Env) Clone() *Env {
	return &Env{bindings: maps.Clone(e.bindings)}
}
