package elab

import (
	"fmt"
	"strings"

	"lamb/internal/ast"
	"lamb/internal/core"
	"lamb/internal/diag"
	"lamb/internal/source"
)

// Def is one elaborated definition.
type Def struct {
	Name     string
	NameSpan source.Span
	Span     source.Span
	Indexed  ITerm
	// Core is nil when the body or anything it depends on failed.
	Core core.Term
	// Bound is false for definitions without a valid name and for
	// duplicates; their bodies are still checked.
	Bound bool
	Deps  []string

	state  visitState
	cyclic bool
}

type visitState uint8

const (
	unvisited visitState = iota
	visiting
	visited
)

// Import is one alias brought in by a use declaration.
type Import struct {
	Name string
	Span source.Span
	From string
}

// Module is the result of ElaborateModule. Env binds every valid definition
// and import.
type Module struct {
	Defs    []*Def
	Imports []Import
	Env     *Env
}

// Lookup returns the bound definition named name.
func (m *Module) Lookup(name string) (*Def, bool) {
	for _, d := range m.Defs {
		if d.Bound && d.Name == name {
			return d, true
		}
	}
	return nil, false
}

// ElaborateModule indexes every definition of m and resolves them in
// dependency order, so a definition may use aliases defined further down.
func ElaborateModule(m *ast.Module, r diag.Reporter) *Module {
	out := &Module{Env: NewEnv()}
	if m == nil {
		return out
	}
	for u := range m.Uses() {
		out.Imports = append(out.Imports, importsOf(u)...)
	}
	for _, imp := range out.Imports {
		out.Env.Import(imp.Name, imp.Span)
	}

	byName := make(map[string]*Def)
	for def := range m.Defs() {
		d := &Def{Span: def.Span, Indexed: Index(Desugar(def.Body), r)}
		d.Deps = AliasesIn(d.Indexed)
		out.Defs = append(out.Defs, d)
		if def.Name == nil || !def.Name.OK {
			continue
		}
		d.Name, d.NameSpan = def.Name.Text, def.Name.Span
		if first, dup := byName[d.Name]; dup {
			diag.ReportError(r, diag.SemDuplicateDef, d.NameSpan, fmt.Sprintf("alias '%s' is already defined", d.Name)).
				WithNote(first.NameSpan, "first defined here").
				Emit()
			continue
		}
		d.Bound = true
		byName[d.Name] = d
	}

	rs := resolver{env: out.Env, byName: byName, reporter: r}
	for _, d := range out.Defs {
		if d.Bound {
			rs.visit(d)
		}
	}
	for _, d := range out.Defs {
		if !d.Bound {
			d.Core = Resolve(d.Indexed, out.Env, r)
		}
	}
	return out
}

func importsOf(u *ast.Use) []Import {
	if u.Aliases == nil {
		return nil
	}
	from := ""
	if u.Filepath != nil {
		from = u.Filepath.Path
	}
	imps := make([]Import, 0, len(u.Aliases.Names))
	for _, n := range u.Aliases.Names {
		if n.OK {
			imps = append(imps, Import{Name: n.Text, Span: n.Span, From: from})
		}
	}
	return imps
}

type resolver struct {
	env      *Env
	byName   map[string]*Def
	reporter diag.Reporter
	path     []*Def
}

func (rs *resolver) visit(d *Def) {
	switch d.state {
	case visited:
		return
	case visiting:
		rs.cycle(d)
		return
	}
	d.state = visiting
	rs.path = append(rs.path, d)
	for _, dep := range d.Deps {
		if next, ok := rs.byName[dep]; ok {
			rs.visit(next)
		}
	}
	rs.path = rs.path[:len(rs.path)-1]

	d.Core = Resolve(d.Indexed, rs.env, rs.reporter)
	if !d.cyclic {
		rs.env.Define(d.Name, d.Core, d.NameSpan)
	}
	d.state = visited
}

// cycle reports every definition on the path from d back to d and binds
// them to nothing, so their bodies fail without further reports.
func (rs *resolver) cycle(d *Def) {
	start := len(rs.path) - 1
	for start > 0 && rs.path[start] != d {
		start--
	}
	members := rs.path[start:]
	names := make([]string, 0, len(members)+1)
	for _, m := range members {
		names = append(names, m.Name)
	}
	names = append(names, d.Name)
	chain := strings.Join(names, " -> ")

	for _, m := range members {
		if m.cyclic {
			continue
		}
		m.cyclic = true
		msg := fmt.Sprintf("alias '%s' is defined in terms of itself", m.Name)
		if len(members) > 1 {
			msg = fmt.Sprintf("alias '%s' is part of a definition cycle: %s", m.Name, chain)
		}
		diag.ReportError(rs.reporter, diag.SemCyclicDef, m.NameSpan, msg).Emit()
		rs.env.Define(m.Name, nil, m.NameSpan)
	}
}
