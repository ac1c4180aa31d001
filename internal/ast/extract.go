package ast

import (
	"fmt"

	"lamb/internal/cst"
	"lamb/internal/source"
	"lamb/internal/token"
)

// FromModule converts a tree produced by parser.ParseModule. It panics when
// the tree does not have the shape the parser guarantees.
func FromModule(tree *cst.Inner) *Module {
	expectKind(tree, cst.Module)
	m := &Module{Span: tree.Span}
	for _, c := range significant(tree).nodes {
		in, ok := c.(*cst.Inner)
		if !ok {
			continue // ';' and skipped runs
		}
		switch in.Kind {
		case cst.Def:
			m.Decls = append(m.Decls, defFrom(in))
		case cst.Use:
			m.Decls = append(m.Decls, useFrom(in))
		default:
			contractViolation("Def or Use in Module", in)
		}
	}
	return m
}

// FromReplInput converts a tree produced by parser.ParseReplInput. The
// result is nil when the input held neither a definition nor a term.
func FromReplInput(tree *cst.Inner) *ReplInput {
	expectKind(tree, cst.ReplInput)
	in := &ReplInput{Span: tree.Span}
	for _, c := range significant(tree).nodes {
		inner, ok := c.(*cst.Inner)
		if !ok {
			continue
		}
		switch inner.Kind {
		case cst.Def:
			in.Def = defFrom(inner)
		case cst.Tms:
			in.Term = termsFrom(inner)
		default:
			contractViolation("Def or Tms in ReplInput", inner)
		}
	}
	if in.Def == nil && in.Term == nil {
		return nil
	}
	return in
}

// Def: name slot, then body slot. The body is popped first.
func defFrom(n *cst.Inner) *Def {
	c := significant(n)
	body := c.pop()
	name := c.pop()
	c.done()
	return &Def{
		Name: nameFrom(name, token.Alias),
		Body: termSlot(body),
		Span: n.Span,
	}
}

// Use: aliases slot, then filepath slot. The filepath is popped first.
func useFrom(n *cst.Inner) *Use {
	c := significant(n)
	path := c.pop()
	aliases := c.pop()
	c.done()

	u := &Use{Span: n.Span}
	switch path.Kind {
	case cst.UseFilepath:
		tok := onlyLeaf(path)
		u.Filepath = &Filepath{Path: source.NormalizeText(tok.Text), Span: tok.Span, Terminated: tok.Kind == token.String}
	case cst.Missing:
	default:
		contractViolation("UseFilepath or Missing", path)
	}
	switch aliases.Kind {
	case cst.UseAliases:
		u.Aliases = &UseAliases{Names: namesFrom(aliases, token.Alias), Span: aliases.Span}
	case cst.Missing:
	default:
		contractViolation("UseAliases or Missing", aliases)
	}
	return u
}

func termSlot(n *cst.Inner) Term {
	switch n.Kind {
	case cst.Missing:
		return nil
	case cst.Tms:
		return termsFrom(n)
	}
	contractViolation("Tms or Missing", n)
	return nil
}

// termsFrom returns a single term as is; several juxtaposed terms become
// one n-ary App. Parentheses are leaves and are dropped.
func termsFrom(n *cst.Inner) Term {
	var terms []Term
	for _, c := range significant(n).nodes {
		in, ok := c.(*cst.Inner)
		if !ok {
			continue
		}
		if t := termFrom(in); t != nil {
			terms = append(terms, t)
		}
	}
	switch len(terms) {
	case 0:
		return nil
	case 1:
		return terms[0]
	}
	return &App{Fn: terms[0], Args: terms[1:], Span: n.Span}
}

func termFrom(n *cst.Inner) Term {
	switch n.Kind {
	case cst.Var:
		tok := onlyLeaf(n)
		return &Var{Name: tok.Text, Span: tok.Span}
	case cst.Alias:
		tok := onlyLeaf(n)
		return &Alias{Name: tok.Text, Span: tok.Span}
	case cst.Tms:
		return termsFrom(n)
	case cst.Abs:
		return absFrom(n)
	}
	contractViolation("a term", n)
	return nil
}

// Abs: vars slot, then body slot. The body is popped first.
func absFrom(n *cst.Inner) *Abs {
	c := significant(n)
	body := c.pop()
	vars := c.pop()
	c.done()

	abs := &Abs{Body: termSlot(body), Span: n.Span}
	switch vars.Kind {
	case cst.AbsVars:
		abs.Vars = &AbsVars{Names: namesFrom(vars, token.Name), Span: vars.Span}
	case cst.Missing:
	default:
		contractViolation("AbsVars or Missing", vars)
	}
	return abs
}

// namesFrom collects the Name and BadName children of a list node.
func namesFrom(list *cst.Inner, want token.Kind) []Name {
	names := []Name{}
	for _, c := range significant(list).nodes {
		in, ok := c.(*cst.Inner)
		if !ok {
			continue // brackets and commas
		}
		if name := nameFrom(in, want); name != nil {
			names = append(names, *name)
		} else {
			contractViolation("Name or BadName", in)
		}
	}
	return names
}

func nameFrom(n *cst.Inner, want token.Kind) *Name {
	switch n.Kind {
	case cst.Name, cst.BadName:
		tok := onlyLeaf(n)
		return &Name{Text: tok.Text, Span: tok.Span, OK: n.Kind == cst.Name && tok.Kind == want}
	case cst.Missing:
		return nil
	}
	contractViolation("Name, BadName or Missing", n)
	return nil
}

// children is the significant (non-trivia) children of one node, consumed
// from the end.
type children struct {
	parent *cst.Inner
	nodes  []cst.Node
}

func significant(n *cst.Inner) *children {
	nodes := make([]cst.Node, 0, len(n.Children))
	for _, c := range n.Children {
		if !cst.IsTrivia(c) {
			nodes = append(nodes, c)
		}
	}
	return &children{parent: n, nodes: nodes}
}

// pop removes and returns the last inner child, dropping the punctuation
// leaves that follow it.
func (c *children) pop() *cst.Inner {
	for len(c.nodes) > 0 {
		last := c.nodes[len(c.nodes)-1]
		c.nodes = c.nodes[:len(c.nodes)-1]
		if in, ok := last.(*cst.Inner); ok {
			return in
		}
	}
	panic(fmt.Sprintf("ast: %s has fewer child nodes than its shape requires", c.parent.Kind))
}

// done checks that no inner child is left over.
func (c *children) done() {
	for _, n := range c.nodes {
		if in, ok := n.(*cst.Inner); ok {
			contractViolation("no further child nodes in "+c.parent.Kind.String(), in)
		}
	}
}

func onlyLeaf(n *cst.Inner) token.Token {
	if len(n.Children) != 1 {
		panic(fmt.Sprintf("ast: %s must wrap exactly one token, has %d children", n.Kind, len(n.Children)))
	}
	leaf, ok := n.Children[0].(*cst.Leaf)
	if !ok {
		panic(fmt.Sprintf("ast: %s must wrap a token, not a node", n.Kind))
	}
	return leaf.Token
}

func expectKind(n *cst.Inner, k cst.Kind) {
	if n == nil {
		panic(fmt.Sprintf("ast: expected a %s tree, got nil", k))
	}
	if n.Kind != k {
		panic(fmt.Sprintf("ast: expected a %s tree, got %s", k, n.Kind))
	}
}

func contractViolation(want string, got *cst.Inner) {
	panic(fmt.Sprintf("ast: parser/extractor out of sync: expected %s, found %s at %s", want, got.Kind, got.Span))
}
