// Package cst holds the untyped, full-fidelity syntax tree built by the
// parser.
//
// Every token the lexer produced, trivia and Unknown runs included, ends up
// as exactly one Leaf, in source order. Concatenating the leaves therefore
// reproduces the input byte for byte, however malformed it was. Required
// children that the parser could not find are explicit Missing nodes.
package cst

import (
	"iter"

	"lamb/internal/source"
	"lamb/internal/token"
)

// Node is either *Inner or *Leaf.
type Node interface {
	NodeSpan() source.Span
	node()
}

// Inner is a tagged node; its Span runs from the end of the token preceding
// its first leaf to the end of its last leaf.
type Inner struct {
	Kind     Kind
	Span     source.Span
	Children []Node
}

// Leaf wraps a single token.
type Leaf struct {
	Token token.Token
}

func (n *Inner) NodeSpan() source.Span { return n.Span }
func (n *Leaf) NodeSpan() source.Span  { return n.Token.Span }

func (*Inner) node() {}
func (*Leaf) node()  {}

// Is reports whether n is an inner node of kind k.
func Is(n Node, k Kind) bool {
	in, ok := n.(*Inner)
	return ok && in.Kind == k
}

// IsTrivia reports whether n is a whitespace, comment or Unknown leaf.
func IsTrivia(n Node) bool {
	leaf, ok := n.(*Leaf)
	return ok && (leaf.Token.IsTrivia() || leaf.Token.Kind == token.Unknown)
}

// Leaves yields every leaf under n in source order.
func Leaves(n Node) iter.Seq[*Leaf] {
	return func(yield func(*Leaf) bool) {
		walkLeaves(n, yield)
	}
}

func walkLeaves(n Node, yield func(*Leaf) bool) bool {
	switch n := n.(type) {
	case *Leaf:
		return yield(n)
	case *Inner:
		for _, c := range n.Children {
			if !walkLeaves(c, yield) {
				return false
			}
		}
	}
	return true
}

// Walk calls fn for n and every node below it, parents first. Returning
// false from fn skips the node's children.
func Walk(n Node, fn func(Node) bool) {
	if !fn(n) {
		return
	}
	if in, ok := n.(*Inner); ok {
		for _, c := range in.Children {
			Walk(c, fn)
		}
	}
}

// Reconstruct returns the source text covered by the leaves of n. For a
// tree produced by the parser it equals the file content.
func Reconstruct(n Node, f *source.File) string {
	size := 0
	for leaf := range Leaves(n) {
		size += int(leaf.Token.Span.Len())
	}
	buf := make([]byte, 0, size)
	for leaf := range Leaves(n) {
		sp := leaf.Token.Span
		buf = append(buf, f.Content[sp.Start:sp.End]...)
	}
	return string(buf)
}
