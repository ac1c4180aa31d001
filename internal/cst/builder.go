package cst

import (
	"fmt"

	"lamb/internal/source"
	"lamb/internal/token"
)

// entry is either a completed node or an open marker.
type entry struct {
	node  Node
	kind  Kind
	start uint32
}

func (e entry) open() bool { return e.node == nil }

// Builder assembles a tree from a flat sequence of Open, Token and Close
// calls. Nodes opened later are closed first; closing collects everything
// pushed since the matching Open as children.
type Builder struct {
	file  source.FileID
	stack []entry
	pos   uint32 // end of the last pushed token
}

func NewBuilder(file source.FileID) *Builder {
	return &Builder{file: file}
}

// Pos returns the end offset of the last token pushed.
func (b *Builder) Pos() uint32 { return b.pos }

// Open starts a node of kind k at the current position.
func (b *Builder) Open(k Kind) {
	b.stack = append(b.stack, entry{kind: k, start: b.pos})
}

// Token pushes a leaf.
func (b *Builder) Token(tok token.Token) {
	b.pos = tok.Span.End
	b.stack = append(b.stack, entry{node: &Leaf{Token: tok}})
}

// Close completes the innermost open node, which must be of kind k.
func (b *Builder) Close(k Kind) {
	i := len(b.stack) - 1
	for i >= 0 && !b.stack[i].open() {
		i--
	}
	if i < 0 {
		panic(fmt.Sprintf("cst: Close(%s) without a matching Open", k))
	}
	if open := b.stack[i]; open.kind != k {
		panic(fmt.Sprintf("cst: Open and Close kinds don't match (%s != %s)", open.kind, k))
	}

	children := make([]Node, 0, len(b.stack)-i-1)
	for _, e := range b.stack[i+1:] {
		children = append(children, e.node)
	}
	node := &Inner{
		Kind:     k,
		Span:     source.Span{File: b.file, Start: b.stack[i].start, End: b.pos},
		Children: children,
	}
	clear(b.stack[i+1:])
	b.stack = append(b.stack[:i], entry{node: node})
}

// Missing pushes an empty placeholder node.
func (b *Builder) Missing() {
	b.Open(Missing)
	b.Close(Missing)
}

// Finish returns the single completed root. It panics if nodes are still
// open or if more than one root was built.
func (b *Builder) Finish() *Inner {
	switch {
	case len(b.stack) == 0:
		panic("cst: no tree to finish")
	case len(b.stack) > 1:
		for _, e := range b.stack {
			if e.open() {
				panic(fmt.Sprintf("cst: unmatched Open(%s)", e.kind))
			}
		}
		panic("cst: multiple top-level trees")
	}
	root := b.stack[0]
	if root.open() {
		panic(fmt.Sprintf("cst: unmatched Open(%s)", root.kind))
	}
	in, ok := root.node.(*Inner)
	if !ok {
		panic("cst: top-level node is a leaf")
	}
	b.stack = nil
	return in
}
