// Package testkit holds structural checks shared by parser, extraction and
// fuzz tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"lamb/internal/ast"
	"lamb/internal/cst"
	"lamb/internal/source"
)

// CheckTree verifies the invariants of a parsed tree:
//  1. leaves tile the file: they are contiguous, start at 0 and end at
//     len(content), so reconstruction is byte-exact;
//  2. every span points into sf;
//  3. a child lies inside its parent and siblings do not overlap;
//  4. an inner node ends where its last leaf ends.
func CheckTree(tree *cst.Inner, sf *source.File) error {
	if tree == nil || sf == nil {
		return fmt.Errorf("nil tree or file")
	}
	size, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	var pos uint32
	for leaf := range cst.Leaves(tree) {
		sp := leaf.Token.Span
		if sp.File != sf.ID {
			return fmt.Errorf("leaf %s points to file %d, want %d", leaf.Token.Kind, sp.File, sf.ID)
		}
		if sp.Start != pos || sp.End < sp.Start {
			return fmt.Errorf("leaf %s at %v does not continue at %d", leaf.Token.Kind, sp, pos)
		}
		pos = sp.End
	}
	if pos != size {
		return fmt.Errorf("leaves end at %d, content is %d bytes", pos, size)
	}
	if tree.Span.Start != 0 || tree.Span.End != size {
		return fmt.Errorf("root span %v does not cover the file (%d bytes)", tree.Span, size)
	}
	if got := cst.Reconstruct(tree, sf); got != string(sf.Content) {
		return fmt.Errorf("reconstruction differs from source")
	}
	return checkInner(tree, sf.ID)
}

func checkInner(n *cst.Inner, file source.FileID) error {
	if n.Span.File != file {
		return fmt.Errorf("%s span points to file %d, want %d", n.Kind, n.Span.File, file)
	}
	prevEnd := n.Span.Start
	lastLeafEnd := n.Span.Start
	for _, c := range n.Children {
		sp := c.NodeSpan()
		if sp.Start < prevEnd || sp.End > n.Span.End {
			return fmt.Errorf("%s child at %v escapes parent %v or overlaps a sibling", n.Kind, sp, n.Span)
		}
		prevEnd = sp.End
		switch c := c.(type) {
		case *cst.Inner:
			if err := checkInner(c, file); err != nil {
				return err
			}
			lastLeafEnd = max(lastLeafEnd, c.Span.End)
		case *cst.Leaf:
			lastLeafEnd = sp.End
		}
	}
	if lastLeafEnd != n.Span.End {
		return fmt.Errorf("%s span %v ends past its last leaf at %d", n.Kind, n.Span, lastLeafEnd)
	}
	return nil
}

// CheckModuleSpans verifies that every node of m lies inside its parent and
// inside the module span. Missing children (nil) are skipped.
func CheckModuleSpans(m *ast.Module) error {
	if m == nil {
		return fmt.Errorf("nil module")
	}
	for _, d := range m.Decls {
		outer := d.DeclSpan()
		if !m.Span.Contains(outer) {
			return fmt.Errorf("declaration %v outside module %v", outer, m.Span)
		}
		switch d := d.(type) {
		case *ast.Def:
			if d.Name != nil && !outer.Contains(d.Name.Span) {
				return fmt.Errorf("definition name %v outside %v", d.Name.Span, outer)
			}
			if err := checkTerm(d.Body, outer); err != nil {
				return err
			}
		case *ast.Use:
			if d.Aliases != nil {
				for _, n := range d.Aliases.Names {
					if !outer.Contains(n.Span) {
						return fmt.Errorf("imported name %v outside %v", n.Span, outer)
					}
				}
			}
			if d.Filepath != nil && !outer.Contains(d.Filepath.Span) {
				return fmt.Errorf("filepath %v outside %v", d.Filepath.Span, outer)
			}
		}
	}
	return nil
}

// CheckTermSpans is CheckModuleSpans for a single term inside outer.
func CheckTermSpans(t ast.Term, outer source.Span) error {
	return checkTerm(t, outer)
}

func checkTerm(t ast.Term, outer source.Span) error {
	if t == nil {
		return nil
	}
	sp := t.TermSpan()
	if !outer.Contains(sp) {
		return fmt.Errorf("term %v outside %v", sp, outer)
	}
	switch t := t.(type) {
	case *ast.Abs:
		if t.Vars != nil {
			for _, n := range t.Vars.Names {
				if !sp.Contains(n.Span) {
					return fmt.Errorf("var %q at %v outside %v", n.Text, n.Span, sp)
				}
			}
		}
		return checkTerm(t.Body, sp)
	case *ast.App:
		if err := checkTerm(t.Fn, sp); err != nil {
			return err
		}
		for _, a := range t.Args {
			if err := checkTerm(a, sp); err != nil {
				return err
			}
		}
	}
	return nil
}
