package cst

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes an indented debug rendering of n, one node per line:
//
//	Def@0..12
//	  Name@0..2
//	    Alias("Id")@0..2
func Dump(w io.Writer, n Node) error {
	return dump(w, n, 0)
}

// DumpString is Dump into a string.
func DumpString(n Node) string {
	var sb strings.Builder
	_ = Dump(&sb, n)
	return sb.String()
}

func dump(w io.Writer, n Node, level int) error {
	indent := strings.Repeat("  ", level)
	switch n := n.(type) {
	case *Leaf:
		sp := n.Token.Span
		_, err := fmt.Fprintf(w, "%s%s(%q)@%d..%d\n", indent, n.Token.Kind, n.Token.Text, sp.Start, sp.End)
		return err
	case *Inner:
		if _, err := fmt.Fprintf(w, "%s%s@%d..%d\n", indent, n.Kind, n.Span.Start, n.Span.End); err != nil {
			return err
		}
		for _, c := range n.Children {
			if err := dump(w, c, level+1); err != nil {
				return err
			}
		}
	}
	return nil
}
