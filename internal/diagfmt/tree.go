package diagfmt

import (
	"encoding/json"
	"io"

	"lamb/internal/ast"
	"lamb/internal/cst"
)

// FormatTree prints the lossless tree, trivia included.
func FormatTree(w io.Writer, tree *cst.Inner) error {
	return cst.Dump(w, tree)
}

// FormatAST writes the extracted module as indented JSON. Missing children
// come out as null.
func FormatAST(w io.Writer, m *ast.Module) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}
