// Package elab turns surface terms into core terms.
//
// The pipeline is Desugar (single binders, binary applications), Index
// (names to de Bruijn indices) and ToCore (all-or-nothing promotion).
// Aliases survive indexing as names; Resolve inlines them from an Env of
// previously elaborated definitions. Problems are reported through a
// diag.Reporter and never stop elaboration.
package elab
