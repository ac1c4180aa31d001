// Package nbe normalizes core terms by evaluation.
//
// Eval turns a term into a Value under an environment: abstractions become
// closures, variables without a value become Stuck placeholders, and
// operands that are applications are delayed in a Thunk that is forced at
// most once. Quote reads a value back into a term in beta normal form,
// applying closures to fresh placeholders as it goes under binders.
package nbe
