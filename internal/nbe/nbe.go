package nbe

import (
	"context"

	"lamb/internal/core"
)

// Eval evaluates t under env without a step budget.
func Eval(t core.Term, env *Env) Value {
	return new(Machine).eval(t, env)
}

// Apply applies fn to arg without a step budget.
func Apply(fn, arg Value) Value {
	return new(Machine).apply(fn, arg)
}

// Quote reads v back into a term at binder depth zero.
func Quote(v Value) core.Term {
	return new(Machine).quote(v, 0, nil)
}

// Normalize returns the beta normal form of the closed term t. It does not
// return for terms without one; use Machine.NormalizeContext with a budget
// for untrusted input.
func Normalize(t core.Term) core.Term {
	out, err := new(Machine).NormalizeContext(context.Background(), t)
	if err != nil {
		panic(err)
	}
	return out
}
