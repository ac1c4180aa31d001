package nbe

import "lamb/internal/core"

// Value is one of *Closure, *Stuck, *Thunk.
type Value interface {
	value()
}

// Closure is an abstraction paired with the environment it was evaluated in.
type Closure struct {
	Name string
	Body core.Term
	Env  *Env
}

// Stuck is a placeholder for a variable with no value, applied to the
// arguments of a spine. Fn is nil for the placeholder itself; Level is the
// binder depth at which it was created.
type Stuck struct {
	Level int
	Fn    *Stuck
	Arg   Value
}

// Thunk delays the evaluation of an operand. Forcing happens at most once;
// the environment is dropped afterwards.
type Thunk struct {
	term   core.Term
	env    *Env
	val    Value
	forced bool
}

func (*Closure) value() {}
func (*Stuck) value()   {}
func (*Thunk) value()   {}

// Delay wraps t and env in an unforced Thunk.
func Delay(t core.Term, env *Env) *Thunk {
	return &Thunk{term: t, env: env}
}

// Forced reports whether the thunk has been evaluated and now holds its value.
func (th *Thunk) Forced() bool { return th.forced }

// Placeholder returns the Stuck variable created at binder depth level.
func Placeholder(level int) *Stuck {
	return &Stuck{Level: level}
}
