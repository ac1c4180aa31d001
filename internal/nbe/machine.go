package nbe

import (
	"context"
	"errors"
	"fmt"

	"lamb/internal/core"
)

var (
	// ErrStepLimit is returned when normalization needs more closure
	// applications than Limits.MaxSteps allows.
	ErrStepLimit = errors.New("nbe: step limit exceeded")
	// ErrOpenTerm is returned for terms with indices that escape every binder.
	ErrOpenTerm = errors.New("nbe: term is not closed")
)

// ctxCheckEvery is how many steps pass between context checks.
const ctxCheckEvery = 1024

type Limits struct {
	// MaxSteps caps closure applications per normalization. Zero means no cap.
	MaxSteps int
}

// Machine evaluates with a step budget. It is not safe for concurrent use;
// values it produces must not be shared across goroutines either, since
// forcing a Thunk writes to it.
type Machine struct {
	Limits Limits

	ctx   context.Context
	steps int
}

func NewMachine(limits Limits) *Machine {
	return &Machine{Limits: limits}
}

// Steps reports how many closure applications the last run took.
func (m *Machine) Steps() int { return m.steps }

// abort carries an error up through the evaluator.
type abort struct{ err error }

// NormalizeContext returns the beta normal form of the closed term t.
// It stops with ErrStepLimit when the budget runs out and with ctx.Err()
// when ctx is done.
func (m *Machine) NormalizeContext(ctx context.Context, t core.Term) (out core.Term, err error) {
	if t == nil || !core.Closed(t) {
		return nil, ErrOpenTerm
	}
	m.ctx, m.steps = ctx, 0
	defer func() {
		m.ctx = nil
		if r := recover(); r != nil {
			a, ok := r.(abort)
			if !ok {
				panic(r)
			}
			out, err = nil, a.err
		}
	}()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return m.quote(m.eval(t, nil), 0, nil), nil
}

// Force evaluates th unless it has been forced already.
func (m *Machine) Force(th *Thunk) Value {
	return m.force(th)
}

func (m *Machine) step() {
	m.steps++
	if m.Limits.MaxSteps > 0 && m.steps > m.Limits.MaxSteps {
		panic(abort{err: ErrStepLimit})
	}
	if m.ctx != nil && m.steps%ctxCheckEvery == 0 {
		if err := m.ctx.Err(); err != nil {
			panic(abort{err: err})
		}
	}
}

func (m *Machine) eval(t core.Term, env *Env) Value {
	switch t := t.(type) {
	case *core.Index:
		v, ok := env.Lookup(t.Index)
		if !ok {
			panic(fmt.Sprintf("nbe: index %d outside an environment of %d values", t.Index, env.Len()))
		}
		return v
	case *core.Abs:
		return &Closure{Name: t.Name, Body: t.Body, Env: env}
	case *core.App:
		return m.apply(m.eval(t.Fn, env), m.operand(t.Arg, env))
	default:
		panic(fmt.Sprintf("nbe: unexpected term %T", t))
	}
}

// operand delays applications and evaluates everything else, which is
// already a lookup or a closure.
func (m *Machine) operand(t core.Term, env *Env) Value {
	if _, ok := t.(*core.App); ok {
		return Delay(t, env)
	}
	return m.eval(t, env)
}

func (m *Machine) apply(fn, arg Value) Value {
	switch f := fn.(type) {
	case *Closure:
		m.step()
		return m.eval(f.Body, f.Env.Push(arg))
	case *Stuck:
		return &Stuck{Fn: f, Arg: arg}
	case *Thunk:
		return m.apply(m.force(f), arg)
	default:
		panic(fmt.Sprintf("nbe: unexpected value %T", fn))
	}
}

func (m *Machine) force(th *Thunk) Value {
	if th.forced {
		return th.val
	}
	v := m.eval(th.term, th.env)
	if inner, ok := v.(*Thunk); ok {
		v = m.force(inner)
	}
	th.val, th.forced = v, true
	th.term, th.env = nil, nil
	return v
}

// quote reads v back at binder depth depth; used holds the names of the
// binders quoted so far.
func (m *Machine) quote(v Value, depth int, used *names) core.Term {
	switch v := v.(type) {
	case *Closure:
		depth++
		body := m.eval(v.Body, v.Env.Push(Placeholder(depth)))
		name := freshen(v.Name, used)
		return core.NewAbs(name, m.quote(body, depth, used.push(name)))
	case *Stuck:
		if v.Fn == nil {
			return core.NewIndex(depth - v.Level)
		}
		return core.NewApp(m.quote(v.Fn, depth, used), m.quote(v.Arg, depth, used))
	case *Thunk:
		return m.quote(m.force(v), depth, used)
	default:
		panic(fmt.Sprintf("nbe: unexpected value %T", v))
	}
}
