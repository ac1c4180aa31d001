package driver

import (
	"errors"
	"fmt"

	"lamb/internal/core"
)

type wireOp uint8

const (
	wireIndex wireOp = iota + 1
	wireAbs
	wireApp
)

// wireNode is one core term node in prefix order.
type wireNode struct {
	Op    wireOp `msgpack:"o"`
	Index int    `msgpack:"i,omitempty"`
	Name  string `msgpack:"n,omitempty"`
}

var errBadWire = errors.New("malformed cached term")

func encodeTerm(t core.Term) []wireNode {
	var out []wireNode
	var walk func(core.Term)
	walk = func(t core.Term) {
		switch t := t.(type) {
		case *core.Index:
			out = append(out, wireNode{Op: wireIndex, Index: t.Index})
		case *core.Abs:
			out = append(out, wireNode{Op: wireAbs, Name: t.Name})
			walk(t.Body)
		case *core.App:
			out = append(out, wireNode{Op: wireApp})
			walk(t.Fn)
			walk(t.Arg)
		}
	}
	walk(t)
	return out
}

func decodeTerm(nodes []wireNode) (core.Term, error) {
	pos := 0
	var read func() (core.Term, error)
	read = func() (core.Term, error) {
		if pos >= len(nodes) {
			return nil, errBadWire
		}
		n := nodes[pos]
		pos++
		switch n.Op {
		case wireIndex:
			return core.NewIndex(n.Index), nil
		case wireAbs:
			body, err := read()
			if err != nil {
				return nil, err
			}
			return core.NewAbs(n.Name, body), nil
		case wireApp:
			fn, err := read()
			if err != nil {
				return nil, err
			}
			arg, err := read()
			if err != nil {
				return nil, err
			}
			return core.NewApp(fn, arg), nil
		default:
			return nil, fmt.Errorf("%w: op %d", errBadWire, n.Op)
		}
	}
	t, err := read()
	if err != nil {
		return nil, err
	}
	if pos != len(nodes) {
		return nil, fmt.Errorf("%w: %d trailing nodes", errBadWire, len(nodes)-pos)
	}
	return t, nil
}
