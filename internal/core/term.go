// Package core holds the nameless terms that normalization works on.
//
// Variables are de Bruijn indices counted from the nearest enclosing binder.
// Binder names only serve display.
package core

import (
	"strconv"
	"strings"
)

// Term is one of *Index, *Abs, *App.
type Term interface {
	String() string
	term()
}

// Index refers to the binder Index levels out; 0 is the innermost.
type Index struct {
	Index int
}

// Abs binds one variable in Body.
type Abs struct {
	Name string
	Body Term
}

// App applies Fn to Arg.
type App struct {
	Fn  Term
	Arg Term
}

func (*Index) term() {}
func (*Abs) term()   {}
func (*App) term()   {}

func NewIndex(i int) *Index           { return &Index{Index: i} }
func NewAbs(name string, b Term) *Abs { return &Abs{Name: name, Body: b} }
func NewApp(fn, arg Term) *App        { return &App{Fn: fn, Arg: arg} }

// Apps folds args onto fn left to right: Apps(f, a, b) is ((f a) b).
func Apps(fn Term, args ...Term) Term {
	for _, a := range args {
		fn = NewApp(fn, a)
	}
	return fn
}

// Equal reports structural equality, which on nameless terms is alpha
// equivalence. Binder names are ignored.
func Equal(a, b Term) bool {
	for {
		switch x := a.(type) {
		case *Index:
			y, ok := b.(*Index)
			return ok && x.Index == y.Index
		case *Abs:
			y, ok := b.(*Abs)
			if !ok {
				return false
			}
			a, b = x.Body, y.Body
		case *App:
			y, ok := b.(*App)
			if !ok || !Equal(x.Fn, y.Fn) {
				return false
			}
			a, b = x.Arg, y.Arg
		case nil:
			return b == nil
		default:
			return false
		}
	}
}

// Size counts the nodes of t.
func Size(t Term) int {
	switch x := t.(type) {
	case *Index:
		return 1
	case *Abs:
		return 1 + Size(x.Body)
	case *App:
		return 1 + Size(x.Fn) + Size(x.Arg)
	default:
		return 0
	}
}

// Closed reports whether t has no index escaping its binders.
func Closed(t Term) bool {
	return closedUnder(t, 0)
}

func closedUnder(t Term, depth int) bool {
	switch x := t.(type) {
	case *Index:
		return x.Index < depth
	case *Abs:
		return closedUnder(x.Body, depth+1)
	case *App:
		return closedUnder(x.Fn, depth) && closedUnder(x.Arg, depth)
	default:
		return false
	}
}

func (t *Index) String() string { return render(t) }
func (t *Abs) String() string   { return render(t) }
func (t *App) String() string   { return render(t) }

// render prints binders by name and variables by the name of the binder
// they point at. An index past every binder prints as "#i".
func render(t Term) string {
	var sb strings.Builder
	write(&sb, t, nil)
	return sb.String()
}

func write(sb *strings.Builder, t Term, scope []string) {
	switch x := t.(type) {
	case *Index:
		if i := len(scope) - 1 - x.Index; i >= 0 && x.Index >= 0 {
			sb.WriteString(scope[i])
			return
		}
		sb.WriteByte('#')
		sb.WriteString(strconv.Itoa(x.Index))
	case *Abs:
		sb.WriteString(x.Name)
		sb.WriteString(" => ")
		write(sb, x.Body, append(scope[:len(scope):len(scope)], x.Name))
	case *App:
		sb.WriteByte('(')
		write(sb, x.Fn, scope)
		sb.WriteByte(' ')
		write(sb, x.Arg, scope)
		sb.WriteByte(')')
	default:
		sb.WriteString("<nil>")
	}
}
