package nbe

// Env is a persistent stack of values indexed by de Bruijn index. The nil
// *Env is the empty environment. Push never modifies the receiver, so
// closures can share tails freely.
type Env struct {
	val  Value
	next *Env
	n    int
}

func (e *Env) Push(v Value) *Env {
	return &Env{val: v, next: e, n: e.Len() + 1}
}

// Lookup returns the value i entries below the top.
func (e *Env) Lookup(i int) (Value, bool) {
	if i < 0 {
		return nil, false
	}
	for ; e != nil; e = e.next {
		if i == 0 {
			return e.val, true
		}
		i--
	}
	return nil, false
}

func (e *Env) Len() int {
	if e == nil {
		return 0
	}
	return e.n
}

// names is the set of binder names chosen by enclosing quoted binders.
type names struct {
	name string
	next *names
}

func (ns *names) push(name string) *names {
	return &names{name: name, next: ns}
}

func (ns *names) contains(name string) bool {
	for ; ns != nil; ns = ns.next {
		if ns.name == name {
			return true
		}
	}
	return false
}

// freshen appends ' to name until no enclosing binder uses it.
func freshen(name string, used *names) string {
	for used.contains(name) {
		name += "'"
	}
	return name
}
