package elab

import (
	"fmt"

	"lamb/internal/core"
	"lamb/internal/diag"
)

// Resolve promotes t, inlining every alias from env. Definitions in env are
// closed, so inlining needs no index shifting.
//
// An alias missing from env is reported as unbound. An imported alias, or
// one whose definition failed, fails the promotion silently: the problem was
// reported where it arose.
func Resolve(t ITerm, env *Env, r diag.Reporter) core.Term {
	if env == nil {
		env = NewEnv()
	}
	return promote(t, func(a *IAlias) core.Term {
		b, ok := env.Lookup(a.Name)
		if ok {
			return b.Term
		}
		rb := diag.ReportError(r, diag.SemUnboundAlias, a.Span, fmt.Sprintf("unbound alias '%s'", a.Name))
		if s := suggest(a.Name, env.Names()); s != "" {
			if sb, ok := env.Lookup(s); ok {
				rb.WithNote(sb.Span, fmt.Sprintf("did you mean '%s'?", s))
			}
		}
		rb.Emit()
		return nil
	})
}
