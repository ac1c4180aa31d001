package elab

import (
	"maps"
	"slices"

	"lamb/internal/ast"
	"lamb/internal/core"
	"lamb/internal/diag"
)

// Result holds both views of an elaborated term. Core is nil unless every
// part of Indexed resolved and no alias is referenced.
type Result struct {
	Indexed ITerm
	Core    core.Term
}

// Elaborate desugars and indexes t and promotes it when possible.
func Elaborate(t ast.Term, r diag.Reporter) Result {
	it := Index(Desugar(t), r)
	return Result{Indexed: it, Core: ToCore(it)}
}

// ToCore promotes an indexed term. It returns nil when any var is unbound,
// any binder is invalid, any slot is missing or any alias is referenced.
func ToCore(t ITerm) core.Term {
	return promote(t, nil)
}

// promote is ToCore with aliases looked up through alias; a nil result from
// alias fails the promotion.
func promote(t ITerm, alias func(*IAlias) core.Term) core.Term {
	switch t := t.(type) {
	case *IVar:
		if !t.Bound {
			return nil
		}
		return core.NewIndex(t.Index)
	case *IAlias:
		if alias == nil {
			return nil
		}
		return alias(t)
	case *IAbs:
		body := promote(t.Body, alias)
		if !t.BinderOK || body == nil {
			return nil
		}
		return core.NewAbs(t.Binder, body)
	case *IApp:
		fn, arg := promote(t.Fn, alias), promote(t.Arg, alias)
		if fn == nil || arg == nil {
			return nil
		}
		return core.NewApp(fn, arg)
	default:
		return nil
	}
}

// AliasesIn returns the distinct aliases t references, sorted.
func AliasesIn(t ITerm) []string {
	set := make(map[string]struct{})
	collectAliases(t, set)
	return slices.Sorted(maps.Keys(set))
}

func collectAliases(t ITerm, set map[string]struct{}) {
	switch t := t.(type) {
	case *IAlias:
		set[t.Name] = struct{}{}
	case *IAbs:
		collectAliases(t.Body, set)
	case *IApp:
		collectAliases(t.Fn, set)
		collectAliases(t.Arg, set)
	}
}

// Resugar would rebuild surface syntax from a core term. It is not
// supported and always reports false.
func Resugar(core.Term) (ast.Term, bool) {
	return nil, false
}
