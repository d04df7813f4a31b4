package op

import (
	"github.com/mgrove/stencil/internal/term"
)

// Core operation names. They are reserved by NewRegistry; a client
// declaration under one of these names fails with ErrCodeRedeclared.
const (
	opAppl         = "appl"
	opCompose      = "compose"
	opComposeApply = "composeApply"
	opMatch        = "match"
	opMatchArgs    = "matchWithArgs"
)

// installCore declares the built-in operations. Their implementations
// close over the registry because application and dispatch both resolve
// names through it.
func (r *Registry) installCore() {
	r.ops[opAppl] = Op{Name: opAppl, Arity: 2, Fn: r.applImpl}
	r.ops[opCompose] = Op{Name: opCompose, Arity: 2, Fn: composeImpl}
	r.ops[opComposeApply] = Op{Name: opComposeApply, Arity: 3, Fn: composeApplyImpl}
	r.ops[opMatch] = Op{Name: opMatch, Arity: 2, Fn: matchImpl}
	r.ops[opMatchArgs] = Op{Name: opMatchArgs, Arity: 3, Fn: matchWithArgsImpl}
}

// applImpl applies one argument group to a target.
//
// The target is either an operation name or a closure:
//   - name with arity 1: fire immediately with the group
//   - name with arity > 1: produce (arity-1, name, group)
//   - closure with arity 1: fire the underlying name with env ++ group
//   - closure with arity > 1: produce (arity-1, name, env ++ group)
//
// Anything else - including applying a group to an already-fired result -
// is an application contract violation and reduces to a fatal marker.
func (r *Registry) applImpl(args []term.Term) term.Term {
	f, group := args[0], args[1:]

	switch target := f.(type) {
	case term.Atoms:
		name, ok := singleToken(target)
		if !ok {
			return term.NewFatal(opAppl, "expected an operation name, got", term.String(f))
		}
		o, declared := r.Lookup(name)
		if !declared {
			return term.NewFatal(opAppl, "unknown operation", name)
		}
		if o.Arity == 1 {
			return term.NewCallUneval(name, group...)
		}
		return term.Closure{Arity: o.Arity - 1, Target: term.V(name), Env: group}

	case term.Closure:
		env := append(append([]term.Term{}, target.Env...), group...)
		if target.Arity == 1 {
			name, ok := closureName(target)
			if !ok {
				return term.NewFatal(opAppl, "closure target is not an operation name")
			}
			return term.NewCallUneval(name, env...)
		}
		return term.Closure{Arity: target.Arity - 1, Target: target.Target, Env: env}

	default:
		return term.NewFatal(opAppl, "cannot apply arguments to", term.String(f))
	}
}

// composeImpl builds the composition of f and g as a closure: applying one
// more argument group feeds it to g and pipes g's result into f.
func composeImpl(args []term.Term) term.Term {
	f, g := args[0], args[1]
	return term.Closure{Arity: 1, Target: term.V(opComposeApply), Env: []term.Term{f, g}}
}

// composeApplyImpl fires when a composed closure receives its final group.
func composeApplyImpl(args []term.Term) term.Term {
	f, g, rest := args[0], args[1], args[2:]
	return Apply(f, Apply(g, rest...))
}

// matchImpl routes a choice value to the handler named prefix + tag,
// invoking it unevaluated-argument style with the payload.
func matchImpl(args []term.Term) term.Term {
	return dispatch(opMatch, args[0], args[1], nil)
}

// matchWithArgsImpl is matchImpl with a fixed extra argument group appended
// to the handler's parameter list.
func matchWithArgsImpl(args []term.Term) term.Term {
	return dispatch(opMatchArgs, args[0], args[1], args[2:])
}

func dispatch(via string, choice, prefix term.Term, extra []term.Term) term.Term {
	c, ok := choice.(term.Choice)
	if !ok {
		return term.NewFatal(via, "expected a choice value, got", term.String(choice))
	}
	p, ok := prefixToken(prefix)
	if !ok {
		return term.NewFatal(via, "expected a handler prefix, got", term.String(prefix))
	}
	handlerArgs := append(term.ChoiceData(c), extra...)
	return term.NewCallUneval(p+c.Tag, handlerArgs...)
}

func singleToken(a term.Atoms) (string, bool) {
	if len(a) != 1 {
		return "", false
	}
	return a[0], true
}

func prefixToken(t term.Term) (string, bool) {
	a, ok := t.(term.Atoms)
	if !ok {
		return "", false
	}
	return singleToken(a)
}

func closureName(c term.Closure) (string, bool) {
	a, ok := c.Target.(term.Atoms)
	if !ok {
		return "", false
	}
	return singleToken(a)
}
