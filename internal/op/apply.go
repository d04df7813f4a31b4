package op

import "github.com/mgrove/stencil/internal/term"

// Apply builds a term that applies one argument group to f.
//
// f must reduce to an operation name or a closure obtained from a previous
// Apply. Applying argument groups one at a time, in the declared grouping,
// is equivalent to a single invocation with every group at once.
func Apply(f term.Term, group ...term.Term) term.Term {
	args := append([]term.Term{f}, group...)
	return term.NewCall(opAppl, args...)
}

// Apply2 applies a and b to f, one group each.
func Apply2(f term.Term, a, b term.Term) term.Term {
	return Apply(Apply(f, a), b)
}

// Apply3 applies a, b, and c to f, one group each.
func Apply3(f term.Term, a, b, c term.Term) term.Term {
	return Apply(Apply2(f, a, b), c)
}

// Apply4 applies a, b, c, and d to f, one group each.
func Apply4(f term.Term, a, b, c, d term.Term) term.Term {
	return Apply(Apply3(f, a, b, c), d)
}

// Compose builds the composition of f and g: applying the result to a
// group invokes g on the group and feeds its result to f.
func Compose(f, g term.Term) term.Term {
	return term.NewCall(opCompose, f, g)
}

// Match routes a choice value to the handler family identified by prefix:
// the handler named prefix + tag is invoked with the choice's payload.
func Match(choice term.Term, prefix string) term.Term {
	return term.NewCall(opMatch, choice, term.V(prefix))
}

// MatchWithArgs is Match with a fixed extra argument group appended to
// every handler's parameter list, letting all branches share context.
func MatchWithArgs(choice term.Term, prefix string, extra ...term.Term) term.Term {
	args := append([]term.Term{choice, term.V(prefix)}, extra...)
	return term.NewCall(opMatchArgs, args...)
}
