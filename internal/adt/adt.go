// Package adt provides the optional (just/nothing) and alternative
// (left/right) choice types. Both are thin clients of the choice and
// dispatch facility; wrong-variant unwraps funnel through the one fatal
// diagnostic like every other library guard.
package adt

import (
	"github.com/mgrove/stencil/internal/logic"
	"github.com/mgrove/stencil/internal/op"
	"github.com/mgrove/stencil/internal/term"
)

// Choice tags.
const (
	TagJust    = "just"
	TagNothing = "nothing"
	TagLeft    = "left"
	TagRight   = "right"
)

// Just wraps a present value.
func Just(x term.Term) term.Term { return term.NewChoice(TagJust, x) }

// Nothing is the absent value.
func Nothing() term.Term { return term.NewChoice(TagNothing) }

// Left wraps the left alternative.
func Left(x term.Term) term.Term { return term.NewChoice(TagLeft, x) }

// Right wraps the right alternative.
func Right(x term.Term) term.Term { return term.NewChoice(TagRight, x) }

// Register declares the maybe and either operations.
func Register(r *op.Registry) error {
	decls := []struct {
		name  string
		arity int
		fn    op.Func
	}{
		{"isJust", 1, tagTest("isJust", TagJust, TagNothing)},
		{"isNothing", 1, tagTest("isNothing", TagNothing, TagJust)},
		{"maybeUnwrap", 1, unwrapImpl("maybeUnwrap", TagJust, TagNothing)},
		{"maybeEq", 3, eqImpl("maybeEq", TagJust, TagNothing)},
		{"isLeft", 1, tagTest("isLeft", TagLeft, TagRight)},
		{"isRight", 1, tagTest("isRight", TagRight, TagLeft)},
		{"unwrapLeft", 1, unwrapImpl("unwrapLeft", TagLeft, TagRight)},
		{"unwrapRight", 1, unwrapImpl("unwrapRight", TagRight, TagLeft)},
		{"eitherEq", 3, eqImpl("eitherEq", TagLeft, TagRight)},
	}
	for _, d := range decls {
		if err := r.Declare(d.name, d.arity, d.fn); err != nil {
			return err
		}
	}
	return nil
}

func choiceArg(opName string, t term.Term, want, other string) (term.Choice, term.Term) {
	c, ok := t.(term.Choice)
	if !ok || (c.Tag != want && c.Tag != other) {
		return term.Choice{}, term.NewFatal(opName, "expected a", want, "or", other, "value, got", term.String(t))
	}
	return c, nil
}

func tagTest(opName, yes, no string) op.Func {
	return func(args []term.Term) term.Term {
		c, fatal := choiceArg(opName, args[0], yes, no)
		if fatal != nil {
			return fatal
		}
		return logic.FromBool(c.Tag == yes)
	}
}

func unwrapImpl(opName, want, other string) op.Func {
	return func(args []term.Term) term.Term {
		c, fatal := choiceArg(opName, args[0], want, other)
		if fatal != nil {
			return fatal
		}
		if c.Tag != want {
			return term.NewFatal(opName, "expected a", want, "value, got a", c.Tag, "value")
		}
		return term.Terms(term.ChoiceData(c)...)
	}
}

// eqImpl compares two choice values: equal tags and, when both carry a
// payload, payload equality under the supplied comparison operation.
func eqImpl(opName, a, b string) op.Func {
	return func(args []term.Term) term.Term {
		cmp := args[0]
		x, fatal := choiceArg(opName, args[1], a, b)
		if fatal != nil {
			return fatal
		}
		y, fatal := choiceArg(opName, args[2], a, b)
		if fatal != nil {
			return fatal
		}
		if x.Tag != y.Tag {
			return logic.False()
		}
		if x.Tag == TagNothing {
			return logic.True()
		}
		return op.Apply2(cmp, term.Terms(term.ChoiceData(x)...), term.Terms(term.ChoiceData(y)...))
	}
}
