package adt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgrove/stencil/internal/adt"
	"github.com/mgrove/stencil/internal/eval"
	"github.com/mgrove/stencil/internal/harness"
	"github.com/mgrove/stencil/internal/logic"
	"github.com/mgrove/stencil/internal/nat"
	"github.com/mgrove/stencil/internal/op"
	"github.com/mgrove/stencil/internal/term"
)

func newHarness(t *testing.T) (*harness.Harness, *op.Registry) {
	t.Helper()
	r := op.NewRegistry()
	require.NoError(t, logic.Register(r))
	require.NoError(t, adt.Register(r))
	require.NoError(t, nat.Register(r))
	return harness.New(r), r
}

func TestMaybe_TagTests(t *testing.T) {
	h, _ := newHarness(t)

	assert.NoError(t, h.Assert(term.NewCall("isJust", adt.Just(nat.N(5)))))
	assert.NoError(t, h.AssertEq(term.NewCall("isJust", adt.Nothing()), logic.False()))
	assert.NoError(t, h.Assert(term.NewCall("isNothing", adt.Nothing())))
}

func TestMaybe_Unwrap(t *testing.T) {
	h, _ := newHarness(t)

	assert.NoError(t, h.AssertEq(term.NewCall("maybeUnwrap", adt.Just(nat.N(5))), nat.N(5)))
}

func TestMaybe_UnwrapNothingIsFatal(t *testing.T) {
	_, r := newHarness(t)
	ev := eval.New(r)

	_, err := ev.Eval(term.NewCall("maybeUnwrap", adt.Nothing()))
	require.Error(t, err)
	assert.True(t, eval.IsFatalError(err))
}

func TestMaybe_WrongKindIsFatal(t *testing.T) {
	_, r := newHarness(t)
	ev := eval.New(r)

	// An either value is not a maybe value.
	_, err := ev.Eval(term.NewCall("isJust", adt.Left(nat.N(1))))
	assert.True(t, eval.IsFatalError(err))

	_, err = ev.Eval(term.NewCall("isJust", nat.N(1)))
	assert.True(t, eval.IsFatalError(err))
}

func TestMaybeEq(t *testing.T) {
	h, _ := newHarness(t)

	cmp := term.V("natEq")
	assert.NoError(t, h.Assert(term.NewCall("maybeEq", cmp, adt.Just(nat.N(3)), adt.Just(nat.N(3)))))
	assert.NoError(t, h.AssertEq(
		term.NewCall("maybeEq", cmp, adt.Just(nat.N(3)), adt.Just(nat.N(4))), logic.False()))
	assert.NoError(t, h.AssertEq(
		term.NewCall("maybeEq", cmp, adt.Just(nat.N(3)), adt.Nothing()), logic.False()))

	// Two nothings are equal without consulting the comparison.
	assert.NoError(t, h.Assert(term.NewCall("maybeEq", cmp, adt.Nothing(), adt.Nothing())))
}

func TestEither_TagTestsAndUnwrap(t *testing.T) {
	h, _ := newHarness(t)

	assert.NoError(t, h.Assert(term.NewCall("isLeft", adt.Left(term.V("x")))))
	assert.NoError(t, h.Assert(term.NewCall("isRight", adt.Right(term.V("y")))))
	assert.NoError(t, h.AssertEq(term.NewCall("isLeft", adt.Right(term.V("y"))), logic.False()))

	assert.NoError(t, h.AssertEq(term.NewCall("unwrapLeft", adt.Left(term.V("x"))), term.V("x")))
	assert.NoError(t, h.AssertEq(term.NewCall("unwrapRight", adt.Right(term.V("y"))), term.V("y")))
}

func TestEither_WrongSideUnwrapIsFatal(t *testing.T) {
	_, r := newHarness(t)
	ev := eval.New(r)

	_, err := ev.Eval(term.NewCall("unwrapLeft", adt.Right(term.V("y"))))
	require.Error(t, err)
	assert.True(t, eval.IsFatalError(err))
}

func TestEitherEq(t *testing.T) {
	h, _ := newHarness(t)

	cmp := term.V("natEq")
	assert.NoError(t, h.Assert(term.NewCall("eitherEq", cmp, adt.Left(nat.N(1)), adt.Left(nat.N(1)))))
	assert.NoError(t, h.AssertEq(
		term.NewCall("eitherEq", cmp, adt.Left(nat.N(1)), adt.Right(nat.N(1))), logic.False()))
	assert.NoError(t, h.AssertEq(
		term.NewCall("eitherEq", cmp, adt.Right(nat.N(1)), adt.Right(nat.N(2))), logic.False()))
}
