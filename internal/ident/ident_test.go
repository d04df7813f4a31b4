package ident

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgrove/stencil/internal/eval"
	"github.com/mgrove/stencil/internal/harness"
	"github.com/mgrove/stencil/internal/logic"
	"github.com/mgrove/stencil/internal/op"
	"github.com/mgrove/stencil/internal/term"
)

func newHarness(t *testing.T) (*harness.Harness, *op.Registry) {
	t.Helper()
	r := op.NewRegistry()
	require.NoError(t, logic.Register(r))
	require.NoError(t, Register(r))
	return harness.New(r), r
}

func TestDetectIdent_MembershipByDeclaration(t *testing.T) {
	h, r := newHarness(t)

	// Declaring COLOR_red puts "red" into the COLOR_ detector set.
	r.MustDeclare("COLOR_red", 1, func([]term.Term) term.Term { return term.Terms() })

	assert.NoError(t, h.Assert(DetectIdent("COLOR_", term.V("red"))))
	assert.NoError(t, h.AssertEq(DetectIdent("COLOR_", term.V("blue")), logic.False()))
}

func TestIdentEq_ByDeclaredPair(t *testing.T) {
	h, r := newHarness(t)

	r.MustDeclare("CMP_foo_foo", 1, func([]term.Term) term.Term { return term.Terms() })

	assert.NoError(t, h.Assert(term.NewCall("identEq", term.V("CMP_"), term.V("foo"), term.V("foo"))))
	assert.NoError(t, h.AssertEq(
		term.NewCall("identEq", term.V("CMP_"), term.V("foo"), term.V("bar")), logic.False()))
}

func TestCharEq(t *testing.T) {
	h, _ := newHarness(t)

	assert.NoError(t, h.Assert(CharEq(term.V("a"), term.V("a"))))
	assert.NoError(t, h.AssertEq(CharEq(term.V("a"), term.V("b")), logic.False()))

	// Multi-character identifiers are never char-equal.
	assert.NoError(t, h.AssertEq(CharEq(term.V("ab"), term.V("ab")), logic.False()))
}

func TestCharClasses(t *testing.T) {
	h, _ := newHarness(t)

	assert.NoError(t, h.Assert(term.NewCall("isLowercase", term.V("q"))))
	assert.NoError(t, h.AssertEq(term.NewCall("isLowercase", term.V("Q")), logic.False()))
	assert.NoError(t, h.Assert(term.NewCall("isUppercase", term.V("Q"))))
	assert.NoError(t, h.Assert(term.NewCall("isDigit", term.V("7"))))
	assert.NoError(t, h.Assert(term.NewCall("isChar", term.V("_"))))
	assert.NoError(t, h.AssertEq(term.NewCall("isChar", term.V("ab")), logic.False()))
}

func TestIdent_NonIdentifierIsFatal(t *testing.T) {
	_, r := newHarness(t)
	ev := eval.New(r)

	_, err := ev.Eval(term.NewCall("isLowercase", term.V("a-b")))
	require.Error(t, err)
	assert.True(t, eval.IsFatalError(err))
}

func TestCharLit(t *testing.T) {
	h, r := newHarness(t)

	assert.NoError(t, h.AssertEq(term.NewCall("charLit", term.V("x")), term.V("'x'")))

	ev := eval.New(r)
	_, err := ev.Eval(term.NewCall("charLit", term.V("xy")))
	assert.True(t, eval.IsFatalError(err))
}

func TestCharClassExpansions(t *testing.T) {
	_, r := newHarness(t)
	ev := eval.New(r)

	tokens, err := ev.EvalTokens(term.NewCall("digitChars", term.V("_")))
	require.NoError(t, err)
	// 10 digits with 9 comma separators.
	require.Len(t, tokens, 19)
	assert.Equal(t, "0", tokens[0])
	assert.Equal(t, ",", tokens[1])
	assert.Equal(t, "9", tokens[18])

	tokens, err = ev.EvalTokens(term.NewCall("lowercaseChars", term.V("_")))
	require.NoError(t, err)
	assert.Len(t, tokens, 51)
}
