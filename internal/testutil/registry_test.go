package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgrove/stencil/internal/eval"
	"github.com/mgrove/stencil/internal/term"
)

func TestDeclareEcho(t *testing.T) {
	r := NewRegistry()
	DeclareEcho(r, "echo", 2)

	tokens, err := eval.New(r).EvalTokens(term.NewCall("echo", term.V("a"), term.V("b")))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, tokens)
}

func TestDeclareConst(t *testing.T) {
	r := NewRegistry()
	DeclareConst(r, "always", 1, term.V("fixed"))

	tokens, err := eval.New(r).EvalTokens(term.NewCall("always", term.V("ignored")))
	require.NoError(t, err)
	assert.Equal(t, []string{"fixed"}, tokens)
}

func TestCallCounter(t *testing.T) {
	r := NewRegistry()
	c := NewCallCounter()
	c.Declare(r, "watched", 1)

	ev := eval.New(r)
	for i := 0; i < 3; i++ {
		_, err := ev.EvalTokens(term.NewCall("watched", term.V("x")))
		require.NoError(t, err)
	}

	assert.Equal(t, 3, c.Count("watched"))
	assert.Equal(t, 0, c.Count("never-declared"))

	c.Reset()
	assert.Equal(t, 0, c.Count("watched"))
}

func TestTokens(t *testing.T) {
	assert.Equal(t, "a b c", Tokens([]string{"a", "b", "c"}))
	assert.Equal(t, "", Tokens(nil))
}
