package term

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewChoice_EmptyPayloadGetsMarker(t *testing.T) {
	c := NewChoice("nothing")

	assert.Equal(t, "nothing", c.Tag)
	assert.Equal(t, []Term{V(EmptyMarker)}, c.Data)
}

func TestNewChoice_PayloadPreserved(t *testing.T) {
	c := NewChoice("cons", V("1"), V("2"))

	assert.Equal(t, "cons", c.Tag)
	assert.Equal(t, []Term{V("1"), V("2")}, c.Data)
}

func TestQuote_Unquote(t *testing.T) {
	inner := NewCall("add", V("1"), V("2"))

	q := Quote(inner)
	assert.True(t, Equal(inner, Unquote(q)))

	// Unquote on a non-quoted term is the identity.
	assert.True(t, Equal(V("x"), Unquote(V("x"))))
}

func TestEqual_Atoms(t *testing.T) {
	assert.True(t, Equal(V("a", "b"), V("a", "b")))
	assert.False(t, Equal(V("a"), V("b")))
	assert.False(t, Equal(V("a"), V("a", "b")))
}

func TestEqual_DifferentKindsNeverEqual(t *testing.T) {
	assert.False(t, Equal(V("x"), Terms(V("x"))))
	assert.False(t, Equal(Tuple{V("x")}, Terms(V("x"))))
	assert.False(t, Equal(NewChoice("just", V("x")), Tuple{V("just"), V("x")}))
}

func TestEqual_Nested(t *testing.T) {
	a := NewCall("f", Tuple{V("1"), NewChoice("just", V("2"))})
	b := NewCall("f", Tuple{V("1"), NewChoice("just", V("2"))})
	c := NewCall("f", Tuple{V("1"), NewChoice("just", V("3"))})

	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, c))
}

func TestEqual_UnevalDistinguishesCalls(t *testing.T) {
	assert.False(t, Equal(NewCall("f", V("x")), NewCallUneval("f", V("x"))))
}

func TestEqual_Closures(t *testing.T) {
	a := Closure{Arity: 2, Target: V("f"), Env: []Term{V("x")}}
	b := Closure{Arity: 2, Target: V("f"), Env: []Term{V("x")}}
	c := Closure{Arity: 1, Target: V("f"), Env: []Term{V("x")}}

	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, c))
}

func TestEqual_Fatal(t *testing.T) {
	assert.True(t, Equal(NewFatal("op", "a", "b"), NewFatal("op", "a", "b")))
	assert.False(t, Equal(NewFatal("op", "a"), NewFatal("op", "b")))
}

func TestNewCall_ClonesArgs(t *testing.T) {
	args := []Term{V("x")}
	c := NewCall("f", args...)
	args[0] = V("y")

	assert.True(t, Equal(V("x"), c.Args[0]))
}
