package term

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_AtomsAndSeqsFlatten(t *testing.T) {
	tokens, err := Render(Terms(V("a"), Terms(V("b"), V("c")), V("d")))

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d"}, tokens)
}

func TestRender_EmptySeqRendersNothing(t *testing.T) {
	tokens, err := Render(Terms())

	require.NoError(t, err)
	assert.Empty(t, tokens)
}

func TestRender_TupleParenthesized(t *testing.T) {
	tokens, err := Render(Tuple{V("1"), V("2"), V("3")})

	require.NoError(t, err)
	assert.Equal(t, []string{"(", "1", ",", "2", ",", "3", ")"}, tokens)
}

func TestRender_ChoiceRendersAsTaggedTuple(t *testing.T) {
	tokens, err := Render(NewChoice("just", V("5")))

	require.NoError(t, err)
	assert.Equal(t, []string{"(", "just", ",", "5", ")"}, tokens)
}

func TestRender_QuotedRendersBody(t *testing.T) {
	tokens, err := Render(Quote(V("x")))

	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, tokens)
}

func TestRender_RejectsResiduals(t *testing.T) {
	cases := []struct {
		name string
		in   Term
		kind string
	}{
		{"pending call", NewCall("f", V("x")), "pending invocation"},
		{"closure", Closure{Arity: 1, Target: V("f")}, "unapplied closure"},
		{"fatal", NewFatal("f", "boom"), "fatal marker"},
		{"abort", Abort{Body: V("x")}, "abort marker"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Render(tc.in)
			require.Error(t, err)

			var re *RenderError
			require.ErrorAs(t, err, &re)
			assert.Equal(t, tc.kind, re.Kind)
		})
	}
}

func TestIsReduced(t *testing.T) {
	assert.True(t, IsReduced(V("x")))
	assert.True(t, IsReduced(Tuple{V("1"), NewChoice("just", V("2"))}))
	assert.True(t, IsReduced(Closure{Arity: 1, Target: V("f"), Env: []Term{V("x")}}))

	assert.False(t, IsReduced(NewCall("f")))
	assert.False(t, IsReduced(Terms(V("x"), NewCall("f"))))
	assert.False(t, IsReduced(Tuple{NewCall("f")}))
	assert.False(t, IsReduced(NewFatal("f", "boom")))
	assert.False(t, IsReduced(Abort{Body: V("x")}))
}

func TestIsReduced_QuotedShieldsBody(t *testing.T) {
	// The body of a quote is untouched by reduction, pending call or not.
	assert.True(t, IsReduced(Quote(NewCall("f", V("x")))))
}

func TestString_Total(t *testing.T) {
	assert.Equal(t, "a b", String(V("a", "b")))
	assert.Equal(t, "<call f 1>", String(NewCall("f", V("1"))))
	assert.Equal(t, "<closure/2 f x>", String(Closure{Arity: 2, Target: V("f"), Env: []Term{V("x")}}))
	assert.Equal(t, "(1, 2)", String(Tuple{V("1"), V("2")}))
	assert.Equal(t, "(just, 5)", String(NewChoice("just", V("5"))))
	assert.Equal(t, "<fatal div: not divisible>", String(NewFatal("div", "not", "divisible")))
	assert.Equal(t, "<quote x>", String(Quote(V("x"))))
	assert.Equal(t, "<abort x>", String(Abort{Body: V("x")}))
}
