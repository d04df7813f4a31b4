package op

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgrove/stencil/internal/term"
)

func TestDeclareFamily_RegistersAllHandlers(t *testing.T) {
	r := NewRegistry()

	err := DeclareFamily(r, "SHAPE_",
		Handler{Tag: "circle", Arity: 1, Fn: echo},
		Handler{Tag: "rect", Arity: 2, Fn: echo},
	)
	require.NoError(t, err)

	assert.True(t, r.Declared("SHAPE_circle"))
	assert.True(t, r.Declared("SHAPE_rect"))
}

func TestCheckFamily_Exhaustive(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, DeclareFamily(r, "SHAPE_",
		Handler{Tag: "circle", Arity: 1, Fn: echo},
		Handler{Tag: "rect", Arity: 2, Fn: echo},
	))

	assert.NoError(t, CheckFamily(r, "SHAPE_", "circle", "rect"))
}

func TestCheckFamily_MissingHandlerReported(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, DeclareFamily(r, "SHAPE_",
		Handler{Tag: "circle", Arity: 1, Fn: echo},
	))

	err := CheckFamily(r, "SHAPE_", "circle", "rect", "triangle")
	require.Error(t, err)
	assert.True(t, IsFamilyError(err))

	var fe *FamilyError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "SHAPE_", fe.Prefix)
	assert.Equal(t, []string{"rect", "triangle"}, fe.Missing)
}

func TestDeclareFamily_ConflictSurfaces(t *testing.T) {
	r := NewRegistry()
	r.MustDeclare("SHAPE_circle", 1, echo)

	err := DeclareFamily(r, "SHAPE_",
		Handler{Tag: "circle", Arity: 1, Fn: echo},
	)
	assert.True(t, IsRedeclaredError(err))
}

func TestApplyHelpers_BuildExpectedCalls(t *testing.T) {
	// Apply2/3/4 nest one group at a time.
	f := term.V("f")
	a, b, c := term.V("a"), term.V("b"), term.V("c")

	assert.True(t, term.Equal(Apply(Apply(f, a), b), Apply2(f, a, b)))
	assert.True(t, term.Equal(Apply(Apply2(f, a, b), c), Apply3(f, a, b, c)))
}
