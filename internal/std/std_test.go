package std

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgrove/stencil/internal/eval"
	"github.com/mgrove/stencil/internal/harness"
	"github.com/mgrove/stencil/internal/list"
	"github.com/mgrove/stencil/internal/nat"
	"github.com/mgrove/stencil/internal/op"
	"github.com/mgrove/stencil/internal/term"
)

func TestNewRegistry_DeclaresTheStandardLibrary(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	for _, name := range []string{
		"appl", "compose", "match", "matchWithArgs",
		"and", "or", "not", "if", "boolMatch",
		"add", "sub", "mul", "div", "natMatch", "assertIsNat",
		"tuple", "tupleGet0", "tupleGet7", "tupleTail",
		"listMap", "listFoldr", "listFilter", "listUnwrapCommaSep",
		"isJust", "maybeUnwrap", "unwrapLeft",
		"detectIdent", "charEq", "charLit",
	} {
		assert.True(t, r.Declared(name), "missing %q", name)
	}
}

func TestMustNewRegistry_DoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() { MustNewRegistry() })
}

// Applying argument groups one at a time is equivalent to invoking the
// operation with all of them at once.
func TestApplication_GroupingEquivalence(t *testing.T) {
	h := harness.New(MustNewRegistry())

	assert.NoError(t, h.AssertEq(
		op.Apply2(term.V("add"), nat.N(3), nat.N(4)),
		term.NewCall("add", nat.N(3), nat.N(4))))

	assert.NoError(t, h.AssertEq(
		op.Apply3(term.V("add3"), nat.N(1), nat.N(2), nat.N(3)),
		term.NewCall("add3", nat.N(1), nat.N(2), nat.N(3))))
}

func TestApplication_PartialApplicationIsAValue(t *testing.T) {
	ev := eval.New(MustNewRegistry())

	res, err := ev.Eval(op.Apply(term.V("add"), nat.N(3)))
	require.NoError(t, err)

	clo, ok := res.(term.Closure)
	require.True(t, ok, "got %s", term.String(res))
	assert.Equal(t, 1, clo.Arity)
}

func TestApplication_OverApplicationIsFatal(t *testing.T) {
	ev := eval.New(MustNewRegistry())

	// add(3, 4) fires and produces a numeral; handing it another group
	// is a contract violation.
	_, err := ev.Eval(op.Apply(op.Apply2(term.V("add"), nat.N(3), nat.N(4)), nat.N(5)))
	require.Error(t, err)
	assert.True(t, eval.IsFatalError(err))
}

func TestCompose_Equivalence(t *testing.T) {
	h := harness.New(MustNewRegistry())

	// (inc . dec) x == x, and the composition order matters against a
	// non-commutative pairing.
	assert.NoError(t, h.AssertEq(
		op.Apply(op.Compose(term.V("inc"), term.V("dec")), nat.N(5)),
		nat.N(5)))
	assert.NoError(t, h.AssertEq(
		op.Apply(op.Compose(term.V("inc"), term.V("inc")), nat.N(5)),
		term.NewCall("inc", term.NewCall("inc", nat.N(5)))))
}

// newTreeRegistry declares a binary-tree sum over choice dispatch:
// leaf(n) and node(left, right), summed by the SUM_ handler family.
func newTreeRegistry(t *testing.T) *op.Registry {
	t.Helper()
	r := MustNewRegistry()

	r.MustDeclare("treeSum", 1, func(args []term.Term) term.Term {
		return op.Match(args[0], "SUM_")
	})
	require.NoError(t, op.DeclareFamily(r, "SUM_",
		op.Handler{Tag: "leaf", Arity: 1, Fn: func(args []term.Term) term.Term {
			return args[0]
		}},
		op.Handler{Tag: "node", Arity: 2, Fn: func(args []term.Term) term.Term {
			return term.NewCall("add",
				term.NewCall("treeSum", args[0]),
				term.NewCall("treeSum", args[1]))
		}},
	))
	require.NoError(t, op.CheckFamily(r, "SUM_", "leaf", "node"))
	return r
}

func leaf(n int) term.Term { return term.NewChoice("leaf", nat.N(n)) }

func node(l, r term.Term) term.Term { return term.NewChoice("node", l, r) }

func TestChoiceDispatch_TreeSum(t *testing.T) {
	h := harness.New(newTreeRegistry(t))

	// Seven nodes: ((1 2) 3) ((4 5) (6 7)) summing to 28.
	tree := node(
		node(node(leaf(1), leaf(2)), leaf(3)),
		node(node(leaf(4), leaf(5)), node(leaf(6), leaf(7))),
	)
	assert.NoError(t, h.AssertEq(term.NewCall("treeSum", tree), nat.N(28)))
}

func TestChoiceDispatch_IsDeterministic(t *testing.T) {
	r := newTreeRegistry(t)

	tree := node(leaf(1), node(leaf(2), leaf(3)))
	ev := eval.New(r)

	first, err := ev.EvalTokens(term.NewCall("treeSum", tree))
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := ev.EvalTokens(term.NewCall("treeSum", tree))
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestChoiceDispatch_MissingHandlerIsStructuredFailure(t *testing.T) {
	r := newTreeRegistry(t)
	ev := eval.New(r)

	_, err := ev.Eval(term.NewCall("treeSum", term.NewChoice("branch", leaf(1), leaf(2))))
	require.Error(t, err)
	assert.True(t, eval.IsUndefinedOpError(err))
}

func TestStandardLibrary_LargeProgramWithinBudget(t *testing.T) {
	h := harness.New(MustNewRegistry())

	// Replicate-then-map over 130 elements, reduced to a length check.
	big := list.Replicate(nat.N(130), nat.N(1))
	assert.NoError(t, h.AssertEq(list.Len(list.Map(term.V("inc"), big)), nat.N(130)))
}
