// Package tuple provides product values "(x1, ..., xN)" over the core
// protocol: construction, projection, append/prepend, and the tuple guard.
package tuple

import (
	"fmt"
	"strconv"

	"github.com/mgrove/stencil/internal/logic"
	"github.com/mgrove/stencil/internal/op"
	"github.com/mgrove/stencil/internal/term"
)

// MaxGet is the largest index served by the tupleGet family.
const MaxGet = 7

// New builds a tuple from its elements.
func New(elems ...term.Term) term.Term {
	return term.Tuple(elems)
}

// Register declares the tuple operations, including one projection
// operation per index 0..MaxGet.
func Register(r *op.Registry) error {
	decls := []struct {
		name  string
		arity int
		fn    op.Func
	}{
		{"tuple", 1, tupleImpl},
		{"untuple", 1, untupleImpl},
		{"isTuple", 1, isTupleImpl},
		{"isUntuple", 1, isUntupleImpl},
		{"tupleCount", 1, tupleCountImpl},
		{"tupleIsSingle", 1, tupleIsSingleImpl},
		{"tupleTail", 1, tupleTailImpl},
		{"tupleAppend", 2, tupleAppendImpl},
		{"tuplePrepend", 2, tuplePrependImpl},
		{"assertIsTuple", 1, assertIsTupleImpl},
	}
	for _, d := range decls {
		if err := r.Declare(d.name, d.arity, d.fn); err != nil {
			return err
		}
	}
	for i := 0; i <= MaxGet; i++ {
		if err := r.Declare(GetOp(i), 1, getImpl(i)); err != nil {
			return err
		}
	}
	return nil
}

// GetOp names the projection operation for index i.
func GetOp(i int) string {
	return "tupleGet" + strconv.Itoa(i)
}

// Get builds a projection of the i-indexed element of t.
func Get(i int, t term.Term) term.Term {
	return term.NewCall(GetOp(i), t)
}

// Arg extracts a tuple from a reduced argument. The fatal term is non-nil
// when the argument is not a tuple.
func Arg(opName string, t term.Term) (term.Tuple, term.Term) {
	tp, ok := t.(term.Tuple)
	if !ok {
		return nil, term.NewFatal(opName, "expected a tuple, got", term.String(t))
	}
	return tp, nil
}

// tupleImpl wraps its argument group into a tuple. A Seq argument spreads
// into individual elements, so "tuple" over several values builds the
// expected product.
func tupleImpl(args []term.Term) term.Term {
	return term.Tuple(spread(args[0]))
}

func untupleImpl(args []term.Term) term.Term {
	tp, fatal := Arg("untuple", args[0])
	if fatal != nil {
		return fatal
	}
	return term.Terms(tp...)
}

func isTupleImpl(args []term.Term) term.Term {
	_, ok := args[0].(term.Tuple)
	return logic.FromBool(ok)
}

func isUntupleImpl(args []term.Term) term.Term {
	_, ok := args[0].(term.Tuple)
	return logic.FromBool(!ok)
}

func tupleCountImpl(args []term.Term) term.Term {
	tp, fatal := Arg("tupleCount", args[0])
	if fatal != nil {
		return fatal
	}
	return term.V(strconv.Itoa(len(tp)))
}

func tupleIsSingleImpl(args []term.Term) term.Term {
	tp, fatal := Arg("tupleIsSingle", args[0])
	if fatal != nil {
		return fatal
	}
	return logic.FromBool(len(tp) == 1)
}

func getImpl(i int) op.Func {
	name := GetOp(i)
	return func(args []term.Term) term.Term {
		tp, fatal := Arg(name, args[0])
		if fatal != nil {
			return fatal
		}
		if i >= len(tp) {
			return term.NewFatal(name, "index", strconv.Itoa(i), "out of range for",
				fmt.Sprintf("%d-tuple", len(tp)))
		}
		return tp[i]
	}
}

func tupleTailImpl(args []term.Term) term.Term {
	tp, fatal := Arg("tupleTail", args[0])
	if fatal != nil {
		return fatal
	}
	if len(tp) < 2 {
		return term.NewFatal("tupleTail", "expected at least two elements, got", strconv.Itoa(len(tp)))
	}
	return term.Tuple(tp[1:])
}

func tupleAppendImpl(args []term.Term) term.Term {
	tp, fatal := Arg("tupleAppend", args[0])
	if fatal != nil {
		return fatal
	}
	return term.Tuple(append(append([]term.Term{}, tp...), spread(args[1])...))
}

func tuplePrependImpl(args []term.Term) term.Term {
	tp, fatal := Arg("tuplePrepend", args[0])
	if fatal != nil {
		return fatal
	}
	return term.Tuple(append(spread(args[1]), tp...))
}

// assertIsTupleImpl is the guard form: emptiness on a tuple, fatal
// otherwise.
func assertIsTupleImpl(args []term.Term) term.Term {
	if _, fatal := Arg("assertIsTuple", args[0]); fatal != nil {
		return fatal
	}
	return term.Terms()
}

func spread(t term.Term) []term.Term {
	if s, ok := t.(term.Seq); ok {
		return append([]term.Term{}, s...)
	}
	return []term.Term{t}
}
