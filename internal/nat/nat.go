// Package nat provides bounded natural numbers [0, 255] and arithmetic
// over them, built entirely on the core call protocol. Numbers are meant
// for iteration counts and indices, not CPU-bound arithmetic.
package nat

import (
	"strconv"

	"github.com/mgrove/stencil/internal/adt"
	"github.com/mgrove/stencil/internal/logic"
	"github.com/mgrove/stencil/internal/op"
	"github.com/mgrove/stencil/internal/term"
)

// Max is the largest representable natural number.
const Max = 255

// N builds the literal numeral for n. Values outside [0, Max] are the
// caller's error and surface as a fatal once an operation consumes them.
func N(n int) term.Term {
	return term.V(strconv.Itoa(n))
}

// Register declares the natural-number operations.
func Register(r *op.Registry) error {
	decls := []struct {
		name  string
		arity int
		fn    op.Func
	}{
		{"inc", 1, unaryImpl("inc", func(x int) (int, bool) { return x + 1, x+1 <= Max })},
		{"dec", 1, unaryImpl("dec", func(x int) (int, bool) { return x - 1, x-1 >= 0 })},
		{"add", 2, binaryImpl("add", func(x, y int) (int, bool) { return x + y, x+y <= Max })},
		{"sub", 2, binaryImpl("sub", func(x, y int) (int, bool) { return x - y, x-y >= 0 })},
		{"mul", 2, binaryImpl("mul", func(x, y int) (int, bool) { return x * y, x*y <= Max })},
		{"div", 2, divImpl},
		{"divChecked", 2, divCheckedImpl},
		{"mod", 2, modImpl},
		{"add3", 3, add3Impl},
		{"natEq", 2, cmpImpl("natEq", func(x, y int) bool { return x == y })},
		{"natNeq", 2, cmpImpl("natNeq", func(x, y int) bool { return x != y })},
		{"greater", 2, cmpImpl("greater", func(x, y int) bool { return x > y })},
		{"greaterEq", 2, cmpImpl("greaterEq", func(x, y int) bool { return x >= y })},
		{"lesser", 2, cmpImpl("lesser", func(x, y int) bool { return x < y })},
		{"lesserEq", 2, cmpImpl("lesserEq", func(x, y int) bool { return x <= y })},
		{"natMatch", 2, natMatchImpl},
		{"natMatchWithArgs", 3, natMatchWithArgsImpl},
		{"assertIsNat", 1, assertIsNatImpl},
	}
	for _, d := range decls {
		if err := r.Declare(d.name, d.arity, d.fn); err != nil {
			return err
		}
	}
	return nil
}

// Arg extracts a numeral from a reduced argument. The fatal term is
// non-nil when the argument is not a natural number in range.
func Arg(opName string, t term.Term) (int, term.Term) {
	a, ok := t.(term.Atoms)
	if !ok || len(a) != 1 {
		return 0, term.NewFatal(opName, "expected a natural number, got", term.String(t))
	}
	n, err := strconv.Atoi(a[0])
	if err != nil || n < 0 || n > Max {
		return 0, term.NewFatal(opName, "expected a natural number in [0,", strconv.Itoa(Max), "], got", a[0])
	}
	return n, nil
}

// twoArgs extracts both operands of a binary operation.
func twoArgs(name string, args []term.Term) (int, int, term.Term) {
	x, fatal := Arg(name, args[0])
	if fatal != nil {
		return 0, 0, fatal
	}
	y, fatal := Arg(name, args[1])
	if fatal != nil {
		return 0, 0, fatal
	}
	return x, y, nil
}

func unaryImpl(name string, f func(x int) (int, bool)) op.Func {
	return func(args []term.Term) term.Term {
		x, fatal := Arg(name, args[0])
		if fatal != nil {
			return fatal
		}
		res, ok := f(x)
		if !ok {
			return term.NewFatal(name, "result out of range on", strconv.Itoa(x))
		}
		return N(res)
	}
}

func binaryImpl(name string, f func(x, y int) (int, bool)) op.Func {
	return func(args []term.Term) term.Term {
		x, y, fatal := twoArgs(name, args)
		if fatal != nil {
			return fatal
		}
		res, ok := f(x, y)
		if !ok {
			return term.NewFatal(name, "result out of range on", strconv.Itoa(x), "and", strconv.Itoa(y))
		}
		return N(res)
	}
}

func cmpImpl(name string, f func(x, y int) bool) op.Func {
	return func(args []term.Term) term.Term {
		x, y, fatal := twoArgs(name, args)
		if fatal != nil {
			return fatal
		}
		return logic.FromBool(f(x, y))
	}
}

func divImpl(args []term.Term) term.Term {
	x, y, fatal := twoArgs("div", args)
	if fatal != nil {
		return fatal
	}
	if y == 0 || x%y != 0 {
		return term.NewFatal("div", strconv.Itoa(x), "is not divisible by", strconv.Itoa(y))
	}
	return N(x / y)
}

// divCheckedImpl is the total variant: it reduces to a just/nothing choice
// instead of a fatal marker on indivisible operands.
func divCheckedImpl(args []term.Term) term.Term {
	x, y, fatal := twoArgs("divChecked", args)
	if fatal != nil {
		return fatal
	}
	if y == 0 || x%y != 0 {
		return adt.Nothing()
	}
	return adt.Just(N(x / y))
}

func modImpl(args []term.Term) term.Term {
	x, y, fatal := twoArgs("mod", args)
	if fatal != nil {
		return fatal
	}
	if y == 0 {
		return term.NewFatal("mod", "division by zero on", strconv.Itoa(x))
	}
	return N(x % y)
}

func add3Impl(args []term.Term) term.Term {
	x, fatal := Arg("add3", args[0])
	if fatal != nil {
		return fatal
	}
	y, fatal := Arg("add3", args[1])
	if fatal != nil {
		return fatal
	}
	z, fatal := Arg("add3", args[2])
	if fatal != nil {
		return fatal
	}
	if x+y+z > Max {
		return term.NewFatal("add3", "result out of range")
	}
	return N(x + y + z)
}

// natMatchImpl routes a numeral to the zero or successor handler: prefix+Z
// with no payload for 0, prefix+S with the predecessor for anything else.
func natMatchImpl(args []term.Term) term.Term {
	return natDispatch("natMatch", args[0], args[1], nil)
}

func natMatchWithArgsImpl(args []term.Term) term.Term {
	return natDispatch("natMatchWithArgs", args[0], args[1], args[2:])
}

func natDispatch(via string, num, prefix term.Term, extra []term.Term) term.Term {
	n, fatal := Arg(via, num)
	if fatal != nil {
		return fatal
	}
	p, ok := prefix.(term.Atoms)
	if !ok || len(p) != 1 {
		return term.NewFatal(via, "expected a handler prefix, got", term.String(prefix))
	}
	if n == 0 {
		return term.NewCallUneval(p[0]+"Z", extra...)
	}
	handlerArgs := append([]term.Term{N(n - 1)}, extra...)
	return term.NewCallUneval(p[0]+"S", handlerArgs...)
}

// assertIsNatImpl is the guard form: emptiness on a numeral, fatal on
// anything else.
func assertIsNatImpl(args []term.Term) term.Term {
	if _, fatal := Arg("assertIsNat", args[0]); fatal != nil {
		return fatal
	}
	return term.Terms()
}
