// Package logic provides boolean algebra over the core protocol: truth
// values as literal tokens, logical connectives as operations, and bool
// matching as tag dispatch. It is ordinary client code of the evaluator;
// it introduces no new machinery.
package logic

import (
	"github.com/mgrove/stencil/internal/op"
	"github.com/mgrove/stencil/internal/term"
)

// Truth tokens.
const (
	TrueToken  = "1"
	FalseToken = "0"
)

// True is the truth value.
func True() term.Term { return term.V(TrueToken) }

// False is the falsehood value.
func False() term.Term { return term.V(FalseToken) }

// FromBool converts a Go bool to a truth value.
func FromBool(b bool) term.Term {
	if b {
		return True()
	}
	return False()
}

// Register declares the boolean operations.
func Register(r *op.Registry) error {
	decls := []struct {
		name  string
		arity int
		fn    op.Func
	}{
		{"not", 1, notImpl},
		{"and", 2, binImpl("and", func(a, b bool) bool { return a && b })},
		{"or", 2, binImpl("or", func(a, b bool) bool { return a || b })},
		{"xor", 2, binImpl("xor", func(a, b bool) bool { return a != b })},
		{"boolEq", 2, binImpl("boolEq", func(a, b bool) bool { return a == b })},
		{"if", 3, ifImpl},
		{"boolMatch", 2, boolMatchImpl},
		{"boolMatchWithArgs", 3, boolMatchWithArgsImpl},
	}
	for _, d := range decls {
		if err := r.Declare(d.name, d.arity, d.fn); err != nil {
			return err
		}
	}
	return nil
}

// If builds a lazy conditional: only the selected branch is ever reduced.
func If(cond, x, y term.Term) term.Term {
	return term.NewCall("if", cond, term.Quote(x), term.Quote(y))
}

// Not builds a negation of cond.
func Not(cond term.Term) term.Term {
	return term.NewCall("not", cond)
}

// Arg extracts a truth token from a reduced argument. The fatal term is
// non-nil when the argument is not a boolean.
func Arg(opName string, t term.Term) (bool, term.Term) {
	a, ok := t.(term.Atoms)
	if !ok || len(a) != 1 || (a[0] != TrueToken && a[0] != FalseToken) {
		return false, term.NewFatal(opName, "expected a boolean (0 or 1), got", term.String(t))
	}
	return a[0] == TrueToken, nil
}

func notImpl(args []term.Term) term.Term {
	b, fatal := Arg("not", args[0])
	if fatal != nil {
		return fatal
	}
	return FromBool(!b)
}

func binImpl(name string, f func(a, b bool) bool) op.Func {
	return func(args []term.Term) term.Term {
		a, fatal := Arg(name, args[0])
		if fatal != nil {
			return fatal
		}
		b, fatal := Arg(name, args[1])
		if fatal != nil {
			return fatal
		}
		return FromBool(f(a, b))
	}
}

func ifImpl(args []term.Term) term.Term {
	cond, fatal := Arg("if", args[0])
	if fatal != nil {
		return fatal
	}
	if cond {
		return term.Unquote(args[1])
	}
	return term.Unquote(args[2])
}

// boolMatchImpl routes a truth value to the handler named prefix + token.
// The handler is invoked with no payload.
func boolMatchImpl(args []term.Term) term.Term {
	return boolDispatch("boolMatch", args[0], args[1], nil)
}

func boolMatchWithArgsImpl(args []term.Term) term.Term {
	return boolDispatch("boolMatchWithArgs", args[0], args[1], args[2:])
}

func boolDispatch(via string, cond, prefix term.Term, extra []term.Term) term.Term {
	b, fatal := Arg(via, cond)
	if fatal != nil {
		return fatal
	}
	p, ok := prefix.(term.Atoms)
	if !ok || len(p) != 1 {
		return term.NewFatal(via, "expected a handler prefix, got", term.String(prefix))
	}
	tag := FalseToken
	if b {
		tag = TrueToken
	}
	return term.NewCallUneval(p[0]+tag, extra...)
}
