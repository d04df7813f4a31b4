package gen

import (
	"github.com/mgrove/stencil/internal/list"
	"github.com/mgrove/stencil/internal/op"
	"github.com/mgrove/stencil/internal/term"
)

// Braced wraps tokens in curly braces.
func Braced(t term.Term) term.Term { return term.NewCall("braced", t) }

// Semicoloned terminates tokens with ";".
func Semicoloned(t term.Term) term.Term { return term.NewCall("semicoloned", t) }

// Parenthesized wraps tokens in parentheses.
func Parenthesized(t term.Term) term.Term { return term.NewCall("parenthesized", t) }

// FuncType renders a Go function type from a parameter list and a
// result type.
func FuncType(params, result term.Term) term.Term {
	return term.NewCall("funcType", params, result)
}

// Register installs the token-chaining operations and the genDecl
// handler family.
func Register(r *op.Registry) error {
	chain := []struct {
		name  string
		arity int
		fn    op.Func
	}{
		{"braced", 1, bracedImpl},
		{"semicoloned", 1, semicolonedImpl},
		{"parenthesized", 1, parenthesizedImpl},
		{"funcType", 2, funcTypeImpl},
		{"genDecl", 1, genDeclImpl},
	}
	for _, o := range chain {
		if err := r.Declare(o.name, o.arity, o.fn); err != nil {
			return err
		}
	}

	if err := op.DeclareFamily(r, "genDecl_",
		op.Handler{Tag: "sum", Arity: 2, Fn: sumImpl},
		op.Handler{Tag: "record", Arity: 2, Fn: recordImpl},
		op.Handler{Tag: "enum", Arity: 2, Fn: enumImpl},
		op.Handler{Tag: "func", Arity: 3, Fn: funcImpl},
	); err != nil {
		return err
	}
	return op.CheckFamily(r, "genDecl_", "sum", "record", "enum", "func")
}

func bracedImpl(args []term.Term) term.Term {
	return term.Terms(term.V("{"), args[0], term.V("}"))
}

func semicolonedImpl(args []term.Term) term.Term {
	return term.Terms(args[0], term.V(";"))
}

func parenthesizedImpl(args []term.Term) term.Term {
	return term.Terms(term.V("("), args[0], term.V(")"))
}

func funcTypeImpl(args []term.Term) term.Term {
	return term.Terms(
		term.V("func"),
		Parenthesized(list.UnwrapCommaSep(args[0])),
		args[1],
	)
}

func genDeclImpl(args []term.Term) term.Term {
	return op.Match(args[0], "genDecl_")
}
