// Package ident provides identifier and character classification over the
// core protocol. An identifier is a token of [a-zA-Z0-9_]+; a character is
// a single-rune identifier.
//
// Detection follows the open, prefix-based convention of the dispatch
// facility: DetectIdent(prefix, x) is true exactly when an operation named
// prefix + x is declared, so a detector set is extended by declaring one
// more operation.
package ident

import (
	"strings"

	"github.com/mgrove/stencil/internal/logic"
	"github.com/mgrove/stencil/internal/op"
	"github.com/mgrove/stencil/internal/term"
)

// Character classes.
const (
	Lowercase = "abcdefghijklmnopqrstuvwxyz"
	Uppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Digits    = "0123456789"
)

// DetectIdent builds a membership test of x in the detector set prefix.
func DetectIdent(prefix string, x term.Term) term.Term {
	return term.NewCall("detectIdent", term.V(prefix), x)
}

// CharEq builds an equality test of two characters.
func CharEq(x, y term.Term) term.Term {
	return term.NewCall("charEq", x, y)
}

// Register declares the identifier operations. Implementations that
// consult the detector convention close over the registry.
func Register(r *op.Registry) error {
	decls := []struct {
		name  string
		arity int
		fn    op.Func
	}{
		{"detectIdent", 2, detectIdentImpl(r)},
		{"identEq", 3, identEqImpl(r)},
		{"charEq", 2, charEqImpl},
		{"isLowercase", 1, classImpl("isLowercase", Lowercase)},
		{"isUppercase", 1, classImpl("isUppercase", Uppercase)},
		{"isDigit", 1, classImpl("isDigit", Digits)},
		{"isChar", 1, classImpl("isChar", Lowercase+Uppercase+Digits+"_")},
		{"charLit", 1, charLitImpl},
		{"lowercaseChars", 1, charsImpl(Lowercase)},
		{"uppercaseChars", 1, charsImpl(Uppercase)},
		{"digitChars", 1, charsImpl(Digits)},
	}
	for _, d := range decls {
		if err := r.Declare(d.name, d.arity, d.fn); err != nil {
			return err
		}
	}
	return nil
}

// identArg extracts an identifier token from a reduced argument.
func identArg(opName string, t term.Term) (string, term.Term) {
	a, ok := t.(term.Atoms)
	if !ok || len(a) != 1 || !isIdent(a[0]) {
		return "", term.NewFatal(opName, "expected an identifier, got", term.String(t))
	}
	return a[0], nil
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		default:
			return false
		}
	}
	return true
}

// detectIdentImpl reports whether prefix + x names a declared operation.
func detectIdentImpl(r *op.Registry) op.Func {
	return func(args []term.Term) term.Term {
		prefix, fatal := identArg("detectIdent", args[0])
		if fatal != nil {
			return fatal
		}
		x, fatal := identArg("detectIdent", args[1])
		if fatal != nil {
			return fatal
		}
		return logic.FromBool(r.Declared(prefix + x))
	}
}

// identEqImpl compares two identifiers through a detector set: x equals y
// under prefix when prefix + x + "_" + y is declared.
func identEqImpl(r *op.Registry) op.Func {
	return func(args []term.Term) term.Term {
		prefix, fatal := identArg("identEq", args[0])
		if fatal != nil {
			return fatal
		}
		x, fatal := identArg("identEq", args[1])
		if fatal != nil {
			return fatal
		}
		y, fatal := identArg("identEq", args[2])
		if fatal != nil {
			return fatal
		}
		return logic.FromBool(r.Declared(prefix + x + "_" + y))
	}
}

func charEqImpl(args []term.Term) term.Term {
	x, fatal := identArg("charEq", args[0])
	if fatal != nil {
		return fatal
	}
	y, fatal := identArg("charEq", args[1])
	if fatal != nil {
		return fatal
	}
	return logic.FromBool(len(x) == 1 && len(y) == 1 && x == y)
}

func classImpl(opName, class string) op.Func {
	return func(args []term.Term) term.Term {
		x, fatal := identArg(opName, args[0])
		if fatal != nil {
			return fatal
		}
		return logic.FromBool(len(x) == 1 && strings.Contains(class, x))
	}
}

// charLitImpl converts a character to a quoted Go rune literal token.
func charLitImpl(args []term.Term) term.Term {
	x, fatal := identArg("charLit", args[0])
	if fatal != nil {
		return fatal
	}
	if len(x) != 1 {
		return term.NewFatal("charLit", "expected a single character, got", x)
	}
	return term.V("'" + x + "'")
}

// charsImpl expands to all characters of a class, comma separated. The
// argument group is ignored; it exists so the operation can be applied.
func charsImpl(class string) op.Func {
	return func([]term.Term) term.Term {
		var out []term.Term
		for i, r := range class {
			if i > 0 {
				out = append(out, term.V(","))
			}
			out = append(out, term.V(string(r)))
		}
		return term.Terms(out...)
	}
}
