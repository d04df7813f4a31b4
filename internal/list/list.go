// Package list provides cons-lists over the choice facility.
//
// A list is either the "nil" choice or a "cons" choice of (head, tail).
// The recursive operations (map, fold, filter, append, unwrap) recurse
// THROUGH the engine: each step is a tag dispatch to an internal handler
// family, so list traversal is an ordinary workout of the rewriting loop
// and is bounded by the same step budget as everything else.
package list

import (
	"strconv"

	"github.com/mgrove/stencil/internal/logic"
	"github.com/mgrove/stencil/internal/nat"
	"github.com/mgrove/stencil/internal/op"
	"github.com/mgrove/stencil/internal/term"
)

// Choice tags.
const (
	TagNil  = "nil"
	TagCons = "cons"
)

// Nil is the empty list.
func Nil() term.Term { return term.NewChoice(TagNil) }

// Cons prepends head to tail.
func Cons(head, tail term.Term) term.Term {
	return term.NewChoice(TagCons, head, tail)
}

// New builds a list from its elements.
func New(elems ...term.Term) term.Term {
	out := Nil()
	for i := len(elems) - 1; i >= 0; i-- {
		out = Cons(elems[i], out)
	}
	return out
}

// Builders for the common operations.

// Map applies f to every element.
func Map(f, xs term.Term) term.Term { return term.NewCall("listMap", f, xs) }

// MapI applies f to every element along with its index.
func MapI(f, xs term.Term) term.Term { return term.NewCall("listMapI", f, xs) }

// Filter keeps the elements satisfying f.
func Filter(f, xs term.Term) term.Term { return term.NewCall("listFilter", f, xs) }

// Foldr is the right-associative fold with initial value init.
func Foldr(f, init, xs term.Term) term.Term { return term.NewCall("listFoldr", f, init, xs) }

// Foldl is the left-associative fold with initial value init.
func Foldl(f, init, xs term.Term) term.Term { return term.NewCall("listFoldl", f, init, xs) }

// Append concatenates two lists.
func Append(xs, ys term.Term) term.Term { return term.NewCall("listAppend", xs, ys) }

// Reverse reverses a list.
func Reverse(xs term.Term) term.Term { return term.NewCall("listReverse", xs) }

// Len computes the length as a numeral.
func Len(xs term.Term) term.Term { return term.NewCall("listLen", xs) }

// Get extracts the i-indexed element.
func Get(i, xs term.Term) term.Term { return term.NewCall("listGet", i, xs) }

// Replicate builds a list of n copies of x.
func Replicate(n, x term.Term) term.Term { return term.NewCall("listReplicate", n, x) }

// Unwrap places all elements as-is into the surrounding term stream.
func Unwrap(xs term.Term) term.Term { return term.NewCall("listUnwrap", xs) }

// UnwrapCommaSep is Unwrap with commas interspersed between elements.
func UnwrapCommaSep(xs term.Term) term.Term { return term.NewCall("listUnwrapCommaSep", xs) }

// Register declares the list operations and their handler families.
func Register(r *op.Registry) error {
	decls := []struct {
		name  string
		arity int
		fn    op.Func
	}{
		{"listIsNil", 1, tagTestImpl("listIsNil", TagNil)},
		{"listIsCons", 1, tagTestImpl("listIsCons", TagCons)},
		{"listHead", 1, listHeadImpl},
		{"listTail", 1, listTailImpl},
		{"listLast", 1, listLastImpl},
		{"listInit", 1, listInitImpl},
		{"listGet", 2, listGetImpl},
		{"listFoldl1", 2, listFoldl1Impl},
		{"listAppendItem", 2, listAppendItemImpl},
		{"listReplicate", 2, listReplicateImpl},
	}
	for _, d := range decls {
		if err := r.Declare(d.name, d.arity, d.fn); err != nil {
			return err
		}
	}
	return registerRecursive(r)
}

// recursiveOp describes one engine-recursive operation: a public entry
// that dispatches on the list argument, plus its cons/nil handlers.
type recursiveOp struct {
	name     string
	arity    int
	listArg  int // index of the list argument within the entry's args
	consFn   op.Func
	nilFn    op.Func
}

func registerRecursive(r *op.Registry) error {
	ops := []recursiveOp{
		{"listLen", 1, 0, lenCons, constFn(nat.N(0))},
		{"listAppend", 2, 0, appendCons, appendNil},
		{"listReverse", 1, 0, reverseEntryCons, constFn(Nil())},
		{"listReverseAux", 2, 0, reverseAuxCons, reverseAuxNil},
		{"listFoldr", 3, 2, foldrCons, foldrNil},
		{"listFoldl", 3, 2, foldlCons, foldlNil},
		{"listIntersperse", 2, 1, intersperseCons, constFn(Nil())},
		{"listPrependToAll", 2, 1, prependToAllCons, constFn(Nil())},
		{"listMap", 2, 1, mapCons, constFn(Nil())},
		{"listMapI", 2, 1, mapIEntryCons, constFn(Nil())},
		{"listMapIAux", 3, 2, mapIAuxCons, constFn(Nil())},
		{"listFilter", 2, 1, filterCons, constFn(Nil())},
		{"listUnwrap", 1, 0, unwrapCons, constFn(term.Terms())},
		{"listUnwrapCommaSep", 1, 0, unwrapCommaCons, constFn(term.Terms())},
		{"listUnwrapCommaTail", 1, 0, unwrapCommaTailCons, constFn(term.Terms())},
	}
	for _, o := range ops {
		if err := declareRecursive(r, o); err != nil {
			return err
		}
	}
	return nil
}

// declareRecursive wires one entry operation to a fresh handler family.
// The entry matches its list argument against prefix <name>_ and threads
// the remaining arguments to both branches, so recursion is plain tag
// dispatch resolved by the engine.
func declareRecursive(r *op.Registry, o recursiveOp) error {
	prefix := o.name + "_"
	entry := func(args []term.Term) term.Term {
		xs := args[o.listArg]
		extra := make([]term.Term, 0, len(args)-1)
		for i, a := range args {
			if i != o.listArg {
				extra = append(extra, a)
			}
		}
		return op.MatchWithArgs(xs, prefix, extra...)
	}
	if err := r.Declare(o.name, o.arity, entry); err != nil {
		return err
	}
	handlers := []op.Handler{
		{Tag: TagCons, Arity: 1, Fn: guardList(prefix+TagCons, o.consFn)},
		{Tag: TagNil, Arity: 1, Fn: o.nilFn},
	}
	if err := op.DeclareFamily(r, prefix, handlers...); err != nil {
		return err
	}
	return op.CheckFamily(r, prefix, TagCons, TagNil)
}

// guardList rejects cons payloads of the wrong shape before the handler
// body runs. A malformed "list" would otherwise fail deep inside the
// recursion with a confusing message.
func guardList(name string, fn op.Func) op.Func {
	return func(args []term.Term) term.Term {
		if len(args) < 2 {
			return term.NewFatal(name, "expected a cons payload of (head, tail)")
		}
		return fn(args)
	}
}

func constFn(t term.Term) op.Func {
	return func([]term.Term) term.Term { return t }
}

// Handler bodies. Cons handlers receive (head, tail, extras...); nil
// handlers receive (ignore, extras...).

func lenCons(args []term.Term) term.Term {
	return term.NewCall("inc", Len(args[1]))
}

func appendCons(args []term.Term) term.Term {
	h, t, ys := args[0], args[1], args[2]
	return Cons(h, Append(t, ys))
}

func appendNil(args []term.Term) term.Term {
	return args[1]
}

func reverseEntryCons(args []term.Term) term.Term {
	h, t := args[0], args[1]
	return term.NewCall("listReverseAux", t, Cons(h, Nil()))
}

func reverseAuxCons(args []term.Term) term.Term {
	h, t, acc := args[0], args[1], args[2]
	return term.NewCall("listReverseAux", t, Cons(h, acc))
}

func reverseAuxNil(args []term.Term) term.Term {
	return args[1]
}

func foldrCons(args []term.Term) term.Term {
	h, t, f, init := args[0], args[1], args[2], args[3]
	return op.Apply2(f, h, Foldr(f, init, t))
}

func foldrNil(args []term.Term) term.Term {
	return args[2]
}

func foldlCons(args []term.Term) term.Term {
	h, t, f, acc := args[0], args[1], args[2], args[3]
	return Foldl(f, op.Apply2(f, acc, h), t)
}

func foldlNil(args []term.Term) term.Term {
	return args[2]
}

func intersperseCons(args []term.Term) term.Term {
	h, t, item := args[0], args[1], args[2]
	return Cons(h, term.NewCall("listPrependToAll", item, t))
}

func prependToAllCons(args []term.Term) term.Term {
	h, t, item := args[0], args[1], args[2]
	return Cons(item, Cons(h, term.NewCall("listPrependToAll", item, t)))
}

func mapCons(args []term.Term) term.Term {
	h, t, f := args[0], args[1], args[2]
	return Cons(op.Apply(f, h), Map(f, t))
}

func mapIEntryCons(args []term.Term) term.Term {
	h, t, f := args[0], args[1], args[2]
	return Cons(op.Apply2(f, h, nat.N(0)), term.NewCall("listMapIAux", f, nat.N(1), t))
}

func mapIAuxCons(args []term.Term) term.Term {
	h, t, f, i := args[0], args[1], args[2], args[3]
	return Cons(op.Apply2(f, h, i),
		term.NewCall("listMapIAux", f, term.NewCall("inc", i), t))
}

func filterCons(args []term.Term) term.Term {
	h, t, f := args[0], args[1], args[2]
	rest := Filter(f, t)
	return logic.If(op.Apply(f, h), Cons(h, rest), rest)
}

func unwrapCons(args []term.Term) term.Term {
	return term.Terms(args[0], Unwrap(args[1]))
}

func unwrapCommaCons(args []term.Term) term.Term {
	return term.Terms(args[0], term.NewCall("listUnwrapCommaTail", args[1]))
}

func unwrapCommaTailCons(args []term.Term) term.Term {
	return term.Terms(term.V(","), args[0], term.NewCall("listUnwrapCommaTail", args[1]))
}

// Direct implementations. These inspect the choice value in Go instead of
// recursing through the engine; they are partial and guard accordingly.

func listArg(opName string, t term.Term) (term.Choice, term.Term) {
	c, ok := t.(term.Choice)
	if !ok || (c.Tag != TagNil && c.Tag != TagCons) {
		return term.Choice{}, term.NewFatal(opName, "expected a list, got", term.String(t))
	}
	return c, nil
}

func tagTestImpl(opName, want string) op.Func {
	return func(args []term.Term) term.Term {
		c, fatal := listArg(opName, args[0])
		if fatal != nil {
			return fatal
		}
		return logic.FromBool(c.Tag == want)
	}
}

func listHeadImpl(args []term.Term) term.Term {
	c, fatal := listArg("listHead", args[0])
	if fatal != nil {
		return fatal
	}
	if c.Tag == TagNil {
		return term.NewFatal("listHead", "empty list")
	}
	return c.Data[0]
}

func listTailImpl(args []term.Term) term.Term {
	c, fatal := listArg("listTail", args[0])
	if fatal != nil {
		return fatal
	}
	if c.Tag == TagNil {
		return term.NewFatal("listTail", "empty list")
	}
	return c.Data[1]
}

func listLastImpl(args []term.Term) term.Term {
	c, fatal := listArg("listLast", args[0])
	if fatal != nil {
		return fatal
	}
	if c.Tag == TagNil {
		return term.NewFatal("listLast", "empty list")
	}
	for {
		tail, ok := c.Data[1].(term.Choice)
		if !ok || (tail.Tag != TagNil && tail.Tag != TagCons) {
			return term.NewFatal("listLast", "malformed list tail")
		}
		if tail.Tag == TagNil {
			return c.Data[0]
		}
		c = tail
	}
}

func listInitImpl(args []term.Term) term.Term {
	c, fatal := listArg("listInit", args[0])
	if fatal != nil {
		return fatal
	}
	if c.Tag == TagNil {
		return term.NewFatal("listInit", "empty list")
	}
	var elems []term.Term
	for c.Tag == TagCons {
		elems = append(elems, c.Data[0])
		tail, ok := c.Data[1].(term.Choice)
		if !ok || (tail.Tag != TagNil && tail.Tag != TagCons) {
			return term.NewFatal("listInit", "malformed list tail")
		}
		c = tail
	}
	return New(elems[:len(elems)-1]...)
}

func listGetImpl(args []term.Term) term.Term {
	i, fatal := nat.Arg("listGet", args[0])
	if fatal != nil {
		return fatal
	}
	c, fatal := listArg("listGet", args[1])
	if fatal != nil {
		return fatal
	}
	for n := 0; ; n++ {
		if c.Tag == TagNil {
			return term.NewFatal("listGet", "index", strconv.Itoa(i), "out of range")
		}
		if n == i {
			return c.Data[0]
		}
		tail, ok := c.Data[1].(term.Choice)
		if !ok || (tail.Tag != TagNil && tail.Tag != TagCons) {
			return term.NewFatal("listGet", "malformed list tail")
		}
		c = tail
	}
}

func listFoldl1Impl(args []term.Term) term.Term {
	f := args[0]
	c, fatal := listArg("listFoldl1", args[1])
	if fatal != nil {
		return fatal
	}
	if c.Tag == TagNil {
		return term.NewFatal("listFoldl1", "empty list")
	}
	return Foldl(f, c.Data[0], c.Data[1])
}

func listAppendItemImpl(args []term.Term) term.Term {
	item, xs := args[0], args[1]
	return Append(xs, Cons(item, Nil()))
}

// listReplicateImpl peels one copy per firing, so a replicate of n costs n
// engine steps and stays inside the step budget for any n that a sane
// generator would use.
func listReplicateImpl(args []term.Term) term.Term {
	n, fatal := nat.Arg("listReplicate", args[0])
	if fatal != nil {
		return fatal
	}
	if n == 0 {
		return Nil()
	}
	return Cons(args[1], Replicate(nat.N(n-1), args[1]))
}
