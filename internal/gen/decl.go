package gen

import (
	"github.com/mgrove/stencil/internal/list"
	"github.com/mgrove/stencil/internal/term"
)

// decodedField is a (name, type) pair pulled back out of a field tuple.
type decodedField struct {
	name string
	typ  string
}

func sumImpl(args []term.Term) term.Term {
	name, ok := atomArg(args[0])
	if !ok {
		return malformed("genDecl_sum", args[0])
	}
	variants, ok := listArg(args[1])
	if !ok {
		return malformed("genDecl_sum", args[1])
	}

	marker := "is" + name

	var b builder
	// type Name interface { isName() }
	b.add("type", name, "interface")
	b.push(Braced(term.Terms(term.V(marker), Parenthesized(term.Terms()), term.V(";"))))
	b.add(";")

	for _, v := range variants {
		fields, bad := variantFields(v)
		if bad != nil {
			return bad
		}
		vname := fields.name

		b.push(structDecl(vname, fields.fields))
		// func (Vname) isName() {}
		b.add("func")
		b.push(Parenthesized(term.V(vname)))
		b.add(marker)
		b.push(Parenthesized(term.Terms()))
		b.push(Braced(term.Terms()))
		b.add(";")

		b.push(ctorDecl(vname, name, fields.fields))
	}
	return b.seq()
}

func recordImpl(args []term.Term) term.Term {
	name, ok := atomArg(args[0])
	if !ok {
		return malformed("genDecl_record", args[0])
	}
	fields, bad := fieldList("genDecl_record", args[1])
	if bad != nil {
		return bad
	}

	var b builder
	b.push(structDecl(name, fields))
	b.push(ctorDecl(name, name, fields))
	return b.seq()
}

func enumImpl(args []term.Term) term.Term {
	name, ok := atomArg(args[0])
	if !ok {
		return malformed("genDecl_enum", args[0])
	}
	items, ok := listArg(args[1])
	if !ok {
		return malformed("genDecl_enum", args[1])
	}
	if len(items) == 0 {
		return malformed("genDecl_enum", args[1])
	}
	values := make([]string, len(items))
	for i, it := range items {
		v, ok := atomArg(it)
		if !ok {
			return malformed("genDecl_enum", it)
		}
		values[i] = v
	}

	var b builder
	b.add("type", name, "int", ";")

	// const ( V0 Name = iota; V1; ... )
	var consts builder
	consts.add(values[0], name, "=", "iota", ";")
	for _, v := range values[1:] {
		consts.add(v, ";")
	}
	b.add("const")
	b.push(Parenthesized(consts.seq()))
	b.add(";")

	// func (v Name) String() string { switch v { ... } }
	var cases builder
	for _, v := range values {
		cases.add("case", v, ":", "return", `"`+v+`"`, ";")
	}
	cases.add("default", ":", "return", `"`+name+`(invalid)"`, ";")

	b.add("func")
	b.push(Parenthesized(term.V("v", name)))
	b.add("String")
	b.push(Parenthesized(term.Terms()))
	b.add("string")
	b.push(Braced(term.Terms(
		term.V("switch", "v"),
		Braced(cases.seq()),
		term.V(";"),
	)))
	b.add(";")
	return b.seq()
}

func funcImpl(args []term.Term) term.Term {
	name, ok := atomArg(args[0])
	if !ok {
		return malformed("genDecl_func", args[0])
	}
	return term.Terms(
		term.V("type", name, "="),
		FuncType(args[1], args[2]),
		term.V(";"),
	)
}

// structDecl emits `type Name struct { F T; ... } ;`.
func structDecl(name string, fields []decodedField) term.Term {
	var body builder
	for _, f := range fields {
		body.add(f.name, f.typ, ";")
	}
	var b builder
	b.add("type", name, "struct")
	b.push(Braced(body.seq()))
	b.add(";")
	return b.seq()
}

// ctorDecl emits `func NewName(f T, ...) Result { return Name{f: f, ...} } ;`.
func ctorDecl(name, result string, fields []decodedField) term.Term {
	var params builder
	for i, f := range fields {
		if i > 0 {
			params.add(",")
		}
		params.add(f.name, f.typ)
	}
	var lit builder
	for _, f := range fields {
		lit.add(f.name, ":", f.name, ",")
	}

	var b builder
	b.add("func", "New"+name)
	b.push(Parenthesized(params.seq()))
	b.add(result)
	b.push(Braced(term.Terms(
		term.V("return", name),
		Braced(lit.seq()),
		term.V(";"),
	)))
	b.add(";")
	return b.seq()
}

// builder accumulates a flat token sequence.
type builder struct {
	out []term.Term
}

func (b *builder) add(tokens ...string) {
	b.out = append(b.out, term.V(tokens...))
}

func (b *builder) push(t term.Term) {
	b.out = append(b.out, t)
}

func (b *builder) seq() term.Term {
	return term.Terms(b.out...)
}

type namedFields struct {
	name   string
	fields []decodedField
}

func variantFields(v term.Term) (namedFields, term.Term) {
	tup, ok := v.(term.Tuple)
	if !ok || len(tup) != 2 {
		return namedFields{}, malformed("genDecl_sum", v)
	}
	name, ok := atomArg(tup[0])
	if !ok {
		return namedFields{}, malformed("genDecl_sum", tup[0])
	}
	fields, bad := fieldList("genDecl_sum", tup[1])
	if bad != nil {
		return namedFields{name: name}, bad
	}
	return namedFields{name: name, fields: fields}, nil
}

func fieldList(opName string, t term.Term) ([]decodedField, term.Term) {
	items, ok := listArg(t)
	if !ok {
		return nil, malformed(opName, t)
	}
	fields := make([]decodedField, len(items))
	for i, it := range items {
		tup, ok := it.(term.Tuple)
		if !ok || len(tup) != 2 {
			return nil, malformed(opName, it)
		}
		fname, ok1 := atomArg(tup[0])
		ftyp, ok2 := atomArg(tup[1])
		if !ok1 || !ok2 {
			return nil, malformed(opName, it)
		}
		fields[i] = decodedField{name: fname, typ: ftyp}
	}
	return fields, nil
}

// listArg walks a reduced cons chain into a Go slice.
func listArg(t term.Term) ([]term.Term, bool) {
	var items []term.Term
	for {
		c, ok := t.(term.Choice)
		if !ok {
			return nil, false
		}
		switch c.Tag {
		case list.TagNil:
			return items, true
		case list.TagCons:
			if len(c.Data) != 2 {
				return nil, false
			}
			items = append(items, c.Data[0])
			t = c.Data[1]
		default:
			return nil, false
		}
	}
}

func atomArg(t term.Term) (string, bool) {
	a, ok := t.(term.Atoms)
	if !ok || len(a) != 1 {
		return "", false
	}
	return a[0], true
}

func malformed(opName string, got term.Term) term.Term {
	return term.NewFatal(opName, "malformed declaration:", term.String(got))
}
