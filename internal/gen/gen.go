package gen

import (
	"fmt"
	"go/format"
	"strings"

	"github.com/mgrove/stencil/internal/eval"
	"github.com/mgrove/stencil/internal/list"
	"github.com/mgrove/stencil/internal/manifest"
	"github.com/mgrove/stencil/internal/std"
	"github.com/mgrove/stencil/internal/term"
	"github.com/mgrove/stencil/internal/tuple"
)

const header = "// Code generated by stencil. DO NOT EDIT.\n\n"

// EncodeType builds the tagged choice the genDecl_ family dispatches on.
func EncodeType(ts manifest.TypeSpec) term.Term {
	switch ts.Kind {
	case "sum":
		variants := make([]term.Term, len(ts.Variants))
		for i, v := range ts.Variants {
			variants[i] = tuple.New(term.V(v.Name), encodeFields(v.Fields))
		}
		return term.NewChoice("sum", term.V(ts.Name), list.New(variants...))
	case "record":
		return term.NewChoice("record", term.V(ts.Name), encodeFields(ts.Fields))
	case "enum":
		values := make([]term.Term, len(ts.Values))
		for i, v := range ts.Values {
			values[i] = term.V(v)
		}
		return term.NewChoice("enum", term.V(ts.Name), list.New(values...))
	case "func":
		params := make([]term.Term, len(ts.Params))
		for i, p := range ts.Params {
			params[i] = term.V(p)
		}
		return term.NewChoice("func", term.V(ts.Name), list.New(params...), term.V(ts.Result))
	default:
		return term.NewFatal("genDecl", "unknown declaration kind", ts.Kind)
	}
}

func encodeFields(fields []manifest.Field) term.Term {
	elems := make([]term.Term, len(fields))
	for i, f := range fields {
		elems[i] = tuple.New(term.V(f.Name), term.V(f.Type))
	}
	return list.New(elems...)
}

// Program builds the token program for a whole manifest: every
// declaration mapped through genDecl, flattened to one token stream.
func Program(m *manifest.Manifest) term.Term {
	decls := make([]term.Term, len(m.Types))
	for i, ts := range m.Types {
		decls[i] = EncodeType(ts)
	}
	return list.Unwrap(list.Map(term.V("genDecl"), list.New(decls...)))
}

// Generate runs a manifest through the evaluator and returns formatted
// Go source.
func Generate(m *manifest.Manifest, opts ...eval.Option) ([]byte, error) {
	reg, err := std.NewRegistry()
	if err != nil {
		return nil, fmt.Errorf("building registry: %w", err)
	}
	if err := Register(reg); err != nil {
		return nil, fmt.Errorf("registering generator ops: %w", err)
	}
	return GenerateWith(eval.New(reg, opts...), m)
}

// GenerateWith is Generate against a caller-supplied evaluator, whose
// registry must already have the generator ops installed.
func GenerateWith(ev *eval.Evaluator, m *manifest.Manifest) ([]byte, error) {
	tokens, err := ev.EvalTokens(Program(m))
	if err != nil {
		return nil, err
	}
	return Format(m.Package, tokens)
}

// Format assembles an evaluated token stream into a formatted Go file.
// It is split out from GenerateWith so cached token streams can be
// rendered without re-evaluating.
func Format(pkg string, tokens []string) ([]byte, error) {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("package ")
	b.WriteString(pkg)
	b.WriteString("\n\n")
	b.WriteString(strings.Join(tokens, " "))
	b.WriteString("\n")

	src, err := format.Source([]byte(b.String()))
	if err != nil {
		return nil, fmt.Errorf("formatting generated source: %w", err)
	}
	return src, nil
}
