package term

import (
	"fmt"
	"strings"
)

// RenderError is returned when a term cannot be flattened to final tokens.
type RenderError struct {
	// Kind names the residual node that blocked rendering.
	Kind string

	// Detail identifies the offending node (operation name, closure target).
	Detail string
}

// Error implements the error interface.
func (e *RenderError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("cannot render %s: %s", e.Kind, e.Detail)
	}
	return fmt.Sprintf("cannot render %s", e.Kind)
}

// IsReduced reports whether t contains no pending invocation, fatal, or
// abort node. Closures count as reduced: they are first-class values.
func IsReduced(t Term) bool {
	switch x := t.(type) {
	case Atoms:
		return true
	case Seq:
		return allReduced(x)
	case Call, Fatal, Abort:
		return false
	case Closure:
		return allReduced(x.Env) && IsReduced(x.Target)
	case Tuple:
		return allReduced(x)
	case Choice:
		return allReduced(x.Data)
	case Quoted:
		// Quoting is the point: whatever is inside stays untouched.
		return true
	default:
		return false
	}
}

func allReduced(ts []Term) bool {
	for _, t := range ts {
		if !IsReduced(t) {
			return false
		}
	}
	return true
}

// Render flattens a fully reduced term into its final token sequence.
//
// It fails on any residual Call, Fatal, or Abort node, and also on
// closures: an unapplied closure has no textual form.
func Render(t Term) ([]string, error) {
	var out []string
	if err := render(t, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func render(t Term, out *[]string) error {
	switch x := t.(type) {
	case Atoms:
		*out = append(*out, x...)
		return nil
	case Seq:
		for _, e := range x {
			if err := render(e, out); err != nil {
				return err
			}
		}
		return nil
	case Call:
		return &RenderError{Kind: "pending invocation", Detail: x.Name}
	case Closure:
		return &RenderError{Kind: "unapplied closure", Detail: describeTarget(x.Target)}
	case Tuple:
		return renderParenthesized("", x, out)
	case Choice:
		// A choice renders the same way it is stored: a tagged tuple.
		return renderParenthesized(x.Tag, x.Data, out)
	case Fatal:
		return &RenderError{Kind: "fatal marker", Detail: x.Op}
	case Abort:
		return &RenderError{Kind: "abort marker", Detail: ""}
	case Quoted:
		return render(x.Body, out)
	default:
		return &RenderError{Kind: fmt.Sprintf("unknown term %T", t)}
	}
}

func renderParenthesized(tag string, elems []Term, out *[]string) error {
	*out = append(*out, "(")
	first := true
	if tag != "" {
		*out = append(*out, tag)
		first = false
	}
	for _, e := range elems {
		if !first {
			*out = append(*out, ",")
		}
		first = false
		if err := render(e, out); err != nil {
			return err
		}
	}
	*out = append(*out, ")")
	return nil
}

func describeTarget(t Term) string {
	if a, ok := t.(Atoms); ok && len(a) == 1 {
		return a[0]
	}
	return "nested closure"
}

// String renders t for diagnostics and traces. Unlike Render it is total:
// residual markers print in an angle-bracket form instead of failing.
func String(t Term) string {
	var b strings.Builder
	debugString(t, &b)
	return b.String()
}

func debugString(t Term, b *strings.Builder) {
	switch x := t.(type) {
	case Atoms:
		b.WriteString(strings.Join(x, " "))
	case Seq:
		for i, e := range x {
			if i > 0 {
				b.WriteByte(' ')
			}
			debugString(e, b)
		}
	case Call:
		fmt.Fprintf(b, "<call %s", x.Name)
		for _, a := range x.Args {
			b.WriteByte(' ')
			debugString(a, b)
		}
		b.WriteByte('>')
	case Closure:
		fmt.Fprintf(b, "<closure/%d %s", x.Arity, describeTarget(x.Target))
		for _, e := range x.Env {
			b.WriteByte(' ')
			debugString(e, b)
		}
		b.WriteByte('>')
	case Tuple:
		b.WriteByte('(')
		for i, e := range x {
			if i > 0 {
				b.WriteString(", ")
			}
			debugString(e, b)
		}
		b.WriteByte(')')
	case Choice:
		b.WriteByte('(')
		b.WriteString(x.Tag)
		for _, e := range x.Data {
			b.WriteString(", ")
			debugString(e, b)
		}
		b.WriteByte(')')
	case Fatal:
		fmt.Fprintf(b, "<fatal %s: %s>", x.Op, strings.Join(x.Message, " "))
	case Abort:
		b.WriteString("<abort ")
		debugString(x.Body, b)
		b.WriteByte('>')
	case Quoted:
		b.WriteString("<quote ")
		debugString(x.Body, b)
		b.WriteByte('>')
	}
}
