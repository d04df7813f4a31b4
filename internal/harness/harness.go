// Package harness provides the externally observable "test" surface of
// the evaluator: equality and truth assertions over evaluated terms, and
// golden-file comparison of generated source.
//
// Assertions evaluate their operands with a trace-recording evaluator, so
// a failure report carries the full reduction trace that led to it.
package harness

import (
	"fmt"
	"strings"

	"github.com/mgrove/stencil/internal/eval"
	"github.com/mgrove/stencil/internal/op"
	"github.com/mgrove/stencil/internal/term"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string            // Assertion type for categorization
	Expected string            // Human-readable expected outcome
	Actual   string            // Human-readable actual outcome
	Trace    []eval.TraceEvent // Reduction trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nReduction trace:\n")
		for i, event := range e.Trace {
			fmt.Fprintf(&buf, "  [%d] %s: %s => %s\n", i+1, event.Op, event.Before, event.After)
		}
	}

	return buf.String()
}

// Harness evaluates assertion operands against one registry.
type Harness struct {
	reg      *op.Registry
	maxSteps int
}

// Option configures a Harness.
type Option func(*Harness)

// WithMaxSteps overrides the step budget for assertion evaluations.
func WithMaxSteps(n int) Option {
	return func(h *Harness) { h.maxSteps = n }
}

// New creates a harness over the given registry.
func New(reg *op.Registry, opts ...Option) *Harness {
	h := &Harness{reg: reg, maxSteps: eval.DefaultMaxSteps}
	for _, o := range opts {
		o(h)
	}
	return h
}

// AssertEq evaluates lhs and rhs and fails unless their final token
// sequences are identical.
func (h *Harness) AssertEq(lhs, rhs term.Term) error {
	buf := &eval.TraceBuffer{}
	ev := eval.New(h.reg, eval.WithMaxSteps(h.maxSteps), eval.WithTrace(buf))

	l, err := ev.EvalTokens(lhs)
	if err != nil {
		return h.evalFailure("assert_eq", "left operand evaluates", err, buf)
	}
	r, err := ev.EvalTokens(rhs)
	if err != nil {
		return h.evalFailure("assert_eq", "right operand evaluates", err, buf)
	}
	if strings.Join(l, " ") != strings.Join(r, " ") {
		return &AssertionError{
			Type:     "assert_eq",
			Expected: strings.Join(r, " "),
			Actual:   strings.Join(l, " "),
			Trace:    buf.Events(),
		}
	}
	return nil
}

// Assert evaluates t and fails unless the result is the truth token.
func (h *Harness) Assert(t term.Term) error {
	buf := &eval.TraceBuffer{}
	ev := eval.New(h.reg, eval.WithMaxSteps(h.maxSteps), eval.WithTrace(buf))

	tokens, err := ev.EvalTokens(t)
	if err != nil {
		return h.evalFailure("assert", "operand evaluates to truth", err, buf)
	}
	if len(tokens) != 1 || tokens[0] != "1" {
		return &AssertionError{
			Type:     "assert",
			Expected: "1",
			Actual:   strings.Join(tokens, " "),
			Trace:    buf.Events(),
		}
	}
	return nil
}

// AssertEmpty evaluates t and fails unless the result renders to nothing.
// Library guards reduce to emptiness on success, so this is the natural
// way to assert that a guard passes.
func (h *Harness) AssertEmpty(t term.Term) error {
	buf := &eval.TraceBuffer{}
	ev := eval.New(h.reg, eval.WithMaxSteps(h.maxSteps), eval.WithTrace(buf))

	tokens, err := ev.EvalTokens(t)
	if err != nil {
		return h.evalFailure("assert_empty", "operand evaluates to emptiness", err, buf)
	}
	if len(tokens) != 0 {
		return &AssertionError{
			Type:     "assert_empty",
			Expected: "(emptiness)",
			Actual:   strings.Join(tokens, " "),
			Trace:    buf.Events(),
		}
	}
	return nil
}

func (h *Harness) evalFailure(typ, expected string, err error, buf *eval.TraceBuffer) error {
	return &AssertionError{
		Type:     typ,
		Expected: expected,
		Actual:   fmt.Sprintf("evaluation failed: %v", err),
		Trace:    buf.Events(),
	}
}
