package eval

import (
	"fmt"
	"strings"

	"github.com/edwingeng/deque"
	"github.com/google/uuid"

	"github.com/mgrove/stencil/internal/op"
	"github.com/mgrove/stencil/internal/term"
)

// Evaluator reduces terms to fixed points against a fixed registry.
//
// An Evaluator is cheap and stateless between runs: every Eval call gets a
// fresh step budget and run token, so concurrent Eval calls on the same
// Evaluator are independent as long as the trace sink tolerates them.
type Evaluator struct {
	reg      *op.Registry
	maxSteps int
	trace    TraceSink
	clock    *Clock
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithMaxSteps overrides the step budget ceiling.
func WithMaxSteps(n int) Option {
	return func(e *Evaluator) { e.maxSteps = n }
}

// WithTrace attaches a sink receiving one event per operation firing.
func WithTrace(sink TraceSink) Option {
	return func(e *Evaluator) { e.trace = sink }
}

// New creates an Evaluator over the given registry.
func New(reg *op.Registry, opts ...Option) *Evaluator {
	e := &Evaluator{
		reg:      reg,
		maxSteps: DefaultMaxSteps,
		clock:    NewClock(),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Registry returns the registry this evaluator resolves names against.
func (e *Evaluator) Registry() *op.Registry {
	return e.reg
}

// Eval reduces t to its fixed point.
//
// The result contains only values: literal atoms, tuples, choices, and
// closures. Reaching a fatal marker, calling an undeclared operation, or
// exhausting the step budget aborts with a structured error. An abort
// marker short-circuits: its evaluated body becomes the whole result.
func (e *Evaluator) Eval(t term.Term) (term.Term, error) {
	r := &run{
		ev:     e,
		token:  uuid.NewString(),
		budget: NewStepBudget(e.maxSteps),
	}
	res, err := r.reduce(t, 0)
	if err != nil {
		if sig, ok := err.(*abortSignal); ok {
			return sig.result, nil
		}
		if be, ok := err.(*BudgetExceededError); ok {
			be.Partial = r.emitted
		}
		return nil, err
	}
	return res, nil
}

// EvalTokens reduces t and flattens the result to its final token
// sequence, ready for splicing into generated source.
func (e *Evaluator) EvalTokens(t term.Term) ([]string, error) {
	res, err := e.Eval(t)
	if err != nil {
		return nil, err
	}
	return term.Render(res)
}

// EvalCommaSep reduces each term and joins the renderings with commas.
// Used when multiple top-level items must land in a comma-separated
// position of the generated source.
func (e *Evaluator) EvalCommaSep(ts ...term.Term) ([]string, error) {
	var out []string
	for i, t := range ts {
		tokens, err := e.EvalTokens(t)
		if err != nil {
			return nil, err
		}
		if i > 0 {
			out = append(out, ",")
		}
		out = append(out, tokens...)
	}
	return out, nil
}

// run is the per-evaluation state: one token, one budget.
type run struct {
	ev      *Evaluator
	token   string
	budget  *StepBudget
	emitted []string // top-level tokens reduced so far, for budget diagnostics
}

// abortSignal carries an abort marker's evaluated body up to Eval.
type abortSignal struct {
	result term.Term
}

func (s *abortSignal) Error() string {
	return "evaluation aborted with result " + term.String(s.result)
}

// reduce drives one term to a fixed point.
//
// The term stream lives in a FIFO deque. Values move to the output; a Seq
// is spliced back onto the front; a Call fires and its expansion is pushed
// back onto the front. Pushing expansions to the FRONT is what keeps
// reduction strictly left-to-right: nothing to the right reduces before
// the leftmost redex is fully spent.
func (r *run) reduce(t term.Term, depth int) (term.Term, error) {
	var out []term.Term
	work := deque.NewDeque()
	work.PushBack(t)

	for work.Len() != 0 {
		cur := work.Front().(term.Term)
		work.PopFront()

		switch x := cur.(type) {
		case term.Atoms:
			out = r.emit(out, x, depth)

		case term.Seq:
			for i := len(x) - 1; i >= 0; i-- {
				work.PushFront(x[i])
			}

		case term.Tuple:
			elems, err := r.reduceAll(x, depth)
			if err != nil {
				return nil, err
			}
			out = r.emit(out, term.Tuple(elems), depth)

		case term.Choice:
			data, err := r.reduceAll(x.Data, depth)
			if err != nil {
				return nil, err
			}
			out = r.emit(out, term.Choice{Tag: x.Tag, Data: data}, depth)

		case term.Closure:
			env, err := r.reduceAll(x.Env, depth)
			if err != nil {
				return nil, err
			}
			target, err := r.reduce(x.Target, depth+1)
			if err != nil {
				return nil, err
			}
			out = r.emit(out, term.Closure{Arity: x.Arity, Target: target, Env: env}, depth)

		case term.Call:
			expansion, err := r.fire(x, depth)
			if err != nil {
				return nil, err
			}
			work.PushFront(expansion)

		case term.Quoted:
			out = r.emit(out, x, depth)

		case term.Fatal:
			return nil, &EvalError{
				Code:    ErrCodeFatal,
				Op:      x.Op,
				Message: strings.Join(x.Message, " "),
				Token:   r.token,
			}

		case term.Abort:
			body, err := r.reduce(x.Body, depth+1)
			if err != nil {
				return nil, err
			}
			return nil, &abortSignal{result: body}

		default:
			return nil, &EvalError{
				Code:    ErrCodeFatal,
				Message: fmt.Sprintf("unknown term %T", cur),
				Token:   r.token,
			}
		}
	}

	if len(out) == 1 {
		return out[0], nil
	}
	return term.Seq(out), nil
}

// reduceAll reduces each element independently, preserving order.
func (r *run) reduceAll(ts []term.Term, depth int) ([]term.Term, error) {
	out := make([]term.Term, len(ts))
	for i, t := range ts {
		v, err := r.reduce(t, depth+1)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// fire resolves and invokes one operation call, charging one budget step.
func (r *run) fire(c term.Call, depth int) (term.Term, error) {
	if err := r.budget.Check(r.token); err != nil {
		return nil, err
	}

	o, declared := r.ev.reg.Lookup(c.Name)
	if !declared {
		return nil, &EvalError{
			Code:    ErrCodeUndefinedOp,
			Op:      c.Name,
			Message: "operation not declared",
			Token:   r.token,
		}
	}

	args := c.Args
	if !c.Uneval {
		reduced, err := r.reduceAll(args, depth)
		if err != nil {
			return nil, err
		}
		args = reduced
	}

	result := o.Fn(args)
	if r.ev.trace != nil {
		r.ev.trace.Record(TraceEvent{
			Token:  r.token,
			Seq:    r.ev.clock.Next(),
			Op:     c.Name,
			Before: term.String(c),
			After:  term.String(result),
		})
	}
	return result, nil
}

// emit appends a finished value to the output, mirroring top-level values
// into the partial-token record used by budget diagnostics.
func (r *run) emit(out []term.Term, v term.Term, depth int) []term.Term {
	if depth == 0 {
		if tokens, err := term.Render(v); err == nil {
			r.emitted = append(r.emitted, tokens...)
		}
	}
	return append(out, v)
}
