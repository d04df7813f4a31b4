package term

import "slices"

// EmptyMarker is the reserved token standing for "no payload". A choice
// constructed without data carries it so that match handlers still receive
// an explicit parameter to ignore.
const EmptyMarker = "~"

// Term is a sealed interface over the evaluator's value universe.
// Only Atoms, Seq, Call, Closure, Tuple, Choice, Fatal, and Abort implement it.
type Term interface {
	term() // Sealed - only these types implement it
}

// Atoms is a literal token sequence. It is already in final form and is
// pasted verbatim into the output.
type Atoms []string

func (Atoms) term() {}

// Seq is an ordered sequence of terms. It carries no structure of its own;
// reduction flattens it into the surrounding token stream.
type Seq []Term

func (Seq) term() {}

// Call is a pending invocation of a named operation. It exists only
// transiently during rewriting and disappears once reduced.
//
// If Uneval is set, the arguments are assumed to be in final form already
// and the engine skips the argument-reduction pass.
type Call struct {
	Name   string
	Args   []Term
	Uneval bool
}

func (Call) term() {}

// Closure is a partially applied operation: the number of argument groups
// still required, the target (an operation name as Atoms, or a nested
// Closure), and the captured argument environment.
//
// Invariant: Arity >= 1. An application that would drop it to 0 fires the
// underlying operation instead of producing a new closure.
type Closure struct {
	Arity  int
	Target Term
	Env    []Term
}

func (Closure) term() {}

// Tuple is a fixed product of terms, rendered as "(x1, ..., xN)".
type Tuple []Term

func (Tuple) term() {}

// Choice is a tagged-union instance: a tag selecting a variant plus the
// variant's payload terms. Constructed once, consumed exactly once by a
// match operation.
type Choice struct {
	Tag  string
	Data []Term
}

func (Choice) term() {}

// Fatal is the diagnostic marker. When the engine reaches it, evaluation
// aborts and the faulting operation name plus the verbatim message surface
// as the error. Message tokens are never evaluated.
type Fatal struct {
	Op      string
	Message []string
}

func (Fatal) term() {}

// Abort short-circuits the remainder of the rewriting chain: the engine
// evaluates Body and returns it as the whole result.
type Abort struct {
	Body Term
}

func (Abort) term() {}

// Quoted delays evaluation: the body passes through reduction untouched
// until it is explicitly re-submitted with Unquote.
type Quoted struct {
	Body Term
}

func (Quoted) term() {}

// V wraps literal tokens as an already-formed term, exempt from reduction.
func V(tokens ...string) Atoms {
	return Atoms(slices.Clone(tokens))
}

// Terms groups multiple terms into one ordered sequence.
func Terms(ts ...Term) Seq {
	return Seq(slices.Clone(ts))
}

// NewCall builds an invocation of the named operation. Arguments are
// reduced before the operation fires.
func NewCall(name string, args ...Term) Call {
	return Call{Name: name, Args: slices.Clone(args)}
}

// NewCallUneval is NewCall minus one reduction pass: the arguments are
// assumed to already be in final form.
func NewCallUneval(name string, args ...Term) Call {
	return Call{Name: name, Args: slices.Clone(args), Uneval: true}
}

// NewChoice constructs a choice value. With no data, the payload is the
// reserved empty marker so handlers still pattern out one parameter.
func NewChoice(tag string, data ...Term) Choice {
	if len(data) == 0 {
		return Choice{Tag: tag, Data: []Term{V(EmptyMarker)}}
	}
	return Choice{Tag: tag, Data: slices.Clone(data)}
}

// NewFatal builds the diagnostic marker for the faulting operation op.
// The message tokens are carried verbatim, never evaluated.
func NewFatal(op string, message ...string) Fatal {
	return Fatal{Op: op, Message: slices.Clone(message)}
}

// Quote delays evaluation of t until Unquote re-submits it.
func Quote(t Term) Quoted {
	return Quoted{Body: t}
}

// Unquote re-submits a quoted term for evaluation. Non-quoted terms pass
// through unchanged.
func Unquote(t Term) Term {
	if q, ok := t.(Quoted); ok {
		return q.Body
	}
	return t
}

// ChoiceTag returns the tag of a choice value.
func ChoiceTag(c Choice) string {
	return c.Tag
}

// ChoiceData returns the payload of a choice value.
func ChoiceData(c Choice) []Term {
	return slices.Clone(c.Data)
}

// Equal reports structural equality of two terms.
func Equal(a, b Term) bool {
	switch x := a.(type) {
	case Atoms:
		y, ok := b.(Atoms)
		return ok && slices.Equal(x, y)
	case Seq:
		y, ok := b.(Seq)
		return ok && equalSlices(x, y)
	case Call:
		y, ok := b.(Call)
		return ok && x.Name == y.Name && x.Uneval == y.Uneval && equalSlices(x.Args, y.Args)
	case Closure:
		y, ok := b.(Closure)
		return ok && x.Arity == y.Arity && Equal(x.Target, y.Target) && equalSlices(x.Env, y.Env)
	case Tuple:
		y, ok := b.(Tuple)
		return ok && equalSlices(x, y)
	case Choice:
		y, ok := b.(Choice)
		return ok && x.Tag == y.Tag && equalSlices(x.Data, y.Data)
	case Fatal:
		y, ok := b.(Fatal)
		return ok && x.Op == y.Op && slices.Equal(x.Message, y.Message)
	case Abort:
		y, ok := b.(Abort)
		return ok && Equal(x.Body, y.Body)
	case Quoted:
		y, ok := b.(Quoted)
		return ok && Equal(x.Body, y.Body)
	case nil:
		return b == nil
	default:
		return false
	}
}

func equalSlices(a, b []Term) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
