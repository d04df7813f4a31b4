// Package term defines the value universe of the stencil evaluator.
//
// A Term is the unit of data flowing through the rewriting engine. It is
// either a literal token sequence (pasted verbatim into the final output),
// a pending operation invocation, a partially applied closure, a tuple, or
// a tagged choice value.
//
// DESIGN:
//
// Sealed ADT:
// Term is a sealed interface - only the types in this package implement it.
// This makes reduction a closed type switch: the engine can enumerate every
// shape a term can take, and adding a new shape is a deliberate, local change.
//
// Immutability:
// Terms are never mutated in place. Every rewrite step builds new values;
// constructors copy the slices they are given. A term that escapes to a
// caller can be held indefinitely and never changes underneath it.
//
// Reduction states:
// A term is "reduced" when it contains no Call, Fatal, or Abort node. A
// reduced term may still contain closures (they are first-class values), but
// rendering to final tokens additionally rejects residual closures - an
// unapplied closure reaching the output is a programming error.
package term
