// Package eval implements the stencil rewriting engine.
//
// The engine is the heart of stencil - it drives a term to a fixed point by
// repeatedly reducing the left-most still-reducible sub-term, resolving
// operation calls through the registry, and stopping when only literal
// tokens remain.
//
// ARCHITECTURE:
//
// Single-threaded reduction loop:
// Evaluation is strictly synchronous and deterministic. The top-level term
// stream lives in a FIFO work deque; the engine pops the front item,
// reduces it, and pushes expansion results back on the front so reduction
// stays strictly left-to-right. There is never a choice of which reducible
// sub-term to rewrite first, so the same input always reduces through the
// same step sequence to the same output.
//
// Step budget:
// Every operation firing consumes one step from a fixed budget (default
// 16384). Exhausting the budget aborts evaluation with an explicit
// BudgetExceededError instead of emitting partially reduced text - a
// too-deep or runaway program fails loudly, with the partial rendering
// attached for diagnosis. Cost is proportional to work actually done, not
// to the budget ceiling.
//
// Failure funnel:
// Every library-level invariant violation reduces to a term.Fatal marker;
// when the engine reaches one, it aborts with an EvalError carrying the
// faulting operation name and the verbatim message. Dispatch misses and
// unknown operations surface the same way, as UNDEFINED_OPERATION. There
// is no recovery and no catch concept - an error terminates the run.
//
// Run tokens:
// Each top-level evaluation is stamped with a fresh token. The token
// appears in every trace event and error from that run, tying diagnostics
// to the evaluation that produced them.
package eval
