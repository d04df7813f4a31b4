// Package op implements the operation and application model of the stencil
// evaluator: named operations with declared arity, a write-once registry,
// partial application, composition, and tag-dispatched handler families.
//
// ARCHITECTURE:
//
// Typed arity:
// An operation's arity is part of its typed definition, declared exactly
// once alongside its implementation. Arity counts sequential argument
// GROUPS, not parameters: an operation may accept several parameters in one
// group, and callers must supply groups in exactly the declared grouping.
//
// Write-once registry:
// Names are declared before use and never redefined. Redeclaration is a
// structured error at declaration time, not a silent override. After
// declaration completes the registry is read-only and safe to share.
//
// Partial application:
// Applying one argument group to a name of arity 1 fires the operation
// immediately. Arity > 1 produces a closure carrying the remaining arity
// and the captured group; further applications extend the environment and
// decrement the arity until the operation fires with every captured group.
//
// Handler families:
// Tagged dispatch resolves a handler by concatenating a family prefix with
// a choice tag, so adding a variant is adding one operation - there is no
// central jump table. CheckFamily provides a declaration-time
// exhaustiveness check so a missing handler fails when the family is wired
// up, not at the point of use.
package op
