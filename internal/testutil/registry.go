// Package testutil provides deterministic fixtures for evaluator tests.
package testutil

import (
	"strings"
	"sync"

	"github.com/mgrove/stencil/internal/op"
	"github.com/mgrove/stencil/internal/std"
	"github.com/mgrove/stencil/internal/term"
)

// NewRegistry builds a full standard registry, panicking on setup
// failure. Tests treat a broken registry as a fixture bug, not a
// condition to assert on.
func NewRegistry() *op.Registry {
	return std.MustNewRegistry()
}

// DeclareEcho registers an operation that reduces to its arguments
// unchanged. Useful for observing exactly what an operation received.
func DeclareEcho(r *op.Registry, name string, arity int) {
	r.MustDeclare(name, arity, func(args []term.Term) term.Term {
		return term.Terms(args...)
	})
}

// DeclareConst registers a zero-observation operation that always
// reduces to the given term.
func DeclareConst(r *op.Registry, name string, arity int, result term.Term) {
	r.MustDeclare(name, arity, func(args []term.Term) term.Term {
		return result
	})
}

// CallCounter counts firings of instrumented operations.
//
// Thread-safety: all methods are safe for concurrent use via internal
// mutex, though evaluation itself is single-threaded.
type CallCounter struct {
	mu     sync.Mutex
	counts map[string]int
}

// NewCallCounter creates an empty counter.
func NewCallCounter() *CallCounter {
	return &CallCounter{counts: make(map[string]int)}
}

// Declare registers an echo operation that bumps the counter each time
// it fires.
func (c *CallCounter) Declare(r *op.Registry, name string, arity int) {
	r.MustDeclare(name, arity, func(args []term.Term) term.Term {
		c.mu.Lock()
		c.counts[name]++
		c.mu.Unlock()
		return term.Terms(args...)
	})
}

// Count returns how many times the named operation fired.
func (c *CallCounter) Count(name string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[name]
}

// Reset clears all counts for test reuse.
func (c *CallCounter) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts = make(map[string]int)
}

// Tokens joins rendered tokens the way assertion messages display them.
func Tokens(tokens []string) string {
	return strings.Join(tokens, " ")
}
