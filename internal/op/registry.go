package op

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/mgrove/stencil/internal/term"
)

// Func is the implementation of an operation. It receives reduced argument
// terms and returns the operation's expansion, which the engine keeps
// rewriting. Failures are reported by returning a term.Fatal marker - there
// is exactly one way to fail.
type Func func(args []term.Term) term.Term

// Op is a declared operation: a name, the number of argument groups it
// requires before firing, and its implementation.
type Op struct {
	Name  string
	Arity int
	Fn    Func
}

// DeclError represents an error raised while declaring operations.
type DeclError struct {
	// Code identifies the error category.
	Code DeclErrorCode

	// Name is the operation name being declared.
	Name string

	// Message is a human-readable description.
	Message string
}

// DeclErrorCode categorizes declaration errors.
type DeclErrorCode string

const (
	// ErrCodeRedeclared indicates the name is already taken.
	ErrCodeRedeclared DeclErrorCode = "REDECLARED"

	// ErrCodeBadArity indicates a declared arity below 1.
	ErrCodeBadArity DeclErrorCode = "BAD_ARITY"

	// ErrCodeNilImpl indicates a declaration without an implementation.
	ErrCodeNilImpl DeclErrorCode = "NIL_IMPL"
)

// Error implements the error interface.
func (e *DeclError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Code, e.Name, e.Message)
}

// IsRedeclaredError returns true if the error is a redeclaration error.
// Uses errors.As to handle wrapped errors.
func IsRedeclaredError(err error) bool {
	var de *DeclError
	if errors.As(err, &de) {
		return de.Code == ErrCodeRedeclared
	}
	return false
}

// Registry is a write-once map from operation names to definitions.
//
// Core operations (appl, compose, match, matchWithArgs and their helpers)
// are installed by NewRegistry. Everything else is declared by client code
// before evaluation starts. Declaration is guarded by a mutex; lookups
// after the declaration phase are safe for concurrent use.
type Registry struct {
	mu  sync.RWMutex
	ops map[string]Op
}

// NewRegistry creates a registry with the core operations installed.
func NewRegistry() *Registry {
	r := &Registry{ops: make(map[string]Op)}
	r.installCore()
	return r
}

// Declare registers an operation. The name must be unused, arity must be
// at least 1, and fn must be non-nil.
func (r *Registry) Declare(name string, arity int, fn Func) error {
	if arity < 1 {
		return &DeclError{Code: ErrCodeBadArity, Name: name,
			Message: fmt.Sprintf("arity must be >= 1, got %d", arity)}
	}
	if fn == nil {
		return &DeclError{Code: ErrCodeNilImpl, Name: name, Message: "nil implementation"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.ops[name]; taken {
		return &DeclError{Code: ErrCodeRedeclared, Name: name, Message: "operation already declared"}
	}
	r.ops[name] = Op{Name: name, Arity: arity, Fn: fn}
	return nil
}

// MustDeclare is Declare but panics on error. Intended for static library
// setup where a declaration conflict is a programming error.
func (r *Registry) MustDeclare(name string, arity int, fn Func) {
	if err := r.Declare(name, arity, fn); err != nil {
		panic(err)
	}
}

// Lookup returns the operation declared under name.
func (r *Registry) Lookup(name string) (Op, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.ops[name]
	return o, ok
}

// Declared reports whether name is taken.
func (r *Registry) Declared(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// Names returns all declared operation names in sorted order.
// Used for diagnostics and tests.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.ops))
	for n := range r.ops {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
