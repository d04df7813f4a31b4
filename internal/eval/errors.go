package eval

import (
	"errors"
	"fmt"
)

// EvalError represents an error detected during term reduction.
//
// Reduction errors include:
//   - Fatal markers: a library guard or user operation emitted term.Fatal
//   - Undefined operations: a call or dispatch resolved to an undeclared name
//   - Budget exhaustion: the step budget ran out before a fixed point
//
// EvalError includes structured fields for diagnostics.
type EvalError struct {
	// Code identifies the error category.
	Code EvalErrorCode

	// Message is a human-readable description. For fatal markers this is
	// the verbatim, unevaluated message text.
	Message string

	// Op identifies the faulting operation, when known.
	Op string

	// Token identifies the evaluation run that failed.
	Token string
}

// EvalErrorCode categorizes reduction errors.
type EvalErrorCode string

const (
	// ErrCodeFatal indicates a fatal diagnostic marker was reached.
	ErrCodeFatal EvalErrorCode = "FATAL"

	// ErrCodeUndefinedOp indicates a call or dispatch to an undeclared name.
	ErrCodeUndefinedOp EvalErrorCode = "UNDEFINED_OPERATION"

	// ErrCodeBudgetExceeded indicates the step budget ran out.
	ErrCodeBudgetExceeded EvalErrorCode = "BUDGET_EXCEEDED"
)

// Error implements the error interface.
func (e *EvalError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Op, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsFatalError returns true if the error is a fatal diagnostic marker.
// Uses errors.As to handle wrapped errors.
func IsFatalError(err error) bool {
	var ee *EvalError
	if errors.As(err, &ee) {
		return ee.Code == ErrCodeFatal
	}
	return false
}

// IsUndefinedOpError returns true if the error is a dispatch or call miss.
// Uses errors.As to handle wrapped errors.
func IsUndefinedOpError(err error) bool {
	var ee *EvalError
	if errors.As(err, &ee) {
		return ee.Code == ErrCodeUndefinedOp
	}
	return false
}

// IsBudgetError returns true if the error is a budget exhaustion.
// Matches both EvalError with ErrCodeBudgetExceeded and BudgetExceededError.
func IsBudgetError(err error) bool {
	var ee *EvalError
	if errors.As(err, &ee) && ee.Code == ErrCodeBudgetExceeded {
		return true
	}
	var be *BudgetExceededError
	return errors.As(err, &be)
}

// BudgetExceededError is returned when an evaluation exceeds the step
// budget before reaching a fixed point.
//
// Partial holds the rendering of whatever did reduce, for diagnosis.
type BudgetExceededError struct {
	Token   string   // The evaluation run that exceeded the budget
	Steps   int      // Number of steps taken
	Limit   int      // Maximum allowed steps
	Partial []string // Tokens reduced before the budget ran out
}

// Error implements the error interface.
func (e *BudgetExceededError) Error() string {
	return fmt.Sprintf("evaluation %s exceeded step budget: %d steps > %d limit",
		e.Token, e.Steps, e.Limit)
}
