package eval

// DefaultMaxSteps is the default step budget: 2^14 operation firings per
// top-level evaluation.
const DefaultMaxSteps = 16384

// StepBudget tracks operation firings during one evaluation run and
// enforces the maximum steps limit.
//
// Each evaluation run has its own StepBudget. The budget is checked on
// every operation firing, so cost scales with work actually performed -
// a program that converges early never pays for the ceiling.
//
// The budget is what guarantees termination: the engine trades
// Turing-complete recursion for a fixed expansion ceiling, keeping
// evaluation predictable.
type StepBudget struct {
	maxSteps int // Maximum allowed steps for this run
	current  int // Current step count
}

// NewStepBudget creates a budget with the given limit. A non-positive
// limit falls back to DefaultMaxSteps.
func NewStepBudget(maxSteps int) *StepBudget {
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	return &StepBudget{maxSteps: maxSteps}
}

// Check increments the step counter and validates against the limit.
//
// Returns BudgetExceededError if the budget is exhausted. It is called
// before each operation firing.
func (b *StepBudget) Check(token string) error {
	b.current++
	if b.current > b.maxSteps {
		return &BudgetExceededError{
			Token: token,
			Steps: b.current,
			Limit: b.maxSteps,
		}
	}
	return nil
}

// Reset resets the step counter to 0. Used when reusing a budget across
// runs (rare; Evaluator creates a fresh one per run).
func (b *StepBudget) Reset() {
	b.current = 0
}

// Current returns the current step count.
func (b *StepBudget) Current() int {
	return b.current
}

// MaxSteps returns the maximum steps limit.
func (b *StepBudget) MaxSteps() int {
	return b.maxSteps
}
