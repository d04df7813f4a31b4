package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/mgrove/stencil/internal/eval"
	"github.com/mgrove/stencil/internal/gen"
	"github.com/mgrove/stencil/internal/std"
	"github.com/mgrove/stencil/internal/term"
)

// EvalOptions holds flags for the eval command.
type EvalOptions struct {
	*RootOptions
	MaxSteps int
}

// EvalResult is the JSON payload for a successful evaluation.
type EvalResult struct {
	Tokens []string `json:"tokens"`
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EvalOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "eval <op> [args...]",
		Short: "Evaluate a single operation call",
		Long: `Evaluate one operation call against the standard registry and print
the resulting tokens. Each argument becomes one atom.

Examples:
  stencil eval add 3 4
  stencil eval listReplicate 5 x
  stencil eval and 1 0 --format json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(opts, args, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.MaxSteps, "max-steps", eval.DefaultMaxSteps, "reduction step budget")

	return cmd
}

func runEval(opts *EvalOptions, args []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	ev, err := newEvaluator(eval.WithMaxSteps(opts.MaxSteps))
	if err != nil {
		formatter.Error("E_SETUP", err.Error(), nil)
		return WrapExitError(ExitCommandError, "building registry", err)
	}

	tokens, err := ev.EvalTokens(programFromArgs(args))
	if err != nil {
		return reportEvalError(formatter, err, nil)
	}

	if opts.Format == "json" {
		return formatter.Success(EvalResult{Tokens: tokens})
	}
	return formatter.Success(strings.Join(tokens, " "))
}

// programFromArgs turns command arguments into one operation call, each
// argument one atom.
func programFromArgs(args []string) term.Term {
	callArgs := make([]term.Term, len(args)-1)
	for i, a := range args[1:] {
		callArgs[i] = term.V(a)
	}
	return term.NewCall(args[0], callArgs...)
}

// newEvaluator builds an evaluator over the standard registry with the
// generator ops installed.
func newEvaluator(opts ...eval.Option) (*eval.Evaluator, error) {
	reg, err := std.NewRegistry()
	if err != nil {
		return nil, err
	}
	if err := gen.Register(reg); err != nil {
		return nil, err
	}
	return eval.New(reg, opts...), nil
}

// reportEvalError maps evaluator failures to formatter output and exit
// codes. details rides along in the error envelope when non-nil.
func reportEvalError(formatter *OutputFormatter, err error, details interface{}) error {
	switch {
	case eval.IsBudgetError(err):
		formatter.Error("E_BUDGET", err.Error(), details)
	case eval.IsUndefinedOpError(err):
		formatter.Error("E_UNDEFINED", err.Error(), details)
	case eval.IsFatalError(err):
		formatter.Error("E_FATAL", err.Error(), details)
	default:
		formatter.Error("E_EVAL", err.Error(), details)
	}
	return WrapExitError(ExitFailure, "evaluation failed", err)
}
