package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mgrove/stencil/internal/eval"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	MaxSteps int
	Op       string // optional - filter to a specific operation
}

// TraceResult holds the complete trace output.
type TraceResult struct {
	Tokens   []string          `json:"tokens"`
	Timeline []eval.TraceEvent `json:"timeline"`
	Stats    TraceStats        `json:"stats"`
}

// TraceStats holds summary statistics for the trace.
type TraceStats struct {
	TotalSteps int `json:"total_steps"`
	ShownSteps int `json:"shown_steps"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace <op> [args...]",
		Short: "Evaluate a call and show every reduction step",
		Long: `Evaluate one operation call and print the reduction timeline:
which operations fired, in what order, and what each expanded to.

Examples:
  stencil trace listMap inc 1 2 3
  stencil trace add 3 4 --op appl
  stencil trace match --format json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, args, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.MaxSteps, "max-steps", eval.DefaultMaxSteps, "reduction step budget")
	cmd.Flags().StringVar(&opts.Op, "op", "", "only show firings of this operation")

	return cmd
}

func runTrace(opts *TraceOptions, args []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	buf := &eval.TraceBuffer{}
	ev, err := newEvaluator(eval.WithMaxSteps(opts.MaxSteps), eval.WithTrace(buf))
	if err != nil {
		formatter.Error("E_SETUP", err.Error(), nil)
		return WrapExitError(ExitCommandError, "building registry", err)
	}

	tokens, evalErr := ev.EvalTokens(programFromArgs(args))

	events := buf.Events()
	timeline := events
	if opts.Op != "" {
		timeline = nil
		for _, e := range events {
			if e.Op == opts.Op {
				timeline = append(timeline, e)
			}
		}
	}

	if opts.Format == "json" {
		result := TraceResult{
			Tokens:   tokens,
			Timeline: timeline,
			Stats:    TraceStats{TotalSteps: len(events), ShownSteps: len(timeline)},
		}
		if evalErr != nil {
			// One JSON document per run: on failure the timeline rides
			// along as the error details.
			return reportEvalError(formatter, evalErr, result)
		}
		return formatter.Success(result)
	}

	printTimeline(formatter, timeline)
	if evalErr != nil {
		return reportEvalError(formatter, evalErr, nil)
	}

	bold := color.New(color.Bold)
	bold.Fprintf(cmd.OutOrStdout(), "result: %s\n", strings.Join(tokens, " "))
	fmt.Fprintf(cmd.OutOrStdout(), "%d step(s)\n", len(events))
	return nil
}

func printTimeline(formatter *OutputFormatter, timeline []eval.TraceEvent) {
	opColor := color.New(color.FgCyan)
	seqColor := color.New(color.Faint)

	for _, e := range timeline {
		seqColor.Fprintf(formatter.Writer, "%4d ", e.Seq)
		opColor.Fprint(formatter.Writer, e.Op)
		fmt.Fprintf(formatter.Writer, " %s => %s\n", e.Before, e.After)
	}
}
