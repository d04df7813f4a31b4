package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mgrove/stencil/internal/cache"
	"github.com/mgrove/stencil/internal/eval"
	"github.com/mgrove/stencil/internal/gen"
	"github.com/mgrove/stencil/internal/manifest"
	"github.com/mgrove/stencil/internal/std"
	"github.com/mgrove/stencil/internal/term"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	Output   string
	Cache    string
	MaxSteps int
}

// GenerateResult is the JSON payload for a successful generation.
type GenerateResult struct {
	Manifest string `json:"manifest"`
	Output   string `json:"output"`
	Types    int    `json:"types"`
	Steps    int    `json:"steps"`
	CacheHit bool   `json:"cache_hit"`
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate <manifest>",
		Short: "Generate Go source from a manifest",
		Long: `Generate Go declarations from a YAML manifest.

Each declaration is expanded through the term evaluator under the step
budget. With --cache, expansions are content-addressed and reused across
runs.

Examples:
  stencil generate types.yaml -o types_gen.go
  stencil generate types.yaml --cache .stencil.db --max-steps 4096`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&opts.Cache, "cache", "", "path to the expansion cache database")
	cmd.Flags().IntVar(&opts.MaxSteps, "max-steps", eval.DefaultMaxSteps, "reduction step budget")

	return cmd
}

func runGenerate(opts *GenerateOptions, manifestPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	m, err := manifest.Load(manifestPath)
	if err != nil {
		formatter.Error("E_MANIFEST", err.Error(), nil)
		return WrapExitError(ExitCommandError, "loading manifest", err)
	}
	formatter.VerboseLog("Loaded %d type(s) from %s", len(m.Types), manifestPath)

	program := gen.Program(m)
	key := cache.KeyText(term.String(program), opts.MaxSteps)

	var store *cache.Cache
	if opts.Cache != "" {
		store, err = cache.Open(opts.Cache)
		if err != nil {
			formatter.Error("E_CACHE", err.Error(), nil)
			return WrapExitError(ExitCommandError, "opening cache", err)
		}
		defer store.Close()
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	tokens, steps, hit, err := expand(ctx, store, key, m, opts.MaxSteps)
	if err != nil {
		formatter.Error("E_EVAL", err.Error(), nil)
		return WrapExitError(ExitFailure, "evaluating manifest", err)
	}
	if hit {
		formatter.VerboseLog("Cache hit for key %s", key)
	}

	src, err := gen.Format(m.Package, tokens)
	if err != nil {
		formatter.Error("E_FORMAT", err.Error(), nil)
		return WrapExitError(ExitFailure, "formatting output", err)
	}

	dest := "stdout"
	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, src, 0o644); err != nil {
			formatter.Error("E_WRITE", err.Error(), nil)
			return WrapExitError(ExitCommandError, "writing output", err)
		}
		dest = opts.Output
	} else if opts.Format != "json" {
		fmt.Fprint(cmd.OutOrStdout(), string(src))
		return nil
	}

	return formatter.Success(GenerateResult{
		Manifest: manifestPath,
		Output:   dest,
		Types:    len(m.Types),
		Steps:    steps,
		CacheHit: hit,
	})
}

// expand evaluates the manifest program, going through the cache when
// one is configured.
func expand(ctx context.Context, store *cache.Cache, key string, m *manifest.Manifest, maxSteps int) (tokens []string, steps int, hit bool, err error) {
	if store != nil {
		entry, ok, err := store.Get(ctx, key)
		if err != nil {
			return nil, 0, false, err
		}
		if ok {
			return entry.Tokens, entry.Steps, true, nil
		}
	}

	reg, err := std.NewRegistry()
	if err != nil {
		return nil, 0, false, err
	}
	if err := gen.Register(reg); err != nil {
		return nil, 0, false, err
	}

	buf := &eval.TraceBuffer{}
	ev := eval.New(reg, eval.WithMaxSteps(maxSteps), eval.WithTrace(buf))

	tokens, err = ev.EvalTokens(gen.Program(m))
	if err != nil {
		return nil, 0, false, err
	}
	steps = len(buf.Events())

	if store != nil {
		if err := store.Put(ctx, key, tokens, steps); err != nil {
			return nil, 0, false, err
		}
	}
	return tokens, steps, false, nil
}
