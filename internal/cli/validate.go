package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mgrove/stencil/internal/manifest"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool             `json:"valid"`
	Errors []ValidationItem `json:"errors,omitempty"`
}

// ValidationItem is one reported problem.
type ValidationItem struct {
	Code    string `json:"code"`
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <manifest>",
		Short: "Validate a manifest without generating code",
		Long: `Validate a YAML manifest against the schema and semantic rules
without generating output. Faster than generate for development feedback.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runValidate(opts *RootOptions, manifestPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	data, err := os.ReadFile(manifestPath)
	if err != nil {
		formatter.Error("E_MANIFEST", err.Error(), nil)
		return WrapExitError(ExitCommandError, "reading manifest", err)
	}

	var m manifest.Manifest
	items := decodeAndValidate(data, &m)
	if len(items) > 0 {
		result := ValidationResult{Valid: false, Errors: items}
		if opts.Format == "json" {
			formatter.Success(result)
		} else {
			for _, it := range items {
				if it.Path != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "%s [%s]: %s\n", it.Path, it.Code, it.Message)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "[%s]: %s\n", it.Code, it.Message)
				}
			}
		}
		return NewExitError(ExitFailure, fmt.Sprintf("%d validation error(s)", len(items)))
	}

	formatter.VerboseLog("Validated %d type(s)", len(m.Types))
	return formatter.Success(ValidationResult{Valid: true})
}

// decodeAndValidate collects every validation error instead of stopping
// at the first, so a single run reports the whole manifest.
func decodeAndValidate(data []byte, m *manifest.Manifest) []ValidationItem {
	parsed, err := manifest.Parse(data)
	if err == nil {
		*m = *parsed
		return nil
	}

	var verr *manifest.ValidationError
	if !errors.As(err, &verr) || verr.Code == manifest.ErrCodeParse {
		return []ValidationItem{item(err)}
	}

	// Shape decoded; re-run validation in collect-all mode for the
	// full error list.
	var decoded manifest.Manifest
	if yerr := decodeYAML(data, &decoded); yerr != nil {
		return []ValidationItem{item(yerr)}
	}
	var items []ValidationItem
	for _, e := range manifest.Validate(&decoded) {
		items = append(items, item(e))
	}
	return items
}

func decodeYAML(data []byte, m *manifest.Manifest) error {
	return yaml.Unmarshal(data, m)
}

func item(err error) ValidationItem {
	var verr *manifest.ValidationError
	if errors.As(err, &verr) {
		return ValidationItem{Code: string(verr.Code), Path: verr.Path, Message: verr.Message}
	}
	return ValidationItem{Code: "E_GENERIC", Message: err.Error()}
}
