package manifest

import (
	_ "embed"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

//go:embed schema.cue
var schemaSource []byte

// ErrorCode classifies manifest validation failures.
type ErrorCode string

const (
	// ErrCodeParse indicates the YAML could not be decoded.
	ErrCodeParse ErrorCode = "PARSE"

	// ErrCodeSchema indicates a CUE schema violation.
	ErrCodeSchema ErrorCode = "SCHEMA"

	// ErrCodeSemantic indicates a kind-specific rule violation.
	ErrCodeSemantic ErrorCode = "SEMANTIC"
)

// ValidationError is a single manifest problem with enough context to
// point the user at the offending declaration.
type ValidationError struct {
	Code    ErrorCode
	Path    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("manifest %s error at %s: %s", e.Code, e.Path, e.Message)
	}
	return fmt.Sprintf("manifest %s error: %s", e.Code, e.Message)
}

// Mode controls how many errors validation reports.
type Mode int

const (
	// FailFast stops at the first error.
	FailFast Mode = iota

	// CollectAll gathers every error before returning.
	CollectAll
)

// Validate checks a manifest against the CUE schema and the semantic
// rules, collecting every error.
func Validate(m *Manifest) []error {
	return ValidateMode(m, CollectAll)
}

// ValidateMode is Validate with an explicit error-collection mode.
func ValidateMode(m *Manifest, mode Mode) []error {
	var errs []error

	errs = append(errs, schemaErrors(m)...)
	if mode == FailFast && len(errs) > 0 {
		return errs[:1]
	}

	errs = append(errs, semanticErrors(m)...)
	if mode == FailFast && len(errs) > 0 {
		return errs[:1]
	}
	return errs
}

func schemaErrors(m *Manifest) []error {
	ctx := cuecontext.New()

	schema := ctx.CompileBytes(schemaSource)
	if schema.Err() != nil {
		// The schema is embedded and fixed; a compile failure is a bug.
		return []error{&ValidationError{Code: ErrCodeSchema, Message: fmt.Sprintf("compiling schema: %v", schema.Err())}}
	}

	val := ctx.Encode(m)
	if val.Err() != nil {
		return []error{&ValidationError{Code: ErrCodeSchema, Message: fmt.Sprintf("encoding manifest: %v", val.Err())}}
	}

	unified := schema.LookupPath(cue.ParsePath("#Manifest")).Unify(val)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		var errs []error
		for _, ce := range cueerrors.Errors(err) {
			path := ""
			if p := ce.Path(); len(p) > 0 {
				path = cue.MakePath(pathSelectors(p)...).String()
			}
			errs = append(errs, &ValidationError{
				Code:    ErrCodeSchema,
				Path:    path,
				Message: ce.Error(),
			})
		}
		return errs
	}
	return nil
}

func pathSelectors(parts []string) []cue.Selector {
	sels := make([]cue.Selector, len(parts))
	for i, p := range parts {
		sels[i] = cue.Str(p)
	}
	return sels
}

func semanticErrors(m *Manifest) []error {
	var errs []error

	seen := make(map[string]struct{}, len(m.Types))
	for i, ts := range m.Types {
		path := fmt.Sprintf("types[%d] (%s)", i, ts.Name)

		if _, dup := seen[ts.Name]; dup {
			errs = append(errs, &ValidationError{
				Code:    ErrCodeSemantic,
				Path:    path,
				Message: fmt.Sprintf("duplicate type name %q", ts.Name),
			})
		}
		seen[ts.Name] = struct{}{}

		switch ts.Kind {
		case "sum":
			if len(ts.Variants) == 0 {
				errs = append(errs, semantic(path, "sum type needs at least one variant"))
			}
			vseen := make(map[string]struct{}, len(ts.Variants))
			for _, v := range ts.Variants {
				if _, dup := vseen[v.Name]; dup {
					errs = append(errs, semantic(path, fmt.Sprintf("duplicate variant %q", v.Name)))
				}
				vseen[v.Name] = struct{}{}
			}
		case "record":
			if len(ts.Fields) == 0 {
				errs = append(errs, semantic(path, "record needs at least one field"))
			}
		case "enum":
			if len(ts.Values) == 0 {
				errs = append(errs, semantic(path, "enum needs at least one value"))
			}
		case "func":
			if ts.Result == "" {
				errs = append(errs, semantic(path, "func type needs a result"))
			}
		}
	}
	return errs
}

func semantic(path, msg string) *ValidationError {
	return &ValidationError{Code: ErrCodeSemantic, Path: path, Message: msg}
}
