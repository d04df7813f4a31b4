// Package manifest loads and validates the declarative YAML manifests
// that describe the declarations stencil generates: sum types, records,
// enums, and function types.
//
// Validation is two-phase: a CUE schema checks the shape (names, kinds,
// required fields), then kind-specific semantic checks run in Go. Both
// phases report structured, positioned errors where available.
package manifest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest is the root of a stencil manifest file.
type Manifest struct {
	// Package is the Go package name of the generated file.
	Package string `yaml:"package" json:"package"`

	// Types lists the declarations to derive, in output order.
	Types []TypeSpec `yaml:"types" json:"types"`
}

// TypeSpec describes one declaration to derive.
type TypeSpec struct {
	// Name is the declared type name.
	Name string `yaml:"name" json:"name"`

	// Kind selects the derivation: sum, record, enum, or func.
	Kind string `yaml:"kind" json:"kind"`

	// Variants lists the cases of a sum type.
	Variants []Variant `yaml:"variants,omitempty" json:"variants,omitempty"`

	// Fields lists the fields of a record.
	Fields []Field `yaml:"fields,omitempty" json:"fields,omitempty"`

	// Values lists the constants of an enum.
	Values []string `yaml:"values,omitempty" json:"values,omitempty"`

	// Params and Result describe a func type.
	Params []string `yaml:"params,omitempty" json:"params,omitempty"`
	Result string   `yaml:"result,omitempty" json:"result,omitempty"`
}

// Variant is one case of a sum type.
type Variant struct {
	Name   string  `yaml:"name" json:"name"`
	Fields []Field `yaml:"fields,omitempty" json:"fields,omitempty"`
}

// Field is a named, typed member of a record or variant.
type Field struct {
	Name string `yaml:"name" json:"name"`
	Type string `yaml:"type" json:"type"`
}

// Load reads, parses, and validates a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates manifest bytes.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, &ValidationError{Code: ErrCodeParse, Message: fmt.Sprintf("decoding YAML: %v", err)}
	}
	if errs := Validate(&m); len(errs) > 0 {
		return nil, errs[0]
	}
	return &m, nil
}
