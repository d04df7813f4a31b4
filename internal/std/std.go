// Package std assembles the standard operation library: one registry with
// the core operations plus booleans, naturals, tuples, lists, optional and
// alternative values, and identifier classification.
package std

import (
	"github.com/mgrove/stencil/internal/adt"
	"github.com/mgrove/stencil/internal/ident"
	"github.com/mgrove/stencil/internal/list"
	"github.com/mgrove/stencil/internal/logic"
	"github.com/mgrove/stencil/internal/nat"
	"github.com/mgrove/stencil/internal/op"
	"github.com/mgrove/stencil/internal/tuple"
)

// NewRegistry builds a registry with the full standard library declared.
func NewRegistry() (*op.Registry, error) {
	r := op.NewRegistry()
	for _, register := range []func(*op.Registry) error{
		logic.Register,
		nat.Register,
		tuple.Register,
		list.Register,
		adt.Register,
		ident.Register,
	} {
		if err := register(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// MustNewRegistry is NewRegistry but panics on error. The standard library
// declares a fixed name set; a conflict is a programming error.
func MustNewRegistry() *op.Registry {
	r, err := NewRegistry()
	if err != nil {
		panic(err)
	}
	return r
}
