package op

import (
	"errors"
	"fmt"
)

// Handler is one branch of a tag-dispatched handler family.
type Handler struct {
	Tag   string
	Arity int
	Fn    Func
}

// FamilyError reports a handler family whose declared variants do not line
// up with the registered handlers.
type FamilyError struct {
	Prefix  string
	Missing []string
}

// Error implements the error interface.
func (e *FamilyError) Error() string {
	return fmt.Sprintf("handler family %q: missing handlers for tags %v", e.Prefix, e.Missing)
}

// IsFamilyError returns true if the error is an exhaustiveness failure.
func IsFamilyError(err error) bool {
	var fe *FamilyError
	return errors.As(err, &fe)
}

// DeclareFamily registers every handler under prefix + tag. The first
// declaration error aborts: partially declared families are visible, so
// callers should treat any error as fatal setup failure.
func DeclareFamily(r *Registry, prefix string, handlers ...Handler) error {
	for _, h := range handlers {
		if err := r.Declare(prefix+h.Tag, h.Arity, h.Fn); err != nil {
			return err
		}
	}
	return nil
}

// CheckFamily verifies that every tag has a handler declared under
// prefix + tag. It is the declaration-time exhaustiveness check: a match
// against an unhandled variant should fail when the family is wired up,
// not when the variant is first constructed at some call site.
func CheckFamily(r *Registry, prefix string, tags ...string) error {
	var missing []string
	for _, tag := range tags {
		if !r.Declared(prefix + tag) {
			missing = append(missing, tag)
		}
	}
	if len(missing) > 0 {
		return &FamilyError{Prefix: prefix, Missing: missing}
	}
	return nil
}
