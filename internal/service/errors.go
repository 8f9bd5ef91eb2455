package service

import (
	"errors"
	"fmt"

	"go-stockledger/pkg/validator"
)

// ErrProductInUse rejects deleting a product that transaction line items
// still reference.
var ErrProductInUse = errors.New("product is referenced by transaction line items")

// ValidationError reports input rejected before any ledger mutation.
type ValidationError struct {
	Field string
	Tag   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: field '%s' failed on tag '%s'", e.Field, e.Tag)
}

// firstValidationError converts validator output into the typed error the
// handlers map to a 400.
func firstValidationError(fieldErrors []validator.FieldError) error {
	first := fieldErrors[0]
	return &ValidationError{Field: first.Field, Tag: first.Tag}
}
