package nec

import (
	"errors"
	"fmt"
)

// ErrInvalidCategory is matched by every CategoryError.
var ErrInvalidCategory = errors.New("invalid category")

// CategoryError reports a soil type, zone or region that is not in the
// NEC tables.
type CategoryError struct {
	Field string // "soil type", "seismic zone" or "region"
	Value string
}

func (e *CategoryError) Error() string {
	return fmt.Sprintf("invalid %s %q", e.Field, e.Value)
}

// Unwrap lets errors.Is match ErrInvalidCategory.
func (e *CategoryError) Unwrap() error {
	return ErrInvalidCategory
}

func invalidCategory(field, value string) error {
	return &CategoryError{Field: field, Value: value}
}
