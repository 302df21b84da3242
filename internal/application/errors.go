package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidSelection = errors.New("invalid selection")
	ErrNoImportData     = errors.New("No import data available")
	ErrEmptyBatch       = errors.New("no images to import")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
	Err     error // optional sentinel
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// SelectionError reports why the current selection cannot be used as an
// import container
type SelectionError struct {
	Count  int
	Kind   string
	Reason string
}

func (e *SelectionError) Error() string {
	return e.Reason
}

func (e *SelectionError) Is(target error) bool {
	return target == ErrInvalidSelection
}

// LayerNotFoundError is returned when no fillable layer carries a name
type LayerNotFoundError struct {
	Name string
}

func (e *LayerNotFoundError) Error() string {
	return fmt.Sprintf("Layer not found: %s", e.Name)
}

func (e *LayerNotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
