package engine

import "fmt"

// constError is an immutable error type for sentinel errors.
// It implements the error interface and provides compile-time safety.
type constError string

func (e constError) Error() string { return string(e) }

// Error types for ECT calculations.
// These are sentinel errors that can be compared with errors.Is().
var (
	// ErrUnknownOption indicates a categorical input outside its lookup table.
	// Unknown keys are never defaulted; the calculation fails before any arithmetic.
	ErrUnknownOption = constError("unknown option")

	// ErrNegativeValue indicates a negative length, weight, or count.
	ErrNegativeValue = constError("negative value")

	// ErrNonFiniteValue indicates a NaN or infinite numeric input.
	ErrNonFiniteValue = constError("non-finite value")

	// ErrCountTooSmall indicates a layer or stack count below one.
	ErrCountTooSmall = constError("count must be at least 1")
)

// FieldError reports an input field that failed validation.
// Field uses the input names (for example "flute_type" or "rh_storage")
// so collaborators can point the user at the offending control.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v %q", e.Field, e.Err, e.Value)
}

// Unwrap returns the underlying sentinel error.
func (e *FieldError) Unwrap() error { return e.Err }

func fieldErr(field string, value any, err error) *FieldError {
	return &FieldError{Field: field, Value: fmt.Sprint(value), Err: err}
}
