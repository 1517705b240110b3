package config

import "fmt"

// ValidationError reports a field whose attempted value is out of range or of
// the wrong type. It is fatal at construction and non-fatal from Update,
// where already-applied values are retained.
type ValidationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid value for %s: %s (got %v)", e.Field, e.Reason, e.Value)
}

// UnknownFieldError reports a mapping key that does not name a declared
// configuration field. Only the strict FromMap path returns it; Update
// treats unknown keys as advisory.
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown configuration field %q", e.Field)
}
