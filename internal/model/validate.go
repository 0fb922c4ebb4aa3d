package model

import "fmt"

// ShapeError reports a backend record that is missing a field the console
// depends on.
type ShapeError struct {
	Entity string
	Field  string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: missing or invalid %s", e.Entity, e.Field)
}

func fieldError(entity, field string) error {
	return &ShapeError{Entity: entity, Field: field}
}

// Validator is implemented by records that can check their own shape.
type Validator interface {
	Validate() error
}
