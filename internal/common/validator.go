package common

import "fmt"

// ValidationError carries the per-field messages for a rejected request.
// The transport layer matches it with errors.As and renders the map as an
// unprocessable-entity response.
type ValidationError struct {
	Errors map[string]string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation errors: %+v", e.Errors)
}

type Validator struct {
	Errors map[string]string
}

func NewValidator() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError keeps the first failure per field; later checks on the same
// field do not overwrite it.
func (v *Validator) AddError(field, message string) {
	if _, ok := v.Errors[field]; !ok {
		v.Errors[field] = message
	}
}

func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

// CheckProvided rejects empty string fields.
func (v *Validator) CheckProvided(s, field string) {
	v.Check(s != "", field, "must be provided")
}

// CheckMaxLength caps a field's length. An empty value passes here and is
// left to CheckProvided, so a missing field reports one message, not two.
func (v *Validator) CheckMaxLength(s string, max int, field string) {
	v.Check(len(s) <= max, field, fmt.Sprintf("must not be more than %d characters long", max))
}

// CheckPositive rejects ids and references that are zero or negative.
func (v *Validator) CheckPositive(n int, field string) {
	v.Check(n > 0, field, "must be greater than zero")
}

func (v *Validator) ValidationError() error {
	return ValidationError{Errors: v.Errors}
}
