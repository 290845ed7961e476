// Package validator bridges ozzo-validation results into layered errors.
package validator

import (
	"github.com/blacknetb/go-cachefront/errcode"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Validatable is anything with a Validate method.
type Validatable interface {
	Validate() error
}

// ErrValidationFailed is the generic validation error code (module 1,
// common).
var ErrValidationFailed = errcode.New(
	1, 1010,
	"common",
	"error.common.validation_failed",
	"validation failed",
)

// ValidateRequest runs Validate and converts ozzo-validation errors into a
// LayeredError carrying per-field messages.
func ValidateRequest(req Validatable) error {
	err := req.Validate()
	if err == nil {
		return nil
	}

	if validationErrs, ok := err.(validation.Errors); ok {
		return ConvertValidationError(validationErrs)
	}

	return err
}

// ConvertValidationError converts ozzo-validation errors to a LayeredError.
func ConvertValidationError(validationErrs validation.Errors) error {
	fields := make(map[string]string)
	for field, fieldErr := range validationErrs {
		if fieldErr != nil {
			fields[field] = fieldErr.Error()
		}
	}

	return ErrValidationFailed.WithData("fields", fields)
}
