package services

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidStatus      = errors.New("invalid submission status")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrInvalidSecret      = errors.New("invalid admin secret")
	ErrInvalidSession     = errors.New("invalid or expired session")
)

// FieldError reports a required form field that was left empty.
type FieldError struct {
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

func (e *FieldError) Unwrap() error {
	return ErrValidation
}

// StoreError is a failed call to the hosted record store.
type StoreError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *StoreError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("record store %s failed: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("record store %s failed (%d): %s", e.Op, e.StatusCode, e.Message)
}
