package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies review errors for errors.Is checks
type ErrorKind string

const (
	// ErrKindContract indicates the caller passed an invalid source unit.
	// This is the only condition that propagates as a fatal error.
	ErrKindContract ErrorKind = "contract_violation"

	// ErrKindConfig indicates an invalid or unreadable configuration
	ErrKindConfig ErrorKind = "config"

	// ErrKindAdvisory indicates an advisory collaborator failure; callers
	// recover from it by degrading to rule-based results.
	ErrKindAdvisory ErrorKind = "advisory"
)

// ReviewError is the error type used across the review pipeline
type ReviewError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// Error implements the error interface
func (e *ReviewError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error
func (e *ReviewError) Unwrap() error {
	return e.Err
}

// NewContractViolation creates a contract-violation error
func NewContractViolation(message string) *ReviewError {
	return &ReviewError{Kind: ErrKindContract, Message: message}
}

// NewConfigError creates a configuration error
func NewConfigError(message string, err error) *ReviewError {
	return &ReviewError{Kind: ErrKindConfig, Message: message, Err: err}
}

// NewAdvisoryError creates an advisory collaborator error
func NewAdvisoryError(message string, err error) *ReviewError {
	return &ReviewError{Kind: ErrKindAdvisory, Message: message, Err: err}
}

// IsContractViolation reports whether err is a contract violation
func IsContractViolation(err error) bool {
	var re *ReviewError
	return errors.As(err, &re) && re.Kind == ErrKindContract
}

// IsAdvisoryError reports whether err is an advisory failure
func IsAdvisoryError(err error) bool {
	var re *ReviewError
	return errors.As(err, &re) && re.Kind == ErrKindAdvisory
}
