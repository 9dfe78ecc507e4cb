// Package common contains the error taxonomy and small shared helpers used
// across the SealVault core. Callers should use IsFatal/IsRetriable (or
// errors.As) to classify failures.
package common

import (
	"errors"
	"fmt"
)

// FatalError marks a failure caused by structurally impossible input: a
// negative backup version, a malformed backup file name, a canonical
// serialization failure. Retrying the same input will never succeed.
type FatalError struct {
	Err error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("fatal: %s", e.Err)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

// RetriableError marks a failure caused by transient or ambiguous input that
// a caller may legitimately retry after correcting it or after a transient
// condition clears.
type RetriableError struct {
	Err error
}

func (e *RetriableError) Error() string {
	return fmt.Sprintf("retriable: %s", e.Err)
}

func (e *RetriableError) Unwrap() error {
	return e.Err
}

// Fatalf wraps a formatted error as fatal. The format supports %w.
func Fatalf(format string, args ...any) error {
	return &FatalError{Err: fmt.Errorf(format, args...)}
}

// Retriablef wraps a formatted error as retriable. The format supports %w.
func Retriablef(format string, args ...any) error {
	return &RetriableError{Err: fmt.Errorf(format, args...)}
}

// IsFatal reports whether any error in err's chain is a FatalError.
func IsFatal(err error) bool {
	var fe *FatalError
	return errors.As(err, &fe)
}

// IsRetriable reports whether any error in err's chain is a RetriableError.
func IsRetriable(err error) bool {
	var re *RetriableError
	return errors.As(err, &re)
}
