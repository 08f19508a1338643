package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a business domain error with a structured error code.
// Codes follow the SK-<AREA>-<NNNN> format; the last four digits mirror
// an HTTP-like class (4xxx caller, 5xxx storage).
type DomainError struct {
	Code    string // Error code (e.g., "SK-SNAP-4040")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.

func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// Wrap wraps an error with this domain error as the cause.
func (e *DomainError) Wrap(cause error) *DomainError {
	return e.WithCause(cause)
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks if the error is a DomainError.

func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true // Only check if it's a DomainError
		}
		return de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.

func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// Snapshot errors (SNAP).
var (
	// ErrSnapshotNotFound indicates the snapshot key holds no payload.
	ErrSnapshotNotFound = NewDomainError("SK-SNAP-4040", "snapshot not found")

	// ErrSnapshotNotSelected indicates no snapshot key was supplied, or the key
	// is outside the managed namespace.
	ErrSnapshotNotSelected = NewDomainError("SK-SNAP-4000", "no snapshot selected")

	// ErrInvalidSnapshotName indicates a name that would collide with the
	// metadata key scheme.
	ErrInvalidSnapshotName = NewDomainError("SK-SNAP-4001", "invalid snapshot name")

	// ErrPartialDelete indicates one of the paired keys failed to delete.
	ErrPartialDelete = NewDomainError("SK-SNAP-5002", "snapshot delete failed")
)

// Storage errors (STOR).
var (
	// ErrStorageFault indicates the persistent store could not complete a call.
	ErrStorageFault = NewDomainError("SK-STOR-5001", "storage error")

	// ErrMetadataWrite indicates the payload was saved but its metadata was not.
	ErrMetadataWrite = NewDomainError("SK-STOR-5002", "snapshot saved without metadata")
)

// Host configuration errors (HOST).
var (
	// ErrHostConfigMissing indicates the active configuration key is unset.
	ErrHostConfigMissing = NewDomainError("SK-HOST-4040", "host configuration not found")

	// ErrHostConfigMalformed indicates the active configuration does not look
	// like a serialized object.
	ErrHostConfigMalformed = NewDomainError("SK-HOST-4220", "host configuration format looks unexpected")

	// ErrApplyFailed indicates the active configuration could not be overwritten.
	ErrApplyFailed = NewDomainError("SK-HOST-5001", "failed to apply snapshot")
)

// Configuration errors (CONF).
var (
	// ErrInvalidConfig indicates a configuration value failed verification.
	ErrInvalidConfig = NewDomainError("SK-CONF-4000", "invalid configuration")
)
