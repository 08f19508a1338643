package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestDomainError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *DomainError
		expected string
	}{
		{
			name:     "error without details",
			err:      NewDomainError("SK-TEST-1000", "test message"),
			expected: "[SK-TEST-1000] test message",
		},
		{
			name:     "error with details",
			err:      NewDomainError("SK-TEST-1001", "test message").WithDetails("extra info"),
			expected: "[SK-TEST-1001] test message: extra info",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDomainError_Is(t *testing.T) {
	err1 := NewDomainError("SK-TEST-1000", "message 1")
	err2 := NewDomainError("SK-TEST-1000", "message 2")
	err3 := NewDomainError("SK-TEST-1001", "message 1")

	if !errors.Is(err1, err2) {
		t.Error("errors.Is should return true for same error code")
	}
	if errors.Is(err1, err3) {
		t.Error("errors.Is should return false for different error code")
	}
	if errors.Is(err1, fmt.Errorf("some error")) {
		t.Error("errors.Is should return false for non-DomainError")
	}
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("underlying cause")
	err := NewDomainError("SK-TEST-1000", "wrapper").WithCause(cause)

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	errNoCause := NewDomainError("SK-TEST-1000", "no cause")
	if errors.Unwrap(errNoCause) != nil {
		t.Error("Unwrap() should return nil when no cause")
	}
}

func TestDomainError_WithDetails(t *testing.T) {
	original := NewDomainError("SK-TEST-1000", "original message")
	withDetails := original.WithDetails("additional details")

	if original.Details != "" {
		t.Error("WithDetails should not modify original error")
	}
	if withDetails.Details != "additional details" {
		t.Errorf("Details = %q, want %q", withDetails.Details, "additional details")
	}
	if withDetails.Code != original.Code || withDetails.Message != original.Message {
		t.Error("WithDetails should preserve code and message")
	}
}

func TestDomainError_WithCause(t *testing.T) {
	original := NewDomainError("SK-TEST-1000", "original message")
	cause := fmt.Errorf("root cause")
	withCause := original.Wrap(cause)

	if original.Cause != nil {
		t.Error("WithCause should not modify original error")
	}
	if withCause.Cause != cause {
		t.Errorf("Cause = %v, want %v", withCause.Cause, cause)
	}
}

func TestIsDomainError(t *testing.T) {
	if !IsDomainError(ErrSnapshotNotFound, "SK-SNAP-4040") {
		t.Error("IsDomainError should return true for matching code")
	}
	if IsDomainError(ErrSnapshotNotFound, "SK-SNAP-9999") {
		t.Error("IsDomainError should return false for non-matching code")
	}
	if IsDomainError(fmt.Errorf("regular error"), "") {
		t.Error("IsDomainError should return false for non-DomainError")
	}

	wrapped := fmt.Errorf("wrapped: %w", ErrPartialDelete)
	if !IsDomainError(wrapped, "SK-SNAP-5002") {
		t.Error("IsDomainError should work with wrapped errors")
	}
}

func TestGetErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"domain error", ErrHostConfigMissing, "SK-HOST-4040"},
		{"wrapped domain error", fmt.Errorf("save: %w", ErrMetadataWrite), "SK-STOR-5002"},
		{"regular error", fmt.Errorf("regular error"), ""},
		{"nil error", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetErrorCode(tt.err); got != tt.expected {
				t.Errorf("GetErrorCode() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestPredefinedErrors(t *testing.T) {
	tests := []struct {
		err  *DomainError
		code string
	}{
		{ErrSnapshotNotFound, "SK-SNAP-4040"},
		{ErrSnapshotNotSelected, "SK-SNAP-4000"},
		{ErrInvalidSnapshotName, "SK-SNAP-4001"},
		{ErrPartialDelete, "SK-SNAP-5002"},
		{ErrStorageFault, "SK-STOR-5001"},
		{ErrMetadataWrite, "SK-STOR-5002"},
		{ErrHostConfigMissing, "SK-HOST-4040"},
		{ErrHostConfigMalformed, "SK-HOST-4220"},
		{ErrApplyFailed, "SK-HOST-5001"},
		{ErrInvalidConfig, "SK-CONF-4000"},
	}

	seen := make(map[string]bool)
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("Error code = %q, want %q", tt.err.Code, tt.code)
			}
			if tt.err.Message == "" {
				t.Error("Error message should not be empty")
			}
			if seen[tt.code] {
				t.Errorf("duplicate error code %s", tt.code)
			}
			seen[tt.code] = true
		})
	}
}

func TestErrorChaining(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := ErrPartialDelete.
		WithDetails("metadata key remains").
		WithCause(cause)

	if err.Code != "SK-SNAP-5002" {
		t.Errorf("Code = %q, want %q", err.Code, "SK-SNAP-5002")
	}
	if err.Details != "metadata key remains" {
		t.Errorf("Details = %q", err.Details)
	}
	if !errors.Is(err, ErrPartialDelete) {
		t.Error("errors.Is should work after chaining")
	}
}
