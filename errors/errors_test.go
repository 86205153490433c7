/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestConnectionNotFoundError(t *testing.T) {
	err := NewConnectionNotFoundError("no session bound; connect first")

	if err.Error() != "no session bound; connect first" {
		t.Errorf("Unexpected error message: %q", err.Error())
	}

	if !errors.Is(err, ErrConnectionNotFound) {
		t.Error("ConnectionNotFoundError should match ErrConnectionNotFound")
	}

	if !IsConnectionNotFound(err) {
		t.Error("IsConnectionNotFound should return true for ConnectionNotFoundError")
	}

	if IsConnectionNotFound(NewNotFoundError("User", "123")) {
		t.Error("IsConnectionNotFound should not match a NotFoundError")
	}
}

func TestConnectionFailedError(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := NewConnectionFailedError("redis", cause)

	expected := `failed to connect redis backend: dial tcp: connection refused`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !errors.Is(err, ErrConnectionFailed) {
		t.Error("ConnectionFailedError should match ErrConnectionFailed")
	}

	// The backend cause must stay reachable through the wrapper
	if !errors.Is(err, cause) {
		t.Error("ConnectionFailedError should unwrap to its cause")
	}

	if !IsConnectionFailed(err) {
		t.Error("IsConnectionFailed should return true for ConnectionFailedError")
	}
}

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("User", "123")

	expected := `User with key "123" not found`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !errors.Is(err, ErrNotFound) {
		t.Error("NotFoundError should match ErrNotFound")
	}

	if !IsNotFound(err) {
		t.Error("IsNotFound should return true for NotFoundError")
	}
}

func TestAlreadyExistsError(t *testing.T) {
	err := NewAlreadyExistsError("Datastore", "orders")

	expected := `Datastore with key "orders" already exists`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !errors.Is(err, ErrAlreadyExists) {
		t.Error("AlreadyExistsError should match ErrAlreadyExists")
	}

	if !IsAlreadyExists(err) {
		t.Error("IsAlreadyExists should return true for AlreadyExistsError")
	}
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		message  string
		expected string
	}{
		{
			name:     "with field",
			field:    "email",
			message:  "invalid format",
			expected: `validation failed for field "email": invalid format`,
		},
		{
			name:     "without field",
			field:    "",
			message:  "missing required fields",
			expected: "validation failed: missing required fields",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewValidationError(tt.field, tt.message)

			if err.Error() != tt.expected {
				t.Errorf("Expected error message %q, got %q", tt.expected, err.Error())
			}

			if !IsValidationError(err) {
				t.Error("IsValidationError should return true for ValidationError")
			}
		})
	}
}

func TestWrappedErrors(t *testing.T) {
	base := NewConnectionNotFoundError("no session")
	wrapped := fmt.Errorf("handling request: %w", base)

	if !IsConnectionNotFound(wrapped) {
		t.Error("IsConnectionNotFound should see through fmt.Errorf wrapping")
	}
}
