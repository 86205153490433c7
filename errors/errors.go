/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrConnectionNotFound is returned when no session is bound to the calling context
	ErrConnectionNotFound = errors.New("datastore session not found")

	// ErrConnectionFailed is returned when a backend fails to create a session
	ErrConnectionFailed = errors.New("datastore connection failed")

	// ErrNotFound is returned when an entity is not found
	ErrNotFound = errors.New("entity not found")

	// ErrAlreadyExists is returned when attempting to create an entity that already exists
	ErrAlreadyExists = errors.New("entity already exists")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)

// ConnectionNotFoundError is returned by session lookups on a context that has
// no bound session. Recoverable: connect first, then retry the lookup.
type ConnectionNotFoundError struct {
	Message string
}

func (e *ConnectionNotFoundError) Error() string {
	return e.Message
}

func (e *ConnectionNotFoundError) Is(target error) bool {
	return target == ErrConnectionNotFound
}

// ConnectionFailedError wraps a backend-specific failure from session creation
type ConnectionFailedError struct {
	Backend string
	Err     error
}

func (e *ConnectionFailedError) Error() string {
	return fmt.Sprintf("failed to connect %s backend: %v", e.Backend, e.Err)
}

func (e *ConnectionFailedError) Is(target error) bool {
	return target == ErrConnectionFailed
}

func (e *ConnectionFailedError) Unwrap() error {
	return e.Err
}

// NotFoundError represents an error when an entity is not found
type NotFoundError struct {
	Type string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with key %q not found", e.Type, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// AlreadyExistsError represents an error when an entity already exists
type AlreadyExistsError struct {
	Type string
	Key  string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s with key %q already exists", e.Type, e.Key)
}

func (e *AlreadyExistsError) Is(target error) bool {
	return target == ErrAlreadyExists
}

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Helper functions for creating errors

// NewConnectionNotFoundError creates a new ConnectionNotFoundError
func NewConnectionNotFoundError(message string) error {
	return &ConnectionNotFoundError{Message: message}
}

// NewConnectionFailedError creates a new ConnectionFailedError
func NewConnectionFailedError(backend string, err error) error {
	return &ConnectionFailedError{Backend: backend, Err: err}
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(entityType, key string) error {
	return &NotFoundError{Type: entityType, Key: key}
}

// NewAlreadyExistsError creates a new AlreadyExistsError
func NewAlreadyExistsError(entityType, key string) error {
	return &AlreadyExistsError{Type: entityType, Key: key}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsConnectionNotFound checks if an error is a connection not found error
func IsConnectionNotFound(err error) bool {
	return errors.Is(err, ErrConnectionNotFound)
}

// IsConnectionFailed checks if an error is a connection failed error
func IsConnectionFailed(err error) bool {
	return errors.Is(err, ErrConnectionFailed)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
