/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package memory provides an in-memory session backend for testing and prototyping
package memory

import (
	"context"
	stderrors "errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/google/uuid"

	"github.com/suparena/datastore"
	"github.com/suparena/datastore/errors"
)

var errSessionClosed = stderrors.New("session disconnected")

// Factory creates in-memory sessions. Error injection mirrors the builder
// style of the module's mocks: configured errors apply to every session the
// factory creates.
type Factory struct {
	connectErr error
	nilSession bool
	putErr     error
	getErr     error
	deleteErr  error
}

// NewFactory creates a new in-memory session factory.
func NewFactory() *Factory {
	return &Factory{}
}

// WithConnectError makes CreateSession return an error
func (f *Factory) WithConnectError(err error) *Factory {
	f.connectErr = err
	return f
}

// WithNilSession makes CreateSession return a nil session without error
func (f *Factory) WithNilSession() *Factory {
	f.nilSession = true
	return f
}

// WithPutError makes Put operations on created sessions return an error
func (f *Factory) WithPutError(err error) *Factory {
	f.putErr = err
	return f
}

// WithGetError makes Get operations on created sessions return an error
func (f *Factory) WithGetError(err error) *Factory {
	f.getErr = err
	return f
}

// WithDeleteError makes Delete operations on created sessions return an error
func (f *Factory) WithDeleteError(err error) *Factory {
	f.deleteErr = err
	return f
}

// CreateSession creates an independent in-memory session.
func (f *Factory) CreateSession(ctx context.Context, connectionDetails map[string]string) (datastore.Session, error) {
	if f.connectErr != nil {
		return nil, f.connectErr
	}
	if f.nilSession {
		return nil, nil
	}
	return &Session{
		id:        uuid.NewString(),
		details:   connectionDetails,
		data:      make(map[string]any),
		putErr:    f.putErr,
		getErr:    f.getErr,
		deleteErr: f.deleteErr,
	}, nil
}

// Session is an in-memory implementation of datastore.KeyValueSession backed
// by a plain map. Safe for concurrent use, though sessions are intended for a
// single execution context at a time.
type Session struct {
	id      string
	details map[string]string

	mu           sync.RWMutex
	data         map[string]any
	interceptors datastore.InterceptorChain
	closed       bool

	putErr    error
	getErr    error
	deleteErr error
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// ConnectionDetails returns the configuration the session was created with.
func (s *Session) ConnectionDetails() map[string]string {
	return s.details
}

// SetEntityInterceptors installs the interceptor chain.
func (s *Session) SetEntityInterceptors(interceptors []datastore.EntityInterceptor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interceptors = interceptors
}

// EntityInterceptors returns the installed chain.
func (s *Session) EntityInterceptors() []datastore.EntityInterceptor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.interceptors
}

// Put stores an entity under key, running BeforeInsert for new keys and
// BeforeUpdate for existing ones.
func (s *Session) Put(ctx context.Context, key string, entity any) error {
	if s.putErr != nil {
		return s.putErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.NewConnectionFailedError("memory", errSessionClosed)
	}

	if _, exists := s.data[key]; exists {
		if err := s.interceptors.BeforeUpdate(ctx, key, entity); err != nil {
			return err
		}
	} else {
		if err := s.interceptors.BeforeInsert(ctx, key, entity); err != nil {
			return err
		}
	}

	s.data[key] = entity
	return nil
}

// Get retrieves the entity stored under key into out, which must be a non-nil
// pointer to the stored type.
func (s *Session) Get(ctx context.Context, key string, out any) error {
	if s.getErr != nil {
		return s.getErr
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return errors.NewConnectionFailedError("memory", errSessionClosed)
	}

	entity, exists := s.data[key]
	if !exists {
		return errors.NewNotFoundError("entity", key)
	}

	dst := reflect.ValueOf(out)
	if dst.Kind() != reflect.Pointer || dst.IsNil() {
		return errors.NewValidationError("out", "must be a non-nil pointer")
	}
	src := reflect.ValueOf(entity)
	if !src.Type().AssignableTo(dst.Elem().Type()) {
		return errors.NewValidationError("out", fmt.Sprintf("cannot assign %T to %T", entity, out))
	}
	dst.Elem().Set(src)
	return nil
}

// Delete removes the entity stored under key, running BeforeDelete first.
func (s *Session) Delete(ctx context.Context, key string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.NewConnectionFailedError("memory", errSessionClosed)
	}

	if _, exists := s.data[key]; !exists {
		return errors.NewNotFoundError("entity", key)
	}

	if err := s.interceptors.BeforeDelete(ctx, key); err != nil {
		return err
	}

	delete(s.data, key)
	return nil
}

// Disconnect releases the session's storage. Callers that bound the session
// to a context should also call datastore.ClearCurrentConnection.
func (s *Session) Disconnect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.data = nil
	return nil
}
