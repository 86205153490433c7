/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import "context"

// Session is a unit-of-work handle representing one logical connection to the
// backing store. Sessions are created by a SessionFactory, receive the owning
// datastore's interceptor chain at connect time, and are intended to be used
// by a single execution context at a time.
type Session interface {
	// ID returns the session's unique identifier.
	ID() string

	// SetEntityInterceptors installs the interceptor chain the session must
	// invoke, in order, around its persistence operations.
	SetEntityInterceptors(interceptors []EntityInterceptor)

	// EntityInterceptors returns the currently installed chain.
	EntityInterceptors() []EntityInterceptor

	// ConnectionDetails returns the configuration the session was created with.
	ConnectionDetails() map[string]string

	// Disconnect releases the session's backend resources. Callers that bound
	// the session to a context should also call ClearCurrentConnection.
	Disconnect(ctx context.Context) error
}

// KeyValueSession extends Session with the persistence operations backends
// implement. Each operation runs the installed interceptor chain first; an
// interceptor error vetoes the operation.
type KeyValueSession interface {
	Session

	Put(ctx context.Context, key string, entity any) error
	Get(ctx context.Context, key string, out any) error
	Delete(ctx context.Context, key string) error
}

// SessionFactory creates native sessions for a concrete backend. CreateSession
// must be safe to call repeatedly; each call yields an independent session.
// Backend-specific failures propagate to the Connect caller unchanged.
type SessionFactory interface {
	CreateSession(ctx context.Context, connectionDetails map[string]string) (Session, error)
}

// SessionFactoryFunc adapts a function to the SessionFactory interface.
type SessionFactoryFunc func(ctx context.Context, connectionDetails map[string]string) (Session, error)

func (f SessionFactoryFunc) CreateSession(ctx context.Context, connectionDetails map[string]string) (Session, error) {
	return f(ctx, connectionDetails)
}
