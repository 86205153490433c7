/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"
	"sync"

	"github.com/suparena/datastore/errors"
	"github.com/suparena/datastore/mapping"
)

// connectFirstMessage is the guidance carried by session-lookup failures.
const connectFirstMessage = "no datastore session found; call Datastore.Connect(..) before retrieving the current session"

// sessionContextKey is the single process-wide slot sessions are bound under.
// Every Datastore instance shares it: connecting on one instance overwrites
// what RetrieveSession observes for that context chain, regardless of which
// instance is queried.
type sessionContextKey struct{}

// Datastore owns the configuration and interceptor chain for one backend and
// manufactures sessions through its SessionFactory. It binds each created
// session to the calling context so downstream code can retrieve "the current
// session" without a Datastore reference.
type Datastore struct {
	mu                sync.RWMutex
	factory           SessionFactory
	mappingContext    *mapping.Context
	connectionDetails map[string]string
	interceptors      []EntityInterceptor
}

// New creates a Datastore around the given session factory and mapping
// context. Both are required; sessions cannot be created without them.
func New(factory SessionFactory, mappingContext *mapping.Context) (*Datastore, error) {
	if factory == nil {
		return nil, errors.NewValidationError("factory", "session factory must not be nil")
	}
	if mappingContext == nil {
		return nil, errors.NewValidationError("mappingContext", "mapping context must not be nil")
	}
	return &Datastore{
		factory:        factory,
		mappingContext: mappingContext,
	}, nil
}

// NewWithDetails creates a Datastore with stored connection details and
// registers the default ValidatingInterceptor.
func NewWithDetails(factory SessionFactory, mappingContext *mapping.Context, connectionDetails map[string]string) (*Datastore, error) {
	ds, err := New(factory, mappingContext)
	if err != nil {
		return nil, err
	}
	ds.connectionDetails = connectionDetails
	ds.AddEntityInterceptor(NewValidatingInterceptor())
	return ds, nil
}

// MappingContext returns the mapping context supplied at construction.
func (d *Datastore) MappingContext() *mapping.Context {
	return d.mappingContext
}

// ConnectionDetails returns the stored connection details.
func (d *Datastore) ConnectionDetails() map[string]string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.connectionDetails
}

// SetConnectionDetails replaces the stored connection details.
func (d *Datastore) SetConnectionDetails(connectionDetails map[string]string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.connectionDetails = connectionDetails
}

// AddEntityInterceptor sets the interceptor's owner back-reference and appends
// it to the chain. Registration order is invocation order. A nil interceptor
// is a no-op.
func (d *Datastore) AddEntityInterceptor(interceptor EntityInterceptor) {
	if interceptor == nil {
		return
	}
	interceptor.SetDatastore(d)
	d.mu.Lock()
	defer d.mu.Unlock()
	d.interceptors = append(d.interceptors, interceptor)
}

// SetEntityInterceptors replaces the interceptor chain wholesale. A nil slice
// is a no-op and leaves the existing chain untouched.
func (d *Datastore) SetEntityInterceptors(interceptors []EntityInterceptor) {
	if interceptors == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.interceptors = interceptors
}

// EntityInterceptors returns a snapshot of the interceptor chain.
func (d *Datastore) EntityInterceptors() []EntityInterceptor {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]EntityInterceptor, len(d.interceptors))
	copy(out, d.interceptors)
	return out
}

// Connect creates a session using the stored connection details, installs the
// interceptor chain, and binds the session to the returned context.
func (d *Datastore) Connect(ctx context.Context) (context.Context, Session, error) {
	return d.ConnectWith(ctx, d.ConnectionDetails())
}

// ConnectWith creates a session through the factory. On factory error the
// error propagates unchanged and no binding happens. A non-nil session
// receives a snapshot of the interceptors registered so far and is bound to
// the returned context. A nil session from the factory is returned verbatim
// with the context untouched; that outcome is the factory's responsibility.
func (d *Datastore) ConnectWith(ctx context.Context, connectionDetails map[string]string) (context.Context, Session, error) {
	session, err := d.factory.CreateSession(ctx, connectionDetails)
	if err != nil {
		return ctx, nil, err
	}
	if session == nil {
		return ctx, nil, nil
	}
	session.SetEntityInterceptors(d.EntityInterceptors())
	return BindSession(ctx, session), session, nil
}

// CurrentSession returns the session bound to ctx. Instance-scoped for
// convenience; the contract is identical to RetrieveSession.
func (d *Datastore) CurrentSession(ctx context.Context) (Session, error) {
	return RetrieveSession(ctx)
}

// RetrieveSession returns the session bound to ctx, independent of any
// Datastore instance. Contexts derived from the binding context inherit it;
// a context that was never bound (or was cleared) fails with
// errors.ErrConnectionNotFound.
func RetrieveSession(ctx context.Context) (Session, error) {
	session, ok := ctx.Value(sessionContextKey{}).(Session)
	if !ok || session == nil {
		return nil, errors.NewConnectionNotFoundError(connectFirstMessage)
	}
	return session, nil
}

// BindSession returns a context with the session bound as current. A nil
// session returns ctx unchanged.
func BindSession(ctx context.Context, session Session) context.Context {
	if session == nil {
		return ctx
	}
	return context.WithValue(ctx, sessionContextKey{}, session)
}

// ClearCurrentConnection returns a context whose session slot is empty,
// shadowing any binding inherited from parent contexts. Intended to be called
// when a session disconnects; the contract is cooperative, not enforced.
func ClearCurrentConnection(ctx context.Context) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, nil)
}

// InitializeConverters registers the basic converter set into the mapping
// context's converter registry. Idempotent per registry instance.
func InitializeConverters(mappingContext *mapping.Context) {
	registrar := mapping.BasicTypeConverterRegistrar{}
	registrar.Register(mappingContext.ConverterRegistry())
}

// IsIndexed reports whether the property's key-value mapped form marks it as
// indexed. Properties without mapping metadata are not indexed.
func IsIndexed(property *mapping.PersistentProperty) bool {
	if property == nil {
		return false
	}
	kv := property.Mapping().MappedForm()
	return kv != nil && kv.Index
}
