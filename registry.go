/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"sync"

	"github.com/suparena/datastore/errors"
)

// Registry manages a collection of named Datastore instances. Note that the
// session binding itself stays process-wide: registering datastores under
// separate names does not give each one its own current-session slot.
type Registry interface {
	// Register registers a Datastore under a given name (for example, "orders" or "ratings").
	Register(name string, ds *Datastore) error
	// Get retrieves the registered Datastore for a given name.
	Get(name string) (*Datastore, error)
	// Names returns all registered datastore names.
	Names() []string
}

// registryManager is a thread-safe implementation of the Registry interface.
type registryManager struct {
	mu         sync.RWMutex
	datastores map[string]*Datastore
}

// NewRegistry creates and returns a new Registry implementation.
func NewRegistry() Registry {
	return &registryManager{
		datastores: make(map[string]*Datastore),
	}
}

// Register stores the provided Datastore under the given name.
func (rm *registryManager) Register(name string, ds *Datastore) error {
	if ds == nil {
		return errors.NewValidationError("ds", "datastore must not be nil")
	}

	rm.mu.Lock()
	defer rm.mu.Unlock()

	if _, exists := rm.datastores[name]; exists {
		return errors.NewAlreadyExistsError("Datastore", name)
	}
	rm.datastores[name] = ds
	return nil
}

// Get retrieves the Datastore associated with the given name.
func (rm *registryManager) Get(name string) (*Datastore, error) {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	ds, exists := rm.datastores[name]
	if !exists {
		return nil, errors.NewNotFoundError("Datastore", name)
	}
	return ds, nil
}

// Names returns all registered datastore names.
func (rm *registryManager) Names() []string {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	names := make([]string, 0, len(rm.datastores))
	for name := range rm.datastores {
		names = append(names, name)
	}
	return names
}
