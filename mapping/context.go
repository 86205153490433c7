/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mapping

import (
	"fmt"
	"reflect"
	"sync"
)

// Context is the metadata registry for persistent entity types. It maps Go
// types to their PersistentEntity descriptors and owns the converter registry
// used for basic type conversion.
type Context struct {
	mu         sync.RWMutex
	entities   map[reflect.Type]*PersistentEntity
	converters *ConverterRegistry
}

// NewContext creates an empty mapping context.
func NewContext() *Context {
	return &Context{
		entities:   make(map[reflect.Type]*PersistentEntity),
		converters: NewConverterRegistry(),
	}
}

// ConverterRegistry returns the context's converter registry.
func (c *Context) ConverterRegistry() *ConverterRegistry {
	return c.converters
}

// RegisterEntity associates a Go type T with its persistent entity metadata.
// If metadata is already registered for T, it panics to prevent accidental overrides.
func RegisterEntity[T any](c *Context, entity *PersistentEntity) {
	var zero T
	t := reflect.TypeOf(zero)

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entities[t]; exists {
		panic(fmt.Sprintf("mapping context: entity for type %v already registered", t))
	}
	c.entities[t] = entity
}

// Entity retrieves the persistent entity metadata for type T, if any.
func Entity[T any](c *Context) (*PersistentEntity, bool) {
	var zero T
	t := reflect.TypeOf(zero)

	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entities[t]
	return e, ok
}

// PersistentEntity describes one persistent type: its name and its properties.
type PersistentEntity struct {
	Name       string
	properties map[string]*PersistentProperty
	order      []string
}

// NewPersistentEntity creates an entity descriptor with the given name.
func NewPersistentEntity(name string) *PersistentEntity {
	return &PersistentEntity{
		Name:       name,
		properties: make(map[string]*PersistentProperty),
	}
}

// AddProperty registers a property on the entity and returns it for chaining.
func (e *PersistentEntity) AddProperty(p *PersistentProperty) *PersistentEntity {
	if p == nil {
		return e
	}
	if _, exists := e.properties[p.Name]; !exists {
		e.order = append(e.order, p.Name)
	}
	e.properties[p.Name] = p
	return e
}

// Property looks up a property by name.
func (e *PersistentEntity) Property(name string) (*PersistentProperty, bool) {
	p, ok := e.properties[name]
	return p, ok
}

// Properties returns the entity's properties in registration order.
func (e *PersistentEntity) Properties() []*PersistentProperty {
	out := make([]*PersistentProperty, 0, len(e.order))
	for _, name := range e.order {
		out = append(out, e.properties[name])
	}
	return out
}

// PersistentProperty describes a single persistent property of an entity.
// The mapping is optional; properties without backend-specific metadata
// simply have no mapped form.
type PersistentProperty struct {
	Name    string
	Type    reflect.Type
	mapping *PropertyMapping
}

// NewPersistentProperty creates a property descriptor without mapping metadata.
func NewPersistentProperty(name string, typ reflect.Type) *PersistentProperty {
	return &PersistentProperty{Name: name, Type: typ}
}

// WithMapping attaches backend-specific mapping metadata to the property.
func (p *PersistentProperty) WithMapping(m *PropertyMapping) *PersistentProperty {
	p.mapping = m
	return p
}

// Mapping returns the property's mapping metadata, or nil when absent.
func (p *PersistentProperty) Mapping() *PropertyMapping {
	return p.mapping
}

// PropertyMapping carries the backend-specific mapped form of a property.
type PropertyMapping struct {
	mappedForm *KeyValue
}

// NewPropertyMapping creates a mapping around the given key-value form.
func NewPropertyMapping(kv *KeyValue) *PropertyMapping {
	return &PropertyMapping{mappedForm: kv}
}

// MappedForm returns the key-value form, or nil when absent.
func (m *PropertyMapping) MappedForm() *KeyValue {
	if m == nil {
		return nil
	}
	return m.mappedForm
}

// KeyValue is the mapped form of a property in a key-value store: the storage
// key the property is written under, and whether the backend maintains a
// secondary index for it.
type KeyValue struct {
	Key   string
	Index bool
}
