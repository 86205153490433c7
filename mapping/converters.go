/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mapping

import (
	"fmt"
	"reflect"
	"strconv"
	"sync"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
)

// ConverterFunc converts a raw value into a target-typed value.
type ConverterFunc func(value any) (any, error)

// ConverterRegistry holds converters keyed by their target type.
type ConverterRegistry struct {
	mu         sync.RWMutex
	converters map[reflect.Type]ConverterFunc
}

// NewConverterRegistry creates an empty converter registry.
func NewConverterRegistry() *ConverterRegistry {
	return &ConverterRegistry{
		converters: make(map[reflect.Type]ConverterFunc),
	}
}

// Register installs a converter for the given target type, replacing any
// previous converter for that type.
func (r *ConverterRegistry) Register(target reflect.Type, fn ConverterFunc) {
	if target == nil || fn == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.converters[target] = fn
}

// Has reports whether a converter is registered for the target type.
func (r *ConverterRegistry) Has(target reflect.Type) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.converters[target]
	return ok
}

// Convert converts value to the target type using the registered converter.
func (r *ConverterRegistry) Convert(value any, target reflect.Type) (any, error) {
	r.mu.RLock()
	fn, ok := r.converters[target]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("converter registry: no converter registered for type %v", target)
	}
	return fn(value)
}

// BasicTypeConverterRegistrar registers the default set of string-sourced
// converters for basic Go and OpenAPI format types.
type BasicTypeConverterRegistrar struct{}

// Register installs the basic converter set into the registry. Registering
// twice is harmless; each converter simply replaces itself.
func (BasicTypeConverterRegistrar) Register(r *ConverterRegistry) {
	r.Register(reflect.TypeOf(int(0)), func(v any) (any, error) {
		s, err := asString(v)
		if err != nil {
			return nil, err
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("cannot convert %q to int: %w", s, err)
		}
		return n, nil
	})

	r.Register(reflect.TypeOf(int64(0)), func(v any) (any, error) {
		s, err := asString(v)
		if err != nil {
			return nil, err
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("cannot convert %q to int64: %w", s, err)
		}
		return n, nil
	})

	r.Register(reflect.TypeOf(float64(0)), func(v any) (any, error) {
		s, err := asString(v)
		if err != nil {
			return nil, err
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("cannot convert %q to float64: %w", s, err)
		}
		return f, nil
	})

	r.Register(reflect.TypeOf(false), func(v any) (any, error) {
		s, err := asString(v)
		if err != nil {
			return nil, err
		}
		b, err := strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("cannot convert %q to bool: %w", s, err)
		}
		return b, nil
	})

	r.Register(reflect.TypeOf(time.Time{}), func(v any) (any, error) {
		s, err := asString(v)
		if err != nil {
			return nil, err
		}
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, fmt.Errorf("cannot convert %q to time.Time: %w", s, err)
		}
		return t, nil
	})

	r.Register(reflect.TypeOf(time.Duration(0)), func(v any) (any, error) {
		s, err := asString(v)
		if err != nil {
			return nil, err
		}
		d, err := time.ParseDuration(s)
		if err != nil {
			return nil, fmt.Errorf("cannot convert %q to time.Duration: %w", s, err)
		}
		return d, nil
	})

	r.Register(reflect.TypeOf(strfmt.DateTime{}), func(v any) (any, error) {
		s, err := asString(v)
		if err != nil {
			return nil, err
		}
		dt, err := strfmt.ParseDateTime(s)
		if err != nil {
			return nil, fmt.Errorf("cannot convert %q to strfmt.DateTime: %w", s, err)
		}
		return dt, nil
	})

	r.Register(reflect.TypeOf(strfmt.Date{}), func(v any) (any, error) {
		s, err := asString(v)
		if err != nil {
			return nil, err
		}
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return nil, fmt.Errorf("cannot convert %q to strfmt.Date: %w", s, err)
		}
		return strfmt.Date(t), nil
	})

	r.Register(reflect.TypeOf(uuid.UUID{}), func(v any) (any, error) {
		s, err := asString(v)
		if err != nil {
			return nil, err
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("cannot convert %q to uuid.UUID: %w", s, err)
		}
		return id, nil
	})
}

func asString(v any) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case fmt.Stringer:
		return s.String(), nil
	default:
		return "", fmt.Errorf("expected string source, got %T", v)
	}
}
