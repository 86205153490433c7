/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"

	"github.com/suparena/datastore/errors"
)

// Validatable is implemented by entities that can check their own invariants.
type Validatable interface {
	Validate() error
}

// ValidatingInterceptor vetoes inserts and updates of entities whose Validate
// method fails. Entities that do not implement Validatable pass through.
// NewWithDetails registers one instance by default.
type ValidatingInterceptor struct {
	datastore *Datastore
}

// NewValidatingInterceptor creates a ValidatingInterceptor.
func NewValidatingInterceptor() *ValidatingInterceptor {
	return &ValidatingInterceptor{}
}

// SetDatastore records the owning datastore.
func (v *ValidatingInterceptor) SetDatastore(ds *Datastore) {
	v.datastore = ds
}

// Datastore returns the owning datastore, or nil before registration.
func (v *ValidatingInterceptor) Datastore() *Datastore {
	return v.datastore
}

// BeforeInsert validates the entity if it is Validatable.
func (v *ValidatingInterceptor) BeforeInsert(ctx context.Context, key string, entity any) error {
	return v.validate(entity)
}

// BeforeUpdate validates the entity if it is Validatable.
func (v *ValidatingInterceptor) BeforeUpdate(ctx context.Context, key string, entity any) error {
	return v.validate(entity)
}

// BeforeDelete is a no-op; deletes carry no entity state to validate.
func (v *ValidatingInterceptor) BeforeDelete(ctx context.Context, key string) error {
	return nil
}

func (v *ValidatingInterceptor) validate(entity any) error {
	val, ok := entity.(Validatable)
	if !ok {
		return nil
	}
	if err := val.Validate(); err != nil {
		if errors.IsValidationError(err) {
			return err
		}
		return errors.NewValidationError("", err.Error())
	}
	return nil
}
