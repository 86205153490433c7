/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import "context"

// EntityInterceptor is a hook invoked by session implementations around
// persistence operations. Interceptors run in registration order; a non-nil
// error vetoes the operation and is returned to the caller.
type EntityInterceptor interface {
	// SetDatastore gives the interceptor a back-reference to its owner.
	// Called by AddEntityInterceptor at registration time.
	SetDatastore(ds *Datastore)

	BeforeInsert(ctx context.Context, key string, entity any) error
	BeforeUpdate(ctx context.Context, key string, entity any) error
	BeforeDelete(ctx context.Context, key string) error
}

// InterceptorChain runs a sequence of interceptors in order, stopping at the
// first error. Sessions hold their installed interceptors as a chain.
type InterceptorChain []EntityInterceptor

// BeforeInsert runs every interceptor's BeforeInsert hook in order.
func (c InterceptorChain) BeforeInsert(ctx context.Context, key string, entity any) error {
	for _, ic := range c {
		if err := ic.BeforeInsert(ctx, key, entity); err != nil {
			return err
		}
	}
	return nil
}

// BeforeUpdate runs every interceptor's BeforeUpdate hook in order.
func (c InterceptorChain) BeforeUpdate(ctx context.Context, key string, entity any) error {
	for _, ic := range c {
		if err := ic.BeforeUpdate(ctx, key, entity); err != nil {
			return err
		}
	}
	return nil
}

// BeforeDelete runs every interceptor's BeforeDelete hook in order.
func (c InterceptorChain) BeforeDelete(ctx context.Context, key string) error {
	for _, ic := range c {
		if err := ic.BeforeDelete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}
