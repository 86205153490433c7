/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package redisstore provides a Redis-backed session backend.
package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	backend "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/suparena/datastore"
	"github.com/suparena/datastore/errors"
)

// Connection detail keys understood by the factory.
const (
	DetailAddr     = "addr"
	DetailPassword = "password"
	DetailDB       = "db"
	DetailPrefix   = "prefix"
	DetailTTL      = "ttl"
)

const defaultPrefix = "datastore:entity:"

// Factory creates Redis-backed sessions from connection details.
type Factory struct{}

// NewFactory creates a new Redis session factory.
func NewFactory() *Factory {
	return &Factory{}
}

// CreateSession dials Redis with the given details and verifies the
// connection with a PING. Details: addr (required), password, db, prefix,
// ttl (Go duration, e.g. "30m").
func (f *Factory) CreateSession(ctx context.Context, connectionDetails map[string]string) (datastore.Session, error) {
	addr := connectionDetails[DetailAddr]
	if addr == "" {
		return nil, errors.NewValidationError(DetailAddr, "redis address is required")
	}

	db := 0
	if raw := connectionDetails[DetailDB]; raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errors.NewValidationError(DetailDB, fmt.Sprintf("invalid db number %q", raw))
		}
		db = parsed
	}

	var ttl time.Duration
	if raw := connectionDetails[DetailTTL]; raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, errors.NewValidationError(DetailTTL, fmt.Sprintf("invalid ttl %q", raw))
		}
		ttl = parsed
	}

	prefix := connectionDetails[DetailPrefix]
	if prefix == "" {
		prefix = defaultPrefix
	}

	client := backend.NewClient(&backend.Options{
		Addr:     addr,
		Password: connectionDetails[DetailPassword],
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.NewConnectionFailedError("redis", err)
	}

	session := &Session{
		id:      uuid.NewString(),
		details: connectionDetails,
		client:  client,
		prefix:  prefix,
		ttl:     ttl,
	}
	log.Debug().Str("session", session.id).Str("addr", addr).Msg("redis session created")
	return session, nil
}

// NewSessionFromClient wraps an existing Redis client in a session. The
// session takes ownership of the client; Disconnect closes it.
func NewSessionFromClient(client *backend.Client, prefix string, ttl time.Duration) *Session {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &Session{
		id:     uuid.NewString(),
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

// Session implements datastore.KeyValueSession on Redis. Entities are stored
// as JSON under prefixed keys.
type Session struct {
	id      string
	details map[string]string
	client  *backend.Client
	prefix  string
	ttl     time.Duration

	mu           sync.RWMutex
	interceptors datastore.InterceptorChain
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

func (s *Session) chain() datastore.InterceptorChain {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.interceptors
}

func (s *Session) key(k string) string {
	return s.prefix + k
}

// Put stores an entity as JSON under the prefixed key. An existing key runs
// BeforeUpdate, a new key BeforeInsert.
func (s *Session) Put(ctx context.Context, key string, entity any) error {
	exists, err := s.client.Exists(ctx, s.key(key)).Result()
	if err != nil {
		return fmt.Errorf("failed to check key %q: %w", key, err)
	}

	if exists > 0 {
		if err := s.chain().BeforeUpdate(ctx, key, entity); err != nil {
			return err
		}
	} else {
		if err := s.chain().BeforeInsert(ctx, key, entity); err != nil {
			return err
		}
	}

	data, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("failed to marshal entity: %w", err)
	}

	if err := s.client.Set(ctx, s.key(key), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store entity %q: %w", key, err)
	}
	return nil
}

// Get retrieves the entity stored under key into out.
func (s *Session) Get(ctx context.Context, key string, out any) error {
	data, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err == backend.Nil {
		return errors.NewNotFoundError("entity", key)
	}
	if err != nil {
		return fmt.Errorf("failed to load entity %q: %w", key, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to unmarshal entity %q: %w", key, err)
	}
	return nil
}

// Delete removes the entity stored under key, running BeforeDelete first.
func (s *Session) Delete(ctx context.Context, key string) error {
	if err := s.chain().BeforeDelete(ctx, key); err != nil {
		return err
	}

	deleted, err := s.client.Del(ctx, s.key(key)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete entity %q: %w", key, err)
	}
	if deleted == 0 {
		return errors.NewNotFoundError("entity", key)
	}
	return nil
}

// Disconnect closes the underlying Redis client. Callers that bound the
// session to a context should also call datastore.ClearCurrentConnection.
func (s *Session) Disconnect(ctx context.Context) error {
	log.Debug().Str("session", s.id).Msg("redis session disconnecting")
	return s.client.Close()
}
