/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package redisstore_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/suparena/datastore"
	"github.com/suparena/datastore/errors"
	"github.com/suparena/datastore/mapping"
	"github.com/suparena/datastore/redisstore"
	"github.com/suparena/datastore/testmodels"
)

func startRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	return mr
}

func TestRedisSession(t *testing.T) {
	mr := startRedis(t)
	ctx := context.Background()

	factory := redisstore.NewFactory()
	details := map[string]string{
		redisstore.DetailAddr:   mr.Addr(),
		redisstore.DetailPrefix: "test:entity:",
	}

	session, err := factory.CreateSession(ctx, details)
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	kv := session.(*redisstore.Session)

	t.Run("RoundTrip", func(t *testing.T) {
		player := testmodels.Player{ID: "p1", Name: "Ada", Rating: 1200}
		if err := kv.Put(ctx, "p1", player); err != nil {
			t.Fatalf("Put failed: %v", err)
		}

		var got testmodels.Player
		if err := kv.Get(ctx, "p1", &got); err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.ID != "p1" || got.Name != "Ada" || got.Rating != 1200 {
			t.Errorf("Round-trip mismatch: %+v", got)
		}

		// Values live under the configured prefix
		if !mr.Exists("test:entity:p1") {
			t.Error("Entity should be stored under the prefixed key")
		}
	})

	t.Run("GetMissing", func(t *testing.T) {
		var got testmodels.Player
		if err := kv.Get(ctx, "absent", &got); !errors.IsNotFound(err) {
			t.Errorf("Expected not found error, got %v", err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := kv.Delete(ctx, "p1"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if err := kv.Delete(ctx, "p1"); !errors.IsNotFound(err) {
			t.Errorf("Expected not found error on second delete, got %v", err)
		}
	})

	t.Run("Disconnect", func(t *testing.T) {
		if err := session.Disconnect(ctx); err != nil {
			t.Errorf("Disconnect failed: %v", err)
		}
	})
}

func TestRedisFactoryValidation(t *testing.T) {
	ctx := context.Background()
	factory := redisstore.NewFactory()

	t.Run("MissingAddr", func(t *testing.T) {
		if _, err := factory.CreateSession(ctx, nil); !errors.IsValidationError(err) {
			t.Errorf("Expected validation error, got %v", err)
		}
	})

	t.Run("BadDB", func(t *testing.T) {
		details := map[string]string{redisstore.DetailAddr: "localhost:0", redisstore.DetailDB: "not-a-number"}
		if _, err := factory.CreateSession(ctx, details); !errors.IsValidationError(err) {
			t.Errorf("Expected validation error, got %v", err)
		}
	})

	t.Run("BadTTL", func(t *testing.T) {
		details := map[string]string{redisstore.DetailAddr: "localhost:0", redisstore.DetailTTL: "soon"}
		if _, err := factory.CreateSession(ctx, details); !errors.IsValidationError(err) {
			t.Errorf("Expected validation error, got %v", err)
		}
	})

	t.Run("UnreachableServer", func(t *testing.T) {
		mr, err := miniredis.Run()
		if err != nil {
			t.Fatalf("Failed to start miniredis: %v", err)
		}
		addr := mr.Addr()
		mr.Close()

		details := map[string]string{redisstore.DetailAddr: addr}
		if _, err := factory.CreateSession(ctx, details); !errors.IsConnectionFailed(err) {
			t.Errorf("Expected connection failed error, got %v", err)
		}
	})
}

func TestRedisSessionWithDatastore(t *testing.T) {
	mr := startRedis(t)
	ctx := context.Background()

	details := map[string]string{redisstore.DetailAddr: mr.Addr()}
	ds, err := datastore.NewWithDetails(redisstore.NewFactory(), mapping.NewContext(), details)
	if err != nil {
		t.Fatalf("NewWithDetails failed: %v", err)
	}

	ctx, session, err := ds.Connect(ctx)
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	bound, err := datastore.RetrieveSession(ctx)
	if err != nil {
		t.Fatalf("RetrieveSession failed: %v", err)
	}
	if bound != session {
		t.Error("Bound session should be the one just connected")
	}

	// Default ValidatingInterceptor vetoes invalid writes end to end
	kv := session.(datastore.KeyValueSession)
	if err := kv.Put(ctx, "bad", testmodels.Player{}); !errors.IsValidationError(err) {
		t.Errorf("Expected validation veto, got %v", err)
	}
}
