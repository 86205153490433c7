/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/suparena/datastore"
)

func TestLoadConnectionDetails(t *testing.T) {
	t.Run("FlatMapping", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "details.yaml")
		content := "addr: localhost:6379\ndb: \"2\"\nprefix: app:entity:\n"
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("Failed to write fixture: %v", err)
		}

		details, err := datastore.LoadConnectionDetails(path)
		if err != nil {
			t.Fatalf("LoadConnectionDetails failed: %v", err)
		}
		if details["addr"] != "localhost:6379" || details["db"] != "2" || details["prefix"] != "app:entity:" {
			t.Errorf("Unexpected details: %v", details)
		}
	})

	t.Run("MissingFile", func(t *testing.T) {
		if _, err := datastore.LoadConnectionDetails(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
			t.Error("Expected error for missing file")
		}
	})

	t.Run("MalformedYAML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte("- not\n- a\n- mapping\n"), 0o600); err != nil {
			t.Fatalf("Failed to write fixture: %v", err)
		}
		if _, err := datastore.LoadConnectionDetails(path); err == nil {
			t.Error("Expected error for non-mapping YAML")
		}
	})
}

func TestConnectionDetailsFromEnv(t *testing.T) {
	t.Setenv("DSTEST_ADDR", "localhost:6379")
	t.Setenv("DSTEST_PASSWORD", "secret")
	t.Setenv("UNRELATED_KEY", "ignored")

	details := datastore.ConnectionDetailsFromEnv("DSTEST_")
	if details["addr"] != "localhost:6379" || details["password"] != "secret" {
		t.Errorf("Unexpected details: %v", details)
	}
	if _, ok := details["unrelated_key"]; ok {
		t.Error("Variables without the prefix must be ignored")
	}
}

func TestMergeConnectionDetails(t *testing.T) {
	base := map[string]string{"addr": "localhost:6379", "db": "0"}
	overlay := map[string]string{"db": "3"}

	merged := datastore.MergeConnectionDetails(base, nil, overlay)
	if merged["addr"] != "localhost:6379" {
		t.Errorf("Base value lost: %v", merged)
	}
	if merged["db"] != "3" {
		t.Errorf("Later sources must win: %v", merged)
	}
}
