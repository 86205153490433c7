/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LoadConnectionDetails reads connection details from a flat YAML mapping of
// string keys to string values. The contents are opaque to this layer; they
// are passed through unvalidated to the session factory.
func LoadConnectionDetails(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read connection details: %w", err)
	}

	details := make(map[string]string)
	if err := yaml.Unmarshal(data, &details); err != nil {
		return nil, fmt.Errorf("failed to parse connection details: %w", err)
	}
	return details, nil
}

// ConnectionDetailsFromEnv builds connection details from environment
// variables carrying the given prefix (for example DATASTORE_ADDR with prefix
// "DATASTORE_" becomes "addr"). A .env file in the working directory is
// loaded first when present; a missing file is not an error.
func ConnectionDetailsFromEnv(prefix string) map[string]string {
	_ = godotenv.Load()

	details := make(map[string]string)
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(k, prefix) {
			continue
		}
		name := strings.ToLower(strings.TrimPrefix(k, prefix))
		if name == "" {
			continue
		}
		details[name] = v
	}
	return details
}

// MergeConnectionDetails overlays each source map in order; later sources win.
// Nil sources are skipped.
func MergeConnectionDetails(sources ...map[string]string) map[string]string {
	merged := make(map[string]string)
	for _, src := range sources {
		for k, v := range src {
			merged[k] = v
		}
	}
	return merged
}
