// Package id generates prefixed identifiers for requests and log correlation.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Prefixes used across the server.
const (
	PrefixRequest = "req"
)

// Generate creates a prefixed unique ID using NanoID.
// Format: prefix-nanoid (e.g., "req-V1StGXR8_Z5jdHi6B-myT").
func Generate(prefix string) (string, error) {
	nid, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + nid, nil
}

// MustGenerate is like Generate but panics if ID generation fails.
func MustGenerate(prefix string) string {
	v, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return v
}

// RequestID returns a fresh request ID, falling back to a fixed marker when
// the system has no entropy. Request IDs only correlate log lines, so a
// duplicate is harmless.
func RequestID() string {
	v, err := Generate(PrefixRequest)
	if err != nil {
		return PrefixRequest + "-unknown"
	}
	return v
}
