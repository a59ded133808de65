// Package cache stores rendered timeline artifacts between runs.
//
// Parsing and layout are deterministic and cheap, so only the render stage
// is cached: an SVG, TikZ, or JSON artifact is stored under a key derived
// from the event content and the full option set, and a cache hit skips the
// sinks entirely. Keys come from a [Keyer] so tests can substitute
// predictable ones.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// ArtifactTTL bounds how long a rendered artifact is served before it is
// rendered again. A bounded window keeps the cache directory from growing
// without limit.
const ArtifactTTL = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// ArtifactKeyOpts identify a rendered output variant.
type ArtifactKeyOpts struct {
	Format       string
	Reproducible bool
}

// Keyer derives artifact cache keys.
type Keyer interface {
	// ArtifactKey identifies one rendered artifact. layoutHash covers the
	// event content and every option that shapes the output; opts pick the
	// format variant within that layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer namespaces keys under "artifact:" and hashes the parts, so
// keys stay fixed-length no matter what the inputs contain.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return "artifact:" + Hash([]byte(fmt.Sprintf("%s|%s|%t", layoutHash, opts.Format, opts.Reproducible)))
}

// Hash returns the hex-encoded SHA-256 of data. It is the content address
// used for event fingerprints and layout hashes throughout the pipeline.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Discard is a Cache that stores nothing; every Get is a miss. It backs
// the --no-cache path and keeps callers free of nil checks.
var Discard Cache = discard{}

type discard struct{}

func (discard) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (discard) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (discard) Delete(context.Context, string) error { return nil }

func (discard) Close() error { return nil }
