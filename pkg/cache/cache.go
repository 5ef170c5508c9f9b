// Package cache provides byte caches for rendered documents.
//
// Two backends are available: a file cache for CLI usage and a Redis
// cache for the render server. Keys are built from manifest content and
// render options, so identical inputs hit the same entry across runs.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Cache stores opaque byte values under string keys.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// RenderKey keys a render result by manifest content and output options.
// The same manifest rendered to a different format or compactness gets
// its own entry.
func RenderKey(manifest []byte, format string, compact bool) string {
	return hashKey("doc", Hash(manifest), format, compact)
}

// DocumentKey keys a served document by its assigned id.
func DocumentKey(id string) string {
	return "srv:" + id
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
