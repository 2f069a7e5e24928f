package vogen

import "context"

// Cache is the interface hosting toolchains implement to persist generated
// artifacts across compiler sessions (e.g. on disk, or in a shared build
// cache). The compiler keeps its own in-memory cache per session and only
// consults a Cache on misses.
type Cache interface {
	// Get retrieves a value from the cache.
	// Returns nil, nil if the key doesn't exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in the cache.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes a value from the cache.
	Delete(ctx context.Context, key string) error

	// DeletePrefix removes all values with the given prefix.
	DeletePrefix(ctx context.Context, prefix string) error

	// Clear removes all values from the cache.
	Clear(ctx context.Context) error
}

// CacheKey identifies one generated artifact.
type CacheKey struct {
	Type        string // Generated type name
	Concern     string
	Fingerprint string // Structural fingerprint of the type model
}

// String returns the string representation of the cache key.
// Keys of one type share the Type prefix.
func (k CacheKey) String() string {
	return k.Type + ":" + k.Concern + ":" + k.Fingerprint
}
