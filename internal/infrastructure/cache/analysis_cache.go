package cache

import (
	"context"
	"time"
)

// AnalysisCache stores serialized analysis payloads between rebuilds. Keys
// embed a generation counter; Invalidate bumps the generation so every entry
// written before a rebuild becomes unreachable at once.
type AnalysisCache interface {
	// Key builds a namespaced cache key for the current generation.
	Key(ctx context.Context, parts ...string) (string, error)

	// Get unmarshals the cached payload into dest. The boolean reports
	// whether the key was present.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores the payload under the key with a TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Invalidate bumps the generation, orphaning all previous entries.
	Invalidate(ctx context.Context) error

	// Close releases any underlying connections.
	Close() error
}
