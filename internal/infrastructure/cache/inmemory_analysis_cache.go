package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// InMemoryAnalysisCache implements AnalysisCache for single-instance
// deployments and tests. Entries are stored as JSON to keep the semantics
// identical to the Redis implementation.
type InMemoryAnalysisCache struct {
	mu         sync.RWMutex
	entries    map[string]memoryEntry
	generation atomic.Int64
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// NewInMemoryAnalysisCache creates an empty in-memory cache.
func NewInMemoryAnalysisCache() *InMemoryAnalysisCache {
	return &InMemoryAnalysisCache{entries: make(map[string]memoryEntry)}
}

// Key builds "analytics:g<N>:<parts...>" for the current generation.
func (c *InMemoryAnalysisCache) Key(_ context.Context, parts ...string) (string, error) {
	return fmt.Sprintf("%sg%d:%s", analysisKeyPrefix, c.generation.Load(), strings.Join(parts, ":")), nil
}

// Get unmarshals the cached payload into dest.
func (c *InMemoryAnalysisCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return false, nil
	}
	if err := json.Unmarshal(entry.data, dest); err != nil {
		return false, fmt.Errorf("failed to decode cache entry: %w", err)
	}
	return true, nil
}

// Set stores the payload with a TTL.
func (c *InMemoryAnalysisCache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}
	c.mu.Lock()
	c.entries[key] = memoryEntry{data: data, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
	return nil
}

// Invalidate bumps the generation and drops all stored entries.
func (c *InMemoryAnalysisCache) Invalidate(_ context.Context) error {
	c.generation.Add(1)
	c.mu.Lock()
	c.entries = make(map[string]memoryEntry)
	c.mu.Unlock()
	return nil
}

// Close is a no-op for the in-memory cache.
func (c *InMemoryAnalysisCache) Close() error {
	return nil
}

var _ AnalysisCache = (*InMemoryAnalysisCache)(nil)
