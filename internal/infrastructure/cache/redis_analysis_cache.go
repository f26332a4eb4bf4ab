package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	analysisKeyPrefix = "analytics:"
	generationKey     = "analytics:generation"
	redisDialTimeout  = 5 * time.Second
)

// RedisAnalysisCache implements AnalysisCache on Redis. It is suitable for
// deployments where several instances serve the same rollup store.
type RedisAnalysisCache struct {
	client *redis.Client
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisAnalysisCache connects to Redis and verifies the connection.
func NewRedisAnalysisCache(cfg RedisConfig) (*RedisAnalysisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisDialTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisAnalysisCache{client: client}, nil
}

// NewRedisAnalysisCacheWithClient wraps an existing client, useful in tests.
func NewRedisAnalysisCacheWithClient(client *redis.Client) *RedisAnalysisCache {
	return &RedisAnalysisCache{client: client}
}

// Key builds "analytics:g<N>:<parts...>" for the current generation.
func (c *RedisAnalysisCache) Key(ctx context.Context, parts ...string) (string, error) {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("failed to read cache generation: %w", err)
	}
	return fmt.Sprintf("%sg%d:%s", analysisKeyPrefix, gen, strings.Join(parts, ":")), nil
}

// Get unmarshals the cached JSON payload into dest.
func (c *RedisAnalysisCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read cache entry: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to decode cache entry: %w", err)
	}
	return true, nil
}

// Set stores the payload as JSON with a TTL.
func (c *RedisAnalysisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}

// Invalidate bumps the generation counter. Old entries expire via their TTL.
func (c *RedisAnalysisCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, generationKey).Err(); err != nil {
		return fmt.Errorf("failed to bump cache generation: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisAnalysisCache) Close() error {
	return c.client.Close()
}

var _ AnalysisCache = (*RedisAnalysisCache)(nil)
