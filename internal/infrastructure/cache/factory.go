package cache

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/vendascrm/backend/internal/infrastructure/config"
)

// AnalysisCacheFactory creates analysis caches based on configuration
type AnalysisCacheFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// AnalysisCacheFactoryOption is a functional option for configuring the factory
type AnalysisCacheFactoryOption func(*AnalysisCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) AnalysisCacheFactoryOption {
	return func(f *AnalysisCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to an in-memory cache
// when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) AnalysisCacheFactoryOption {
	return func(f *AnalysisCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewAnalysisCacheFactory creates a new factory
func NewAnalysisCacheFactory(cfg config.RedisConfig, opts ...AnalysisCacheFactoryOption) *AnalysisCacheFactory {
	f := &AnalysisCacheFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateCache creates an analysis cache. Redis is tried first when enabled;
// an in-memory cache serves single-instance deployments and as fallback.
func (f *AnalysisCacheFactory) CreateCache() (AnalysisCache, error) {
	if !f.redisConfig.Enabled {
		f.logger.Info("redis disabled, using in-memory analysis cache")
		return NewInMemoryAnalysisCache(), nil
	}

	store, err := NewRedisAnalysisCache(RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	})
	if err == nil {
		f.logger.Info("using Redis analysis cache")
		return store, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for analysis cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory analysis cache. "+
		"Cached analyses will not be shared across instances.",
		zap.Error(err),
	)
	return NewInMemoryAnalysisCache(), nil
}
