package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/insightify/insightify-go/internal/adapter"
	"github.com/insightify/insightify-go/internal/config"
	"github.com/insightify/insightify-go/internal/constants"
	"github.com/insightify/insightify-go/internal/service/analysis"
	"github.com/insightify/insightify-go/internal/service/cache"
	"github.com/insightify/insightify-go/internal/state"
	"github.com/insightify/insightify-go/internal/util"
	"github.com/insightify/insightify-go/pkg/errors"
	"go.uber.org/zap"
)

// Container bundles the assembled services the CLI works with.
type Container struct {
	Config    *config.Config
	Logger    *zap.Logger
	Analyzer  *Analyzer
	State     *state.Store
	Formatter *adapter.ResponseFormatter

	closers []func()
}

// Close releases everything Build opened, in reverse order.
func (c *Container) Close() {
	if c == nil {
		return
	}
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}

// Build assembles the cache, state store, analysis client and analyzer.
// Redis is used when enabled in the config, an in-process store otherwise.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (container *Container, err error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var closers []func()
	defer func() {
		if err != nil {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		}
	}()

	var kv cache.KeyValueStore
	if cfg.Redis.Enabled {
		cacheSvc, err := cache.NewCacheService(ctx, cache.CacheConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, logger)
		if err != nil {
			return nil, errors.NewServiceError("failed to create cache service", "container", "build", err)
		}
		kv = cacheSvc
	} else {
		logger.Info("Redis disabled, using in-memory cache")
		kv = cache.NewMemoryStore(logger)
	}
	closers = append(closers, func() {
		_ = kv.Close()
	})

	store := state.NewStore(kv, logger)
	if _, err := store.Restore(ctx); err != nil {
		logger.Warn("Failed to restore analysis state", zap.Error(err))
	}

	breaker := util.NewCircuitBreaker("analysis-api",
		constants.CircuitBreakerConfig.FailureThreshold,
		constants.CircuitBreakerConfig.ResetTimeout,
		logger,
	)
	client := analysis.NewClient(&http.Client{Timeout: cfg.API.Timeout}, analysis.ClientConfig{
		BaseURL:     cfg.API.BaseURL,
		MaxAttempts: cfg.API.MaxRetries,
	}, breaker, logger)

	analyzer := NewAnalyzer(client, kv, store, AnalyzerConfig{
		SentimentTTL: cfg.Cache.TTL,
		ReportTTL:    cfg.Cache.TTL,
		Concurrency:  cfg.Batch.Concurrency,
	}, logger)

	logger.Info("Application services assembled",
		zap.String("api_base_url", cfg.API.BaseURL),
		zap.Bool("redis", cfg.Redis.Enabled),
		zap.Int("batch_concurrency", cfg.Batch.Concurrency),
	)

	return &Container{
		Config:    cfg,
		Logger:    logger,
		Analyzer:  analyzer,
		State:     store,
		Formatter: adapter.NewResponseFormatter(),
		closers:   closers,
	}, nil
}
