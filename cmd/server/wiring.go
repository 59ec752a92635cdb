package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/KirkDiggler/dex-api/internal/cache"
	"github.com/KirkDiggler/dex-api/internal/clients/pokeapi"
	"github.com/KirkDiggler/dex-api/internal/config"
	"github.com/KirkDiggler/dex-api/internal/entities/catalog"
	"github.com/KirkDiggler/dex-api/internal/fuzzy"
	"github.com/KirkDiggler/dex-api/internal/logger"
	"github.com/KirkDiggler/dex-api/internal/orchestrators/dex"
	"github.com/KirkDiggler/dex-api/internal/redis"
	"github.com/KirkDiggler/dex-api/internal/refindex"
	"github.com/KirkDiggler/dex-api/internal/repositories/payload"
	"github.com/KirkDiggler/dex-api/internal/resolver"
	"github.com/KirkDiggler/dex-api/internal/sprites"
)

const redisConnectTimeout = 5 * time.Second

// app is the wired process: config, logger and the catalog service.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	client  pokeapi.Client
	service dex.Service
	redis   redis.Client
}

func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.NewWithOptions(logger.Options{
		Prefix:    "dex",
		Level:     cfg.Log.Level,
		Format:    logger.Format(cfg.Log.Format),
		Timestamp: true,
	})
	slog.SetDefault(log)
	return cfg, log, nil
}

func newApp(ctx context.Context) (*app, error) {
	cfg, log, err := loadConfig()
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, logger: log}

	a.client, err = pokeapi.New(&pokeapi.Config{
		BaseURL:     cfg.Catalog.BaseURL,
		HTTPTimeout: cfg.Catalog.HTTPTimeout,
		RateLimit:   cfg.Catalog.RateLimit,
		Burst:       cfg.Catalog.Burst,
		Logger:      log,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog client: %w", err)
	}

	index := refindex.NewLoader(&refindex.LoaderConfig{Logger: log}).Load(ctx)

	names, err := resolver.New(&resolver.Config{Index: index})
	if err != nil {
		return nil, fmt.Errorf("failed to create name resolver: %w", err)
	}

	spriteCache, err := cache.New[catalog.ImageSet](&cache.Config{
		Name:     "sprites",
		Capacity: cfg.Cache.SpriteSize,
		Logger:   log,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create sprite cache: %w", err)
	}
	spriteResolver := sprites.New(&sprites.Config{
		Categories: index.Category,
		Cache:      spriteCache,
		Logger:     log,
	})

	search, err := fuzzy.NewEngine(&fuzzy.Config{
		Threshold:        cfg.Search.Threshold,
		EarlyStopFactor:  cfg.Search.EarlyStopFactor,
		NearPerfectScore: cfg.Search.NearPerfectScore,
		MaxSuggestions:   cfg.Search.MaxSuggestions,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create search engine: %w", err)
	}

	store, err := a.payloadRepository(ctx)
	if err != nil {
		return nil, err
	}

	a.service, err = dex.NewOrchestrator(&dex.Config{
		Client:          a.client,
		Index:           index,
		Resolver:        names,
		Sprites:         spriteResolver,
		Search:          search,
		Payload:         store,
		PayloadTTL:      cfg.Payload.TTL,
		APICacheSize:    cfg.Cache.APISize,
		SearchCacheSize: cfg.Cache.SearchSize,
		Logger:          log,
	})
	if err != nil {
		a.close()
		return nil, fmt.Errorf("failed to create dex orchestrator: %w", err)
	}

	log.Info("catalog service ready",
		"entries", index.Len(),
		"dataset_version", index.Version(),
		"payload_redis", cfg.Payload.RedisEndpoint != "")
	return a, nil
}

// payloadRepository uses Redis when an endpoint is configured and an
// in-memory store otherwise.
func (a *app) payloadRepository(ctx context.Context) (payload.Repository, error) {
	endpoint := a.cfg.Payload.RedisEndpoint
	if endpoint == "" {
		return payload.NewInMemory(nil), nil
	}

	client, err := redis.Connect(ctx, endpoint, redisConnectTimeout, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", endpoint, err)
	}
	a.redis = client

	repo, err := payload.NewRedis(&payload.Config{Client: client, KeyPrefix: a.cfg.Payload.KeyPrefix})
	if err != nil {
		a.close()
		return nil, fmt.Errorf("failed to create payload repository: %w", err)
	}
	return repo, nil
}

func (a *app) close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("failed to close redis client", "error", err)
		}
		a.redis = nil
	}
}
