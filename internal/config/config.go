// Package config loads process settings from defaults, an optional file and
// DEX_ environment variables.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/KirkDiggler/dex-api/internal/errors"
)

// EnvPrefix is prepended to every environment override, e.g. DEX_CATALOG_BASE_URL
const EnvPrefix = "DEX"

// Config is the full process configuration
type Config struct {
	Catalog CatalogConfig `mapstructure:"catalog"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Search  SearchConfig  `mapstructure:"search"`
	Payload PayloadConfig `mapstructure:"payload"`
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
}

// CatalogConfig configures the upstream catalog client
type CatalogConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
	RateLimit   float64       `mapstructure:"rate_limit"`
	Burst       int           `mapstructure:"burst"`
}

// CacheConfig sizes the LRU stores
type CacheConfig struct {
	APISize    int `mapstructure:"api_size"`
	SpriteSize int `mapstructure:"sprite_size"`
	SearchSize int `mapstructure:"search_size"`
}

// SearchConfig tunes suggestion ranking
type SearchConfig struct {
	Threshold        float64 `mapstructure:"threshold"`
	EarlyStopFactor  int     `mapstructure:"early_stop_factor"`
	NearPerfectScore float64 `mapstructure:"near_perfect_score"`
	MaxSuggestions   int     `mapstructure:"max_suggestions"`
}

// PayloadConfig configures the offline payload store. An empty
// RedisEndpoint keeps snapshots in memory.
type PayloadConfig struct {
	RedisEndpoint string        `mapstructure:"redis_endpoint"`
	KeyPrefix     string        `mapstructure:"key"`
	TTL           time.Duration `mapstructure:"ttl"`
}

// ServerConfig configures the listeners and the upstream probe
type ServerConfig struct {
	HTTPPort      int           `mapstructure:"http_port"`
	GRPCPort      int           `mapstructure:"grpc_port"`
	ProbeInterval time.Duration `mapstructure:"probe_interval"`
	ProbeTimeout  time.Duration `mapstructure:"probe_timeout"`
}

// LogConfig configures the process logger
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Catalog: CatalogConfig{
			BaseURL:     "https://pokeapi.co/api/v2",
			HTTPTimeout: 10 * time.Second,
			RateLimit:   20,
			Burst:       10,
		},
		Cache: CacheConfig{
			APISize:    100,
			SpriteSize: 100,
			SearchSize: 100,
		},
		Search: SearchConfig{
			Threshold:        0.4,
			EarlyStopFactor:  2,
			NearPerfectScore: 0.9,
			MaxSuggestions:   5,
		},
		Payload: PayloadConfig{
			KeyPrefix: "dex:payload",
			TTL:       24 * time.Hour,
		},
		Server: ServerConfig{
			HTTPPort:      8080,
			GRPCPort:      50051,
			ProbeInterval: 30 * time.Second,
			ProbeTimeout:  3 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads configuration. path may be empty, in which case only defaults
// and the environment apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.WrapWithCodef(err, errors.CodeInvalidArgument, "failed to read config file %s", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("catalog.base_url", d.Catalog.BaseURL)
	v.SetDefault("catalog.http_timeout", d.Catalog.HTTPTimeout)
	v.SetDefault("catalog.rate_limit", d.Catalog.RateLimit)
	v.SetDefault("catalog.burst", d.Catalog.Burst)
	v.SetDefault("cache.api_size", d.Cache.APISize)
	v.SetDefault("cache.sprite_size", d.Cache.SpriteSize)
	v.SetDefault("cache.search_size", d.Cache.SearchSize)
	v.SetDefault("search.threshold", d.Search.Threshold)
	v.SetDefault("search.early_stop_factor", d.Search.EarlyStopFactor)
	v.SetDefault("search.near_perfect_score", d.Search.NearPerfectScore)
	v.SetDefault("search.max_suggestions", d.Search.MaxSuggestions)
	v.SetDefault("payload.redis_endpoint", d.Payload.RedisEndpoint)
	v.SetDefault("payload.key", d.Payload.KeyPrefix)
	v.SetDefault("payload.ttl", d.Payload.TTL)
	v.SetDefault("server.http_port", d.Server.HTTPPort)
	v.SetDefault("server.grpc_port", d.Server.GRPCPort)
	v.SetDefault("server.probe_interval", d.Server.ProbeInterval)
	v.SetDefault("server.probe_timeout", d.Server.ProbeTimeout)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// Validate checks value ranges
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("catalog.base_url", c.Catalog.BaseURL, vb)
	if c.Catalog.HTTPTimeout <= 0 {
		vb.Field("catalog.http_timeout", "must be positive")
	}
	if c.Catalog.RateLimit <= 0 {
		vb.Fieldf("catalog.rate_limit", "must be positive, got %v", c.Catalog.RateLimit)
	}
	errors.ValidatePositive("catalog.burst", c.Catalog.Burst, vb)

	errors.ValidatePositive("cache.api_size", c.Cache.APISize, vb)
	errors.ValidatePositive("cache.sprite_size", c.Cache.SpriteSize, vb)
	errors.ValidatePositive("cache.search_size", c.Cache.SearchSize, vb)

	errors.ValidateUnitInterval("search.threshold", c.Search.Threshold, vb)
	errors.ValidateUnitInterval("search.near_perfect_score", c.Search.NearPerfectScore, vb)
	errors.ValidatePositive("search.max_suggestions", c.Search.MaxSuggestions, vb)

	if c.Payload.TTL < 0 {
		vb.Field("payload.ttl", "must not be negative")
	}

	validatePort("server.http_port", c.Server.HTTPPort, vb)
	validatePort("server.grpc_port", c.Server.GRPCPort, vb)
	if c.Server.ProbeInterval <= 0 {
		vb.Field("server.probe_interval", "must be positive")
	}
	if c.Server.ProbeTimeout <= 0 {
		vb.Field("server.probe_timeout", "must be positive")
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		vb.Fieldf("log.format", "must be text or json, got %q", c.Log.Format)
	}

	return vb.Build()
}

func validatePort(field string, port int, vb *errors.ValidationBuilder) {
	if port <= 0 || port > 65535 {
		vb.Fieldf(field, "must be a valid port, got %d", port)
	}
}
