package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/dex-api/internal/errors"
)

type ConfigTestSuite struct {
	suite.Suite
}

func (s *ConfigTestSuite) TestDefaults() {
	cfg, err := Load("")
	s.Require().NoError(err)
	s.Equal(Default(), cfg)
}

func (s *ConfigTestSuite) TestEnvironmentOverrides() {
	s.T().Setenv("DEX_CATALOG_BASE_URL", "http://localhost:9000/api")
	s.T().Setenv("DEX_CACHE_API_SIZE", "7")
	s.T().Setenv("DEX_SERVER_PROBE_INTERVAL", "5s")
	s.T().Setenv("DEX_SEARCH_THRESHOLD", "0.55")

	cfg, err := Load("")
	s.Require().NoError(err)
	s.Equal("http://localhost:9000/api", cfg.Catalog.BaseURL)
	s.Equal(7, cfg.Cache.APISize)
	s.Equal(5*time.Second, cfg.Server.ProbeInterval)
	s.InDelta(0.55, cfg.Search.Threshold, 1e-9)
}

func (s *ConfigTestSuite) TestFile() {
	path := filepath.Join(s.T().TempDir(), "dex.yaml")
	body := []byte(`
catalog:
  rate_limit: 5
payload:
  redis_endpoint: localhost:6379
log:
  level: debug
  format: json
`)
	s.Require().NoError(os.WriteFile(path, body, 0o600))

	cfg, err := Load(path)
	s.Require().NoError(err)
	s.InDelta(5.0, cfg.Catalog.RateLimit, 1e-9)
	s.Equal("localhost:6379", cfg.Payload.RedisEndpoint)
	s.Equal("debug", cfg.Log.Level)
	s.Equal("json", cfg.Log.Format)
	s.Equal(8080, cfg.Server.HTTPPort)
}

func (s *ConfigTestSuite) TestMissingFile() {
	_, err := Load(filepath.Join(s.T().TempDir(), "absent.yaml"))
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *ConfigTestSuite) TestValidate() {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"empty base url", func(c *Config) { c.Catalog.BaseURL = "" }, "catalog.base_url"},
		{"zero burst", func(c *Config) { c.Catalog.Burst = 0 }, "catalog.burst"},
		{"negative cache", func(c *Config) { c.Cache.SpriteSize = -1 }, "cache.sprite_size"},
		{"threshold above one", func(c *Config) { c.Search.Threshold = 1.5 }, "search.threshold"},
		{"bad port", func(c *Config) { c.Server.GRPCPort = 70000 }, "server.grpc_port"},
		{"zero probe timeout", func(c *Config) { c.Server.ProbeTimeout = 0 }, "server.probe_timeout"},
		{"unknown log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			s.Require().Error(err)
			s.True(errors.IsInvalidArgument(err))
			s.Contains(err.Error(), tt.field)
		})
	}

	s.Run("defaults are valid", func() {
		s.NoError(Default().Validate())
	})
}

func TestConfigTestSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}
