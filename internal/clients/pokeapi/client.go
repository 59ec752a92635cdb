// Package pokeapi is the rate-limited client for the public catalog API
package pokeapi

//go:generate mockgen -destination=mock/mock_client.go -package=pokeapimock github.com/KirkDiggler/dex-api/internal/clients/pokeapi Client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/KirkDiggler/dex-api/internal/errors"
)

// Defaults applied by Config.Validate
const (
	DefaultBaseURL     = "https://pokeapi.co/api/v2"
	DefaultHTTPTimeout = 10 * time.Second
	DefaultRateLimit   = 20
	DefaultBurst       = 10
)

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 4 << 20

// Client defines the catalog API operations the resolution engine needs
type Client interface {
	// GetPokemon fetches a record by numeric id or slug
	GetPokemon(ctx context.Context, idOrSlug string) (*PokemonResponse, error)

	// GetSpecies fetches species data, including the list of varieties
	GetSpecies(ctx context.Context, id int) (*SpeciesResponse, error)

	// GetEvolutionChain fetches a chain by the absolute URL a species links to
	GetEvolutionChain(ctx context.Context, url string) (*EvolutionChainResponse, error)

	// Ping checks that the API answers at all
	Ping(ctx context.Context) error
}

// HTTPDoer is the subset of *http.Client the client needs
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config contains configuration options for the catalog client.
type Config struct {
	// BaseURL for the API (optional, defaults to https://pokeapi.co/api/v2)
	BaseURL string
	// HTTPTimeout for API requests (optional, defaults to 10 seconds)
	HTTPTimeout time.Duration
	// RateLimit in requests per second (optional, defaults to 20)
	RateLimit float64
	// Burst allowed above RateLimit (optional, defaults to 10)
	Burst int
	// HTTPClient overrides the transport (optional)
	HTTPClient HTTPDoer
	// Logger (optional, defaults to slog.Default)
	Logger *slog.Logger
}

// Validate validates the Config and sets defaults if not provided.
func (cfg *Config) Validate() error {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = DefaultHTTPTimeout
	}
	if cfg.RateLimit == 0 {
		cfg.RateLimit = DefaultRateLimit
	}
	if cfg.Burst == 0 {
		cfg.Burst = DefaultBurst
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	vb := errors.NewValidationBuilder()
	if !strings.HasPrefix(cfg.BaseURL, "http://") && !strings.HasPrefix(cfg.BaseURL, "https://") {
		vb.Fieldf("BaseURL", "must be an http(s) URL, got %q", cfg.BaseURL)
	}
	if cfg.HTTPTimeout < 0 {
		vb.Field("HTTPTimeout", "must not be negative")
	}
	if cfg.RateLimit < 0 {
		vb.Field("RateLimit", "must not be negative")
	}
	if cfg.Burst < 0 {
		vb.Field("Burst", "must not be negative")
	}
	return vb.Build()
}

type client struct {
	baseURL string
	http    HTTPDoer
	limiter *rate.Limiter
	logger  *slog.Logger
}

// New creates a new catalog client with the given configuration.
func New(cfg *Config) (Client, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.HTTPTimeout}
	}

	return &client{
		baseURL: cfg.BaseURL,
		http:    httpClient,
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.Burst),
		logger:  cfg.Logger,
	}, nil
}

func (c *client) GetPokemon(ctx context.Context, idOrSlug string) (*PokemonResponse, error) {
	key := strings.ToLower(strings.TrimSpace(idOrSlug))
	if key == "" {
		return nil, errors.InvalidArgument("pokemon identifier is required")
	}

	var out PokemonResponse
	if err := c.getJSON(ctx, c.baseURL+"/pokemon/"+key, "pokemon "+key, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *client) GetSpecies(ctx context.Context, id int) (*SpeciesResponse, error) {
	if id <= 0 {
		return nil, errors.InvalidArgumentf("species id must be positive, got %d", id)
	}

	var out SpeciesResponse
	resource := "species " + strconv.Itoa(id)
	if err := c.getJSON(ctx, fmt.Sprintf("%s/pokemon-species/%d", c.baseURL, id), resource, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *client) GetEvolutionChain(ctx context.Context, url string) (*EvolutionChainResponse, error) {
	if url == "" {
		return nil, errors.InvalidArgument("evolution chain url is required")
	}

	var out EvolutionChainResponse
	if err := c.getJSON(ctx, url, "evolution chain", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *client) Ping(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodHead, c.baseURL+"/pokemon/1")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return errors.Upstream(resp.StatusCode, "ping")
	}
	return nil
}

func (c *client) getJSON(ctx context.Context, url, resource string, dest any) error {
	resp, err := c.do(ctx, http.MethodGet, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return errors.WrapWithCodef(err, errors.CodeUnavailable, "failed to read %s", resource)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Debug("catalog request failed",
			"resource", resource,
			"status", resp.StatusCode)
		return errors.Upstream(resp.StatusCode, resource)
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return errors.WrapWithCodef(err, errors.CodeDataLoss, "malformed %s response", resource)
	}
	return nil
}

func (c *client) do(ctx context.Context, method, url string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeCanceled, "rate limiter wait")
	}

	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeInvalidArgument, "invalid request url %q", url)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.WrapWithCode(ctx.Err(), errors.CodeCanceled, "catalog request canceled")
		}
		return nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "catalog request to %s failed", url)
	}
	return resp, nil
}
