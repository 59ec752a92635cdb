// Package dex implements the catalog orchestrator: it turns a user query into
// resolved bilingual records with image chains, backed by the catalog API,
// the reference index and the cache layer.
package dex

//go:generate mockgen -destination=mock/mock_service.go -package=dexmock github.com/KirkDiggler/dex-api/internal/orchestrators/dex Service

import (
	"context"
	"log/slog"
	"time"

	"github.com/KirkDiggler/dex-api/internal/cache"
	"github.com/KirkDiggler/dex-api/internal/clients/pokeapi"
	"github.com/KirkDiggler/dex-api/internal/entities/catalog"
	"github.com/KirkDiggler/dex-api/internal/errors"
	"github.com/KirkDiggler/dex-api/internal/fuzzy"
	"github.com/KirkDiggler/dex-api/internal/pkg/idgen"
	"github.com/KirkDiggler/dex-api/internal/refindex"
	"github.com/KirkDiggler/dex-api/internal/repositories/payload"
	"github.com/KirkDiggler/dex-api/internal/resolver"
	"github.com/KirkDiggler/dex-api/internal/sprites"
)

const (
	// DefaultMaxResults caps ResolveByQuery when MaxResults is not set
	DefaultMaxResults = 20

	// MaxSpeciesLookups bounds species fetches for a name query
	MaxSpeciesLookups = 15

	// MaxEvolutionExpansion is the largest name result set that still gets
	// evolution chains appended
	MaxEvolutionExpansion = 3

	// MinID and MaxID bound numeric identifiers
	MinID = 1
	MaxID = 1025
)

// Service defines the catalog operations offered to the presentation layer
type Service interface {
	// Query resolution
	ResolveByQuery(ctx context.Context, input *ResolveByQueryInput) (*ResolveByQueryOutput, error)
	Suggest(ctx context.Context, input *SuggestInput) (*SuggestOutput, error)
	NewRequestToken(ctx context.Context) (*NewRequestTokenOutput, error)

	// Records
	FetchPokemon(ctx context.Context, input *FetchPokemonInput) (*FetchPokemonOutput, error)
	FetchEvolutionChain(ctx context.Context, input *FetchEvolutionChainInput) (*FetchEvolutionChainOutput, error)
	SearchForms(ctx context.Context, input *SearchFormsInput) (*SearchFormsOutput, error)

	// Images
	ImagesFor(ctx context.Context, input *ImagesForInput) (*ImagesForOutput, error)
	CheckImages(ctx context.Context, input *ImagesForInput) (*CheckImagesOutput, error)

	// ResetCaches drops every memoized record, search result and image chain
	ResetCaches(ctx context.Context) (*ResetCachesOutput, error)
}

// Config holds the dependencies for the dex orchestrator
type Config struct {
	Client   pokeapi.Client
	Index    *refindex.Index
	Resolver *resolver.Resolver
	Sprites  *sprites.Resolver
	Search   *fuzzy.Engine

	// Health probes image URLs (optional, defaults to a HEAD checker)
	Health *sprites.HealthChecker
	// Payload is the offline store consulted when the catalog API is
	// unavailable (optional)
	Payload    payload.Repository
	PayloadTTL time.Duration

	// Cache sizes (optional, default to cache.DefaultCapacity)
	APICacheSize    int
	SearchCacheSize int

	// IDGenerator issues request tokens (optional, defaults to UUIDs)
	IDGenerator idgen.Generator
	Logger      *slog.Logger
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Client == nil {
		vb.RequiredField("Client")
	}
	if c.Index == nil {
		vb.RequiredField("Index")
	}
	if c.Resolver == nil {
		vb.RequiredField("Resolver")
	}
	if c.Sprites == nil {
		vb.RequiredField("Sprites")
	}
	if c.Search == nil {
		vb.RequiredField("Search")
	}
	if c.APICacheSize < 0 {
		vb.Field("APICacheSize", "must not be negative")
	}
	if c.SearchCacheSize < 0 {
		vb.Field("SearchCacheSize", "must not be negative")
	}

	return vb.Build()
}

type orchestrator struct {
	client     pokeapi.Client
	index      *refindex.Index
	names      *resolver.Resolver
	sprites    *sprites.Resolver
	search     *fuzzy.Engine
	health     *sprites.HealthChecker
	payload    payload.Repository
	payloadTTL time.Duration
	tokens     *idgen.Latest
	logger     *slog.Logger

	records    *cache.Cache[*catalog.Pokemon]
	queries    *cache.Cache[[]*catalog.Pokemon]
	forms      *cache.Cache[[]*catalog.Pokemon]
	evolutions *cache.Cache[[]catalog.EvolutionStage]
}

// NewOrchestrator creates a new dex orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	gen := cfg.IDGenerator
	if gen == nil {
		gen = idgen.NewUUID("req")
	}
	health := cfg.Health
	if health == nil {
		health = sprites.NewHealthChecker(&sprites.HealthConfig{Logger: logger})
	}

	o := &orchestrator{
		client:     cfg.Client,
		index:      cfg.Index,
		names:      cfg.Resolver,
		sprites:    cfg.Sprites,
		search:     cfg.Search,
		health:     health,
		payload:    cfg.Payload,
		payloadTTL: cfg.PayloadTTL,
		tokens:     idgen.NewLatest(gen),
		logger:     logger,
	}

	var err error
	if o.records, err = newCache[*catalog.Pokemon]("records", cfg.APICacheSize, logger); err != nil {
		return nil, err
	}
	if o.queries, err = newCache[[]*catalog.Pokemon]("queries", cfg.SearchCacheSize, logger); err != nil {
		return nil, err
	}
	if o.forms, err = newCache[[]*catalog.Pokemon]("forms", cfg.APICacheSize, logger); err != nil {
		return nil, err
	}
	if o.evolutions, err = newCache[[]catalog.EvolutionStage]("evolutions", cfg.APICacheSize, logger); err != nil {
		return nil, err
	}

	return o, nil
}

func newCache[V any](name string, size int, logger *slog.Logger) (*cache.Cache[V], error) {
	c, err := cache.New[V](&cache.Config{Name: name, Capacity: size, Logger: logger})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create %s cache", name)
	}
	return c, nil
}

// NewRequestToken issues a token that supersedes every earlier one
func (o *orchestrator) NewRequestToken(_ context.Context) (*NewRequestTokenOutput, error) {
	return &NewRequestTokenOutput{RequestToken: o.tokens.Next()}, nil
}

// ResetCaches clears the record, query, form, evolution and sprite caches
func (o *orchestrator) ResetCaches(ctx context.Context) (*ResetCachesOutput, error) {
	cleared := o.records.Len() + o.queries.Len() + o.forms.Len() + o.evolutions.Len()

	o.records.Reset()
	o.queries.Reset()
	o.forms.Reset()
	o.evolutions.Reset()
	o.sprites.ClearCache()

	o.logger.InfoContext(ctx, "caches reset", "entries", cleared)
	return &ResetCachesOutput{Cleared: cleared}, nil
}

func clonePokemon(in []*catalog.Pokemon) []*catalog.Pokemon {
	out := make([]*catalog.Pokemon, 0, len(in))
	for _, p := range in {
		out = append(out, p.Clone())
	}
	return out
}
