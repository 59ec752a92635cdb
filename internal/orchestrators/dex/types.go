package dex

import (
	"github.com/KirkDiggler/dex-api/internal/entities/catalog"
	"github.com/KirkDiggler/dex-api/internal/sprites"
)

// ResolveByQueryInput contains parameters for a catalog query
type ResolveByQueryInput struct {
	// Query is an id, a zh-TW or English name fragment, or a slug
	Query string
	// IncludeEvolutions appends evolution chain members to small result sets
	IncludeEvolutions bool
	// MaxResults caps the result list (defaults to DefaultMaxResults)
	MaxResults int
	// RequestToken from NewRequestToken; used to flag superseded results
	RequestToken string
}

// ResolveByQueryOutput contains the resolved records
type ResolveByQueryOutput struct {
	Results      []*catalog.Pokemon
	RequestToken string
	// Stale is set when a newer token was issued while this query ran
	Stale bool
	// Offline is set when results came from the payload store
	Offline bool
}

// SuggestInput contains parameters for autocomplete
type SuggestInput struct {
	Query    string
	MaxCount int
	// Popular returns the curated popular terms and ignores Query
	Popular bool
}

// SuggestOutput contains ranked suggestions
type SuggestOutput struct {
	Suggestions []catalog.Suggestion
}

// ImagesForInput selects an entry whose image chain is wanted
type ImagesForInput struct {
	ID   int
	Name string
	Form string
}

// ImagesForOutput contains the image chain
type ImagesForOutput struct {
	Images catalog.ImageSet
}

// CheckImagesOutput contains one probe result per candidate URL
type CheckImagesOutput struct {
	Images  catalog.ImageSet
	Results []sprites.HealthResult
}

// ResetCachesOutput reports how many entries were dropped
type ResetCachesOutput struct {
	Cleared int
}

// FetchPokemonInput names one record
type FetchPokemonInput struct {
	IDOrName string
}

// FetchPokemonOutput contains the record. Upstream failures yield a
// degraded record rather than an error.
type FetchPokemonOutput struct {
	Pokemon *catalog.Pokemon
}

// FetchEvolutionChainInput selects a species
type FetchEvolutionChainInput struct {
	ID int
}

// FetchEvolutionChainOutput contains the flattened chain in stage order
type FetchEvolutionChainOutput struct {
	Stages []catalog.EvolutionStage
}

// SearchFormsInput selects a species
type SearchFormsInput struct {
	ID int
}

// SearchFormsOutput contains evolution members followed by species varieties
type SearchFormsOutput struct {
	Results []*catalog.Pokemon
}

// NewRequestTokenOutput contains a fresh request token
type NewRequestTokenOutput struct {
	RequestToken string
}
