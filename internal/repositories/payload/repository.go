// Package payload stores the last successful catalog results so queries can
// still be answered while the upstream API is unavailable.
package payload

import (
	"context"
	"strings"
	"time"

	"github.com/KirkDiggler/dex-api/internal/entities/catalog"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=payloadmock github.com/KirkDiggler/dex-api/internal/repositories/payload Repository

// DefaultKeyPrefix namespaces every key the repository writes
const DefaultKeyPrefix = "dex:payload"

// latestSuffix names the key holding the most recent payload of any query
const latestSuffix = "latest"

// Snapshot is one stored result set
type Snapshot struct {
	// Query that produced the results, normalized
	Query string `msgpack:"query"`

	// Results as returned to the caller
	Results []*catalog.Pokemon `msgpack:"results"`

	// When the snapshot was written
	StoredAt time.Time `msgpack:"stored_at"`
}

// StoreInput contains parameters for storing a payload
type StoreInput struct {
	Query   string
	Results []*catalog.Pokemon
	TTL     time.Duration // Zero keeps the snapshot until overwritten
}

// StoreOutput contains the stored snapshot
type StoreOutput struct {
	Snapshot *Snapshot
}

// GetInput selects a snapshot. An empty Query returns the latest one.
type GetInput struct {
	Query string
}

// GetOutput contains the retrieved snapshot
type GetOutput struct {
	Snapshot *Snapshot
}

// Repository defines the interface for offline payload storage
type Repository interface {
	// Store writes the results under their query key and as the latest payload
	Store(ctx context.Context, input StoreInput) (*StoreOutput, error)

	// Get returns the snapshot for a query, or NotFound
	Get(ctx context.Context, input GetInput) (*GetOutput, error)
}

// NormalizeQuery folds case and surrounding space so equivalent queries
// share a key.
func NormalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

func queryKey(prefix, query string) string {
	if query == "" {
		return prefix + ":" + latestSuffix
	}
	return prefix + ":query:" + query
}

func cloneResults(in []*catalog.Pokemon) []*catalog.Pokemon {
	out := make([]*catalog.Pokemon, len(in))
	for i, p := range in {
		out[i] = p.Clone()
	}
	return out
}
