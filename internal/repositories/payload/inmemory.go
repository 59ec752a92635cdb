package payload

import (
	"context"
	"sync"
	"time"

	"github.com/KirkDiggler/dex-api/internal/errors"
	"github.com/KirkDiggler/dex-api/internal/pkg/clock"
)

type memoryEntry struct {
	snapshot  *Snapshot
	expiresAt time.Time
}

// InMemoryRepository implements Repository using process memory
type InMemoryRepository struct {
	mu    sync.RWMutex
	clock clock.Clock
	store map[string]memoryEntry
}

// NewInMemory creates a new in-memory repository. A nil clock uses wall time.
func NewInMemory(clk clock.Clock) *InMemoryRepository {
	if clk == nil {
		clk = clock.New()
	}
	return &InMemoryRepository{
		clock: clk,
		store: make(map[string]memoryEntry),
	}
}

// Ensure InMemoryRepository implements Repository
var _ Repository = (*InMemoryRepository)(nil)

// Store writes the snapshot under its query and as the latest payload
func (r *InMemoryRepository) Store(_ context.Context, input StoreInput) (*StoreOutput, error) {
	query := NormalizeQuery(input.Query)
	if query == "" {
		return nil, errors.InvalidArgument(errQueryEmpty)
	}

	now := r.clock.Now().UTC()
	snapshot := &Snapshot{
		Query:    query,
		Results:  cloneResults(input.Results),
		StoredAt: now,
	}

	entry := memoryEntry{snapshot: snapshot}
	if input.TTL > 0 {
		entry.expiresAt = now.Add(input.TTL)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.store[query] = entry
	r.store[""] = entry

	return &StoreOutput{Snapshot: cloneSnapshot(snapshot)}, nil
}

// Get returns a copy of the stored snapshot
func (r *InMemoryRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	query := NormalizeQuery(input.Query)

	r.mu.RLock()
	entry, ok := r.store[query]
	r.mu.RUnlock()

	if !ok || (!entry.expiresAt.IsZero() && r.clock.Now().After(entry.expiresAt)) {
		return nil, errors.NotFoundf("no snapshot stored for %q", query)
	}

	return &GetOutput{Snapshot: cloneSnapshot(entry.snapshot)}, nil
}

func cloneSnapshot(s *Snapshot) *Snapshot {
	c := *s
	c.Results = cloneResults(s.Results)
	return &c
}
