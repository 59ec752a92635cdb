// Package idgen issues opaque identifiers. The resolution pipeline uses them
// as request tokens so callers can discard results of superseded queries.
package idgen

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=mock/mock.go -package=idgenmock github.com/KirkDiggler/dex-api/internal/pkg/idgen Generator

// Generator generates unique identifiers
type Generator interface {
	Generate() string
}

// SequentialGenerator generates sequential IDs for testing
type SequentialGenerator struct {
	prefix  string
	counter uint64
}

// NewSequential creates a new sequential generator
func NewSequential(prefix string) *SequentialGenerator {
	return &SequentialGenerator{prefix: prefix}
}

// Generate creates a new sequential ID
func (g *SequentialGenerator) Generate() string {
	n := atomic.AddUint64(&g.counter, 1)
	if g.prefix != "" {
		return fmt.Sprintf("%s_%d", g.prefix, n)
	}
	return fmt.Sprintf("%d", n)
}

// UUIDGenerator generates UUIDs with optional prefix
type UUIDGenerator struct {
	prefix string
}

// NewUUID creates a new UUID generator with optional prefix
func NewUUID(prefix string) *UUIDGenerator {
	return &UUIDGenerator{prefix: prefix}
}

// Generate creates a new UUID-based ID
func (g *UUIDGenerator) Generate() string {
	id := uuid.New().String()
	if g.prefix != "" {
		return fmt.Sprintf("%s_%s", g.prefix, id)
	}
	return id
}

// Latest tracks the most recently issued token so a caller racing several
// lookups can tell whether a result is still wanted.
type Latest struct {
	gen     Generator
	current atomic.Pointer[string]
}

// NewLatest wraps gen.
func NewLatest(gen Generator) *Latest {
	return &Latest{gen: gen}
}

// Next issues a token and makes it current.
func (l *Latest) Next() string {
	token := l.gen.Generate()
	l.current.Store(&token)
	return token
}

// IsCurrent reports whether token is the last one issued.
func (l *Latest) IsCurrent(token string) bool {
	cur := l.current.Load()
	return cur != nil && *cur == token
}
