// Package resolver maps a numeric id and an optional catalog API name onto
// the bilingual display name of the exact form being shown.
package resolver

import (
	"strings"

	"github.com/KirkDiggler/dex-api/internal/entities/catalog"
	"github.com/KirkDiggler/dex-api/internal/errors"
	"github.com/KirkDiggler/dex-api/internal/refindex"
)

// Config configures a Resolver
type Config struct {
	Index *refindex.Index
	// Rules overrides DefaultRules when non-nil.
	Rules []SpeciesRules
}

// Validate ensures all required fields are set
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Index == nil {
		vb.RequiredField("Index")
	}
	return vb.Build()
}

// Resolver is safe for concurrent use.
type Resolver struct {
	index *refindex.Index
	rules []SpeciesRules
}

// New creates a resolver over an index.
func New(cfg *Config) (*Resolver, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	rules := cfg.Rules
	if rules == nil {
		rules = DefaultRules
	}

	return &Resolver{index: cfg.Index, rules: rules}, nil
}

// Resolve returns the display name pair. It never fails: unresolvable
// input yields the external name or the unknown labels.
func (r *Resolver) Resolve(id int, externalName string) catalog.NamePair {
	return r.ResolveIdentity(id, externalName).Names()
}

// ResolveIdentity is Resolve plus the chosen entry's id and variant flag.
func (r *Resolver) ResolveIdentity(id int, externalName string) catalog.Identity {
	name := strings.TrimSpace(externalName)

	if name != "" {
		if e, ok := r.matchByName(id, name); ok {
			return r.identityFrom(id, e)
		}
	}

	if pair, ok := r.index.LookupByID(id); ok {
		return catalog.Identity{ID: id, NameLocal: pair.Local, NameCanonical: pair.Canonical}
	}

	if entries := r.index.AllEntriesForID(id); len(entries) > 0 {
		return r.identityFrom(id, entries[0])
	}

	unknown := catalog.Identity{ID: id, NameLocal: catalog.UnknownLocal, NameCanonical: catalog.UnknownCanonical}
	if name != "" {
		unknown.NameLocal = name
		unknown.NameCanonical = name
	}
	return unknown
}

func (r *Resolver) matchByName(id int, name string) (catalog.Entry, bool) {
	if e, ok := r.index.FindCanonical(name); ok {
		return e, true
	}

	if converted := ConvertSlug(name); !strings.EqualFold(converted, name) {
		if e, ok := r.index.FindCanonical(converted); ok {
			return e, true
		}
	}

	if id <= 0 {
		return catalog.Entry{}, false
	}
	candidates := r.index.AllEntriesForID(id)
	if len(candidates) < 2 {
		return catalog.Entry{}, false
	}
	return disambiguate(r.rules, name, candidates)
}

// identityFrom fills a missing half of the pair from the base form of the
// same id.
func (r *Resolver) identityFrom(id int, e catalog.Entry) catalog.Identity {
	out := catalog.Identity{
		ID:            e.ID,
		NameLocal:     e.Local(),
		NameCanonical: e.NameCanonical,
		IsVariant:     e.IsVariant,
	}
	if out.ID == 0 {
		out.ID = id
	}

	if out.NameLocal == "" || out.NameCanonical == "" {
		base, ok := r.index.LookupByID(out.ID)
		if out.NameLocal == "" {
			out.NameLocal = catalog.UnknownLocal
			if ok {
				out.NameLocal = base.Local
			}
		}
		if out.NameCanonical == "" {
			out.NameCanonical = catalog.UnknownCanonical
			if ok {
				out.NameCanonical = base.Canonical
			}
		}
	}
	return out
}
