package dex

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/KirkDiggler/dex-api/internal/cache"
	"github.com/KirkDiggler/dex-api/internal/clients/pokeapi"
	"github.com/KirkDiggler/dex-api/internal/entities/catalog"
	"github.com/KirkDiggler/dex-api/internal/errors"
	"github.com/KirkDiggler/dex-api/internal/sprites"
)

var (
	digitsPattern = regexp.MustCompile(`^\d+$`)
	namePattern   = regexp.MustCompile(`^[a-zA-Z\s\-.']+$`)
)

// ValidateIdentifier accepts an id within [MinID, MaxID] or a Latin name of
// letters, spaces, hyphens, dots and apostrophes.
func ValidateIdentifier(idOrName string) error {
	s := strings.TrimSpace(idOrName)
	if s == "" {
		return errors.InvalidArgument("identifier is required")
	}
	if digitsPattern.MatchString(s) {
		id, err := strconv.Atoi(s)
		if err != nil || id < MinID || id > MaxID {
			return errors.InvalidArgumentf("id %s is outside %d..%d", s, MinID, MaxID)
		}
		return nil
	}
	if !namePattern.MatchString(s) {
		return errors.InvalidArgumentf("invalid identifier %q", s)
	}
	return nil
}

// FetchPokemon returns one resolved record. Invalid identifiers are
// rejected; upstream failures produce a degraded record.
func (o *orchestrator) FetchPokemon(ctx context.Context, input *FetchPokemonInput) (*FetchPokemonOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := ValidateIdentifier(input.IDOrName); err != nil {
		return nil, err
	}

	p, err := o.fetchRecord(ctx, input.IDOrName)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.WrapWithCode(ctx.Err(), errors.CodeCanceled, "fetch canceled")
		}
		o.logger.WarnContext(ctx, "record fetch failed",
			"identifier", input.IDOrName,
			"error", err)
		return &FetchPokemonOutput{Pokemon: o.degraded(input.IDOrName, err)}, nil
	}
	return &FetchPokemonOutput{Pokemon: p}, nil
}

// fetchRecord returns a private copy of the memoized record for idOrName.
func (o *orchestrator) fetchRecord(ctx context.Context, idOrName string) (*catalog.Pokemon, error) {
	key := strings.ToLower(strings.TrimSpace(idOrName))
	if err := ValidateIdentifier(key); err != nil {
		return nil, err
	}

	p, err := o.records.GetOrCompute(ctx, cache.Key("pokemon", key), func(ctx context.Context) (*catalog.Pokemon, error) {
		resp, err := o.client.GetPokemon(ctx, key)
		if err != nil {
			return nil, err
		}
		return o.toPokemon(resp), nil
	})
	if err != nil {
		return nil, err
	}
	return p.Clone(), nil
}

func (o *orchestrator) toPokemon(resp *pokeapi.PokemonResponse) *catalog.Pokemon {
	identity := o.names.ResolveIdentity(resp.ID, resp.Name)

	types := make([]catalog.TypeTag, 0, len(resp.Types))
	for _, t := range resp.Types {
		types = append(types, catalog.TypeTag{Name: t.Type.Name, Local: catalog.TypeLabel(t.Type.Name)})
	}
	stats := make([]catalog.Stat, 0, len(resp.Stats))
	for _, s := range resp.Stats {
		stats = append(stats, catalog.Stat{Name: s.Stat.Name, Value: s.BaseStat})
	}

	return &catalog.Pokemon{
		ID:              resp.ID,
		Slug:            resp.Name,
		Names:           identity.Names(),
		Images:          o.sprites.Resolve(resp.ID, identity.NameCanonical, ""),
		OfficialArtwork: resp.ArtworkURL(),
		ShinyImage:      resp.ShinyURL(),
		Types:           types,
		Height:          resp.Height,
		Weight:          resp.Weight,
		Stats:           stats,
		IsVariant:       identity.IsVariant,
	}
}

// rebase re-resolves a form record under its species id so that names and
// curated sprites come from the species entry rather than the form id.
func (o *orchestrator) rebase(p *catalog.Pokemon, speciesID int, isDefault bool) *catalog.Pokemon {
	identity := o.names.ResolveIdentity(speciesID, p.Slug)
	p.ID = speciesID
	p.Names = identity.Names()
	p.IsVariant = !isDefault
	p.Images = o.sprites.Resolve(speciesID, identity.NameCanonical, "")
	return p
}

// degraded builds the record shown when the catalog API could not be read.
func (o *orchestrator) degraded(idOrName string, cause error) *catalog.Pokemon {
	ident := strings.TrimSpace(idOrName)
	id, _ := strconv.Atoi(ident)

	names := catalog.NamePair{
		Local:     fmt.Sprintf("%s (%s)", catalog.UnknownLocal, ident),
		Canonical: ident,
	}
	if id > 0 {
		if pair, ok := o.index.LookupByID(id); ok {
			names = pair
		}
	} else if e, ok := o.index.FindCanonical(ident); ok {
		names = catalog.NamePair{Local: e.Local(), Canonical: e.NameCanonical}
	}

	return &catalog.Pokemon{
		ID:           id,
		Slug:         strings.ToLower(ident),
		Names:        names,
		Images:       errorImages(),
		Types:        []catalog.TypeTag{},
		Stats:        []catalog.Stat{},
		Error:        true,
		ErrorMessage: fmt.Sprintf("%s: %v", catalog.DataUnavailableLabel, cause),
	}
}

func errorImages() catalog.ImageSet {
	return catalog.ImageSet{
		Primary:      sprites.SearchErrorPlaceholder,
		Fallback:     sprites.SearchErrorPlaceholder,
		Alternatives: []string{},
		Placeholder:  sprites.SearchErrorPlaceholder,
	}
}
