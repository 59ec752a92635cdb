package dex

import (
	"context"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/dex-api/internal/cache"
	"github.com/KirkDiggler/dex-api/internal/entities/catalog"
	"github.com/KirkDiggler/dex-api/internal/errors"
)

// SearchForms lists the evolution chain members of a species followed by
// its varieties. Mega and Gigantamax varieties lead with official artwork.
func (o *orchestrator) SearchForms(ctx context.Context, input *SearchFormsInput) (*SearchFormsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.ID < MinID || input.ID > MaxID {
		return nil, errors.InvalidArgumentf("id %d is outside %d..%d", input.ID, MinID, MaxID)
	}

	results, err := o.forms.GetOrCompute(ctx, cache.Key("forms", input.ID), func(ctx context.Context) ([]*catalog.Pokemon, error) {
		return o.searchForms(ctx, input.ID)
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.WrapWithCode(ctx.Err(), errors.CodeCanceled, "form search canceled")
		}
		o.logger.WarnContext(ctx, "form search failed upstream", "id", input.ID, "error", err)

		base, err := o.fetchRecord(ctx, strconv.Itoa(input.ID))
		if err != nil {
			return &SearchFormsOutput{Results: []*catalog.Pokemon{}}, nil
		}
		return &SearchFormsOutput{Results: []*catalog.Pokemon{base}}, nil
	}

	return &SearchFormsOutput{Results: clonePokemon(results)}, nil
}

func (o *orchestrator) searchForms(ctx context.Context, id int) ([]*catalog.Pokemon, error) {
	results := []*catalog.Pokemon{}
	seenID := make(map[int]struct{})

	stages, chainErr := o.completeChain(ctx, id)
	for _, s := range stages {
		if s.Pokemon == nil || s.Pokemon.Error {
			continue
		}
		if _, ok := seenID[s.Pokemon.ID]; ok {
			continue
		}
		seenID[s.Pokemon.ID] = struct{}{}
		results = append(results, s.Pokemon)
	}

	species, speciesErr := o.client.GetSpecies(ctx, id)
	if speciesErr != nil {
		if len(results) == 0 && chainErr != nil && !errors.IsNotFound(speciesErr) {
			return nil, speciesErr
		}
		return results, nil
	}

	variants := make([]*catalog.Pokemon, len(species.Varieties))
	g, gctx := errgroup.WithContext(ctx)
	for i, v := range species.Varieties {
		g.Go(func() error {
			p, err := o.fetchRecord(gctx, v.Pokemon.Name)
			if err != nil {
				return nil
			}
			p = o.rebase(p, id, v.IsDefault)
			if isMegaOrGmax(v.Pokemon.Name) && p.OfficialArtwork != "" {
				p.Images.Fallback = p.Images.Primary
				p.Images.Primary = p.OfficialArtwork
			}
			variants[i] = p
			return nil
		})
	}
	_ = g.Wait()

	for _, p := range variants {
		if p == nil {
			continue
		}
		if containsForm(results, p) {
			continue
		}
		results = append(results, p)
	}
	return results, nil
}

func isMegaOrGmax(slug string) bool {
	return strings.Contains(slug, "-mega") || strings.Contains(slug, "-gmax")
}

func containsForm(results []*catalog.Pokemon, p *catalog.Pokemon) bool {
	for _, r := range results {
		if r.ID == p.ID && r.Names.Canonical == p.Names.Canonical {
			return true
		}
	}
	return false
}
