package dex

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/dex-api/internal/cache"
	"github.com/KirkDiggler/dex-api/internal/clients/pokeapi"
	"github.com/KirkDiggler/dex-api/internal/entities/catalog"
	"github.com/KirkDiggler/dex-api/internal/errors"
)

var trailingIDPattern = regexp.MustCompile(`/(\d+)/$`)

// FetchEvolutionChain returns the species' chain with a record for every
// stage. Stages whose record could not be fetched carry a degraded record.
// An unreadable chain yields no stages.
func (o *orchestrator) FetchEvolutionChain(ctx context.Context, input *FetchEvolutionChainInput) (*FetchEvolutionChainOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.ID < MinID || input.ID > MaxID {
		return nil, errors.InvalidArgumentf("id %d is outside %d..%d", input.ID, MinID, MaxID)
	}

	stages, err := o.completeChain(ctx, input.ID)
	if err != nil {
		o.logger.WarnContext(ctx, "evolution chain unavailable", "id", input.ID, "error", err)
		return &FetchEvolutionChainOutput{Stages: []catalog.EvolutionStage{}}, nil
	}
	return &FetchEvolutionChainOutput{Stages: stages}, nil
}

// chain fetches and flattens the chain for a species, memoized per id.
func (o *orchestrator) chain(ctx context.Context, id int) ([]catalog.EvolutionStage, error) {
	return o.evolutions.GetOrCompute(ctx, cache.Key("evolution", id), func(ctx context.Context) ([]catalog.EvolutionStage, error) {
		species, err := o.client.GetSpecies(ctx, id)
		if err != nil {
			return nil, err
		}
		if species.EvolutionChain.URL == "" {
			return nil, errors.NotFoundf("species %d has no evolution chain", id)
		}

		resp, err := o.client.GetEvolutionChain(ctx, species.EvolutionChain.URL)
		if err != nil {
			return nil, err
		}
		return FlattenChain(&resp.Chain), nil
	})
}

// completeChain is chain with each stage's record attached.
func (o *orchestrator) completeChain(ctx context.Context, id int) ([]catalog.EvolutionStage, error) {
	base, err := o.chain(ctx, id)
	if err != nil {
		return nil, err
	}

	stages := make([]catalog.EvolutionStage, len(base))
	copy(stages, base)

	g, gctx := errgroup.WithContext(ctx)
	for i := range stages {
		g.Go(func() error {
			stage := &stages[i]
			p, err := o.fetchRecord(gctx, strconv.Itoa(stage.ID))
			if err != nil {
				p = o.degraded(strconv.Itoa(stage.ID), err)
				p.Names = catalog.NamePair{
					Local:     fmt.Sprintf("%s %d", catalog.UnknownLocal, stage.ID),
					Canonical: stage.Slug,
				}
			}
			stage.Pokemon = p
			return nil
		})
	}
	_ = g.Wait()

	return stages, nil
}

// FlattenChain walks a chain depth first and returns one stage per link,
// numbering stages from 0 at the root.
func FlattenChain(root *pokeapi.ChainLink) []catalog.EvolutionStage {
	var out []catalog.EvolutionStage

	var walk func(link *pokeapi.ChainLink, depth int)
	walk = func(link *pokeapi.ChainLink, depth int) {
		stage := catalog.EvolutionStage{
			ID:    IDFromURL(link.Species.URL),
			Slug:  link.Species.Name,
			Stage: depth,
		}
		if len(link.EvolutionDetails) > 0 {
			d := link.EvolutionDetails[0]
			if d.Trigger != nil {
				stage.Trigger = d.Trigger.Name
			}
			if d.MinLevel != nil {
				stage.MinLevel = *d.MinLevel
			}
			if d.Item != nil {
				stage.Item = d.Item.Name
			} else if d.HeldItem != nil {
				stage.Item = d.HeldItem.Name
			}
			if d.MinHappiness != nil {
				stage.MinHappiness = *d.MinHappiness
			}
			stage.TimeOfDay = d.TimeOfDay
		}
		out = append(out, stage)

		for i := range link.EvolvesTo {
			walk(&link.EvolvesTo[i], depth+1)
		}
	}
	walk(root, 0)

	return out
}

// IDFromURL extracts the trailing numeric segment of a resource URL, or 0.
func IDFromURL(url string) int {
	m := trailingIDPattern.FindStringSubmatch(url)
	if m == nil {
		return 0
	}
	id, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return id
}
