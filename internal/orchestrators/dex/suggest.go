package dex

import (
	"context"
	"strings"

	"github.com/KirkDiggler/dex-api/internal/entities/catalog"
	"github.com/KirkDiggler/dex-api/internal/errors"
	"github.com/KirkDiggler/dex-api/internal/fuzzy"
)

// Suggest ranks reference names against a partial query. An empty query
// has no suggestions.
func (o *orchestrator) Suggest(_ context.Context, input *SuggestInput) (*SuggestOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.MaxCount < 0 {
		return nil, errors.InvalidArgumentf("max count must not be negative, got %d", input.MaxCount)
	}

	if input.Popular {
		terms := fuzzy.PopularTerms()
		if input.MaxCount > 0 && len(terms) > input.MaxCount {
			terms = terms[:input.MaxCount]
		}
		return &SuggestOutput{Suggestions: terms}, nil
	}

	query := strings.TrimSpace(input.Query)
	if query == "" {
		return &SuggestOutput{Suggestions: []catalog.Suggestion{}}, nil
	}

	suggestions := o.search.Suggest(query, o.index.SuggestCandidates(query), input.MaxCount)
	if suggestions == nil {
		suggestions = []catalog.Suggestion{}
	}
	return &SuggestOutput{Suggestions: suggestions}, nil
}

// ImagesFor returns the image chain for an entry. A missing name is filled
// from the reference index.
func (o *orchestrator) ImagesFor(_ context.Context, input *ImagesForInput) (*ImagesForOutput, error) {
	id, name, err := o.imageSubject(input)
	if err != nil {
		return nil, err
	}
	return &ImagesForOutput{Images: o.sprites.Resolve(id, name, input.Form)}, nil
}

// CheckImages resolves the image chain and probes every candidate URL.
func (o *orchestrator) CheckImages(ctx context.Context, input *ImagesForInput) (*CheckImagesOutput, error) {
	id, name, err := o.imageSubject(input)
	if err != nil {
		return nil, err
	}

	set := o.sprites.Resolve(id, name, input.Form)
	results, err := o.health.Check(ctx, set.Candidates)
	if err != nil {
		return nil, errors.Wrap(err, "image health check failed")
	}
	return &CheckImagesOutput{Images: set, Results: results}, nil
}

func (o *orchestrator) imageSubject(input *ImagesForInput) (int, string, error) {
	if input == nil {
		return 0, "", errors.InvalidArgument("input is required")
	}

	name := strings.TrimSpace(input.Name)
	if input.ID <= 0 && name == "" {
		return 0, "", errors.InvalidArgument("id or name is required")
	}
	if name == "" {
		pair, ok := o.index.LookupByID(input.ID)
		if !ok {
			return 0, "", errors.NotFoundf("no reference entry for id %d", input.ID)
		}
		name = pair.Canonical
	}
	return input.ID, name, nil
}
