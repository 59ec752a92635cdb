package dex

import (
	"context"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/dex-api/internal/cache"
	"github.com/KirkDiggler/dex-api/internal/entities/catalog"
	"github.com/KirkDiggler/dex-api/internal/errors"
	"github.com/KirkDiggler/dex-api/internal/repositories/payload"
)

// formRequest is one record to fetch for a name query
type formRequest struct {
	speciesID int
	slug      string
	isDefault bool
}

// ResolveByQuery resolves a free-form query into records. It never fails on
// bad input or upstream trouble: those yield an empty list, or the stored
// payload for the same query when the catalog API is unavailable.
func (o *orchestrator) ResolveByQuery(ctx context.Context, input *ResolveByQueryInput) (*ResolveByQueryOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	out := &ResolveByQueryOutput{RequestToken: input.RequestToken, Results: []*catalog.Pokemon{}}
	defer func() {
		if input.RequestToken != "" {
			out.Stale = !o.tokens.IsCurrent(input.RequestToken)
		}
	}()

	query := strings.TrimSpace(input.Query)
	if query == "" {
		return out, nil
	}
	if p, ok := matchCustom(query); ok {
		out.Results = []*catalog.Pokemon{p}
		return out, nil
	}

	max := input.MaxResults
	if max <= 0 {
		max = DefaultMaxResults
	}

	key := cache.Key("search", query, input.IncludeEvolutions, max)
	results, err := o.queries.GetOrCompute(ctx, key, func(ctx context.Context) ([]*catalog.Pokemon, error) {
		results, err := o.resolve(ctx, query, input.IncludeEvolutions, max)
		if err != nil {
			if errors.IsInvalidArgument(err) || errors.IsNotFound(err) {
				o.logger.DebugContext(ctx, "query resolved to nothing", "query", query, "reason", err)
				return []*catalog.Pokemon{}, nil
			}
			return nil, err
		}
		o.storePayload(ctx, query, results)
		return results, nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.WrapWithCode(ctx.Err(), errors.CodeCanceled, "query canceled")
		}
		o.logger.WarnContext(ctx, "query failed upstream", "query", query, "error", err)
		if stored, ok := o.loadPayload(ctx, query); ok {
			out.Results = stored
			out.Offline = true
		}
		return out, nil
	}

	out.Results = clonePokemon(results)
	return out, nil
}

// resolve dispatches on the shape of the query
func (o *orchestrator) resolve(ctx context.Context, query string, evolutions bool, max int) ([]*catalog.Pokemon, error) {
	if digitsPattern.MatchString(query) {
		id, err := strconv.Atoi(query)
		if err != nil || id < MinID || id > MaxID {
			return nil, errors.InvalidArgumentf("invalid id %s", query)
		}
		return o.resolveByID(ctx, id, evolutions)
	}

	if matches := o.index.SearchNames(query); len(matches) > 0 {
		return o.resolveByNames(ctx, matches, evolutions, max)
	}

	if err := ValidateIdentifier(query); err != nil {
		return nil, err
	}
	return o.resolveDirect(ctx, query, evolutions)
}

// resolveByID returns every variety of the species, rebased onto its id.
func (o *orchestrator) resolveByID(ctx context.Context, id int, evolutions bool) ([]*catalog.Pokemon, error) {
	species, err := o.client.GetSpecies(ctx, id)
	if err != nil {
		return nil, err
	}

	reqs := make([]formRequest, 0, len(species.Varieties))
	for _, v := range species.Varieties {
		reqs = append(reqs, formRequest{speciesID: species.ID, slug: v.Pokemon.Name, isDefault: v.IsDefault})
	}

	results, err := o.fetchForms(ctx, reqs)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, errors.NotFoundf("no forms found for id %d", id)
	}

	if evolutions {
		seen := make(map[string]struct{}, len(results))
		for _, p := range results {
			seen[strings.ToLower(p.Names.Canonical)] = struct{}{}
		}
		results = o.appendEvolutions(ctx, results, []int{id}, func(p *catalog.Pokemon) bool {
			_, dup := seen[strings.ToLower(p.Names.Canonical)]
			return !dup
		})
		sortByID(results)
	}
	return results, nil
}

// resolveByNames expands reference index matches into species varieties.
func (o *orchestrator) resolveByNames(ctx context.Context, matches []catalog.Entry, evolutions bool, max int) ([]*catalog.Pokemon, error) {
	matches = matches[:min(len(matches), max, MaxSpeciesLookups)]

	var ids []int
	seenID := make(map[int]struct{})
	for _, m := range matches {
		if _, ok := seenID[m.ID]; ok {
			continue
		}
		seenID[m.ID] = struct{}{}
		ids = append(ids, m.ID)
	}

	perID := make([][]formRequest, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			perID[i] = o.formsForSpecies(gctx, id)
			return nil
		})
	}
	_ = g.Wait()

	var reqs []formRequest
	for _, r := range perID {
		reqs = append(reqs, r...)
	}

	results, err := o.fetchForms(ctx, reqs)
	if err != nil {
		return nil, err
	}

	deduped := make([]*catalog.Pokemon, 0, len(results))
	seen := make(map[string]struct{}, len(results))
	for _, p := range results {
		k := strconv.Itoa(p.ID) + "-" + p.Names.Local
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		deduped = append(deduped, p)
	}
	results = deduped[:min(len(deduped), max)]

	if evolutions && len(results) > 0 && len(results) <= MaxEvolutionExpansion {
		roots := make([]int, 0, len(results))
		for _, p := range results {
			roots = append(roots, p.ID)
		}
		results = o.appendEvolutions(ctx, results, roots, nil)
		results = dedupeByCanonical(results)
		sortByID(results)
		results = results[:min(len(results), max)]
	}
	return results, nil
}

// formsForSpecies lists the records to fetch for one matched species. When
// the species cannot be read the id itself is fetched.
func (o *orchestrator) formsForSpecies(ctx context.Context, id int) []formRequest {
	species, err := o.client.GetSpecies(ctx, id)
	if err != nil || len(species.Varieties) == 0 {
		return []formRequest{{speciesID: id, slug: strconv.Itoa(id), isDefault: true}}
	}

	reqs := make([]formRequest, 0, len(species.Varieties))
	for _, v := range species.Varieties {
		reqs = append(reqs, formRequest{speciesID: id, slug: v.Pokemon.Name, isDefault: v.IsDefault})
	}
	return reqs
}

// resolveDirect fetches the query as an identifier.
func (o *orchestrator) resolveDirect(ctx context.Context, query string, evolutions bool) ([]*catalog.Pokemon, error) {
	p, err := o.fetchRecord(ctx, query)
	if err != nil {
		return nil, err
	}

	results := []*catalog.Pokemon{p}
	if evolutions {
		results = o.appendEvolutions(ctx, results, []int{p.ID}, func(e *catalog.Pokemon) bool {
			return e.ID != p.ID
		})
		sortByID(results)
	}
	return results, nil
}

// fetchForms fetches all requests in parallel and keeps successful records
// in request order. It fails only when nothing was fetched and at least one
// failure was an upstream outage.
func (o *orchestrator) fetchForms(ctx context.Context, reqs []formRequest) ([]*catalog.Pokemon, error) {
	records := make([]*catalog.Pokemon, len(reqs))
	errs := make([]error, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	for i, req := range reqs {
		g.Go(func() error {
			p, err := o.fetchRecord(gctx, req.slug)
			if err != nil {
				errs[i] = err
				return nil
			}
			records[i] = o.rebase(p, req.speciesID, req.isDefault)
			return nil
		})
	}
	_ = g.Wait()

	out := make([]*catalog.Pokemon, 0, len(records))
	for _, p := range records {
		if p != nil && !p.Error {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		for _, err := range errs {
			if err != nil && !errors.IsNotFound(err) && !errors.IsInvalidArgument(err) {
				return nil, err
			}
		}
	}
	return out, nil
}

// appendEvolutions adds the non-degraded chain members of each id that keep
// reports true for. A nil keep drops members sharing an id with an input
// record.
func (o *orchestrator) appendEvolutions(ctx context.Context, results []*catalog.Pokemon, ids []int, keep func(*catalog.Pokemon) bool) []*catalog.Pokemon {
	if keep == nil {
		present := make(map[int]struct{}, len(results))
		for _, p := range results {
			present[p.ID] = struct{}{}
		}
		keep = func(p *catalog.Pokemon) bool {
			_, dup := present[p.ID]
			return !dup
		}
	}

	chains := make([][]catalog.EvolutionStage, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			stages, err := o.completeChain(gctx, id)
			if err != nil {
				o.logger.DebugContext(gctx, "evolution chain skipped", "id", id, "error", err)
				return nil
			}
			chains[i] = stages
			return nil
		})
	}
	_ = g.Wait()

	for _, stages := range chains {
		for _, s := range stages {
			if s.Pokemon == nil || s.Pokemon.Error || !keep(s.Pokemon) {
				continue
			}
			results = append(results, s.Pokemon)
		}
	}
	return results
}

func dedupeByCanonical(in []*catalog.Pokemon) []*catalog.Pokemon {
	out := make([]*catalog.Pokemon, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, p := range in {
		k := strconv.Itoa(p.ID) + "-" + p.Names.Canonical
		if _, ok := seen[k]; ok || p.Error {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, p)
	}
	return out
}

func sortByID(results []*catalog.Pokemon) {
	slices.SortStableFunc(results, func(a, b *catalog.Pokemon) int {
		return a.ID - b.ID
	})
}

func (o *orchestrator) storePayload(ctx context.Context, query string, results []*catalog.Pokemon) {
	if o.payload == nil || len(results) == 0 {
		return
	}
	_, err := o.payload.Store(ctx, payload.StoreInput{Query: query, Results: results, TTL: o.payloadTTL})
	if err != nil {
		o.logger.WarnContext(ctx, "failed to store payload", "query", query, "error", err)
	}
}

func (o *orchestrator) loadPayload(ctx context.Context, query string) ([]*catalog.Pokemon, bool) {
	if o.payload == nil {
		return nil, false
	}
	got, err := o.payload.Get(ctx, payload.GetInput{Query: query})
	if err != nil {
		if !errors.IsNotFound(err) {
			o.logger.WarnContext(ctx, "failed to read payload", "query", query, "error", err)
		}
		return nil, false
	}
	o.logger.InfoContext(ctx, "serving stored payload", "query", query, "stored_at", got.Snapshot.StoredAt)
	return got.Snapshot.Results, true
}
