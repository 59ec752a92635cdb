// Package sprites builds the ordered image URL chain for a catalog entry
// from curated mappings, templated host URLs and context fallbacks.
package sprites

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"net/url"
	"slices"
	"strings"

	"github.com/KirkDiggler/dex-api/internal/cache"
	"github.com/KirkDiggler/dex-api/internal/entities/catalog"
)

// SearchErrorPlaceholder is rendered when the lookup itself failed.
const SearchErrorPlaceholder = "/pokemonBall.svg"

// OfficialArtworkMinID is the first id that gets PokeAPI official artwork
// appended to its chain.
const OfficialArtworkMinID = 650

// CategoryFunc reports the dataset category of an id.
type CategoryFunc func(id int) catalog.Category

// Config configures a Resolver
type Config struct {
	// Mappings overrides DefaultMappings when non-nil.
	Mappings map[int]SpeciesMapping
	// Categories marks extra ids as legendary for artwork fallbacks.
	Categories CategoryFunc
	// Cache memoizes results. Nil disables memoization.
	Cache  *cache.Cache[catalog.ImageSet]
	Logger *slog.Logger
}

// Resolver is deterministic: equal arguments always yield equal sets.
type Resolver struct {
	mappings   map[int]SpeciesMapping
	categories CategoryFunc
	cache      *cache.Cache[catalog.ImageSet]
	logger     *slog.Logger
}

// New creates a sprite resolver. A nil config uses the curated mappings
// without memoization.
func New(cfg *Config) *Resolver {
	r := &Resolver{mappings: DefaultMappings, logger: slog.Default()}
	if cfg == nil {
		return r
	}
	if cfg.Mappings != nil {
		r.mappings = cfg.Mappings
	}
	if cfg.Logger != nil {
		r.logger = cfg.Logger
	}
	r.categories = cfg.Categories
	r.cache = cfg.Cache
	return r
}

// Resolve returns the image chain for an entry. form selects a curated
// form; when empty it is inferred from name.
func (r *Resolver) Resolve(id int, name, form string) catalog.ImageSet {
	if r.cache == nil {
		return r.build(id, name, form)
	}

	formKey := form
	if formKey == "" {
		formKey = "base"
	}
	key := cache.Key("sprite", id, name, formKey)

	set, err := r.cache.GetOrCompute(context.Background(), key, func(context.Context) (catalog.ImageSet, error) {
		return r.build(id, name, form), nil
	})
	if err != nil {
		r.logger.Warn("sprite cache failed, building uncached", "key", key, "error", err)
		return r.build(id, name, form)
	}
	return set.Clone()
}

// ClearCache drops memoized results.
func (r *Resolver) ClearCache() {
	if r.cache != nil {
		r.cache.Reset()
	}
}

// Mapping returns the curated mapping for id.
func (r *Resolver) Mapping(id int) (SpeciesMapping, bool) {
	m, ok := r.mappings[id]
	return m, ok
}

func (r *Resolver) build(id int, name, form string) catalog.ImageSet {
	processed := ProcessFormName(name)
	mapped := r.mappedCandidates(id, name, form)
	hasMapped := len(mapped) > 0

	priority := func(unmapped, withMapped int) int {
		if hasMapped {
			return withMapped
		}
		return unmapped
	}

	candidates := slices.Clone(mapped)
	add := func(u, source string, p int) {
		candidates = append(candidates, catalog.SpriteCandidate{URL: u, Source: source, Priority: p})
	}

	if processed != "" {
		add(fmt.Sprintf(dbIconURL, "scarlet-violet", processed), "pokemondb-scarlet-violet", priority(1, 5))
		add(fmt.Sprintf(dbIconURL, "sword-shield", processed), "pokemondb-sword-shield", priority(2, 6))
	}

	base := BaseName(name)
	if base != "" && base != processed {
		add(fmt.Sprintf(dbIconURL, "scarlet-violet", base), "pokemondb-base-form", priority(3, 7))
	}

	if id > 0 {
		add(fmt.Sprintf(pokeAPISpriteURL, id), "pokeapi-main", priority(4, 8))
		add(fmt.Sprintf(pokeAPIBWURL, id), "pokeapi-bw", priority(5, 9))
	}

	if processed != "" {
		add(fmt.Sprintf(dbIconURL, "black-white", processed), "pokemondb-black-white", priority(6, 10))
		add(fmt.Sprintf(dbIconURL, "x-y", processed), "pokemondb-x-y", priority(7, 11))
	}

	candidates = append(candidates, r.contextCandidates(id, processed, len(candidates))...)

	candidates = dedupeByURL(candidates)
	slices.SortStableFunc(candidates, func(a, b catalog.SpriteCandidate) int {
		return a.Priority - b.Priority
	})

	placeholder := Placeholder(name, false)
	set := catalog.ImageSet{
		Primary:       placeholder,
		Fallback:      placeholder,
		Alternatives:  []string{},
		Placeholder:   placeholder,
		Candidates:    candidates,
		ProcessedName: processed,
		BaseName:      base,
	}
	if len(candidates) > 0 {
		set.Primary = candidates[0].URL
	}
	if len(candidates) > 1 {
		set.Fallback = candidates[1].URL
	}
	for _, c := range candidates[min(2, len(candidates)):] {
		set.Alternatives = append(set.Alternatives, c.URL)
	}
	return set
}

func (r *Resolver) mappedCandidates(id int, name, form string) []catalog.SpriteCandidate {
	species, ok := r.mappings[id]
	if !ok {
		return nil
	}

	if form == "" {
		form = InferForm(name)
	}
	fm, ok := species.Forms[form]
	if !ok {
		fm, ok = species.Forms["base"]
		if !ok {
			return nil
		}
	}

	category := species.Category
	if category == "" {
		category = catalog.CategoryUnknown
	}

	selected := selectSources(fm, category)
	out := make([]catalog.SpriteCandidate, 0, len(selected))
	for i, src := range selected {
		out = append(out, catalog.SpriteCandidate{
			URL:      src.URL,
			Tier:     src.Tier,
			Type:     src.Type,
			Verified: fm.Verified,
			Priority: i + 1,
			Source:   fmt.Sprintf("mapped-%s-%s", src.Tier, src.Type),
			Category: category,
		})
	}
	return out
}

// contextCandidates appends modern official artwork and legendary artwork
// after everything else.
func (r *Resolver) contextCandidates(id int, processed string, existing int) []catalog.SpriteCandidate {
	var out []catalog.SpriteCandidate
	if id >= OfficialArtworkMinID {
		out = append(out, catalog.SpriteCandidate{
			URL:      fmt.Sprintf(officialArtURL, id),
			Tier:     catalog.TierA,
			Type:     catalog.SourceArtwork,
			Priority: existing + 1,
			Source:   "pokeapi-official-artwork",
		})
	}
	if r.legendary(id) && processed != "" {
		out = append(out, catalog.SpriteCandidate{
			URL:      fmt.Sprintf(dbArtworkURL, processed),
			Tier:     catalog.TierB,
			Type:     catalog.SourceArtwork,
			Priority: existing + len(out) + 1,
			Source:   "pokemondb-legendary-artwork",
		})
	}
	return out
}

func (r *Resolver) legendary(id int) bool {
	if IsLegendary(id) {
		return true
	}
	return r.categories != nil && r.categories(id) == catalog.CategoryLegendary
}

func dedupeByURL(in []catalog.SpriteCandidate) []catalog.SpriteCandidate {
	seen := make(map[string]struct{}, len(in))
	out := in[:0]
	for _, c := range in {
		if _, ok := seen[c.URL]; ok {
			continue
		}
		seen[c.URL] = struct{}{}
		out = append(out, c)
	}
	return out
}

// InferForm guesses the curated form key from a display name. Unknown
// names map to "base".
func InferForm(name string) string {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "dusk mane"):
		return "dusk"
	case strings.Contains(n, "dawn wings"):
		return "dawn"
	case strings.Contains(n, "ultra"):
		return "ultra"
	case strings.Contains(n, "baile"):
		return "baile"
	case strings.Contains(n, "pom-pom"):
		return "pom-pom"
	case strings.Contains(n, "pau"), strings.Contains(n, "pa'u"):
		return "pau"
	case strings.Contains(n, "sensu"):
		return "sensu"
	case strings.Contains(n, "midday"):
		return "midday"
	case strings.Contains(n, "midnight"):
		return "midnight"
	case strings.Contains(n, "dusk") && strings.Contains(n, "lycanroc"):
		return "dusk"
	case strings.Contains(n, "solo"):
		return "solo"
	case strings.Contains(n, "school"):
		return "school"
	case strings.Contains(n, "100%"), strings.Contains(n, "complete"):
		return "complete"
	case strings.Contains(n, "10"):
		return "10"
	case strings.Contains(n, "50"):
		return "50"
	}
	return "base"
}

// BaseName returns the default-form slug for species with curated forms and
// the processed slug for everything else.
func BaseName(name string) string {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "necrozma"):
		return "necrozma"
	case strings.Contains(n, "oricorio"):
		return "oricorio-baile"
	case strings.Contains(n, "lycanroc"):
		return "lycanroc-midday"
	case strings.Contains(n, "wishiwashi"):
		return "wishiwashi-solo"
	case strings.Contains(n, "minior"):
		return "minior-red-meteor"
	case strings.Contains(n, "zygarde"):
		return "zygarde-50"
	}
	return ProcessFormName(name)
}

const placeholderSVG = `<svg width="64" height="64" xmlns="http://www.w3.org/2000/svg" style="image-rendering: pixelated;">` +
	`<defs><pattern id="checkerboard" x="0" y="0" width="8" height="8" patternUnits="userSpaceOnUse">` +
	`<rect x="0" y="0" width="4" height="4" fill="#f0f0f0"/><rect x="4" y="4" width="4" height="4" fill="#f0f0f0"/>` +
	`<rect x="4" y="0" width="4" height="4" fill="#e0e0e0"/><rect x="0" y="4" width="4" height="4" fill="#e0e0e0"/>` +
	`</pattern></defs>` +
	`<rect width="64" height="64" fill="url(#checkerboard)" stroke="#ccc" stroke-width="1"/>` +
	`<rect x="12" y="12" width="40" height="40" fill="#f8f8f8" stroke="#ddd" stroke-width="1"/>` +
	`<rect x="20" y="24" width="4" height="4" fill="#333"/><rect x="40" y="24" width="4" height="4" fill="#333"/>` +
	`<rect x="28" y="32" width="8" height="4" fill="#666" rx="1"/>` +
	`<text x="32" y="54" text-anchor="middle" font-family="monospace" font-size="6" fill="#888">%s</text></svg>`

// Placeholder returns a pixel-style SVG data URI labelled with the first
// eight characters of name, or the search error image.
func Placeholder(name string, searchError bool) string {
	if searchError {
		return SearchErrorPlaceholder
	}

	label := "POKEMON"
	if name != "" {
		runes := []rune(name)
		label = strings.ToUpper(string(runes[:min(8, len(runes))]))
	}
	svg := fmt.Sprintf(placeholderSVG, html.EscapeString(label))
	return "data:image/svg+xml;charset=UTF-8," + url.PathEscape(svg)
}
