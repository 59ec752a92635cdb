package sprites

import (
	"slices"

	"github.com/KirkDiggler/dex-api/internal/entities/catalog"
)

// categoryPrefs tunes how curated sources are ranked for a category.
type categoryPrefs struct {
	preferredTypes []catalog.SourceType
	maxSources     int
	tierBoost      map[catalog.Tier]int
}

var preferences = map[catalog.Category]categoryPrefs{
	catalog.CategoryLegendary: {
		preferredTypes: []catalog.SourceType{catalog.SourceSprite, catalog.SourceArtwork},
		maxSources:     4,
		tierBoost:      map[catalog.Tier]int{catalog.TierB: -1, catalog.TierC: -2},
	},
	catalog.CategoryRegular: {
		preferredTypes: []catalog.SourceType{catalog.SourceSprite, catalog.SourceFallback},
		maxSources:     3,
		tierBoost:      map[catalog.Tier]int{catalog.TierC: -1},
	},
	catalog.CategoryUnknown: {
		preferredTypes: []catalog.SourceType{catalog.SourceSprite, catalog.SourceFallback, catalog.SourceArtwork},
		maxSources:     3,
	},
}

func prefsFor(c catalog.Category) categoryPrefs {
	if p, ok := preferences[c]; ok {
		return p
	}
	return preferences[catalog.CategoryUnknown]
}

// scoreSource is tier weight, plus a bonus for preferred types that shrinks
// with their rank, plus 2 when verified, plus the category's tier boost.
func scoreSource(src Source, verified bool, prefs categoryPrefs) int {
	score := src.Tier.Weight()
	if idx := slices.Index(prefs.preferredTypes, src.Type); idx >= 0 {
		score += (len(prefs.preferredTypes) - idx) * 2
	}
	if verified {
		score += 2
	}
	return score + prefs.tierBoost[src.Tier]
}

// selectSources orders a form's sources for its species category and keeps
// the best maxSources.
func selectSources(fm FormMapping, category catalog.Category) []Source {
	prefs := prefsFor(category)

	sorted := slices.Clone(fm.Sources)
	slices.SortStableFunc(sorted, func(a, b Source) int {
		return a.Tier.Rank() - b.Tier.Rank()
	})

	type scored struct {
		src   Source
		score int
	}
	ranked := make([]scored, 0, len(sorted))
	for _, src := range sorted {
		ranked = append(ranked, scored{src: src, score: scoreSource(src, fm.Verified, prefs)})
	}
	slices.SortStableFunc(ranked, func(a, b scored) int {
		return b.score - a.score
	})

	if len(ranked) > prefs.maxSources {
		ranked = ranked[:prefs.maxSources]
	}
	out := make([]Source, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.src)
	}
	return out
}
