package sprites

import (
	"fmt"

	"github.com/KirkDiggler/dex-api/internal/entities/catalog"
)

// Source is one known host for a form's image.
type Source struct {
	URL  string
	Tier catalog.Tier
	Type catalog.SourceType
}

// FormMapping lists the curated sources for one form.
type FormMapping struct {
	SpriteName string
	Verified   bool
	Sources    []Source
}

// SpeciesMapping holds curated sources for a species whose forms the
// templated URLs get wrong. Forms is keyed by form name; "base" is the
// fallback.
type SpeciesMapping struct {
	Name     string
	Category catalog.Category
	Forms    map[string]FormMapping
}

const (
	wingzeroURL      = "https://pokemon.wingzero.tw/assets/pokemon/%s.png"
	serebiiURL       = "https://serebii.net/%s/pokemon/%s.png"
	pokeAPISpriteURL = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/%d.png"
	pokeAPIBWURL     = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/versions/generation-v/black-white/%d.png"
	officialArtURL   = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/other/official-artwork/%d.png"
	dbIconURL        = "https://img.pokemondb.net/sprites/%s/icon/%s.png"
	dbArtworkURL     = "https://img.pokemondb.net/artwork/large/%s.jpg"
)

func wingzero(code string) Source {
	return Source{URL: fmt.Sprintf(wingzeroURL, code), Tier: catalog.TierA, Type: catalog.SourceSprite}
}

func serebii(game, code string) Source {
	return Source{URL: fmt.Sprintf(serebiiURL, game, code), Tier: catalog.TierA, Type: catalog.SourceSprite}
}

func dbArtwork(slug string) Source {
	return Source{URL: fmt.Sprintf(dbArtworkURL, slug), Tier: catalog.TierB, Type: catalog.SourceArtwork}
}

func dbIcon(slug string) Source {
	return Source{URL: fmt.Sprintf(dbIconURL, "scarlet-violet", slug), Tier: catalog.TierC, Type: catalog.SourceSprite}
}

func pokeAPIFallback(id int, tier catalog.Tier) Source {
	return Source{URL: fmt.Sprintf(pokeAPISpriteURL, id), Tier: tier, Type: catalog.SourceFallback}
}

// form builds the common shape: wingzero, serebii, pokemondb artwork, then
// the PokeAPI id sprite as fallback.
func form(sprite string, verified bool, id int, wz, game, sb string, fallbackTier catalog.Tier) FormMapping {
	return FormMapping{
		SpriteName: sprite,
		Verified:   verified,
		Sources: []Source{
			wingzero(wz),
			serebii(game, sb),
			dbArtwork(sprite),
			pokeAPIFallback(id, fallbackTier),
		},
	}
}

// DefaultMappings is the curated catalog for species with ambiguous forms.
var DefaultMappings = map[int]SpeciesMapping{
	800: {
		Name:     "Necrozma",
		Category: catalog.CategoryLegendary,
		Forms: map[string]FormMapping{
			"base": {
				SpriteName: "necrozma",
				Verified:   true,
				Sources: []Source{
					{URL: fmt.Sprintf(pokeAPISpriteURL, 800), Tier: catalog.TierA, Type: catalog.SourceSprite},
					dbIcon("necrozma"),
					dbArtwork("necrozma"),
				},
			},
			"dusk": {
				SpriteName: "necrozma-dusk-mane",
				Verified:   true,
				Sources:    []Source{wingzero("800_dm"), dbArtwork("necrozma-dusk-mane"), pokeAPIFallback(800, catalog.TierA)},
			},
			"dawn": {
				SpriteName: "necrozma-dawn-wings",
				Verified:   true,
				Sources:    []Source{wingzero("800_dw"), dbArtwork("necrozma-dawn-wings"), pokeAPIFallback(800, catalog.TierA)},
			},
			"ultra": {
				SpriteName: "necrozma-ultra",
				Verified:   true,
				Sources:    []Source{wingzero("800_u"), dbIcon("necrozma-ultra"), pokeAPIFallback(800, catalog.TierA)},
			},
		},
	},
	741: {
		Name:     "Oricorio",
		Category: catalog.CategoryRegular,
		Forms: map[string]FormMapping{
			"base":    form("oricorio-baile", true, 741, "741", "sunmoon", "741", catalog.TierA),
			"baile":   form("oricorio-baile", true, 741, "741", "sunmoon", "741", catalog.TierA),
			"pom-pom": form("oricorio-pom-pom", false, 741, "741_pp", "sunmoon", "741-pp", catalog.TierC),
			"pau":     form("oricorio-pau", false, 741, "741_pa", "sunmoon", "741-pa", catalog.TierC),
			"sensu":   form("oricorio-sensu", false, 741, "741_se", "sunmoon", "741-se", catalog.TierC),
		},
	},
	745: {
		Name:     "Lycanroc",
		Category: catalog.CategoryRegular,
		Forms: map[string]FormMapping{
			"base":     form("lycanroc-midday", true, 745, "745", "sunmoon", "745", catalog.TierA),
			"midday":   form("lycanroc-midday", true, 745, "745", "sunmoon", "745", catalog.TierA),
			"midnight": form("lycanroc-midnight", false, 745, "745_mn", "sunmoon", "745-mn", catalog.TierC),
			"dusk":     form("lycanroc-dusk", false, 745, "745_d", "ultrasunmoon", "745-d", catalog.TierC),
		},
	},
	746: {
		Name:     "Wishiwashi",
		Category: catalog.CategoryRegular,
		Forms: map[string]FormMapping{
			"base":   form("wishiwashi-solo", true, 746, "746", "sunmoon", "746", catalog.TierA),
			"solo":   form("wishiwashi-solo", true, 746, "746", "sunmoon", "746", catalog.TierA),
			"school": form("wishiwashi-school", false, 746, "746_sc", "sunmoon", "746-s", catalog.TierC),
		},
	},
	774: {
		Name:     "Minior",
		Category: catalog.CategoryRegular,
		Forms: map[string]FormMapping{
			"base":   form("minior-red-meteor", false, 774, "774", "sunmoon", "774", catalog.TierA),
			"meteor": form("minior-red-meteor", false, 774, "774", "sunmoon", "774", catalog.TierA),
		},
	},
	718: {
		Name:     "Zygarde",
		Category: catalog.CategoryLegendary,
		Forms: map[string]FormMapping{
			"base":     form("zygarde-50", true, 718, "718", "xy", "718", catalog.TierA),
			"50":       form("zygarde-50", true, 718, "718", "xy", "718", catalog.TierA),
			"10":       form("zygarde-10", false, 718, "718_10", "sunmoon", "718-10", catalog.TierC),
			"complete": form("zygarde-complete", false, 718, "718_c", "sunmoon", "718-c", catalog.TierC),
		},
	},
}

// legendaryIDs get large pokemondb artwork appended to their chain.
var legendaryIDs = map[int]struct{}{}

func init() {
	for _, id := range []int{
		144, 145, 146, 150, 151, 243, 244, 245, 249, 250, 251,
		377, 378, 379, 380, 381, 382, 383, 384, 385, 386,
		480, 481, 482, 483, 484, 485, 486, 487, 488, 489, 490, 491, 492, 493, 494,
		638, 639, 640, 641, 642, 643, 644, 645, 646, 647, 648, 649,
		716, 717, 718, 719, 720, 721,
		785, 786, 787, 788, 789, 790, 791, 792,
		800, 801, 802, 807, 808, 809,
	} {
		legendaryIDs[id] = struct{}{}
	}
}

// IsLegendary reports whether id is in the legendary artwork list.
func IsLegendary(id int) bool {
	_, ok := legendaryIDs[id]
	return ok
}
