package testutils

import (
	"github.com/KirkDiggler/dex-api/internal/entities/catalog"
)

// CreateTestPokemon creates a resolved record with sensible defaults
func CreateTestPokemon(id int, local, canonical string) *catalog.Pokemon {
	return &catalog.Pokemon{
		ID:    id,
		Slug:  canonical,
		Names: catalog.NamePair{Local: local, Canonical: canonical},
		Images: catalog.ImageSet{
			Primary:      "https://img.example/primary.png",
			Fallback:     "https://img.example/fallback.png",
			Alternatives: []string{"https://img.example/alt.png"},
			BaseName:     canonical,
		},
		Types:  []catalog.TypeTag{{Name: "electric", Local: "電"}},
		Height: 4,
		Weight: 60,
		Stats: []catalog.Stat{
			{Name: "hp", Value: 35},
			{Name: "speed", Value: 90},
		},
	}
}
