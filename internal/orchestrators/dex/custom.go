package dex

import (
	"github.com/KirkDiggler/dex-api/internal/entities/catalog"
)

// CustomID is the id of the hand-authored catalog entry
const CustomID = 101010

// customQueries are the only queries that surface the custom entry. Matching
// is exact after trimming.
var customQueries = []string{"VANK", "vank", "101010"}

func customEntry() *catalog.Pokemon {
	return &catalog.Pokemon{
		ID:    CustomID,
		Slug:  "vank",
		Names: catalog.NamePair{Local: "VANK", Canonical: "VANK"},
		Images: catalog.ImageSet{
			Primary:      "/custom/vank.png",
			Fallback:     "/custom/vank-gmax.png",
			Alternatives: []string{},
			Placeholder:  "/custom/vank.png",
			BaseName:     "vank",
		},
		ShinyImage: "/custom/vank-shiny.png",
		Types: []catalog.TypeTag{
			{Name: "fairy", Local: catalog.TypeLabel("fairy")},
			{Name: "grass", Local: catalog.TypeLabel("grass")},
		},
		Stats: []catalog.Stat{
			{Name: "hp", Value: 100},
			{Name: "attack", Value: 100},
			{Name: "defense", Value: 100},
			{Name: "special-attack", Value: 100},
			{Name: "special-defense", Value: 100},
			{Name: "speed", Value: 100},
		},
		Custom: true,
	}
}

func matchCustom(query string) (*catalog.Pokemon, bool) {
	for _, q := range customQueries {
		if query == q {
			return customEntry(), true
		}
	}
	return nil, false
}
