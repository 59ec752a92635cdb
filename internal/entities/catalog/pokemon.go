package catalog

import "slices"

// TypeTag is an elemental type with its zh-TW label
type TypeTag struct {
	Name  string `json:"name"`
	Local string `json:"local"`
}

// Pokemon is a fully resolved catalog record as handed to the presentation
// layer. Degraded records have Error set and carry placeholder imagery.
type Pokemon struct {
	ID              int       `json:"id"`
	Slug            string    `json:"slug"`
	Names           NamePair  `json:"names"`
	Images          ImageSet  `json:"images"`
	OfficialArtwork string    `json:"official_artwork,omitempty"`
	ShinyImage      string    `json:"shiny_image,omitempty"`
	Types           []TypeTag `json:"types"`
	Height          int       `json:"height"`
	Weight          int       `json:"weight"`
	Stats           []Stat    `json:"stats"`
	IsVariant       bool      `json:"is_variant"`
	Custom          bool      `json:"custom,omitempty"`
	Error           bool      `json:"error,omitempty"`
	ErrorMessage    string    `json:"error_message,omitempty"`
}

// Clone returns a copy whose slices can be mutated without touching the
// receiver. Cached records are shared between callers.
func (p *Pokemon) Clone() *Pokemon {
	if p == nil {
		return nil
	}
	c := *p
	c.Types = slices.Clone(p.Types)
	c.Stats = slices.Clone(p.Stats)
	c.Images = p.Images.Clone()
	return &c
}

// EvolutionStage is one node of a flattened evolution chain.
type EvolutionStage struct {
	ID           int      `json:"id"`
	Slug         string   `json:"slug"`
	Stage        int      `json:"stage"`
	Trigger      string   `json:"trigger,omitempty"`
	MinLevel     int      `json:"min_level,omitempty"`
	Item         string   `json:"item,omitempty"`
	MinHappiness int      `json:"min_happiness,omitempty"`
	TimeOfDay    string   `json:"time_of_day,omitempty"`
	Pokemon      *Pokemon `json:"pokemon,omitempty"`
}

// Lang tags which name of an entry a suggestion came from.
type Lang string

const (
	LangLocal     Lang = "zh"
	LangCanonical Lang = "en"
)

// Suggestion is one ranked autocomplete candidate.
type Suggestion struct {
	Text      string  `json:"text"`
	Lang      Lang    `json:"lang"`
	Score     float64 `json:"score"`
	MatchType string  `json:"match_type"`
	ID        int     `json:"id"`
}
