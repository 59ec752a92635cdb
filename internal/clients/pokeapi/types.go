package pokeapi

// NamedResource is the {name, url} pair the catalog API uses for links.
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// PokemonResponse is the subset of /pokemon/{id} we consume
type PokemonResponse struct {
	ID      int           `json:"id"`
	Name    string        `json:"name"`
	Height  int           `json:"height"`
	Weight  int           `json:"weight"`
	Sprites Sprites       `json:"sprites"`
	Types   []TypeSlot    `json:"types"`
	Stats   []StatSlot    `json:"stats"`
	Species NamedResource `json:"species"`
}

// Sprites holds the default sprite URLs and the nested artwork set.
type Sprites struct {
	FrontDefault string       `json:"front_default"`
	FrontShiny   string       `json:"front_shiny"`
	Other        OtherSprites `json:"other"`
}

// OtherSprites groups non-game sprite sets.
type OtherSprites struct {
	OfficialArtwork Artwork `json:"official-artwork"`
}

// Artwork is a front-facing image pair.
type Artwork struct {
	FrontDefault string `json:"front_default"`
	FrontShiny   string `json:"front_shiny"`
}

// TypeSlot is one entry of the types array
type TypeSlot struct {
	Slot int           `json:"slot"`
	Type NamedResource `json:"type"`
}

// StatSlot is one entry of the stats array
type StatSlot struct {
	BaseStat int           `json:"base_stat"`
	Stat     NamedResource `json:"stat"`
}

// ArtworkURL prefers official artwork over the default sprite.
func (p *PokemonResponse) ArtworkURL() string {
	if p.Sprites.Other.OfficialArtwork.FrontDefault != "" {
		return p.Sprites.Other.OfficialArtwork.FrontDefault
	}
	return p.Sprites.FrontDefault
}

// ShinyURL prefers the shiny official artwork over the shiny sprite.
func (p *PokemonResponse) ShinyURL() string {
	if p.Sprites.Other.OfficialArtwork.FrontShiny != "" {
		return p.Sprites.Other.OfficialArtwork.FrontShiny
	}
	return p.Sprites.FrontShiny
}

// SpeciesResponse is the subset of /pokemon-species/{id} we consume
type SpeciesResponse struct {
	ID             int           `json:"id"`
	Name           string        `json:"name"`
	Varieties      []Variety     `json:"varieties"`
	EvolutionChain APIResource   `json:"evolution_chain"`
	IsLegendary    bool          `json:"is_legendary"`
	IsMythical     bool          `json:"is_mythical"`
	Generation     NamedResource `json:"generation"`
}

// Variety is one form listed on a species
type Variety struct {
	IsDefault bool          `json:"is_default"`
	Pokemon   NamedResource `json:"pokemon"`
}

// APIResource is an unnamed link.
type APIResource struct {
	URL string `json:"url"`
}

// VarietyNames lists the form slugs in response order.
func (s *SpeciesResponse) VarietyNames() []string {
	names := make([]string, 0, len(s.Varieties))
	for _, v := range s.Varieties {
		names = append(names, v.Pokemon.Name)
	}
	return names
}

// EvolutionChainResponse is /evolution-chain/{id}
type EvolutionChainResponse struct {
	ID    int       `json:"id"`
	Chain ChainLink `json:"chain"`
}

// ChainLink is a recursive node of an evolution chain.
type ChainLink struct {
	Species          NamedResource     `json:"species"`
	EvolutionDetails []EvolutionDetail `json:"evolution_details"`
	EvolvesTo        []ChainLink       `json:"evolves_to"`
}

// EvolutionDetail describes how a link is reached. Optional values in the
// upstream payload are null, so pointers are used.
type EvolutionDetail struct {
	Trigger      *NamedResource `json:"trigger"`
	MinLevel     *int           `json:"min_level"`
	Item         *NamedResource `json:"item"`
	HeldItem     *NamedResource `json:"held_item"`
	MinHappiness *int           `json:"min_happiness"`
	TimeOfDay    string         `json:"time_of_day"`
}
