package catalog

import "slices"

// Tier ranks an image host by reliability, A best.
type Tier string

const (
	TierA Tier = "A"
	TierB Tier = "B"
	TierC Tier = "C"
	TierD Tier = "D"
)

// Weight returns A=4 through D=1. Unknown tiers weigh as D.
func (t Tier) Weight() int {
	switch t {
	case TierA:
		return 4
	case TierB:
		return 3
	case TierC:
		return 2
	default:
		return 1
	}
}

// Rank orders tiers for sorting, A first.
func (t Tier) Rank() int {
	return 5 - t.Weight()
}

// SourceType describes what kind of image a URL serves.
type SourceType string

const (
	SourceSprite   SourceType = "sprite"
	SourceArtwork  SourceType = "artwork"
	SourceFallback SourceType = "fallback"
)

// SpriteCandidate is one URL in an image chain. Lower Priority is preferred.
type SpriteCandidate struct {
	URL      string     `json:"url"`
	Tier     Tier       `json:"tier,omitempty"`
	Type     SourceType `json:"type,omitempty"`
	Verified bool       `json:"verified"`
	Priority int        `json:"priority"`
	Source   string     `json:"source"`
	Category Category   `json:"category,omitempty"`
}

// ImageSet is the outcome of image resolution. Consumers try Primary, then
// Fallback, then Alternatives in order and render Placeholder last.
type ImageSet struct {
	Primary       string            `json:"primary"`
	Fallback      string            `json:"fallback"`
	Alternatives  []string          `json:"alternatives"`
	Placeholder   string            `json:"placeholder"`
	Candidates    []SpriteCandidate `json:"candidates,omitempty"`
	ProcessedName string            `json:"processed_name"`
	BaseName      string            `json:"base_name"`
}

// URLs returns primary, fallback and alternatives as a single ordered list,
// skipping slots filled by the placeholder.
func (s ImageSet) URLs() []string {
	out := make([]string, 0, len(s.Alternatives)+2)
	for _, u := range append([]string{s.Primary, s.Fallback}, s.Alternatives...) {
		if u == "" || u == s.Placeholder {
			continue
		}
		out = append(out, u)
	}
	return out
}

// Clone returns a copy with its own slices.
func (s ImageSet) Clone() ImageSet {
	s.Alternatives = slices.Clone(s.Alternatives)
	s.Candidates = slices.Clone(s.Candidates)
	return s
}
