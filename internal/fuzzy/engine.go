package fuzzy

import (
	"slices"

	"github.com/KirkDiggler/dex-api/internal/entities/catalog"
	"github.com/KirkDiggler/dex-api/internal/errors"
)

// Defaults for Config
const (
	DefaultSuggestThreshold = 0.4
	DefaultEarlyStopFactor  = 2
	DefaultNearPerfectScore = 0.9
	DefaultMaxSuggestions   = 5
)

// Config tunes suggestion scanning. Zero values take the defaults.
type Config struct {
	Threshold float64
	// EarlyStopFactor stops the scan once EarlyStopFactor*max suggestions
	// are held and at least max of them score NearPerfectScore or more.
	// A negative value disables early termination.
	EarlyStopFactor  int
	NearPerfectScore float64
	MaxSuggestions   int
}

// Validate checks the tunables are in range
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateUnitInterval("Threshold", c.Threshold, vb)
	errors.ValidateUnitInterval("NearPerfectScore", c.NearPerfectScore, vb)
	if c.MaxSuggestions < 0 {
		vb.Fieldf("MaxSuggestions", "must not be negative, got %d", c.MaxSuggestions)
	}
	return vb.Build()
}

// Engine is stateless after construction and safe for concurrent use.
type Engine struct {
	threshold   float64
	stopFactor  int
	nearPerfect float64
	max         int
}

// NewEngine applies defaults to cfg. A nil cfg uses all defaults.
func NewEngine(cfg *Config) (*Engine, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid fuzzy config")
	}

	e := &Engine{
		threshold:   cfg.Threshold,
		stopFactor:  cfg.EarlyStopFactor,
		nearPerfect: cfg.NearPerfectScore,
		max:         cfg.MaxSuggestions,
	}
	if e.threshold == 0 {
		e.threshold = DefaultSuggestThreshold
	}
	if e.stopFactor == 0 {
		e.stopFactor = DefaultEarlyStopFactor
	}
	if e.nearPerfect == 0 {
		e.nearPerfect = DefaultNearPerfectScore
	}
	if e.max == 0 {
		e.max = DefaultMaxSuggestions
	}
	return e, nil
}

// MaxSuggestions is the limit used when Suggest is given max <= 0.
func (e *Engine) MaxSuggestions() int {
	return e.max
}

// Suggest scores the zh and en names of entries against query and returns
// at most max suggestions in Rank order. Equal texts are suggested once.
func (e *Engine) Suggest(query string, entries []catalog.Entry, max int) []catalog.Suggestion {
	if query == "" {
		return nil
	}
	if max <= 0 {
		max = e.max
	}

	var out []catalog.Suggestion
	seen := make(map[string]struct{})
	nearPerfect := 0

	consider := func(text string, lang catalog.Lang, id int) {
		if text == "" {
			return
		}
		if _, ok := seen[text]; ok {
			return
		}
		res := Match(query, text, e.threshold)
		if !res.Matched {
			return
		}
		seen[text] = struct{}{}
		out = append(out, catalog.Suggestion{
			Text:      text,
			Lang:      lang,
			Score:     res.Score,
			MatchType: string(res.Type),
			ID:        id,
		})
		if res.Score >= e.nearPerfect {
			nearPerfect++
		}
	}

	for _, entry := range entries {
		if e.stopFactor > 0 && len(out) >= max*e.stopFactor && nearPerfect >= max {
			break
		}
		consider(entry.Local(), catalog.LangLocal, entry.ID)
		consider(entry.NameCanonical, catalog.LangCanonical, entry.ID)
	}

	Rank(out)
	if len(out) > max {
		out = out[:max]
	}
	return out
}

// Rank sorts in place by score descending, then id ascending, then shorter
// text first.
func Rank(results []catalog.Suggestion) {
	slices.SortStableFunc(results, func(a, b catalog.Suggestion) int {
		if c := compareScore(a.Score, b.Score); c != 0 {
			return c
		}
		if a.ID != b.ID {
			return a.ID - b.ID
		}
		return runeLen(a.Text) - runeLen(b.Text)
	})
}

func compareScore(a, b float64) int {
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	default:
		return 0
	}
}

var popularTerms = []catalog.Suggestion{
	{Text: "皮卡丘", Lang: catalog.LangLocal, ID: 25},
	{Text: "Pikachu", Lang: catalog.LangCanonical, ID: 25},
	{Text: "妙蛙種子", Lang: catalog.LangLocal, ID: 1},
	{Text: "Bulbasaur", Lang: catalog.LangCanonical, ID: 1},
	{Text: "小火龍", Lang: catalog.LangLocal, ID: 4},
	{Text: "Charmander", Lang: catalog.LangCanonical, ID: 4},
	{Text: "傑尼龜", Lang: catalog.LangLocal, ID: 7},
	{Text: "Squirtle", Lang: catalog.LangCanonical, ID: 7},
	{Text: "超夢", Lang: catalog.LangLocal, ID: 150},
	{Text: "Mewtwo", Lang: catalog.LangCanonical, ID: 150},
}

// PopularTerms returns the suggestions shown for an empty search box.
func PopularTerms() []catalog.Suggestion {
	return slices.Clone(popularTerms)
}
