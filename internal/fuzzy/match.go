package fuzzy

import "strings"

// MatchType labels which rule produced a score.
type MatchType string

const (
	MatchNone         MatchType = "none"
	MatchExact        MatchType = "exact"
	MatchPrefix       MatchType = "prefix"
	MatchContains     MatchType = "contains"
	MatchFuzzy        MatchType = "fuzzy"
	MatchVariant      MatchType = "variant"
	MatchVariantFuzzy MatchType = "variant_fuzzy"
)

// DefaultMatchThreshold is the similarity floor used by Match callers that
// have no better value.
const DefaultMatchThreshold = 0.6

// Result of scoring one query against one target.
type Result struct {
	Matched bool
	Score   float64
	Type    MatchType
}

// Match scores query against target. Earlier rules always outrank later
// ones: exact, prefix, substring, similarity, then spelling variants.
func Match(query, target string, threshold float64) Result {
	if query == "" || target == "" {
		return Result{Type: MatchNone}
	}

	q := strings.ToLower(query)
	t := strings.ToLower(target)
	tLen := float64(runeLen(t))

	switch {
	case q == t:
		return Result{Matched: true, Score: 1.0, Type: MatchExact}
	case strings.HasPrefix(t, q):
		return Result{Matched: true, Score: 0.9, Type: MatchPrefix}
	case strings.Contains(t, q):
		return Result{Matched: true, Score: 0.7 * float64(runeLen(q)) / tLen, Type: MatchContains}
	}

	if sim := Similarity(q, t); sim >= threshold {
		return Result{Matched: true, Score: sim * 0.6, Type: MatchFuzzy}
	}

	for _, v := range SpellingVariants(q) {
		if strings.Contains(t, v) {
			return Result{Matched: true, Score: 0.5 * float64(runeLen(v)) / tLen, Type: MatchVariant}
		}
		if sim := Similarity(v, t); sim >= threshold {
			return Result{Matched: true, Score: sim * 0.4, Type: MatchVariantFuzzy}
		}
	}

	return Result{Type: MatchNone}
}

func runeLen(s string) int {
	return len([]rune(s))
}
