package fuzzy

import (
	"strings"
	"unicode"
)

type correction struct {
	from string
	to   []string
}

// Common romanization slips for zh queries typed phonetically.
var pinyinCorrections = []correction{
	{"z", []string{"zh", "j"}},
	{"zh", []string{"z", "j"}},
	{"c", []string{"ch", "q"}},
	{"ch", []string{"c", "q"}},
	{"s", []string{"sh", "x"}},
	{"sh", []string{"s", "x"}},
	{"n", []string{"l"}},
	{"l", []string{"n"}},
	{"r", []string{"l"}},
	{"an", []string{"ang"}},
	{"ang", []string{"an"}},
	{"en", []string{"eng"}},
	{"eng", []string{"en"}},
	{"in", []string{"ing"}},
	{"ing", []string{"in"}},
	{"un", []string{"ong"}},
	{"ong", []string{"un"}},
}

var englishCorrections = []correction{
	{"ph", []string{"f"}},
	{"ck", []string{"k"}},
	{"qu", []string{"kw", "q"}},
	{"x", []string{"ks"}},
	{"ch", []string{"k", "sh"}},
	{"sh", []string{"ch"}},
	{"th", []string{"t", "d"}},
	{"oo", []string{"u"}},
	{"ou", []string{"ow"}},
	{"ow", []string{"ou"}},
	{"ei", []string{"ai"}},
	{"ai", []string{"ei"}},
}

// SpellingVariants returns the lowercased query followed by plausible
// misspellings of it. Only the first occurrence of a pattern is replaced.
// Queries longer than three runes also get each adjacent duplicate
// collapsed or each rune doubled.
func SpellingVariants(query string) []string {
	if len([]rune(query)) < 2 {
		return []string{query}
	}

	lower := strings.ToLower(query)
	seen := map[string]struct{}{lower: {}}
	out := []string{lower}
	add := func(v string) {
		if _, ok := seen[v]; ok {
			return
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}

	table := englishCorrections
	if hasHan(query) {
		table = pinyinCorrections
	}
	for _, c := range table {
		if !strings.Contains(lower, c.from) {
			continue
		}
		for _, to := range c.to {
			add(strings.Replace(lower, c.from, to, 1))
		}
	}

	runes := []rune(lower)
	if len(runes) > 3 {
		for i := 0; i < len(runes)-1; i++ {
			if runes[i] == runes[i+1] {
				add(string(runes[:i]) + string(runes[i+1:]))
			} else {
				add(string(runes[:i+1]) + string(runes[i]) + string(runes[i+1:]))
			}
		}
	}

	return out
}

func hasHan(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}
