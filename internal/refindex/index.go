// Package refindex builds the in-memory lookup structures over the static
// bilingual reference dataset.
package refindex

import (
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/KirkDiggler/dex-api/internal/entities/catalog"
)

// DatasetVersion identifies the layout of the reference dataset.
const DatasetVersion = "2.0.0"

// MaxSearchResults caps SearchNames.
const MaxSearchResults = 50

// Index is immutable after construction and safe for concurrent use.
type Index struct {
	entries   []catalog.Entry
	byID      map[int][]int
	base      map[int]catalog.NamePair
	canonical map[string]int
	zhTokens  map[rune][]int
	enTokens  map[string][]int
	trie      *patricia.Trie
}

// Build constructs an index from a JSON dataset. A malformed dataset is
// logged and yields an empty index.
func Build(dataset []byte) *Index {
	return build(dataset, slog.Default())
}

// Parse is Build without the fallback.
func Parse(dataset []byte) (*Index, error) {
	entries, err := parseEntries(dataset)
	if err != nil {
		return nil, err
	}
	return fromEntries(entries), nil
}

func build(dataset []byte, logger *slog.Logger) *Index {
	idx, err := Parse(dataset)
	if err != nil {
		logger.Error("failed to load reference dataset, continuing with empty index",
			"error", err)
		return fromEntries(nil)
	}
	logger.Debug("reference index built",
		"entries", idx.Len(),
		"base_forms", idx.BaseCount())
	return idx
}

func fromEntries(entries []catalog.Entry) *Index {
	idx := &Index{
		entries:   entries,
		byID:      make(map[int][]int),
		base:      make(map[int]catalog.NamePair),
		canonical: make(map[string]int),
		zhTokens:  make(map[rune][]int),
		enTokens:  make(map[string][]int),
		trie:      patricia.NewTrie(),
	}

	for i, e := range entries {
		idx.byID[e.ID] = append(idx.byID[e.ID], i)

		if e.NameLocal != nil {
			for _, r := range *e.NameLocal {
				idx.zhTokens[r] = appendUnique(idx.zhTokens[r], e.ID)
			}
		}

		if e.NameCanonical != "" {
			lower := strings.ToLower(e.NameCanonical)
			for _, word := range splitWords(lower) {
				idx.enTokens[word] = appendUnique(idx.enTokens[word], e.ID)
			}
			if _, ok := idx.canonical[lower]; !ok {
				idx.canonical[lower] = i
			}

			key := patricia.Prefix(lower)
			if item := idx.trie.Get(key); item != nil {
				idx.trie.Set(key, appendUnique(item.([]int), e.ID))
			} else {
				idx.trie.Insert(key, []int{e.ID})
			}
		}

		// Only base forms with both names feed the id lookup.
		if !e.IsVariant && e.NameLocal != nil && e.NameCanonical != "" {
			if _, ok := idx.base[e.ID]; !ok {
				idx.base[e.ID] = catalog.NamePair{Local: *e.NameLocal, Canonical: e.NameCanonical}
			}
		}
	}

	return idx
}

// LookupByID returns the base-form name pair for id.
func (idx *Index) LookupByID(id int) (catalog.NamePair, bool) {
	pair, ok := idx.base[id]
	return pair, ok
}

// Category returns the dataset category of the base form of id.
func (idx *Index) Category(id int) catalog.Category {
	positions := idx.byID[id]
	if len(positions) == 0 {
		return catalog.CategoryUnknown
	}
	for _, p := range positions {
		if !idx.entries[p].IsVariant {
			return idx.entries[p].Category
		}
	}
	return idx.entries[positions[0]].Category
}

// AllEntriesForID returns every entry with the id in dataset order.
func (idx *Index) AllEntriesForID(id int) []catalog.Entry {
	positions := idx.byID[id]
	out := make([]catalog.Entry, 0, len(positions))
	for _, p := range positions {
		out = append(out, idx.entries[p])
	}
	return out
}

// FindCanonical returns the first entry whose canonical name equals name,
// ignoring case.
func (idx *Index) FindCanonical(name string) (catalog.Entry, bool) {
	p, ok := idx.canonical[strings.ToLower(name)]
	if !ok {
		return catalog.Entry{}, false
	}
	return idx.entries[p], true
}

// TokensFor returns the sorted ids whose names contain every zh character
// and every Latin word of the query.
func (idx *Index) TokensFor(query string) []int {
	var sets [][]int

	var latin strings.Builder
	for _, r := range query {
		if r > unicode.MaxASCII && !unicode.IsSpace(r) {
			sets = append(sets, idx.zhTokens[r])
			latin.WriteRune(' ')
			continue
		}
		latin.WriteRune(r)
	}
	for _, word := range splitWords(strings.ToLower(latin.String())) {
		sets = append(sets, idx.enTokens[word])
	}

	if len(sets) == 0 {
		return nil
	}

	result := slices.Clone(sets[0])
	for _, set := range sets[1:] {
		result = intersect(result, set)
		if len(result) == 0 {
			return nil
		}
	}
	slices.Sort(result)
	return slices.Compact(result)
}

// PrefixIDs returns the sorted ids whose lowercase canonical name starts
// with prefix.
func (idx *Index) PrefixIDs(prefix string) []int {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return nil
	}

	var ids []int
	_ = idx.trie.VisitSubtree(patricia.Prefix(prefix), func(_ patricia.Prefix, item patricia.Item) error {
		for _, id := range item.([]int) {
			ids = appendUnique(ids, id)
		}
		return nil
	})
	slices.Sort(ids)
	return ids
}

// SuggestCandidates returns every entry with the ids whose canonical name
// starts with query moved to the front, dataset order kept otherwise.
func (idx *Index) SuggestCandidates(query string) []catalog.Entry {
	entries := idx.Entries()
	prefixed := idx.PrefixIDs(query)
	if len(prefixed) == 0 {
		return entries
	}

	slices.SortStableFunc(entries, func(a, b catalog.Entry) int {
		return prefixRank(prefixed, a.ID) - prefixRank(prefixed, b.ID)
	})
	return entries
}

func prefixRank(sorted []int, id int) int {
	if _, ok := slices.BinarySearch(sorted, id); ok {
		return 0
	}
	return 1
}

// SearchNames returns entries whose zh or en name contains query, plus
// every other form of the matched ids. When nothing contains the query,
// ids holding every token of it are used instead. Base forms sort first within an
// id. At most MaxSearchResults entries are returned.
func (idx *Index) SearchNames(query string) []catalog.Entry {
	if query == "" {
		return nil
	}
	lower := strings.ToLower(query)

	seen := make(map[string]struct{})
	var results []catalog.Entry
	var matchedIDs []int

	add := func(e catalog.Entry) bool {
		key := entryKey(e)
		if _, ok := seen[key]; ok {
			return false
		}
		seen[key] = struct{}{}
		results = append(results, e)
		return true
	}

	for _, e := range idx.entries {
		zh := strings.ToLower(e.Local())
		en := strings.ToLower(e.NameCanonical)
		if strings.Contains(zh, lower) || strings.Contains(en, lower) {
			if add(e) {
				matchedIDs = appendUnique(matchedIDs, e.ID)
			}
		}
	}

	// Word order and spacing differ from the dataset ("charizard mega x").
	if len(matchedIDs) == 0 {
		matchedIDs = idx.TokensFor(query)
	}

	for _, id := range matchedIDs {
		for _, e := range idx.AllEntriesForID(id) {
			add(e)
		}
	}

	slices.SortStableFunc(results, func(a, b catalog.Entry) int {
		if a.ID != b.ID {
			return a.ID - b.ID
		}
		return boolRank(a.IsVariant) - boolRank(b.IsVariant)
	})

	if len(results) > MaxSearchResults {
		results = results[:MaxSearchResults]
	}
	return results
}

// Entries returns every entry in dataset order.
func (idx *Index) Entries() []catalog.Entry {
	return slices.Clone(idx.entries)
}

// Len is the total number of entries.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// BaseCount is the number of ids with a complete base-form name pair.
func (idx *Index) BaseCount() int {
	return len(idx.base)
}

// Version reports the dataset layout version.
func (idx *Index) Version() string {
	return DatasetVersion
}

func entryKey(e catalog.Entry) string {
	return strconv.Itoa(e.ID) + "-" + e.NameCanonical
}

func splitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '-'
	})
}

func appendUnique(ids []int, id int) []int {
	if slices.Contains(ids, id) {
		return ids
	}
	return append(ids, id)
}

func intersect(a, b []int) []int {
	out := a[:0]
	for _, id := range a {
		if slices.Contains(b, id) {
			out = append(out, id)
		}
	}
	return out
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}
