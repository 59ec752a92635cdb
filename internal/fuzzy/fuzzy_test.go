package fuzzy_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/dex-api/internal/entities/catalog"
	"github.com/KirkDiggler/dex-api/internal/fuzzy"
	"github.com/KirkDiggler/dex-api/internal/refindex"
)

func TestDistance(t *testing.T) {
	assert.Equal(t, 0, fuzzy.Distance("", ""))
	assert.Equal(t, 3, fuzzy.Distance("", "abc"))
	assert.Equal(t, 3, fuzzy.Distance("kitten", "sitting"))
	assert.Equal(t, 1, fuzzy.Distance("皮卡丘", "皮丘"))
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, fuzzy.Similarity("pikachu", "pikachu"))
	assert.Equal(t, 1.0, fuzzy.Similarity("", ""))
	assert.Equal(t, 1.0, fuzzy.Similarity("PikaChu", "pikachu"))
	assert.Less(t, fuzzy.Similarity("abc", "xyz"), 0.34)
	assert.InDelta(t, 4.0/7.0, fuzzy.Similarity("kitten", "sitting"), 1e-9)
}

func TestSpellingVariants(t *testing.T) {
	t.Run("short input is returned as is", func(t *testing.T) {
		assert.Equal(t, []string{"A"}, fuzzy.SpellingVariants("A"))
	})

	t.Run("english corrections then doubling", func(t *testing.T) {
		got := fuzzy.SpellingVariants("Pikachu")
		require.Len(t, got, 9)
		assert.Equal(t, []string{"pikachu", "pikaku", "pikashu"}, got[:3])
		assert.Contains(t, got, "ppikachu")
		assert.Contains(t, got, "pikachhu")
	})

	t.Run("adjacent duplicates collapse", func(t *testing.T) {
		assert.Equal(t, []string{"eevee", "evee", "eeevee", "eevvee", "eeve"}, fuzzy.SpellingVariants("eevee"))
	})

	t.Run("han input uses the pinyin table", func(t *testing.T) {
		got := fuzzy.SpellingVariants("zh皮")
		assert.Contains(t, got, "j皮")
		assert.Contains(t, got, "z皮")
	})

	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, fuzzy.SpellingVariants("charizard"), fuzzy.SpellingVariants("charizard"))
	})
}

func TestMatch(t *testing.T) {
	testCases := []struct {
		name      string
		query     string
		target    string
		wantType  fuzzy.MatchType
		wantScore float64
	}{
		{name: "exact ignores case", query: "pikachu", target: "PIKACHU", wantType: fuzzy.MatchExact, wantScore: 1.0},
		{name: "prefix", query: "pika", target: "Pikachu", wantType: fuzzy.MatchPrefix, wantScore: 0.9},
		{name: "contains", query: "chu", target: "Pikachu", wantType: fuzzy.MatchContains, wantScore: 0.7 * 3 / 7},
		{name: "fuzzy", query: "pikachoo", target: "pikachu", wantType: fuzzy.MatchFuzzy, wantScore: 0.75 * 0.6},
		{name: "variant contains", query: "phire", target: "The Fire Stone", wantType: fuzzy.MatchVariant, wantScore: 0.5 * 4 / 14},
		{name: "no match", query: "zzzz", target: "Pikachu", wantType: fuzzy.MatchNone},
		{name: "empty query", query: "", target: "Pikachu", wantType: fuzzy.MatchNone},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := fuzzy.Match(tc.query, tc.target, fuzzy.DefaultMatchThreshold)
			assert.Equal(t, tc.wantType, got.Type)
			assert.Equal(t, tc.wantType != fuzzy.MatchNone, got.Matched)
			assert.InDelta(t, tc.wantScore, got.Score, 1e-9)
		})
	}
}

type EngineTestSuite struct {
	suite.Suite
	engine  *fuzzy.Engine
	entries []catalog.Entry
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func (s *EngineTestSuite) SetupTest() {
	engine, err := fuzzy.NewEngine(nil)
	s.Require().NoError(err)
	s.engine = engine

	idx, err := refindex.Parse(refindex.DefaultDataset())
	s.Require().NoError(err)
	s.entries = idx.Entries()
}

func (s *EngineTestSuite) TestPrefixOutranksSimilarity() {
	got := s.engine.Suggest("pika", s.entries, 5)
	s.Require().NotEmpty(got)

	s.Equal("Pikachu", got[0].Text)
	s.Equal(25, got[0].ID)
	s.Equal(catalog.LangCanonical, got[0].Lang)
	for _, sug := range got[1:] {
		s.Less(sug.Score, got[0].Score)
		s.NotEqual(string(fuzzy.MatchPrefix), sug.MatchType)
	}
}

func (s *EngineTestSuite) TestLocalNames() {
	got := s.engine.Suggest("皮卡", s.entries, 3)
	s.Require().NotEmpty(got)
	s.Equal("皮卡丘", got[0].Text)
	s.Equal(catalog.LangLocal, got[0].Lang)
}

func (s *EngineTestSuite) TestEmptyQuery() {
	s.Empty(s.engine.Suggest("", s.entries, 5))
}

func (s *EngineTestSuite) TestTruncatesAndDedupes() {
	entries := []catalog.Entry{
		{ID: 1, NameCanonical: "Pikachu"},
		{ID: 2, NameCanonical: "Pikachu"},
		{ID: 3, NameCanonical: "Pikablu"},
	}
	got := s.engine.Suggest("pika", entries, 5)
	s.Require().Len(got, 2)
	s.Equal(1, got[0].ID)

	s.Len(s.engine.Suggest("pika", entries, 1), 1)
}

func (s *EngineTestSuite) TestEqualScoresBreakTiesByID() {
	entries := []catalog.Entry{
		{ID: 30, NameCanonical: "Pikaboo"},
		{ID: 10, NameCanonical: "Pikafoo"},
		{ID: 20, NameCanonical: "Pikazoo"},
	}
	got := s.engine.Suggest("pika", entries, 5)
	s.Require().Len(got, 3)
	s.Equal([]int{10, 20, 30}, []int{got[0].ID, got[1].ID, got[2].ID})
}

func (s *EngineTestSuite) TestEarlyStopIsTunable() {
	var entries []catalog.Entry
	for i := 1; i <= 10; i++ {
		entries = append(entries, catalog.Entry{ID: i, NameCanonical: fmt.Sprintf("pika%d", i)})
	}
	entries = append(entries, catalog.Entry{ID: 99, NameCanonical: "pika"})

	got := s.engine.Suggest("pika", entries, 2)
	s.Require().Len(got, 2)
	s.NotEqual(99, got[0].ID)

	exhaustive, err := fuzzy.NewEngine(&fuzzy.Config{EarlyStopFactor: -1})
	s.Require().NoError(err)
	got = exhaustive.Suggest("pika", entries, 2)
	s.Require().Len(got, 2)
	s.Equal(99, got[0].ID)
	s.Equal(string(fuzzy.MatchExact), got[0].MatchType)
}

func (s *EngineTestSuite) TestInvalidConfig() {
	_, err := fuzzy.NewEngine(&fuzzy.Config{Threshold: 1.5})
	s.Error(err)

	_, err = fuzzy.NewEngine(&fuzzy.Config{MaxSuggestions: -1})
	s.Error(err)
}

func TestRank(t *testing.T) {
	results := []catalog.Suggestion{
		{Text: "Raichu", Score: 0.5, ID: 26},
		{Text: "皮卡丘", Score: 0.9, ID: 25},
		{Text: "Pikachu", Score: 0.5, ID: 25},
		{Text: "皮丘", Score: 0.5, ID: 25},
	}
	fuzzy.Rank(results)

	texts := make([]string, 0, len(results))
	for _, r := range results {
		texts = append(texts, r.Text)
	}
	assert.Equal(t, []string{"皮卡丘", "皮丘", "Pikachu", "Raichu"}, texts)
}

func TestPopularTerms(t *testing.T) {
	terms := fuzzy.PopularTerms()
	require.Len(t, terms, 10)
	assert.Equal(t, "皮卡丘", terms[0].Text)
	assert.Equal(t, 150, terms[9].ID)

	terms[0].Text = "changed"
	assert.Equal(t, "皮卡丘", fuzzy.PopularTerms()[0].Text)
}
