package refindex_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/dex-api/internal/entities/catalog"
	"github.com/KirkDiggler/dex-api/internal/errors"
	"github.com/KirkDiggler/dex-api/internal/refindex"
)

type IndexTestSuite struct {
	suite.Suite
	idx *refindex.Index
}

func TestIndexSuite(t *testing.T) {
	suite.Run(t, new(IndexTestSuite))
}

func (s *IndexTestSuite) SetupSuite() {
	idx, err := refindex.Parse(refindex.DefaultDataset())
	s.Require().NoError(err)
	s.idx = idx
}

func (s *IndexTestSuite) TestLookupByID() {
	pair, ok := s.idx.LookupByID(25)
	s.Require().True(ok)
	s.Equal(catalog.NamePair{Local: "皮卡丘", Canonical: "Pikachu"}, pair)

	pair, ok = s.idx.LookupByID(800)
	s.Require().True(ok)
	s.Equal("Necrozma", pair.Canonical)

	_, ok = s.idx.LookupByID(9999)
	s.False(ok)
}

func (s *IndexTestSuite) TestCategory() {
	s.Equal(catalog.CategoryLegendary, s.idx.Category(1007))
	s.Equal(catalog.CategoryRegular, s.idx.Category(25))
	s.Equal(catalog.CategoryUnknown, s.idx.Category(9999))
}

func (s *IndexTestSuite) TestAllEntriesForIDKeepsDatasetOrder() {
	entries := s.idx.AllEntriesForID(741)
	s.Require().Len(entries, 4)
	s.False(entries[0].IsVariant)
	s.Equal("Oricorio (Baile Style)", entries[0].NameCanonical)
	s.Equal("Oricorio (Sensu Style)", entries[3].NameCanonical)

	s.Empty(s.idx.AllEntriesForID(9999))
}

func (s *IndexTestSuite) TestStatsKeepKeyOrder() {
	entries := s.idx.AllEntriesForID(999)
	s.Require().Len(entries, 2)

	names := make([]string, 0, len(entries[0].Stats))
	for _, st := range entries[0].Stats {
		names = append(names, st.Name)
	}
	s.Equal([]string{"hp", "attack", "defense", "special-attack", "special-defense", "speed"}, names)

	speed, ok := entries[1].StatValue("speed")
	s.True(ok)
	s.Equal(80, speed)
}

func (s *IndexTestSuite) TestTokensFor() {
	testCases := []struct {
		name  string
		query string
		want  []int
	}{
		{name: "single zh char", query: "皮", want: []int{25, 35, 172}},
		{name: "zh intersection", query: "皮卡丘", want: []int{25}},
		{name: "latin word", query: "Pikachu", want: []int{25}},
		{name: "hyphenated words", query: "ho-oh", want: []int{250}},
		{name: "shared word", query: "mega", want: []int{3, 6}},
		{name: "unknown token", query: "zzzz", want: nil},
		{name: "empty", query: "", want: nil},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.want, s.idx.TokensFor(tc.query))
		})
	}
}

func (s *IndexTestSuite) TestPrefixIDs() {
	s.Equal([]int{25}, s.idx.PrefixIDs("pika"))
	s.Equal([]int{800}, s.idx.PrefixIDs("NECRO"))
	s.Equal([]int{3, 6}, s.idx.PrefixIDs("mega "))
	s.Nil(s.idx.PrefixIDs(""))
}

func (s *IndexTestSuite) TestSearchNames() {
	s.Run("includes every form of a matched id", func() {
		results := s.idx.SearchNames("雷丘")
		s.Require().Len(results, 2)
		s.Equal("Raichu", results[0].NameCanonical)
		s.Equal("Alolan Raichu", results[1].NameCanonical)
	})

	s.Run("base forms sort first", func() {
		results := s.idx.SearchNames("Sensu")
		s.Require().Len(results, 4)
		s.False(results[0].IsVariant)
		for _, e := range results {
			s.Equal(741, e.ID)
		}
	})

	s.Run("sorted by id", func() {
		results := s.idx.SearchNames("皮")
		s.Require().NotEmpty(results)
		for i := 1; i < len(results); i++ {
			s.LessOrEqual(results[i-1].ID, results[i].ID)
		}
	})

	s.Run("entries without a local name still match", func() {
		results := s.idx.SearchNames("partner")
		s.Require().Len(results, 2)
		s.Equal("Eevee", results[0].NameCanonical)
		s.Nil(results[1].NameLocal)
	})

	s.Run("token fallback ignores word order", func() {
		results := s.idx.SearchNames("charizard mega")
		s.Require().NotEmpty(results)
		for _, e := range results {
			s.Equal(6, e.ID)
		}
		s.False(results[0].IsVariant)
	})

	s.Run("unknown tokens stay empty", func() {
		s.Empty(s.idx.SearchNames("zzzz qqqq"))
	})

	s.Run("empty query", func() {
		s.Empty(s.idx.SearchNames(""))
	})
}

func (s *IndexTestSuite) TestSuggestCandidates() {
	s.Run("prefix hits move to the front", func() {
		entries := s.idx.SuggestCandidates("necro")
		s.Require().Len(entries, s.idx.Len())
		s.Equal(800, entries[0].ID)
		for _, e := range entries[len(s.idx.AllEntriesForID(800)):] {
			s.NotEqual(800, e.ID)
		}
	})

	s.Run("no prefix keeps dataset order", func() {
		s.Equal(s.idx.Entries(), s.idx.SuggestCandidates("皮卡"))
	})
}

func (s *IndexTestSuite) TestFindCanonical() {
	e, ok := s.idx.FindCanonical("necrozma(dusk mane)")
	s.Require().True(ok)
	s.Equal(800, e.ID)
	s.True(e.IsVariant)

	_, ok = s.idx.FindCanonical("missingno")
	s.False(ok)
}

func (s *IndexTestSuite) TestCounts() {
	s.Greater(s.idx.Len(), s.idx.BaseCount())
	s.Equal(refindex.DatasetVersion, s.idx.Version())
}

func TestParseMalformedDataset(t *testing.T) {
	_, err := refindex.Parse([]byte(`{"not": "a list"}`))
	require.Error(t, err)
	assert.True(t, errors.IsDataLoss(err))

	_, err = refindex.Parse([]byte(`[{"id": 0, "name_en": "Nothing"}]`))
	require.Error(t, err)
}

func TestBuildMalformedDatasetYieldsEmptyIndex(t *testing.T) {
	input := []byte(`[{"id": "broken"`)
	original := append([]byte(nil), input...)

	idx := refindex.Build(input)

	require.NotNil(t, idx)
	assert.Equal(t, 0, idx.Len())
	assert.Empty(t, idx.SearchNames("pika"))
	assert.Equal(t, original, input)
}

func TestLoaderBuildsOnce(t *testing.T) {
	loader := refindex.NewLoader(&refindex.LoaderConfig{
		Dataset: []byte(`[{"id": 1, "name_zh_tw": "妙蛙種子", "name_en": "Bulbasaur", "is_variant": false}]`),
	})

	var wg sync.WaitGroup
	results := make([]*refindex.Index, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = loader.Load(context.Background())
		}(i)
	}
	wg.Wait()

	for _, idx := range results {
		assert.Same(t, results[0], idx)
	}
	assert.Equal(t, 1, results[0].Len())
}

func TestLoaderDefaultsToEmbeddedDataset(t *testing.T) {
	idx := refindex.NewLoader(nil).Load(context.Background())
	_, ok := idx.LookupByID(150)
	assert.True(t, ok)
}
