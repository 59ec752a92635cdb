package sprites_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/dex-api/internal/cache"
	"github.com/KirkDiggler/dex-api/internal/entities/catalog"
	"github.com/KirkDiggler/dex-api/internal/sprites"
)

type ResolverTestSuite struct {
	suite.Suite
	resolver *sprites.Resolver
	cache    *cache.Cache[catalog.ImageSet]
}

func TestResolverSuite(t *testing.T) {
	suite.Run(t, new(ResolverTestSuite))
}

func (s *ResolverTestSuite) SetupTest() {
	c, err := cache.New[catalog.ImageSet](&cache.Config{Name: "sprites"})
	s.Require().NoError(err)
	s.cache = c
	s.resolver = sprites.New(&sprites.Config{Cache: c})
}

func (s *ResolverTestSuite) assertNoDuplicateURLs(set catalog.ImageSet) {
	seen := map[string]bool{}
	for _, c := range set.Candidates {
		s.False(seen[c.URL], "duplicate url %s", c.URL)
		seen[c.URL] = true
	}
	for i := 1; i < len(set.Candidates); i++ {
		s.LessOrEqual(set.Candidates[i-1].Priority, set.Candidates[i].Priority)
	}
}

func (s *ResolverTestSuite) TestRegularEntry() {
	set := s.resolver.Resolve(25, "Pikachu", "")

	s.Equal("https://img.pokemondb.net/sprites/scarlet-violet/icon/pikachu.png", set.Primary)
	s.Equal("https://img.pokemondb.net/sprites/sword-shield/icon/pikachu.png", set.Fallback)
	s.Contains(set.Alternatives, "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/25.png")
	s.Len(set.Candidates, 6)
	s.Equal("pikachu", set.ProcessedName)
	s.True(strings.HasPrefix(set.Placeholder, "data:image/svg+xml"))
	s.assertNoDuplicateURLs(set)
}

func (s *ResolverTestSuite) TestLegendaryGetsArtwork() {
	set := s.resolver.Resolve(150, "Mewtwo", "")

	s.GreaterOrEqual(len(set.Candidates), 3)
	s.Contains(set.Alternatives, "https://img.pokemondb.net/artwork/large/mewtwo.jpg")
	s.assertNoDuplicateURLs(set)
}

func (s *ResolverTestSuite) TestMappedFormIsPreferred() {
	set := s.resolver.Resolve(800, "Necrozma(Dusk Mane)", "")

	s.Equal("https://pokemon.wingzero.tw/assets/pokemon/800_dm.png", set.Primary)
	s.Equal("https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/800.png", set.Fallback)
	s.Equal("mapped-A-sprite", set.Candidates[0].Source)
	s.Equal(catalog.CategoryLegendary, set.Candidates[0].Category)
	s.True(set.Candidates[0].Verified)
	s.Equal("necrozma-dusk-mane", set.ProcessedName)
	s.Equal("necrozma", set.BaseName)
	s.Contains(set.Alternatives, "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/other/official-artwork/800.png")
	s.assertNoDuplicateURLs(set)
}

func (s *ResolverTestSuite) TestRegularCategoryTruncatesSources() {
	set := s.resolver.Resolve(741, "Oricorio (Sensu Style)", "")

	s.Equal("https://pokemon.wingzero.tw/assets/pokemon/741_se.png", set.Primary)
	s.Equal("https://serebii.net/sunmoon/pokemon/741-se.png", set.Fallback)

	mapped := 0
	for _, c := range set.Candidates {
		if strings.HasPrefix(c.Source, "mapped-") {
			mapped++
		}
	}
	s.Equal(3, mapped)
	s.assertNoDuplicateURLs(set)
}

func (s *ResolverTestSuite) TestExplicitForm() {
	set := s.resolver.Resolve(741, "Oricorio", "pom-pom")
	s.Equal("https://pokemon.wingzero.tw/assets/pokemon/741_pp.png", set.Primary)

	set = s.resolver.Resolve(741, "Oricorio", "unknown-form")
	s.Equal("https://pokemon.wingzero.tw/assets/pokemon/741.png", set.Primary)
}

func (s *ResolverTestSuite) TestNothingKnownUsesPlaceholder() {
	set := s.resolver.Resolve(0, "", "")

	s.Empty(set.Candidates)
	s.Equal(set.Placeholder, set.Primary)
	s.Equal(set.Placeholder, set.Fallback)
	s.Empty(set.Alternatives)
}

func (s *ResolverTestSuite) TestIdempotent() {
	first := s.resolver.Resolve(745, "Lycanroc (MidNight)", "")
	second := s.resolver.Resolve(745, "Lycanroc (MidNight)", "")
	s.Equal(first, second)

	uncached := sprites.New(nil).Resolve(745, "Lycanroc (MidNight)", "")
	s.Equal(first, uncached)
}

func (s *ResolverTestSuite) TestCachedResultsAreIsolated() {
	first := s.resolver.Resolve(25, "Pikachu", "")
	s.Equal(1, s.cache.Len())

	first.Alternatives[0] = "mutated"
	second := s.resolver.Resolve(25, "Pikachu", "")
	s.NotEqual("mutated", second.Alternatives[0])

	s.resolver.ClearCache()
	s.Equal(0, s.cache.Len())
}

func (s *ResolverTestSuite) TestPlaceholder() {
	s.Equal(sprites.SearchErrorPlaceholder, sprites.Placeholder("pikachu", true))

	p := sprites.Placeholder("bulbasaur", false)
	s.True(strings.HasPrefix(p, "data:image/svg+xml;charset=UTF-8,"))
	s.Contains(p, "BULBASAU")
	s.NotContains(p, "BULBASAUR")

	s.Contains(sprites.Placeholder("", false), "POKEMON")
}

func (s *ResolverTestSuite) TestDatasetLegendaryGetsArtwork() {
	sources := func(set catalog.ImageSet) []string {
		var out []string
		for _, c := range set.Candidates {
			out = append(out, c.Source)
		}
		return out
	}

	plain := sprites.New(nil).Resolve(1007, "Koraidon", "")
	s.NotContains(sources(plain), "pokemondb-legendary-artwork")

	r := sprites.New(&sprites.Config{Categories: func(id int) catalog.Category {
		if id == 1007 {
			return catalog.CategoryLegendary
		}
		return catalog.CategoryRegular
	}})
	set := r.Resolve(1007, "Koraidon", "")
	s.Contains(sources(set), "pokemondb-legendary-artwork")
	s.Contains(set.Alternatives, "https://img.pokemondb.net/artwork/large/koraidon.jpg")

	s.Contains(sources(r.Resolve(150, "Mewtwo", "")), "pokemondb-legendary-artwork")
	s.NotContains(sources(r.Resolve(25, "Pikachu", "")), "pokemondb-legendary-artwork")
}

func (s *ResolverTestSuite) TestCustomMappings() {
	r := sprites.New(&sprites.Config{Mappings: map[int]sprites.SpeciesMapping{
		25: {
			Name: "Pikachu",
			Forms: map[string]sprites.FormMapping{
				"base": {
					SpriteName: "pikachu",
					Sources: []sprites.Source{
						{URL: "https://example.test/c.png", Tier: catalog.TierC, Type: catalog.SourceSprite},
						{URL: "https://example.test/a.png", Tier: catalog.TierA, Type: catalog.SourceSprite},
					},
				},
			},
		},
	}})

	set := r.Resolve(25, "Pikachu", "")
	s.Equal("https://example.test/a.png", set.Primary)
	s.Equal("https://example.test/c.png", set.Fallback)
	s.Equal(catalog.CategoryUnknown, set.Candidates[0].Category)

	_, ok := r.Mapping(800)
	s.False(ok)
}
