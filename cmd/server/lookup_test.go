package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/dex-api/internal/entities/catalog"
	"github.com/KirkDiggler/dex-api/internal/testutils"
)

func TestWriteResults(t *testing.T) {
	t.Run("table", func(t *testing.T) {
		variant := testutils.CreateTestPokemon(26, "雷丘(阿羅拉的樣子)", "Alolan Raichu")
		variant.IsVariant = true

		var buf bytes.Buffer
		err := writeResults(&buf, []*catalog.Pokemon{
			testutils.CreateTestPokemon(25, "皮卡丘", "Pikachu"),
			variant,
		}, true)
		require.NoError(t, err)

		out := buf.String()
		assert.Contains(t, out, "offline")
		assert.Contains(t, out, "皮卡丘")
		assert.Contains(t, out, "雷丘(阿羅拉的樣子) *")
		assert.Contains(t, out, "電")
	})

	t.Run("empty", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeResults(&buf, nil, false))
		assert.Equal(t, "No results\n", buf.String())
	})
}

func TestWriteJSONKeepsLocalText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, []catalog.Suggestion{{Text: "皮卡丘", Lang: catalog.LangLocal, ID: 25}}))

	assert.Contains(t, buf.String(), "皮卡丘")

	var got []catalog.Suggestion
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 25, got[0].ID)
}

func TestWriteImages(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeImages(&buf, catalog.ImageSet{
		Primary:      "https://img/a.png",
		Fallback:     "https://img/b.png",
		Alternatives: []string{"https://img/c.png"},
		Placeholder:  "/pokemonBall.svg",
	}))

	out := buf.String()
	assert.Contains(t, out, "primary:     https://img/a.png")
	assert.Contains(t, out, "alt[0]:      https://img/c.png")
	assert.Contains(t, out, "placeholder: /pokemonBall.svg")
}

func TestWriteSuggestions(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeSuggestions(&buf, []catalog.Suggestion{
		{Text: "Pikachu", Lang: catalog.LangCanonical, Score: 0.9, MatchType: "prefix", ID: 25},
	}))
	assert.Contains(t, buf.String(), "0.90")
	assert.Contains(t, buf.String(), "prefix")
}
