package refindex

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/KirkDiggler/dex-api/internal/entities/catalog"
	"github.com/KirkDiggler/dex-api/internal/errors"
)

//go:embed data/catalog.json
var defaultDataset []byte

// DefaultDataset returns a copy of the embedded reference dataset.
func DefaultDataset() []byte {
	return bytes.Clone(defaultDataset)
}

type rawEntry struct {
	ID        int          `json:"id"`
	NameLocal *string      `json:"name_zh_tw"`
	NameEn    string       `json:"name_en"`
	IsVariant bool         `json:"is_variant"`
	Stats     orderedStats `json:"stats"`
	Category  string       `json:"category"`
}

// orderedStats keeps the key order of the stats object.
type orderedStats []catalog.Stat

func (s *orderedStats) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("stats: expected object, got %v", tok)
	}

	var out orderedStats
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("stats: unexpected key %v", keyTok)
		}
		var value int
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("stats.%s: %w", key, err)
		}
		out = append(out, catalog.Stat{Name: key, Value: value})
	}

	*s = out
	return nil
}

func parseEntries(dataset []byte) ([]catalog.Entry, error) {
	var raw []rawEntry
	if err := json.Unmarshal(dataset, &raw); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "malformed reference dataset")
	}

	entries := make([]catalog.Entry, 0, len(raw))
	for i, r := range raw {
		if r.ID <= 0 {
			return nil, errors.DataLossf("reference dataset entry %d has invalid id %d", i, r.ID)
		}
		entries = append(entries, catalog.Entry{
			ID:            r.ID,
			NameLocal:     r.NameLocal,
			NameCanonical: r.NameEn,
			IsVariant:     r.IsVariant,
			Stats:         []catalog.Stat(r.Stats),
			Category:      catalog.ParseCategory(r.Category),
		})
	}
	return entries, nil
}
