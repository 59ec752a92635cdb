// Package catalog holds the value types shared by the resolution engine.
package catalog

import "strings"

// Category drives sprite source selection. The zero value is CategoryUnknown.
type Category string

const (
	CategoryUnknown   Category = "unknown"
	CategoryLegendary Category = "legendary"
	CategoryRegular   Category = "regular"
)

// ParseCategory maps a dataset string onto a Category.
func ParseCategory(s string) Category {
	switch Category(strings.ToLower(strings.TrimSpace(s))) {
	case CategoryLegendary:
		return CategoryLegendary
	case CategoryRegular:
		return CategoryRegular
	default:
		return CategoryUnknown
	}
}

// Stat is one named base stat
type Stat struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// Entry is one record of the static reference dataset. Several entries may
// share an ID; exactly one of them has IsVariant false.
type Entry struct {
	ID            int
	NameLocal     *string
	NameCanonical string
	IsVariant     bool
	Stats         []Stat
	Category      Category
}

// Local returns the zh-TW name or "" when the dataset has none.
func (e Entry) Local() string {
	if e.NameLocal == nil {
		return ""
	}
	return *e.NameLocal
}

// StatValue returns the named stat and whether it is present.
func (e Entry) StatValue(name string) (int, bool) {
	for _, s := range e.Stats {
		if s.Name == name {
			return s.Value, true
		}
	}
	return 0, false
}

// NamePair is the bilingual display name.
type NamePair struct {
	Local     string `json:"local"`
	Canonical string `json:"canonical"`
}

// Unknown name labels returned when nothing resolves.
const (
	UnknownLocal     = "未知寶可夢"
	UnknownCanonical = "Unknown Pokemon"
)

// UnknownNames is the sentinel pair for unresolvable input.
func UnknownNames() NamePair {
	return NamePair{Local: UnknownLocal, Canonical: UnknownCanonical}
}

// Identity is the output of name resolution.
type Identity struct {
	ID            int    `json:"id"`
	NameLocal     string `json:"name_local"`
	NameCanonical string `json:"name_canonical"`
	IsVariant     bool   `json:"is_variant"`
}

// Names returns the identity's name pair.
func (i Identity) Names() NamePair {
	return NamePair{Local: i.NameLocal, Canonical: i.NameCanonical}
}
