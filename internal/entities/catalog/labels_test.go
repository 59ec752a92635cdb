package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/dex-api/internal/entities/catalog"
)

func TestRequirementText(t *testing.T) {
	testCases := []struct {
		name  string
		stage catalog.EvolutionStage
		want  string
	}{
		{name: "base stage", stage: catalog.EvolutionStage{}, want: "基本型態"},
		{name: "level", stage: catalog.EvolutionStage{Trigger: "level-up", MinLevel: 16}, want: "等級 16"},
		{
			name:  "friendship at night",
			stage: catalog.EvolutionStage{Trigger: "level-up", MinHappiness: 160, TimeOfDay: "night"},
			want:  "親密度 160，夜晚",
		},
		{name: "stone", stage: catalog.EvolutionStage{Trigger: "use-item", Item: "thunder-stone"}, want: "使用 雷之石"},
		{name: "trade holding", stage: catalog.EvolutionStage{Trigger: "trade", Item: "metal-coat"}, want: "交換，攜帶 金屬膜"},
		{name: "bare level-up", stage: catalog.EvolutionStage{Trigger: "level-up"}, want: "進化條件"},
		{name: "other", stage: catalog.EvolutionStage{Trigger: "shed"}, want: "特殊條件"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, catalog.RequirementText(tc.stage))
		})
	}
}

func TestTierWeight(t *testing.T) {
	assert.Equal(t, 4, catalog.TierA.Weight())
	assert.Equal(t, 1, catalog.TierD.Weight())
	assert.Equal(t, 1, catalog.Tier("Z").Weight())
	assert.Less(t, catalog.TierA.Rank(), catalog.TierC.Rank())
}

func TestParseCategory(t *testing.T) {
	assert.Equal(t, catalog.CategoryLegendary, catalog.ParseCategory("Legendary"))
	assert.Equal(t, catalog.CategoryRegular, catalog.ParseCategory("regular"))
	assert.Equal(t, catalog.CategoryUnknown, catalog.ParseCategory(""))
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "電", catalog.TypeLabel("Electric"))
	assert.Equal(t, "shadow", catalog.TypeLabel("shadow"))
	assert.Equal(t, "oval-stone", catalog.ItemLabel("oval-stone"))
}
