package sprites_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/dex-api/internal/sprites"
)

func TestSlug(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{in: "Pikachu", want: "pikachu"},
		{in: "Mr. Mime", want: "mr-mime"},
		{in: "Farfetch'd", want: "farfetchd"},
		{in: "Nidoran♀", want: "nidoran"},
		{in: "  Tapu  Koko ", want: "tapu-koko"},
		{in: "Type: Null", want: "type-null"},
		{in: "", want: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, sprites.Slug(tc.in))
		})
	}
}

func TestProcessFormName(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{in: "Necrozma(Dusk Mane)", want: "necrozma-dusk-mane"},
		{in: "Necrozma(Dawn Wings)", want: "necrozma-dawn-wings"},
		{in: "Necrozma (Ultra)", want: "necrozma-ultra"},
		{in: "Oricorio (Sensu Style)", want: "oricorio-baile"},
		{in: "Lycanroc (MidNight)", want: "lycanroc-midnight"},
		{in: "Lycanroc (Midday)", want: "lycanroc-midday"},
		{in: "Wishiwashi(School)", want: "wishiwashi-school"},
		{in: "Minior(Red core)", want: "minior-red-meteor"},
		{in: "Zygarde (50% )", want: "zygarde-50"},
		{in: "Zygarde(10%)", want: "zygarde-10"},
		{in: "Zygarde(100%)", want: "zygarde-complete"},
		{in: "Ogerpon(Teal Mask)", want: "ogerpon-teal-mask"},
		{in: "Mr. Mime", want: "mr-mime"},
		{in: "Alolan Raichu", want: "raichu-alola"},
		{in: "Great Tusk", want: "great-tusk"},
		{in: "Necrozma", want: "necrozma"},
		{in: "Charizard", want: "charizard"},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, sprites.ProcessFormName(tc.in))
		})
	}
}

func TestApplySpecialMappings(t *testing.T) {
	assert.Equal(t, "flabebe", sprites.ApplySpecialMappings("Flabébé"))
	assert.Equal(t, "type-null", sprites.ApplySpecialMappings("Type: Null"))
	assert.Equal(t, "oricorio-baile", sprites.ApplySpecialMappings("Oricorio Sensu Style"))
	assert.Equal(t, "zygarde-10", sprites.ApplySpecialMappings("zygarde 10%"))
	assert.Equal(t, "weezing-galar", sprites.ApplySpecialMappings("Galarian Weezing"))
	assert.Equal(t, "pikachu", sprites.ApplySpecialMappings("Pikachu"))
	assert.Equal(t, "", sprites.ApplySpecialMappings(""))
}

func TestInferForm(t *testing.T) {
	assert.Equal(t, "dusk", sprites.InferForm("Necrozma(Dusk Mane)"))
	assert.Equal(t, "dusk", sprites.InferForm("Lycanroc (Dusk)"))
	assert.Equal(t, "pau", sprites.InferForm("Oricorio (Pa'u Style)"))
	assert.Equal(t, "complete", sprites.InferForm("Zygarde(100%)"))
	assert.Equal(t, "10", sprites.InferForm("Zygarde(10%)"))
	assert.Equal(t, "base", sprites.InferForm("Necrozma"))
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "necrozma", sprites.BaseName("Necrozma(Dusk Mane)"))
	assert.Equal(t, "lycanroc-midday", sprites.BaseName("Lycanroc (MidNight)"))
	assert.Equal(t, "pikachu", sprites.BaseName("Pikachu"))
}
