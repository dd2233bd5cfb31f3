package pure_utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCountry(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"United States", "US"},
		{"USA", "US"},
		{"us", "US"},
		{"Panama", "PA"},
		{"IRN", "IR"},
		{"Frence", "FR"}, // typo, fuzzy fallback
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeCountry(tt.input))
		})
	}
}

func TestNormalizeCountryUnresolvableIsStable(t *testing.T) {
	// Unknown spellings must still compare equal to themselves.
	first := NormalizeCountry("Zzqxlandia")
	second := NormalizeCountry("Zzqxlandia")
	assert.Equal(t, first, second)
	assert.NotEmpty(t, first)
}
