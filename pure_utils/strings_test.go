package pure_utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name string
		args string
		want string
	}{
		{
			name: "plain name",
			args: "Juan Perez",
			want: "juan perez",
		},
		{
			name: "diacritics stripped",
			args: "Juan Pérez García",
			want: "juan perez garcia",
		},
		{
			name: "punctuation removed, hyphen kept",
			args: "O'Brien, Jean-Luc",
			want: "o brien jean-luc",
		},
		{
			name: "whitespace collapsed",
			args: "  ABDUL \t RAHMAN  ",
			want: "abdul rahman",
		},
		{
			name: "control characters dropped",
			args: "Juan\x00\x1fPerez",
			want: "juanperez",
		},
		{
			name: "empty input",
			args: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeName(tt.args))
		})
	}
}

func TestNormalizeNameIsDeterministic(t *testing.T) {
	in := "Tariq Al-Hashimi (a.k.a. \"Abu Omar\")"
	assert.Equal(t, NormalizeName(in), NormalizeName(in))
}

func TestNormalizeDocument(t *testing.T) {
	tests := []struct {
		name string
		args string
		want string
	}{
		{"panama cedula", "8-888-8888", "88888888"},
		{"passport with spaces", "ab 123 456", "AB123456"},
		{"dots and slashes", "1.234.567/8", "12345678"},
		{"already clean", "X99Y", "X99Y"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDocument(tt.args))
		})
	}
}

func TestBagOfWordsSimilarity(t *testing.T) {
	examples := []struct {
		s1  string
		s2  string
		min float64
		max float64
	}{
		{"", "", 100, 100},
		{"juan perez", "juan perez", 100, 100},
		{"juan perez", "Juan Pérez García", 100, 100},
		{"Mr Mrs John Jane OR Doe Smith", "John Doe", 100, 100},
		{"juan peres", "juan perez", 85, 99},
		{"zzqx unmatched", "juan perez", 0, 40},
	}

	for _, example := range examples {
		t.Run(example.s1+" vs "+example.s2, func(t *testing.T) {
			result := BagOfWordsSimilarity(example.s1, example.s2)
			assert.GreaterOrEqual(t, result, example.min)
			assert.LessOrEqual(t, result, example.max)
		})
	}
}

func TestBagOfWordsSimilarityIsSymmetricEnough(t *testing.T) {
	a := BagOfWordsSimilarity("juan perez", "juan perez garcia")
	b := BagOfWordsSimilarity("juan perez garcia", "juan perez")
	assert.InDelta(t, a, b, 0.01)
}

func TestDirectSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		s1       string
		s2       string
		expected float64
	}{
		{"empty strings", "", "", 100},
		{"same strings", "hello", "hello", 100},
		{"completely different strings", "hello", "aaaaa", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, DirectSimilarity(tt.s1, tt.s2), 0.01)
		})
	}
}

func TestNameTrigramsBasic(t *testing.T) {
	grams := NameTrigrams("juan li")
	assert.ElementsMatch(t, []string{"jua", "uan", "li"}, grams)

	assert.Empty(t, NameTrigrams(""))
}
