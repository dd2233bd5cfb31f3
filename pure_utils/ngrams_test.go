package pure_utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameTrigrams(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "single token",
			input:    "hassan",
			expected: []string{"has", "ass", "ssa", "san"},
		},
		{
			name:     "short token emitted whole",
			input:    "al saud",
			expected: []string{"al", "sau", "aud"},
		},
		{
			name:     "duplicate trigrams collapse",
			input:    "ana banana",
			expected: []string{"ana", "ban", "nan"},
		},
		{
			name:     "empty input",
			input:    "",
			expected: nil,
		},
		{
			name:     "multibyte runes stay intact",
			input:    "josé",
			expected: []string{"jos", "osé"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NameTrigrams(tt.input))
		})
	}
}
