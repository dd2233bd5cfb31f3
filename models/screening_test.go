package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScreeningQueryValidate(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		query   ScreeningQuery
		wantErr error
	}{
		{
			name:  "minimal valid name",
			query: ScreeningQuery{Name: "Li"},
		},
		{
			name:    "whitespace only",
			query:   ScreeningQuery{Name: "   "},
			wantErr: ErrNameTooShort,
		},
		{
			name:  "long name within bounds once trimmed",
			query: ScreeningQuery{Name: "   " + strings.Repeat("a", 195) + "   "},
		},
		{
			name:    "trimmed name too long",
			query:   ScreeningQuery{Name: " " + strings.Repeat("b", 201) + " "},
			wantErr: ErrNameTooLong,
		},
		{
			name:    "dob in the wrong shape",
			query:   ScreeningQuery{Name: "Juan Perez", DateOfBirth: "12-03-1975"},
			wantErr: ErrInvalidDobFormat,
		},
		{
			name:  "full past date",
			query: ScreeningQuery{Name: "Juan Perez", DateOfBirth: "1975-03-12"},
		},
		{
			name:  "bare current year",
			query: ScreeningQuery{Name: "Juan Perez", DateOfBirth: "2026"},
		},
		{
			name:    "bare future year",
			query:   ScreeningQuery{Name: "Juan Perez", DateOfBirth: "2027"},
			wantErr: ErrFutureDob,
		},
		{
			name:  "past year-month in the current year",
			query: ScreeningQuery{Name: "Juan Perez", DateOfBirth: "2026-01"},
		},
		{
			name:    "future year-month in the current year",
			query:   ScreeningQuery{Name: "Juan Perez", DateOfBirth: "2026-12"},
			wantErr: ErrFutureDob,
		},
		{
			name:    "future full date in the current year",
			query:   ScreeningQuery{Name: "Juan Perez", DateOfBirth: "2026-12-31"},
			wantErr: ErrFutureDob,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.query.Validate(now)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
