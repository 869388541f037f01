package contacts

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestFormatPhone(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr assert.ErrorAssertionFunc
	}{
		{
			name:    "hyphens",
			input:   "650-123-4567",
			want:    "(650) 123-4567",
			wantErr: assert.NoError,
		},
		{
			name:    "parentheses",
			input:   "(650)1234567",
			want:    "(650) 123-4567",
			wantErr: assert.NoError,
		},
		{
			name:    "parentheses and space",
			input:   "(650) 123-4567",
			want:    "(650) 123-4567",
			wantErr: assert.NoError,
		},
		{
			name:    "spaces",
			input:   "650 123 4567",
			want:    "(650) 123-4567",
			wantErr: assert.NoError,
		},
		{
			name:    "digits only",
			input:   "6501234567",
			want:    "(650) 123-4567",
			wantErr: assert.NoError,
		},
		{
			name:    "short rest group",
			input:   "6501234",
			want:    "(650) 123-4",
			wantErr: assert.NoError,
		},
		{
			name:    "no rest group",
			input:   "650123",
			want:    "(650) 123-",
			wantErr: assert.NoError,
		},
		{
			name:    "too short",
			input:   "65012",
			wantErr: assert.Error,
		},
		{
			name:    "not a number",
			input:   "n/a",
			wantErr: assert.Error,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: assert.Error,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatPhone(tt.input)
			tt.wantErr(t, err)
			assert.Equal(t, tt.want, got)
			if err != nil {
				assert.ErrorIs(t, err, ErrMalformedPhone)
			}
		})
	}
}

func TestCapitalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "lowercase", input: "doe", want: "Doe"},
		{name: "mixed case is kept", input: "mcDONALD", want: "McDONALD"},
		{name: "already capitalized", input: "McDONALD", want: "McDONALD"},
		{name: "single letter", input: "a", want: "A"},
		{name: "non-ascii", input: "émile", want: "Émile"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Capitalize(tt.input))
		})
	}
}
