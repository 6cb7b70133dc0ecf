package conv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{
			name:     "Bare object",
			input:    `{"a": 1}`,
			expected: `{"a": 1}`,
		},
		{
			name:     "Object with prose around it",
			input:    "Here you go:\n{\"a\": 1}\nHope it helps.",
			expected: `{"a": 1}`,
		},
		{
			name:     "Fenced block",
			input:    "```json\n{\"a\": {\"b\": 2}}\n```",
			expected: `{"a": {"b": 2}}`,
		},
		{
			name:    "No object",
			input:   "sorry, I cannot do that",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSONObject(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNoJSONObject)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestDecodeJSONObject_RepairsTrailingComma(t *testing.T) {
	var out struct {
		Title string   `json:"title"`
		Tags  []string `json:"tags"`
	}

	err := DecodeJSONObject(`{"title": "Go", "tags": ["a", "b",],}`, &out)
	require.NoError(t, err)
	assert.Equal(t, "Go", out.Title)
	assert.Equal(t, []string{"a", "b"}, out.Tags)
}
