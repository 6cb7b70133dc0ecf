package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWords(t *testing.T) {
	assert.Equal(t, []string{"python", "tutorial", "for", "beginners", "2024"}, Words("Python Tutorial - For Beginners (2024)!"))
	assert.Empty(t, Words("  --  "))
}

func TestJaccard(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{name: "identical", a: "Python Tutorial For Beginners", b: "python tutorial for beginners", want: 1},
		{name: "disjoint", a: "go basics", b: "rust advanced", want: 0},
		{name: "half", a: "learn go", b: "learn rust", want: 1.0 / 3.0},
		{name: "both empty", a: "", b: "", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Jaccard(WordSet(tt.a), WordSet(tt.b)), 1e-9)
		})
	}
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Web Development", TitleCase("web_development"))
	assert.Equal(t, "Beginner", TitleCase("BEGINNER"))
	assert.Equal(t, "", TitleCase(""))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcdefg...", Truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ab", Truncate("abcdef", 2))
}

func TestTruncateTokens_ShortTextUntouched(t *testing.T) {
	assert.Equal(t, "hello there", TruncateTokens("hello there", 100))
	assert.Equal(t, "", TruncateTokens("hello", 0))
}
