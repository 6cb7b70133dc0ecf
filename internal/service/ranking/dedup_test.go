package ranking

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/sandevgo/edagent/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(items []core.ContentItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestDedup(t *testing.T) {
	t.Parallel()

	sameURL := video("b", "Completely different title", 0.5)
	sameURL.URL = video("a", "", 0).URL

	tests := []struct {
		name  string
		items []core.ContentItem
		want  []string
	}{
		{
			name: "identical normalized titles keep first",
			items: []core.ContentItem{
				video("a", "Python Tutorial For Beginners", 0.5),
				video("b", "python tutorial for beginners!", 0.9),
			},
			want: []string{"a"},
		},
		{
			name: "same url",
			items: []core.ContentItem{
				video("a", "Go basics", 0.5),
				sameURL,
			},
			want: []string{"a"},
		},
		{
			name: "similar but below threshold",
			items: []core.ContentItem{
				video("a", "Learn Go fast", 0.5),
				video("b", "Learn Rust fast", 0.5),
			},
			want: []string{"a", "b"},
		},
		{
			// 5 shared words out of 6 is 0.83, above the threshold
			name: "near duplicate above threshold",
			items: []core.ContentItem{
				video("a", "complete python course for absolute beginners", 0.5),
				video("b", "complete python course for beginners", 0.5),
			},
			want: []string{"a"},
		},
		{name: "empty", items: nil, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ids(Dedup(tt.items)))
		})
	}
}

func TestDedup_Idempotent(t *testing.T) {
	t.Parallel()

	vocab := []string{"python", "go", "tutorial", "for", "beginners", "advanced", "course", "web", "data"}
	rnd := rand.New(rand.NewSource(42))

	for round := 0; round < 200; round++ {
		n := rnd.Intn(12)
		items := make([]core.ContentItem, 0, n)
		for i := 0; i < n; i++ {
			words := rnd.Intn(4) + 1
			title := ""
			for w := 0; w < words; w++ {
				title += vocab[rnd.Intn(len(vocab))] + " "
			}
			it := video(fmt.Sprintf("%d-%d", round, i), title, 0.5)
			if rnd.Intn(4) == 0 {
				it.URL = "https://shared.example.com"
			}
			items = append(items, it)
		}

		once := Dedup(items)
		twice := Dedup(once)
		require.Equal(t, ids(once), ids(twice), "round %d", round)
	}
}
