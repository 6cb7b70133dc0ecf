package ranking

import (
	"strings"

	"github.com/sandevgo/edagent/internal/core"
	"github.com/sandevgo/edagent/pkg/textutil"
)

// DuplicateTitleThreshold is the title word-set Jaccard similarity above
// which two items are the same resource.
const DuplicateTitleThreshold = 0.8

type seenItem struct {
	url   string
	words map[string]struct{}
}

// Dedup drops every item that duplicates an earlier kept item, either by
// identical URL or by near-identical title. Order of survivors is preserved,
// so Dedup(Dedup(l)) equals Dedup(l).
func Dedup(items []core.ContentItem) []core.ContentItem {
	out := make([]core.ContentItem, 0, len(items))
	kept := make([]seenItem, 0, len(items))

	for _, it := range items {
		cand := seenItem{
			url:   normalizeURL(it.URL),
			words: textutil.WordSet(it.Title),
		}
		if isDuplicate(cand, kept) {
			continue
		}
		kept = append(kept, cand)
		out = append(out, it)
	}
	return out
}

func isDuplicate(cand seenItem, kept []seenItem) bool {
	for _, k := range kept {
		if cand.url != "" && cand.url == k.url {
			return true
		}
		if textutil.Jaccard(cand.words, k.words) > DuplicateTitleThreshold {
			return true
		}
	}
	return false
}

func normalizeURL(u string) string {
	return strings.TrimSpace(u)
}
