package core

import (
	"context"
	"time"
)

// ModelProfile carries sampling parameters for one generation call.
type ModelProfile struct {
	Temperature float64
	MaxTokens   int
	TopP        float64
	TopK        int
}

var (
	ChatProfile      = ModelProfile{Temperature: 0.7, MaxTokens: 1000, TopP: 0.9, TopK: 40}
	ReasoningProfile = ModelProfile{Temperature: 0.3, MaxTokens: 2000, TopP: 0.8, TopK: 40}
)

// TextGenerator produces a completion for a prompt. Implementations return
// *ProviderError on failure and must be safe to call again with the same input.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, profile ModelProfile) (string, error)
}

type Model struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ContextLength int    `json:"context_length"`
}

// ModelLister is implemented by generators that can enumerate their models.
type ModelLister interface {
	Models(ctx context.Context) ([]Model, error)
}

type SearchFilters struct {
	MaxDuration  time.Duration
	MinViewCount int64
	MaxResults   int
	FreeOnly     bool
}

// RawContentRecord is what a search provider hands back before ranking.
type RawContentRecord struct {
	Source string
	Item   ContentItem
}

// ToContentItem returns a copy with all ranking scores cleared except quality.
func (r RawContentRecord) ToContentItem() ContentItem {
	item := r.Item
	item.SkillMatch = 0
	item.Relevance = 0
	item.Composite = 0
	item.Scores = nil
	if len(r.Item.SkillTags) > 0 {
		item.SkillTags = append([]string(nil), r.Item.SkillTags...)
	}
	return item
}

type ContentSearchProvider interface {
	Search(ctx context.Context, query string, filters SearchFilters) ([]RawContentRecord, error)
}
