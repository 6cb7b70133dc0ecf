package ranking

import (
	"context"
	"sort"
	"time"

	"github.com/sandevgo/edagent/internal/core"
	"github.com/sandevgo/edagent/pkg/log"
)

type Engine struct {
	minQuality float64
	now        func() time.Time
}

type Option func(*Engine)

func WithMinQuality(q float64) Option {
	return func(e *Engine) { e.minQuality = q }
}

// WithClock fixes the reference time used for freshness.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		minQuality: DefaultMinQuality,
		now:        time.Now,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// DefaultFilters returns the filters Rank applies for profile.
func (e *Engine) DefaultFilters(profile core.UserProfile) Filters {
	return FiltersFromProfile(profile, e.minQuality)
}

// Rank filters, deduplicates, scores and sorts items for profile using the
// filters implied by the profile's preferences.
func (e *Engine) Rank(ctx context.Context, items []core.ContentItem, profile core.UserProfile) []core.ContentItem {
	return e.RankWithFilters(ctx, items, profile, e.DefaultFilters(profile))
}

// RankWithFilters sorts by composite score descending; ties keep input order.
func (e *Engine) RankWithFilters(ctx context.Context, items []core.ContentItem, profile core.UserProfile, f Filters) []core.ContentItem {
	logger := log.FromCtx(ctx)

	valid := make([]core.ContentItem, 0, len(items))
	for _, it := range items {
		if err := it.Validate(); err != nil {
			logger.Warn().Err(err).Str("id", it.ID).Msg("dropping invalid content item")
			continue
		}
		valid = append(valid, it)
	}

	candidates := Dedup(ApplyFilters(valid, f))

	now := e.now()
	for i := range candidates {
		v := Calculate(candidates[i], profile, now)
		candidates[i].Scores = &v
		candidates[i].SkillMatch = v.SkillRelevance
		candidates[i].Relevance = v.GoalAlignment
		candidates[i].Composite = Composite(v)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Composite > candidates[j].Composite
	})

	logger.Debug().
		Int("input", len(items)).
		Int("ranked", len(candidates)).
		Msg("content ranked")
	return candidates
}
