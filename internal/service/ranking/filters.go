package ranking

import (
	"slices"

	"github.com/sandevgo/edagent/internal/core"
)

const (
	DefaultMinQuality = 0.3
	LowCostPriceLimit = 50.0
)

// Filters are hard exclusions applied before scoring.
type Filters struct {
	Budget       core.BudgetPreference
	ContentTypes []core.ContentType
	Difficulty   core.DifficultyLevel
	// ExcludeExpert drops expert items for users preferring a gradual ramp.
	ExcludeExpert bool
	MinQuality    float64
}

// FiltersFromProfile derives the default hard filters for a user.
func FiltersFromProfile(profile core.UserProfile, minQuality float64) Filters {
	f := Filters{MinQuality: minQuality}
	if p := profile.Preferences; p != nil {
		f.Budget = p.Budget
		f.ExcludeExpert = p.DifficultyPreference == core.DifficultyGradual
	}
	return f
}

func (f Filters) Allows(item core.ContentItem) bool {
	switch f.Budget {
	case core.BudgetFree:
		if !item.IsFree {
			return false
		}
	case core.BudgetLowCost:
		if !item.IsFree && item.Price > LowCostPriceLimit {
			return false
		}
	}

	if len(f.ContentTypes) > 0 && !slices.Contains(f.ContentTypes, item.ContentType) {
		return false
	}
	if f.Difficulty != "" && item.Difficulty != f.Difficulty {
		return false
	}
	if f.ExcludeExpert && item.Difficulty == core.DifficultyExpert {
		return false
	}
	return item.Quality >= f.MinQuality
}

func ApplyFilters(items []core.ContentItem, f Filters) []core.ContentItem {
	out := make([]core.ContentItem, 0, len(items))
	for _, it := range items {
		if f.Allows(it) {
			out = append(out, it)
		}
	}
	return out
}
