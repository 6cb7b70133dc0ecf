package ranking

import (
	"math"
	"slices"
	"strings"
	"time"

	"github.com/sandevgo/edagent/internal/core"
	"github.com/sandevgo/edagent/pkg/textutil"
)

// Calculate computes every sub-score of item for profile. It is pure: the
// same inputs and `now` always produce the same vector.
func Calculate(item core.ContentItem, profile core.UserProfile, now time.Time) core.ScoreVector {
	tags := normalizeTags(item.SkillTags)
	return core.ScoreVector{
		SkillRelevance:            skillRelevance(tags, profile),
		GoalAlignment:             goalAlignment(item, profile.CareerGoals),
		LearningProgression:       learningProgression(tags, difficultyOf(item), profile),
		PreferenceAlignment:       preferenceAlignment(item, profile.Preferences),
		Freshness:                 freshness(item.PublishedAt, now),
		DifficultyAppropriateness: difficultyAppropriateness(tags, difficultyOf(item), profile),
		Quality:                   clamp(item.Quality),
	}
}

// Composite is the weighted sum of the vector, clamped to [0,1].
func Composite(v core.ScoreVector) float64 {
	return clamp(WeightSkillRelevance*v.SkillRelevance +
		WeightGoalAlignment*v.GoalAlignment +
		WeightQuality*v.Quality +
		WeightLearningProgression*v.LearningProgression +
		WeightPreferenceAlignment*v.PreferenceAlignment +
		WeightDifficultyAppropriateness*v.DifficultyAppropriateness +
		WeightFreshness*v.Freshness)
}

func skillRelevance(tags []string, profile core.UserProfile) float64 {
	if len(tags) == 0 {
		return 0.3
	}
	if len(profile.Skills) == 0 {
		return 0.5
	}

	var overlap, fresh int
	for _, tag := range tags {
		if _, ok := profile.Skill(tag); ok {
			overlap++
		} else {
			fresh++
		}
	}

	n := float64(len(tags))
	score := 0.4*float64(overlap)/n + 0.6*float64(fresh)/n
	if overlap > 0 && fresh > 0 {
		score += 0.2
	}
	return clamp(score)
}

var goalStopWords = map[string]struct{}{
	"become": {}, "want": {}, "learn": {}, "the": {}, "and": {}, "for": {}, "with": {}, "into": {},
}

// goalAlignment matches goals against title and description only. Skill tags
// already count toward skill relevance.
func goalAlignment(item core.ContentItem, goals []string) float64 {
	if len(goals) == 0 {
		return 0.5
	}

	text := strings.ToLower(item.Title + " " + item.Description)
	textWords := textutil.WordSet(text)

	best := 0.0
	for _, goal := range goals {
		g := strings.ToLower(strings.TrimSpace(goal))
		if g == "" {
			continue
		}

		var score float64
		if strings.Contains(text, g) {
			score = 0.9
		} else if ratio := wordOverlap(g, textWords); ratio > 0 {
			score = ratio * 0.7
		} else {
			score = semanticMatch(g, text)
		}

		if score > best {
			best = score
		}
	}
	return clamp(best)
}

func wordOverlap(goal string, textWords map[string]struct{}) float64 {
	var total, hits int
	for _, w := range textutil.Words(goal) {
		if len(w) < 3 {
			continue
		}
		if _, stop := goalStopWords[w]; stop {
			continue
		}
		total++
		if _, ok := textWords[w]; ok {
			hits++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}

func semanticMatch(goal, text string) float64 {
	best := 0.0
	for _, entry := range goalTerms {
		if !strings.Contains(goal, entry.phrase) {
			continue
		}
		hits := 0
		for _, term := range entry.terms {
			if strings.Contains(text, term) {
				hits++
			}
		}
		if s := 0.6 * float64(hits) / float64(len(entry.terms)); s > best {
			best = s
		}
	}
	return best
}

func learningProgression(tags []string, difficulty core.DifficultyLevel, profile core.UserProfile) float64 {
	if len(tags) == 0 {
		return newSkillTable[difficulty]
	}

	sum := 0.0
	for _, tag := range tags {
		rec, ok := profile.Skill(tag)
		if !ok {
			sum += newSkillTable[difficulty]
			continue
		}
		row, ok := progressionTable[rec.Level]
		if !ok {
			row = progressionTable[core.SkillBeginner]
		}
		sum += row[difficulty]
	}
	return clamp(sum / float64(len(tags)))
}

func preferenceAlignment(item core.ContentItem, prefs *core.Preferences) float64 {
	if prefs.IsEmpty() {
		return 0.5
	}

	score := 0.0
	if prefs.LearningStyle != "" && slices.Contains(styleTypes[prefs.LearningStyle], item.ContentType) {
		score += 0.3
	}
	if slices.Contains(prefs.PreferredPlatforms, item.Platform) {
		score += 0.2
	}
	if slices.Contains(prefs.PreferredTypes, item.ContentType) {
		score += 0.2
	}

	switch prefs.Budget {
	case core.BudgetFree:
		if item.IsFree {
			score += 0.2
		}
	case core.BudgetLowCost:
		if item.IsFree || item.Price <= LowCostPriceLimit {
			score += 0.15
		}
	case core.BudgetAny:
		score += 0.1
	}

	if prefs.TimeCommitmentHours > 0 && item.Duration > 0 {
		weekly := time.Duration(prefs.TimeCommitmentHours) * time.Hour
		switch {
		case item.Duration <= weekly:
			score += 0.1
		case item.Duration <= 2*weekly:
			score += 0.05
		}
	}
	return clamp(score)
}

func freshness(published *time.Time, now time.Time) float64 {
	if published == nil || published.IsZero() {
		return 0.5
	}

	days := now.Sub(*published).Hours() / 24
	switch {
	case days <= 30:
		return 1.0
	case days <= 180:
		return 0.8
	case days <= 365:
		return 0.6
	case days <= 730:
		return 0.4
	default:
		return 0.2
	}
}

func difficultyAppropriateness(tags []string, difficulty core.DifficultyLevel, profile core.UserProfile) float64 {
	var sum float64
	var matched int
	for _, tag := range tags {
		if rec, ok := profile.Skill(tag); ok {
			sum += rec.Confidence
			matched++
		}
	}
	if matched == 0 {
		return newSkillTable[difficulty]
	}

	avg := sum / float64(matched)
	switch {
	case avg < lowConfidence:
		return lowConfidenceTable[difficulty]
	case avg < highConfidence:
		return midConfidenceTable[difficulty]
	default:
		return highConfidenceTable[difficulty]
	}
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func difficultyOf(item core.ContentItem) core.DifficultyLevel {
	if d, ok := core.ParseDifficulty(string(item.Difficulty)); ok {
		return d
	}
	return core.DifficultyBeginner
}

func clamp(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
