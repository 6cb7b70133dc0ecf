package learningpath

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sandevgo/edagent/internal/core"
	"github.com/sandevgo/edagent/pkg/conv"
)

const (
	defaultMilestoneDays  = 7
	defaultResourceHours  = 1
	fallbackMilestoneDays = 14
	fallbackResourceHours = 2
)

type resourcePayload struct {
	Title         string   `json:"title"`
	URL           string   `json:"url"`
	Type          string   `json:"type"`
	IsFree        *bool    `json:"is_free"`
	DurationHours *float64 `json:"duration_hours"`
}

type milestonePayload struct {
	Title                 string            `json:"title"`
	Description           string            `json:"description"`
	SkillsToLearn         []string          `json:"skills_to_learn"`
	Prerequisites         []string          `json:"prerequisites"`
	EstimatedDurationDays *int              `json:"estimated_duration_days"`
	Difficulty            string            `json:"difficulty_level"`
	AssessmentCriteria    []string          `json:"assessment_criteria"`
	Resources             []resourcePayload `json:"resources"`
}

type pathPayload struct {
	Title         string             `json:"title"`
	Description   string             `json:"description"`
	Difficulty    string             `json:"difficulty_level"`
	Prerequisites []string           `json:"prerequisites"`
	TargetSkills  []string           `json:"target_skills"`
	Milestones    []milestonePayload `json:"milestones"`
}

func difficultyOr(s string, def core.DifficultyLevel) core.DifficultyLevel {
	if d, ok := core.ParseDifficulty(s); ok {
		return d
	}
	return def
}

// ParsePath decodes model output into a validated LearningPath.
// Any failure is reported as *core.MalformedResponseError.
func ParsePath(userID, goal, text string, now time.Time) (core.LearningPath, error) {
	malformed := func(err error) (core.LearningPath, error) {
		return core.LearningPath{}, &core.MalformedResponseError{What: "learning path", Raw: text, Err: err}
	}

	var p pathPayload
	if err := conv.DecodeJSONObject(text, &p); err != nil {
		return malformed(err)
	}
	if strings.TrimSpace(p.Title) == "" {
		return malformed(errors.New("missing title"))
	}

	path := core.LearningPath{
		ID:            uuid.NewString(),
		UserID:        userID,
		Goal:          goal,
		Title:         strings.TrimSpace(p.Title),
		Description:   p.Description,
		Difficulty:    difficultyOr(p.Difficulty, core.DifficultyBeginner),
		Prerequisites: p.Prerequisites,
		TargetSkills:  p.TargetSkills,
		CreatedAt:     now,
	}

	for i, mp := range p.Milestones {
		days := defaultMilestoneDays
		if mp.EstimatedDurationDays != nil {
			days = *mp.EstimatedDurationDays
		}
		m := core.Milestone{
			ID:                    uuid.NewString(),
			Title:                 strings.TrimSpace(mp.Title),
			Description:           mp.Description,
			SkillsToLearn:         mp.SkillsToLearn,
			Prerequisites:         mp.Prerequisites,
			EstimatedDurationDays: days,
			Difficulty:            difficultyOr(mp.Difficulty, core.DifficultyBeginner),
			AssessmentCriteria:    mp.AssessmentCriteria,
			Order:                 i,
		}
		for _, rp := range mp.Resources {
			if strings.TrimSpace(rp.Title) == "" {
				continue
			}
			r := core.Resource{
				Title:         rp.Title,
				Type:          rp.Type,
				URL:           rp.URL,
				IsFree:        true,
				DurationHours: defaultResourceHours,
			}
			if rp.IsFree != nil {
				r.IsFree = *rp.IsFree
			}
			if rp.DurationHours != nil {
				r.DurationHours = *rp.DurationHours
			}
			m.Resources = append(m.Resources, r)
		}
		path.Milestones = append(path.Milestones, m)
	}

	if err := path.Validate(); err != nil {
		return malformed(err)
	}
	return path, nil
}

// FallbackPath is the single-milestone path used when generation fails.
func FallbackPath(userID, goal string, now time.Time) core.LearningPath {
	return core.LearningPath{
		ID:          uuid.NewString(),
		UserID:      userID,
		Goal:        goal,
		Title:       "Basic Path: " + goal,
		Description: "A simple starting point for: " + goal,
		Difficulty:  core.DifficultyBeginner,
		Milestones: []core.Milestone{{
			ID:                    uuid.NewString(),
			Title:                 "Get Started",
			Description:           "Begin your journey toward: " + goal,
			SkillsToLearn:         []string{"foundational knowledge"},
			EstimatedDurationDays: fallbackMilestoneDays,
			Difficulty:            core.DifficultyBeginner,
			AssessmentCriteria:    []string{"Complete initial research", "Identify specific learning resources"},
			Resources: []core.Resource{{
				Title:         "Research Your Goal",
				Type:          string(core.TypeArticle),
				URL:           "https://www.google.com/search?q=" + url.QueryEscape(goal),
				IsFree:        true,
				DurationHours: fallbackResourceHours,
			}},
		}},
		CreatedAt: now,
	}
}
