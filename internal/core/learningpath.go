package core

import "time"

type Resource struct {
	Title         string  `json:"title"`
	Type          string  `json:"type"`
	URL           string  `json:"url,omitempty"`
	IsFree        bool    `json:"is_free"`
	DurationHours float64 `json:"duration_hours,omitempty"`
}

type Milestone struct {
	ID                    string          `json:"id"`
	Title                 string          `json:"title"`
	Description           string          `json:"description"`
	SkillsToLearn         []string        `json:"skills_to_learn"`
	Prerequisites         []string        `json:"prerequisites"`
	EstimatedDurationDays int             `json:"estimated_duration_days"`
	Difficulty            DifficultyLevel `json:"difficulty_level"`
	Resources             []Resource      `json:"resources"`
	AssessmentCriteria    []string        `json:"assessment_criteria"`
	Order                 int             `json:"order_index"`
}

type LearningPath struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	Goal          string          `json:"goal"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Difficulty    DifficultyLevel `json:"difficulty_level"`
	Prerequisites []string        `json:"prerequisites"`
	TargetSkills  []string        `json:"target_skills"`
	Milestones    []Milestone     `json:"milestones"`
	CreatedAt     time.Time       `json:"created_at"`
}

// EstimatedDurationDays sums the milestone estimates.
func (p LearningPath) EstimatedDurationDays() int {
	total := 0
	for _, m := range p.Milestones {
		total += m.EstimatedDurationDays
	}
	return total
}

func (p LearningPath) Validate() error {
	if p.Title == "" {
		return &ValidationError{Field: "title", Reason: "empty"}
	}
	if len(p.Milestones) == 0 {
		return &ValidationError{Field: "milestones", Reason: "empty"}
	}
	for _, m := range p.Milestones {
		if m.Title == "" {
			return &ValidationError{Field: "milestones.title", Reason: "empty"}
		}
		if m.EstimatedDurationDays < 0 {
			return &ValidationError{Field: "milestones.estimated_duration_days", Reason: "negative"}
		}
	}
	return nil
}
