package core

import (
	"fmt"
	"time"
)

type SkillAssessment struct {
	ID              string             `json:"id"`
	UserID          string             `json:"user_id"`
	SkillArea       string             `json:"skill_area"`
	OverallLevel    SkillLevel         `json:"overall_level"`
	ConfidenceScore float64            `json:"confidence_score"`
	Strengths       []string           `json:"strengths"`
	Weaknesses      []string           `json:"weaknesses"`
	Recommendations []string           `json:"recommendations"`
	DetailedScores  map[string]float64 `json:"detailed_scores,omitempty"`
	AssessedAt      time.Time          `json:"assessed_at"`
}

func (a SkillAssessment) Validate() error {
	if a.SkillArea == "" {
		return &ValidationError{Field: "skill_area", Reason: "empty"}
	}
	if _, ok := ParseSkillLevel(string(a.OverallLevel)); !ok {
		return &ValidationError{Field: "overall_level", Reason: fmt.Sprintf("unknown level %q", a.OverallLevel)}
	}
	if a.ConfidenceScore < 0 || a.ConfidenceScore > 1 {
		return &ValidationError{Field: "confidence_score", Reason: "out of range [0,1]"}
	}
	for k, v := range a.DetailedScores {
		if v < 0 || v > 1 {
			return &ValidationError{Field: "detailed_scores." + k, Reason: "out of range [0,1]"}
		}
	}
	return nil
}

type QuestionType string

const (
	QuestionFixed    QuestionType = "fixed"
	QuestionAdaptive QuestionType = "adaptive"
)

type Question struct {
	Text string       `json:"text"`
	Type QuestionType `json:"type"`
}

type AssessmentStatus string

const (
	AssessmentActive    AssessmentStatus = "active"
	AssessmentCompleted AssessmentStatus = "completed"
	AssessmentAbandoned AssessmentStatus = "abandoned"
)
