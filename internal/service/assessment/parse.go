package assessment

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sandevgo/edagent/internal/core"
	"github.com/sandevgo/edagent/pkg/conv"
)

type assessmentPayload struct {
	SkillArea       string             `json:"skill_area"`
	OverallLevel    string             `json:"overall_level"`
	ConfidenceScore *float64           `json:"confidence_score"`
	Strengths       []string           `json:"strengths"`
	Weaknesses      []string           `json:"weaknesses"`
	Recommendations []string           `json:"recommendations"`
	DetailedScores  map[string]float64 `json:"detailed_scores"`
}

// ParseAssessment decodes model output into a validated SkillAssessment.
// Any failure is reported as *core.MalformedResponseError.
func ParseAssessment(userID, text string, now time.Time) (core.SkillAssessment, error) {
	malformed := func(err error) (core.SkillAssessment, error) {
		return core.SkillAssessment{}, &core.MalformedResponseError{What: "skill assessment", Raw: text, Err: err}
	}

	var p assessmentPayload
	if err := conv.DecodeJSONObject(text, &p); err != nil {
		return malformed(err)
	}
	if p.SkillArea == "" || p.OverallLevel == "" || p.ConfidenceScore == nil {
		return malformed(errors.New("missing required field"))
	}

	level, ok := core.ParseSkillLevel(p.OverallLevel)
	if !ok {
		return malformed(errors.New("unknown overall_level " + p.OverallLevel))
	}

	a := core.SkillAssessment{
		ID:              uuid.NewString(),
		UserID:          userID,
		SkillArea:       p.SkillArea,
		OverallLevel:    level,
		ConfidenceScore: *p.ConfidenceScore,
		Strengths:       p.Strengths,
		Weaknesses:      p.Weaknesses,
		Recommendations: p.Recommendations,
		DetailedScores:  p.DetailedScores,
		AssessedAt:      now,
	}
	if err := a.Validate(); err != nil {
		return malformed(err)
	}
	return a, nil
}

// FallbackAssessment is the deterministic result used whenever the model
// cannot produce a usable assessment.
func FallbackAssessment(userID string, now time.Time) core.SkillAssessment {
	return core.SkillAssessment{
		ID:              uuid.NewString(),
		UserID:          userID,
		SkillArea:       GeneralSkillArea,
		OverallLevel:    core.SkillBeginner,
		ConfidenceScore: core.FallbackConfidence,
		Strengths:       []string{"Willingness to learn", "Motivation to improve"},
		Weaknesses:      []string{"Assessment could not be completed properly"},
		Recommendations: []string{
			"Try the assessment again with more detailed responses",
			"Start with beginner-friendly resources",
			"Focus on building foundational knowledge",
		},
		AssessedAt: now,
	}
}
