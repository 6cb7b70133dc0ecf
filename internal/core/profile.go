package core

import (
	"slices"
	"strings"
	"time"
)

type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
)

func ParseSkillLevel(s string) (SkillLevel, bool) {
	switch SkillLevel(strings.ToLower(strings.TrimSpace(s))) {
	case SkillBeginner:
		return SkillBeginner, true
	case SkillIntermediate:
		return SkillIntermediate, true
	case SkillAdvanced:
		return SkillAdvanced, true
	}
	return "", false
}

type LearningStyle string

const (
	StyleVisual      LearningStyle = "visual"
	StyleAuditory    LearningStyle = "auditory"
	StyleKinesthetic LearningStyle = "kinesthetic"
	StyleReading     LearningStyle = "reading"
)

type BudgetPreference string

const (
	BudgetFree    BudgetPreference = "free"
	BudgetLowCost BudgetPreference = "low_cost"
	BudgetAny     BudgetPreference = "any"
)

type DifficultyPreference string

const (
	DifficultyGradual     DifficultyPreference = "gradual"
	DifficultyChallenging DifficultyPreference = "challenging"
	DifficultyMixed       DifficultyPreference = "mixed"
)

type SkillRecord struct {
	Level       SkillLevel `json:"level"`
	Confidence  float64    `json:"confidence_score"`
	LastUpdated time.Time  `json:"last_updated"`
}

// Preferences are optional; a nil pointer means the user never stated any.
type Preferences struct {
	LearningStyle        LearningStyle        `json:"learning_style,omitempty"`
	TimeCommitmentHours  int                  `json:"time_commitment_hours,omitempty"`
	Budget               BudgetPreference     `json:"budget_preference,omitempty"`
	PreferredPlatforms   []Platform           `json:"preferred_platforms,omitempty"`
	PreferredTypes       []ContentType        `json:"content_types,omitempty"`
	DifficultyPreference DifficultyPreference `json:"difficulty_preference,omitempty"`
}

func (p *Preferences) IsEmpty() bool {
	if p == nil {
		return true
	}
	return p.LearningStyle == "" &&
		p.TimeCommitmentHours == 0 &&
		p.Budget == "" &&
		len(p.PreferredPlatforms) == 0 &&
		len(p.PreferredTypes) == 0 &&
		p.DifficultyPreference == ""
}

type UserProfile struct {
	UserID      string                 `json:"user_id"`
	Skills      map[string]SkillRecord `json:"current_skills"`
	CareerGoals []string               `json:"career_goals"`
	Preferences *Preferences           `json:"learning_preferences,omitempty"`
}

func NewUserProfile(userID string) UserProfile {
	return UserProfile{
		UserID: userID,
		Skills: make(map[string]SkillRecord),
	}
}

// SkillKey is the stored form of a skill name.
func SkillKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NormalizeSkills re-keys skills by SkillKey. Names that collide keep the
// most recently updated record, then the more confident one.
func NormalizeSkills(skills map[string]SkillRecord) map[string]SkillRecord {
	names := make([]string, 0, len(skills))
	for name := range skills {
		names = append(names, name)
	}
	slices.Sort(names)

	out := make(map[string]SkillRecord, len(skills))
	for _, name := range names {
		key := SkillKey(name)
		if key == "" {
			continue
		}
		rec := skills[name]
		if cur, ok := out[key]; ok && !supersedes(rec, cur) {
			continue
		}
		out[key] = rec
	}
	return out
}

func supersedes(rec, cur SkillRecord) bool {
	if !rec.LastUpdated.Equal(cur.LastUpdated) {
		return rec.LastUpdated.After(cur.LastUpdated)
	}
	return rec.Confidence > cur.Confidence
}

// Skill looks a skill up case-insensitively. When several names differ only
// in case the one sorting first wins.
func (p UserProfile) Skill(name string) (SkillRecord, bool) {
	if rec, ok := p.Skills[name]; ok {
		return rec, true
	}
	key := SkillKey(name)
	if rec, ok := p.Skills[key]; ok {
		return rec, true
	}

	match := ""
	for k := range p.Skills {
		if SkillKey(k) == key && (match == "" || k < match) {
			match = k
		}
	}
	if match == "" {
		return SkillRecord{}, false
	}
	return p.Skills[match], true
}
