package core

import (
	"strings"
	"time"
)

type ContentKind string

const (
	KindVideo  ContentKind = "video"
	KindCourse ContentKind = "course"
)

type ContentType string

const (
	TypeVideo         ContentType = "video"
	TypeArticle       ContentType = "article"
	TypeCourse        ContentType = "course"
	TypeTutorial      ContentType = "tutorial"
	TypeBook          ContentType = "book"
	TypeInteractive   ContentType = "interactive"
	TypePodcast       ContentType = "podcast"
	TypeDocumentation ContentType = "documentation"
)

type Platform string

const (
	PlatformYouTube      Platform = "youtube"
	PlatformCoursera     Platform = "coursera"
	PlatformUdemy        Platform = "udemy"
	PlatformEdX          Platform = "edx"
	PlatformKhanAcademy  Platform = "khan_academy"
	PlatformCodecademy   Platform = "codecademy"
	PlatformFreeCodeCamp Platform = "freecodecamp"
	PlatformMedium       Platform = "medium"
	PlatformGitHub       Platform = "github"
	PlatformOther        Platform = "other"
)

type DifficultyLevel string

const (
	DifficultyBeginner     DifficultyLevel = "beginner"
	DifficultyIntermediate DifficultyLevel = "intermediate"
	DifficultyAdvanced     DifficultyLevel = "advanced"
	DifficultyExpert       DifficultyLevel = "expert"
)

func ParseDifficulty(s string) (DifficultyLevel, bool) {
	switch DifficultyLevel(strings.ToLower(strings.TrimSpace(s))) {
	case DifficultyBeginner:
		return DifficultyBeginner, true
	case DifficultyIntermediate:
		return DifficultyIntermediate, true
	case DifficultyAdvanced:
		return DifficultyAdvanced, true
	case DifficultyExpert:
		return DifficultyExpert, true
	}
	return "", false
}

type VideoDetails struct {
	VideoID           string `json:"video_id"`
	ChannelName       string `json:"channel_name"`
	ChannelID         string `json:"channel_id"`
	ViewCount         int64  `json:"view_count"`
	LikeCount         int64  `json:"like_count"`
	CommentCount      int64  `json:"comment_count"`
	ThumbnailURL      string `json:"thumbnail_url,omitempty"`
	CaptionsAvailable bool   `json:"captions_available"`
}

type CourseDetails struct {
	CourseID             string  `json:"course_id"`
	Instructor           string  `json:"instructor,omitempty"`
	Institution          string  `json:"institution,omitempty"`
	EnrollmentCount      int64   `json:"enrollment_count,omitempty"`
	CompletionRate       float64 `json:"completion_rate"`
	CertificateAvailable bool    `json:"certificate_available"`
	Modules              int     `json:"modules"`
	Assignments          int     `json:"assignments"`
}

// ContentItem is a learning resource. Kind selects which of Video or Course
// is populated. Score fields are written only by the ranking engine.
type ContentItem struct {
	ID          string          `json:"id"`
	Kind        ContentKind     `json:"kind"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	URL         string          `json:"url"`
	Platform    Platform        `json:"platform"`
	ContentType ContentType     `json:"content_type"`
	IsFree      bool            `json:"is_free"`
	Price       float64         `json:"price,omitempty"`
	Duration    time.Duration   `json:"duration,omitempty"`
	PublishedAt *time.Time      `json:"published_date,omitempty"`
	SkillTags   []string        `json:"skills_covered,omitempty"`
	Difficulty  DifficultyLevel `json:"difficulty_level"`

	Quality    float64      `json:"quality_score"`
	SkillMatch float64      `json:"skill_match_score"`
	Relevance  float64      `json:"relevance_score"`
	Composite  float64      `json:"composite_score"`
	Scores     *ScoreVector `json:"scores,omitempty"`

	Video  *VideoDetails  `json:"video,omitempty"`
	Course *CourseDetails `json:"course,omitempty"`
}

func (c ContentItem) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return &ValidationError{Field: "id", Reason: "empty"}
	}
	if strings.TrimSpace(c.Title) == "" {
		return &ValidationError{Field: "title", Reason: "empty"}
	}
	if strings.TrimSpace(c.URL) == "" {
		return &ValidationError{Field: "url", Reason: "empty"}
	}
	switch c.Kind {
	case KindVideo:
		if c.Video == nil {
			return &ValidationError{Field: "video", Reason: "missing details for video kind"}
		}
	case KindCourse:
		if c.Course == nil {
			return &ValidationError{Field: "course", Reason: "missing details for course kind"}
		}
		if c.Course.CompletionRate < 0 || c.Course.CompletionRate > 1 {
			return &ValidationError{Field: "course.completion_rate", Reason: "out of range"}
		}
	default:
		return &ValidationError{Field: "kind", Reason: "unknown kind " + string(c.Kind)}
	}
	if c.Price < 0 {
		return &ValidationError{Field: "price", Reason: "negative"}
	}
	for field, v := range map[string]float64{
		"quality_score":     c.Quality,
		"skill_match_score": c.SkillMatch,
		"relevance_score":   c.Relevance,
		"composite_score":   c.Composite,
	} {
		if v < 0 || v > 1 {
			return &ValidationError{Field: field, Reason: "out of range [0,1]"}
		}
	}
	return nil
}

// ScoreVector holds the per-criterion scores of one item for one user.
type ScoreVector struct {
	SkillRelevance            float64 `json:"skill_relevance"`
	GoalAlignment             float64 `json:"goal_alignment"`
	LearningProgression       float64 `json:"learning_progression"`
	PreferenceAlignment       float64 `json:"preference_alignment"`
	Freshness                 float64 `json:"freshness"`
	DifficultyAppropriateness float64 `json:"difficulty_appropriateness"`
	Quality                   float64 `json:"quality"`
}
