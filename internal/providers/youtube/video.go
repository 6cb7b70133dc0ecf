package youtube

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/sandevgo/edagent/internal/core"
	"github.com/sandevgo/edagent/pkg/conv"
	"github.com/sandevgo/edagent/pkg/textutil"
)

const (
	watchURL             = "https://www.youtube.com/watch?v="
	maxDescriptionLength = 500
)

var (
	beginnerKeywords = []string{
		"beginner", "basics", "introduction", "getting started", "fundamentals",
		"crash course", "tutorial", "101", "for beginners", "start here",
		"first steps", "learn", "how to",
	}
	advancedKeywords = []string{
		"advanced", "expert", "professional", "master", "deep dive",
		"optimization", "performance", "architecture", "best practices",
		"production", "enterprise", "complex",
	}
	intermediateKeywords = []string{
		"intermediate", "next level", "beyond basics", "practical",
		"real world", "project", "build", "create",
	}

	techSkills = []string{
		"python", "javascript", "java", "c++", "c#", "go", "rust", "swift",
		"html", "css", "react", "vue", "angular", "node.js", "express",
		"django", "flask", "spring", "laravel", "rails",
		"sql", "mysql", "postgresql", "mongodb", "redis",
		"aws", "azure", "gcp", "docker", "kubernetes",
		"git", "github", "ci/cd", "devops", "linux",
		"machine learning", "ai", "data science", "analytics",
		"web development", "mobile development", "backend", "frontend",
	}
)

type thumbnail struct {
	URL string `json:"url"`
}

type videoResource struct {
	ID      string `json:"id"`
	Snippet struct {
		Title        string               `json:"title"`
		Description  string               `json:"description"`
		ChannelTitle string               `json:"channelTitle"`
		ChannelID    string               `json:"channelId"`
		PublishedAt  string               `json:"publishedAt"`
		Thumbnails   map[string]thumbnail `json:"thumbnails"`
	} `json:"snippet"`
	Statistics struct {
		ViewCount    string `json:"viewCount"`
		LikeCount    string `json:"likeCount"`
		CommentCount string `json:"commentCount"`
	} `json:"statistics"`
	ContentDetails struct {
		Duration string `json:"duration"`
		Caption  string `json:"caption"`
	} `json:"contentDetails"`
}

func (v videoResource) thumbnailURL() string {
	for _, size := range []string{"maxres", "high", "medium", "default"} {
		if t, ok := v.Snippet.Thumbnails[size]; ok && t.URL != "" {
			return t.URL
		}
	}
	return ""
}

// difficulty picks the level whose keyword list hits most often. Ties go to
// the easier level.
func difficulty(title, description string) core.DifficultyLevel {
	content := strings.ToLower(title + " " + description)
	beginner := countHits(content, beginnerKeywords)
	advanced := countHits(content, advancedKeywords)
	intermediate := countHits(content, intermediateKeywords)

	switch {
	case beginner >= advanced && beginner >= intermediate:
		return core.DifficultyBeginner
	case advanced >= intermediate:
		return core.DifficultyAdvanced
	default:
		return core.DifficultyIntermediate
	}
}

func countHits(content string, keywords []string) int {
	n := 0
	for _, k := range keywords {
		if strings.Contains(content, k) {
			n++
		}
	}
	return n
}

// skillTags matches plain words like "go" or "ai" on word boundaries and
// anything with punctuation or spaces as a substring.
func skillTags(title, description string) []string {
	content := strings.ToLower(title + " " + description)
	words := textutil.WordSet(content)

	var tags []string
	for _, skill := range techSkills {
		if isPlainWord(skill) {
			if _, ok := words[skill]; ok {
				tags = append(tags, skill)
			}
			continue
		}
		if strings.Contains(content, skill) {
			tags = append(tags, skill)
		}
	}
	return tags
}

func isPlainWord(s string) bool {
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}

// qualityScore blends reach, engagement and length. Educational videos of
// 5 to 30 minutes score best.
func qualityScore(views, likes, comments int64, duration time.Duration) float64 {
	if views <= 0 {
		return 0
	}

	likeRatio := float64(likes) / float64(views)
	commentRatio := float64(comments) / float64(views)
	viewScore := math.Min(math.Log10(float64(views))/7.0, 1.0)

	durationScore := 0.5
	if duration > 0 {
		minutes := duration.Minutes()
		switch {
		case minutes >= 5 && minutes <= 30:
			durationScore = 1.0
		case minutes >= 2 && minutes < 5, minutes > 30 && minutes <= 60:
			durationScore = 0.8
		case minutes > 60:
			durationScore = 0.6
		}
	}

	score := viewScore*0.3 +
		likeRatio*100*0.3 +
		commentRatio*500*0.2 +
		durationScore*0.2
	return math.Min(math.Max(score, 0), 1)
}

// parseCount reads the string-encoded statistics; hidden counts are absent.
func parseCount(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// toRecord converts an API video resource. Unparseable durations and dates
// are left unset rather than failing the whole video.
func toRecord(v videoResource) core.RawContentRecord {
	title := conv.HTMLToText(v.Snippet.Title)
	description := textutil.Truncate(conv.HTMLToText(v.Snippet.Description), maxDescriptionLength)

	duration, _ := parseDuration(v.ContentDetails.Duration)

	var published *time.Time
	if t, err := time.Parse(time.RFC3339, v.Snippet.PublishedAt); err == nil {
		published = &t
	}

	views := parseCount(v.Statistics.ViewCount)
	likes := parseCount(v.Statistics.LikeCount)
	comments := parseCount(v.Statistics.CommentCount)

	return core.RawContentRecord{
		Source: providerName,
		Item: core.ContentItem{
			ID:          "youtube:" + v.ID,
			Kind:        core.KindVideo,
			Title:       title,
			Description: description,
			URL:         watchURL + v.ID,
			Platform:    core.PlatformYouTube,
			ContentType: core.TypeVideo,
			IsFree:      true,
			Duration:    duration,
			PublishedAt: published,
			SkillTags:   skillTags(title, description),
			Difficulty:  difficulty(title, description),
			Quality:     qualityScore(views, likes, comments, duration),
			Video: &core.VideoDetails{
				VideoID:           v.ID,
				ChannelName:       v.Snippet.ChannelTitle,
				ChannelID:         v.Snippet.ChannelID,
				ViewCount:         views,
				LikeCount:         likes,
				CommentCount:      comments,
				ThumbnailURL:      v.thumbnailURL(),
				CaptionsAvailable: v.ContentDetails.Caption == "true",
			},
		},
	}
}
