package ranking

import (
	"fmt"
	"time"

	"github.com/sandevgo/edagent/internal/core"
)

var refNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func video(id, title string, quality float64, tags ...string) core.ContentItem {
	return core.ContentItem{
		ID:          id,
		Kind:        core.KindVideo,
		Title:       title,
		URL:         fmt.Sprintf("https://www.youtube.com/watch?v=%s", id),
		Platform:    core.PlatformYouTube,
		ContentType: core.TypeVideo,
		IsFree:      true,
		Difficulty:  core.DifficultyBeginner,
		SkillTags:   tags,
		Quality:     quality,
		Video:       &core.VideoDetails{VideoID: id},
	}
}

func course(id, title string, price float64, quality float64) core.ContentItem {
	return core.ContentItem{
		ID:          id,
		Kind:        core.KindCourse,
		Title:       title,
		URL:         "https://courses.example.com/" + id,
		Platform:    core.PlatformUdemy,
		ContentType: core.TypeCourse,
		IsFree:      price == 0,
		Price:       price,
		Difficulty:  core.DifficultyIntermediate,
		Quality:     quality,
		Course:      &core.CourseDetails{CourseID: id},
	}
}

func daysAgo(d int) *time.Time {
	t := refNow.Add(-time.Duration(d) * 24 * time.Hour)
	return &t
}
