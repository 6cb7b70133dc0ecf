package catalog

import (
	"context"
	_ "embed"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/sandevgo/edagent/internal/core"
	"github.com/sandevgo/edagent/pkg/textutil"
	"gopkg.in/yaml.v3"
)

const providerName = "catalog"

//go:embed courses.yaml
var embeddedCourses []byte

type courseEntry struct {
	ID             string   `yaml:"id"`
	Title          string   `yaml:"title"`
	Description    string   `yaml:"description"`
	URL            string   `yaml:"url"`
	Platform       string   `yaml:"platform"`
	Type           string   `yaml:"type"`
	Free           bool     `yaml:"free"`
	Price          float64  `yaml:"price"`
	DurationHours  float64  `yaml:"duration_hours"`
	Skills         []string `yaml:"skills"`
	Difficulty     string   `yaml:"difficulty"`
	Rating         float64  `yaml:"rating"`
	Instructor     string   `yaml:"instructor"`
	Institution    string   `yaml:"institution"`
	Enrollment     int64    `yaml:"enrollment"`
	CompletionRate float64  `yaml:"completion_rate"`
	Certificate    bool     `yaml:"certificate"`
	Modules        int      `yaml:"modules"`
	Assignments    int      `yaml:"assignments"`
	Published      string   `yaml:"published"`
}

type indexedCourse struct {
	item  core.ContentItem
	words map[string]struct{}
}

// Provider serves a curated, in-memory course list. It never calls out, so
// Search only fails on a cancelled context.
type Provider struct {
	courses []indexedCourse
}

// NewProvider loads the catalog compiled into the binary.
func NewProvider() (*Provider, error) {
	return Load(embeddedCourses)
}

// Load parses a YAML catalog. Every entry must produce a valid course item.
func Load(data []byte) (*Provider, error) {
	var doc struct {
		Courses []courseEntry `yaml:"courses"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	p := &Provider{courses: make([]indexedCourse, 0, len(doc.Courses))}
	seen := make(map[string]bool, len(doc.Courses))
	for i, e := range doc.Courses {
		item, err := e.toItem()
		if err != nil {
			return nil, fmt.Errorf("course %d (%s): %w", i, e.ID, err)
		}
		if seen[item.ID] {
			return nil, fmt.Errorf("course %d: duplicate id %s", i, e.ID)
		}
		seen[item.ID] = true

		words := textutil.WordSet(item.Title + " " + item.Description + " " + strings.Join(item.SkillTags, " "))
		p.courses = append(p.courses, indexedCourse{item: item, words: words})
	}
	return p, nil
}

func (e courseEntry) toItem() (core.ContentItem, error) {
	difficulty, ok := core.ParseDifficulty(e.Difficulty)
	if !ok {
		difficulty = core.DifficultyBeginner
	}

	contentType := core.TypeCourse
	if e.Type != "" {
		contentType = core.ContentType(strings.ToLower(e.Type))
	}

	platform := core.Platform(strings.ToLower(e.Platform))
	if platform == "" {
		platform = core.PlatformOther
	}

	var published *time.Time
	if e.Published != "" {
		t, err := time.Parse(time.DateOnly, e.Published)
		if err != nil {
			return core.ContentItem{}, fmt.Errorf("published: %w", err)
		}
		published = &t
	}

	details := &core.CourseDetails{
		CourseID:             e.ID,
		Instructor:           e.Instructor,
		Institution:          e.Institution,
		EnrollmentCount:      e.Enrollment,
		CompletionRate:       e.CompletionRate,
		CertificateAvailable: e.Certificate,
		Modules:              e.Modules,
		Assignments:          e.Assignments,
	}

	skills := make([]string, 0, len(e.Skills))
	for _, s := range e.Skills {
		skills = append(skills, strings.ToLower(strings.TrimSpace(s)))
	}

	item := core.ContentItem{
		ID:          providerName + ":" + e.ID,
		Kind:        core.KindCourse,
		Title:       e.Title,
		Description: e.Description,
		URL:         e.URL,
		Platform:    platform,
		ContentType: contentType,
		IsFree:      e.Free,
		Price:       e.Price,
		Duration:    time.Duration(e.DurationHours * float64(time.Hour)),
		PublishedAt: published,
		SkillTags:   skills,
		Difficulty:  difficulty,
		Quality:     CourseScore(e.Rating/5, details),
		Course:      details,
	}
	return item, item.Validate()
}

// CourseScore adds completion, certificate and structure bonuses to a base
// quality, capped at 1. Structure needs both modules and assignments.
func CourseScore(base float64, c *core.CourseDetails) float64 {
	score := math.Max(base, 0) + 0.1*c.CompletionRate
	if c.CertificateAvailable {
		score += 0.05
	}
	if c.Modules > 0 && c.Assignments > 0 {
		score += 0.05
	}
	return math.Min(score, 1)
}

// Search returns courses sharing at least one word with the query, best
// lexical match first and quality second.
func (p *Provider) Search(ctx context.Context, query string, filters core.SearchFilters) ([]core.RawContentRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	queryWords := textutil.WordSet(query)
	if len(queryWords) == 0 {
		return nil, nil
	}

	type hit struct {
		item  core.ContentItem
		score int
	}
	var hits []hit
	for _, c := range p.courses {
		if filters.FreeOnly && !c.item.IsFree {
			continue
		}
		if filters.MaxDuration > 0 && c.item.Duration > filters.MaxDuration {
			continue
		}
		n := 0
		for w := range queryWords {
			if _, ok := c.words[w]; ok {
				n++
			}
		}
		if n > 0 {
			hits = append(hits, hit{item: c.item, score: n})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return hits[i].item.Quality > hits[j].item.Quality
	})

	if filters.MaxResults > 0 && len(hits) > filters.MaxResults {
		hits = hits[:filters.MaxResults]
	}

	records := make([]core.RawContentRecord, 0, len(hits))
	for _, h := range hits {
		records = append(records, core.RawContentRecord{Source: providerName, Item: cloneItem(h.item)})
	}
	return records, nil
}

// cloneItem keeps callers from reaching into the shared catalog.
func cloneItem(item core.ContentItem) core.ContentItem {
	item.SkillTags = append([]string(nil), item.SkillTags...)
	if item.Course != nil {
		course := *item.Course
		item.Course = &course
	}
	if item.PublishedAt != nil {
		t := *item.PublishedAt
		item.PublishedAt = &t
	}
	return item
}
