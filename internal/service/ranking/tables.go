package ranking

import "github.com/sandevgo/edagent/internal/core"

// Composite weights, summing to 1.
const (
	WeightSkillRelevance            = 0.25
	WeightGoalAlignment             = 0.20
	WeightQuality                   = 0.15
	WeightLearningProgression       = 0.15
	WeightPreferenceAlignment       = 0.10
	WeightDifficultyAppropriateness = 0.10
	WeightFreshness                 = 0.05
)

// progressionTable scores an item difficulty against the user's recorded level.
var progressionTable = map[core.SkillLevel]map[core.DifficultyLevel]float64{
	core.SkillBeginner: {
		core.DifficultyBeginner:     1.0,
		core.DifficultyIntermediate: 0.6,
		core.DifficultyAdvanced:     0.2,
		core.DifficultyExpert:       0.1,
	},
	core.SkillIntermediate: {
		core.DifficultyBeginner:     0.4,
		core.DifficultyIntermediate: 1.0,
		core.DifficultyAdvanced:     0.7,
		core.DifficultyExpert:       0.3,
	},
	core.SkillAdvanced: {
		core.DifficultyBeginner:     0.1,
		core.DifficultyIntermediate: 0.5,
		core.DifficultyAdvanced:     1.0,
		core.DifficultyExpert:       0.8,
	},
}

// newSkillTable applies to skills the user has no record of.
var newSkillTable = map[core.DifficultyLevel]float64{
	core.DifficultyBeginner:     0.9,
	core.DifficultyIntermediate: 0.5,
	core.DifficultyAdvanced:     0.2,
	core.DifficultyExpert:       0.1,
}

// Confidence tiers for difficulty appropriateness.
const (
	lowConfidence  = 0.4
	highConfidence = 0.7
)

var (
	lowConfidenceTable = map[core.DifficultyLevel]float64{
		core.DifficultyBeginner:     1.0,
		core.DifficultyIntermediate: 0.5,
		core.DifficultyAdvanced:     0.2,
		core.DifficultyExpert:       0.1,
	}
	midConfidenceTable = map[core.DifficultyLevel]float64{
		core.DifficultyBeginner:     0.6,
		core.DifficultyIntermediate: 1.0,
		core.DifficultyAdvanced:     0.6,
		core.DifficultyExpert:       0.3,
	}
	highConfidenceTable = map[core.DifficultyLevel]float64{
		core.DifficultyBeginner:     0.3,
		core.DifficultyIntermediate: 0.7,
		core.DifficultyAdvanced:     1.0,
		core.DifficultyExpert:       0.9,
	}
)

// goalTerms maps a goal phrase to the terms that indicate related content.
// Ordered so iteration is deterministic.
var goalTerms = []struct {
	phrase string
	terms  []string
}{
	{"web developer", []string{"html", "css", "javascript", "react", "frontend", "backend", "web development", "node.js"}},
	{"web development", []string{"html", "css", "javascript", "react", "frontend", "backend", "node.js"}},
	{"data scientist", []string{"python", "statistics", "machine learning", "pandas", "data science", "sql", "analytics"}},
	{"data analyst", []string{"excel", "sql", "statistics", "analytics", "tableau", "python"}},
	{"software engineer", []string{"programming", "algorithms", "data structures", "git", "python", "java", "software"}},
	{"software developer", []string{"programming", "algorithms", "git", "python", "java", "software"}},
	{"machine learning", []string{"python", "machine learning", "ai", "neural", "tensorflow", "pytorch"}},
	{"mobile developer", []string{"mobile development", "swift", "kotlin", "android", "ios", "flutter"}},
	{"devops", []string{"docker", "kubernetes", "ci/cd", "aws", "linux", "cloud"}},
	{"designer", []string{"design", "ui", "ux", "figma", "prototyping"}},
	{"marketing", []string{"seo", "marketing", "social media", "analytics", "content"}},
}

// styleTypes lists the content types that suit each learning style.
var styleTypes = map[core.LearningStyle][]core.ContentType{
	core.StyleVisual:      {core.TypeVideo, core.TypeInteractive, core.TypeCourse},
	core.StyleAuditory:    {core.TypePodcast, core.TypeVideo},
	core.StyleKinesthetic: {core.TypeInteractive, core.TypeTutorial, core.TypeCourse},
	core.StyleReading:     {core.TypeArticle, core.TypeBook, core.TypeDocumentation},
}
