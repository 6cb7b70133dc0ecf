package assessment

import (
	"regexp"
	"strings"

	"github.com/sandevgo/edagent/pkg/textutil"
)

const (
	// FixedQuestionCount is the size of the opening question bank.
	FixedQuestionCount = 5
	// AdaptiveQuestionTrigger is the number of answers after which the
	// session is extended once with area-specific questions.
	AdaptiveQuestionTrigger = 3
	// MaxAdaptiveQuestions caps how many questions the extension may add.
	MaxAdaptiveQuestions = 3
	// MaxQuestions bounds the length of any session.
	MaxQuestions = FixedQuestionCount + MaxAdaptiveQuestions

	GeneralSkillArea = "General"
)

var fixedQuestions = [FixedQuestionCount]string{
	"What's your current experience level with technology and computers?",
	"Have you done any programming or coding before? If so, what languages or tools?",
	"What type of career or role are you most interested in pursuing?",
	"How much time can you dedicate to learning each week?",
	"What's your preferred way of learning - videos, reading, hands-on practice, or a mix?",
}

var fallbackQuestions = map[string][]string{
	"Programming": {
		"What programming languages have you used, if any?",
		"Have you built any applications or websites?",
		"How comfortable are you with debugging code?",
	},
	"Web Development": {
		"Have you created any websites before?",
		"Are you familiar with HTML, CSS, or JavaScript?",
		"What web development tools have you used?",
	},
	"Data Science": {
		"Have you worked with data analysis before?",
		"Are you familiar with Excel, SQL, or Python for data?",
		"What types of data problems interest you?",
	},
	"Design": {
		"Have you created any visual designs or graphics?",
		"What design tools have you used?",
		"How do you approach solving design problems?",
	},
}

var defaultFallbackQuestions = []string{
	"What specific skills in this area interest you most?",
	"Have you had any formal or informal training in this field?",
	"What would success look like for you in this area?",
}

// FallbackQuestions returns the canned follow-ups for a skill area.
func FallbackQuestions(skillArea string) []string {
	if qs, ok := fallbackQuestions[skillArea]; ok {
		return append([]string(nil), qs...)
	}
	return append([]string(nil), defaultFallbackQuestions...)
}

type skillArea struct {
	name     string
	keywords []string
}

// skillAreas are scored in this order; ties go to the earliest entry.
var skillAreas = []skillArea{
	{"programming", []string{"code", "coding", "program", "python", "javascript", "java", "c++", "software", "development"}},
	{"web_development", []string{"website", "web", "html", "css", "frontend", "backend", "react", "angular", "vue"}},
	{"data_science", []string{"data", "analysis", "statistics", "machine learning", "pandas", "numpy", "sql", "database"}},
	{"design", []string{"design", "ui", "ux", "figma", "photoshop", "graphic", "visual", "layout"}},
	{"marketing", []string{"marketing", "social media", "seo", "advertising", "campaign", "brand"}},
	{"business", []string{"business", "management", "strategy", "finance", "accounting", "operations"}},
}

// InferSkillArea scores the answers against keyword dictionaries and returns
// the title-cased winner, or "General" when nothing matches.
func InferSkillArea(responses []string) string {
	text := strings.ToLower(strings.Join(responses, " "))

	best, bestScore := "", 0
	for _, area := range skillAreas {
		score := 0
		for _, kw := range area.keywords {
			if strings.Contains(text, kw) {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = area.name, score
		}
	}
	if bestScore == 0 {
		return GeneralSkillArea
	}
	return textutil.TitleCase(best)
}

var (
	numberedPrefix = regexp.MustCompile(`^\d+[.)]\s*`)
	bulletPrefix   = regexp.MustCompile(`^[-*•]\s*`)
)

// ParseQuestions extracts up to MaxAdaptiveQuestions question lines from AI output.
func ParseQuestions(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.Trim(strings.TrimSpace(line), `"`))
		if !strings.HasSuffix(line, "?") {
			continue
		}
		line = numberedPrefix.ReplaceAllString(line, "")
		line = bulletPrefix.ReplaceAllString(line, "")
		line = strings.TrimSpace(strings.Trim(line, `"`))
		if len(line) <= 10 {
			continue
		}
		out = append(out, line)
		if len(out) == MaxAdaptiveQuestions {
			break
		}
	}
	return out
}
