package assessment

import (
	"fmt"
	"strings"

	"github.com/sandevgo/edagent/internal/core"
	"github.com/sandevgo/edagent/pkg/textutil"
)

var CompletionActions = []string{
	"Create a learning path based on your skills",
	"Get content recommendations for improvement areas",
	"Take a more detailed assessment in a specific area",
}

// Encouragement picks the lead-in for the next question.
func Encouragement(progress float64, questionIndex int) string {
	switch {
	case questionIndex == 0:
		return "Great start!"
	case progress < 0.3:
		return "Thanks for that answer!"
	case progress < 0.6:
		return "You're doing great!"
	case progress < 0.9:
		return "Almost there!"
	default:
		return "Last question!"
	}
}

func writeBullets(sb *strings.Builder, title string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	if len(items) > limit {
		items = items[:limit]
	}
	fmt.Fprintf(sb, "**%s:**\n", title)
	for _, it := range items {
		fmt.Fprintf(sb, "• %s\n", it)
	}
	sb.WriteString("\n")
}

// Summary renders the assessment result as markdown.
func Summary(a core.SkillAssessment) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "**Skill Area:** %s\n", a.SkillArea)
	fmt.Fprintf(&sb, "**Overall Level:** %s\n", textutil.TitleCase(string(a.OverallLevel)))
	fmt.Fprintf(&sb, "**Confidence Score:** %.1f/1.0\n\n", a.ConfidenceScore)

	writeBullets(&sb, "Strengths", a.Strengths, 3)
	writeBullets(&sb, "Areas for Improvement", a.Weaknesses, 3)
	writeBullets(&sb, "Recommendations", a.Recommendations, 3)

	return strings.TrimRight(sb.String(), "\n")
}

func NextSteps(a core.SkillAssessment) string {
	var sb strings.Builder
	sb.WriteString("**Recommended Next Steps:**\n")

	switch a.OverallLevel {
	case core.SkillBeginner:
		sb.WriteString("• Start with foundational courses in your area of interest\n")
		sb.WriteString("• Focus on hands-on practice with simple projects\n")
	case core.SkillIntermediate:
		sb.WriteString("• Build more complex projects to strengthen your skills\n")
		sb.WriteString("• Consider specializing in specific areas\n")
	case core.SkillAdvanced:
		sb.WriteString("• Take on challenging projects or contribute to open source\n")
		sb.WriteString("• Consider mentoring others or teaching\n")
	}

	if len(a.Weaknesses) > 0 {
		w := a.Weaknesses
		if len(w) > 2 {
			w = w[:2]
		}
		fmt.Fprintf(&sb, "• Focus on improving: %s\n", strings.Join(w, ", "))
	}
	if len(a.Recommendations) > 0 {
		fmt.Fprintf(&sb, "• %s\n", a.Recommendations[0])
	}

	return strings.TrimRight(sb.String(), "\n")
}
