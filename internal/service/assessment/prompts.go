package assessment

import (
	"fmt"
	"strings"

	"github.com/sandevgo/edagent/pkg/textutil"
)

const assessmentPrompt = `Analyze the following user responses to assess their skill level in %s.

User responses:
%s

Provide a structured assessment in JSON format with the following structure:
{
    "skill_area": "%s",
    "overall_level": "beginner|intermediate|advanced",
    "confidence_score": 0.0-1.0,
    "strengths": ["list", "of", "identified", "strengths"],
    "weaknesses": ["list", "of", "areas", "for", "improvement"],
    "recommendations": ["specific", "learning", "recommendations"],
    "detailed_scores": {
        "category1": 0.0-1.0,
        "category2": 0.0-1.0
    }
}

Assessment Guidelines:
- Be encouraging while providing honest evaluation
- Focus on specific, actionable feedback
- Identify concrete next steps for improvement
- Consider the user's enthusiasm and willingness to learn
- Provide realistic but optimistic recommendations
Respond with the JSON object only.`

const adaptivePrompt = `You are assessing a learner's skills in %s.

Their answers so far:
%s

Write up to %d short follow-up questions that would help determine their level in %s.
Put each question on its own line and end it with a question mark. Do not add anything else.`

func formatResponses(responses []string) string {
	var sb strings.Builder
	for i, r := range responses {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, strings.TrimSpace(r))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func buildAssessmentPrompt(skillArea string, responses []string, maxTokens int) string {
	answers := textutil.TruncateTokens(formatResponses(responses), maxTokens)
	return fmt.Sprintf(assessmentPrompt, skillArea, answers, skillArea)
}

func buildAdaptivePrompt(skillArea string, responses []string, maxTokens int) string {
	answers := textutil.TruncateTokens(formatResponses(responses), maxTokens)
	return fmt.Sprintf(adaptivePrompt, skillArea, answers, MaxAdaptiveQuestions, skillArea)
}
