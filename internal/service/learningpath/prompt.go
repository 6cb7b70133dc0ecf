package learningpath

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sandevgo/edagent/internal/core"
)

const systemPrompt = `You are an expert learning path designer. Create comprehensive, beginner-friendly learning paths that:

1. Start from the user's current skill level
2. Progress logically through foundational to advanced concepts
3. Include practical, hands-on projects
4. Prioritize free, high-quality resources
5. Break learning into manageable 1-3 week milestones
6. Include diverse learning formats (videos, articles, practice exercises)
7. Provide clear success criteria for each milestone`

const formatPrompt = `Create a structured learning path with the following JSON format:
{
    "title": "Learning Path Title",
    "description": "Brief description of what this path will achieve",
    "difficulty_level": "beginner|intermediate|advanced",
    "prerequisites": ["list", "of", "prerequisites"],
    "target_skills": ["skills", "that", "will", "be", "learned"],
    "milestones": [
        {
            "title": "Milestone Title",
            "description": "What will be accomplished",
            "skills_to_learn": ["specific", "skills"],
            "prerequisites": ["required", "knowledge"],
            "estimated_duration_days": 14,
            "difficulty_level": "beginner|intermediate|advanced",
            "assessment_criteria": ["how", "to", "measure", "completion"],
            "resources": [
                {
                    "title": "Resource Title",
                    "url": "https://example.com",
                    "type": "video|course|article|interactive",
                    "is_free": true,
                    "duration_hours": 2
                }
            ]
        }
    ]
}

Guidelines:
- Create 4-8 milestones that build progressively
- Prioritize free resources (YouTube, free courses, documentation)
- Include realistic time estimates
- Make each milestone achievable in 1-3 weeks
- Provide specific, actionable assessment criteria
Respond with the JSON object only.`

func skillsSummary(skills map[string]core.SkillRecord) string {
	if len(skills) == 0 {
		return "No specific skills assessed yet"
	}
	names := make([]string, 0, len(skills))
	for name := range skills {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]string, 0, len(names))
	for _, name := range names {
		rec := skills[name]
		lines = append(lines, fmt.Sprintf("%s: %s (confidence: %.1f)", name, rec.Level, rec.Confidence))
	}
	return strings.Join(lines, "\n")
}

func preferencesSummary(p *core.Preferences) string {
	if p.IsEmpty() {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("User Learning Preferences:\n")
	if p.LearningStyle != "" {
		fmt.Fprintf(&sb, "- Learning style: %s\n", p.LearningStyle)
	}
	if p.TimeCommitmentHours > 0 {
		fmt.Fprintf(&sb, "- Time commitment: %d hours per week\n", p.TimeCommitmentHours)
	}
	if p.Budget != "" {
		fmt.Fprintf(&sb, "- Budget preference: %s\n", p.Budget)
	}
	if len(p.PreferredTypes) > 0 {
		types := make([]string, len(p.PreferredTypes))
		for i, t := range p.PreferredTypes {
			types[i] = string(t)
		}
		fmt.Fprintf(&sb, "- Preferred content types: %s\n", strings.Join(types, ", "))
	}
	if p.DifficultyPreference != "" {
		fmt.Fprintf(&sb, "- Difficulty preference: %s\n", p.DifficultyPreference)
	}
	return sb.String()
}

func buildPrompt(goal string, profile core.UserProfile) string {
	var sb strings.Builder
	sb.WriteString(systemPrompt)
	fmt.Fprintf(&sb, "\n\nGoal: %s\n\nCurrent Skills:\n%s\n", goal, skillsSummary(profile.Skills))
	if prefs := preferencesSummary(profile.Preferences); prefs != "" {
		sb.WriteString("\n")
		sb.WriteString(prefs)
	}
	sb.WriteString("\n")
	sb.WriteString(formatPrompt)
	return sb.String()
}
