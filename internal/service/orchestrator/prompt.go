package orchestrator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sandevgo/edagent/internal/core"
	"github.com/sandevgo/edagent/pkg/textutil"
)

const coachPrompt = `You are EdAgent, a supportive and encouraging AI career coach designed to help beginners learn new skills and advance their careers. Your personality is:

- Warm, friendly, and encouraging
- Patient and understanding with beginners
- Practical and action-oriented
- Focused on free and affordable learning resources

Guidelines:
- Ask clarifying questions when users express uncertainty
- Remember and reference previous conversation context
- Break down complex learning paths into manageable steps
- Prioritize free resources but mention quality paid alternatives when relevant
- Provide specific, actionable advice rather than generic responses
- Keep answers under 300 words`

func profileContext(p core.UserProfile) string {
	var lines []string
	if len(p.Skills) > 0 {
		names := make([]string, 0, len(p.Skills))
		for name := range p.Skills {
			names = append(names, name)
		}
		sort.Strings(names)
		skills := make([]string, len(names))
		for i, name := range names {
			skills[i] = fmt.Sprintf("%s (%s)", name, p.Skills[name].Level)
		}
		lines = append(lines, "Current skills: "+strings.Join(skills, ", "))
	}
	if len(p.CareerGoals) > 0 {
		lines = append(lines, "Career goals: "+strings.Join(p.CareerGoals, ", "))
	}
	if prefs := p.Preferences; !prefs.IsEmpty() {
		if prefs.LearningStyle != "" {
			lines = append(lines, "Learning style: "+string(prefs.LearningStyle))
		}
		if prefs.Budget != "" {
			lines = append(lines, "Budget: "+string(prefs.Budget))
		}
		if prefs.TimeCommitmentHours > 0 {
			lines = append(lines, fmt.Sprintf("Time available: %d hours per week", prefs.TimeCommitmentHours))
		}
	}
	return strings.Join(lines, "\n")
}

// historyContext renders recent turns oldest first, keeping the newest part
// within maxTokens.
func historyContext(turns []core.ConversationTurn, maxTokens int) string {
	if len(turns) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, t := range turns {
		fmt.Fprintf(&sb, "User: %s\nEdAgent: %s\n", t.Message, textutil.CollapseSpaces(t.Response))
	}
	return textutil.TruncateTokens(sb.String(), maxTokens)
}

func buildChatPrompt(message string, profile core.UserProfile, history []core.ConversationTurn, maxTokens int) string {
	var sb strings.Builder
	sb.WriteString(coachPrompt)
	if pc := profileContext(profile); pc != "" {
		sb.WriteString("\n\nUser context:\n")
		sb.WriteString(pc)
	}
	if hc := historyContext(history, maxTokens); hc != "" {
		sb.WriteString("\n\nRecent conversation:\n")
		sb.WriteString(hc)
	}
	fmt.Fprintf(&sb, "\n\nUser message: %s\n\nResponse:", message)
	return sb.String()
}
