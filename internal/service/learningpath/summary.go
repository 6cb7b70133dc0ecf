package learningpath

import (
	"fmt"
	"strings"

	"github.com/sandevgo/edagent/internal/core"
	"github.com/sandevgo/edagent/pkg/textutil"
)

const (
	summaryMilestones  = 5
	milestoneDescLimit = 100
)

// Summary renders a path for chat: header, duration and the first milestones.
func Summary(p core.LearningPath) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "**%s**\n", p.Title)
	fmt.Fprintf(&sb, "Difficulty: %s\n", p.Difficulty)
	if days := p.EstimatedDurationDays(); days > 0 {
		fmt.Fprintf(&sb, "Estimated Duration: %d days\n", days)
	}

	sb.WriteString("\n**Milestones:**\n")
	for i, m := range p.Milestones {
		if i == summaryMilestones {
			break
		}
		fmt.Fprintf(&sb, "%d. %s\n", i+1, m.Title)
		if m.Description != "" {
			fmt.Fprintf(&sb, "   %s\n", textutil.Truncate(m.Description, milestoneDescLimit))
		}
	}
	if extra := len(p.Milestones) - summaryMilestones; extra > 0 {
		fmt.Fprintf(&sb, "... and %d more milestones\n", extra)
	}

	return strings.TrimRight(sb.String(), "\n")
}
