package orchestrator

import (
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"

	"github.com/sandevgo/edagent/internal/core"
	"github.com/sandevgo/edagent/pkg/textutil"
)

const (
	minChatResponseLen = 10
	maxChatResponseLen = 2000

	chatFallbackMessage = "I'm here to help with your career and learning goals! " +
		"Could you please rephrase your question or provide more details " +
		"so I can give you the best possible guidance?"
)

var (
	boldRe   = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicRe = regexp.MustCompile(`\*(.*?)\*`)
	codeRe   = regexp.MustCompile("`(.*?)`")
)

// CleanChatResponse normalizes model chat output into plain text. Angle
// brackets are kept as written since replies often quote code. The second
// result is false when the output was unusable and the stock reply was used.
func CleanChatResponse(text string) (string, bool) {
	text = html.UnescapeString(text)
	text = textutil.CollapseSpaces(text)
	text = boldRe.ReplaceAllString(text, "$1")
	text = italicRe.ReplaceAllString(text, "$1")
	text = codeRe.ReplaceAllString(text, "$1")
	text = strings.TrimSpace(text)

	if len([]rune(text)) < minChatResponseLen {
		return chatFallbackMessage, false
	}
	return textutil.Truncate(text, maxChatResponseLen), true
}

// FormatRecommendations renders ranked items as a numbered markdown list.
func FormatRecommendations(items []core.ContentItem) string {
	var sb strings.Builder
	for i, it := range items {
		fmt.Fprintf(&sb, "%d. **%s**\n", i+1, it.Title)
		fmt.Fprintf(&sb, "   Platform: %s\n", it.Platform)
		fmt.Fprintf(&sb, "   Type: %s\n", it.ContentType)
		if it.Difficulty != "" {
			fmt.Fprintf(&sb, "   Level: %s\n", it.Difficulty)
		}
		if it.Duration > 0 {
			fmt.Fprintf(&sb, "   Duration: %s\n", formatDuration(it))
		}
		if it.IsFree {
			sb.WriteString("   Free\n")
		} else if it.Price > 0 {
			fmt.Fprintf(&sb, "   Price: $%.2f\n", it.Price)
		}
		fmt.Fprintf(&sb, "   Match: %.0f%%\n", it.Composite*100)
		fmt.Fprintf(&sb, "   %s\n\n", it.URL)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func formatDuration(it core.ContentItem) string {
	d := it.Duration.Round(time.Minute)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	switch {
	case h == 0:
		return fmt.Sprintf("%d min", m)
	case m == 0:
		return fmt.Sprintf("%d h", h)
	default:
		return fmt.Sprintf("%d h %d min", h, m)
	}
}
