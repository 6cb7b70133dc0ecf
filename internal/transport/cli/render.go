package cli

import (
	"fmt"
	"strings"

	"github.com/sandevgo/edagent/internal/core"
	"github.com/sandevgo/edagent/internal/service/ui"
)

func welcome() string {
	return ui.TitleStyle.Render(core.AppName+" career coach") + "\n" +
		ui.DescStyle.Render("Ask for a skill assessment, a learning path or resources. /help lists commands.")
}

// RenderResponse prints the message followed by the suggested replies.
// Recommendation links are already part of the message text.
func RenderResponse(resp core.Response) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(resp.Message))

	if len(resp.SuggestedActions) > 0 {
		b.WriteString("\n\n")
		b.WriteString(ui.DescStyle.Render("Try:"))
		for _, action := range resp.SuggestedActions {
			b.WriteString("\n  ")
			b.WriteString(ui.UsageStyle.Render("> " + action))
		}
	}

	if progress, ok := resp.Metadata["progress"].(float64); ok && resp.Type == core.ResponseAssessment {
		b.WriteString("\n")
		b.WriteString(ui.DescStyle.Render(fmt.Sprintf("assessment %.0f%% complete", progress*100)))
	}
	return b.String()
}
