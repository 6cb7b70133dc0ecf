package command

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sandevgo/edagent/internal/core"
)

const progressWidth = 10

// ResponseFormatter renders command replies as Markdown. Every transport
// converts Markdown on its own, so nothing here is channel specific.
type ResponseFormatter struct {
	timeLayout string
}

func NewResponseFormatter() *ResponseFormatter {
	return &ResponseFormatter{timeLayout: "2006-01-02 15:04"}
}

func (f *ResponseFormatter) Info(title string) string {
	return "⚙️ **" + title + "**\n\n"
}

func (f *ResponseFormatter) Success(message string) string {
	return "✅ **" + message + "**\n"
}

func (f *ResponseFormatter) Error(command string, err error) string {
	return fmt.Sprintf("❌ **/%s failed**\n\n**Issue**: %v\n", command, err)
}

func (f *ResponseFormatter) Label(label, value string) string {
	return fmt.Sprintf("**%s**  ›  `%s`\n", label, value)
}

func (f *ResponseFormatter) Usage(lines ...string) string {
	return "**Usage**:\n```\n" + strings.Join(lines, "\n") + "\n```\n"
}

func (f *ResponseFormatter) Examples(examples []string) string {
	var sb strings.Builder
	sb.WriteString("**Examples**:\n")
	for _, ex := range examples {
		fmt.Fprintf(&sb, "`%s`\n", ex)
	}
	return sb.String()
}

func (f *ResponseFormatter) List(items []string) string {
	var sb strings.Builder
	for _, item := range items {
		sb.WriteString("› " + item + "\n")
	}
	return sb.String()
}

func (f *ResponseFormatter) Tip(text string) string {
	return "**Tip**: " + text + "\n"
}

func (f *ResponseFormatter) Section(emoji, title, content string) string {
	return fmt.Sprintf("%s **%s**\n%s\n", emoji, title, content)
}

// Time renders a timestamp in local time, or "never" for the zero value.
func (f *ResponseFormatter) Time(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.Local().Format(f.timeLayout)
}

// Progress draws a fixed width bar like "▰▰▰▱▱▱▱▱▱▱ 3/10".
func (f *ResponseFormatter) Progress(done, total int) string {
	if total <= 0 {
		return "0/0"
	}
	filled := min(max(done*progressWidth/total, 0), progressWidth)
	return strings.Repeat("▰", filled) + strings.Repeat("▱", progressWidth-filled) +
		fmt.Sprintf(" %d/%d", done, total)
}

// Skills lists skill records sorted by name.
func (f *ResponseFormatter) Skills(skills map[string]core.SkillRecord) string {
	names := make([]string, 0, len(skills))
	for name := range skills {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]string, len(names))
	for i, name := range names {
		rec := skills[name]
		lines[i] = fmt.Sprintf("**%s**: %s (confidence %.1f)", name, rec.Level, rec.Confidence)
	}
	return f.List(lines)
}

func (f *ResponseFormatter) Combine(sections ...string) string {
	return strings.Join(sections, "\n")
}
