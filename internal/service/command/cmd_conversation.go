package command

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/sandevgo/edagent/internal/core"
	"github.com/sandevgo/edagent/internal/service/orchestrator"
)

type conversationControl interface {
	Status(userID string) orchestrator.StateSnapshot
	Reset(userID string)
}

type profileReader interface {
	GetProfile(ctx context.Context, userID string) (core.UserProfile, error)
}

type StatusCommand struct {
	conv      conversationControl
	formatter *ResponseFormatter
}

func NewStatusCommand(conv conversationControl) *StatusCommand {
	return &StatusCommand{conv: conv, formatter: NewResponseFormatter()}
}

func (c *StatusCommand) Name() string        { return "status" }
func (c *StatusCommand) Description() string { return "Show the current conversation state" }

func (c *StatusCommand) Execute(ctx context.Context, userID string, args []string) (string, error) {
	snap := c.conv.Status(userID)

	sections := []string{
		c.formatter.Info("Conversation"),
		c.formatter.Label("State", string(snap.State)),
		c.formatter.Label("Messages", strconv.Itoa(snap.MessageCount)),
	}
	if !snap.LastActivity.IsZero() {
		sections = append(sections, c.formatter.Label("Last activity", c.formatter.Time(snap.LastActivity)))
	}
	if a := snap.Assessment; a != nil {
		sections = append(sections,
			c.formatter.Label("Skill area", a.SkillArea),
			c.formatter.Label("Progress", c.formatter.Progress(a.Answered, a.TotalQuestions)),
		)
	}
	return c.formatter.Combine(sections...), nil
}

type ResetCommand struct {
	conv      conversationControl
	formatter *ResponseFormatter
}

func NewResetCommand(conv conversationControl) *ResetCommand {
	return &ResetCommand{conv: conv, formatter: NewResponseFormatter()}
}

func (c *ResetCommand) Name() string        { return "reset" }
func (c *ResetCommand) Description() string { return "Forget the current conversation and start over" }

func (c *ResetCommand) Execute(ctx context.Context, userID string, args []string) (string, error) {
	c.conv.Reset(userID)
	return c.formatter.Combine(
		c.formatter.Success("Conversation reset"),
		c.formatter.Tip("Your saved skills and goals are kept. Say \"assess my skills\" to start again."),
	), nil
}

type ProfileCommand struct {
	store     profileReader
	formatter *ResponseFormatter
}

func NewProfileCommand(store profileReader) *ProfileCommand {
	return &ProfileCommand{store: store, formatter: NewResponseFormatter()}
}

func (c *ProfileCommand) Name() string        { return "profile" }
func (c *ProfileCommand) Description() string { return "Show your stored skills and goals" }

func (c *ProfileCommand) Execute(ctx context.Context, userID string, args []string) (string, error) {
	p, err := c.store.GetProfile(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to load profile: %w", err)
	}

	sections := []string{c.formatter.Info("Your Profile")}

	if len(p.Skills) == 0 {
		sections = append(sections, c.formatter.Label("Skills", "none assessed yet"))
	} else {
		sections = append(sections, c.formatter.Section("📊", "Skills", c.formatter.Skills(p.Skills)))
	}

	if len(p.CareerGoals) == 0 {
		sections = append(sections, c.formatter.Label("Goals", "none set"))
	} else {
		sections = append(sections, c.formatter.Section("🎯", "Goals", c.formatter.List(p.CareerGoals)))
	}

	if prefs := p.Preferences; !prefs.IsEmpty() {
		var parts []string
		if prefs.LearningStyle != "" {
			parts = append(parts, "style "+string(prefs.LearningStyle))
		}
		if prefs.Budget != "" {
			parts = append(parts, "budget "+string(prefs.Budget))
		}
		if prefs.TimeCommitmentHours > 0 {
			parts = append(parts, fmt.Sprintf("%dh/week", prefs.TimeCommitmentHours))
		}
		if prefs.DifficultyPreference != "" {
			parts = append(parts, "difficulty "+string(prefs.DifficultyPreference))
		}
		sections = append(sections, c.formatter.Label("Preferences", strings.Join(parts, ", ")))
	}

	return c.formatter.Combine(sections...), nil
}

type HelpCommand struct {
	router    *Router
	formatter *ResponseFormatter
}

func NewHelpCommand(router *Router) *HelpCommand {
	return &HelpCommand{router: router, formatter: NewResponseFormatter()}
}

func (c *HelpCommand) Name() string        { return "help" }
func (c *HelpCommand) Description() string { return "List available commands" }

func (c *HelpCommand) Execute(ctx context.Context, userID string, args []string) (string, error) {
	cmds := c.router.ListCommands()
	lines := make([]string, len(cmds))
	for i, cmd := range cmds {
		lines[i] = fmt.Sprintf("**/%s**  %s", cmd.Name(), cmd.Description())
	}
	return c.formatter.Combine(
		c.formatter.Info("Commands"),
		c.formatter.List(lines),
		c.formatter.Tip("Anything else you type goes to your career coach."),
	), nil
}
