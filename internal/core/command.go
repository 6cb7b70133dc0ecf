package core

import (
	"context"
	"strings"
)

// CmdRouter answers slash commands before a message reaches the coach.
// The bool result is false when input is not a command at all.
type CmdRouter interface {
	Execute(ctx context.Context, userID, input string) (string, bool)
	ListCommands() []Command
}

type Command interface {
	Name() string
	Description() string
	Execute(ctx context.Context, userID string, args []string) (string, error)
}

// ParseCommand splits "/name arg1 arg2" into a lower-cased name and its
// arguments. Telegram appends the bot name in groups ("/status@edagent_bot"),
// which is dropped.
func ParseCommand(input string) (name string, args []string, ok bool) {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "/") {
		return "", nil, false
	}

	parts := strings.Fields(input)
	name = strings.ToLower(strings.TrimPrefix(parts[0], "/"))
	name, _, _ = strings.Cut(name, "@")
	if name == "" {
		return "", nil, false
	}
	return name, parts[1:], true
}
