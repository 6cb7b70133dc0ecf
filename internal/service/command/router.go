package command

import (
	"context"
	"fmt"
	"sort"

	"github.com/sandevgo/edagent/internal/core"
	"github.com/sandevgo/edagent/pkg/log"
)

type Router struct {
	commands map[string]core.Command
}

// New registers commands plus a /help command listing them all.
func New(commands []core.Command) *Router {
	c := &Router{
		commands: make(map[string]core.Command),
	}

	for _, cmd := range commands {
		c.commands[cmd.Name()] = cmd
	}
	help := NewHelpCommand(c)
	c.commands[help.Name()] = help
	return c
}

func (c *Router) Execute(ctx context.Context, userID, input string) (string, bool) {
	name, args, ok := core.ParseCommand(input)
	if !ok {
		return "", false
	}

	cmd, ok := c.commands[name]
	if !ok {
		return fmt.Sprintf("Unknown command: /%s. Try /help.", name), true
	}

	logger := log.FromCtx(ctx)
	logger.Debug().Str("command", name).Strs("args", args).Msg("executing command")

	result, err := cmd.Execute(ctx, userID, args)
	if err != nil {
		logger.Warn().Err(err).Str("command", name).Msg("command failed")
		return NewResponseFormatter().Error(name, err), true
	}
	return result, true
}

// ListCommands returns commands sorted by name.
func (c *Router) ListCommands() []core.Command {
	res := make([]core.Command, 0, len(c.commands))
	for _, cmd := range c.commands {
		res = append(res, cmd)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name() < res[j].Name() })
	return res
}
