package command

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/sandevgo/edagent/internal/core"
)

const maxListedModels = 25

type modelChanger interface {
	ChangeModel(ctx context.Context, model string) error
	ModelChangedAt() time.Time
}

type ModelCommand struct {
	cfg       core.ProviderConfig
	state     modelChanger
	lister    core.ModelLister
	formatter *ResponseFormatter
}

func NewModelCommand(
	cfg core.ProviderConfig,
	state modelChanger,
	lister core.ModelLister,
) *ModelCommand {
	return &ModelCommand{
		cfg:       cfg,
		state:     state,
		lister:    lister,
		formatter: NewResponseFormatter(),
	}
}

func (c *ModelCommand) Name() string {
	return "model"
}

func (c *ModelCommand) Description() string {
	return "Show, list or change the language model"
}

func (c *ModelCommand) Execute(ctx context.Context, userID string, args []string) (string, error) {
	if len(args) == 0 {
		return c.formatter.Combine(
			c.formatter.Info("Current Model"),
			c.formatter.Label("Provider", c.cfg.GetProvider()),
			c.formatter.Label("Model", c.cfg.GetModel()),
			c.formatter.Label("Changed", c.formatter.Time(c.state.ModelChangedAt())),
			c.formatter.Usage("/model [provider]/[model]", "/model list"),
			c.formatter.Examples([]string{
				"/model gemini/gemini-1.5-pro",
				"/model openai/gpt-4o-mini",
				"/model openrouter/anthropic/claude-3.5-sonnet",
			}),
		), nil
	}

	if args[0] == "list" {
		return c.list(ctx)
	}

	if err := c.state.ChangeModel(ctx, args[0]); err != nil {
		return "", fmt.Errorf("failed to set model: %w", err)
	}

	return c.formatter.Combine(
		c.formatter.Success(fmt.Sprintf("Model changed to: `%s/%s`", c.cfg.GetProvider(), c.cfg.GetModel())),
	), nil
}

func (c *ModelCommand) list(ctx context.Context) (string, error) {
	if c.lister == nil {
		return "", fmt.Errorf("model listing is not supported by %s", c.cfg.GetProvider())
	}
	models, err := c.lister.Models(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list models: %w", err)
	}
	if len(models) == 0 {
		return c.formatter.Combine(
			c.formatter.Info("Available Models"),
			c.formatter.Label("Status", "No models reported by the provider."),
		), nil
	}

	sort.Slice(models, func(i, j int) bool { return models[i].ID < models[j].ID })
	shown := models
	if len(shown) > maxListedModels {
		shown = shown[:maxListedModels]
	}

	names := make([]string, len(shown))
	for i, m := range shown {
		names[i] = fmt.Sprintf("`%s`", m.ID)
	}

	sections := []string{
		c.formatter.Info("Available Models"),
		c.formatter.Label("Provider", c.cfg.GetProvider()),
		c.formatter.Label("Count", strconv.Itoa(len(models))),
		"\n",
		c.formatter.List(names),
	}
	if len(models) > len(shown) {
		sections = append(sections, c.formatter.Tip(fmt.Sprintf("showing the first %d models", maxListedModels)))
	}
	return c.formatter.Combine(sections...), nil
}
