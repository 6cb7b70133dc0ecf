package telegram

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/sandevgo/edagent/internal/config"
	"github.com/sandevgo/edagent/internal/core"
	"github.com/sandevgo/edagent/pkg/log"
	tele "gopkg.in/telebot.v3"
)

const baseContextKey = "base_context"

const welcomeText = `Hi! I'm **EdAgent**, your career coach.

I can:
- assess your current skills
- build a learning path toward a goal
- find videos and courses on a topic

Send /help to see the commands.`

type Bot struct {
	bot    *tele.Bot
	cfg    *config.TelegramConfig
	coach  core.Coach
	router core.CmdRouter
	sender *sender
}

func NewBot(
	ctx context.Context,
	cfg *config.TelegramConfig,
	coach core.Coach,
	router core.CmdRouter,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: cfg.GetPollTimeout()},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:    b,
		cfg:    cfg,
		coach:  coach,
		router: router,
		sender: newSender(b),
	}

	// Use context from Signal with logger
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if c.Sender() == nil || !bot.cfg.IsAllowed(c.Sender().ID) {
				return nil
			}
			return next(c)
		}
	})

	b.Handle("/start", bot.handleStart)
	b.Handle(tele.OnText, bot.handleMessage)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Str("bot", b.bot.Me.Username).Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

func (b *Bot) handleStart(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	return b.sender.sendMarkdown(ctx, c.Chat(), welcomeText, suggestionKeyboard([]string{
		"Assess my skills",
		"Create a learning path",
	}))
}

func (b *Bot) handleMessage(c tele.Context) error {
	userID := fmt.Sprintf("telegram-%d", c.Sender().ID)
	ctx := log.WithFields(c.Get(baseContextKey).(context.Context), "chat_id", strconv.FormatInt(c.Chat().ID, 10))
	logger := log.FromCtx(ctx)

	if out, ok := b.router.Execute(ctx, userID, c.Text()); ok {
		return b.sender.sendMarkdown(ctx, c.Chat(), out, nil)
	}

	_ = c.Notify(tele.Typing)

	// Keep the typing indicator alive while the turn runs.
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(4 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				_ = c.Notify(tele.Typing)
			}
		}
	}()
	resp := b.coach.HandleMessage(ctx, userID, c.Text())
	close(done)

	if err := b.sender.sendMarkdown(ctx, c.Chat(), resp.Message, suggestionKeyboard(resp.SuggestedActions)); err != nil {
		logger.Error().Err(err).Msg("failed to deliver coach response")
		return err
	}
	return nil
}
