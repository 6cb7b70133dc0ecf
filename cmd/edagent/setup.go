package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sandevgo/edagent/internal/config"
	"github.com/sandevgo/edagent/internal/core"
	"github.com/sandevgo/edagent/internal/metrics"
	"github.com/sandevgo/edagent/internal/providers/catalog"
	"github.com/sandevgo/edagent/internal/providers/llm"
	"github.com/sandevgo/edagent/internal/providers/search"
	"github.com/sandevgo/edagent/internal/providers/youtube"
	"github.com/sandevgo/edagent/internal/service/assessment"
	"github.com/sandevgo/edagent/internal/service/command"
	"github.com/sandevgo/edagent/internal/service/intent"
	"github.com/sandevgo/edagent/internal/service/learningpath"
	"github.com/sandevgo/edagent/internal/service/orchestrator"
	"github.com/sandevgo/edagent/internal/service/ranking"
	"github.com/sandevgo/edagent/internal/service/state"
	"github.com/sandevgo/edagent/internal/storage/sqlite"
	"github.com/sandevgo/edagent/internal/transport/api"
	"github.com/sandevgo/edagent/internal/transport/cli"
	"github.com/sandevgo/edagent/internal/transport/mcp"
	"github.com/sandevgo/edagent/internal/transport/telegram"
	"github.com/sandevgo/edagent/pkg/log"
	"github.com/sandevgo/edagent/pkg/srv"
)

// coachApp is everything a transport needs to talk to the coach.
type coachApp struct {
	appCfg   *config.AppConfig
	coach    *orchestrator.Orchestrator
	router   *command.Router
	store    *sqlite.Store
	registry *prometheus.Registry
	cleanups []srv.Service
}

func NewServices(ctx context.Context, stop func()) []srv.Service {
	logger := log.FromCtx(ctx)

	app := newCoachApp(ctx)

	transports, err := initTransports(ctx, app, stop)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize transports")
	}
	if len(transports) == 0 {
		logger.Warn().Msg("no transport enabled, set EDAGENT_ENABLE_CLI, _TELEGRAM, _HTTP or _MCP")
	}

	// Transports stop before storage closes.
	return append(transports, app.cleanups...)
}

func newCoachApp(ctx context.Context) *coachApp {
	logger := log.FromCtx(ctx)

	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)
	llmCfg := config.NewLLMConfig(ctx)
	ytCfg := config.NewYouTubeConfig(ctx)

	app := &coachApp{appCfg: appCfg}

	// 2. Storage
	if err := os.MkdirAll(appCfg.GetRuntimePath(), 0755); err != nil {
		logger.Fatal().Err(err).Msg("failed to create runtime directory")
	}
	db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	app.cleanups = append(app.cleanups, srv.NewCleanup("database", db.Close))
	app.store = sqlite.NewStore(db)

	// 3. AI Provider
	dynamic, err := llm.NewDynamicProvider(ctx, llmCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize LLM provider")
	}
	ai := llm.NewRetryingGenerator(dynamic, llmCfg.GetCallTimeout(), llmCfg.MaxAttempts, llmCfg.RetryBaseDelay)

	// 4. Content sources
	content := initContentSearch(ctx, ytCfg)

	// 5. Conversation state and telemetry
	states := state.NewStore(appCfg.StateMaxUsers, appCfg.StateTTL, state.WithEvictFunc(func(c state.Conversation) {
		if c.Assessment != nil {
			logger.Info().
				Str("user_id", c.UserID).
				Str("assessment_id", c.Assessment.ID).
				Str("status", string(c.Assessment.Status)).
				Msg("conversation evicted with unfinished assessment")
		}
	}))

	app.registry = prometheus.NewRegistry()
	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder := metrics.MustNew(app.registry, states.Len)

	// 6. Coach
	app.coach = orchestrator.New(
		orchestrator.Config{
			TurnTimeout:         appCfg.TurnTimeout,
			RecommendationLimit: appCfg.RecommendationLimit,
			PromptTokens:        appCfg.PromptContextTokens,
			Search: core.SearchFilters{
				MinViewCount: ytCfg.MinViewCount,
				MaxResults:   ytCfg.MaxResults,
			},
		},
		states,
		intent.NewRouter(),
		assessment.NewFlow(ai, app.store, assessment.WithPromptTokens(appCfg.PromptContextTokens)),
		learningpath.NewGenerator(ai, app.store),
		content,
		ranking.NewEngine(ranking.WithMinQuality(appCfg.MinQuality)),
		ai,
		app.store,
		orchestrator.WithHistory(app.store),
		orchestrator.WithRecorder(recorder),
	)

	// 7. Commands
	globalState := state.NewGlobalState(dynamic)
	app.router = command.New(command.NewCommands(llmCfg, globalState, dynamic, app.coach, app.store))

	logger.Info().
		Str("model", dynamic.GetModel()).
		Bool("youtube", ytCfg.Enabled()).
		Str("db", appCfg.GetDatabasePath()).
		Msg("coach initialized")

	return app
}

func initContentSearch(ctx context.Context, ytCfg *config.YouTubeConfig) core.ContentSearchProvider {
	logger := log.FromCtx(ctx)
	var sources []search.Source

	courses, err := catalog.NewProvider()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load course catalog")
	}
	sources = append(sources, search.Source{Name: "catalog", Provider: courses})

	if ytCfg.Enabled() {
		sources = append(sources, search.Source{Name: "youtube", Provider: youtube.NewProvider(ytCfg)})
	} else {
		logger.Warn().Msg("EDAGENT_YOUTUBE_API_KEY not set, video recommendations disabled")
	}

	return search.NewAggregator(sources...)
}

func initTransports(ctx context.Context, app *coachApp, stop func()) ([]srv.Service, error) {
	var services []srv.Service
	cfg := app.appCfg

	if cfg.IsTelegramSelected() {
		tgCfg := config.NewTelegramConfig(ctx)
		bot, err := telegram.NewBot(ctx, tgCfg, app.coach, app.router)
		if err != nil {
			return nil, err
		}
		services = append(services, bot)
	}

	if cfg.EnableHTTP {
		httpCfg := config.NewHTTPConfig(ctx)
		handler := api.NewHandler(app.coach, app.router, app.coach, app.store)
		services = append(services, api.NewServer(ctx, httpCfg, handler, app.registry))
	}

	if cfg.EnableMCP {
		services = append(services, mcp.NewServer(config.NewMCPConfig(ctx), app.coach, app.coach))
	}

	if cfg.EnableCLI {
		rl, err := cli.NewReadLine(app.coach, app.router, cfg)
		if err != nil {
			return nil, err
		}
		services = append(services, srv.StopOnExit(rl, stop))
	}

	return services, nil
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
