package log

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// GooseLogger routes goose migration output through zerolog. Goose terminates
// most messages with a newline, which the console writer would double.
type GooseLogger struct {
	logger zerolog.Logger
}

func NewGooseLoggerFromCtx(ctx context.Context) *GooseLogger {
	return &GooseLogger{
		logger: FromCtx(ctx).With().Str("component", "migrations").Logger(),
	}
}

func (g *GooseLogger) Fatalf(format string, v ...any) {
	g.logger.Fatal().Msg(trimMsg(format, v))
}

func (g *GooseLogger) Printf(format string, v ...any) {
	g.logger.Debug().Msg(trimMsg(format, v))
}

func trimMsg(format string, v []any) string {
	return strings.TrimRight(fmt.Sprintf(format, v...), "\n")
}
