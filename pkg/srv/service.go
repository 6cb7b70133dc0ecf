package srv

import (
	"context"
	"fmt"

	"github.com/sandevgo/edagent/pkg/log"
)

type Service interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// Name returns the service's String() if it has one, else its type.
func Name(s Service) string {
	if n, ok := s.(fmt.Stringer); ok {
		return n.String()
	}
	return fmt.Sprintf("%T", s)
}

// StartServices starts every service in its own goroutine. A start error is
// fatal.
func StartServices(ctx context.Context, services []Service) {
	logger := log.FromCtx(ctx)
	for _, service := range services {
		logger.Debug().Str("service", Name(service)).Msg("starting")
		go func(service Service) {
			if err := service.Start(ctx); err != nil {
				logger.Fatal().Err(err).Str("service", Name(service)).Msg("failed to start")
			}
		}(service)
	}
}

// ShutdownServices blocks until ctx is done, then shuts services down in order.
func ShutdownServices(ctx context.Context, services []Service) {
	<-ctx.Done()
	ShutdownNow(ctx, services)
}

// ShutdownNow shuts services down in order, logging and skipping failures.
func ShutdownNow(ctx context.Context, services []Service) {
	for _, service := range services {
		if err := service.Shutdown(ctx); err != nil {
			log.FromCtx(ctx).Error().Err(err).Str("service", Name(service)).Msg("failed to shutdown")
		}
	}
}
