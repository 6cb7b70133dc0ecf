package search

import (
	"context"
	"errors"
	"fmt"

	"github.com/sandevgo/edagent/internal/core"
	"github.com/sandevgo/edagent/pkg/log"
	"golang.org/x/sync/errgroup"
)

// Source names a ContentSearchProvider for logging and error reports.
type Source struct {
	Name     string
	Provider core.ContentSearchProvider
}

// Aggregator queries every source concurrently. One failing source is logged
// and skipped; the search fails only when all of them do.
type Aggregator struct {
	sources []Source
}

func NewAggregator(sources ...Source) *Aggregator {
	return &Aggregator{sources: sources}
}

func (a *Aggregator) Search(ctx context.Context, query string, filters core.SearchFilters) ([]core.RawContentRecord, error) {
	if len(a.sources) == 0 {
		return nil, nil
	}

	results := make([][]core.RawContentRecord, len(a.sources))
	errs := make([]error, len(a.sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range a.sources {
		g.Go(func() error {
			records, err := src.Provider.Search(gctx, query, filters)
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", src.Name, err)
				return nil
			}
			results[i] = records
			return nil
		})
	}
	_ = g.Wait()

	logger := log.FromCtx(ctx)
	var failed []error
	var merged []core.RawContentRecord
	for i, err := range errs {
		if err != nil {
			logger.Warn().Err(err).Str("source", a.sources[i].Name).Str("query", query).Msg("content source failed")
			failed = append(failed, err)
			continue
		}
		merged = append(merged, results[i]...)
	}

	if len(failed) == len(a.sources) {
		return nil, errors.Join(failed...)
	}
	return merged, nil
}
