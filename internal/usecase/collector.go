package usecase

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/naka-gawa/github-harvest/internal/domain"
	"github.com/naka-gawa/github-harvest/internal/gateway"
	"github.com/naka-gawa/github-harvest/internal/store"
)

// APICollector gathers the same entries as Harvester from the REST search API instead of the web UI.
type APICollector struct {
	fetcher gateway.Fetcher
	opts    SearchOptions
	logger  *zap.Logger
}

// NewAPICollector creates a new APICollector instance.
func NewAPICollector(fetcher gateway.Fetcher, opts SearchOptions, logger *zap.Logger) *APICollector {
	return &APICollector{
		fetcher: fetcher,
		opts:    opts,
		logger:  logger,
	}
}

// Run pages through the search results, up to opts.Pages pages, then writes the entries once.
// The path filter has no repository-search equivalent and is not applied.
func (a *APICollector) Run(ctx context.Context) (*domain.Collection, error) {
	query := gateway.SearchQuery(a.opts.Language, a.opts.Stars, a.opts.Size)
	a.logger.Info("Usecase: Starting API harvest...", zap.String("query", query))

	collection := domain.NewCollection(a.opts.HostPrefix)
	page := 1
	for i := 0; i < a.opts.Pages && page != 0; i++ {
		result, err := a.fetcher.SearchRepositories(ctx, query, page)
		if err != nil {
			return nil, err
		}
		names := make([]string, 0, len(result.Hits))
		labels := make([]string, 0, len(result.Hits))
		for _, hit := range result.Hits {
			names = append(names, hit.FullName)
			labels = append(labels, strconv.Itoa(hit.Stars))
		}
		if err := collection.Merge(names, labels); err != nil {
			return nil, err
		}
		a.logger.Debug("page collected", zap.Int("page", page), zap.Int("collected", collection.Len()))
		page = result.NextPage
	}

	if err := store.AppendLines(a.opts.Output, collection.Lines()); err != nil {
		return nil, err
	}
	a.logger.Info("Usecase: Entries written.", zap.String("output", a.opts.Output))
	return collection, nil
}
