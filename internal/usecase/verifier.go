package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/naka-gawa/github-harvest/internal/domain"
	"github.com/naka-gawa/github-harvest/internal/gateway"
)

// Check pairs a stored entry with the star count the API reports now.
type Check struct {
	Entry  domain.Entry
	Actual int
}

// Drift is the difference between the current and the stored star count.
func (c Check) Drift() int {
	return c.Actual - c.Entry.Stars
}

// Verifier cross-checks harvested entries against the GitHub API.
type Verifier struct {
	fetcher     gateway.Fetcher
	concurrency int
	logger      *zap.Logger
}

// NewVerifier creates a new Verifier instance. concurrency below 1 means one request at a time.
func NewVerifier(fetcher gateway.Fetcher, concurrency int, logger *zap.Logger) *Verifier {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Verifier{
		fetcher:     fetcher,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Verify fetches the current star count of every entry. Names are expected to carry prefix,
// which is stripped before querying. Results keep the order of entries.
func (v *Verifier) Verify(ctx context.Context, entries []domain.Entry, prefix string) ([]Check, error) {
	v.logger.Info("Usecase: Starting verification...", zap.Int("entries", len(entries)))

	checks := make([]Check, len(entries))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(v.concurrency)

	for i, entry := range entries {
		i, entry := i, entry
		eg.Go(func() error {
			stars, err := v.fetcher.FetchStargazerCount(egCtx, strings.TrimPrefix(entry.Name, prefix))
			if err != nil {
				return err
			}
			checks[i] = Check{Entry: entry, Actual: stars}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	v.logger.Info("Usecase: Verification complete.")
	return checks, nil
}
