package scrape

import (
	"context"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/localsight/localsight/internal/model"
)

// MaxBatchURLs caps a single batch. Enforced before any network work.
const MaxBatchURLs = 50

// Orchestrator fans a batch of scrape targets out to the Fetcher and joins
// the results in input order.
type Orchestrator struct {
	fetcher       *Fetcher
	maxConcurrent int // 0 = one goroutine per URL, no limit
}

// NewOrchestrator creates an Orchestrator. maxConcurrent bounds in-flight
// pipelines; 0 leaves the fan-out unthrottled, with the batch ceiling as
// the only bound.
func NewOrchestrator(fetcher *Fetcher, maxConcurrent int) *Orchestrator {
	return &Orchestrator{fetcher: fetcher, maxConcurrent: maxConcurrent}
}

// Run scrapes every URL concurrently and returns per-URL results plus a
// batch summary. results[i] always corresponds to urls[i] regardless of
// completion order. Per-URL failures are captured in their ScrapeResult and
// never cancel sibling pipelines; cancelling ctx cancels the whole batch.
// Batch-level validation errors (empty batch, too many URLs) are returned
// before any fetch starts.
func (o *Orchestrator) Run(ctx context.Context, urls []string, countryHint string) ([]model.ScrapeResult, model.BatchSummary, error) {
	if len(urls) == 0 {
		return nil, model.BatchSummary{}, ErrNoURLs
	}
	if len(urls) > MaxBatchURLs {
		return nil, model.BatchSummary{}, eris.Wrapf(ErrBatchTooLarge, "maximum %d URLs allowed per request, got %d", MaxBatchURLs, len(urls))
	}

	batchID := uuid.New().String()
	zap.L().Info("scrape: starting batch",
		zap.String("batch_id", batchID),
		zap.Int("urls", len(urls)),
		zap.String("country", countryHint),
	)

	results := make([]model.ScrapeResult, len(urls))

	g, gCtx := errgroup.WithContext(ctx)
	if o.maxConcurrent > 0 {
		g.SetLimit(o.maxConcurrent)
	}
	for i, u := range urls {
		i, u := i, u
		g.Go(func() error {
			results[i] = o.fetcher.Scrape(gCtx, model.ScrapeTarget{URL: u, CountryHint: countryHint})
			return nil
		})
	}
	// Pipelines never return errors; Wait is a pure join.
	_ = g.Wait()

	summary := model.Summarize(results)
	zap.L().Info("scrape: batch complete",
		zap.String("batch_id", batchID),
		zap.Int("successful", summary.Successful),
		zap.Int("failed", summary.Failed),
		zap.Int("emails", summary.TotalEmails),
		zap.Int("phones", summary.TotalPhoneNumbers),
	)

	return results, summary, nil
}
