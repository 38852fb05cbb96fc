package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/nao1215/phishmodel/internal/model"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of URLs scored at once.
const DefaultConcurrency = 10

// Scorer produces a verdict for a single URL.
type Scorer interface {
	Score(rawURL string) model.Verdict
}

// BatchScorer scores many URLs concurrently with a bounded number of
// goroutines. Results keep the order of the input.
//
// Design decision: We use errgroup.SetLimit rather than a hand-written
// worker pool. Scoring is CPU bound and each call is independent, so the
// limit alone bounds resource use, and the group's context gives
// cancellation for free.
type BatchScorer struct {
	scorer Scorer

	// concurrency is the maximum number of concurrent scorings.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger
}

// BatchOption configures a BatchScorer.
type BatchOption func(*BatchScorer)

// WithBatchLogger sets a custom logger for batch scoring.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchScorer) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent scorings.
// Non-positive values keep the default.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchScorer) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchScorer creates a new BatchScorer around scorer.
func NewBatchScorer(scorer Scorer, opts ...BatchOption) *BatchScorer {
	bs := &BatchScorer{
		scorer:      scorer,
		concurrency: DefaultConcurrency,
	}

	for _, opt := range opts {
		opt(bs)
	}

	if bs.logger == nil {
		bs.logger = slog.Default()
	}

	return bs
}

// ScoreAll scores every URL and returns the verdicts in input order.
// When ctx is cancelled, scoring stops and the context error is returned
// together with the verdicts completed so far; the rest are zero values.
func (bs *BatchScorer) ScoreAll(ctx context.Context, urls []string) ([]model.Verdict, error) {
	bs.logger.Info("starting batch scoring",
		"total_urls", len(urls),
		"concurrency", bs.concurrency,
	)

	startTime := time.Now()

	// Each goroutine writes only its own slot, so no lock is needed.
	results := make([]model.Verdict, len(urls))

	err := bs.ScoreAllWithCallback(ctx, urls, func(v model.Verdict, i int) {
		results[i] = v
		bs.logger.Debug("url scored",
			"url", v.URL,
			"index", i+1,
			"probability", v.Probability,
			"decision", v.Decision.String(),
		)
	})

	bs.logger.Info("batch scoring complete",
		"total_urls", len(urls),
		"elapsed", time.Since(startTime),
	)

	return results, err
}

// ScoreAllWithCallback scores every URL and calls callback as each
// verdict completes, with the URL's index in urls. The callback runs on
// the scoring goroutine and must be safe for concurrent use. It returns
// the context error when ctx is cancelled before every URL was scored.
func (bs *BatchScorer) ScoreAllWithCallback(
	ctx context.Context,
	urls []string,
	callback func(verdict model.Verdict, index int),
) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bs.concurrency)

	for i, u := range urls {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			callback(bs.scorer.Score(u), i)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
