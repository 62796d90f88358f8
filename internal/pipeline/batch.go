package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/nao1215/uniscout/internal/browser"
	"github.com/nao1215/uniscout/internal/model"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency processes institutions one at a time.
const DefaultConcurrency = 1

// Factory builds the pipeline of one institution around a worker's browser.
type Factory func(b browser.Browser) *Pipeline

// BatchProcessor runs the pipelines of many institutions on a bounded pool
// of workers.
//
// Every worker owns one browser session, opened lazily through the scoped
// browser.With block and closed when the worker runs out of work. Sessions
// are never shared between workers.
type BatchProcessor struct {
	// factory creates a new pipeline for each institution.
	factory Factory

	// launcher starts the browser session of each worker. Nil runs every
	// pipeline without a browser.
	launcher browser.Launcher

	// concurrency is the number of workers.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger

	// onComplete is called after each institution finishes.
	onComplete func(report *model.InstitutionReport, index int)
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the number of workers.
// Default is DefaultConcurrency if not specified.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithLauncher sets the browser launcher of the workers.
func WithLauncher(l browser.Launcher) BatchOption {
	return func(b *BatchProcessor) {
		b.launcher = l
	}
}

// WithOnComplete registers a callback invoked from the worker goroutine
// after each institution. It must be safe for concurrent use.
func WithOnComplete(fn func(report *model.InstitutionReport, index int)) BatchOption {
	return func(b *BatchProcessor) {
		b.onComplete = fn
	}
}

// NewBatchProcessor creates a new BatchProcessor.
func NewBatchProcessor(factory Factory, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		factory:     factory,
		concurrency: DefaultConcurrency,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch runs the pipeline of every report. Reports are filled in
// place; a failing institution only records errors on its own report.
//
// The returned error is non-nil only when ctx is cancelled.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, reports []*model.InstitutionReport) error {
	bp.logger.Info("starting batch processing",
		"total_institutions", len(reports),
		"concurrency", bp.concurrency,
	)
	startTime := time.Now()

	jobs := make(chan int)
	workers := min(bp.concurrency, len(reports))

	g, gctx := errgroup.WithContext(ctx)
	for w := range workers {
		g.Go(func() error {
			return bp.work(gctx, w, reports, jobs)
		})
	}

feed:
	for i := range reports {
		select {
		case jobs <- i:
		case <-gctx.Done():
			break feed
		}
	}
	close(jobs)

	err := g.Wait()
	bp.logger.Info("batch processing complete",
		"total_institutions", len(reports),
		"elapsed", time.Since(startTime),
	)
	if err != nil {
		return err
	}
	// gctx is done once Wait returns.
	return ctx.Err()
}

func (bp *BatchProcessor) work(ctx context.Context, worker int, reports []*model.InstitutionReport, jobs <-chan int) error {
	if bp.launcher == nil {
		bp.drain(ctx, nil, reports, jobs)
		return nil
	}

	err := browser.With(ctx, browser.Lazy(bp.launcher), func(s browser.Session) error {
		bp.drain(ctx, s, reports, jobs)
		return nil
	})
	if err != nil {
		// The work itself never fails, so this is a close error.
		bp.logger.Warn("browser session did not close cleanly", "worker", worker, "error", err)
	}
	return nil
}

func (bp *BatchProcessor) drain(ctx context.Context, b browser.Browser, reports []*model.InstitutionReport, jobs <-chan int) {
	for i := range jobs {
		report := reports[i]
		bp.logger.Info("processing institution",
			"university", report.Institution.Name,
			"index", i+1,
			"total", len(reports),
		)

		if err := bp.factory(b).Execute(ctx, report); err != nil {
			bp.logger.Warn("institution failed",
				"university", report.Institution.Name,
				"error", err,
			)
		}

		if bp.onComplete != nil {
			bp.onComplete(report, i)
		}
	}
}
