package worker

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"tmercer18/pricescout/internal/extractor"
	"tmercer18/pricescout/logger"
	scouterrors "tmercer18/pricescout/pkg/errors"
	"tmercer18/pricescout/services/fetcher"
	"tmercer18/pricescout/services/publisher"
)

// Worker checks product URLs: fetch, extract, validate, publish.
type Worker struct {
	fetcher   fetcher.Fetcher
	extractor *extractor.Service
	publisher publisher.Publisher
	fetchOpts fetcher.Options
	interval  time.Duration
	targets   []string
	log       *logger.Logger
}

// NewWorker creates a new worker. publisher may be nil for one-shot runs.
func NewWorker(
	f fetcher.Fetcher,
	svc *extractor.Service,
	pub publisher.Publisher,
	fetchOpts fetcher.Options,
	interval time.Duration,
	targets []string,
) *Worker {
	return &Worker{
		fetcher:   f,
		extractor: svc,
		publisher: pub,
		fetchOpts: fetchOpts,
		interval:  interval,
		targets:   targets,
		log:       logger.ForComponent("worker"),
	}
}

// CheckBatch checks all URLs concurrently. Results come back in input
// order, one per URL; a failed fetch yields an error record for that URL
// without affecting the others.
func (w *Worker) CheckBatch(ctx context.Context, urls []string) []extractor.PriceQueryResult {
	results := make([]extractor.PriceQueryResult, len(urls))
	var wg sync.WaitGroup
	for i, pageURL := range urls {
		wg.Add(1)
		go func(i int, pageURL string) {
			defer wg.Done()
			results[i] = w.checkOne(ctx, pageURL)
		}(i, pageURL)
	}
	wg.Wait()
	return results
}

// checkOne fetches a single page and runs the extraction pipeline on it.
func (w *Worker) checkOne(ctx context.Context, pageURL string) extractor.PriceQueryResult {
	vendor := extractor.DetectVendor(pageURL)

	html, err := w.fetcher.FetchHTML(ctx, pageURL, w.fetchOpts)
	if err != nil {
		w.log.Error().
			Str("url", pageURL).
			Str("vendor", vendor).
			Err(err).
			Msg("Fetch failed")
		return extractor.PriceQueryResult{
			URL:    pageURL,
			Vendor: vendor,
			Error:  scouterrors.NewFetch(vendor, "failed to fetch page", err).Error(),
		}
	}

	return w.extractor.GetPriceRecord(html, vendor, extractor.Options{URL: pageURL})
}

// Run loops over the configured target URLs on the check interval,
// publishing available records, until the context is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.runOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

func (w *Worker) runOnce(ctx context.Context) {
	start := time.Now()
	results := w.CheckBatch(ctx, w.targets)
	w.publish(results)
	w.log.Info().
		Int("urls", len(results)).
		Dur("elapsed", time.Since(start)).
		Msg("Batch finished")
}

// publish sends available records to their vendor streams and trims them.
func (w *Worker) publish(results []extractor.PriceQueryResult) {
	if w.publisher == nil {
		return
	}
	for _, res := range results {
		if !res.Available {
			continue
		}
		data, err := json.Marshal(res)
		if err != nil {
			w.log.Error().Str("url", res.URL).Err(err).Msg("Failed to marshal record")
			continue
		}
		if err := w.publisher.Publish(res.Vendor, data); err != nil {
			w.log.Error().Str("url", res.URL).Err(err).Msg("Failed to publish record")
		}
	}
	if err := w.publisher.TrimStreams(); err != nil {
		w.log.Error().Err(err).Msg("Failed to trim streams")
	}
}
