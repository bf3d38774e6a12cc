package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"tmercer18/pricescout/config"
	"tmercer18/pricescout/internal/extractor"
	"tmercer18/pricescout/logger"
	"tmercer18/pricescout/services/cache"
	"tmercer18/pricescout/services/fetcher"
	"tmercer18/pricescout/services/publisher"
	"tmercer18/pricescout/services/worker"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize logger first
	logger.Init()
	log := logger.Default

	// Load and validate configuration
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	log.Info().
		Str("environment", cfg.Environment).
		Dur("check_interval", cfg.CheckInterval).
		Msg("Starting price scout")

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cacheSvc := cache.NewMemcacheService(cfg.MemcacheAddr)

	fetchClient := fetcher.NewClient(fetcher.Config{
		APIBaseURL: cfg.ScraperAPIURL,
		APIKey:     cfg.ScraperAPIKey,
		Timeout:    cfg.FetchTimeout,
		Retries:    cfg.FetchRetries,
		Backoff:    cfg.FetchBackoff,
		BlockTime:  cfg.BlockTime,
	}, cacheSvc)

	svc := extractor.NewService(extractor.Bounds{Min: cfg.PriceMin, Max: cfg.PriceMax})

	fetchOpts := fetcher.Options{
		Render: cfg.RenderJS,
		WaitMS: cfg.RenderWaitMS,
	}

	// One-shot mode: URLs on the command line are checked once and the
	// results printed as JSON.
	if len(os.Args) > 1 {
		w := worker.NewWorker(fetchClient, svc, nil, fetchOpts, cfg.CheckInterval, nil)
		results := w.CheckBatch(ctx, os.Args[1:])
		out, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to encode results")
		}
		fmt.Println(string(out))
		return
	}

	if len(cfg.TargetURLs) == 0 {
		log.Fatal().Msg("No target URLs configured; set TARGET_URLS or pass URLs as arguments")
	}

	redisPublisher := publisher.NewRedisPublisher(
		ctx,
		cfg.RedisAddr,
		cfg.RedisDB,
		cfg.RedisStream,
		cfg.RedisStreamMaxLength,
	)
	defer redisPublisher.Close()

	log.Info().
		Str("redis", cfg.RedisAddr).
		Str("stream", cfg.RedisStream).
		Int("targets", len(cfg.TargetURLs)).
		Msg("Starting monitoring loop")

	w := worker.NewWorker(fetchClient, svc, redisPublisher, fetchOpts, cfg.CheckInterval, cfg.TargetURLs)

	// Set up signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	workerDone := make(chan error, 1)
	go func() {
		workerDone <- w.Run(ctx)
	}()

	select {
	case sig := <-sigChan:
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
		<-workerDone
	case err := <-workerDone:
		if err != nil && err != context.Canceled {
			log.Error().Err(err).Msg("Worker exited with error")
		}
	}

	log.Info().Msg("Shutting down gracefully")
}
