package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	scouterrors "tmercer18/pricescout/pkg/errors"
)

// Config represents the application configuration
type Config struct {
	// Scraping API configuration
	ScraperAPIURL string
	ScraperAPIKey string
	RenderJS      bool
	RenderWaitMS  int

	// Fetch retry configuration
	FetchTimeout time.Duration
	FetchRetries int
	FetchBackoff time.Duration
	BlockTime    time.Duration

	// Redis configuration
	RedisAddr            string
	RedisDB              int
	RedisStream          string
	RedisStreamMaxLength int

	// Memcache configuration
	MemcacheAddr string

	// Monitoring loop configuration
	CheckInterval time.Duration
	TargetURLs    []string

	// Validation configuration
	PriceMin           float64
	PriceMax           float64
	ChangeThresholdPct float64

	// Environment
	Environment string
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() *Config {
	renderWait, _ := strconv.Atoi(getEnv("RENDER_WAIT_MS", "0"))
	fetchTimeout, _ := strconv.Atoi(getEnv("FETCH_TIMEOUT_SECONDS", "30"))
	fetchRetries, _ := strconv.Atoi(getEnv("FETCH_RETRIES", "3"))
	fetchBackoff, _ := strconv.Atoi(getEnv("FETCH_BACKOFF_MS", "1000"))
	blockTime, _ := strconv.Atoi(getEnv("BLOCK_TIME_SECONDS", "300"))
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	streamMaxLen, _ := strconv.Atoi(getEnv("REDIS_STREAM_MAXLEN", "500"))
	checkInterval, _ := strconv.Atoi(getEnv("CHECK_INTERVAL_SECONDS", "300"))
	priceMin, _ := strconv.ParseFloat(getEnv("PRICE_MIN", "0.01"), 64)
	priceMax, _ := strconv.ParseFloat(getEnv("PRICE_MAX", "1000000"), 64)
	changeThreshold, _ := strconv.ParseFloat(getEnv("PRICE_CHANGE_THRESHOLD_PCT", "50"), 64)

	return &Config{
		ScraperAPIURL:        getEnv("SCRAPER_API_URL", ""),
		ScraperAPIKey:        getEnv("SCRAPER_API_KEY", ""),
		RenderJS:             getEnv("RENDER_JS", "true") == "true",
		RenderWaitMS:         renderWait,
		FetchTimeout:         time.Duration(fetchTimeout) * time.Second,
		FetchRetries:         fetchRetries,
		FetchBackoff:         time.Duration(fetchBackoff) * time.Millisecond,
		BlockTime:            time.Duration(blockTime) * time.Second,
		RedisAddr:            getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:              redisDB,
		RedisStream:          getEnv("REDIS_STREAM", "prices"),
		RedisStreamMaxLength: streamMaxLen,
		MemcacheAddr:         getEnv("MEMCACHE_ADDR", "localhost:11211"),
		CheckInterval:        time.Duration(checkInterval) * time.Second,
		TargetURLs:           splitURLs(getEnv("TARGET_URLS", "")),
		PriceMin:             priceMin,
		PriceMax:             priceMax,
		ChangeThresholdPct:   changeThreshold,
		Environment:          getEnv("PRICESCOUT_ENVIRONMENT", "development"),
	}
}

// Validate checks the configuration for values the services cannot run with
func (c *Config) Validate() error {
	if c.FetchRetries < 1 {
		return scouterrors.NewConfiguration("FETCH_RETRIES must be at least 1", nil)
	}
	if c.FetchTimeout <= 0 {
		return scouterrors.NewConfiguration("FETCH_TIMEOUT_SECONDS must be positive", nil)
	}
	if c.PriceMin <= 0 || c.PriceMax <= c.PriceMin {
		return scouterrors.NewConfiguration("price bounds must satisfy 0 < PRICE_MIN < PRICE_MAX", nil)
	}
	if c.ChangeThresholdPct <= 0 {
		return scouterrors.NewConfiguration("PRICE_CHANGE_THRESHOLD_PCT must be positive", nil)
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// splitURLs splits a comma-separated URL list, dropping empty entries
func splitURLs(raw string) []string {
	var urls []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			urls = append(urls, trimmed)
		}
	}
	return urls
}
