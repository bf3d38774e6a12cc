package fetcher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	mathrand "math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html/charset"

	"tmercer18/pricescout/logger"
	scouterrors "tmercer18/pricescout/pkg/errors"
	"tmercer18/pricescout/services/cache"
)

// Browser-like headers for direct-mode fetches
var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/112.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/14.0.3 Safari/605.1.15",
}

// Options configures a single fetch: rendering, wait time and custom
// headers are passed through to the scraping provider.
type Options struct {
	Render      bool
	WaitMS      int
	UserAgent   string
	Headers     map[string]string
	ExtraParams map[string]string
}

// Fetcher retrieves rendered HTML for a product page URL.
type Fetcher interface {
	FetchHTML(ctx context.Context, pageURL string, opts Options) (string, error)
}

// Config holds the client settings.
type Config struct {
	// APIBaseURL is the scraping API endpoint. When empty the client
	// fetches page URLs directly with browser-like headers.
	APIBaseURL string
	APIKey     string
	Timeout    time.Duration
	// Retries is the total attempt count per fetch.
	Retries int
	// Backoff is the delay before the first retry; it doubles per attempt.
	Backoff time.Duration
	// BlockTime is how long a rate-limited host stays blocked.
	BlockTime time.Duration
}

// Client implements Fetcher over a remote rendering/scraping API with a
// bounded retry loop and memcache-backed rate-limit blocking.
type Client struct {
	apiURL    string
	apiKey    string
	client    *http.Client
	cache     cache.CacheService
	delays    []time.Duration
	blockTime time.Duration
	log       *logger.Logger
}

// NewClient creates a fetch client. cacheSvc may be nil, which disables
// rate-limit blocking.
func NewClient(cfg Config, cacheSvc cache.CacheService) *Client {
	retries := cfg.Retries
	if retries < 1 {
		retries = 1
	}
	delays := make([]time.Duration, 0, retries-1)
	delay := cfg.Backoff
	for i := 0; i < retries-1; i++ {
		delays = append(delays, delay)
		delay *= 2
	}
	return &Client{
		apiURL:    cfg.APIBaseURL,
		apiKey:    cfg.APIKey,
		client:    &http.Client{Timeout: cfg.Timeout},
		cache:     cacheSvc,
		delays:    delays,
		blockTime: cfg.BlockTime,
		log:       logger.ForComponent("fetcher"),
	}
}

// FetchHTML retrieves the page, retrying transient failures with
// exponential backoff. A rate-limited host is blocked in the cache and
// fails fast until the block expires.
func (c *Client) FetchHTML(ctx context.Context, pageURL string, opts Options) (string, error) {
	host := hostOf(pageURL)
	blockKey := "fetch_block:" + host
	if c.cache != nil {
		if _, err := c.cache.Get(blockKey); err == nil {
			return "", scouterrors.NewRateLimit(host, c.blockTime)
		}
	}

	var lastErr error
	for attempt := 0; ; attempt++ {
		html, err := c.fetchOnce(ctx, pageURL, opts)
		if err == nil {
			return html, nil
		}
		lastErr = err

		var se *scouterrors.ScoutError
		if errors.As(err, &se) && se.Type == scouterrors.ErrorTypeRateLimit {
			if c.cache != nil {
				c.cache.Set(blockKey, []byte("1"), c.blockTime)
			}
			return "", err
		}

		if attempt >= len(c.delays) {
			break
		}
		c.log.Warn().
			Str("url", pageURL).
			Int("attempt", attempt+1).
			Err(err).
			Msg("Fetch failed, retrying")
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(c.delays[attempt]):
		}
	}
	return "", lastErr
}

// fetchOnce performs a single request and converts the body to UTF-8.
func (c *Client) fetchOnce(ctx context.Context, pageURL string, opts Options) (string, error) {
	host := hostOf(pageURL)

	req, err := c.buildRequest(ctx, pageURL, opts)
	if err != nil {
		return "", scouterrors.NewFetch(host, "failed to build request", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", scouterrors.NewFetch(host, "failed to fetch URL", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == 430 {
		return "", scouterrors.NewRateLimit(host, c.blockTime)
	}
	if resp.StatusCode != http.StatusOK {
		return "", scouterrors.NewFetch(host, fmt.Sprintf("unexpected status code: %d", resp.StatusCode), nil)
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", scouterrors.NewFetch(host, "failed to read response body", err)
	}

	encoding, name, _ := charset.DetermineEncoding(bodyBytes, resp.Header.Get("Content-Type"))
	html := string(bodyBytes)
	if !strings.EqualFold(name, "utf-8") {
		decoded, err := io.ReadAll(encoding.NewDecoder().Reader(bytes.NewReader(bodyBytes)))
		if err != nil {
			return "", scouterrors.NewFetch(host, "failed to convert body to UTF-8", err)
		}
		html = string(decoded)
	}

	if strings.TrimSpace(html) == "" {
		return "", scouterrors.NewFetch(host, "empty response body", nil)
	}
	return html, nil
}

// buildRequest targets the scraping API when configured, passing the page
// URL and provider options as query parameters, otherwise the page itself.
func (c *Client) buildRequest(ctx context.Context, pageURL string, opts Options) (*http.Request, error) {
	target := pageURL
	if c.apiURL != "" {
		u, err := url.Parse(c.apiURL)
		if err != nil {
			return nil, err
		}
		q := u.Query()
		q.Set("url", pageURL)
		if c.apiKey != "" {
			q.Set("token", c.apiKey)
		}
		if opts.Render {
			q.Set("render", "true")
		}
		if opts.WaitMS > 0 {
			q.Set("wait", strconv.Itoa(opts.WaitMS))
		}
		for k, v := range opts.ExtraParams {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
		target = u.String()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}

	ua := opts.UserAgent
	if ua == "" {
		rnd := mathrand.New(mathrand.NewSource(time.Now().UnixNano()))
		ua = userAgents[rnd.Intn(len(userAgents))]
	}
	req.Header.Set("User-Agent", ua)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}
	return req, nil
}

func hostOf(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil && u.Hostname() != "" {
		return u.Hostname()
	}
	return rawURL
}
