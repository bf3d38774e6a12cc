package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tmercer18/pricescout/internal/extractor"
	"tmercer18/pricescout/services/fetcher"
	"tmercer18/pricescout/services/worker"
)

// The scraping API contract: the page URL arrives as a query parameter and
// the rendered HTML comes back in the body.
var productPages = map[string]string{
	"https://www.amazon.com/dp/B000TEST": `<html><body>
		<script>var state = {"buyingPrice":{"amount":"45.99","currencyCode":"USD"}};</script>
	</body></html>`,
	"https://www.walmart.com/ip/1234": `<html><body>
		<script>window.__WML_REDUX_STATE__ = {"product":{"price":{"current":{"price":22.5},"wasPrice":"30.00"}},"currency":"USD"};</script>
	</body></html>`,
	"https://shop.example.com/p/1": `<html><body>
		<div class="price">&pound;15.00</div>
	</body></html>`,
	"https://shop.example.com/p/gone": `<html><body>
		<div>Sold out</div>
	</body></html>`,
}

func TestPipelineEndToEnd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("token") != "test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		page, ok := productPages[r.URL.Query().Get("url")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(page))
	}))
	defer server.Close()

	fetchClient := fetcher.NewClient(fetcher.Config{
		APIBaseURL: server.URL,
		APIKey:     "test-token",
		Timeout:    5 * time.Second,
		Retries:    1,
	}, nil)
	svc := extractor.NewService(extractor.DefaultBounds)
	w := worker.NewWorker(fetchClient, svc, nil, fetcher.Options{}, time.Minute, nil)

	urls := []string{
		"https://www.amazon.com/dp/B000TEST",
		"https://www.walmart.com/ip/1234",
		"https://shop.example.com/p/1",
		"https://shop.example.com/p/gone",
	}
	results := w.CheckBatch(context.Background(), urls)

	assert.Len(t, results, 4)

	amazon := results[0]
	assert.Equal(t, extractor.VendorAmazon, amazon.Vendor)
	assert.True(t, amazon.Available)
	assert.Equal(t, 45.99, amazon.Price)
	assert.Equal(t, "USD", amazon.Currency)

	walmart := results[1]
	assert.Equal(t, extractor.VendorWalmart, walmart.Vendor)
	assert.True(t, walmart.Available)
	assert.Equal(t, 22.50, walmart.Price)
	assert.Equal(t, 30.00, walmart.OriginalPrice)

	generic := results[2]
	assert.Equal(t, extractor.VendorGeneric, generic.Vendor)
	assert.True(t, generic.Available)
	assert.Equal(t, 15.00, generic.Price)
	assert.Equal(t, "GBP", generic.Currency)

	gone := results[3]
	assert.False(t, gone.Available)
	assert.Equal(t, "product is out of stock", gone.Error)
}

func TestPipelineFetchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	fetchClient := fetcher.NewClient(fetcher.Config{
		APIBaseURL: server.URL,
		Timeout:    5 * time.Second,
		Retries:    2,
	}, nil)
	svc := extractor.NewService(extractor.DefaultBounds)
	w := worker.NewWorker(fetchClient, svc, nil, fetcher.Options{}, time.Minute, nil)

	results := w.CheckBatch(context.Background(), []string{"https://shop.example.com/p/1"})

	assert.Len(t, results, 1)
	assert.False(t, results[0].Available)
	assert.Contains(t, results[0].Error, "failed to fetch page")
}
