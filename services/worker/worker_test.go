package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tmercer18/pricescout/internal/extractor"
	"tmercer18/pricescout/services/fetcher"
)

// stubFetcher serves canned HTML per URL; unknown URLs fail.
type stubFetcher struct {
	pages map[string]string
}

func (s *stubFetcher) FetchHTML(_ context.Context, pageURL string, _ fetcher.Options) (string, error) {
	html, ok := s.pages[pageURL]
	if !ok {
		return "", errors.New("connection refused")
	}
	return html, nil
}

// recordingPublisher captures published records per vendor.
type recordingPublisher struct {
	mu       sync.Mutex
	records  map[string][][]byte
	trimmed  int
	closed   bool
	pubError error
}

func newRecordingPublisher() *recordingPublisher {
	return &recordingPublisher{records: map[string][][]byte{}}
}

func (p *recordingPublisher) Publish(vendor string, record []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pubError != nil {
		return p.pubError
	}
	p.records[vendor] = append(p.records[vendor], record)
	return nil
}

func (p *recordingPublisher) TrimStreams() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.trimmed++
	return nil
}

func (p *recordingPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

const genericPage = `<html><body><div class="price">$19.99</div></body></html>`

func TestCheckBatchOrderAndIsolation(t *testing.T) {
	urls := []string{
		"https://shop.example.com/p/1",
		"https://broken.example.com/p/2",
		"https://shop.example.com/p/3",
	}
	f := &stubFetcher{pages: map[string]string{
		urls[0]: genericPage,
		urls[2]: `<html><body><div class="price">$5.00</div></body></html>`,
	}}
	w := NewWorker(f, extractor.NewService(extractor.DefaultBounds), nil, fetcher.Options{}, time.Minute, urls)

	results := w.CheckBatch(context.Background(), urls)

	assert.Len(t, results, 3)

	assert.Equal(t, urls[0], results[0].URL)
	assert.True(t, results[0].Available)
	assert.Equal(t, 19.99, results[0].Price)

	assert.Equal(t, urls[1], results[1].URL)
	assert.False(t, results[1].Available)
	assert.Contains(t, results[1].Error, "failed to fetch page")

	assert.Equal(t, urls[2], results[2].URL)
	assert.True(t, results[2].Available)
	assert.Equal(t, 5.00, results[2].Price)
}

func TestCheckBatchDetectsVendor(t *testing.T) {
	amazonPage := `<html><body>
		<script>var o = {"buyingPrice":{"amount":"29.99","currencyCode":"USD"}};</script>
	</body></html>`
	f := &stubFetcher{pages: map[string]string{
		"https://www.amazon.com/dp/B000": amazonPage,
	}}
	w := NewWorker(f, extractor.NewService(extractor.DefaultBounds), nil, fetcher.Options{}, time.Minute, nil)

	results := w.CheckBatch(context.Background(), []string{"https://www.amazon.com/dp/B000"})

	assert.Equal(t, extractor.VendorAmazon, results[0].Vendor)
	assert.True(t, results[0].Available)
	assert.Equal(t, 29.99, results[0].Price)
}

func TestRunPublishesAvailableRecords(t *testing.T) {
	urls := []string{
		"https://shop.example.com/p/1",
		"https://broken.example.com/p/2",
	}
	f := &stubFetcher{pages: map[string]string{urls[0]: genericPage}}
	pub := newRecordingPublisher()
	w := NewWorker(f, extractor.NewService(extractor.DefaultBounds), pub, fetcher.Options{}, time.Hour, urls)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	assert.Eventually(t, func() bool {
		pub.mu.Lock()
		defer pub.mu.Unlock()
		return pub.trimmed > 0
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	pub.mu.Lock()
	defer pub.mu.Unlock()
	assert.Len(t, pub.records[extractor.VendorGeneric], 1)

	var res extractor.PriceQueryResult
	assert.NoError(t, json.Unmarshal(pub.records[extractor.VendorGeneric][0], &res))
	assert.Equal(t, urls[0], res.URL)
	assert.Equal(t, 19.99, res.Price)
}

func TestPublishSkipsUnavailable(t *testing.T) {
	pub := newRecordingPublisher()
	w := NewWorker(nil, nil, pub, fetcher.Options{}, time.Minute, nil)

	w.publish([]extractor.PriceQueryResult{
		{URL: "https://shop.example.com/p/1", Vendor: extractor.VendorGeneric, Error: "no price found on page"},
	})

	pub.mu.Lock()
	defer pub.mu.Unlock()
	assert.Empty(t, pub.records)
	assert.Equal(t, 1, pub.trimmed)
}
