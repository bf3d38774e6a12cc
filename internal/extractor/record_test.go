package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsOutOfStock(t *testing.T) {
	tests := []struct {
		name string
		html string
		want bool
	}{
		{"out of stock", `<div>Out of Stock</div>`, true},
		{"currently unavailable", `<span>Currently unavailable.</span>`, true},
		{"temporarily out", `<p>Temporarily out of stock</p>`, true},
		{"sold out", `<div class="badge">SOLD OUT</div>`, true},
		{"in stock", `<div>In stock, ships today</div>`, false},
		{"empty page", ``, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsOutOfStock(tt.html))
		})
	}
}

func TestDetectVendor(t *testing.T) {
	tests := []struct {
		url    string
		vendor string
	}{
		{"https://www.amazon.com/dp/B08N5WRWNW", VendorAmazon},
		{"https://amazon.co.uk/gp/product/123", VendorAmazon},
		{"https://www.walmart.com/ip/12345", VendorWalmart},
		{"https://www.target.com/p/widget", VendorTarget},
		{"https://www.bestbuy.com/site/widget", VendorBestBuy},
		{"https://shop.example.com/products/widget", VendorGeneric},
		{"not a url", VendorGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.vendor, DetectVendor(tt.url))
		})
	}
}

func TestGetPriceRecordAvailable(t *testing.T) {
	svc := NewService(DefaultBounds)
	html := `<html><body><div class="price">$29.99</div></body></html>`

	res := svc.GetPriceRecord(html, VendorGeneric, Options{URL: "https://shop.example.com/p/1"})

	assert.True(t, res.Available)
	assert.Equal(t, "https://shop.example.com/p/1", res.URL)
	assert.Equal(t, VendorGeneric, res.Vendor)
	assert.Equal(t, 29.99, res.Price)
	assert.Equal(t, "USD", res.Currency)
	assert.Empty(t, res.Error)
	assert.False(t, res.CheckedAt.IsZero())
}

func TestGetPriceRecordOutOfStockGate(t *testing.T) {
	svc := NewService(DefaultBounds)
	html := `<html><body>
		<div>Currently unavailable</div>
		<div class="price">$29.99</div>
	</body></html>`

	res := svc.GetPriceRecord(html, VendorGeneric, Options{})

	assert.False(t, res.Available)
	assert.Equal(t, "product is out of stock", res.Error)
	assert.Zero(t, res.Price)
}

func TestGetPriceRecordAllowOutOfStock(t *testing.T) {
	svc := NewService(DefaultBounds)
	html := `<html><body>
		<div>Currently unavailable</div>
		<div class="price">$29.99</div>
	</body></html>`

	res := svc.GetPriceRecord(html, VendorGeneric, Options{AllowOutOfStock: true})

	assert.True(t, res.Available)
	assert.Equal(t, 29.99, res.Price)
}

func TestGetPriceRecordNoCandidate(t *testing.T) {
	svc := NewService(DefaultBounds)

	res := svc.GetPriceRecord(`<html><body><p>hello</p></body></html>`, VendorGeneric, Options{})

	assert.False(t, res.Available)
	assert.Equal(t, "no price found on page", res.Error)
	assert.Nil(t, res.Raw)
}

func TestGetPriceRecordValidationFailure(t *testing.T) {
	svc := NewService(Bounds{Min: 100, Max: 200})

	res := svc.GetPriceRecord(`<html><body><div class="price">$29.99</div></body></html>`, VendorGeneric, Options{})

	assert.False(t, res.Available)
	assert.Contains(t, res.Error, "price failed validation")
	assert.Contains(t, res.Error, "outside allowed range")
	// The rejected record rides along for diagnostics
	assert.NotNil(t, res.Raw)
	assert.Equal(t, 29.99, res.Raw.Price)
}

func TestGetPriceRecordDefaultCurrency(t *testing.T) {
	svc := NewService(DefaultBounds)
	html := `<html><head>
		<script type="application/ld+json">{"@type":"Product","price":"15.00"}</script>
	</head><body></body></html>`

	res := svc.GetPriceRecord(html, VendorGeneric, Options{})

	assert.True(t, res.Available)
	assert.Equal(t, 15.00, res.Price)
	assert.Equal(t, "USD", res.Currency)
}
