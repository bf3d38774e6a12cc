package extractor

import (
	"strings"
	"time"

	"tmercer18/pricescout/logger"
)

// Options tunes a single GetPriceRecord call.
type Options struct {
	// URL is echoed into the result record.
	URL string
	// AllowOutOfStock bypasses the out-of-stock gate and attempts
	// extraction anyway.
	AllowOutOfStock bool
}

// Service is the public entry point of the extraction pipeline. It holds no
// mutable state and is safe for concurrent use.
type Service struct {
	dispatcher *Dispatcher
	bounds     Bounds
	log        *logger.Logger
}

// NewService builds an extraction service with the given validation bounds.
func NewService(bounds Bounds) *Service {
	return &Service{
		dispatcher: NewDispatcher(),
		bounds:     bounds,
		log:        logger.ForComponent("extractor"),
	}
}

// GetPriceRecord runs the full pipeline over one page: out-of-stock gate,
// vendor strategy dispatch, validation, record assembly. Failures come back
// as structured records with Available false, never as errors.
func (s *Service) GetPriceRecord(html, vendor string, opts Options) PriceQueryResult {
	res := PriceQueryResult{URL: opts.URL, Vendor: vendor}

	if !opts.AllowOutOfStock && IsOutOfStock(html) {
		res.Error = "product is out of stock"
		return res
	}

	np := s.dispatcher.Extract(html, vendor)
	if np == nil {
		res.Error = "no price found on page"
		return res
	}

	vr := ValidateWithBounds(np, s.bounds)
	if !vr.IsValid {
		res.Error = "price failed validation: " + strings.Join(vr.Errors, "; ")
		res.Raw = np
		return res
	}

	res.Available = true
	res.Price = np.Price
	res.OriginalPrice = np.OriginalPrice
	res.SalePrice = np.SalePrice
	res.Currency = np.Currency
	res.IsOnSale = np.IsOnSale
	res.CheckedAt = time.Now().UTC()
	res.Warnings = vr.Errors
	return res
}
