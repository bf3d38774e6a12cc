package extractor

import (
	"tmercer18/pricescout/logger"
)

// Dispatcher routes a document to the right vendor strategy. Recognized
// vendors run only their own strategy, with no generic fallback; every other
// tag falls through the fixed chain generic, amazon, walmart.
type Dispatcher struct {
	strategies map[string]Strategy
	fallback   []Strategy
	log        *logger.Logger
}

// NewDispatcher builds a dispatcher with the three built-in strategies.
func NewDispatcher() *Dispatcher {
	amazon := NewAmazonStrategy()
	walmart := NewWalmartStrategy()
	generic := NewGenericStrategy()
	return &Dispatcher{
		strategies: map[string]Strategy{
			VendorAmazon:  amazon,
			VendorWalmart: walmart,
		},
		fallback: []Strategy{generic, amazon, walmart},
		log:      logger.ForComponent("dispatcher"),
	}
}

// Extract runs the strategy chain for the vendor tag over the HTML and
// returns the first normalized price, or nil when nothing was found.
func (d *Dispatcher) Extract(html string, vendor string) *NormalizedPrice {
	doc, err := NewDocument(html)
	if err != nil {
		d.log.Error().Err(err).Str("vendor", vendor).Msg("Failed to parse HTML document")
		return nil
	}

	if s, ok := d.strategies[vendor]; ok {
		return d.safeExtract(s, doc)
	}

	for _, s := range d.fallback {
		if np := d.safeExtract(s, doc); np != nil {
			return np
		}
	}
	return nil
}

// safeExtract shields the dispatcher from strategy panics; a panicking
// strategy is logged and treated as having found nothing.
func (d *Dispatcher) safeExtract(s Strategy, doc *Document) (np *NormalizedPrice) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error().
				Str("strategy", s.Name()).
				Interface("panic", r).
				Msg("Strategy panicked, treating as no result")
			np = nil
		}
	}()
	return s.Extract(doc)
}
