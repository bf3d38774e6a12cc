package extractor

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Vendor tags recognized by the dispatcher and the URL detector.
const (
	VendorAmazon  = "amazon"
	VendorWalmart = "walmart"
	VendorTarget  = "target"
	VendorBestBuy = "bestbuy"
	VendorGeneric = "generic"
)

// RawCandidate is an unvalidated bag of price-related strings pulled from a
// document by a single search method. At least one of Price, SalePrice or
// ListPrice must be non-empty for the candidate to be considered.
type RawCandidate struct {
	Price     string
	SalePrice string
	ListPrice string
	Currency  string
}

func (c *RawCandidate) empty() bool {
	return strings.TrimSpace(c.Price) == "" &&
		strings.TrimSpace(c.SalePrice) == "" &&
		strings.TrimSpace(c.ListPrice) == ""
}

// NormalizedPrice is the canonical price record produced by the normalizer.
// It is never mutated after construction.
type NormalizedPrice struct {
	Price         float64  `json:"price"`
	OriginalPrice float64  `json:"original_price"`
	SalePrice     *float64 `json:"sale_price,omitempty"`
	Currency      string   `json:"currency"`
	IsOnSale      bool     `json:"is_on_sale"`
}

// ValidationResult holds the outcome of validating a normalized record.
// Errors may be non-empty even when IsValid is true (non-fatal findings).
type ValidationResult struct {
	IsValid bool
	Errors  []string
}

// PriceQueryResult is the final record returned to callers for one URL.
type PriceQueryResult struct {
	URL           string           `json:"url"`
	Vendor        string           `json:"vendor"`
	Available     bool             `json:"available"`
	Price         float64          `json:"price,omitempty"`
	OriginalPrice float64          `json:"original_price,omitempty"`
	SalePrice     *float64         `json:"sale_price,omitempty"`
	Currency      string           `json:"currency,omitempty"`
	IsOnSale      bool             `json:"is_on_sale,omitempty"`
	CheckedAt     time.Time        `json:"checked_at,omitzero"`
	Warnings      []string         `json:"warnings,omitempty"`
	Error         string           `json:"error,omitempty"`
	Raw           *NormalizedPrice `json:"raw,omitempty"`
}

// Document wraps a parsed product page. Strategies need both the DOM and the
// raw markup (embedded state anchors are matched against the raw text).
type Document struct {
	raw string
	doc *goquery.Document
}

// NewDocument parses raw HTML into a Document.
func NewDocument(html string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}
	return &Document{raw: html, doc: doc}, nil
}

// HTML returns the raw markup the document was built from.
func (d *Document) HTML() string {
	return d.raw
}

// Find runs a CSS selector against the parsed document.
func (d *Document) Find(selector string) *goquery.Selection {
	return d.doc.Find(selector)
}

// Strategy is the shared capability all vendor strategies implement: inspect
// a document and return the first normalized price found, or nil.
type Strategy interface {
	Name() string
	Extract(d *Document) *NormalizedPrice
}

// searchMethod is a single shape hypothesis: one way a price might be
// represented in the document. Methods are independently triable and
// independently fallible.
type searchMethod struct {
	name string
	try  func(d *Document) *RawCandidate
}
