package extractor

import "regexp"

// Stock-unavailability phrases storefronts render in place of a price.
// "unavailable" last so the more specific variants read first in the match.
var outOfStockRe = regexp.MustCompile(`(?i)out of stock|currently unavailable|temporarily out of stock|sold out|unavailable`)

// IsOutOfStock reports whether the page declares the product unavailable.
// It gates extraction: an out-of-stock page usually carries no live price.
func IsOutOfStock(html string) bool {
	return outOfStockRe.MatchString(html)
}
