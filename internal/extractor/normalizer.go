package extractor

import (
	"strings"
)

// Normalize resolves a raw candidate into a canonical price record.
//
// The final price is taken from the first present field in the order
// salePrice, price, listPrice; if that field does not parse the whole
// normalization fails and no partial record is produced. The original price
// is the parsed list price when present, else the plain price field when a
// sale price won the resolution, else the final price itself.
// IsOnSale compares the candidate's raw salePrice and price strings, not the
// rounded values, so a sale price textually identical to the price is not a
// sale.
func Normalize(c *RawCandidate) *NormalizedPrice {
	if c == nil {
		return nil
	}

	chosen := c.SalePrice
	if strings.TrimSpace(chosen) == "" {
		chosen = c.Price
	}
	if strings.TrimSpace(chosen) == "" {
		chosen = c.ListPrice
	}
	if strings.TrimSpace(chosen) == "" {
		return nil
	}

	price, ok := ParsePrice(chosen)
	if !ok {
		return nil
	}

	original := price
	if lp, ok := ParsePrice(c.ListPrice); ok {
		original = lp
	} else if strings.TrimSpace(c.SalePrice) != "" {
		// The sale price won the resolution; the plain price field, when
		// distinct, is the pre-discount price.
		if pp, ok := ParsePrice(c.Price); ok {
			original = pp
		}
	}

	np := &NormalizedPrice{
		Price:         price,
		OriginalPrice: original,
		Currency:      resolveCurrency(c, chosen),
	}

	if strings.TrimSpace(c.SalePrice) != "" {
		sale := price
		np.SalePrice = &sale
		np.IsOnSale = c.SalePrice != c.Price
	}

	return np
}

// resolveCurrency prefers the candidate's explicit currency; a bare ISO code
// is upper-cased, a symbol-bearing string goes through glyph detection.
// Without an explicit currency the chosen price string itself is scanned.
func resolveCurrency(c *RawCandidate, chosen string) string {
	cur := strings.TrimSpace(c.Currency)
	if cur != "" {
		if len(cur) == 3 && isLetters(cur) {
			return strings.ToUpper(cur)
		}
		return ExtractCurrency(cur)
	}
	return ExtractCurrency(chosen)
}

func isLetters(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}
