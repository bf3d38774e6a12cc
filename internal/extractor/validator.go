package extractor

import (
	"fmt"
	"math"
)

// Bounds is the accepted price range for validation.
type Bounds struct {
	Min float64
	Max float64
}

// DefaultBounds covers consumer product prices.
var DefaultBounds = Bounds{Min: 0.01, Max: 1_000_000}

// DefaultChangeThresholdPct is the percentage jump beyond which a price
// change is flagged as unreasonable.
const DefaultChangeThresholdPct = 50.0

// Validate checks a record against the default bounds.
func Validate(np *NormalizedPrice) ValidationResult {
	return ValidateWithBounds(np, DefaultBounds)
}

// ValidateWithBounds checks a record for range validity. A missing currency
// is noted but does not invalidate the record; only a missing/non-positive
// price or an out-of-range price does.
func ValidateWithBounds(np *NormalizedPrice, b Bounds) ValidationResult {
	if np == nil {
		return ValidationResult{Errors: []string{"missing price record"}}
	}

	var errs []string
	valid := true

	switch {
	case np.Price <= 0:
		errs = append(errs, "price is missing or not a positive number")
		valid = false
	case np.Price < b.Min || np.Price > b.Max:
		errs = append(errs, fmt.Sprintf("price %.2f outside allowed range [%.2f, %.2f]", np.Price, b.Min, b.Max))
		valid = false
	}

	if np.Currency == "" {
		errs = append(errs, "currency not detected, USD default applied")
	}

	return ValidationResult{IsValid: valid, Errors: errs}
}

// ReasonableChange reports whether moving from oldPrice to newPrice stays
// within thresholdPct percent of the old price. When either price is absent
// (non-positive) the change cannot be judged and is treated as reasonable.
func ReasonableChange(oldPrice, newPrice, thresholdPct float64) bool {
	if oldPrice <= 0 || newPrice <= 0 {
		return true
	}
	change := math.Abs(newPrice-oldPrice) / oldPrice * 100
	return change <= thresholdPct
}
