package extractor

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// currencyGlyphs maps currency symbols to ISO codes, in priority order.
var currencyGlyphs = []struct {
	glyph string
	code  string
}{
	{"$", "USD"},
	{"€", "EUR"},
	{"£", "GBP"},
	{"¥", "JPY"},
	{"₹", "INR"},
}

// ParsePrice converts a free-form price string into a positive decimal value
// rounded to two places. One currency glyph is stripped, commas are treated
// as thousands separators, and any remaining non-digit non-dot rune is
// dropped before parsing. Returns false for anything that does not yield a
// positive finite number.
//
// Decimal-comma rule: when the string contains exactly one comma, no dot,
// and exactly two digits after the comma, the comma is a decimal separator
// ("25,50" means 25.50). Otherwise commas are stripped.
func ParsePrice(text string) (float64, bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, false
	}

	for _, g := range currencyGlyphs {
		s = strings.Replace(s, g.glyph, "", 1)
	}
	s = strings.Join(strings.Fields(s), "")

	if i := strings.IndexByte(s, ','); i >= 0 &&
		strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		frac := s[i+1:]
		if len(frac) == 2 && isDigits(frac) {
			s = s[:i] + "." + frac
		}
	}
	s = strings.ReplaceAll(s, ",", "")

	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) || r == '.' {
			b.WriteRune(r)
		}
	}
	s = b.String()
	if s == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, false
	}
	return math.Round(v*100) / 100, true
}

// ExtractCurrency scans a string for a currency glyph and returns the
// matching ISO code, defaulting to USD. Total over all inputs.
func ExtractCurrency(text string) string {
	for _, g := range currencyGlyphs {
		if strings.Contains(text, g.glyph) {
			return g.code
		}
	}
	return "USD"
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
