package extractor

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Amazon embeds the buying price in several generations of inline JSON
// blocks; the key names below cover the known variants.
var amazonEmbeddedRe = regexp.MustCompile(`"(?:buyingPrice|priceToPay|offerPrice)"\s*:\s*\{`)

// amazonPriceSelectors are the "price to pay" display variants, newest
// first. Each wraps the rendered price with an accessible-text child.
var amazonPriceSelectors = []string{
	"#corePriceDisplay_desktop_feature_div .a-price.priceToPay",
	"#corePrice_feature_div .a-price",
	"span.priceToPay",
	".priceToPay",
}

// amazonOfferSelectors are the older offer-block price elements.
var amazonOfferSelectors = []string{
	"#priceblock_ourprice",
	"#priceblock_dealprice",
	"#price_inside_buybox",
}

// NewAmazonStrategy builds the Amazon extraction strategy.
func NewAmazonStrategy() Strategy {
	return &strategy{
		name: VendorAmazon,
		methods: []searchMethod{
			{name: "embedded_json", try: amazonEmbeddedJSON},
			{name: "json_ld", try: amazonJSONLD},
			{name: "price_to_pay", try: amazonPriceToPay},
			{name: "offer_block", try: amazonOfferBlock},
			{name: "split_price", try: amazonSplitPrice},
		},
	}
}

// amazonEmbeddedJSON parses inline JSON price blocks out of the raw markup.
func amazonEmbeddedJSON(d *Document) *RawCandidate {
	raw := d.HTML()
	for _, loc := range amazonEmbeddedRe.FindAllStringIndex(raw, -1) {
		blob, ok := jsonObjectAt(raw, loc[0])
		if !ok {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(blob), &m); err != nil {
			continue
		}
		price := firstString(m, "amount", "price", "value")
		if price == "" {
			continue
		}
		return &RawCandidate{
			Price:    price,
			Currency: firstString(m, "currency", "currencyCode"),
		}
	}
	return nil
}

// amazonJSONLD reads offers[0].price from Product-typed JSON-LD blocks.
func amazonJSONLD(d *Document) *RawCandidate {
	for _, node := range jsonldBlocks(d) {
		if !isSchemaType(node, "Product") {
			continue
		}
		m := node.(map[string]any)
		offer, ok := firstOffer(m["offers"])
		if !ok {
			continue
		}
		price := firstString(offer, "price")
		if price == "" {
			continue
		}
		return &RawCandidate{
			Price:    price,
			Currency: firstString(offer, "priceCurrency"),
		}
	}
	return nil
}

// firstOffer resolves an offers value that may be a single object or an
// array of objects.
func firstOffer(offers any) (map[string]any, bool) {
	switch o := offers.(type) {
	case map[string]any:
		return o, true
	case []any:
		if len(o) > 0 {
			if m, ok := o[0].(map[string]any); ok {
				return m, true
			}
		}
	}
	return nil, false
}

// amazonPriceToPay walks the price-to-pay element family, preferring the
// a-offscreen accessible text over the visible (often duplicated) text.
func amazonPriceToPay(d *Document) *RawCandidate {
	for _, selector := range amazonPriceSelectors {
		sel := d.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		text := strings.TrimSpace(sel.Find(".a-offscreen").First().Text())
		if text == "" {
			text = strings.TrimSpace(sel.Text())
		}
		if text != "" {
			return &RawCandidate{Price: text}
		}
	}
	return nil
}

// amazonOfferBlock reads the legacy offer-block price and checks for a
// strike-through list price next to it.
func amazonOfferBlock(d *Document) *RawCandidate {
	for _, selector := range amazonOfferSelectors {
		sel := d.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		text := strings.TrimSpace(sel.Text())
		if text == "" {
			continue
		}
		cand := &RawCandidate{Price: text}
		strike := sel.Parent().Find(".a-text-price .a-offscreen").First()
		if strike.Length() == 0 {
			strike = d.Find("#priceblock_strikeprice").First()
		}
		if list := strings.TrimSpace(strike.Text()); list != "" {
			cand.ListPrice = list
		}
		return cand
	}
	return nil
}

// amazonSplitPrice joins the whole/fraction element pair; the fraction
// defaults to "00" when the page omits it.
func amazonSplitPrice(d *Document) *RawCandidate {
	whole := digitsOnly(d.Find(".a-price-whole").First().Text())
	if whole == "" {
		return nil
	}
	frac := digitsOnly(d.Find(".a-price-fraction").First().Text())
	if frac == "" {
		frac = "00"
	}
	return &RawCandidate{Price: whole + "." + frac}
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
