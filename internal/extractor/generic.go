package extractor

import (
	"strings"
)

// genericPriceSelectors are common price markers across storefronts, tried
// in order of how specific they tend to be.
var genericPriceSelectors = []string{
	".price",
	".product-price",
	`[class*="price"]`,
	`[id*="price"]`,
	"[data-price]",
	".current-price",
	".sale-price",
}

// NewGenericStrategy builds the vendor-agnostic extraction strategy used for
// unrecognized storefronts.
func NewGenericStrategy() Strategy {
	return &strategy{
		name: VendorGeneric,
		methods: []searchMethod{
			{name: "json_ld", try: genericJSONLD},
			{name: "open_graph", try: genericOpenGraph},
			{name: "css_selectors", try: genericSelectors},
		},
	}
}

// genericJSONLD searches every JSON-LD block, whatever its schema type, for
// a price field at any nesting depth.
func genericJSONLD(d *Document) *RawCandidate {
	for _, node := range jsonldBlocks(d) {
		m, ok := findObjectWithKey(node, "price")
		if !ok {
			continue
		}
		price := asString(m["price"])
		if price == "" {
			continue
		}
		return &RawCandidate{
			Price:    price,
			Currency: firstString(m, "priceCurrency"),
		}
	}
	return nil
}

// genericOpenGraph reads the product price meta tags.
func genericOpenGraph(d *Document) *RawCandidate {
	price := metaContent(d, "product:price:amount")
	if price == "" {
		return nil
	}
	return &RawCandidate{
		Price:    price,
		Currency: metaContent(d, "product:price:currency"),
	}
}

// genericSelectors walks the common CSS price markers, using the data-price
// attribute when present and the element text otherwise.
func genericSelectors(d *Document) *RawCandidate {
	for _, selector := range genericPriceSelectors {
		sel := d.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		text, ok := sel.Attr("data-price")
		if !ok {
			text = sel.Text()
		}
		text = strings.TrimSpace(text)
		if text != "" {
			return &RawCandidate{Price: text}
		}
	}
	return nil
}
