package extractor

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Walmart ships its product state as a large embedded JSON blob. The anchors
// cover the named redux global plus the product/pricing sub-objects that
// survive markup reshuffles.
var walmartStateAnchors = []*regexp.Regexp{
	regexp.MustCompile(`window\.__WML_REDUX_STATE__\s*=`),
	regexp.MustCompile(`"product"\s*:\s*\{`),
	regexp.MustCompile(`"pricing"\s*:\s*\{`),
}

// walmartPriceSelectors are the price display variants on product pages.
var walmartPriceSelectors = []string{
	`span[data-automation-id="product-price"]`,
	`[data-testid="price-wrap"] span[itemprop="price"]`,
	`span[itemprop="price"]`,
	".price-group",
	".prod-PriceHero .price-group",
}

// walmartWasSelectors locate the struck-out "was" price near the current one.
var walmartWasSelectors = []string{
	`[data-automation-id="was-price"]`,
	".was-price",
	".strike-through",
	"s",
	"del",
}

// NewWalmartStrategy builds the Walmart extraction strategy.
func NewWalmartStrategy() Strategy {
	return &strategy{
		name: VendorWalmart,
		methods: []searchMethod{
			{name: "embedded_state", try: walmartEmbeddedState},
			{name: "price_display", try: walmartPriceDisplay},
			{name: "meta_tags", try: walmartMetaTags},
		},
	}
}

// walmartEmbeddedState locates state blobs in the raw markup and in every
// script body, then searches the decoded JSON for price fields.
func walmartEmbeddedState(d *Document) *RawCandidate {
	for _, blob := range walmartStateBlobs(d) {
		var root any
		if err := json.Unmarshal([]byte(blob), &root); err != nil {
			continue
		}
		if cand := walmartPriceFromState(root); cand != nil {
			return cand
		}
	}
	return nil
}

// walmartStateBlobs collects candidate JSON strings: anchored blobs from the
// raw markup first, then whole script bodies that look like bare JSON, then
// anchored blobs inside each script body.
func walmartStateBlobs(d *Document) []string {
	var blobs []string
	anchored := func(text string) {
		for _, re := range walmartStateAnchors {
			if loc := re.FindStringIndex(text); loc != nil {
				if blob, ok := jsonObjectAt(text, loc[0]); ok {
					blobs = append(blobs, blob)
				}
			}
		}
	}
	anchored(d.HTML())
	d.Find("script").Each(func(_ int, s *goquery.Selection) {
		body := strings.TrimSpace(s.Text())
		if body == "" {
			return
		}
		if strings.HasPrefix(body, "{") {
			blobs = append(blobs, body)
		}
		anchored(body)
	})
	return blobs
}

// walmartPriceFromState searches decoded state for the known price shapes:
// a pricing object with price/currentPrice and wasPrice/rollbackPrice, or
// any object carrying a direct price (possibly nested under current.price)
// with a sibling was/wasPrice/listPrice.
func walmartPriceFromState(root any) *RawCandidate {
	if v, ok := findValue(root, "pricing"); ok {
		if m, ok := v.(map[string]any); ok {
			if cand := walmartPricingCandidate(m); cand != nil {
				return cand
			}
		}
	}
	// An anchored blob may be the pricing object body itself.
	if m, ok := root.(map[string]any); ok {
		if cand := walmartPricingCandidate(m); cand != nil {
			return cand
		}
	}

	m, ok := findObjectWithKey(root, "price")
	if !ok {
		return nil
	}
	price := walmartPriceValue(m["price"])
	if price == "" {
		return nil
	}
	list := firstString(m, "was", "wasPrice", "listPrice")
	if list == "" {
		// A nested price object may carry the was-price itself
		if pm, ok := m["price"].(map[string]any); ok {
			list = firstString(pm, "was", "wasPrice", "listPrice")
		}
	}
	return &RawCandidate{
		Price:     price,
		ListPrice: list,
		Currency:  firstString(m, "currency", "currencyUnit"),
	}
}

// walmartPricingCandidate reads the price/currentPrice and the struck-out
// wasPrice/rollbackPrice from a pricing object.
func walmartPricingCandidate(m map[string]any) *RawCandidate {
	price := walmartPriceValue(m["price"])
	if price == "" {
		price = walmartPriceValue(m["currentPrice"])
	}
	if price == "" {
		return nil
	}
	return &RawCandidate{
		Price:     price,
		ListPrice: firstString(m, "wasPrice", "rollbackPrice", "was", "listPrice"),
		Currency:  firstString(m, "currency", "currencyUnit"),
	}
}

// walmartPriceValue renders a price field that may be a scalar, an object
// with a price sub-field, or an object nesting those under "current".
func walmartPriceValue(v any) string {
	switch p := v.(type) {
	case map[string]any:
		if cur, ok := p["current"]; ok {
			if s := walmartPriceValue(cur); s != "" {
				return s
			}
		}
		if inner, ok := p["price"]; ok {
			return asString(inner)
		}
		return ""
	default:
		return asString(v)
	}
}

// walmartPriceDisplay reads the rendered price element and checks nearby
// elements for a struck-out was-price.
func walmartPriceDisplay(d *Document) *RawCandidate {
	for _, selector := range walmartPriceSelectors {
		sel := d.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		text := strings.TrimSpace(sel.Text())
		if text == "" {
			if content, ok := sel.Attr("content"); ok {
				text = strings.TrimSpace(content)
			}
		}
		if text == "" {
			continue
		}
		cand := &RawCandidate{Price: text}
		for _, was := range walmartWasSelectors {
			wasSel := sel.Parent().Find(was).First()
			if wasSel.Length() == 0 {
				wasSel = sel.Parent().Parent().Find(was).First()
			}
			if list := strings.TrimSpace(wasSel.Text()); list != "" && list != text {
				cand.ListPrice = list
				break
			}
		}
		return cand
	}
	return nil
}

// walmartMetaTags falls back to Open Graph and itemprop price attributes.
func walmartMetaTags(d *Document) *RawCandidate {
	price := metaContent(d, "og:price:amount")
	currency := metaContent(d, "og:price:currency")
	if price == "" {
		price = metaContent(d, "product:price:amount")
		currency = metaContent(d, "product:price:currency")
	}
	if price == "" {
		sel := d.Find(`[itemprop="price"]`).First()
		if content, ok := sel.Attr("content"); ok {
			price = strings.TrimSpace(content)
		}
		if price == "" {
			price = strings.TrimSpace(sel.Text())
		}
		currency = metaContent(d, "priceCurrency")
	}
	if price == "" {
		return nil
	}
	return &RawCandidate{Price: price, Currency: currency}
}
