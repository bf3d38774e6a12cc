package extractor

import (
	"net/url"
	"strings"
)

// DetectVendor maps a product URL to a vendor tag by substring matching on
// the host. Unrecognized hosts and unparseable URLs are generic.
func DetectVendor(rawURL string) string {
	host := ""
	if u, err := url.Parse(rawURL); err == nil {
		host = strings.ToLower(u.Hostname())
	}
	if host == "" {
		host = strings.ToLower(rawURL)
	}

	switch {
	case strings.Contains(host, "amazon."):
		return VendorAmazon
	case strings.Contains(host, "walmart."):
		return VendorWalmart
	case strings.Contains(host, "target."):
		return VendorTarget
	case strings.Contains(host, "bestbuy."):
		return VendorBestBuy
	}
	return VendorGeneric
}
