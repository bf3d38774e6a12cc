package extractor

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// jsonldBlocks decodes every application/ld+json script in the document.
// Top-level arrays are flattened one level so each node is a candidate
// object. Malformed blocks are skipped.
func jsonldBlocks(d *Document) []any {
	var blocks []any
	d.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		var node any
		if err := json.Unmarshal([]byte(s.Text()), &node); err != nil {
			return
		}
		if arr, ok := node.([]any); ok {
			blocks = append(blocks, arr...)
			return
		}
		blocks = append(blocks, node)
	})
	return blocks
}

// isSchemaType reports whether a JSON-LD node declares the given @type,
// either directly or as a member of an @type array.
func isSchemaType(node any, typ string) bool {
	m, ok := node.(map[string]any)
	if !ok {
		return false
	}
	switch t := m["@type"].(type) {
	case string:
		return strings.EqualFold(t, typ)
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && strings.EqualFold(s, typ) {
				return true
			}
		}
	}
	return false
}

// metaContent returns the content attribute of the first meta tag with the
// given property or itemprop.
func metaContent(d *Document, property string) string {
	sel := d.Find(`meta[property="` + property + `"], meta[itemprop="` + property + `"], meta[name="` + property + `"]`).First()
	content, _ := sel.Attr("content")
	return strings.TrimSpace(content)
}
