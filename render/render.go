// Package render turns extracted product records into the static HTML
// catalog page.  It is a downstream consumer of the decoding core: the only
// input is the record sequence, the only output is markup.
package render

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"regexp"
	"strings"

	"github.com/shengshui/prodcat/schema"
)

// DefaultCardLimit is the number of product cards shown on the page.  The
// full record list is still embedded as JSON regardless of the limit.
const DefaultCardLimit = 9

//go:embed template.html
var pageTemplate string

var tmpl = template.Must(template.New("products").Parse(pageTemplate))

// page is the data handed to the template.
type page struct {
	Cards        []card
	Total        int
	Shown        int
	ProductsJSON template.JS
}

// card is one rendered product tile.  Image and URL are already normalized.
type card struct {
	Name  string
	Desc  string
	Image string
	URL   string
}

// Page renders the catalog page for the given products.  At most limit
// cards are shown (DefaultCardLimit when limit <= 0); the complete product
// list is embedded as a JSON literal between the PRODUCTS_DATA markers so
// it can be re-synced later without regenerating the page.
func Page(products []schema.Product, limit int) ([]byte, error) {
	if products == nil {
		products = []schema.Product{} // marshal as [], not null
	}
	if limit <= 0 {
		limit = DefaultCardLimit
	}
	shown := len(products)
	if shown > limit {
		shown = limit
	}

	cards := make([]card, 0, shown)
	for _, p := range products[:shown] {
		cards = append(cards, card{
			Name:  p.Name,
			Desc:  p.Desc,
			Image: normalizeURL(p.Image),
			URL:   normalizeURL(p.URL),
		})
	}

	// json.Marshal escapes <, > and & by default, which keeps the literal
	// safe inside a <script> element.
	data, err := json.Marshal(products)
	if err != nil {
		return nil, fmt.Errorf("render: marshal products: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, page{
		Cards:        cards,
		Total:        len(products),
		Shown:        shown,
		ProductsJSON: template.JS(data),
	})
	if err != nil {
		return nil, fmt.Errorf("render: execute template: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	schemeRe     = regexp.MustCompile(`(?i)^https?://`)
	bareDomainRe = regexp.MustCompile(`(?i)^[\w.-]+\.[a-z]{2,}`)
)

// normalizeURL makes half-written spreadsheet URLs usable: full http(s)
// URLs and rooted or relative paths pass through, a bare domain gets an
// https:// prefix, anything else is left alone.
func normalizeURL(u string) string {
	if u == "" {
		return ""
	}
	if schemeRe.MatchString(u) {
		return u
	}
	if strings.HasPrefix(u, "./") || strings.HasPrefix(u, "/") {
		return u
	}
	if bareDomainRe.MatchString(u) {
		return "https://" + u
	}
	return u
}
