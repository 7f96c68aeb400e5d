// Package schema maps a raw worksheet table onto the fixed product schema.
//
// The first table row is treated as headers.  Header matching is
// case-insensitive and whitespace-trimmed; when a header name occurs more
// than once the first occurrence wins.  Data rows whose four mapped values
// are all empty after trimming are dropped.
package schema

import (
	"fmt"
	"sort"
	"strings"
)

// Product is one catalog entry extracted from the product table.  All four
// fields are always present, possibly empty.
type Product struct {
	Name  string `json:"name"`
	Image string `json:"image"`
	Desc  string `json:"desc"`
	URL   string `json:"url"`
}

// requiredFields are the logical fields every product table must declare as
// headers.
var requiredFields = []string{"name", "image", "desc", "url"}

// MissingHeadersError reports the required header names absent from the
// table's first row.  Missing is sorted alphabetically.  This is a hard,
// user-facing validation failure: the input document must be fixed, there
// is no recoverable default.
type MissingHeadersError struct {
	Missing []string
}

func (e *MissingHeadersError) Error() string {
	return fmt.Sprintf("schema: product table missing headers: %s (need name/image/desc/url)",
		strings.Join(e.Missing, ", "))
}

// Map converts a densified table into product records.  An empty table
// yields no records and no error; a table with only a header row yields an
// empty slice.  Row order is preserved and no deduplication is performed.
func Map(table [][]string) ([]Product, error) {
	if len(table) == 0 {
		return nil, nil
	}

	idx, err := mapHeaders(table[0])
	if err != nil {
		return nil, err
	}

	products := make([]Product, 0, len(table)-1)
	for _, row := range table[1:] {
		p := Product{
			Name:  strings.TrimSpace(field(row, idx["name"])),
			Image: strings.TrimSpace(field(row, idx["image"])),
			Desc:  strings.TrimSpace(field(row, idx["desc"])),
			URL:   strings.TrimSpace(field(row, idx["url"])),
		}
		if p.Name == "" && p.Image == "" && p.Desc == "" && p.URL == "" {
			continue
		}
		products = append(products, p)
	}
	return products, nil
}

// mapHeaders builds the logical-field → column-index mapping from the
// normalized header row, first occurrence winning.  It fails with
// *MissingHeadersError naming every absent required field.
func mapHeaders(headers []string) (map[string]int, error) {
	idx := make(map[string]int, len(requiredFields))
	for i, h := range headers {
		h = normalizeHeader(h)
		if !isRequired(h) {
			continue
		}
		if _, seen := idx[h]; seen {
			continue // duplicate header: first occurrence wins
		}
		idx[h] = i
	}

	var missing []string
	for _, f := range requiredFields {
		if _, ok := idx[f]; !ok {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &MissingHeadersError{Missing: missing}
	}
	return idx, nil
}

// normalizeHeader trims surrounding whitespace and lowercases a header cell.
func normalizeHeader(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func isRequired(h string) bool {
	for _, f := range requiredFields {
		if h == f {
			return true
		}
	}
	return false
}

// field returns row[i], or "" when the row is narrower than i+1.  Densified
// tables have uniform width, but Map does not depend on that invariant.
func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
