package schema_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/shengshui/prodcat/schema"
)

func TestMapHeaderNormalization(t *testing.T) {
	table := [][]string{
		{"Name", " IMAGE ", "desc", "URL", "extra"},
		{"Widget", "img.png", "A fine widget", "http://x", "ignored"},
		{"", "", "", "", "also ignored"},
	}
	products, err := schema.Map(table)
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	want := []schema.Product{
		{Name: "Widget", Image: "img.png", Desc: "A fine widget", URL: "http://x"},
	}
	if !reflect.DeepEqual(products, want) {
		t.Errorf("Map = %+v, want %+v", products, want)
	}
}

func TestMapMissingHeaders(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		missing []string
	}{
		{"one missing", []string{"name", "image", "url"}, []string{"desc"}},
		{"several missing", []string{"name"}, []string{"desc", "image", "url"}},
		{"all missing", []string{"foo", "bar"}, []string{"desc", "image", "name", "url"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := schema.Map([][]string{tc.headers})
			var mh *schema.MissingHeadersError
			if !errors.As(err, &mh) {
				t.Fatalf("error = %v, want *MissingHeadersError", err)
			}
			if !reflect.DeepEqual(mh.Missing, tc.missing) {
				t.Errorf("Missing = %v, want %v", mh.Missing, tc.missing)
			}
		})
	}
}

func TestMapEmptyTable(t *testing.T) {
	products, err := schema.Map(nil)
	if err != nil {
		t.Fatalf("Map(nil): %v", err)
	}
	if len(products) != 0 {
		t.Errorf("Map(nil) = %v, want empty", products)
	}
}

// A header-only table is valid and yields no records.
func TestMapHeaderOnlyTable(t *testing.T) {
	products, err := schema.Map([][]string{{"name", "image", "desc", "url"}})
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	if len(products) != 0 {
		t.Errorf("Map = %v, want empty slice", products)
	}
}

// Duplicate headers resolve to the first occurrence.
func TestMapDuplicateHeaderFirstWins(t *testing.T) {
	table := [][]string{
		{"name", "name", "image", "desc", "url"},
		{"first", "second", "i", "d", "u"},
	}
	products, err := schema.Map(table)
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	if products[0].Name != "first" {
		t.Errorf("Name = %q, want %q", products[0].Name, "first")
	}
}

// Values are trimmed, and a row is kept as long as any one field survives
// trimming.
func TestMapTrimming(t *testing.T) {
	table := [][]string{
		{"name", "image", "desc", "url"},
		{"  Widget  ", "", "", ""},
		{"   ", " ", "\t", ""},
	}
	products, err := schema.Map(table)
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	want := []schema.Product{{Name: "Widget"}}
	if !reflect.DeepEqual(products, want) {
		t.Errorf("Map = %+v, want %+v", products, want)
	}
}

// Row order is preserved; no deduplication happens across records.
func TestMapPreservesOrderAndDuplicates(t *testing.T) {
	table := [][]string{
		{"name", "image", "desc", "url"},
		{"A", "", "", ""},
		{"B", "", "", ""},
		{"A", "", "", ""},
	}
	products, err := schema.Map(table)
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	var names []string
	for _, p := range products {
		names = append(names, p.Name)
	}
	if !reflect.DeepEqual(names, []string{"A", "B", "A"}) {
		t.Errorf("names = %v, want [A B A]", names)
	}
}

func TestMissingHeadersErrorMessage(t *testing.T) {
	err := &schema.MissingHeadersError{Missing: []string{"desc", "url"}}
	want := "schema: product table missing headers: desc, url (need name/image/desc/url)"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
