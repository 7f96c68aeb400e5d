// Package prodcat extracts tabular product data from an .xlsx workbook and
// feeds it to the static catalog generator.  No cgo is required.
//
// # Quick start
//
//	products, err := prodcat.Extract("products.xlsx")
//	if err != nil { ... }
//
//	for _, p := range products {
//	    fmt.Println(p.Name, p.URL)
//	}
//
// Extraction resolves the workbook's first worksheet through the package
// relationship chain, reads it into a dense table (resolving shared-string
// references), and maps the header row onto the fixed product schema
// (name / image / desc / url).  Sparse and slightly damaged sheets are
// tolerated: blank cells, malformed cell addresses and unresolvable
// shared-string indices never fail the read.  Structural problems do fail:
// see [workbook.ErrMissingSheet], [workbook.ErrMissingRelationshipID],
// [workbook.ErrUnresolvedRelationship] and [schema.MissingHeadersError].
//
// For lower-level access — the sheet name, the raw table, or the absorbed
// anomaly counts — open the workbook directly:
//
//	wb, err := workbook.Open("products.xlsx")
//	if err != nil { ... }
//	defer wb.Close()
//
//	tbl, err := wb.Table()
//	if err != nil { ... }
//	fmt.Println(tbl.Name, tbl.Width(), tbl.Diag.UnresolvedSharedStrings)
package prodcat

import (
	"io"

	"github.com/shengshui/prodcat/schema"
	"github.com/shengshui/prodcat/workbook"
)

// Version is the current version of the prodcat library.
const Version = "1.0.0"

// Extract reads the named .xlsx file and returns the product records from
// its first worksheet.
func Extract(name string) ([]schema.Product, error) {
	wb, err := workbook.Open(name)
	if err != nil {
		return nil, err
	}
	defer wb.Close()
	return extract(wb)
}

// ExtractReader reads an .xlsx workbook from an arbitrary [io.ReaderAt]
// and returns the product records from its first worksheet.
// size must equal the total byte length of the data.
func ExtractReader(r io.ReaderAt, size int64) ([]schema.Product, error) {
	wb, err := workbook.OpenReader(r, size)
	if err != nil {
		return nil, err
	}
	defer wb.Close()
	return extract(wb)
}

func extract(wb *workbook.Workbook) ([]schema.Product, error) {
	tbl, err := wb.Table()
	if err != nil {
		return nil, err
	}
	return schema.Map(tbl.Rows)
}
