// Package workbook opens an .xlsx package (a ZIP archive of XML parts),
// resolves the storage path of the first worksheet through the workbook's
// relationship part, and loads the shared-string table.
package workbook

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/shengshui/prodcat/internal/rels"
	"github.com/shengshui/prodcat/stringtable"
	"github.com/shengshui/prodcat/worksheet"
)

// Well-known part paths inside the package.
const (
	workbookPart      = "xl/workbook.xml"
	workbookRelsPart  = "xl/_rels/workbook.xml.rels"
	sharedStringsPart = "xl/sharedStrings.xml"
)

// Topology failures.  Each hop of the sheet → relationship ID → target
// lookup chain has its own error so a broken document can be diagnosed
// precisely; all three abort extraction with no partial result.
var (
	// ErrMissingSheet indicates the workbook part declares no sheets.
	ErrMissingSheet = errors.New("no sheet found in workbook")
	// ErrMissingRelationshipID indicates the first sheet declaration carries
	// no relationship-id attribute.
	ErrMissingRelationshipID = errors.New("sheet relationship id not found")
	// ErrUnresolvedRelationship indicates the workbook's relationship part
	// has no entry matching the sheet's relationship id.
	ErrUnresolvedRelationship = errors.New("sheet relationship target not found")
)

// Workbook represents an open .xlsx package with its first worksheet
// resolved.  The source document is treated as immutable input; a Workbook
// holds no mutable state beyond the underlying ZIP handle.
type Workbook struct {
	zr *zip.ReadCloser // non-nil when opened by file name
	zf *zip.Reader     // always non-nil

	sheetName   string
	sheetPath   string
	stringTable *stringtable.StringTable // nil when the part is absent
}

// Open opens the named .xlsx file and resolves its first worksheet.
// The caller must call Close on the returned Workbook when done to release
// the underlying file handle.
func Open(name string) (*Workbook, error) {
	rc, err := zip.OpenReader(name)
	if err != nil {
		return nil, fmt.Errorf("workbook: open %q: %w", name, err)
	}
	wb := &Workbook{zr: rc, zf: &rc.Reader}
	if err := wb.parse(); err != nil {
		_ = rc.Close()
		return nil, err
	}
	return wb, nil
}

// OpenReader parses an .xlsx package from an in-memory ReaderAt.
// size must be the total byte size of the ZIP data.
func OpenReader(r io.ReaderAt, size int64) (*Workbook, error) {
	zf, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("workbook: open reader: %w", err)
	}
	wb := &Workbook{zf: zf}
	if err := wb.parse(); err != nil {
		return nil, err
	}
	return wb, nil
}

// SheetName returns the display name of the first worksheet.
// It is "Sheet1" when the sheet declaration carried no name.
func (wb *Workbook) SheetName() string {
	return wb.sheetName
}

// SheetPath returns the normalized package path of the first worksheet part,
// e.g. "xl/worksheets/sheet1.xml".
func (wb *Workbook) SheetPath() string {
	return wb.sheetPath
}

// SharedStrings returns the workbook's shared-string table.  It is nil when
// the package has no shared-strings part, which downstream readers accept.
func (wb *Workbook) SharedStrings() *stringtable.StringTable {
	return wb.stringTable
}

// Table reads the first worksheet and returns its densified cell table.
func (wb *Workbook) Table() (*worksheet.Table, error) {
	data, err := wb.readZipEntry(wb.sheetPath)
	if err != nil {
		return nil, fmt.Errorf("workbook: read sheet %q: %w", wb.sheetName, err)
	}
	return worksheet.Read(wb.sheetName, data, wb.stringTable)
}

// Close releases the underlying ZIP file handle.
// It is a no-op when the workbook was opened via OpenReader (no file handle
// to release), and always returns nil in that case.
func (wb *Workbook) Close() error {
	if wb.zr != nil {
		return wb.zr.Close()
	}
	return nil
}

// ── internal ─────────────────────────────────────────────────────────────────

// parse resolves the first-sheet topology and loads the optional
// shared-strings part.
func (wb *Workbook) parse() error {
	if err := wb.resolveFirstSheet(); err != nil {
		return err
	}
	return wb.parseSharedStrings()
}

// xmlWorkbook maps the workbook part.  Only the sheet declarations are
// needed; everything else in the part is ignored.
type xmlWorkbook struct {
	XMLName xml.Name   `xml:"http://schemas.openxmlformats.org/spreadsheetml/2006/main workbook"`
	Sheets  []xmlSheet `xml:"sheets>sheet"`
}

// xmlSheet is one sheet declaration.  RID is the r:id attribute from the
// document-relationships namespace.
type xmlSheet struct {
	Name string `xml:"name,attr"`
	RID  string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
}

// resolveFirstSheet walks the two-level lookup chain from the first sheet
// declaration to its worksheet part path:
//
//	sheet → relationship id → relationship target → normalized part path
//
// Each hop fails with its own sentinel error when unsatisfied.
func (wb *Workbook) resolveFirstSheet() error {
	data, err := wb.readZipEntry(workbookPart)
	if err != nil {
		return fmt.Errorf("workbook: read %s: %w", workbookPart, err)
	}
	var x xmlWorkbook
	if err := xml.Unmarshal(data, &x); err != nil {
		return fmt.Errorf("workbook: parse %s: %w", workbookPart, err)
	}

	if len(x.Sheets) == 0 {
		return fmt.Errorf("workbook: %w", ErrMissingSheet)
	}
	sheet := x.Sheets[0]
	name := sheet.Name
	if name == "" {
		name = "Sheet1"
	}
	if sheet.RID == "" {
		return fmt.Errorf("workbook: sheet %q: %w", name, ErrMissingRelationshipID)
	}

	relsData, err := wb.readZipEntry(workbookRelsPart)
	if err != nil {
		return fmt.Errorf("workbook: read %s: %w", workbookRelsPart, err)
	}
	relMap, err := rels.Parse(relsData)
	if err != nil {
		return fmt.Errorf("workbook: parse %s: %w", workbookRelsPart, err)
	}
	target, ok := relMap[sheet.RID]
	if !ok || target == "" {
		return fmt.Errorf("workbook: sheet %q rId %q: %w", name, sheet.RID, ErrUnresolvedRelationship)
	}

	wb.sheetName = name
	wb.sheetPath = normalizeTarget(target)
	return nil
}

// normalizeTarget converts a relationship target into an absolute package
// path.  Absolute targets (starting with "/") are used as-is after stripping
// the leading slash; relative targets are resolved against the workbook
// part's base directory.
func normalizeTarget(target string) string {
	base := path.Dir(workbookPart) // "xl"
	target = strings.TrimPrefix(target, "/")
	if target == base || strings.HasPrefix(target, base+"/") {
		return target
	}
	return base + "/" + target
}

// parseSharedStrings reads xl/sharedStrings.xml if it exists.  The part is
// optional — a workbook with no string cells simply has none, and the
// string table stays nil.
func (wb *Workbook) parseSharedStrings() error {
	data, err := wb.readZipEntry(sharedStringsPart)
	if err != nil {
		return nil
	}
	st, err := stringtable.New(data)
	if err != nil {
		return fmt.Errorf("workbook: shared strings: %w", err)
	}
	wb.stringTable = st
	return nil
}

// readZipEntry reads the full contents of a named entry from the ZIP archive.
func (wb *Workbook) readZipEntry(name string) ([]byte, error) {
	for _, f := range wb.zf.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			data, readErr := io.ReadAll(rc)
			closeErr := rc.Close()
			if readErr != nil {
				return nil, readErr
			}
			// Propagate decompressor checksum / close errors even when the
			// read appeared to succeed (e.g. truncated deflate stream).
			if closeErr != nil {
				return nil, closeErr
			}
			return data, nil
		}
	}
	return nil, fmt.Errorf("%q not found in archive", name)
}
