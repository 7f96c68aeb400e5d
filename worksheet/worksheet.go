// Package worksheet parses a single .xlsx worksheet XML part into a dense
// rectangular table of string cells.
package worksheet

import (
	"encoding/xml"
	"fmt"
	"regexp"
	"strconv"

	"github.com/shengshui/prodcat/internal/cellref"
	"github.com/shengshui/prodcat/stringtable"
)

// cellTypeShared is the value of a cell's t attribute that marks its <v>
// content as an index into the shared-string table.
const cellTypeShared = "s"

// addrPattern matches a well-formed A1-style cell address.  Cells whose r
// attribute does not match (malformed or unsupported addressing) are
// skipped rather than failing the read.
var addrPattern = regexp.MustCompile(`^([A-Z]+)[0-9]+$`)

// Diagnostics counts cell-level anomalies absorbed during a read.  They are
// never fatal — sparse and slightly damaged sheets are routine — but callers
// may want to surface them.
type Diagnostics struct {
	// UnresolvedSharedStrings counts cells marked as shared-string
	// references whose index was not a valid position in the table.  The
	// unresolved raw text is kept as the cell value in that case, which is
	// almost certainly not the intended display value.
	UnresolvedSharedStrings int
	// SkippedCells counts cells dropped because their address attribute did
	// not match the A1 pattern.
	SkippedCells int
}

// Table is the densified contents of one worksheet.  Every row has the same
// length: the maximum column index observed across all rows, plus one.
// Positions with no stored cell hold the empty string.  Rows that contained
// no cells at all are dropped, so Rows may be shorter than the sheet's row
// count.
type Table struct {
	// Name is the display name of the worksheet as it appears on the sheet tab.
	Name string
	// Rows holds the cell values in document order.
	Rows [][]string
	// Diag reports the cell-level anomalies absorbed during the read.
	Diag Diagnostics
}

// Width returns the uniform row width of the table (0 for an empty table).
func (t *Table) Width() int {
	if len(t.Rows) == 0 {
		return 0
	}
	return len(t.Rows[0])
}

// ── worksheet part XML model ──────────────────────────────────────────────────

type xmlWorksheet struct {
	XMLName   xml.Name     `xml:"http://schemas.openxmlformats.org/spreadsheetml/2006/main worksheet"`
	SheetData xmlSheetData `xml:"sheetData"`
}

type xmlSheetData struct {
	Rows []xmlRow `xml:"row"`
}

type xmlRow struct {
	Cells []xmlCell `xml:"c"`
}

// xmlCell is one <c> element.  R is the A1-style address, T the cell type
// marker, V the stored value (absent for blank cells that only carry a type
// marker).
type xmlCell struct {
	R string `xml:"r,attr"`
	T string `xml:"t,attr"`
	V string `xml:"v"`
}

// ── reading ───────────────────────────────────────────────────────────────────

// Read parses the raw bytes of a worksheet part and returns the densified
// Table.  st may be nil when the workbook has no shared strings; shared
// references then fall back to their raw index text.
//
// Cell-level irregularities never abort the read: unmatched addresses are
// skipped, missing value nodes become the empty string, and shared-string
// indices that cannot be resolved keep their raw text.  All of these are
// tallied in the returned Table's Diag.
func Read(name string, data []byte, st *stringtable.StringTable) (*Table, error) {
	var ws xmlWorksheet
	if err := xml.Unmarshal(data, &ws); err != nil {
		return nil, fmt.Errorf("worksheet: parse %q: %w", name, err)
	}

	tbl := &Table{Name: name}

	// Sparse pass: accumulate column index → value per row, keeping only
	// rows that produce at least one cell.
	var sparse []map[int]string
	maxCol := -1
	for _, row := range ws.SheetData.Rows {
		cells := make(map[int]string, len(row.Cells))
		for _, c := range row.Cells {
			m := addrPattern.FindStringSubmatch(c.R)
			if m == nil {
				tbl.Diag.SkippedCells++
				continue
			}
			col := cellref.ColumnIndex(m[1])
			cells[col] = resolveValue(c, st, &tbl.Diag)
			if col > maxCol {
				maxCol = col
			}
		}
		if len(cells) == 0 {
			continue
		}
		sparse = append(sparse, cells)
	}
	if len(sparse) == 0 {
		return tbl, nil
	}

	// Densify to the global width, filling gaps with the empty string.
	width := maxCol + 1
	tbl.Rows = make([][]string, len(sparse))
	for i, cells := range sparse {
		dense := make([]string, width)
		for col, v := range cells {
			dense[col] = v
		}
		tbl.Rows[i] = dense
	}
	return tbl, nil
}

// resolveValue returns the display value for one cell.  Shared-string
// references are resolved through st; a non-integer or out-of-range index
// degrades to the raw text and bumps the diagnostic counter.
func resolveValue(c xmlCell, st *stringtable.StringTable, diag *Diagnostics) string {
	if c.T != cellTypeShared {
		return c.V
	}
	idx, err := strconv.Atoi(c.V)
	if err == nil && idx >= 0 && idx < st.Len() {
		return st.Get(idx)
	}
	// A type marker with no stored value is just a blank cell, not an
	// anomaly worth counting.
	if c.V != "" {
		diag.UnresolvedSharedStrings++
	}
	return c.V
}
