// Package stringtable parses the xl/sharedStrings.xml part of an .xlsx file
// and provides indexed access to the shared string values.
package stringtable

import (
	"encoding/xml"
	"fmt"
)

// StringTable holds the shared strings parsed from xl/sharedStrings.xml.
// Indices are 0-based and follow the document order of the <si> entries,
// matching the indices stored in shared-string cells.
type StringTable struct {
	strings []string
}

// xmlSST maps the sst root element of the shared-strings part.
type xmlSST struct {
	XMLName xml.Name `xml:"http://schemas.openxmlformats.org/spreadsheetml/2006/main sst"`
	SI      []xmlSI  `xml:"si"`
}

// xmlSI is one string item.  A plain string carries a single direct <t>
// child; rich-text strings are split into <r> runs, each with its own <t>.
type xmlSI struct {
	T *string  `xml:"t"`
	R []xmlRun `xml:"r"`
}

// xmlRun is one rich-text run inside an <si>.
type xmlRun struct {
	T string `xml:"t"`
}

// New parses the raw bytes of a shared-strings part and returns a populated
// StringTable.  Each string item yields the concatenation of all its text
// runs in document order; a run with no text contributes the empty string.
func New(data []byte) (*StringTable, error) {
	var sst xmlSST
	if err := xml.Unmarshal(data, &sst); err != nil {
		return nil, fmt.Errorf("stringtable: %w", err)
	}
	st := &StringTable{strings: make([]string, 0, len(sst.SI))}
	for _, si := range sst.SI {
		st.strings = append(st.strings, si.text())
	}
	return st, nil
}

// text concatenates the item's direct text with every run's text, in
// document order.
func (si xmlSI) text() string {
	var s string
	if si.T != nil {
		s = *si.T
	}
	for _, r := range si.R {
		s += r.T
	}
	return s
}

// Get returns the shared string at index idx.  It panics if idx is out of
// range, matching the behaviour of a slice index; callers with untrusted
// indices must range-check against Len first.
func (st *StringTable) Get(idx int) string {
	return st.strings[idx]
}

// Len returns the total number of shared strings loaded.
// It returns 0 when st is nil, so a workbook without a shared-strings part
// can pass a nil table downstream safely.
func (st *StringTable) Len() int {
	if st == nil {
		return 0
	}
	return len(st.strings)
}

// Strings returns all shared strings in index order.
func (st *StringTable) Strings() []string {
	if st == nil {
		return nil
	}
	return st.strings
}
