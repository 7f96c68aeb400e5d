package stringtable_test

import (
	"testing"

	"github.com/shengshui/prodcat/stringtable"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

func TestNew(t *testing.T) {
	data := xmlHeader + `<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" count="3" uniqueCount="3">
  <si><t>Alpha</t></si>
  <si><t>Beta</t></si>
  <si><t>Gamma</t></si>
</sst>`
	st, err := stringtable.New([]byte(data))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if st.Len() != 3 {
		t.Fatalf("Len = %d, want 3", st.Len())
	}
	want := []string{"Alpha", "Beta", "Gamma"}
	for i, w := range want {
		if got := st.Get(i); got != w {
			t.Errorf("Get(%d) = %q, want %q", i, got, w)
		}
	}
}

// A string item may be split across multiple rich-text runs; the logical
// string is the run texts concatenated in document order.
func TestNewRichTextRuns(t *testing.T) {
	data := xmlHeader + `<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
  <si>
    <r><rPr><b val="1"/></rPr><t>Hello</t></r>
    <r><t xml:space="preserve"> world</t></r>
  </si>
  <si>
    <r><t>one</t></r>
    <r><t></t></r>
    <r><t>two</t></r>
  </si>
</sst>`
	st, err := stringtable.New([]byte(data))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := st.Get(0); got != "Hello world" {
		t.Errorf("Get(0) = %q, want %q", got, "Hello world")
	}
	if got := st.Get(1); got != "onetwo" {
		t.Errorf("Get(1) = %q, want %q", got, "onetwo")
	}
}

func TestNewEmptyItems(t *testing.T) {
	data := xmlHeader + `<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
  <si><t></t></si>
  <si/>
</sst>`
	st, err := stringtable.New([]byte(data))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if st.Len() != 2 {
		t.Fatalf("Len = %d, want 2", st.Len())
	}
	for i := 0; i < 2; i++ {
		if got := st.Get(i); got != "" {
			t.Errorf("Get(%d) = %q, want empty string", i, got)
		}
	}
}

func TestNewMalformed(t *testing.T) {
	if _, err := stringtable.New([]byte("<sst")); err == nil {
		t.Fatal("expected error for malformed XML, got nil")
	}
}

// A nil table behaves like an empty one for Len, so a workbook without a
// shared-strings part can hand a nil table to the worksheet reader.
func TestNilTableLen(t *testing.T) {
	var st *stringtable.StringTable
	if got := st.Len(); got != 0 {
		t.Errorf("nil table Len = %d, want 0", got)
	}
	if got := st.Strings(); got != nil {
		t.Errorf("nil table Strings = %v, want nil", got)
	}
}
