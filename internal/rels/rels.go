// Package rels parses OPC relationship XML parts (.rels).
//
// A workbook references its worksheet parts indirectly: each sheet
// declaration carries a relationship ID, and the workbook's .rels part maps
// that ID to the storage path of the worksheet.  This package provides the
// ID → target lookup table for that second hop.
package rels

import (
	"encoding/xml"
	"fmt"
)

// relationships is the root element of a .rels XML document.
type relationships struct {
	Relationships []relationship `xml:"Relationship"`
}

// relationship is one entry in a .rels XML document.
type relationship struct {
	ID     string `xml:"Id,attr"`
	Target string `xml:"Target,attr"`
}

// Parse parses the raw bytes of a .rels part and returns a map of
// relationship ID → target path.
func Parse(data []byte) (map[string]string, error) {
	var r relationships
	if err := xml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse rels XML: %w", err)
	}
	m := make(map[string]string, len(r.Relationships))
	for _, rel := range r.Relationships {
		m[rel.ID] = rel.Target
	}
	return m, nil
}
