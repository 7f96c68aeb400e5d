// Package patch splices a product JSON payload into a previously generated
// catalog page, between two fixed textual markers.  It performs literal
// string surgery only — the surrounding document is never parsed.
package patch

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// The marker lines emitted by the renderer.  Everything after StartMarker
// up to (but not including) EndMarker is replaced on each sync.
const (
	StartMarker = "// PRODUCTS_DATA_START"
	EndMarker   = "// PRODUCTS_DATA_END"
)

// Apply replaces the product data block in doc with the records from
// jsonData, pretty-printed with two-space indentation.
//
// jsonData must be a JSON array of objects; anything else is rejected
// before the document is touched.  Missing or out-of-order markers are an
// error and leave doc unmodified.  Apply is idempotent: syncing the same
// payload twice produces identical output.
func Apply(doc, jsonData []byte) ([]byte, error) {
	if err := validate(jsonData); err != nil {
		return nil, err
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, jsonData, "", "  "); err != nil {
		return nil, fmt.Errorf("patch: indent products JSON: %w", err)
	}

	start := bytes.Index(doc, []byte(StartMarker))
	end := bytes.Index(doc, []byte(EndMarker))
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("patch: could not find %s/%s markers in document", StartMarker, EndMarker)
	}

	// Keep everything through the start marker and everything from the end
	// marker on; the data block between them is rebuilt from scratch.
	var out bytes.Buffer
	out.Grow(len(doc) + pretty.Len())
	out.Write(doc[:start+len(StartMarker)])
	out.WriteString("\n    const PRODUCTS = ")
	out.Write(pretty.Bytes())
	out.WriteString(";\n    ")
	out.Write(doc[end:])
	return out.Bytes(), nil
}

// validate checks that jsonData is an array whose every element is an
// object, reporting the first offending index.
func validate(jsonData []byte) error {
	var items []json.RawMessage
	if err := json.Unmarshal(jsonData, &items); err != nil {
		return fmt.Errorf("patch: products JSON must be a JSON array: %w", err)
	}
	for i, item := range items {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(item, &obj); err != nil {
			return fmt.Errorf("patch: products JSON item #%d must be an object", i)
		}
	}
	return nil
}
