package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// WriteJSON writes the document with stable two-space indentation, matching
// the /graph.json endpoint byte for byte.
func WriteJSON(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	return nil
}

// WriteJSONFile writes the document to path.
func WriteJSONFile(path string, doc *Document) error {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, doc); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}
