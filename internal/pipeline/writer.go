package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/scandocs/pipeline/internal/entity"
)

// MarshalDocument renders the canonical document record: two-space indent,
// HTML left unescaped, trailing newline. The encoding is deterministic, so
// re-running over identical inputs produces byte-identical records.
func MarshalDocument(doc *entity.Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteDocument publishes <document_id>.json atomically: the record is
// written to a temp file in the output directory and renamed into place, so
// a consumer sees either the full record or nothing.
func WriteDocument(dir string, doc *entity.Document) error {
	data, err := MarshalDocument(doc)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+doc.DocumentID+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}

	target := filepath.Join(dir, doc.DocumentID+".json")
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("publish document: %w", err)
	}
	return nil
}
