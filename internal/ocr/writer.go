package ocr

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/scandocs/pipeline/internal/entity"
)

// ArtifactName builds the canonical artifact filename for a page. Page
// numbers are zero-padded to four digits, matching the corpus convention.
func ArtifactName(docID string, page int) string {
	return fmt.Sprintf("%s_page_%04d.json", docID, page)
}

// WriteArtifact stores one page artifact under its canonical name, pretty
// printed the same way document records are.
func WriteArtifact(dir, docID string, page int, file entity.ArtifactFile) (string, error) {
	name := ArtifactName(docID, page)
	file.Filename = name

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(file); err != nil {
		return "", fmt.Errorf("encode artifact: %w", err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write artifact: %w", err)
	}
	return path, nil
}
