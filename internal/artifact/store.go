package artifact

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/scandocs/pipeline/constants"
	"github.com/scandocs/pipeline/internal/entity"
)

// Rejection records one artifact skipped during a scan. DocumentID and Page
// are set when the filename parsed far enough to know them, so the assembler
// can degrade the owning document instead of silently losing the page.
type Rejection struct {
	Filename   string
	DocumentID string
	Page       int
	Message    string
}

// ScanStats aggregates per-file outcomes of one directory scan.
type ScanStats struct {
	Scanned    int // files seen
	Malformed  int // filename did not parse
	Invalid    int // payload failed schema validation
	Loaded     int // artifacts returned
	Rejections []Rejection
}

// Store is a read-only accessor over a directory of per-page artifacts.
type Store struct {
	dir    string
	logger *slog.Logger
}

func NewStore(dir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{dir: dir, logger: logger}
}

// List reads every page artifact in the directory. Malformed filenames and
// invalid payloads are skipped and counted, never fatal; only a directory
// read failure errors. Hidden files and non-JSON files are ignored outright.
func (s *Store) List(ctx context.Context) ([]entity.PageArtifact, ScanStats, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, ScanStats{}, fmt.Errorf("read artifact dir: %w", err)
	}

	var stats ScanStats
	var artifacts []entity.PageArtifact
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if _, ok := constants.ArtifactExtensions[constants.NormalizeExt(filepath.Ext(name))]; !ok {
			continue
		}
		stats.Scanned++

		docID, page, perr := ParseFilename(name)
		if perr != nil {
			s.logger.Warn("artifact.filename_malformed", "file", name, "error", perr)
			stats.Malformed++
			stats.Rejections = append(stats.Rejections, Rejection{Filename: name, Message: perr.Error()})
			continue
		}

		art, lerr := s.load(name, docID, page)
		if lerr != nil {
			s.logger.Warn("artifact.payload_invalid", "file", name, "error", lerr)
			stats.Invalid++
			stats.Rejections = append(stats.Rejections, Rejection{
				Filename: name, DocumentID: docID, Page: page, Message: lerr.Error(),
			})
			continue
		}
		artifacts = append(artifacts, art)
		stats.Loaded++
	}

	s.logger.Info("artifact.scan_complete",
		"dir", s.dir,
		"scanned", stats.Scanned,
		"loaded", stats.Loaded,
		"malformed", stats.Malformed,
		"invalid", stats.Invalid,
	)
	return artifacts, stats, nil
}

func (s *Store) load(name, docID string, page int) (entity.PageArtifact, error) {
	raw, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return entity.PageArtifact{}, fmt.Errorf("read artifact: %w", err)
	}
	if err := ValidateArtifactJSON(raw); err != nil {
		return entity.PageArtifact{}, err
	}
	var file entity.ArtifactFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return entity.PageArtifact{}, fmt.Errorf("decode artifact: %w", err)
	}

	// Schema guarantees at least one confidence field.
	conf, _ := file.Metadata.BestConfidence()

	// The filename is authoritative for grouping and ordering; the embedded
	// page_number is informational and may lag behind renames.
	return entity.PageArtifact{
		DocumentID: docID,
		PageNumber: page,
		Filename:   name,
		Text:       file.Text,
		Confidence: conf,
		Dimensions: file.Metadata.Dimensions,
		OCREngine:  file.Metadata.OCREngine,
	}, nil
}
