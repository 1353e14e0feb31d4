// Package split breaks a downloaded source PDF into per-page PDFs named by
// the corpus convention, ready for rasterization and page OCR.
package split

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

type Splitter struct {
	logger *slog.Logger
}

func NewSplitter(logger *slog.Logger) *Splitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Splitter{logger: logger}
}

// Split writes one single-page PDF per page of pdfPath into outDir, named
// <document_id>_page_<n>.pdf with the page zero-padded to four digits. The
// document id is the source filename stem. Returns the page count.
func (s *Splitter) Split(ctx context.Context, pdfPath, outDir string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	docID := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))

	pageCount, err := api.PageCountFile(pdfPath)
	if err != nil {
		return 0, fmt.Errorf("page count: %w", err)
	}

	tmpDir, err := os.MkdirTemp("", "split-*")
	if err != nil {
		return 0, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	work := filepath.Join(tmpDir, docID+".pdf")
	if err := copyFile(pdfPath, work); err != nil {
		return 0, err
	}
	if err := api.SplitFile(work, tmpDir, 1, nil); err != nil {
		return 0, fmt.Errorf("split pdf: %w", err)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return 0, fmt.Errorf("create output dir: %w", err)
	}

	// pdfcpu names split output <base>_<n>.pdf; rename onto the corpus
	// convention with zero-padded page numbers
	for page := 1; page <= pageCount; page++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		src := filepath.Join(tmpDir, fmt.Sprintf("%s_%d.pdf", docID, page))
		dst := filepath.Join(outDir, fmt.Sprintf("%s_page_%04d.pdf", docID, page))
		if err := os.Rename(src, dst); err != nil {
			return 0, fmt.Errorf("rename page %d: %w", page, err)
		}
	}

	s.logger.Info("split.complete", "document_id", docID, "pages", pageCount, "out_dir", outDir)
	return pageCount, nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read source pdf: %w", err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return fmt.Errorf("stage source pdf: %w", err)
	}
	return nil
}
