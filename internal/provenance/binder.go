package provenance

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/scandocs/pipeline/constants"
	"github.com/scandocs/pipeline/internal/entity"
)

// Table maps a document id to its original source URL. It is built once per
// run, then shared read-only by all workers; nothing mutates it during
// assembly.
type Table map[string]string

// NewTableFromReader reads newline-delimited absolute URLs. The key is the
// filename stem of the URL path: the segment after the last slash, cut at
// the first dot. Blank lines are skipped; a later duplicate stem overwrites
// an earlier one.
func NewTableFromReader(r io.Reader) (Table, error) {
	table := make(Table)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		stem := line
		if i := strings.LastIndex(stem, "/"); i >= 0 {
			stem = stem[i+1:]
		}
		if i := strings.Index(stem, "."); i >= 0 {
			stem = stem[:i]
		}
		if stem == "" {
			continue
		}
		table[stem] = line
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan url table: %w", err)
	}
	return table, nil
}

// LoadTable reads the URL table file.
func LoadTable(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open url table: %w", err)
	}
	defer f.Close()
	return NewTableFromReader(f)
}

// Binder attaches original source URLs to assembled documents.
type Binder struct {
	table  Table
	logger *slog.Logger
}

func NewBinder(table Table, logger *slog.Logger) *Binder {
	if logger == nil {
		logger = slog.Default()
	}
	if table == nil {
		table = make(Table)
	}
	return &Binder{table: table, logger: logger}
}

// Bind sets the document's original URL by exact-match lookup, or the
// URL_NOT_FOUND sentinel when the id has no entry. A missing URL is a
// data-quality fact, not an error: this stage never fails the pipeline.
func (b *Binder) Bind(doc *entity.Document) {
	url, ok := b.table[doc.DocumentID]
	if !ok {
		url = constants.URLNotFound
		b.logger.Debug("provenance.url_missing", "document_id", doc.DocumentID)
	}
	doc.OriginalURL = url
	doc.Status = constants.DocStatusBound
}
