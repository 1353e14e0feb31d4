package sink

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/scandocs/pipeline/constants"
	"github.com/scandocs/pipeline/internal/common"
	"github.com/scandocs/pipeline/internal/entity"
)

type sqliteSink struct {
	db     *sql.DB
	logger *slog.Logger
}

// OpenSQLite opens (and initializes) a SQLite-backed document sink with WAL
// mode and foreign keys enabled.
func OpenSQLite(ctx context.Context, path string, logger *slog.Logger) (DocumentSink, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}
	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &sqliteSink{db: db, logger: logger}, nil
}

func (s *sqliteSink) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS documents (
	document_id TEXT PRIMARY KEY,
	total_pages INTEGER NOT NULL,
	original_url TEXT NOT NULL,
	source_files TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS pages (
	document_id TEXT NOT NULL,
	page_number INTEGER NOT NULL,
	text TEXT NOT NULL,
	original_text TEXT NOT NULL,
	confidence REAL NOT NULL,
	width INTEGER NOT NULL,
	height INTEGER NOT NULL,
	ocr_engine TEXT NOT NULL,
	entities TEXT NOT NULL,
	PRIMARY KEY (document_id, page_number),
	FOREIGN KEY (document_id) REFERENCES documents(document_id) ON DELETE CASCADE
);
`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("init sink schema: %w", err)
	}
	return nil
}

// Persist upserts the document row and inserts pages with INSERT OR IGNORE,
// all in one transaction, so an interrupted run leaves either the previous
// state or the complete new one.
func (s *sqliteSink) Persist(ctx context.Context, doc *entity.Document) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	sourceFiles, err := json.Marshal(doc.Metadata.SourceFiles)
	if err != nil {
		return fmt.Errorf("marshal source files: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
INSERT INTO documents (document_id, total_pages, original_url, source_files)
VALUES (?, ?, ?, ?)
ON CONFLICT(document_id) DO UPDATE SET
	total_pages = excluded.total_pages,
	original_url = excluded.original_url,
	source_files = excluded.source_files`,
		doc.DocumentID, doc.TotalPages, doc.OriginalURL, string(sourceFiles),
	); err != nil {
		return classify(err, "upsert document "+doc.DocumentID)
	}

	var inserted int64
	for _, p := range doc.Pages {
		entities, err := json.Marshal(p.Entities)
		if err != nil {
			return fmt.Errorf("marshal entities: %w", err)
		}
		res, err := tx.ExecContext(ctx, `
INSERT OR IGNORE INTO pages
	(document_id, page_number, text, original_text, confidence, width, height, ocr_engine, entities)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			doc.DocumentID, p.PageNumber, p.Text, p.OriginalText, p.Confidence,
			p.Dimensions.Width, p.Dimensions.Height, p.OCREngine, string(entities),
		)
		if err != nil {
			return classify(err, fmt.Sprintf("insert page %d of %s", p.PageNumber, doc.DocumentID))
		}
		if n, _ := res.RowsAffected(); n > 0 {
			inserted += n
		}
	}

	if err := tx.Commit(); err != nil {
		return classify(err, "commit "+doc.DocumentID)
	}

	s.logger.Debug("sink.persisted",
		"document_id", doc.DocumentID,
		"pages", len(doc.Pages),
		"new_page_rows", inserted,
	)
	return nil
}

// classify maps SQLite constraint violations onto the taxonomy so the
// orchestrator can apply its retry-once policy.
func classify(err error, op string) error {
	if err == nil {
		return nil
	}
	if strings.Contains(strings.ToLower(err.Error()), "constraint") {
		return common.NewAppError(constants.KindPersistenceConflict, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
