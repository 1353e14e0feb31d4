package sink

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/scandocs/pipeline/internal/entity"
)

func testDoc() *entity.Document {
	return &entity.Document{
		DocumentID:  "docid-1",
		TotalPages:  2,
		OriginalURL: "https://host/docid-1.pdf",
		Metadata:    entity.DocumentMetadata{SourceFiles: []string{"docid-1_page_1.json", "docid-1_page_2.json"}},
		Pages: []*entity.Page{
			{
				PageNumber: 1,
				Text:       "[START_DOC]\nfirst\n[PAGE_BREAK]",
				Confidence: 0.91,
				Dimensions: entity.Dimensions{Width: 612, Height: 792},
				OCREngine:  "tesseract-5",
				Entities:   []entity.Entity{{Text: "Dallas", Label: "GPE"}},
			},
			{
				PageNumber: 2,
				Text:       "second\n[END_DOC]",
				Confidence: 0.85,
				Dimensions: entity.Dimensions{Width: 612, Height: 792},
				OCREngine:  "tesseract-5",
				Entities:   []entity.Entity{},
			},
		},
	}
}

func countRows(t *testing.T, path, table string) int {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatal(err)
	}
	return n
}

func TestSQLitePersist(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sink.db")

	s, err := OpenSQLite(ctx, path, nil)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer s.Close()

	if err := s.Persist(ctx, testDoc()); err != nil {
		t.Fatalf("Persist: %v", err)
	}
	if got := countRows(t, path, "documents"); got != 1 {
		t.Errorf("documents = %d, want 1", got)
	}
	if got := countRows(t, path, "pages"); got != 2 {
		t.Errorf("pages = %d, want 2", got)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	var url, entities string
	if err := db.QueryRow("SELECT original_url FROM documents WHERE document_id = ?", "docid-1").Scan(&url); err != nil {
		t.Fatal(err)
	}
	if url != "https://host/docid-1.pdf" {
		t.Errorf("original_url = %q", url)
	}
	if err := db.QueryRow(
		"SELECT entities FROM pages WHERE document_id = ? AND page_number = 1", "docid-1",
	).Scan(&entities); err != nil {
		t.Fatal(err)
	}
	if entities != `[{"text":"Dallas","label":"GPE"}]` {
		t.Errorf("entities = %s", entities)
	}
}

func TestSQLitePersistRerunAddsNothing(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sink.db")

	s, err := OpenSQLite(ctx, path, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if err := s.Persist(ctx, testDoc()); err != nil {
		t.Fatal(err)
	}
	if err := s.Persist(ctx, testDoc()); err != nil {
		t.Fatalf("re-persisting the same document must succeed: %v", err)
	}
	if got := countRows(t, path, "documents"); got != 1 {
		t.Errorf("documents = %d, want 1 after re-run", got)
	}
	if got := countRows(t, path, "pages"); got != 2 {
		t.Errorf("pages = %d, want 2 after re-run (existing rows skipped)", got)
	}
}

func TestSQLitePersistUpdatesDocumentRow(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sink.db")

	s, err := OpenSQLite(ctx, path, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	doc := testDoc()
	if err := s.Persist(ctx, doc); err != nil {
		t.Fatal(err)
	}

	doc.OriginalURL = "https://mirror/docid-1.pdf"
	if err := s.Persist(ctx, doc); err != nil {
		t.Fatal(err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	var url string
	if err := db.QueryRow("SELECT original_url FROM documents WHERE document_id = ?", "docid-1").Scan(&url); err != nil {
		t.Fatal(err)
	}
	if url != "https://mirror/docid-1.pdf" {
		t.Errorf("original_url = %q, want the updated mirror url", url)
	}
}
