package assemble

import (
	"testing"

	"github.com/scandocs/pipeline/constants"
	"github.com/scandocs/pipeline/internal/entity"
)

func art(docID string, page int, file, text string, conf float64) entity.PageArtifact {
	return entity.PageArtifact{
		DocumentID: docID,
		PageNumber: page,
		Filename:   file,
		Text:       text,
		Confidence: conf,
		Dimensions: entity.Dimensions{Width: 100, Height: 200},
		OCREngine:  "Tesseract 5.5.0",
	}
}

func TestGroupOrdersPages(t *testing.T) {
	g := NewGrouper(nil)
	docs, stats := g.Group([]entity.PageArtifact{
		art("A", 2, "A_page_0002.json", "second", 0.8),
		art("A", 1, "A_page_0001.json", "first", 0.9),
	})

	if stats.Documents != 1 || len(docs) != 1 {
		t.Fatalf("documents = %d, want 1", len(docs))
	}
	doc := docs[0]
	if doc.DocumentID != "A" || doc.TotalPages != 2 {
		t.Fatalf("doc = %s total_pages %d, want A with 2", doc.DocumentID, doc.TotalPages)
	}
	if doc.Status != constants.DocStatusGrouped {
		t.Errorf("status = %s, want GROUPED", doc.Status)
	}
	for i, want := range []int{1, 2} {
		if doc.Pages[i].PageNumber != want {
			t.Errorf("page[%d] = %d, want %d", i, doc.Pages[i].PageNumber, want)
		}
	}
	if doc.Pages[0].Text != "first" || doc.Pages[0].Confidence != 0.9 {
		t.Errorf("page 1 carried %q conf %v", doc.Pages[0].Text, doc.Pages[0].Confidence)
	}
	if doc.Pages[0].Entities == nil || len(doc.Pages[0].Entities) != 0 {
		t.Errorf("entities should start as empty non-nil slice, got %#v", doc.Pages[0].Entities)
	}
	wantFiles := []string{"A_page_0001.json", "A_page_0002.json"}
	for i, f := range wantFiles {
		if doc.Metadata.SourceFiles[i] != f {
			t.Errorf("source_files[%d] = %q, want %q", i, doc.Metadata.SourceFiles[i], f)
		}
	}
}

func TestGroupDuplicatePageDegrades(t *testing.T) {
	g := NewGrouper(nil)
	docs, stats := g.Group([]entity.PageArtifact{
		art("A", 1, "A_page_1.json", "unpadded", 0.9),
		art("A", 1, "A_page_001.json", "padded", 0.5),
	})

	if len(docs) != 1 {
		t.Fatalf("documents = %d, want 1", len(docs))
	}
	doc := docs[0]
	if stats.Duplicates != 1 {
		t.Errorf("Duplicates = %d, want 1", stats.Duplicates)
	}
	if doc.TotalPages != 1 || len(doc.Pages) != 1 {
		t.Fatalf("pages = %d, want exactly one page 1 retained", len(doc.Pages))
	}
	// (page, filename) order decides the survivor, not input order
	if doc.Pages[0].Text != "padded" {
		t.Errorf("survivor text = %q, want the lexicographically first filename's page", doc.Pages[0].Text)
	}
	if !doc.Degraded {
		t.Error("document with duplicate page must be degraded")
	}
	if len(doc.Issues) != 1 || doc.Issues[0].Kind != constants.KindDuplicatePage {
		t.Errorf("issues = %+v, want one DUPLICATE_PAGE", doc.Issues)
	}
}

func TestGroupMultipleDocumentsSortedByID(t *testing.T) {
	g := NewGrouper(nil)
	docs, _ := g.Group([]entity.PageArtifact{
		art("B", 1, "B_page_1.json", "", 0.5),
		art("A", 1, "A_page_1.json", "", 0.5),
		art("A", 3, "A_page_3.json", "", 0.5), // gap tolerated, never invented
	})
	if len(docs) != 2 {
		t.Fatalf("documents = %d, want 2", len(docs))
	}
	if docs[0].DocumentID != "A" || docs[1].DocumentID != "B" {
		t.Errorf("order = %s,%s, want A,B", docs[0].DocumentID, docs[1].DocumentID)
	}
	if docs[0].TotalPages != 2 {
		t.Errorf("A total_pages = %d, want 2 (count of pages present)", docs[0].TotalPages)
	}
}

func TestGroupEmptyInput(t *testing.T) {
	g := NewGrouper(nil)
	docs, stats := g.Group(nil)
	if len(docs) != 0 || stats.Documents != 0 {
		t.Errorf("empty input yielded %d documents", len(docs))
	}
}
