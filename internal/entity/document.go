package entity

import (
	"fmt"

	"github.com/scandocs/pipeline/constants"
)

// Entity is a labeled text span produced by the external extraction
// capability. Order is preserved exactly as produced.
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// Page is one enriched page nested in a Document.
type Page struct {
	PageNumber   int        `json:"page_number"`
	Text         string     `json:"text"`
	OriginalText string     `json:"original_text"`
	Dimensions   Dimensions `json:"dimensions"`
	Confidence   float64    `json:"confidence"`
	OCREngine    string     `json:"ocr_engine"`
	Entities     []Entity   `json:"entities"`
}

// DocumentMetadata carries provenance of the raw inputs.
type DocumentMetadata struct {
	SourceFiles []string `json:"source_files"`
}

// Issue records a recoverable per-page or per-document problem. Issues are
// reported in the run summary, not persisted with the document.
type Issue struct {
	Kind    constants.ErrorKind
	Page    int // 0 when not page-scoped
	Message string
}

func (i Issue) String() string {
	if i.Page > 0 {
		return fmt.Sprintf("%s page %d: %s", i.Kind, i.Page, i.Message)
	}
	return fmt.Sprintf("%s: %s", i.Kind, i.Message)
}

// Document is the assembled multi-page unit. It exclusively owns its Pages.
// Pages are strictly increasing by PageNumber; gaps are tolerated but never
// invented.
type Document struct {
	DocumentID  string           `json:"document_id"`
	TotalPages  int              `json:"total_pages"`
	Pages       []*Page          `json:"pages"`
	OriginalURL string           `json:"original_url"`
	Metadata    DocumentMetadata `json:"metadata"`

	Status   constants.DocStatus `json:"-"`
	Degraded bool                `json:"-"`
	Issues   []Issue             `json:"-"`
}

// RecordIssue attaches a recoverable problem and flags the document degraded.
func (d *Document) RecordIssue(kind constants.ErrorKind, page int, message string) {
	d.Issues = append(d.Issues, Issue{Kind: kind, Page: page, Message: message})
	d.Degraded = true
}
