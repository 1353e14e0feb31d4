package enrich

import (
	"context"
	"log/slog"
	"time"

	"github.com/scandocs/pipeline/constants"
	"github.com/scandocs/pipeline/internal/entity"
)

// Enricher invokes the extraction capability once per page, on the cleaned
// annotated text, and attaches the returned spans verbatim. A failed or
// timed-out page keeps an empty entity list and a recorded warning; sibling
// pages and the document itself carry on.
type Enricher struct {
	extractor EntityExtractor
	timeout   time.Duration
	logger    *slog.Logger
}

func NewEnricher(extractor EntityExtractor, timeout time.Duration, logger *slog.Logger) *Enricher {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Enricher{extractor: extractor, timeout: timeout, logger: logger}
}

// Enrich processes pages in order. Only the per-page extractor call can
// block; everything else is CPU-bound.
func (e *Enricher) Enrich(ctx context.Context, doc *entity.Document) {
	for _, page := range doc.Pages {
		pageCtx, cancel := context.WithTimeout(ctx, e.timeout)
		ents, err := e.extractor.Extract(pageCtx, page.Text)
		cancel()

		if err != nil {
			page.Entities = []entity.Entity{}
			doc.RecordIssue(constants.KindEnrichmentUnavailable, page.PageNumber, err.Error())
			e.logger.Warn("enrich.page_failed",
				"document_id", doc.DocumentID,
				"page", page.PageNumber,
				"error", err,
			)
			continue
		}
		if ents == nil {
			ents = []entity.Entity{}
		}
		page.Entities = ents
	}
	doc.Status = constants.DocStatusEnriched
}
