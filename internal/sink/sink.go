package sink

import (
	"context"

	"github.com/scandocs/pipeline/internal/entity"
)

// DocumentSink accepts an assembled document and transactionally upserts one
// document-level row plus one row per page, skipping pages already present
// so re-runs never duplicate. Implementations report constraint violations
// as PERSISTENCE_CONFLICT; the orchestrator retries once before failing the
// document.
type DocumentSink interface {
	Persist(ctx context.Context, doc *entity.Document) error
	Close() error
}
