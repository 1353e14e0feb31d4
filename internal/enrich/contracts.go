package enrich

import (
	"context"

	"github.com/scandocs/pipeline/internal/entity"
)

// EntityExtractor is the external entity-extraction capability: cleaned text
// in, labeled spans out, order preserved as produced. Implementations must
// honor ctx cancellation; the enricher bounds every call with a timeout.
type EntityExtractor interface {
	Extract(ctx context.Context, text string) ([]entity.Entity, error)
}
