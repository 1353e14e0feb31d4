package enrich

import (
	"context"

	"github.com/scandocs/pipeline/internal/entity"
)

// NoopExtractor returns no entities for any text. Used when no extraction
// capability is configured, so documents still assemble with empty entity
// lists rather than failing.
type NoopExtractor struct{}

func (NoopExtractor) Extract(_ context.Context, _ string) ([]entity.Entity, error) {
	return []entity.Entity{}, nil
}
