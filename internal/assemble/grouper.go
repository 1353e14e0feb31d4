package assemble

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/scandocs/pipeline/constants"
	"github.com/scandocs/pipeline/internal/entity"
)

// GroupStats aggregates the outcome of one grouping pass.
type GroupStats struct {
	Artifacts  int // artifacts considered
	Duplicates int // artifacts dropped for claiming an occupied page slot
	Documents  int // documents emitted
}

// Grouper clusters page artifacts into documents by document id, orders the
// pages, and enforces page uniqueness within each document.
type Grouper struct {
	logger *slog.Logger
}

func NewGrouper(logger *slog.Logger) *Grouper {
	if logger == nil {
		logger = slog.Default()
	}
	return &Grouper{logger: logger}
}

// Group emits one document per distinct document id. Pages are strictly
// ascending by page number. When two artifacts claim the same page slot the
// first in (page, filename) order is retained, the rest are dropped, and the
// document is flagged degraded with a DUPLICATE_PAGE issue; the group never
// picks a survivor based on input order. Zero artifacts yields zero
// documents, not an error.
func (g *Grouper) Group(artifacts []entity.PageArtifact) ([]*entity.Document, GroupStats) {
	stats := GroupStats{Artifacts: len(artifacts)}

	groups := make(map[string][]entity.PageArtifact)
	for _, a := range artifacts {
		groups[a.DocumentID] = append(groups[a.DocumentID], a)
	}

	docIDs := make([]string, 0, len(groups))
	for id := range groups {
		docIDs = append(docIDs, id)
	}
	sort.Strings(docIDs)

	docs := make([]*entity.Document, 0, len(groups))
	for _, id := range docIDs {
		group := groups[id]
		sort.Slice(group, func(i, j int) bool {
			if group[i].PageNumber != group[j].PageNumber {
				return group[i].PageNumber < group[j].PageNumber
			}
			return group[i].Filename < group[j].Filename
		})

		doc := &entity.Document{
			DocumentID: id,
			Status:     constants.DocStatusGrouped,
		}
		seen := make(map[int]string, len(group))
		for _, a := range group {
			if firstFile, dup := seen[a.PageNumber]; dup {
				stats.Duplicates++
				doc.RecordIssue(constants.KindDuplicatePage, a.PageNumber,
					fmt.Sprintf("%s conflicts with %s", a.Filename, firstFile))
				g.logger.Warn("assemble.duplicate_page",
					"document_id", id, "page", a.PageNumber,
					"kept", firstFile, "dropped", a.Filename)
				continue
			}
			seen[a.PageNumber] = a.Filename
			doc.Pages = append(doc.Pages, &entity.Page{
				PageNumber: a.PageNumber,
				Text:       a.Text,
				Dimensions: a.Dimensions,
				Confidence: a.Confidence,
				OCREngine:  a.OCREngine,
				Entities:   []entity.Entity{},
			})
			doc.Metadata.SourceFiles = append(doc.Metadata.SourceFiles, a.Filename)
		}
		sort.Strings(doc.Metadata.SourceFiles)
		doc.TotalPages = len(doc.Pages)
		docs = append(docs, doc)
	}

	stats.Documents = len(docs)
	g.logger.Info("assemble.grouped",
		"artifacts", stats.Artifacts,
		"documents", stats.Documents,
		"duplicates", stats.Duplicates,
	)
	return docs, stats
}
