package pipeline

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/scandocs/pipeline/constants"
	"github.com/scandocs/pipeline/internal/artifact"
	"github.com/scandocs/pipeline/internal/assemble"
	"github.com/scandocs/pipeline/internal/common"
	"github.com/scandocs/pipeline/internal/enrich"
	"github.com/scandocs/pipeline/internal/entity"
	"github.com/scandocs/pipeline/internal/normalize"
	"github.com/scandocs/pipeline/internal/provenance"
	"github.com/scandocs/pipeline/internal/sink"
)

// Assembler composes the full per-document pipeline: group, normalize,
// enrich, bind, publish. Documents are independent once the shared tables
// are frozen, so assembly runs on a bounded worker pool with one document
// per task. Pages within a document are always handled in ascending order;
// documents complete in no particular order relative to each other.
type Assembler struct {
	store      *artifact.Store
	grouper    *assemble.Grouper
	normalizer *normalize.Normalizer
	enricher   *enrich.Enricher
	binder     *provenance.Binder
	sink       sink.DocumentSink // optional
	outputDir  string
	workers    int
	logger     *slog.Logger
}

type Option func(*Assembler)

// WithSink enables the relational sink, committed before the file publish.
func WithSink(s sink.DocumentSink) Option {
	return func(a *Assembler) { a.sink = s }
}

func WithWorkers(n int) Option {
	return func(a *Assembler) {
		if n > 0 {
			a.workers = n
		}
	}
}

func NewAssembler(
	store *artifact.Store,
	grouper *assemble.Grouper,
	normalizer *normalize.Normalizer,
	enricher *enrich.Enricher,
	binder *provenance.Binder,
	outputDir string,
	logger *slog.Logger,
	opts ...Option,
) *Assembler {
	if logger == nil {
		logger = slog.Default()
	}
	a := &Assembler{
		store:      store,
		grouper:    grouper,
		normalizer: normalizer,
		enricher:   enricher,
		binder:     binder,
		outputDir:  outputDir,
		workers:    4,
		logger:     logger,
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// runLogger stamps every run-scoped event with the run ID when the caller
// put one on the context.
func (a *Assembler) runLogger(ctx context.Context) *slog.Logger {
	if id := common.RunIDFromContext(ctx); id != "" {
		return a.logger.With("run_id", id)
	}
	return a.logger
}

// Run executes one full assembly pass over the artifact directory. Per-page
// problems degrade pages, per-document problems exclude that document; no
// error here terminates processing of the other documents. The returned
// summary lists processed, degraded, and failed counts with per-kind issue
// totals.
func (a *Assembler) Run(ctx context.Context) (entity.RunSummary, error) {
	log := a.runLogger(ctx)

	if err := os.MkdirAll(a.outputDir, 0o755); err != nil {
		return entity.RunSummary{}, common.WrapError(err, "create output dir")
	}

	artifacts, scanStats, err := a.store.List(ctx)
	if err != nil {
		return entity.RunSummary{}, err
	}

	docs, groupStats := a.grouper.Group(artifacts)

	summary := entity.RunSummary{
		Scanned:    scanStats.Scanned,
		Malformed:  scanStats.Malformed + scanStats.Invalid,
		Documents:  groupStats.Documents,
		IssueKinds: make(map[constants.ErrorKind]int),
	}
	summary.IssueKinds[constants.KindMalformedFilename] += scanStats.Malformed

	// Pages the store rejected still belong to a document; degrade the
	// owner so the gap is recorded, never invented away.
	byID := make(map[string]*entity.Document, len(docs))
	for _, d := range docs {
		byID[d.DocumentID] = d
	}
	for _, rej := range scanStats.Rejections {
		if rej.DocumentID == "" {
			continue
		}
		if doc, ok := byID[rej.DocumentID]; ok {
			doc.RecordIssue(constants.KindMissingField, rej.Page, rej.Message)
		} else {
			summary.IssueKinds[constants.KindMissingField]++
		}
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for _, doc := range docs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				// pool shutting down; this document is cleanly abandoned
				// before anything was published
				return err
			}
			perr := a.processDocument(gctx, doc, log)

			mu.Lock()
			defer mu.Unlock()
			for _, issue := range doc.Issues {
				summary.IssueKinds[issue.Kind]++
			}
			if perr != nil {
				doc.Status = constants.DocStatusFailed
				summary.Failed++
				summary.FailedDocs = append(summary.FailedDocs, entity.FailedDocument{
					DocumentID: doc.DocumentID,
					Reason:     perr.Error(),
				})
				log.Error("pipeline.document_failed",
					"document_id", doc.DocumentID, "error", perr)
				return nil
			}
			if doc.Degraded {
				summary.Degraded++
			} else {
				summary.Processed++
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return summary, err
	}

	log.Info("pipeline.run_complete",
		"documents", summary.Documents,
		"processed", summary.Processed,
		"degraded", summary.Degraded,
		"failed", summary.Failed,
		"malformed_artifacts", summary.Malformed,
	)
	for kind, count := range summary.IssueKinds {
		if count > 0 {
			log.Info("pipeline.issue_count", "kind", string(kind), "count", count)
		}
	}
	return summary, nil
}

// processDocument walks one document through the stage machine:
// Grouped → Normalized → Enriched → Bound → Persisted. Any error returned
// here fails only this document. The sink commit runs before the file
// publish so a failed document never appears in the output directory.
func (a *Assembler) processDocument(ctx context.Context, doc *entity.Document, log *slog.Logger) error {
	a.normalizer.Apply(doc)
	a.enricher.Enrich(ctx, doc)
	a.binder.Bind(doc)

	if a.sink != nil {
		if err := a.persistWithRetry(ctx, doc, log); err != nil {
			return err
		}
	}

	if err := WriteDocument(a.outputDir, doc); err != nil {
		return err
	}

	doc.Status = constants.DocStatusPersisted
	log.Debug("pipeline.document_persisted",
		"document_id", doc.DocumentID,
		"pages", len(doc.Pages),
		"degraded", doc.Degraded,
	)
	return nil
}

// persistWithRetry applies the sink's retry-once policy for constraint
// conflicts before surfacing a per-document failure.
func (a *Assembler) persistWithRetry(ctx context.Context, doc *entity.Document, log *slog.Logger) error {
	err := a.sink.Persist(ctx, doc)
	if err == nil {
		return nil
	}
	if !common.IsKind(err, constants.KindPersistenceConflict) {
		return err
	}
	log.Warn("pipeline.persistence_conflict_retry",
		"document_id", doc.DocumentID, "error", err)
	return a.sink.Persist(ctx, doc)
}
