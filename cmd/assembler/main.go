package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/scandocs/pipeline/internal/artifact"
	"github.com/scandocs/pipeline/internal/assemble"
	"github.com/scandocs/pipeline/internal/common"
	"github.com/scandocs/pipeline/internal/enrich"
	"github.com/scandocs/pipeline/internal/normalize"
	"github.com/scandocs/pipeline/internal/pipeline"
	"github.com/scandocs/pipeline/internal/provenance"
	"github.com/scandocs/pipeline/internal/sink"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = common.WithRunID(ctx, uuid.New().String())

	rules := normalize.DefaultRules()
	if cfg.Pipeline.RulesFile != "" {
		var err error
		rules, err = normalize.LoadRules(cfg.Pipeline.RulesFile)
		if err != nil {
			logger.Error("load correction rules", "path", cfg.Pipeline.RulesFile, "error", err)
			os.Exit(1)
		}
	}

	table := provenance.Table{}
	if cfg.Pipeline.URLTable != "" {
		var err error
		table, err = provenance.LoadTable(cfg.Pipeline.URLTable)
		if err != nil {
			logger.Error("load url table", "path", cfg.Pipeline.URLTable, "error", err)
			os.Exit(1)
		}
	}

	var extractor enrich.EntityExtractor = enrich.NoopExtractor{}
	if cfg.NLP.BaseURL != "" {
		extractor = enrich.NewHTTPExtractor(cfg.NLP.BaseURL, &http.Client{Timeout: cfg.NLP.Timeout}, logger)
	}

	opts := []pipeline.Option{pipeline.WithWorkers(cfg.Pipeline.Workers)}
	if cfg.Sink.DBPath != "" {
		db, err := sink.OpenSQLite(ctx, cfg.Sink.DBPath, logger)
		if err != nil {
			logger.Error("open sink", "path", cfg.Sink.DBPath, "error", err)
			os.Exit(1)
		}
		defer func() {
			if cerr := db.Close(); cerr != nil {
				logger.Error("close sink", "error", cerr)
			}
		}()
		opts = append(opts, pipeline.WithSink(db))
	}

	assembler := pipeline.NewAssembler(
		artifact.NewStore(cfg.Pipeline.ArtifactDir, logger),
		assemble.NewGrouper(logger),
		normalize.NewNormalizer(rules, logger),
		enrich.NewEnricher(extractor, cfg.NLP.Timeout, logger),
		provenance.NewBinder(table, logger),
		cfg.Pipeline.OutputDir,
		logger,
		opts...,
	)

	summary, err := assembler.Run(ctx)
	if err != nil {
		logger.Error("assembly run failed", "error", err)
		os.Exit(1)
	}

	logger.Info("assembly run finished",
		"documents", summary.Documents,
		"processed", summary.Processed,
		"degraded", summary.Degraded,
		"failed", summary.Failed,
	)
	for _, fd := range summary.FailedDocs {
		logger.Warn("document excluded", "document_id", fd.DocumentID, "reason", fd.Reason)
	}
	if summary.Failed > 0 {
		os.Exit(1)
	}
}
