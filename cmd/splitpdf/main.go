package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/scandocs/pipeline/internal/split"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	outDir := flag.String("out", "./pages", "directory for per-page PDFs")
	flag.Parse()
	if flag.NArg() < 1 {
		logger.Error("usage", "cmd", "splitpdf [-out dir] <pdf> [<pdf> ...]")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	splitter := split.NewSplitter(logger)
	failures := 0
	for _, pdf := range flag.Args() {
		pages, err := splitter.Split(ctx, pdf, *outDir)
		if err != nil {
			logger.Error("split failed", "pdf", pdf, "error", err)
			failures++
			continue
		}
		logger.Info("split ok", "pdf", pdf, "pages", pages)
	}
	if failures > 0 {
		os.Exit(1)
	}
}
