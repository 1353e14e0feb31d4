package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/scandocs/pipeline/constants"
	"github.com/scandocs/pipeline/internal/artifact"
	"github.com/scandocs/pipeline/internal/common"
	"github.com/scandocs/pipeline/internal/ocr"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	outDir := flag.String("out", "./artifacts", "directory for page artifact JSONs")
	flag.Parse()
	if flag.NArg() < 1 {
		logger.Error("usage", "cmd", "pageocr [-out dir] <page-image> [<page-image> ...]")
		os.Exit(2)
	}

	cfg := common.LoadConfig()
	engine := ocr.NewEngine(ocr.Config{
		Language:    cfg.OCR.Language,
		TessdataDir: cfg.OCR.TessdataDir,
		PSM:         cfg.OCR.PSM,
		EngineLabel: cfg.OCR.EngineLabel,
	}, logger)

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		logger.Error("create output dir", "path", *outDir, "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	failures := 0
	for _, img := range flag.Args() {
		ext := constants.NormalizeExt(filepath.Ext(img))
		if _, ok := constants.ImageExtensions[ext]; !ok {
			logger.Error("unsupported image extension", "path", img, "ext", ext)
			failures++
			continue
		}

		// the image carries the same <id>_page_<n> name its artifact will
		docID, page, err := artifact.ParseFilename(filepath.Base(img))
		if err != nil {
			logger.Error("image name must match <id>_page_<n>", "path", img, "error", err)
			failures++
			continue
		}

		start := time.Now()
		file, err := engine.RecognizePage(ctx, img, page)
		if err != nil {
			logger.Error("ocr failed", "path", img, "error", err)
			failures++
			continue
		}
		path, err := ocr.WriteArtifact(*outDir, docID, page, file)
		if err != nil {
			logger.Error("write artifact", "path", img, "error", err)
			failures++
			continue
		}
		logger.Info("page ocr ok",
			"image", img,
			"artifact", path,
			"bytes", len(file.Text),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
	if failures > 0 {
		os.Exit(1)
	}
}
