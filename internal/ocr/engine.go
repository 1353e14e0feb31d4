// Package ocr is the page OCR collaborator: it turns one page image into a
// page artifact record. It wraps the Tesseract engine via gosseract, which
// requires Tesseract installed on the system. The assembly pipeline never
// calls into this package; it only consumes the artifact files it produces.
package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"log/slog"
	"math"
	"os"
	"sort"
	"time"

	"github.com/otiai10/gosseract/v2"

	"github.com/scandocs/pipeline/internal/entity"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/tiff"
)

// Config locates and tunes the OCR engine. Everything is explicit; nothing
// is read from ambient process state.
type Config struct {
	Language    string // default "eng"
	TessdataDir string // empty uses the engine's compiled-in default
	PSM         int    // page segmentation mode; 3 = fully automatic
	EngineLabel string // free-form engine identifier stamped on artifacts
}

// Engine produces page artifacts from page images.
type Engine struct {
	cfg    Config
	logger *slog.Logger
}

func NewEngine(cfg Config, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Language == "" {
		cfg.Language = "eng"
	}
	if cfg.PSM <= 0 {
		cfg.PSM = 3
	}
	if cfg.EngineLabel == "" {
		cfg.EngineLabel = "Tesseract"
	}
	return &Engine{cfg: cfg, logger: logger}
}

// RecognizePage OCRs one page image and returns the artifact record for it.
// Confidence fields are the mean and median word confidence scaled to [0,1],
// rounded to three decimals.
func (e *Engine) RecognizePage(ctx context.Context, path string, pageNumber int) (entity.ArtifactFile, error) {
	if err := ctx.Err(); err != nil {
		return entity.ArtifactFile{}, err
	}
	start := time.Now()

	raw, err := os.ReadFile(path)
	if err != nil {
		return entity.ArtifactFile{}, fmt.Errorf("read image: %w", err)
	}

	cfgImg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return entity.ArtifactFile{}, fmt.Errorf("decode image config: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(e.cfg.Language); err != nil {
		return entity.ArtifactFile{}, fmt.Errorf("set language: %w", err)
	}
	if err := client.SetPageSegMode(gosseract.PageSegMode(e.cfg.PSM)); err != nil {
		return entity.ArtifactFile{}, fmt.Errorf("set psm: %w", err)
	}
	if e.cfg.TessdataDir != "" {
		if err := client.SetTessdataPrefix(e.cfg.TessdataDir); err != nil {
			return entity.ArtifactFile{}, fmt.Errorf("set tessdata dir: %w", err)
		}
	}
	if err := client.SetImageFromBytes(raw); err != nil {
		return entity.ArtifactFile{}, fmt.Errorf("set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return entity.ArtifactFile{}, fmt.Errorf("recognize text: %w", err)
	}

	avg, med := wordConfidences(client)

	e.logger.Debug("ocr.page_recognized",
		"path", path,
		"bytes", len(text),
		"avg_confidence", avg,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	return entity.ArtifactFile{
		Text: text,
		Metadata: entity.ArtifactMetadata{
			PageNumber:       pageNumber,
			Dimensions:       entity.Dimensions{Width: cfgImg.Width, Height: cfgImg.Height},
			AvgConfidence:    &avg,
			MedianConfidence: &med,
			OCREngine:        e.cfg.EngineLabel,
			EngineConfig:     fmt.Sprintf("-l %s --psm %d", e.cfg.Language, e.cfg.PSM),
		},
	}, nil
}

// wordConfidences returns mean and median word confidence in [0,1], rounded
// to three decimals. Zero words yields zeros; the artifact still validates
// because avg_confidence is present.
func wordConfidences(client *gosseract.Client) (avg, median float64) {
	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil || len(boxes) == 0 {
		return 0, 0
	}
	confs := make([]float64, 0, len(boxes))
	var sum float64
	for _, b := range boxes {
		c := b.Confidence / 100.0
		confs = append(confs, c)
		sum += c
	}
	avg = round3(sum / float64(len(confs)))

	sort.Float64s(confs)
	n := len(confs)
	if n%2 == 1 {
		median = round3(confs[n/2])
	} else {
		median = round3((confs[n/2-1] + confs[n/2]) / 2)
	}
	return avg, median
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
