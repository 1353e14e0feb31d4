package confidence

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/scandocs/pipeline/constants"
	"github.com/scandocs/pipeline/internal/common"
	"github.com/scandocs/pipeline/internal/entity"
)

// Comparator file-matches two artifact directories 1:1 by sorted filename and
// reports summary confidence statistics for each side. It is a diagnostic
// tool with its own entry point; nothing in the assembly pipeline depends on
// it.
type Comparator struct {
	logger *slog.Logger
}

func NewComparator(logger *slog.Logger) *Comparator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Comparator{logger: logger}
}

// Compare fails fast with MISMATCHED_CORPUS when the two sorted filename
// lists differ in length or in any corresponding name; it never aligns by
// position across differing sets. Win/loss/tie counts use strict float
// comparison so re-runs are exactly reproducible.
func (c *Comparator) Compare(ctx context.Context, dirA, dirB string) (entity.ConfidenceReport, error) {
	filesA, err := listArtifactNames(dirA)
	if err != nil {
		return entity.ConfidenceReport{}, err
	}
	filesB, err := listArtifactNames(dirB)
	if err != nil {
		return entity.ConfidenceReport{}, err
	}

	if len(filesA) != len(filesB) {
		return entity.ConfidenceReport{}, common.NewAppError(constants.KindMismatchedCorpus,
			fmt.Sprintf("file count differs: %d vs %d", len(filesA), len(filesB)), nil)
	}
	for i := range filesA {
		if filesA[i] != filesB[i] {
			return entity.ConfidenceReport{}, common.NewAppError(constants.KindMismatchedCorpus,
				fmt.Sprintf("file lists diverge at position %d: %q vs %q", i, filesA[i], filesB[i]), nil)
		}
	}
	if len(filesA) == 0 {
		return entity.ConfidenceReport{}, common.NewAppError(constants.KindEmptyCorpus,
			"no artifacts to compare", nil)
	}

	confsA := make([]float64, 0, len(filesA))
	confsB := make([]float64, 0, len(filesB))
	var report entity.ConfidenceReport
	for i, name := range filesA {
		if err := ctx.Err(); err != nil {
			return entity.ConfidenceReport{}, err
		}
		ca, err := readConfidence(filepath.Join(dirA, name))
		if err != nil {
			return entity.ConfidenceReport{}, err
		}
		cb, err := readConfidence(filepath.Join(dirB, name))
		if err != nil {
			return entity.ConfidenceReport{}, err
		}
		confsA = append(confsA, ca)
		confsB = append(confsB, cb)

		switch {
		case ca > cb:
			report.AWins++
		case cb > ca:
			report.BWins++
		default:
			report.Ties++
		}

		if (i+1)%100 == 0 {
			c.logger.Debug("confidence.compare_progress", "files", i+1)
		}
	}

	report.A = buildStats(confsA)
	report.B = buildStats(confsB)

	c.logger.Info("confidence.compare_complete",
		"files", report.A.Files,
		"a_avg", report.A.Average, "b_avg", report.B.Average,
		"a_median", report.A.Median, "b_median", report.B.Median,
		"a_wins", report.AWins, "b_wins", report.BWins, "ties", report.Ties,
	)
	return report, nil
}

func buildStats(confs []float64) entity.RunStats {
	// confs is non-empty by the time this runs; the empty corpus was
	// rejected before any statistic was computed.
	avg, _ := Average(confs)
	med, _ := Median(confs)
	return entity.RunStats{
		Files:   len(confs),
		Sum:     Sum(confs),
		Average: avg,
		Median:  med,
	}
}

func listArtifactNames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if _, ok := constants.ArtifactExtensions[constants.NormalizeExt(filepath.Ext(name))]; !ok {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func readConfidence(path string) (float64, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read artifact: %w", err)
	}
	var file entity.ArtifactFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return 0, fmt.Errorf("decode %s: %w", path, err)
	}
	conf, ok := file.Metadata.BestConfidence()
	if !ok {
		return 0, common.NewAppError(constants.KindMissingField,
			fmt.Sprintf("%s has no confidence field", path), nil)
	}
	return conf, nil
}
