package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/scandocs/pipeline/internal/confidence"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	xlsxOut := flag.String("xlsx", "", "optional path for an XLSX report")
	flag.Parse()
	if flag.NArg() != 2 {
		logger.Error("usage", "cmd", "comparedirs [-xlsx out.xlsx] <dir-a> <dir-b>")
		os.Exit(2)
	}
	dirA, dirB := flag.Arg(0), flag.Arg(1)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	report, err := confidence.NewComparator(logger).Compare(ctx, dirA, dirB)
	if err != nil {
		logger.Error("comparison failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("A (%s): files=%d sum=%.3f avg=%.3f median=%.3f\n",
		dirA, report.A.Files, report.A.Sum, report.A.Average, report.A.Median)
	fmt.Printf("B (%s): files=%d sum=%.3f avg=%.3f median=%.3f\n",
		dirB, report.B.Files, report.B.Sum, report.B.Average, report.B.Median)
	fmt.Printf("A wins: %d  B wins: %d  ties: %d\n", report.AWins, report.BWins, report.Ties)

	if *xlsxOut != "" {
		data, err := confidence.WriteXLSX(report, dirA, dirB)
		if err != nil {
			logger.Error("xlsx export failed", "error", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*xlsxOut, data, 0o644); err != nil {
			logger.Error("write xlsx", "path", *xlsxOut, "error", err)
			os.Exit(1)
		}
		logger.Info("xlsx report written", "path", *xlsxOut)
	}
}
