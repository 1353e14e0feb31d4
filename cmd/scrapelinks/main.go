package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/scandocs/pipeline/internal/discovery"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	out := flag.String("out", "all-pdf-links.txt", "path for the URL table")
	flag.Parse()
	if flag.NArg() != 1 {
		logger.Error("usage", "cmd", "scrapelinks [-out file] <index-page-url>")
		os.Exit(2)
	}
	indexURL := flag.Arg(0)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, indexURL, nil)
	if err != nil {
		logger.Error("build request", "url", indexURL, "error", err)
		os.Exit(1)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		logger.Error("fetch index page", "url", indexURL, "error", err)
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		logger.Error("fetch index page", "url", indexURL, "status", resp.StatusCode)
		os.Exit(1)
	}

	links, err := discovery.ScrapeLinks(ctx, indexURL, resp.Body)
	if err != nil {
		logger.Error("scrape links", "error", err)
		os.Exit(1)
	}
	if err := discovery.WriteTable(*out, links); err != nil {
		logger.Error("write url table", "path", *out, "error", err)
		os.Exit(1)
	}

	logger.Info("url table written", "path", *out, "links", len(links))
}
