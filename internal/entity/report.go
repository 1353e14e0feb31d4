package entity

import "github.com/scandocs/pipeline/constants"

// RunStats summarizes one artifact set in a cross-run comparison.
type RunStats struct {
	Files   int
	Sum     float64
	Average float64
	Median  float64
}

// ConfidenceReport is the diagnostic output of comparing two artifact sets
// matched 1:1 by filename. It is printed or exported, never persisted with
// documents. Win/loss/tie counts use strict float comparison.
type ConfidenceReport struct {
	A     RunStats
	B     RunStats
	AWins int
	BWins int
	Ties  int
}

// FailedDocument names a document excluded from output and why.
type FailedDocument struct {
	DocumentID string
	Reason     string
}

// RunSummary is the end-of-run accounting for one assembler invocation.
type RunSummary struct {
	Scanned    int // artifact files seen
	Malformed  int // artifacts skipped before grouping
	Documents  int // documents grouped
	Processed  int // documents persisted clean
	Degraded   int // documents persisted with recorded issues
	Failed     int // documents excluded from output
	IssueKinds map[constants.ErrorKind]int
	FailedDocs []FailedDocument
}
