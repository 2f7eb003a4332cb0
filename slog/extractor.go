// Package slog provides logging decorators for periodex interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/periodex"
)

// Ensure LoggingExtractor implements periodex.IssueExtractor.
var _ periodex.IssueExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an IssueExtractor with per-issue timing and
// match-count logging.
type LoggingExtractor struct {
	next   periodex.IssueExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next periodex.IssueExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// ExtractIssue delegates to the wrapped extractor and logs the outcome.
func (e *LoggingExtractor) ExtractIssue(ctx context.Context, issue *periodex.Issue, titles []periodex.TitleEntry) (*periodex.Extraction, error) {
	begin := time.Now()

	extraction, err := e.next.ExtractIssue(ctx, issue, titles)
	if err != nil {
		e.logger.Error("issue extraction failed",
			"volume", issue.Volume,
			"month", issue.Month,
			"year", issue.Year,
			"error", err,
		)
		return nil, err
	}

	matched := 0
	for _, entry := range extraction.Entries {
		if entry.Index > 0 {
			matched++
		}
	}

	e.logger.Info("issue extraction",
		"volume", issue.Volume,
		"month", issue.Month,
		"year", issue.Year,
		"titles", len(titles),
		"matched", matched,
		"flags", len(extraction.Flags),
		"duration", time.Since(begin),
	)
	return extraction, nil
}
