// Package mock provides function-field mock implementations of
// periodex interfaces for testing.
package mock

import (
	"context"

	"github.com/fwojciec/periodex"
)

var _ periodex.IssueExtractor = (*IssueExtractor)(nil)

// IssueExtractor is a mock implementation of periodex.IssueExtractor.
type IssueExtractor struct {
	ExtractIssueFn func(ctx context.Context, issue *periodex.Issue, titles []periodex.TitleEntry) (*periodex.Extraction, error)
}

func (e *IssueExtractor) ExtractIssue(ctx context.Context, issue *periodex.Issue, titles []periodex.TitleEntry) (*periodex.Extraction, error) {
	return e.ExtractIssueFn(ctx, issue, titles)
}

var _ periodex.TOCSource = (*TOCSource)(nil)

// TOCSource is a mock implementation of periodex.TOCSource.
type TOCSource struct {
	TitlesFn func(ctx context.Context, issue *periodex.Issue) ([]periodex.TitleEntry, error)
	IssuesFn func() []string
}

func (s *TOCSource) Titles(ctx context.Context, issue *periodex.Issue) ([]periodex.TitleEntry, error) {
	return s.TitlesFn(ctx, issue)
}

func (s *TOCSource) Issues() []string {
	return s.IssuesFn()
}
