package mock

import (
	"context"

	"github.com/fwojciec/periodex"
)

var _ periodex.IssueService = (*IssueService)(nil)

// IssueService is a mock implementation of periodex.IssueService.
type IssueService struct {
	CreateIssueFn   func(ctx context.Context, issue *periodex.Issue) error
	FindIssueByIDFn func(ctx context.Context, id string) (*periodex.Issue, error)
	FindIssuesFn    func(ctx context.Context, filter periodex.IssueFilter) ([]*periodex.Issue, error)
	DeleteIssueFn   func(ctx context.Context, id string) error
}

func (s *IssueService) CreateIssue(ctx context.Context, issue *periodex.Issue) error {
	return s.CreateIssueFn(ctx, issue)
}

func (s *IssueService) FindIssueByID(ctx context.Context, id string) (*periodex.Issue, error) {
	return s.FindIssueByIDFn(ctx, id)
}

func (s *IssueService) FindIssues(ctx context.Context, filter periodex.IssueFilter) ([]*periodex.Issue, error) {
	return s.FindIssuesFn(ctx, filter)
}

func (s *IssueService) DeleteIssue(ctx context.Context, id string) error {
	return s.DeleteIssueFn(ctx, id)
}
