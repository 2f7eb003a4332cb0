package mock

import (
	"context"

	"github.com/fwojciec/periodex"
)

var _ periodex.EntryService = (*EntryService)(nil)

// EntryService is a mock implementation of periodex.EntryService.
type EntryService struct {
	CreateEntryFn          func(ctx context.Context, entry *periodex.Entry) error
	FindEntryByIDFn        func(ctx context.Context, id string) (*periodex.Entry, error)
	FindEntriesFn          func(ctx context.Context, filter periodex.EntryFilter) ([]*periodex.Entry, error)
	DeleteEntriesByIssueFn func(ctx context.Context, issueID string) error
}

func (s *EntryService) CreateEntry(ctx context.Context, entry *periodex.Entry) error {
	return s.CreateEntryFn(ctx, entry)
}

func (s *EntryService) FindEntryByID(ctx context.Context, id string) (*periodex.Entry, error) {
	return s.FindEntryByIDFn(ctx, id)
}

func (s *EntryService) FindEntries(ctx context.Context, filter periodex.EntryFilter) ([]*periodex.Entry, error) {
	return s.FindEntriesFn(ctx, filter)
}

func (s *EntryService) DeleteEntriesByIssue(ctx context.Context, issueID string) error {
	return s.DeleteEntriesByIssueFn(ctx, issueID)
}

var _ periodex.FlagService = (*FlagService)(nil)

// FlagService is a mock implementation of periodex.FlagService.
type FlagService struct {
	CreateFlagFn         func(ctx context.Context, flag *periodex.Flag) error
	FindFlagsFn          func(ctx context.Context, filter periodex.FlagFilter) ([]*periodex.Flag, error)
	DeleteFlagsByIssueFn func(ctx context.Context, issueID string) error
}

func (s *FlagService) CreateFlag(ctx context.Context, flag *periodex.Flag) error {
	return s.CreateFlagFn(ctx, flag)
}

func (s *FlagService) FindFlags(ctx context.Context, filter periodex.FlagFilter) ([]*periodex.Flag, error) {
	return s.FindFlagsFn(ctx, filter)
}

func (s *FlagService) DeleteFlagsByIssue(ctx context.Context, issueID string) error {
	return s.DeleteFlagsByIssueFn(ctx, issueID)
}
