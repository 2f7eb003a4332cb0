package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/periodex"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ periodex.FlagService = (*FlagService)(nil)

// FlagService implements periodex.FlagService using SQLite.
type FlagService struct {
	db *DB
}

// NewFlagService creates a new FlagService.
func NewFlagService(db *DB) *FlagService {
	return &FlagService{db: db}
}

// CreateFlag creates a new flag.
func (s *FlagService) CreateFlag(ctx context.Context, flag *periodex.Flag) error {
	if err := flag.Validate(); err != nil {
		return err
	}

	flag.ID = uuid.New().String()
	flag.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO flags (id, issue_id, entry_id, idx, title, strategy, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, flag.ID, flag.IssueID, flag.EntryID, flag.Record.Index, flag.Record.Title,
		string(flag.Record.Strategy), flag.CreatedAt.Format(time.RFC3339))

	return err
}

// FindFlags retrieves flags matching the filter, ordered by entry index.
func (s *FlagService) FindFlags(ctx context.Context, filter periodex.FlagFilter) ([]*periodex.Flag, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, issue_id, entry_id, idx, title, strategy, created_at FROM flags WHERE 1=1")

	if filter.IssueID != nil {
		query.WriteString(" AND issue_id = ?")
		args = append(args, *filter.IssueID)
	}
	if filter.Strategy != nil {
		query.WriteString(" AND strategy = ?")
		args = append(args, string(*filter.Strategy))
	}

	query.WriteString(" ORDER BY idx ASC, strategy ASC")

	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query.WriteString(" OFFSET ?")
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var flags []*periodex.Flag
	for rows.Next() {
		var flag periodex.Flag
		var strategy string
		var createdAt string

		if err := rows.Scan(&flag.ID, &flag.IssueID, &flag.EntryID, &flag.Record.Index,
			&flag.Record.Title, &strategy, &createdAt); err != nil {
			return nil, err
		}

		flag.Record.Strategy = periodex.Strategy(strategy)
		flag.Record.TitleNotAtStart = true

		flag.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}

		flags = append(flags, &flag)
	}

	return flags, rows.Err()
}

// DeleteFlagsByIssue removes all flags for an issue.
func (s *FlagService) DeleteFlagsByIssue(ctx context.Context, issueID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM flags WHERE issue_id = ?", issueID)
	return err
}
