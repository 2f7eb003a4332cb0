package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/periodex"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ periodex.IssueService = (*IssueService)(nil)

// IssueService implements periodex.IssueService using SQLite.
type IssueService struct {
	db *DB
}

// NewIssueService creates a new IssueService.
func NewIssueService(db *DB) *IssueService {
	return &IssueService{db: db}
}

// CreateIssue creates a new issue.
func (s *IssueService) CreateIssue(ctx context.Context, issue *periodex.Issue) error {
	if err := issue.Validate(); err != nil {
		return err
	}

	issue.ID = uuid.New().String()
	issue.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO issues (id, volume, number, month, year, body, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, issue.ID, issue.Volume, issue.Number, issue.Month, issue.Year, issue.Body,
		issue.CreatedAt.Format(time.RFC3339))

	return err
}

// FindIssueByID retrieves an issue by ID.
func (s *IssueService) FindIssueByID(ctx context.Context, id string) (*periodex.Issue, error) {
	var issue periodex.Issue
	var createdAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, volume, number, month, year, body, created_at
		FROM issues
		WHERE id = ?
	`, id).Scan(&issue.ID, &issue.Volume, &issue.Number, &issue.Month, &issue.Year,
		&issue.Body, &createdAt)

	if err == sql.ErrNoRows {
		return nil, periodex.Errorf(periodex.ENOTFOUND, "issue not found")
	}
	if err != nil {
		return nil, err
	}

	issue.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}

	return &issue, nil
}

// FindIssues retrieves issues matching the filter, ordered by volume
// and number.
func (s *IssueService) FindIssues(ctx context.Context, filter periodex.IssueFilter) ([]*periodex.Issue, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, volume, number, month, year, body, created_at FROM issues WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Volume != nil {
		query.WriteString(" AND volume = ?")
		args = append(args, *filter.Volume)
	}
	if filter.Month != nil {
		query.WriteString(" AND month = ?")
		args = append(args, *filter.Month)
	}
	if filter.Year != nil {
		query.WriteString(" AND year = ?")
		args = append(args, *filter.Year)
	}

	query.WriteString(" ORDER BY volume ASC, number ASC")

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

	var issues []*periodex.Issue
	for rows.Next() {
		var issue periodex.Issue
		var createdAt string

		if err := rows.Scan(&issue.ID, &issue.Volume, &issue.Number, &issue.Month,
			&issue.Year, &issue.Body, &createdAt); err != nil {
			return nil, err
		}

		issue.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}

		issues = append(issues, &issue)
	}

	return issues, rows.Err()
}

// DeleteIssue permanently removes an issue; entries and flags cascade.
func (s *IssueService) DeleteIssue(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM issues WHERE id = ?", id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return periodex.Errorf(periodex.ENOTFOUND, "issue not found")
	}

	return nil
}
