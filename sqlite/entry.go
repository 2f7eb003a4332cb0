package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/periodex"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ periodex.EntryService = (*EntryService)(nil)

// EntryService implements periodex.EntryService using SQLite.
type EntryService struct {
	db *DB
}

// NewEntryService creates a new EntryService.
func NewEntryService(db *DB) *EntryService {
	return &EntryService{db: db}
}

// hashContent computes xxHash of content and returns a hex string.
func hashContent(content string) string {
	h := xxhash.Sum64String(content)
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(b)
}

// preferredContent returns the strict content when a strict match
// exists, else the loose content. Strict is the higher-confidence
// strategy, so the stored content hash follows it.
func preferredContent(rec periodex.EntryRecord) string {
	if rec.Strict != nil {
		return rec.Strict.Content
	}
	if rec.Loose != nil {
		return rec.Loose.Content
	}
	return ""
}

// CreateEntry creates a new entry.
func (s *EntryService) CreateEntry(ctx context.Context, entry *periodex.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	entry.ID = uuid.New().String()
	entry.CreatedAt = time.Now().UTC()
	entry.ContentHash = hashContent(preferredContent(entry.Record))

	rec := entry.Record
	strictPos, strictLen, strictContent := matchColumns(rec.Strict)
	loosePos, looseLen, looseContent := matchColumns(rec.Loose)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO entries (id, issue_id, idx, title, author, etype, identical,
			strict_position, strict_length, strict_content,
			loose_position, loose_length, loose_content,
			content_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.IssueID, rec.Index, rec.Title, rec.Author, string(rec.Etype),
		rec.StrictLooseIdentical,
		strictPos, strictLen, strictContent,
		loosePos, looseLen, looseContent,
		entry.ContentHash, entry.CreatedAt.Format(time.RFC3339))

	return err
}

// matchColumns flattens an optional match into its nullable columns.
// A NULL position marks an absent match.
func matchColumns(m *periodex.Match) (pos sql.NullInt64, length int, content string) {
	if m == nil {
		return sql.NullInt64{}, 0, ""
	}
	return sql.NullInt64{Int64: int64(m.Position), Valid: true}, m.Length, m.Content
}

// scanMatch rebuilds an optional match from its nullable columns.
func scanMatch(pos sql.NullInt64, length int, content string) *periodex.Match {
	if !pos.Valid {
		return nil
	}
	return &periodex.Match{Position: int(pos.Int64), Length: length, Content: content}
}

const entryColumns = `id, issue_id, idx, title, author, etype, identical,
	strict_position, strict_length, strict_content,
	loose_position, loose_length, loose_content,
	content_hash, created_at`

// scanEntry scans one entry row.
func scanEntry(scan func(dest ...any) error) (*periodex.Entry, error) {
	var entry periodex.Entry
	var etype string
	var createdAt string
	var strictPos, loosePos sql.NullInt64
	var strictLen, looseLen int
	var strictContent, looseContent string

	err := scan(&entry.ID, &entry.IssueID, &entry.Record.Index, &entry.Record.Title,
		&entry.Record.Author, &etype, &entry.Record.StrictLooseIdentical,
		&strictPos, &strictLen, &strictContent,
		&loosePos, &looseLen, &looseContent,
		&entry.ContentHash, &createdAt)
	if err != nil {
		return nil, err
	}

	entry.Record.Etype = periodex.EType(etype)
	entry.Record.Strict = scanMatch(strictPos, strictLen, strictContent)
	entry.Record.Loose = scanMatch(loosePos, looseLen, looseContent)

	entry.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}

	return &entry, nil
}

// FindEntryByID retrieves an entry by ID.
func (s *EntryService) FindEntryByID(ctx context.Context, id string) (*periodex.Entry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+entryColumns+`
		FROM entries
		WHERE id = ?
	`, id)

	entry, err := scanEntry(row.Scan)
	if err == sql.ErrNoRows {
		return nil, periodex.Errorf(periodex.ENOTFOUND, "entry not found")
	}
	if err != nil {
		return nil, err
	}

	return entry, nil
}

// FindEntries retrieves entries matching the filter, ordered by index
// with unindexed entries last.
func (s *EntryService) FindEntries(ctx context.Context, filter periodex.EntryFilter) ([]*periodex.Entry, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + entryColumns + " FROM entries WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.IssueID != nil {
		query.WriteString(" AND issue_id = ?")
		args = append(args, *filter.IssueID)
	}
	if filter.Etype != nil {
		query.WriteString(" AND etype = ?")
		args = append(args, string(*filter.Etype))
	}

	query.WriteString(" ORDER BY idx = 0, idx ASC")

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

	var entries []*periodex.Entry
	for rows.Next() {
		entry, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// DeleteEntriesByIssue removes all entries for an issue.
func (s *EntryService) DeleteEntriesByIssue(ctx context.Context, issueID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM entries WHERE issue_id = ?", issueID)
	return err
}
