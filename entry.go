package periodex

import (
	"context"
	"time"
)

// Strategy identifies one of the two independent title-location
// strategies. The two passes are pure functions of identical shape,
// differing only in the match predicate.
type Strategy string

// Strategy constants.
const (
	// Strict matches a title only where it starts a line.
	Strict Strategy = "strict"
	// Loose matches a title anywhere in the body text.
	Loose Strategy = "loose"
)

// EType classifies a table-of-contents entry.
type EType string

// EType constants, matching the classifications used in the TOC manifest.
const (
	EtypeArticle   EType = "article"
	EtypeFiction   EType = "fiction"
	EtypePoem      EType = "poem"
	EtypeLesson    EType = "lesson"
	EtypeEditorial EType = "editorial"
	EtypeReport    EType = "report"
)

// TitleEntry is one row of an issue's table of contents, in magazine
// order. TOC order is only a tentative sequence; the final entry
// ordering is derived from match positions in the body text.
type TitleEntry struct {
	Title  string `json:"title"`
	Author string `json:"author,omitempty"`
	Etype  EType  `json:"etype"`
}

// Match holds one strategy's located result for a single title.
// Position is a 0-based byte offset into the body text.
type Match struct {
	Position int    `json:"position"`
	Length   int    `json:"length"`  // raw span length before noise stripping
	Content  string `json:"content"` // span text after noise stripping
}

// EntryRecord is the finalized extraction record for one TOC entry,
// carrying both strategy results. Index is 1-based, assigned by sorting
// on the earliest available match position (strict preferred); entries
// unlocated under both strategies keep Index 0 and follow all indexed
// entries in TOC order.
type EntryRecord struct {
	Index                int    `json:"index"`
	Title                string `json:"title"`
	Author               string `json:"author,omitempty"`
	Etype                EType  `json:"etype"`
	StrictLooseIdentical bool   `json:"strict_loose_identical"`
	Strict               *Match `json:"strict_match"`
	Loose                *Match `json:"loose_match"`
}

// MatchFor returns the record's match under the given strategy, or nil.
func (r *EntryRecord) MatchFor(strategy Strategy) *Match {
	if strategy == Strict {
		return r.Strict
	}
	return r.Loose
}

// FlagRecord marks one (entry, strategy) pair as a likely false split:
// the entry's own title does not appear near the start of that
// strategy's extracted content. Flags are advisory and never mutate the
// entry records they reference.
type FlagRecord struct {
	Index           int      `json:"index"`
	Title           string   `json:"title"`
	Strategy        Strategy `json:"strategy"`
	TitleNotAtStart bool     `json:"title_not_at_start"`
}

// Entry is a persisted extraction record.
type Entry struct {
	ID          string      `json:"id"`
	IssueID     string      `json:"issueId"`
	Record      EntryRecord `json:"record"`
	ContentHash string      `json:"contentHash"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// Validate returns an error if the entry contains invalid fields.
func (e *Entry) Validate() error {
	if e.IssueID == "" {
		return Errorf(EINVALID, "entry issue ID required")
	}
	if e.Record.Title == "" {
		return Errorf(EINVALID, "entry title required")
	}
	return nil
}

// EntryService represents a service for managing persisted entries.
type EntryService interface {
	// CreateEntry creates a new entry.
	CreateEntry(ctx context.Context, entry *Entry) error

	// FindEntryByID retrieves an entry by ID.
	// Returns ENOTFOUND if entry does not exist.
	FindEntryByID(ctx context.Context, id string) (*Entry, error)

	// FindEntries retrieves entries matching the filter, ordered by
	// their assigned index.
	FindEntries(ctx context.Context, filter EntryFilter) ([]*Entry, error)

	// DeleteEntriesByIssue removes all entries for an issue.
	DeleteEntriesByIssue(ctx context.Context, issueID string) error
}

// EntryFilter represents a filter for FindEntries.
type EntryFilter struct {
	ID      *string `json:"id"`
	IssueID *string `json:"issueId"`
	Etype   *EType  `json:"etype"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// Flag is a persisted flag record.
type Flag struct {
	ID        string     `json:"id"`
	IssueID   string     `json:"issueId"`
	EntryID   string     `json:"entryId"`
	Record    FlagRecord `json:"record"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Validate returns an error if the flag contains invalid fields.
func (f *Flag) Validate() error {
	if f.IssueID == "" {
		return Errorf(EINVALID, "flag issue ID required")
	}
	if f.EntryID == "" {
		return Errorf(EINVALID, "flag entry ID required")
	}
	if f.Record.Strategy != Strict && f.Record.Strategy != Loose {
		return Errorf(EINVALID, "flag strategy must be strict or loose")
	}
	return nil
}

// FlagService represents a service for managing persisted flags.
type FlagService interface {
	// CreateFlag creates a new flag.
	CreateFlag(ctx context.Context, flag *Flag) error

	// FindFlags retrieves flags matching the filter.
	FindFlags(ctx context.Context, filter FlagFilter) ([]*Flag, error)

	// DeleteFlagsByIssue removes all flags for an issue.
	DeleteFlagsByIssue(ctx context.Context, issueID string) error
}

// FlagFilter represents a filter for FindFlags.
type FlagFilter struct {
	IssueID  *string   `json:"issueId"`
	Strategy *Strategy `json:"strategy"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
