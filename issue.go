package periodex

import (
	"context"
	"time"
)

// Issue represents one month's published output of the serial, the unit
// of independent processing. Body holds the full cleaned OCR text.
type Issue struct {
	ID        string    `json:"id"`
	Volume    int       `json:"volume"`
	Number    int       `json:"number"`
	Month     string    `json:"month"`
	Year      int       `json:"year"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate returns an error if the issue contains invalid fields.
// An empty body is valid: extraction over it is defined to produce an
// empty entry sequence, not an error.
func (i *Issue) Validate() error {
	if i.Volume <= 0 {
		return Errorf(EINVALID, "issue volume required")
	}
	if i.Month == "" {
		return Errorf(EINVALID, "issue month required")
	}
	if i.Year <= 0 {
		return Errorf(EINVALID, "issue year required")
	}
	return nil
}

// IssueService represents a service for managing issues.
type IssueService interface {
	// CreateIssue creates a new issue.
	CreateIssue(ctx context.Context, issue *Issue) error

	// FindIssueByID retrieves an issue by ID.
	// Returns ENOTFOUND if issue does not exist.
	FindIssueByID(ctx context.Context, id string) (*Issue, error)

	// FindIssues retrieves issues matching the filter.
	FindIssues(ctx context.Context, filter IssueFilter) ([]*Issue, error)

	// DeleteIssue permanently removes an issue and all associated
	// entries and flags.
	// Returns ENOTFOUND if issue does not exist.
	DeleteIssue(ctx context.Context, id string) error
}

// IssueFilter represents a filter for FindIssues.
type IssueFilter struct {
	ID     *string `json:"id"`
	Volume *int    `json:"volume"`
	Month  *string `json:"month"`
	Year   *int    `json:"year"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// TOCSource supplies the ordered table-of-contents entries for an issue.
// Implementations return ENOTFOUND when no TOC is known for the issue.
type TOCSource interface {
	Titles(ctx context.Context, issue *Issue) ([]TitleEntry, error)

	// Issues lists the keys of every issue the source has a TOC for,
	// in ascending key order.
	Issues() []string
}
