package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/fwojciec/periodex"
)

// Ensure TOCManifest implements periodex.TOCSource at compile time.
var _ periodex.TOCSource = (*TOCManifest)(nil)

// TOCManifest supplies table-of-contents entries from a JSON manifest
// keyed by issue: {"Vol36_No01_January_1949": [{"title": ..., "author":
// ..., "etype": ...}, ...], ...}. Entries are listed in the order they
// appear in the magazine.
type TOCManifest struct {
	entries map[string][]periodex.TitleEntry
}

// LoadTOCManifest reads and validates a TOC manifest file. A manifest
// that is not valid JSON, or that contains an entry without a title,
// fails here with EINVALID before any issue is processed.
func LoadTOCManifest(path string) (*TOCManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read TOC manifest: %w", err)
	}

	var entries map[string][]periodex.TitleEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, periodex.Errorf(periodex.EINVALID, "TOC manifest %s: %s", path, err)
	}

	for key, titles := range entries {
		for i, t := range titles {
			if t.Title == "" {
				return nil, periodex.Errorf(periodex.EINVALID, "TOC manifest %s: issue %s entry %d: title required", path, key, i+1)
			}
		}
	}

	return &TOCManifest{entries: entries}, nil
}

// IssueKey derives the manifest key for an issue, matching the cleaned
// text filename stem: Vol36_No01_January_1949.
func IssueKey(issue *periodex.Issue) string {
	return fmt.Sprintf("Vol%02d_No%02d_%s_%d", issue.Volume, issue.Number, issue.Month, issue.Year)
}

// Titles returns the ordered TOC entries for an issue.
// Returns ENOTFOUND when the manifest has no entry for the issue.
func (m *TOCManifest) Titles(ctx context.Context, issue *periodex.Issue) ([]periodex.TitleEntry, error) {
	titles, ok := m.entries[IssueKey(issue)]
	if !ok {
		return nil, periodex.Errorf(periodex.ENOTFOUND, "no TOC entries for issue %s", IssueKey(issue))
	}
	return titles, nil
}

// Issues lists the manifest's issue keys in ascending order.
func (m *TOCManifest) Issues() []string {
	keys := make([]string, 0, len(m.entries))
	for key := range m.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
