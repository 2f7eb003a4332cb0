package periodex

import (
	"regexp"
	"strings"
)

// Locate returns the byte offset of the first occurrence of title in
// body under the given strategy, or -1 if the title does not occur.
//
// The title is matched as a case-sensitive literal: regexp
// metacharacters in the title are escaped, never interpreted, and case
// is not normalized (a lowercase mid-sentence occurrence is distinct
// from a capitalized heading). Under Loose any occurrence qualifies;
// under Strict the occurrence must be immediately preceded by a line
// boundary, with offset 0 counting as a line boundary.
//
// Locate does not deduplicate: a title that is a substring of an
// earlier entry's region still matches there. Duplicate handling
// belongs to Resolve.
func Locate(title, body string, strategy Strategy) int {
	if title == "" {
		return -1
	}
	if strategy == Loose {
		return strings.Index(body, title)
	}

	// QuoteMeta output always compiles, so MustCompile cannot panic here.
	re := regexp.MustCompile(`(?m)^` + regexp.QuoteMeta(title))
	loc := re.FindStringIndex(body)
	if loc == nil {
		return -1
	}
	return loc[0]
}
