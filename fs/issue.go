package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/fwojciec/periodex"
)

// issueFileRe matches cleaned issue filenames: Vol36_No01_January_1949.txt.
var issueFileRe = regexp.MustCompile(`^Vol(\d+)_No(\d+)_([A-Za-z]+)_(\d{4})\.txt$`)

// LoadIssues reads every cleaned issue text file in dir, parsing
// volume, number, month, and year from the filename. Files that do not
// match the naming scheme are skipped. Issues are returned in volume
// and number order with IDs unset; persistence assigns them.
func LoadIssues(dir string) ([]*periodex.Issue, error) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read issue directory: %w", err)
	}

	var issues []*periodex.Issue
	for _, dirent := range dirents {
		if dirent.IsDir() {
			continue
		}
		m := issueFileRe.FindStringSubmatch(dirent.Name())
		if m == nil {
			continue
		}

		body, err := os.ReadFile(filepath.Join(dir, dirent.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read issue %s: %w", dirent.Name(), err)
		}

		volume, _ := strconv.Atoi(m[1])
		number, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[4])
		issues = append(issues, &periodex.Issue{
			Volume: volume,
			Number: number,
			Month:  m[3],
			Year:   year,
			Body:   string(body),
		})
	}

	sort.Slice(issues, func(i, j int) bool {
		if issues[i].Volume != issues[j].Volume {
			return issues[i].Volume < issues[j].Volume
		}
		return issues[i].Number < issues[j].Number
	})

	return issues, nil
}
