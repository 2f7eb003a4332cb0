package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/periodex"
)

// Store writes one issue's extraction output with atomic update
// semantics. Files land in <base>/VolNN/<Month>.tmp and move to
// <base>/VolNN/<Month> on Commit, so a crashed run never leaves a
// half-written issue directory behind.
type Store struct {
	baseDir string
	volume  string
	month   string
	rows    []ManifestRow
}

// NewStore creates a Store for one issue's output directory.
func NewStore(baseDir string, issue *periodex.Issue) *Store {
	return &Store{
		baseDir: baseDir,
		volume:  fmt.Sprintf("Vol%02d", issue.Volume),
		month:   issue.Month,
	}
}

func (s *Store) tempDir() string {
	return filepath.Join(s.baseDir, s.volume, s.month+".tmp")
}

func (s *Store) finalDir() string {
	return filepath.Join(s.baseDir, s.volume, s.month)
}

// relDir is the issue directory path recorded in manifest rows.
func (s *Store) relDir() string {
	return filepath.Join(s.volume, s.month)
}

// WriteExtraction writes the extraction's files to the pending
// directory: one content file per (indexed entry, matched strategy),
// the front matter as TOC.txt, the misc bucket, and the review file.
// Manifest rows for the written strategy files accumulate on the store.
func (s *Store) WriteExtraction(x *periodex.Extraction) error {
	if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
		return err
	}

	for _, entry := range x.Entries {
		if entry.Index == 0 {
			continue
		}
		for _, strategy := range []periodex.Strategy{periodex.Strict, periodex.Loose} {
			m := entry.MatchFor(strategy)
			if m == nil || m.Content == "" {
				continue
			}

			name := fmt.Sprintf("%02d_%s_%s.txt", entry.Index, strategy, SanitizeFilename(entry.Title))
			if err := s.writeFile(name, m.Content); err != nil {
				return err
			}

			s.rows = append(s.rows, ManifestRow{
				File:     name,
				Path:     s.relDir(),
				Volume:   s.volume,
				Month:    s.month,
				Etype:    string(entry.Etype),
				Title:    entry.Title,
				Author:   entry.Author,
				Strategy: string(strategy),
			})
		}
	}

	if fm := strings.TrimSpace(x.FrontMatter); fm != "" {
		if err := s.writeFile("TOC.txt", fm); err != nil {
			return err
		}
	}
	if misc := FormatMisc(x); misc != "" {
		if err := s.writeFile("MISC.txt", misc); err != nil {
			return err
		}
	}
	if review := FormatReview(x.Flags); review != "" {
		if err := s.writeFile("REVIEW.txt", review); err != nil {
			return err
		}
	}

	return nil
}

func (s *Store) writeFile(name, content string) error {
	return os.WriteFile(filepath.Join(s.tempDir(), name), []byte(content), 0644)
}

// Rows returns the manifest rows accumulated by WriteExtraction.
func (s *Store) Rows() []ManifestRow {
	return s.rows
}

// Commit atomically replaces the issue's final directory with the
// pending one.
func (s *Store) Commit() error {
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort discards the pending directory.
func (s *Store) Abort() error {
	return os.RemoveAll(s.tempDir())
}

// FormatMisc renders the residual bucket for an issue: body text no
// article span covers, deduplicated noise fragments in first-seen
// order, then the advertising tail. Returns "" when there is nothing
// residual.
func FormatMisc(x *periodex.Extraction) string {
	var sections []string

	if p := strings.TrimSpace(x.Preamble); p != "" {
		sections = append(sections, "--- UNMATCHED BODY ---\n"+p+"\n")
	}

	if len(x.Noise) > 0 {
		var b strings.Builder
		b.WriteString("--- STRIPPED NOISE ---\n")
		seen := make(map[string]bool)
		for _, frag := range x.Noise {
			text := strings.TrimSpace(frag.Text)
			if text == "" || seen[text] {
				continue
			}
			seen[text] = true
			b.WriteString(text)
			b.WriteString("\n")
		}
		sections = append(sections, b.String())
	}

	if ads := strings.TrimSpace(x.Ads); ads != "" {
		sections = append(sections, "--- ADS ---\n"+ads+"\n")
	}

	return strings.Join(sections, "\n")
}

// FormatReview renders the review file: one line per flag record.
// Returns "" when nothing was flagged.
func FormatReview(flags []periodex.FlagRecord) string {
	if len(flags) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("# Entries whose own title was not found near the start of their content.\n")
	b.WriteString("# Likely false splits; verify boundaries by hand.\n")
	for _, flag := range flags {
		fmt.Fprintf(&b, "%02d\t%s\t%s\n", flag.Index, flag.Strategy, flag.Title)
	}
	return b.String()
}
