package main_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/periodex"
	main "github.com/fwojciec/periodex/cmd/periodex"
	"github.com/fwojciec/periodex/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeIssueFile puts a cleaned issue text file in dir.
func writeIssueFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0644))
}

func passthroughExtraction() *periodex.Extraction {
	return &periodex.Extraction{
		Entries: []periodex.EntryRecord{
			{
				Index:  1,
				Title:  "The Article",
				Etype:  periodex.EtypeArticle,
				Strict: &periodex.Match{Position: 0, Length: 20, Content: "The Article\ntext"},
			},
		},
		Flags: []periodex.FlagRecord{
			{Index: 1, Title: "The Article", Strategy: periodex.Loose, TitleNotAtStart: true},
		},
	}
}

func TestExtractCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("extracts, persists, and writes files", func(t *testing.T) {
		t.Parallel()

		issuesDir := t.TempDir()
		outDir := filepath.Join(t.TempDir(), "processed")
		writeIssueFile(t, issuesDir, "Vol36_No01_January_1949.txt", "The Article\ntext\n")

		deps, stdout, _ := testDeps()
		deps.TOC = &mock.TOCSource{
			TitlesFn: func(_ context.Context, issue *periodex.Issue) ([]periodex.TitleEntry, error) {
				return []periodex.TitleEntry{{Title: "The Article", Etype: periodex.EtypeArticle}}, nil
			},
			IssuesFn: func() []string { return nil },
		}
		deps.Extractor = &mock.IssueExtractor{
			ExtractIssueFn: func(_ context.Context, issue *periodex.Issue, titles []periodex.TitleEntry) (*periodex.Extraction, error) {
				return passthroughExtraction(), nil
			},
		}

		var createdIssue *periodex.Issue
		deps.Issues = &mock.IssueService{
			CreateIssueFn: func(_ context.Context, issue *periodex.Issue) error {
				issue.ID = "issue-1"
				createdIssue = issue
				return nil
			},
		}

		var createdEntries []*periodex.Entry
		deps.Entries = &mock.EntryService{
			CreateEntryFn: func(_ context.Context, entry *periodex.Entry) error {
				entry.ID = "entry-1"
				createdEntries = append(createdEntries, entry)
				return nil
			},
		}

		var createdFlags []*periodex.Flag
		deps.Flags = &mock.FlagService{
			CreateFlagFn: func(_ context.Context, flag *periodex.Flag) error {
				createdFlags = append(createdFlags, flag)
				return nil
			},
		}

		cmd := &main.ExtractCmd{TOC: "unused", IssuesDir: issuesDir, Out: outDir, Concurrency: 2}
		err := cmd.Run(deps)

		require.NoError(t, err)
		require.NotNil(t, createdIssue)
		assert.Equal(t, 36, createdIssue.Volume)

		require.Len(t, createdEntries, 1)
		assert.Equal(t, "issue-1", createdEntries[0].IssueID)
		assert.Equal(t, "The Article", createdEntries[0].Record.Title)

		// Flags reference the persisted entry by ID.
		require.Len(t, createdFlags, 1)
		assert.Equal(t, "entry-1", createdFlags[0].EntryID)
		assert.Equal(t, "issue-1", createdFlags[0].IssueID)

		_, err = os.Stat(filepath.Join(outDir, "Vol36", "January", "01_strict_The_Article.txt"))
		assert.NoError(t, err)
		_, err = os.Stat(filepath.Join(outDir, "manifest.csv"))
		assert.NoError(t, err)

		assert.Contains(t, stdout.String(), "Vol36_No01_January_1949")
		assert.Contains(t, stdout.String(), "done: 1 processed, 0 failed, 1 flags")
	})

	t.Run("dry run reports without persisting or writing", func(t *testing.T) {
		t.Parallel()

		issuesDir := t.TempDir()
		outDir := filepath.Join(t.TempDir(), "processed")
		writeIssueFile(t, issuesDir, "Vol36_No01_January_1949.txt", "The Article\ntext\n")

		deps, stdout, _ := testDeps()
		deps.TOC = &mock.TOCSource{
			TitlesFn: func(_ context.Context, _ *periodex.Issue) ([]periodex.TitleEntry, error) {
				return []periodex.TitleEntry{{Title: "The Article"}}, nil
			},
			IssuesFn: func() []string { return nil },
		}
		deps.Extractor = &mock.IssueExtractor{
			ExtractIssueFn: func(_ context.Context, _ *periodex.Issue, _ []periodex.TitleEntry) (*periodex.Extraction, error) {
				return passthroughExtraction(), nil
			},
		}
		deps.Issues = &mock.IssueService{
			CreateIssueFn: func(_ context.Context, _ *periodex.Issue) error {
				t.Error("CreateIssue should not be called in dry run")
				return nil
			},
		}

		cmd := &main.ExtractCmd{TOC: "unused", IssuesDir: issuesDir, Out: outDir, Concurrency: 1, DryRun: true}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "1/1 entries matched")
		_, statErr := os.Stat(outDir)
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("skips issues without TOC entries", func(t *testing.T) {
		t.Parallel()

		issuesDir := t.TempDir()
		writeIssueFile(t, issuesDir, "Vol36_No01_January_1949.txt", "x")
		writeIssueFile(t, issuesDir, "Vol36_No02_February_1949.txt", "x")

		deps, _, stderr := testDeps()
		deps.TOC = &mock.TOCSource{
			TitlesFn: func(_ context.Context, issue *periodex.Issue) ([]periodex.TitleEntry, error) {
				if issue.Number == 2 {
					return nil, periodex.Errorf(periodex.ENOTFOUND, "no TOC entries")
				}
				return []periodex.TitleEntry{{Title: "T"}}, nil
			},
			IssuesFn: func() []string { return nil },
		}
		var extracted []int
		deps.Extractor = &mock.IssueExtractor{
			ExtractIssueFn: func(_ context.Context, issue *periodex.Issue, _ []periodex.TitleEntry) (*periodex.Extraction, error) {
				extracted = append(extracted, issue.Number)
				return &periodex.Extraction{}, nil
			},
		}

		cmd := &main.ExtractCmd{TOC: "unused", IssuesDir: issuesDir, Out: t.TempDir(), Concurrency: 1, DryRun: true}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, []int{1}, extracted)
		assert.Contains(t, stderr.String(), "skipping Vol36_No02_February_1949")
	})

	t.Run("warns about manifest issues without a text file", func(t *testing.T) {
		t.Parallel()

		issuesDir := t.TempDir()
		writeIssueFile(t, issuesDir, "Vol36_No01_January_1949.txt", "x")

		deps, _, stderr := testDeps()
		deps.TOC = &mock.TOCSource{
			TitlesFn: func(_ context.Context, _ *periodex.Issue) ([]periodex.TitleEntry, error) {
				return []periodex.TitleEntry{{Title: "T"}}, nil
			},
			IssuesFn: func() []string {
				return []string{"Vol36_No01_January_1949", "Vol36_No02_February_1949"}
			},
		}
		deps.Extractor = &mock.IssueExtractor{
			ExtractIssueFn: func(_ context.Context, _ *periodex.Issue, _ []periodex.TitleEntry) (*periodex.Extraction, error) {
				return &periodex.Extraction{}, nil
			},
		}

		cmd := &main.ExtractCmd{TOC: "unused", IssuesDir: issuesDir, Out: t.TempDir(), Concurrency: 1, DryRun: true}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stderr.String(), "no issue text file for Vol36_No02_February_1949")
		assert.NotContains(t, stderr.String(), "no issue text file for Vol36_No01_January_1949")
	})

	t.Run("fails when the issues directory is empty", func(t *testing.T) {
		t.Parallel()

		deps, _, _ := testDeps()

		cmd := &main.ExtractCmd{TOC: "unused", IssuesDir: t.TempDir(), Out: t.TempDir(), Concurrency: 1}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, periodex.ENOTFOUND, periodex.ErrorCode(err))
	})

	t.Run("a failed issue is reported but does not abort the run", func(t *testing.T) {
		t.Parallel()

		issuesDir := t.TempDir()
		writeIssueFile(t, issuesDir, "Vol36_No01_January_1949.txt", "x")
		writeIssueFile(t, issuesDir, "Vol36_No02_February_1949.txt", "x")

		deps, stdout, stderr := testDeps()
		deps.TOC = &mock.TOCSource{
			TitlesFn: func(_ context.Context, _ *periodex.Issue) ([]periodex.TitleEntry, error) {
				return []periodex.TitleEntry{{Title: "T"}}, nil
			},
			IssuesFn: func() []string { return nil },
		}
		deps.Extractor = &mock.IssueExtractor{
			ExtractIssueFn: func(_ context.Context, issue *periodex.Issue, _ []periodex.TitleEntry) (*periodex.Extraction, error) {
				if issue.Number == 1 {
					return nil, periodex.Errorf(periodex.EINTERNAL, "ocr garbage")
				}
				return &periodex.Extraction{}, nil
			},
		}

		cmd := &main.ExtractCmd{TOC: "unused", IssuesDir: issuesDir, Out: t.TempDir(), Concurrency: 1, DryRun: true}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stderr.String(), "failed")
		assert.Contains(t, stdout.String(), "done: 1 processed, 1 failed")
	})
}

func TestExportCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("rewrites content files from stored records", func(t *testing.T) {
		t.Parallel()

		outDir := filepath.Join(t.TempDir(), "processed")

		deps, stdout, _ := testDeps()
		deps.Issues = &mock.IssueService{
			FindIssueByIDFn: func(_ context.Context, id string) (*periodex.Issue, error) {
				return &periodex.Issue{ID: id, Volume: 36, Number: 1, Month: "January", Year: 1949}, nil
			},
		}
		deps.Entries = &mock.EntryService{
			FindEntriesFn: func(_ context.Context, _ periodex.EntryFilter) ([]*periodex.Entry, error) {
				return []*periodex.Entry{
					{ID: "entry-1", IssueID: "issue-1", Record: passthroughExtraction().Entries[0]},
				}, nil
			},
		}
		deps.Flags = &mock.FlagService{
			FindFlagsFn: func(_ context.Context, _ periodex.FlagFilter) ([]*periodex.Flag, error) {
				return []*periodex.Flag{
					{ID: "flag-1", IssueID: "issue-1", EntryID: "entry-1", Record: passthroughExtraction().Flags[0]},
				}, nil
			},
		}

		cmd := &main.ExportCmd{IssueID: "issue-1", Out: outDir}
		err := cmd.Run(deps)

		require.NoError(t, err)
		content, err := os.ReadFile(filepath.Join(outDir, "Vol36", "January", "01_strict_The_Article.txt"))
		require.NoError(t, err)
		assert.Equal(t, "The Article\ntext", string(content))

		review, err := os.ReadFile(filepath.Join(outDir, "Vol36", "January", "REVIEW.txt"))
		require.NoError(t, err)
		assert.Contains(t, string(review), "01\tloose\tThe Article")

		assert.Contains(t, stdout.String(), "exported Vol36_No01_January_1949")
	})

	t.Run("fails for an unknown issue", func(t *testing.T) {
		t.Parallel()

		deps, _, _ := testDeps()
		deps.Issues = &mock.IssueService{
			FindIssueByIDFn: func(_ context.Context, _ string) (*periodex.Issue, error) {
				return nil, periodex.Errorf(periodex.ENOTFOUND, "issue not found")
			},
		}

		err := (&main.ExportCmd{IssueID: "no-such", Out: t.TempDir()}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, periodex.ENOTFOUND, periodex.ErrorCode(err))
	})
}
