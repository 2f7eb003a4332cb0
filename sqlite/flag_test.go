package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/periodex"
	"github.com/fwojciec/periodex/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flagFixture creates an issue with one entry and returns both.
func flagFixture(t *testing.T, db *sqlite.DB) (*periodex.Issue, *periodex.Entry) {
	t.Helper()

	issue := mustCreateIssue(t, sqlite.NewIssueService(db), testIssue(1))
	entry := &periodex.Entry{IssueID: issue.ID, Record: testEntryRecord(1, "Flagged Title")}
	require.NoError(t, sqlite.NewEntryService(db).CreateEntry(context.Background(), entry))
	return issue, entry
}

func TestFlagService_CreateFlag(t *testing.T) {
	t.Parallel()

	t.Run("round-trips the flag record", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		issue, entry := flagFixture(t, db)
		s := sqlite.NewFlagService(db)
		ctx := context.Background()

		flag := &periodex.Flag{
			IssueID: issue.ID,
			EntryID: entry.ID,
			Record:  periodex.FlagRecord{Index: 1, Title: "Flagged Title", Strategy: periodex.Loose, TitleNotAtStart: true},
		}
		require.NoError(t, s.CreateFlag(ctx, flag))
		assert.NotEmpty(t, flag.ID)

		flags, err := s.FindFlags(ctx, periodex.FlagFilter{IssueID: &issue.ID})

		require.NoError(t, err)
		require.Len(t, flags, 1)
		assert.Equal(t, entry.ID, flags[0].EntryID)
		assert.Equal(t, 1, flags[0].Record.Index)
		assert.Equal(t, "Flagged Title", flags[0].Record.Title)
		assert.Equal(t, periodex.Loose, flags[0].Record.Strategy)
		assert.True(t, flags[0].Record.TitleNotAtStart)
	})

	t.Run("rejects flag without entry ID", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		issue, _ := flagFixture(t, db)
		s := sqlite.NewFlagService(db)

		err := s.CreateFlag(context.Background(), &periodex.Flag{
			IssueID: issue.ID,
			Record:  periodex.FlagRecord{Index: 1, Title: "T", Strategy: periodex.Strict},
		})

		require.Error(t, err)
		assert.Equal(t, periodex.EINVALID, periodex.ErrorCode(err))
	})

	t.Run("rejects unknown strategy", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		issue, entry := flagFixture(t, db)
		s := sqlite.NewFlagService(db)

		err := s.CreateFlag(context.Background(), &periodex.Flag{
			IssueID: issue.ID,
			EntryID: entry.ID,
			Record:  periodex.FlagRecord{Index: 1, Title: "T", Strategy: "fuzzy"},
		})

		require.Error(t, err)
		assert.Equal(t, periodex.EINVALID, periodex.ErrorCode(err))
	})
}

func TestFlagService_FindFlags(t *testing.T) {
	t.Parallel()

	t.Run("orders by index then strategy", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		issue, entry := flagFixture(t, db)
		s := sqlite.NewFlagService(db)
		ctx := context.Background()

		for _, record := range []periodex.FlagRecord{
			{Index: 2, Title: "Later", Strategy: periodex.Strict, TitleNotAtStart: true},
			{Index: 1, Title: "Earlier", Strategy: periodex.Strict, TitleNotAtStart: true},
			{Index: 1, Title: "Earlier", Strategy: periodex.Loose, TitleNotAtStart: true},
		} {
			require.NoError(t, s.CreateFlag(ctx, &periodex.Flag{IssueID: issue.ID, EntryID: entry.ID, Record: record}))
		}

		flags, err := s.FindFlags(ctx, periodex.FlagFilter{IssueID: &issue.ID})

		require.NoError(t, err)
		require.Len(t, flags, 3)
		assert.Equal(t, periodex.Loose, flags[0].Record.Strategy)
		assert.Equal(t, 1, flags[0].Record.Index)
		assert.Equal(t, periodex.Strict, flags[1].Record.Strategy)
		assert.Equal(t, 1, flags[1].Record.Index)
		assert.Equal(t, 2, flags[2].Record.Index)
	})

	t.Run("filters by strategy", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		issue, entry := flagFixture(t, db)
		s := sqlite.NewFlagService(db)
		ctx := context.Background()

		for _, strategy := range []periodex.Strategy{periodex.Strict, periodex.Loose} {
			require.NoError(t, s.CreateFlag(ctx, &periodex.Flag{
				IssueID: issue.ID,
				EntryID: entry.ID,
				Record:  periodex.FlagRecord{Index: 1, Title: "T", Strategy: strategy, TitleNotAtStart: true},
			}))
		}

		strategy := periodex.Loose
		flags, err := s.FindFlags(ctx, periodex.FlagFilter{IssueID: &issue.ID, Strategy: &strategy})

		require.NoError(t, err)
		require.Len(t, flags, 1)
		assert.Equal(t, periodex.Loose, flags[0].Record.Strategy)
	})
}

func TestFlagService_DeleteFlagsByIssue(t *testing.T) {
	t.Parallel()

	t.Run("removes all flags for the issue", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		issue, entry := flagFixture(t, db)
		s := sqlite.NewFlagService(db)
		ctx := context.Background()

		require.NoError(t, s.CreateFlag(ctx, &periodex.Flag{
			IssueID: issue.ID,
			EntryID: entry.ID,
			Record:  periodex.FlagRecord{Index: 1, Title: "T", Strategy: periodex.Strict, TitleNotAtStart: true},
		}))

		require.NoError(t, s.DeleteFlagsByIssue(ctx, issue.ID))

		flags, err := s.FindFlags(ctx, periodex.FlagFilter{IssueID: &issue.ID})
		require.NoError(t, err)
		assert.Empty(t, flags)
	})
}
