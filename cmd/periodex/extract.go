package main

import (
	"fmt"
	"path/filepath"

	"github.com/fwojciec/periodex"
	"github.com/fwojciec/periodex/extract"
	"github.com/fwojciec/periodex/fs"
)

// Run executes the extract command: load the cleaned issue texts, pair
// each with its TOC entries, run the extraction pipeline, and persist
// records and content files.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	issues, err := fs.LoadIssues(c.IssuesDir)
	if err != nil {
		return err
	}
	if len(issues) == 0 {
		return periodex.Errorf(periodex.ENOTFOUND, "no issue files found in %s", c.IssuesDir)
	}

	// Manifest issues with no text file cannot be processed at all;
	// point them out before the run.
	have := make(map[string]bool, len(issues))
	for _, issue := range issues {
		have[fs.IssueKey(issue)] = true
	}
	for _, key := range deps.TOC.Issues() {
		if !have[key] {
			fmt.Fprintf(deps.Stderr, "no issue text file for %s\n", key)
		}
	}

	// Issues without a TOC manifest entry are skipped, not fatal.
	var jobs []extract.Job
	for _, issue := range issues {
		titles, err := deps.TOC.Titles(deps.Ctx, issue)
		if err != nil {
			if periodex.ErrorCode(err) == periodex.ENOTFOUND {
				fmt.Fprintf(deps.Stderr, "skipping %s: no TOC entries\n", fs.IssueKey(issue))
				continue
			}
			return err
		}
		jobs = append(jobs, extract.Job{Issue: issue, Titles: titles})
	}
	if len(jobs) == 0 {
		return periodex.Errorf(periodex.ENOTFOUND, "no issues with TOC entries to process")
	}

	progress := func(event extract.ProgressEvent) {
		switch event.Type {
		case extract.ProgressStarted:
			fmt.Fprintf(deps.Stderr, "extracting %d issues\n", event.Total)
		case extract.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "[%d/%d] failed: %s\n", event.Completed, event.Total, event.Err)
		}
	}

	results, err := extract.ExtractAll(deps.Ctx, deps.Extractor, jobs, c.Concurrency, progress)
	if err != nil {
		return err
	}

	var rows []fs.ManifestRow
	var processed, failed, flagged int
	for _, result := range results {
		if result.Err != nil {
			failed++
			continue
		}

		key := fs.IssueKey(result.Issue)
		indexed := 0
		for _, entry := range result.Extraction.Entries {
			if entry.Index > 0 {
				indexed++
			}
		}
		fmt.Fprintf(deps.Stdout, "%s: %d/%d entries matched, %d flagged\n",
			key, indexed, len(result.Extraction.Entries), len(result.Extraction.Flags))
		flagged += len(result.Extraction.Flags)
		processed++

		if c.DryRun {
			continue
		}

		if err := c.persist(deps, result.Issue, result.Extraction); err != nil {
			return fmt.Errorf("failed to persist %s: %w", key, err)
		}

		store := fs.NewStore(c.Out, result.Issue)
		if err := store.WriteExtraction(result.Extraction); err != nil {
			_ = store.Abort()
			return fmt.Errorf("failed to write %s: %w", key, err)
		}
		if err := store.Commit(); err != nil {
			return fmt.Errorf("failed to commit %s: %w", key, err)
		}
		rows = append(rows, store.Rows()...)
	}

	if !c.DryRun && len(rows) > 0 {
		if err := fs.WriteManifest(filepath.Join(c.Out, "manifest.csv"), rows); err != nil {
			return fmt.Errorf("failed to write manifest: %w", err)
		}
	}

	fmt.Fprintf(deps.Stdout, "done: %d processed, %d failed, %d flags\n", processed, failed, flagged)
	return nil
}

// persist stores the issue, its entry records, and its flag records.
// Flags reference entries by index, so entry IDs are mapped first.
func (c *ExtractCmd) persist(deps *Dependencies, issue *periodex.Issue, x *periodex.Extraction) error {
	if err := deps.Issues.CreateIssue(deps.Ctx, issue); err != nil {
		return err
	}

	entryIDs := make(map[int]string)
	for _, record := range x.Entries {
		entry := &periodex.Entry{IssueID: issue.ID, Record: record}
		if err := deps.Entries.CreateEntry(deps.Ctx, entry); err != nil {
			return err
		}
		if record.Index > 0 {
			entryIDs[record.Index] = entry.ID
		}
	}

	for _, record := range x.Flags {
		flag := &periodex.Flag{
			IssueID: issue.ID,
			EntryID: entryIDs[record.Index],
			Record:  record,
		}
		if err := deps.Flags.CreateFlag(deps.Ctx, flag); err != nil {
			return err
		}
	}
	return nil
}
