package main

import (
	"fmt"
	"path/filepath"

	"github.com/fwojciec/periodex"
	"github.com/fwojciec/periodex/fs"
)

// Run executes the export command: rebuild an extraction from stored
// records and re-write the issue's content files. Noise fragments, the
// body preamble, and the advertising tail are not persisted, so the
// exported issue directory carries content, TOC, and review files only.
func (c *ExportCmd) Run(deps *Dependencies) error {
	issue, err := deps.Issues.FindIssueByID(deps.Ctx, c.IssueID)
	if err != nil {
		return err
	}

	entries, err := deps.Entries.FindEntries(deps.Ctx, periodex.EntryFilter{IssueID: &c.IssueID})
	if err != nil {
		return err
	}
	flags, err := deps.Flags.FindFlags(deps.Ctx, periodex.FlagFilter{IssueID: &c.IssueID})
	if err != nil {
		return err
	}

	x := &periodex.Extraction{}
	for _, entry := range entries {
		x.Entries = append(x.Entries, entry.Record)
	}
	for _, flag := range flags {
		x.Flags = append(x.Flags, flag.Record)
	}

	store := fs.NewStore(c.Out, issue)
	if err := store.WriteExtraction(x); err != nil {
		_ = store.Abort()
		return err
	}
	if err := store.Commit(); err != nil {
		return err
	}

	if rows := store.Rows(); len(rows) > 0 {
		if err := fs.WriteManifest(filepath.Join(c.Out, "manifest.csv"), rows); err != nil {
			return fmt.Errorf("failed to write manifest: %w", err)
		}
	}

	fmt.Fprintf(deps.Stdout, "exported %s to %s\n", fs.IssueKey(issue), c.Out)
	return nil
}
