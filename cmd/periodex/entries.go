package main

import (
	"fmt"

	"github.com/fwojciec/periodex"
)

// Run executes the entries command.
func (c *EntriesCmd) Run(deps *Dependencies) error {
	entries, err := deps.Entries.FindEntries(deps.Ctx, periodex.EntryFilter{IssueID: &c.IssueID})
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(deps.Stdout, "No entries for issue.")
		return nil
	}

	for _, entry := range entries {
		r := entry.Record
		fmt.Fprintf(deps.Stdout, "%02d\t%-9s\t%s%s\t%s\n",
			r.Index, r.Etype, r.Title, authorSuffix(r.Author), matchSummary(&r))
		if c.Full {
			if m := r.Strict; m != nil && m.Content != "" {
				fmt.Fprintf(deps.Stdout, "--- strict ---\n%s\n", m.Content)
			}
			if m := r.Loose; m != nil && m.Content != "" && !r.StrictLooseIdentical {
				fmt.Fprintf(deps.Stdout, "--- loose ---\n%s\n", m.Content)
			}
		}
	}
	return nil
}

func authorSuffix(author string) string {
	if author == "" {
		return ""
	}
	return " (" + author + ")"
}

// matchSummary renders which strategies located the entry and whether
// the two agreed.
func matchSummary(r *periodex.EntryRecord) string {
	switch {
	case r.Strict == nil && r.Loose == nil:
		return "unmatched"
	case r.StrictLooseIdentical:
		return "strict=loose"
	case r.Strict != nil && r.Loose != nil:
		return "strict+loose"
	case r.Strict != nil:
		return "strict only"
	default:
		return "loose only"
	}
}
