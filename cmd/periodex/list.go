package main

import (
	"fmt"

	"github.com/fwojciec/periodex"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	issues, err := deps.Issues.FindIssues(deps.Ctx, periodex.IssueFilter{})
	if err != nil {
		return err
	}

	if len(issues) == 0 {
		fmt.Fprintln(deps.Stdout, "No issues stored.")
		return nil
	}

	for _, issue := range issues {
		fmt.Fprintf(deps.Stdout, "%s\tVol%02d No%02d\t%s %d\n",
			issue.ID, issue.Volume, issue.Number, issue.Month, issue.Year)
	}
	return nil
}
