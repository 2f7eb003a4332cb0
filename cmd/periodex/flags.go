package main

import (
	"fmt"

	"github.com/fwojciec/periodex"
)

// Run executes the flags command.
func (c *FlagsCmd) Run(deps *Dependencies) error {
	filter := periodex.FlagFilter{}
	if c.IssueID != "" {
		filter.IssueID = &c.IssueID
	}

	flags, err := deps.Flags.FindFlags(deps.Ctx, filter)
	if err != nil {
		return err
	}

	if len(flags) == 0 {
		fmt.Fprintln(deps.Stdout, "No flags.")
		return nil
	}

	for _, flag := range flags {
		fmt.Fprintf(deps.Stdout, "%s\t%02d\t%s\t%s\n",
			flag.IssueID, flag.Record.Index, flag.Record.Strategy, flag.Record.Title)
	}
	return nil
}
