package main

import (
	"context"
	"io"

	"github.com/fwojciec/periodex"
	"github.com/fwojciec/periodex/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	DB        *sqlite.DB
	Issues    periodex.IssueService
	Entries   periodex.EntryService
	Flags     periodex.FlagService
	TOC       periodex.TOCSource
	Extractor periodex.IssueExtractor
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Extract ExtractCmd `cmd:"" help:"Extract entries from cleaned issue texts"`
	List    ListCmd    `cmd:"" help:"List stored issues"`
	Entries EntriesCmd `cmd:"" help:"List extracted entries for an issue"`
	Flags   FlagsCmd   `cmd:"" help:"List entries flagged for review"`
	Export  ExportCmd  `cmd:"" help:"Re-write content files for a stored issue"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	TOC         string `arg:"" help:"Path to the TOC manifest (JSON)"`
	IssuesDir   string `arg:"" help:"Directory of cleaned issue text files"`
	Out         string `short:"o" default:"processed" help:"Output directory for content files"`
	Noise       string `short:"n" help:"Noise pattern config (JSON); built-in patterns when omitted"`
	Concurrency int    `short:"c" default:"4" help:"Concurrent issue limit"`
	DryRun      bool   `help:"Report matches without writing files or records"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// EntriesCmd is the "entries" subcommand.
type EntriesCmd struct {
	IssueID string `arg:"" help:"Issue ID"`
	Full    bool   `help:"Show full entry content"`
}

// FlagsCmd is the "flags" subcommand.
type FlagsCmd struct {
	IssueID string `arg:"" optional:"" help:"Limit to one issue"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	IssueID string `arg:"" help:"Issue ID"`
	Out     string `short:"o" default:"processed" help:"Output directory for content files"`
}
