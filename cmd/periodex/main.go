package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/periodex"
	"github.com/fwojciec/periodex/extract"
	"github.com/fwojciec/periodex/fs"
	pslog "github.com/fwojciec/periodex/slog"
	"github.com/fwojciec/periodex/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	IssueService periodex.IssueService
	EntryService periodex.EntryService
	FlagService  periodex.FlagService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("periodex"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'periodex --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set PERIODEX_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	// Wire core services into dependencies
	m.IssueService = sqlite.NewIssueService(m.DB)
	m.EntryService = sqlite.NewEntryService(m.DB)
	m.FlagService = sqlite.NewFlagService(m.DB)
	deps.DB = m.DB
	deps.Issues = m.IssueService
	deps.Entries = m.EntryService
	deps.Flags = m.FlagService

	// Wire command-specific dependencies based on command
	if cmd == "extract" {
		patterns := periodex.DefaultNoisePatterns()
		if cli.Extract.Noise != "" {
			patterns, err = loadNoisePatterns(cli.Extract.Noise)
			if err != nil {
				return err
			}
		}

		// A pattern that does not compile halts the pipeline here,
		// before any issue is processed.
		stripper, err := periodex.NewStripper(patterns)
		if err != nil {
			return err
		}

		toc, err := fs.LoadTOCManifest(cli.Extract.TOC)
		if err != nil {
			return err
		}

		logger := slog.New(slog.NewTextHandler(stderr, nil))
		deps.TOC = toc
		deps.Extractor = pslog.NewLoggingExtractor(&extract.Extractor{Stripper: stripper}, logger)
	}

	return kongCtx.Run(deps)
}

// loadNoisePatterns reads a JSON noise pattern config file.
func loadNoisePatterns(path string) ([]periodex.NoisePattern, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read noise config: %w", err)
	}

	var patterns []periodex.NoisePattern
	if err := json.Unmarshal(data, &patterns); err != nil {
		return nil, periodex.Errorf(periodex.EINVALID, "noise config %s: %s", path, err)
	}
	return patterns, nil
}

func defaultDBPath() string {
	if path := os.Getenv("PERIODEX_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "periodex.db"
	}
	dir := filepath.Join(home, ".periodex")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "periodex.db")
}
