package fs

import (
	"encoding/csv"
	"os"
)

// ManifestRow describes one strategy content file written for an issue.
type ManifestRow struct {
	File     string
	Path     string
	Volume   string
	Month    string
	Etype    string
	Title    string
	Author   string
	Strategy string
}

// manifestHeader is the CSV column order.
var manifestHeader = []string{"file", "path", "volume", "month", "etype", "title", "author", "strategy"}

// WriteManifest writes rows as a CSV file with a header, replacing any
// existing manifest at path.
func WriteManifest(path string, rows []ManifestRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	records := [][]string{manifestHeader}
	for _, row := range rows {
		records = append(records, []string{row.File, row.Path, row.Volume, row.Month, row.Etype, row.Title, row.Author, row.Strategy})
	}
	if err := w.WriteAll(records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
