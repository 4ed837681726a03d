package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Table is the rows of one page's currently loaded result set,
// flattened to strings for export. Only already-fetched data is
// exported; this is not a server-side export job.
type Table struct {
	// Header is the fixed column header row.
	Header []string

	// Rows holds one entry per loaded item.
	Rows [][]string
}

// Build renders the table as CSV text: the header row followed by one
// line per row, every field wrapped in double quotes and joined by
// commas. Embedded quotes are not escaped, matching the portal's
// long-standing export format. The output has no trailing newline, so
// a table with N rows is exactly N+1 lines.
func Build(t Table) string {
	lines := make([]string, 0, len(t.Rows)+1)
	lines = append(lines, buildLine(t.Header))
	for _, row := range t.Rows {
		lines = append(lines, buildLine(row))
	}
	return strings.Join(lines, "\n")
}

func buildLine(fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + f + `"`
	}
	return strings.Join(quoted, ",")
}

// Filename returns the export file name for the given prefix and
// date, e.g. "activities_2026-08-31.csv".
func Filename(prefix string, now time.Time) string {
	return fmt.Sprintf("%s_%s.csv", prefix, now.Format("2006-01-02"))
}

// Write renders the table and writes it under dir using the dated
// filename for prefix. It returns the full path written.
func Write(t Table, dir, prefix string, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, Filename(prefix, now))
	if err := os.WriteFile(path, []byte(Build(t)), 0o644); err != nil {
		return "", fmt.Errorf("writing export %s: %w", path, err)
	}
	return path, nil
}

// WriteRaw writes backend-rendered CSV text (the analytics export
// endpoint) under dir with the dated filename for prefix.
func WriteRaw(text, dir, prefix string, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, Filename(prefix, now))
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("writing export %s: %w", path, err)
	}
	return path, nil
}
