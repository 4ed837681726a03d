package export

import (
	"os"
	"strings"
	"testing"
	"time"
)

func TestBuildLineCount(t *testing.T) {
	table := Table{
		Header: []string{"Name", "Phone"},
		Rows: [][]string{
			{"Ada", "+250788000001"},
			{"Grace", "+250788000002"},
			{"Jean", "+250788000003"},
		},
	}

	out := Build(table)
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("lines: got %d, want 4 (header + 3 rows)", len(lines))
	}
	if strings.HasSuffix(out, "\n") {
		t.Error("output has a trailing newline")
	}
}

func TestBuildQuotesEveryField(t *testing.T) {
	table := Table{
		Header: []string{"A", "B"},
		Rows:   [][]string{{"x, y", ""}},
	}

	out := Build(table)
	want := "\"A\",\"B\"\n\"x, y\",\"\""
	if out != want {
		t.Errorf("Build: got %q, want %q", out, want)
	}
}

func TestBuildDoesNotEscapeQuotes(t *testing.T) {
	table := Table{
		Header: []string{"Note"},
		Rows:   [][]string{{`said "hi"`}},
	}

	out := Build(table)
	want := "\"Note\"\n\"said \"hi\"\""
	if out != want {
		t.Errorf("Build: got %q, want %q", out, want)
	}
}

func TestBuildHeaderOnly(t *testing.T) {
	out := Build(Table{Header: []string{"Empty"}})
	if out != `"Empty"` {
		t.Errorf("Build: got %q, want header line only", out)
	}
}

func TestFilename(t *testing.T) {
	now := time.Date(2026, 8, 31, 15, 4, 5, 0, time.UTC)
	if got := Filename("activities", now); got != "activities_2026-08-31.csv" {
		t.Errorf("Filename: got %q", got)
	}
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	table := Table{Header: []string{"H"}, Rows: [][]string{{"v"}}}

	path, err := Write(table, dir, "users", now)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	if string(data) != "\"H\"\n\"v\"" {
		t.Errorf("file content: got %q", string(data))
	}
}

func TestWriteRaw(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	path, err := WriteRaw("a,b\n1,2", dir, "analytics_month", now)
	if err != nil {
		t.Fatalf("WriteRaw failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	if string(data) != "a,b\n1,2" {
		t.Errorf("file content: got %q", string(data))
	}
}
