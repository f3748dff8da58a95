package report_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/edaloom-cli/internal/dataset"
	"github.com/KaramelBytes/edaloom-cli/internal/eda"
	"github.com/KaramelBytes/edaloom-cli/internal/report"
)

func TestRunWritesManifestFiguresAndSummary(t *testing.T) {
	df, err := dataset.FromRecords(
		[]string{"color", "size"},
		[][]string{{"red", "1.5"}, {"blue", "2"}, {"red", ""}, {"green", "4.25"}},
		0,
	)
	if err != nil {
		t.Fatalf("frame: %v", err)
	}
	opt := eda.DefaultOptions()
	opt.Kind = dataset.Auto
	dir := filepath.Join(t.TempDir(), "run")

	r, err := report.Run(df, "data.csv", []string{"color", "size", "nope"}, opt, dir, "png")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if r.ID == "" {
		t.Fatalf("expected run id")
	}
	if r.Failed() != 1 {
		t.Fatalf("failed = %d, want 1", r.Failed())
	}
	e, ok := r.Entry("color")
	if !ok || e.Figure == "" || len(e.Table) != 1 {
		t.Fatalf("unexpected color entry: %+v", e)
	}
	if _, err := os.Stat(filepath.Join(dir, e.Figure)); err != nil {
		t.Fatalf("figure missing: %v", err)
	}
	md, err := os.ReadFile(filepath.Join(dir, "summary.md"))
	if err != nil {
		t.Fatalf("summary.md: %v", err)
	}
	if !strings.Contains(string(md), "## size") || !strings.Contains(string(md), "⚠") {
		t.Fatalf("summary.md incomplete:\n%s", md)
	}

	loaded, err := report.LoadReport(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.ID != r.ID || len(loaded.Columns) != 3 || loaded.RootDir() != dir {
		t.Fatalf("loaded report mismatch: %+v", loaded)
	}
}

func TestLoadReportMissing(t *testing.T) {
	if _, err := report.LoadReport(t.TempDir()); err == nil {
		t.Fatalf("expected error for missing manifest")
	}
}

func TestRunKeepsCollidingFigureNamesApart(t *testing.T) {
	df, err := dataset.FromRecords(
		[]string{"a b", "a_b", "A_B"},
		[][]string{{"x", "1", "p"}, {"y", "2", "q"}, {"x", "3", "p"}},
		0,
	)
	if err != nil {
		t.Fatalf("frame: %v", err)
	}
	opt := eda.DefaultOptions()
	opt.Kind = dataset.Discrete
	dir := filepath.Join(t.TempDir(), "run")
	r, err := report.Run(df, "names.csv", nil, opt, dir, "png")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	seen := map[string]bool{}
	for _, e := range r.Columns {
		if e.Figure == "" || seen[strings.ToLower(e.Figure)] {
			t.Fatalf("figure %q for %s missing or reused", e.Figure, e.Column)
		}
		seen[strings.ToLower(e.Figure)] = true
		if _, err := os.Stat(filepath.Join(dir, e.Figure)); err != nil {
			t.Fatalf("figure for %s: %v", e.Column, err)
		}
	}
	if want := "figures/A_B_3.png"; r.Columns[2].Figure != want {
		t.Fatalf("third figure = %s, want %s", r.Columns[2].Figure, want)
	}
}
