// Package report runs summaries over many columns and persists them as a
// directory of figures plus a JSON manifest.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/KaramelBytes/edaloom-cli/internal/eda"
	"github.com/KaramelBytes/edaloom-cli/internal/utils"
)

const (
	manifestFileName = "report.json"
	summaryFileName  = "summary.md"
	figuresDir       = "figures"
)

// Report is one summary run persisted on disk.
type Report struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	Columns   []*Entry  `json:"columns"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Not serialized: on-disk location of the report.json
	rootDir string `json:"-"`
	names   utils.FileNames
}

// Entry is the outcome for a single column.
type Entry struct {
	Column   string           `json:"column"`
	Kind     string           `json:"kind,omitempty"`
	Figure   string           `json:"figure,omitempty"`
	Table    []map[string]any `json:"table,omitempty"`
	Markdown string           `json:"table_markdown,omitempty"`
	Error    string           `json:"error,omitempty"`
}

// NewReport constructs an in-memory report. Call Save() to persist.
func NewReport(source, rootDir string) *Report {
	now := time.Now()
	return &Report{
		ID:        uuid.NewString(),
		Source:    source,
		CreatedAt: now,
		UpdatedAt: now,
		rootDir:   rootDir,
	}
}

// LoadReport loads a report.json from the provided directory.
func LoadReport(dir string) (*Report, error) {
	manifest := filepath.Join(dir, manifestFileName)
	b, err := os.ReadFile(manifest)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("report not found at %s: %w", manifest, err)
		}
		return nil, fmt.Errorf("read report: %w", err)
	}
	var r Report
	if err := json.Unmarshal(b, &r); err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}
	r.rootDir = dir
	for _, e := range r.Columns {
		if e.Figure != "" {
			base := path.Base(e.Figure)
			r.names.Reserve(strings.TrimSuffix(base, path.Ext(base)))
		}
	}
	return &r, nil
}

// RootDir returns the on-disk report directory path.
func (r *Report) RootDir() string { return r.rootDir }

// Add saves the figure of res under figures/ and records the entry.
func (r *Report) Add(res *eda.Result, figFormat string) error {
	if r.rootDir == "" {
		return errors.New("report root directory not set")
	}
	if figFormat == "" {
		figFormat = "png"
	}
	e := &Entry{Column: res.Column, Kind: string(res.Kind)}
	if res.Table != nil {
		e.Table = res.Table.Records()
		e.Markdown = res.Table.Markdown()
	}
	if res.Figure != nil {
		rel := filepath.Join(figuresDir, r.names.Next(res.Column)+"."+strings.TrimPrefix(figFormat, "."))
		if err := res.Figure.Save(filepath.Join(r.rootDir, rel)); err != nil {
			return fmt.Errorf("save figure for %s: %w", res.Column, err)
		}
		e.Figure = filepath.ToSlash(rel)
	}
	r.Columns = append(r.Columns, e)
	r.UpdatedAt = time.Now()
	return nil
}

// AddFailure records a column whose summary failed.
func (r *Report) AddFailure(column string, err error) {
	r.Columns = append(r.Columns, &Entry{Column: column, Error: err.Error()})
	r.UpdatedAt = time.Now()
}

// Entry returns the entry for column.
func (r *Report) Entry(column string) (*Entry, bool) {
	for _, e := range r.Columns {
		if e.Column == column {
			return e, true
		}
	}
	return nil, false
}

// Failed counts the entries that carry an error.
func (r *Report) Failed() int {
	n := 0
	for _, e := range r.Columns {
		if e.Error != "" {
			n++
		}
	}
	return n
}

// Markdown renders the report overview with one section per column.
func (r *Report) Markdown() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Summary of %s\n\n", filepath.Base(r.Source))
	fmt.Fprintf(&sb, "Report `%s`, generated %s.\n\n", r.ID, r.CreatedAt.Format(time.RFC3339))
	for _, e := range r.Columns {
		fmt.Fprintf(&sb, "## %s\n\n", e.Column)
		if e.Error != "" {
			fmt.Fprintf(&sb, "⚠ %s\n\n", e.Error)
			continue
		}
		fmt.Fprintf(&sb, "Type: %s\n\n", e.Kind)
		if e.Markdown != "" {
			sb.WriteString(e.Markdown)
			sb.WriteString("\n\n")
		}
		if e.Figure != "" {
			fmt.Fprintf(&sb, "![%s](%s)\n\n", e.Column, e.Figure)
		}
	}
	return sb.String()
}

// Save writes report.json and summary.md using atomic writes.
func (r *Report) Save() error {
	if r.rootDir == "" {
		return errors.New("report root directory not set")
	}
	if err := utils.EnsureDir(r.rootDir); err != nil {
		return fmt.Errorf("ensure dir: %w", err)
	}
	r.UpdatedAt = time.Now()
	data, err := utils.PrettyJSON(r)
	if err != nil {
		return err
	}
	if err := utils.SafeWriteFile(filepath.Join(r.rootDir, manifestFileName), data); err != nil {
		return err
	}
	return utils.SafeWriteFile(filepath.Join(r.rootDir, summaryFileName), []byte(r.Markdown()))
}

// Run summarizes each column of df into dir. A failing column is recorded
// and does not stop the run.
func Run(df dataframe.DataFrame, source string, columns []string, opt eda.Options, dir, figFormat string) (*Report, error) {
	if len(columns) == 0 {
		columns = df.Names()
	}
	r := NewReport(source, dir)
	for _, c := range columns {
		res, err := eda.Summarize(df, c, opt)
		if err != nil {
			zap.L().Warn("column summary failed", zap.String("column", c), zap.Error(err))
			r.AddFailure(c, err)
			continue
		}
		if err := r.Add(res, figFormat); err != nil {
			return nil, err
		}
		zap.L().Debug("column summarized", zap.String("column", c), zap.String("kind", string(res.Kind)))
	}
	if err := r.Save(); err != nil {
		return nil, err
	}
	return r, nil
}
