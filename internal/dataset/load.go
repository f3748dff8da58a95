package dataset

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"go.uber.org/zap"
)

// LoadOptions controls how a dataset file is read.
type LoadOptions struct {
	// Delimiter for CSV. If 0, picked from the file extension.
	Delimiter rune
	// MaxRows limits rows loaded; 0 means unlimited.
	MaxRows int
	// XLSX sheet selection. SheetIndex is 1-based and used when SheetName is empty.
	SheetName  string
	SheetIndex int
	// SQLite source: Query wins over Table.
	Table string
	Query string
}

// Loader reads a dataset file into a dataframe.
type Loader interface {
	CanLoad(path string) bool
	Load(path string, opt LoadOptions) (dataframe.DataFrame, error)
}

var registry []Loader

// Register adds a loader implementation to the registry.
func Register(l Loader) {
	registry = append(registry, l)
}

// Load selects a loader based on the file name and reads the dataset.
func Load(path string, opt LoadOptions) (dataframe.DataFrame, error) {
	for _, l := range registry {
		if !l.CanLoad(path) {
			continue
		}
		df, err := l.Load(path, opt)
		if err != nil {
			return dataframe.DataFrame{}, err
		}
		zap.L().Debug("dataset loaded",
			zap.String("path", path),
			zap.Int("rows", df.Nrow()),
			zap.Int("cols", df.Ncol()))
		return df, nil
	}
	return dataframe.DataFrame{}, &UnsupportedFormatError{Path: path}
}

// FromRecords builds a string-typed dataframe from a header row and data rows.
// Short rows are padded and long rows truncated to the header width.
func FromRecords(header []string, rows [][]string, maxRows int) (dataframe.DataFrame, error) {
	ncol := len(header)
	if ncol == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("dataset has no header row")
	}
	if maxRows > 0 && len(rows) > maxRows {
		zap.L().Warn("dataset truncated", zap.Int("rows", len(rows)), zap.Int("max_rows", maxRows))
		rows = rows[:maxRows]
	}
	records := make([][]string, 0, len(rows)+1)
	records = append(records, header)
	for _, rec := range rows {
		if len(rec) != ncol {
			tmp := make([]string, ncol)
			copy(tmp, rec)
			rec = tmp
		}
		records = append(records, rec)
	}
	types := make(map[string]series.Type, ncol)
	for _, h := range header {
		types[h] = series.String
	}
	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.WithTypes(types),
		dataframe.NaNValues(NAValues),
	)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("build dataframe: %w", df.Err)
	}
	return df, nil
}

func init() {
	Register(csvLoader{})
	Register(xlsxLoader{})
	Register(sqliteLoader{})
}
