package eda

import (
	"github.com/go-gota/gota/dataframe"
	"go.uber.org/zap"

	"github.com/KaramelBytes/edaloom-cli/internal/dataset"
	"github.com/KaramelBytes/edaloom-cli/internal/plots"
	"github.com/KaramelBytes/edaloom-cli/internal/summary"
)

// Result is the summary of one column.
type Result struct {
	Column string
	Kind   dataset.Kind
	Table  *summary.Table
	Figure *plots.Figure
}

// Summarize routes column to the orchestrator of opt.Kind, inferring the
// kind from the data when it is auto.
func Summarize(df dataframe.DataFrame, column string, opt Options) (*Result, error) {
	kind := opt.Kind
	if kind == dataset.Auto || kind == "" {
		col, err := columnOf(df, column)
		if err != nil {
			return nil, err
		}
		kind = dataset.Infer(col).Kind
		zap.L().Debug("inferred column kind", zap.String("column", column), zap.String("kind", string(kind)))
	}
	var (
		t   *summary.Table
		fig *plots.Figure
		err error
	)
	switch kind {
	case dataset.Discrete:
		t, fig, err = Discrete(df, column, opt.Discrete)
	case dataset.Continuous:
		t, fig, err = Continuous(df, column, opt.Continuous)
	case dataset.Datetime:
		t, fig, err = Datetime(df, column, opt.Datetime)
	case dataset.Text:
		t, fig, err = Text(df, column, opt.Text)
	case dataset.List:
		t, fig, err = List(df, column, opt.List)
	default:
		return nil, &summary.UnsupportedKindError{Kind: kind}
	}
	if err != nil {
		return nil, err
	}
	return &Result{Column: column, Kind: kind, Table: t, Figure: fig}, nil
}
