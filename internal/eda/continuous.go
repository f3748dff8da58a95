package eda

import (
	"fmt"
	"strconv"

	"github.com/go-gota/gota/dataframe"

	"github.com/KaramelBytes/edaloom-cli/internal/dataset"
	"github.com/KaramelBytes/edaloom-cli/internal/plots"
	"github.com/KaramelBytes/edaloom-cli/internal/summary"
)

// Continuous summarizes a numeric column with a histogram above a box plot.
// Both charts use the trimmed, transformed values.
func Continuous(df dataframe.DataFrame, column string, opt ContinuousOptions) (*summary.Table, *plots.Figure, error) {
	if err := opt.validate(); err != nil {
		return nil, nil, err
	}
	if opt.Bins < 0 {
		return nil, nil, invalid("bins", strconv.Itoa(opt.Bins), fmt.Errorf("must be non-negative"))
	}
	transform, err := plots.ParseTransform(opt.Transform)
	if err != nil {
		return nil, nil, err
	}
	col, err := columnOf(df, column)
	if err != nil {
		return nil, nil, err
	}
	trim := summary.Trim{Lower: opt.LowerTrim, Upper: opt.UpperTrim}
	table, err := summary.Build(col, dataset.Continuous, summary.Options{Trim: trim, NumberFormat: opt.NumberFormat})
	if err != nil {
		return nil, nil, err
	}

	vals, err := col.Numbers(opt.NumberFormat)
	if err != nil {
		return nil, nil, err
	}
	trimmed, err := summary.TrimFloats(column, vals, trim)
	if err != nil {
		return nil, nil, err
	}
	plotted, err := plots.ApplyTransform(trimmed, transform)
	if err != nil {
		return nil, nil, err
	}

	label := transform.AxisLabel(column)
	st := opt.style()
	hist, err := plots.Histogram(plotted, plots.HistOptions{Label: label, Bins: opt.Bins, KDE: opt.KDE}, st)
	if err != nil {
		return nil, nil, err
	}
	box, err := plots.BoxPlot(plotted, "", label, st)
	if err != nil {
		return nil, nil, err
	}
	fig := opt.newFigure(2, 1)
	if err := fig.Place(0, 0, 1, 1, plots.PlotPanel{Plot: hist}); err != nil {
		return nil, nil, err
	}
	if err := fig.Place(1, 0, 1, 1, plots.PlotPanel{Plot: box}); err != nil {
		return nil, nil, err
	}
	if err := opt.show(column, table, fig); err != nil {
		return nil, nil, err
	}
	return table, fig, nil
}
