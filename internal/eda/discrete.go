// Package eda builds univariate summaries: a statistics table plus a figure
// for one column of a dataset, chosen by the column's semantic kind.
package eda

import (
	"fmt"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/plot/vg"

	"github.com/KaramelBytes/edaloom-cli/internal/dataset"
	"github.com/KaramelBytes/edaloom-cli/internal/plots"
	"github.com/KaramelBytes/edaloom-cli/internal/summary"
)

// MissingLevel labels missing values when they are plotted.
const MissingLevel = "NA"

// columnOf extracts name from a private copy of df.
func columnOf(df dataframe.DataFrame, name string) (dataset.Column, error) {
	cp := df.Copy()
	if cp.Err != nil {
		return dataset.Column{}, cp.Err
	}
	return dataset.ColumnOf(cp, name)
}

// categoryAxis is the length available to the categories of a panel.
func categoryAxis(fig *plots.Figure, rowSpan, colSpan int, horizontal bool) vg.Length {
	if horizontal {
		return fig.Height * vg.Length(rowSpan) / vg.Length(fig.Rows)
	}
	return fig.Width * vg.Length(colSpan) / vg.Length(fig.Cols)
}

// Discrete summarizes a categorical column with a count plot.
func Discrete(df dataframe.DataFrame, column string, opt DiscreteOptions) (*summary.Table, *plots.Figure, error) {
	if err := opt.validate(); err != nil {
		return nil, nil, err
	}
	order, err := plots.ParseOrder(opt.Order)
	if err != nil {
		return nil, nil, invalid("order", opt.Order, err)
	}
	if opt.MaxLevels < 0 {
		return nil, nil, invalid("max levels", strconv.Itoa(opt.MaxLevels), fmt.Errorf("must be non-negative"))
	}
	col, err := columnOf(df, column)
	if err != nil {
		return nil, nil, err
	}
	table, err := summary.Build(col, dataset.Discrete, summary.Options{})
	if err != nil {
		return nil, nil, err
	}

	values := col.Strings()
	levels := table.Rows[0].Counts.Unique
	if opt.IncludeMissing && col.Missing() > 0 {
		for i := 0; i < col.Missing(); i++ {
			values = append(values, MissingLevel)
		}
		levels++
	}
	flip := plots.ShouldFlip(levels)
	if opt.FlipAxis != nil {
		flip = *opt.FlipAxis
	}

	fig := opt.newFigure(1, 1)
	p, _, err := plots.CountPlot(values, plots.CountOptions{
		BarOptions: plots.BarOptions{
			Label:         column,
			Horizontal:    flip,
			PercentAxis:   opt.PercentAxis,
			LabelCounts:   opt.LabelCounts,
			LabelFontSize: opt.LabelFontSize,
			LabelRotation: opt.LabelRotation,
			AxisLength:    categoryAxis(fig, 1, 1, flip),
		},
		Order:     order,
		Levels:    opt.Levels,
		MaxLevels: opt.MaxLevels,
		Seed:      opt.Seed,
	}, opt.style())
	if err != nil {
		return nil, nil, err
	}
	if err := fig.Place(0, 0, 1, 1, plots.PlotPanel{Plot: p}); err != nil {
		return nil, nil, err
	}
	if err := opt.show(column, table, fig); err != nil {
		return nil, nil, err
	}
	return table, fig, nil
}
