package eda

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"

	"github.com/KaramelBytes/edaloom-cli/internal/dataset"
	"github.com/KaramelBytes/edaloom-cli/internal/plots"
	"github.com/KaramelBytes/edaloom-cli/internal/summary"
)

// Pair is an unordered pair of list entries with A <= B.
type Pair struct {
	A, B string
}

// NewPair orders a and b.
func NewPair(a, b string) Pair {
	if b < a {
		a, b = b, a
	}
	return Pair{A: a, B: b}
}

func (p Pair) String() string { return "(" + p.A + ", " + p.B + ")" }

// ListCounts counts single entries and the unordered pairs formed by every
// two positions within each list.
func ListCounts(lists [][]string) (map[string]int, map[Pair]int) {
	singles := map[string]int{}
	pairs := map[Pair]int{}
	for _, l := range lists {
		for i, a := range l {
			singles[a]++
			for _, b := range l[i+1:] {
				pairs[NewPair(a, b)]++
			}
		}
	}
	return singles, pairs
}

// listFrequencies returns how many observations share each distinct list.
func listFrequencies(lists [][]string) []float64 {
	counts := map[string]int{}
	var order []string
	for _, l := range lists {
		k := strings.Join(l, "\x1f")
		if _, ok := counts[k]; !ok {
			order = append(order, k)
		}
		counts[k]++
	}
	out := make([]float64, len(order))
	for i, k := range order {
		out[i] = float64(counts[k])
	}
	return out
}

// List summarizes a column whose cells hold lists of entries.
func List(df dataframe.DataFrame, column string, opt ListOptions) (*summary.Table, *plots.Figure, error) {
	if err := opt.validate(); err != nil {
		return nil, nil, err
	}
	if opt.TopEntries < 0 {
		return nil, nil, invalid("top entries", strconv.Itoa(opt.TopEntries), fmt.Errorf("must be non-negative"))
	}
	col, err := columnOf(df, column)
	if err != nil {
		return nil, nil, err
	}
	table, err := summary.Build(col, dataset.List, summary.Options{})
	if err != nil {
		return nil, nil, err
	}

	lists := col.Lists()
	singles, pairs := ListCounts(lists)
	sizes := make([]float64, len(lists))
	total, maxSize := 0, 0
	for i, l := range lists {
		sizes[i] = float64(len(l))
		total += len(l)
		if len(l) > maxSize {
			maxSize = len(l)
		}
	}
	table.Rows[0].Extras = append(table.Rows[0].Extras,
		summary.Extra{Name: "unique_entries", Value: float64(len(singles))},
		summary.Extra{Name: "total_entries", Value: float64(total)},
	)
	sizeRow, err := summary.ContinuousRow("# Entries / Observation", sizes, 0, summary.Trim{})
	if err != nil {
		return nil, nil, err
	}
	table.Rows = append(table.Rows, sizeRow)

	st := opt.style()
	fig := opt.newFigure(3, 2)
	fig.Title = fmt.Sprintf("%d unique entries with %d total entries across %d observations", len(singles), total, len(lists))

	pairCounts := make(map[string]int, len(pairs))
	for p, c := range pairs {
		pairCounts[p.String()] = c
	}
	for i, bars := range []struct {
		label  string
		levels []plots.LevelCount
	}{
		{"Most Common Entries", topLevels(singles, opt.TopEntries)},
		{"Most Common Entry Pairs", topLevels(pairCounts, opt.TopEntries)},
	} {
		p, err := plots.BarChart(bars.levels, plots.BarOptions{
			Label:       bars.label,
			Horizontal:  true,
			PercentAxis: true,
			LabelCounts: true,
			Total:       len(lists),
			AxisLength:  categoryAxis(fig, 1, 2, true),
		}, st)
		if err != nil {
			return nil, nil, err
		}
		p.X.Label.Text = "# Observations"
		if err := fig.Place(i, 0, 1, 2, plots.PlotPanel{Plot: p}); err != nil {
			return nil, nil, err
		}
	}

	sizeLevels := make([]string, 0, maxSize+1)
	sizeValues := make([]string, len(lists))
	for n := 0; n <= maxSize; n++ {
		sizeLevels = append(sizeLevels, strconv.Itoa(n))
	}
	for i, l := range lists {
		sizeValues[i] = strconv.Itoa(len(l))
	}
	sizePlot, _, err := plots.CountPlot(sizeValues, plots.CountOptions{
		BarOptions: plots.BarOptions{
			Label:       "# Entries / Observation",
			PercentAxis: true,
			AxisLength:  categoryAxis(fig, 1, 1, false),
		},
		Order:  plots.OrderAuto,
		Levels: sizeLevels,
	}, st)
	if err != nil {
		return nil, nil, err
	}
	box, err := plots.BoxPlot(listFrequencies(lists), "", "# Observations / Unique List", st)
	if err != nil {
		return nil, nil, err
	}
	if err := fig.Place(2, 0, 1, 1, plots.PlotPanel{Plot: sizePlot}); err != nil {
		return nil, nil, err
	}
	if err := fig.Place(2, 1, 1, 1, plots.PlotPanel{Plot: box}); err != nil {
		return nil, nil, err
	}
	if err := opt.show(column, table, fig); err != nil {
		return nil, nil, err
	}
	return table, fig, nil
}
