package eda

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/go-gota/gota/dataframe"

	"github.com/KaramelBytes/edaloom-cli/internal/dataset"
	"github.com/KaramelBytes/edaloom-cli/internal/plots"
	"github.com/KaramelBytes/edaloom-cli/internal/summary"
	"github.com/KaramelBytes/edaloom-cli/internal/textproc"
)

// topLevels returns the k most frequent keys, ties broken alphabetically.
func topLevels(counts map[string]int, k int) []plots.LevelCount {
	out := make([]plots.LevelCount, 0, len(counts))
	for l, c := range counts {
		out = append(out, plots.LevelCount{Level: l, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Level < out[j].Level
	})
	if k > 0 && len(out) > k {
		out = out[:k]
	}
	return out
}

// Text summarizes a free-text column: document lengths, vocabulary and
// optionally the most frequent n-grams.
func Text(df dataframe.DataFrame, column string, opt TextOptions) (*summary.Table, *plots.Figure, error) {
	if err := opt.validate(); err != nil {
		return nil, nil, err
	}
	if opt.TopNgrams < 0 {
		return nil, nil, invalid("top n-grams", strconv.Itoa(opt.TopNgrams), fmt.Errorf("must be non-negative"))
	}
	col, err := columnOf(df, column)
	if err != nil {
		return nil, nil, err
	}
	table, err := summary.Build(col, dataset.Text, summary.Options{})
	if err != nil {
		return nil, nil, err
	}

	docs := col.Strings()
	tk := textproc.NewTokenizer(textproc.Options{
		LowerCase:   opt.LowerCase,
		RemoveStop:  opt.RemoveStop,
		RemovePunct: opt.RemovePunct,
	})
	corpus := tk.Tokenize(docs)
	table.Rows[0].Extras = append(table.Rows[0].Extras, summary.Extra{Name: "vocab_size", Value: float64(corpus.VocabSize())})

	tokenCounts := corpus.TokenCounts()
	charCounts := corpus.CharCounts()
	tokRow, err := summary.ContinuousRow("# Tokens / Document", tokenCounts, 0, summary.Trim{})
	if err != nil {
		return nil, nil, err
	}
	charRow, err := summary.ContinuousRow("# Characters / Document", charCounts, 0, summary.Trim{})
	if err != nil {
		return nil, nil, err
	}
	table.Rows = append(table.Rows, tokRow, charRow)

	st := opt.style()
	var fig *plots.Figure
	var histRow, histCol, charR, charC, boxR, boxC int
	if opt.ComputeNgrams {
		fig = opt.newFigure(3, 2)
		histRow, histCol, charR, charC, boxR, boxC = 0, 1, 1, 1, 2, 1
		for n := 1; n <= 3; n++ {
			grams := textproc.Top(textproc.Ngrams(corpus.Tokens, n), opt.TopNgrams)
			levels := make([]plots.LevelCount, len(grams))
			for i, g := range grams {
				levels[i] = plots.LevelCount{Level: g.Text, Count: g.Count}
			}
			p, err := plots.BarChart(levels, plots.BarOptions{
				Title:       fmt.Sprintf("Top %d %s", opt.TopNgrams, textproc.NgramName(n)),
				Horizontal:  true,
				PercentAxis: true,
				LabelCounts: true,
				Total:       len(docs),
				AxisLength:  categoryAxis(fig, 1, 1, true),
			}, st)
			if err != nil {
				return nil, nil, err
			}
			if err := fig.Place(n-1, 0, 1, 1, plots.PlotPanel{Plot: p}); err != nil {
				return nil, nil, err
			}
		}
	} else {
		fig = opt.newFigure(1, 3)
		histRow, histCol, charR, charC, boxR, boxC = 0, 0, 0, 1, 0, 2
	}

	total := 0
	for _, c := range tokenCounts {
		total += int(c)
	}
	fig.Title = fmt.Sprintf("%d tokens with a vocabulary of %d across %d documents", total, corpus.VocabSize(), len(docs))

	tokHist, err := plots.Histogram(tokenCounts, plots.HistOptions{Label: "# Tokens / Document"}, st)
	if err != nil {
		return nil, nil, err
	}
	charHist, err := plots.Histogram(charCounts, plots.HistOptions{Label: "# Characters / Document"}, st)
	if err != nil {
		return nil, nil, err
	}
	docBox, err := plots.BoxPlot(textproc.DocFrequencies(docs), "", "# Obs / Document", st)
	if err != nil {
		return nil, nil, err
	}
	for _, pl := range []struct {
		r, c  int
		panel plots.Panel
	}{
		{histRow, histCol, plots.PlotPanel{Plot: tokHist}},
		{charR, charC, plots.PlotPanel{Plot: charHist}},
		{boxR, boxC, plots.PlotPanel{Plot: docBox}},
	} {
		if err := fig.Place(pl.r, pl.c, 1, 1, pl.panel); err != nil {
			return nil, nil, err
		}
	}
	if err := opt.show(column, table, fig); err != nil {
		return nil, nil, err
	}
	return table, fig, nil
}
