package eda

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot"

	"github.com/KaramelBytes/edaloom-cli/internal/dataset"
	"github.com/KaramelBytes/edaloom-cli/internal/plots"
	"github.com/KaramelBytes/edaloom-cli/internal/summary"
)

func frame(t *testing.T, name string, cells ...string) dataframe.DataFrame {
	t.Helper()
	rows := make([][]string, len(cells))
	for i, c := range cells {
		rows[i] = []string{c}
	}
	df, err := dataset.FromRecords([]string{name}, rows, 0)
	require.NoError(t, err)
	return df
}

func renders(t *testing.T, fig *plots.Figure) {
	t.Helper()
	png, err := fig.PNG()
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}

func TestDiscreteExample(t *testing.T) {
	df := frame(t, "x", "1", "2", "2", "3", "3", "3", "")
	before := df.Records()

	table, fig, err := Discrete(df, "x", DefaultDiscreteOptions())
	require.NoError(t, err)
	row := table.Rows[0]
	assert.Equal(t, 6, row.Counts.Observed)
	assert.Equal(t, 3, row.Counts.Unique)
	assert.Equal(t, 1, row.Counts.Missing)
	assert.InDelta(t, 14.2857, row.Counts.PercentMissing, 1e-3)
	assert.Equal(t, 7, row.Counts.Observed+row.Counts.Missing)
	assert.Equal(t, before, df.Records())
	renders(t, fig)
}

func TestDiscreteOptions(t *testing.T) {
	df := frame(t, "c", "a", "b", "c", "d", "e", "f", "g", "a", "")
	opt := DefaultDiscreteOptions()
	opt.IncludeMissing = true
	opt.MaxLevels = 4
	opt.Order = "sorted"
	_, fig, err := Discrete(df, "c", opt)
	require.NoError(t, err)
	renders(t, fig)

	opt.Order = "upside-down"
	_, _, err = Discrete(df, "c", opt)
	var oe *InvalidOptionError
	require.True(t, errors.As(err, &oe))
	assert.Equal(t, "order", oe.Option)

	_, _, err = Discrete(df, "missing", DefaultDiscreteOptions())
	var ce *dataset.ColumnNotFoundError
	assert.True(t, errors.As(err, &ce))
}

func horizontal(t *testing.T, fig *plots.Figure) bool {
	t.Helper()
	p, ok := fig.Plot(0, 0)
	require.True(t, ok)
	_, ok = p.Y.Tick.Marker.(plot.ConstantTicks)
	return ok
}

func TestDiscreteAutoFlip(t *testing.T) {
	five := frame(t, "c", "a", "b", "c", "d", "e", "a")
	six := frame(t, "c", "a", "b", "c", "d", "e", "f")
	opt := DefaultDiscreteOptions()

	_, fig, err := Discrete(five, "c", opt)
	require.NoError(t, err)
	assert.False(t, horizontal(t, fig))

	_, fig, err = Discrete(six, "c", opt)
	require.NoError(t, err)
	assert.True(t, horizontal(t, fig))

	off := false
	opt.FlipAxis = &off
	_, fig, err = Discrete(six, "c", opt)
	require.NoError(t, err)
	assert.False(t, horizontal(t, fig))

	on := true
	opt.FlipAxis = &on
	_, fig, err = Discrete(five, "c", opt)
	require.NoError(t, err)
	assert.True(t, horizontal(t, fig))

	withNA := frame(t, "c", "a", "b", "c", "d", "e", "")
	opt = DefaultDiscreteOptions()
	_, fig, err = Discrete(withNA, "c", opt)
	require.NoError(t, err)
	assert.False(t, horizontal(t, fig))
	opt.IncludeMissing = true
	_, fig, err = Discrete(withNA, "c", opt)
	require.NoError(t, err)
	assert.True(t, horizontal(t, fig))
}

func TestContinuousStatsAndTrim(t *testing.T) {
	cells := []string{"5", "1", "9", "3", "7", "2", "8", "4", "6", "10", ""}
	df := frame(t, "v", cells...)
	opt := DefaultContinuousOptions()
	table, fig, err := Continuous(df, "v", opt)
	require.NoError(t, err)
	n := table.Rows[0].Numeric
	require.NotNil(t, n)
	assert.True(t, n.Min <= n.Q25 && n.Q25 <= n.Median && n.Median <= n.Q75 && n.Q75 <= n.Max)
	assert.InDelta(t, n.Q75-n.Q25, n.IQR, 1e-12)
	assert.Equal(t, 10, table.Rows[0].Counts.Observed)
	renders(t, fig)

	opt.LowerTrim, opt.UpperTrim = 2, 3
	opt.Transform = "log"
	opt.KDE = true
	table, _, err = Continuous(df, "v", opt)
	require.NoError(t, err)
	row := table.Rows[0]
	assert.Equal(t, 5, row.Counts.Observed)
	assert.Equal(t, 1, row.Counts.Missing)
	assert.Equal(t, 3.0, row.Numeric.Min)
	assert.Equal(t, 7.0, row.Numeric.Max)
}

func TestContinuousRejectsInfinity(t *testing.T) {
	for _, inf := range []string{"inf", "-Infinity"} {
		df := frame(t, "v", "1", "2", "3", inf)
		_, _, err := Continuous(df, "v", DefaultContinuousOptions())
		var ce *dataset.CoercionError
		require.True(t, errors.As(err, &ce), "%s: %v", inf, err)
		assert.Equal(t, 3, ce.Row)
	}
}

func TestContinuousErrors(t *testing.T) {
	df := frame(t, "v", "1", "2", "3")
	opt := DefaultContinuousOptions()
	opt.LowerTrim, opt.UpperTrim = 2, 1
	_, _, err := Continuous(df, "v", opt)
	var te *summary.InvalidTrimError
	assert.True(t, errors.As(err, &te))

	opt = DefaultContinuousOptions()
	opt.Transform = "cube"
	_, _, err = Continuous(df, "v", opt)
	var ue *plots.UnsupportedTransformError
	assert.True(t, errors.As(err, &ue))

	neg := frame(t, "v", "-1", "2")
	opt = DefaultContinuousOptions()
	opt.Transform = "sqrt"
	_, _, err = Continuous(neg, "v", opt)
	assert.Error(t, err)
}

func dailyCells(n int) []string {
	base := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	out := make([]string, n)
	for i := range out {
		out[i] = base.Add(time.Duration(i) * 24 * time.Hour).Format(time.RFC3339)
	}
	return out
}

func TestDatetimeSummary(t *testing.T) {
	cells := append(dailyCells(30), "")
	df := frame(t, "ts", cells...)
	table, fig, err := Datetime(df, "ts", DefaultDatetimeOptions())
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, 30, table.Rows[0].Counts.Observed)
	assert.Equal(t, 1, table.Rows[0].Counts.Missing)
	assert.Equal(t, "Time Deltas (days)", table.Rows[1].Label)
	assert.InDelta(t, 1.0, table.Rows[1].Numeric.Median, 1e-9)
	assert.Equal(t, 29, table.Rows[1].Counts.Observed)
	assert.Equal(t, 4, fig.Rows)
	renders(t, fig)
}

func TestDatetimeCalendarFieldsSumToObserved(t *testing.T) {
	times, err := dataset.NewColumn("ts", append(dailyCells(45), "", "NA")).Times()
	require.NoError(t, err)
	cal := Calendar(times)
	for name, field := range map[string][]string{
		"month": cal.Month, "day": cal.DayOfMonth, "weekday": cal.DayOfWeek, "hour": cal.Hour,
	} {
		levels := plots.CountLevels(field, plots.CountOptions{})
		sum := 0
		for _, l := range levels {
			sum += l.Count
		}
		assert.Equal(t, 45, sum, name)
	}
	assert.Equal(t, "March", cal.Month[0])
	assert.Equal(t, "Friday", cal.DayOfWeek[0])
	assert.Equal(t, "9", cal.Hour[0])
}

func TestDatetimeOptions(t *testing.T) {
	df := frame(t, "ts", dailyCells(10)...)
	opt := DefaultDatetimeOptions()
	opt.TSFreq = "2D"
	opt.DeltaUnits = "hours"
	opt.TSType = "point"
	opt.TrendLine = "linear"
	opt.DateLabels = "%d %b"
	opt.DateBreaks = "3 days"
	opt.LowerTrim = 1
	table, fig, err := Datetime(df, "ts", opt)
	require.NoError(t, err)
	assert.Equal(t, "Time Deltas (hours)", table.Rows[1].Label)
	assert.InDelta(t, 24.0, table.Rows[1].Numeric.Mean, 1e-9)
	renders(t, fig)

	for _, bad := range []func(*DatetimeOptions){
		func(o *DatetimeOptions) { o.TSFreq = "fortnightly" },
		func(o *DatetimeOptions) { o.TSType = "bars" },
		func(o *DatetimeOptions) { o.TrendLine = "loess" },
	} {
		o := DefaultDatetimeOptions()
		bad(&o)
		_, _, err := Datetime(df, "ts", o)
		var oe *InvalidOptionError
		assert.True(t, errors.As(err, &oe), err)
	}
}

func TestParseFreq(t *testing.T) {
	cases := map[string]Freq{
		"D":        {1, UnitDay},
		"2W":       {2, UnitWeek},
		"W-SUN":    {1, UnitWeek},
		"MS":       {1, UnitMonth},
		"Q":        {1, UnitQuarter},
		"15min":    {15, UnitMinute},
		"H":        {1, UnitHour},
		"4 months": {4, UnitMonth},
		"1 year":   {1, UnitYear},
		"3 Days":   {3, UnitDay},
	}
	for in, want := range cases {
		got, err := ParseFreq(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, bad := range []string{"", "fortnight", "0D", "2 parsecs"} {
		_, err := ParseFreq(bad)
		assert.Error(t, err, bad)
	}
	assert.Equal(t, "2 weeks", Freq{2, UnitWeek}.String())
	assert.Equal(t, "days", Freq{1, UnitDay}.Label())
}

func TestAutoFreq(t *testing.T) {
	lo, hi := DefaultMinBuckets, DefaultMaxBuckets
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, UnitMonth, AutoFreq(start, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), lo, hi).Unit)
	assert.Equal(t, UnitDay, AutoFreq(start, start.AddDate(0, 0, 29), lo, hi).Unit)
	assert.Equal(t, UnitSecond, AutoFreq(start, start.Add(5*time.Second), lo, hi).Unit)
	assert.Equal(t, UnitYear, AutoFreq(start, start.AddDate(1000, 0, 0), lo, hi).Unit)

	// 30 days span 5 Monday weeks, enough once the floor drops to 3
	assert.Equal(t, UnitWeek, AutoFreq(start, start.AddDate(0, 0, 29), 3, hi).Unit)
}

func TestDatetimeBucketRange(t *testing.T) {
	df := frame(t, "ts", dailyCells(30)...)
	opt := DefaultDatetimeOptions()
	_, fig, err := Datetime(df, "ts", opt)
	require.NoError(t, err)
	ts, ok := fig.At(0, 0)
	require.True(t, ok)
	assert.Len(t, ts.(*plots.TimeSeriesPanel).Times, 30)

	opt.MinBuckets = 3
	_, fig, err = Datetime(df, "ts", opt)
	require.NoError(t, err)
	ts, _ = fig.At(0, 0)
	assert.Len(t, ts.(*plots.TimeSeriesPanel).Times, 5)

	opt.MinBuckets, opt.MaxBuckets = 50, 20
	_, _, err = Datetime(df, "ts", opt)
	var oe *InvalidOptionError
	assert.True(t, errors.As(err, &oe))
}

func TestDeltaUnitsRejectQuarter(t *testing.T) {
	df := frame(t, "ts", dailyCells(10)...)
	opt := DefaultDatetimeOptions()
	opt.DeltaUnits = "Q"
	_, _, err := Datetime(df, "ts", opt)
	var oe *InvalidOptionError
	require.True(t, errors.As(err, &oe))
	assert.Equal(t, "delta units", oe.Option)

	opt.DeltaUnits = "2W"
	table, _, err := Datetime(df, "ts", opt)
	require.NoError(t, err)
	assert.Equal(t, "Time Deltas (2 weeks)", table.Rows[1].Label)
}

func TestBucketsFillZeros(t *testing.T) {
	d := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	sorted := []time.Time{d, d.Add(time.Hour), d.AddDate(0, 0, 3)}
	starts, counts, err := Buckets(sorted, Freq{1, UnitDay})
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 0, 0, 1}, counts)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), starts[0])

	monday := Freq{1, UnitWeek}.Floor(time.Date(2024, 5, 5, 12, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Monday, monday.Weekday())
	assert.Equal(t, 29, monday.Day())
}

func TestAutoDeltaUnit(t *testing.T) {
	assert.Equal(t, UnitHour, AutoDeltaUnit([]time.Duration{2 * time.Hour, 3 * time.Hour}).Unit)
	assert.Equal(t, UnitDay, AutoDeltaUnit([]time.Duration{0, 3 * day, 3 * day}).Unit)
	assert.Equal(t, UnitMonth, AutoDeltaUnit([]time.Duration{40 * day}).Unit)
	assert.Equal(t, UnitSecond, AutoDeltaUnit(nil).Unit)
	assert.InDeltaSlice(t, []float64{0.5, 2}, InUnits([]time.Duration{12 * time.Hour, 48 * time.Hour}, Freq{1, UnitDay}), 1e-12)
}

func TestTextExample(t *testing.T) {
	df := frame(t, "doc", "a b", "a b c", "")
	opt := DefaultTextOptions()
	opt.RemoveStop = false
	opt.RemovePunct = false
	table, fig, err := Text(df, "doc", opt)
	require.NoError(t, err)
	require.Len(t, table.Rows, 3)
	vocab, ok := table.Rows[0].Extra("vocab_size")
	require.True(t, ok)
	assert.Equal(t, 3.0, vocab)
	assert.Equal(t, dataset.Text, table.Rows[0].Kind)
	assert.Equal(t, 1, table.Rows[0].Counts.Missing)

	tok, ok := table.Row("# Tokens / Document")
	require.True(t, ok)
	assert.Equal(t, 2.0, tok.Numeric.Min)
	assert.Equal(t, 3.0, tok.Numeric.Max)
	chars, ok := table.Row("# Characters / Document")
	require.True(t, ok)
	assert.Equal(t, 5.0, chars.Numeric.Max)
	assert.Equal(t, 3, fig.Cols)
	renders(t, fig)
}

func TestTextNgrams(t *testing.T) {
	df := frame(t, "doc", "the quick brown fox", "quick brown dogs run", "a quick brown fox!")
	opt := DefaultTextOptions()
	opt.ComputeNgrams = true
	opt.TopNgrams = 3
	_, fig, err := Text(df, "doc", opt)
	require.NoError(t, err)
	assert.Equal(t, 3, fig.Rows)
	_, ok := fig.Plot(2, 0)
	assert.True(t, ok)
	renders(t, fig)
}

func TestListCountsExample(t *testing.T) {
	singles, pairs := ListCounts([][]string{{"1", "2"}, {"2", "3"}})
	assert.Equal(t, map[string]int{"1": 1, "2": 2, "3": 1}, singles)
	assert.Equal(t, map[Pair]int{{"1", "2"}: 1, {"2", "3"}: 1}, pairs)

	_, pairs = ListCounts([][]string{{"b", "a"}, {"a", "b"}})
	assert.Equal(t, 2, pairs[Pair{"a", "b"}])
}

func TestListSummary(t *testing.T) {
	df := frame(t, "tags", "[1, 2]", "[2, 3]", `["x"]`, "a|b|c", "")
	table, fig, err := List(df, "tags", DefaultListOptions())
	require.NoError(t, err)
	row := table.Rows[0]
	assert.Equal(t, dataset.List, row.Kind)
	assert.Equal(t, 4, row.Counts.Observed)
	unique, _ := row.Extra("unique_entries")
	total, _ := row.Extra("total_entries")
	assert.Equal(t, 7.0, unique)
	assert.Equal(t, 8.0, total)
	per, ok := table.Row("# Entries / Observation")
	require.True(t, ok)
	assert.Equal(t, 2.0, per.Numeric.Mean)
	assert.True(t, strings.HasPrefix(fig.Title, "7 unique entries with 8 total entries across 4 observations"))
	renders(t, fig)
}

func TestSummarizeAutoDispatch(t *testing.T) {
	header := []string{"num", "cat", "ts"}
	var rows [][]string
	days := dailyCells(40)
	for i := 0; i < 40; i++ {
		rows = append(rows, []string{
			strconv.FormatFloat(float64(i)*1.5, 'f', -1, 64),
			[]string{"red", "green", "blue"}[i%3],
			days[i],
		})
	}
	df, err := dataset.FromRecords(header, rows, 0)
	require.NoError(t, err)

	want := map[string]dataset.Kind{"num": dataset.Continuous, "cat": dataset.Discrete, "ts": dataset.Datetime}
	for col, kind := range want {
		res, err := Summarize(df, col, DefaultOptions())
		require.NoError(t, err, col)
		assert.Equal(t, kind, res.Kind, col)
		assert.NotNil(t, res.Figure)
	}

	opt := DefaultOptions()
	opt.Kind = "matrix"
	_, err = Summarize(df, "num", opt)
	var ke *summary.UnsupportedKindError
	assert.True(t, errors.As(err, &ke))
}

type recordingDisplayer struct {
	labels []string
}

func (r *recordingDisplayer) Display(label string, _ *summary.Table, _ *plots.Figure) error {
	r.labels = append(r.labels, label)
	return nil
}

func TestInteractiveDisplay(t *testing.T) {
	df := frame(t, "x", "a", "b", "a")
	rec := &recordingDisplayer{}
	opt := DefaultDiscreteOptions()
	opt.Interaction = Interaction{Interactive: true, Displayer: rec}
	_, _, err := Discrete(df, "x", opt)
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, rec.labels)

	var out bytes.Buffer
	fig := plots.NewFigure(100, 100, 1, 1, plots.DefaultStyle())
	require.NoError(t, TerminalDisplayer{Out: &out}.Display("x", &summary.Table{}, fig))
	assert.Contains(t, out.String(), "Figure:")
}
