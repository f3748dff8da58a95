package eda

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/KaramelBytes/edaloom-cli/internal/plots"
	"github.com/KaramelBytes/edaloom-cli/internal/summary"
)

// minSMABuckets is the series length from which auto trend draws a moving average.
const minSMABuckets = 20

func isAuto(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "" || s == "auto"
}

// datetimeSettings are the resolved datetime options.
type datetimeSettings struct {
	freq      *Freq
	delta     *Freq
	breaks    *Freq
	tsType    plots.SeriesType
	trend     plots.Trend
	dateLabel string
	minBkt    int
	maxBkt    int
}

func (opt DatetimeOptions) resolve() (datetimeSettings, error) {
	var s datetimeSettings
	if !isAuto(opt.TSFreq) {
		f, err := ParseFreq(opt.TSFreq)
		if err != nil {
			return s, invalid("time series frequency", opt.TSFreq, err)
		}
		s.freq = &f
	}
	if !isAuto(opt.DeltaUnits) {
		f, err := ParseFreq(opt.DeltaUnits)
		if err != nil {
			return s, invalid("delta units", opt.DeltaUnits, err)
		}
		if f.Unit == UnitQuarter {
			return s, invalid("delta units", opt.DeltaUnits, fmt.Errorf("use year|month|week|day|hour|minute|second"))
		}
		s.delta = &f
	}
	if !isAuto(opt.DateBreaks) {
		f, err := ParseFreq(opt.DateBreaks)
		if err != nil {
			return s, invalid("date breaks", opt.DateBreaks, err)
		}
		s.breaks = &f
	}
	switch t := plots.SeriesType(strings.ToLower(opt.TSType)); t {
	case "":
		s.tsType = plots.SeriesLine
	case plots.SeriesLine, plots.SeriesPoint:
		s.tsType = t
	default:
		return s, invalid("time series type", opt.TSType, fmt.Errorf("use line|point"))
	}
	switch t := plots.Trend(strings.ToLower(opt.TrendLine)); t {
	case "":
		s.trend = plots.TrendAuto
	case plots.TrendAuto, plots.TrendNone, plots.TrendSMA, plots.TrendLinear:
		s.trend = t
	default:
		return s, invalid("trend line", opt.TrendLine, fmt.Errorf("use auto|none|sma|linear"))
	}
	if !isAuto(opt.DateLabels) {
		s.dateLabel = opt.DateLabels
	}
	s.minBkt, s.maxBkt = opt.MinBuckets, opt.MaxBuckets
	if s.minBkt == 0 {
		s.minBkt = DefaultMinBuckets
	}
	if s.maxBkt == 0 {
		s.maxBkt = DefaultMaxBuckets
	}
	if s.minBkt < 1 || s.maxBkt < s.minBkt {
		return s, invalid("auto frequency bucket range", fmt.Sprintf("%d-%d", s.minBkt, s.maxBkt), fmt.Errorf("need 1 <= min <= max"))
	}
	return s, nil
}

// DatetimeFrame is the derived data behind a datetime summary.
type DatetimeFrame struct {
	Sorted    []time.Time
	Calendar  CalendarFields
	Deltas    []float64
	DeltaUnit Freq
	Freq      Freq
	Buckets   []time.Time
	Counts    []float64
}

// deriveDatetime computes calendar fields, deltas and time buckets of the
// trimmed timestamps.
func deriveDatetime(sorted []time.Time, s datetimeSettings) (*DatetimeFrame, error) {
	d := &DatetimeFrame{Sorted: sorted, Calendar: Calendar(sorted)}
	raw := Deltas(sorted)
	d.DeltaUnit = AutoDeltaUnit(raw)
	if s.delta != nil {
		d.DeltaUnit = *s.delta
	}
	d.Deltas = InUnits(raw, d.DeltaUnit)
	if len(sorted) == 0 {
		return d, nil
	}
	d.Freq = AutoFreq(sorted[0], sorted[len(sorted)-1], s.minBkt, s.maxBkt)
	if s.freq != nil {
		d.Freq = *s.freq
	}
	var err error
	d.Buckets, d.Counts, err = Buckets(sorted, d.Freq)
	if err != nil {
		return nil, invalid("time series frequency", d.Freq.String(), err)
	}
	return d, nil
}

// Datetime summarizes a timestamp column: counts over time, gaps between
// successive observations and calendar breakdowns.
func Datetime(df dataframe.DataFrame, column string, opt DatetimeOptions) (*summary.Table, *plots.Figure, error) {
	if err := opt.validate(); err != nil {
		return nil, nil, err
	}
	settings, err := opt.resolve()
	if err != nil {
		return nil, nil, err
	}
	col, err := columnOf(df, column)
	if err != nil {
		return nil, nil, err
	}
	times, err := col.Times()
	if err != nil {
		return nil, nil, err
	}
	trim := summary.Trim{Lower: opt.LowerTrim, Upper: opt.UpperTrim}
	row, err := summary.DatetimeRow(column, times, col.Missing(), trim)
	if err != nil {
		return nil, nil, err
	}
	sorted, err := summary.TrimTimes(column, times, trim)
	if err != nil {
		return nil, nil, err
	}
	d, err := deriveDatetime(sorted, settings)
	if err != nil {
		return nil, nil, err
	}
	deltaRow, err := summary.ContinuousRow(fmt.Sprintf("Time Deltas (%s)", d.DeltaUnit.Label()), d.Deltas, 0, summary.Trim{})
	if err != nil {
		return nil, nil, err
	}
	table := &summary.Table{Rows: []summary.Row{row, deltaRow}}
	zap.L().Debug("datetime summary",
		zap.String("column", column),
		zap.String("freq", d.Freq.String()),
		zap.String("delta_unit", d.DeltaUnit.String()),
		zap.Int("buckets", len(d.Buckets)))

	fig, err := datetimeFigure(column, d, settings, opt)
	if err != nil {
		return nil, nil, err
	}
	if err := opt.show(column, table, fig); err != nil {
		return nil, nil, err
	}
	return table, fig, nil
}

func datetimeFigure(column string, d *DatetimeFrame, s datetimeSettings, opt DatetimeOptions) (*plots.Figure, error) {
	st := opt.style()
	fig := opt.newFigure(4, 2)

	trend := s.trend
	if trend == plots.TrendAuto {
		trend = plots.TrendNone
		if len(d.Buckets) >= minSMABuckets {
			trend = plots.TrendSMA
		}
	}
	tsOpt := plots.TimeSeriesOptions{
		Title:      fmt.Sprintf("Observations per %s", d.Freq),
		Label:      column,
		Type:       s.tsType,
		Trend:      trend,
		Layout:     plots.DefaultLayout(string(d.Freq.Unit)),
		DateLabels: s.dateLabel,
	}
	if s.breaks != nil && len(d.Sorted) > 0 {
		tsOpt.Ticks = Breaks(d.Sorted[0], d.Sorted[len(d.Sorted)-1], *s.breaks)
	}
	ts, err := plots.NewTimeSeriesPanel(d.Buckets, d.Counts, tsOpt, st)
	if err != nil {
		return nil, invalid("date labels", opt.DateLabels, err)
	}
	if err := fig.Place(0, 0, 1, 2, ts); err != nil {
		return nil, err
	}

	deltaLabel := cases.Title(language.English).String(d.DeltaUnit.Label()) + " between observations"
	hist, err := plots.Histogram(d.Deltas, plots.HistOptions{Label: deltaLabel}, st)
	if err != nil {
		return nil, err
	}
	box, err := plots.BoxPlot(d.Deltas, "", deltaLabel, st)
	if err != nil {
		return nil, err
	}
	if err := fig.Place(1, 0, 1, 1, plots.PlotPanel{Plot: hist}); err != nil {
		return nil, err
	}
	if err := fig.Place(1, 1, 1, 1, plots.PlotPanel{Plot: box}); err != nil {
		return nil, err
	}

	calendar := []struct {
		row, col    int
		label       string
		values      []string
		levels      []string
		labelCounts bool
	}{
		{2, 0, "Month", d.Calendar.Month, MonthLevels(), true},
		{2, 1, "Day of Month", d.Calendar.DayOfMonth, DayOfMonthLevels(), false},
		{3, 0, "Day of Week", d.Calendar.DayOfWeek, WeekdayLevels(), true},
		{3, 1, "Hour", d.Calendar.Hour, HourLevels(), false},
	}
	for _, c := range calendar {
		p, _, err := plots.CountPlot(c.values, plots.CountOptions{
			BarOptions: plots.BarOptions{
				Label:         c.label,
				Horizontal:    true,
				PercentAxis:   true,
				LabelCounts:   c.labelCounts,
				LabelFontSize: 10,
				AxisLength:    categoryAxis(fig, 1, 1, true),
			},
			Order:     plots.OrderAuto,
			Levels:    c.levels,
			MaxLevels: 35,
		}, st)
		if err != nil {
			return nil, err
		}
		if err := fig.Place(c.row, c.col, 1, 1, plots.PlotPanel{Plot: p}); err != nil {
			return nil, err
		}
	}
	return fig, nil
}
