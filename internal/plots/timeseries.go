package plots

import (
	"bytes"
	"fmt"
	"image/color"
	"image/png"
	"math"
	"strings"
	"time"

	"github.com/lestrrat-go/strftime"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/plot/vg/draw"
)

// SeriesType selects how a time series is drawn.
type SeriesType string

const (
	SeriesLine  SeriesType = "line"
	SeriesPoint SeriesType = "point"
)

// Trend selects an overlay on a time series.
type Trend string

const (
	TrendAuto   Trend = "auto"
	TrendNone   Trend = "none"
	TrendSMA    Trend = "sma"
	TrendLinear Trend = "linear"
)

// TimeSeriesOptions configure a TimeSeriesPanel.
type TimeSeriesOptions struct {
	Title string
	Label string
	Type  SeriesType
	Trend Trend // auto is resolved by the caller
	// SMAPeriod is the window of the moving average; 0 picks one from the length.
	SMAPeriod int
	// Layout is the Go time layout of tick labels; DateLabels (strftime) overrides it.
	Layout     string
	DateLabels string
	// Ticks fixes the tick positions; empty lets the chart choose.
	Ticks []time.Time
}

// TimeSeriesPanel draws bucketed counts over time.
type TimeSeriesPanel struct {
	Times  []time.Time
	Counts []float64
	Opt    TimeSeriesOptions
	Style  Style

	label func(time.Time) string
}

// NewTimeSeriesPanel validates the inputs of a time series panel.
func NewTimeSeriesPanel(times []time.Time, counts []float64, opt TimeSeriesOptions, st Style) (*TimeSeriesPanel, error) {
	if len(times) != len(counts) {
		return nil, fmt.Errorf("time series has %d times and %d counts", len(times), len(counts))
	}
	if opt.Type == "" {
		opt.Type = SeriesLine
	}
	if opt.Trend == "" || opt.Trend == TrendAuto {
		opt.Trend = TrendNone
	}
	label := func(t time.Time) string { return t.Format(opt.Layout) }
	if opt.Layout == "" {
		label = func(t time.Time) string { return t.Format("2006-01-02") }
	}
	if opt.DateLabels != "" {
		f, err := strftime.New(opt.DateLabels)
		if err != nil {
			return nil, fmt.Errorf("date labels %q: %w", opt.DateLabels, err)
		}
		label = f.FormatString
	}
	return &TimeSeriesPanel{Times: times, Counts: counts, Opt: opt, Style: st.withDefaults(), label: label}, nil
}

func toDrawing(c color.RGBA) drawing.Color {
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

func timeValue(t time.Time) float64 { return float64(t.UnixNano()) }

// location is the zone tick labels are written in, that of the first timestamp.
func (p *TimeSeriesPanel) location() *time.Location {
	if len(p.Times) == 0 {
		return time.UTC
	}
	return p.Times[0].Location()
}

// Chart builds the go-chart chart for the panel at the given pixel size.
func (p *TimeSeriesPanel) Chart(width, height int, dpi float64) chart.Chart {
	times, counts := p.Times, p.Counts
	if len(times) == 1 {
		// a single bucket has no x range
		times = []time.Time{times[0].Add(-time.Second), times[0], times[0].Add(time.Second)}
		counts = []float64{0, counts[0], 0}
	}
	fs := p.Style.FontSize * 0.8
	series := chart.TimeSeries{
		Name:    p.Opt.Label,
		XValues: times,
		YValues: counts,
		Style: chart.Style{
			StrokeColor: toDrawing(p.Style.BarColor()),
			StrokeWidth: 2,
		},
	}
	if p.Opt.Type == SeriesPoint {
		series.Style = chart.Style{
			StrokeWidth: chart.Disabled,
			DotWidth:    3,
			DotColor:    toDrawing(p.Style.BarColor()),
		}
	}
	all := []chart.Series{series}
	trendStyle := chart.Style{
		StrokeColor:     toDrawing(p.Style.AccentColor()),
		StrokeWidth:     2,
		StrokeDashArray: []float64{5, 5},
	}
	switch p.Opt.Trend {
	case TrendSMA:
		period := p.Opt.SMAPeriod
		if period <= 0 {
			period = int(math.Max(2, math.Round(float64(len(times))/10)))
		}
		all = append(all, &chart.SMASeries{Name: "moving average", InnerSeries: series, Period: period, Style: trendStyle})
	case TrendLinear:
		all = append(all, &chart.LinearRegressionSeries{Name: "linear trend", InnerSeries: series, Style: trendStyle})
	}

	maxCount := 0.0
	for _, c := range counts {
		maxCount = math.Max(maxCount, c)
	}
	if maxCount == 0 {
		maxCount = 1
	}
	loc := p.location()
	xaxis := chart.XAxis{
		Name:  p.Opt.Label,
		Style: chart.Style{FontSize: fs},
		ValueFormatter: func(v interface{}) string {
			if f, ok := v.(float64); ok {
				return p.label(time.Unix(0, int64(f)).In(loc))
			}
			return ""
		},
	}
	if len(p.Opt.Ticks) > 0 {
		for _, t := range p.Opt.Ticks {
			xaxis.Ticks = append(xaxis.Ticks, chart.Tick{Value: timeValue(t), Label: p.label(t.In(loc))})
		}
	}
	return chart.Chart{
		Title:      p.Opt.Title,
		TitleStyle: chart.Style{FontSize: p.Style.FontSize},
		Width:      width,
		Height:     height,
		DPI:        dpi,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10}},
		XAxis:      xaxis,
		YAxis: chart.YAxis{
			Name:  "count",
			Style: chart.Style{FontSize: fs},
			Range: &chart.ContinuousRange{Min: 0, Max: maxCount * 1.1},
		},
		Series: all,
	}
}

// Draw renders the chart to an image and places it on c.
func (p *TimeSeriesPanel) Draw(c draw.Canvas, dpi float64) error {
	w := int(math.Round((c.Max.X - c.Min.X).Dots(dpi)))
	h := int(math.Round((c.Max.Y - c.Min.Y).Dots(dpi)))
	if w < 10 || h < 10 {
		return fmt.Errorf("time series panel too small: %dx%d px", w, h)
	}
	if len(p.Times) == 0 {
		return nil
	}
	ch := p.Chart(w, h, dpi)
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return fmt.Errorf("render time series: %w", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return fmt.Errorf("decode time series: %w", err)
	}
	c.DrawImage(c.Rectangle, img)
	return nil
}

// DefaultLayout returns a tick layout suited to a bucket unit name.
func DefaultLayout(unit string) string {
	switch strings.ToLower(unit) {
	case "year":
		return "2006"
	case "quarter", "month":
		return "2006-01"
	case "hour", "minute":
		return "01-02 15:04"
	case "second":
		return "15:04:05"
	}
	return "2006-01-02"
}
