package plots

import (
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// LevelCount is one bar of a categorical chart.
type LevelCount struct {
	Level string
	Count int
}

// BarOptions configure a categorical bar chart.
type BarOptions struct {
	Title string
	Label string // category axis label
	// Horizontal draws categories on the vertical axis, first level on top.
	Horizontal  bool
	PercentAxis bool
	LabelCounts bool
	// LabelFontSize in points; 0 infers from the number of bars.
	LabelFontSize float64
	// LabelRotation of category tick labels in degrees.
	LabelRotation float64
	// Total is the denominator for percentages; 0 sums the counts.
	Total int
	// AxisLength is the approximate length of the category axis, used to size bars.
	AxisLength vg.Length
}

// percentTicks labels count ticks with their share of a total.
type percentTicks struct {
	total float64
}

func (t percentTicks) Ticks(min, max float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	for i := range ticks {
		if ticks[i].Label == "" || t.total <= 0 {
			continue
		}
		ticks[i].Label = fmt.Sprintf("%s (%.0f%%)", ticks[i].Label, 100*ticks[i].Value/t.total)
	}
	return ticks
}

// countLabel formats a bar annotation as "count (pct%)".
func countLabel(count int, total float64) string {
	if total <= 0 {
		return strconv.Itoa(count)
	}
	return fmt.Sprintf("%d (%.1f%%)", count, 100*float64(count)/total)
}

func inferLabelSize(n int, axis vg.Length, base float64) float64 {
	if n == 0 {
		return base
	}
	perBar := axis.Points() / float64(n)
	return math.Max(6, math.Min(base*0.8, perBar*0.5))
}

// BarChart draws one bar per level in the given order.
func BarChart(levels []LevelCount, opt BarOptions, st Style) (*plot.Plot, error) {
	st = st.withDefaults()
	p := newPlot(opt.Title, st)
	if len(levels) == 0 {
		p.Title.Text = opt.Title + " (no data)"
		return p, nil
	}
	if opt.AxisLength <= 0 {
		opt.AxisLength = 4 * vg.Inch
	}
	total := float64(opt.Total)
	if total <= 0 {
		for _, l := range levels {
			total += float64(l.Count)
		}
	}

	// horizontal charts start at y=0 at the bottom, so reverse to read top-down
	ordered := levels
	if opt.Horizontal {
		ordered = make([]LevelCount, len(levels))
		for i, l := range levels {
			ordered[len(levels)-1-i] = l
		}
	}
	values := make(plotter.Values, len(ordered))
	names := make([]string, len(ordered))
	maxCount := 0.0
	for i, l := range ordered {
		values[i] = float64(l.Count)
		names[i] = l.Level
		maxCount = math.Max(maxCount, float64(l.Count))
	}

	width := opt.AxisLength * 0.7 / vg.Length(len(ordered))
	if width > vg.Points(40) {
		width = vg.Points(40)
	}
	if width < vg.Points(1) {
		width = vg.Points(1)
	}
	bars, err := plotter.NewBarChart(values, width)
	if err != nil {
		return nil, fmt.Errorf("bar chart: %w", err)
	}
	bars.Horizontal = opt.Horizontal
	bars.Color = st.BarColor()
	bars.LineStyle.Width = 0
	p.Add(bars)

	catAxis, countAxis := &p.X, &p.Y
	if opt.Horizontal {
		catAxis, countAxis = &p.Y, &p.X
		p.NominalY(names...)
	} else {
		p.NominalX(names...)
	}
	catAxis.Label.Text = opt.Label
	countAxis.Label.Text = "count"
	countAxis.Min = 0
	countAxis.Max = maxCount * 1.2
	if maxCount == 0 {
		countAxis.Max = 1
	}
	if opt.PercentAxis {
		countAxis.Tick.Marker = percentTicks{total: total}
	}
	if opt.LabelRotation != 0 {
		catAxis.Tick.Label.Rotation = opt.LabelRotation * math.Pi / 180
		if !opt.Horizontal {
			catAxis.Tick.Label.XAlign = draw.XRight
			catAxis.Tick.Label.YAlign = draw.YCenter
		}
	}

	if opt.LabelCounts {
		xys := make(plotter.XYs, len(ordered))
		texts := make([]string, len(ordered))
		for i, l := range ordered {
			if opt.Horizontal {
				xys[i] = plotter.XY{X: float64(l.Count), Y: float64(i)}
			} else {
				xys[i] = plotter.XY{X: float64(i), Y: float64(l.Count)}
			}
			texts[i] = countLabel(l.Count, total)
		}
		labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
		if err != nil {
			return nil, fmt.Errorf("bar labels: %w", err)
		}
		size := opt.LabelFontSize
		if size <= 0 {
			size = inferLabelSize(len(ordered), opt.AxisLength, st.FontSize)
		}
		for i := range labels.TextStyle {
			labels.TextStyle[i].Font.Size = vg.Points(size)
			if opt.Horizontal {
				labels.TextStyle[i].XAlign = draw.XLeft
				labels.TextStyle[i].YAlign = draw.YCenter
			} else {
				labels.TextStyle[i].XAlign = draw.XCenter
				labels.TextStyle[i].YAlign = draw.YBottom
			}
		}
		if opt.Horizontal {
			labels.Offset = vg.Point{X: vg.Points(3)}
			countAxis.Max = maxCount * 1.45
		} else {
			labels.Offset = vg.Point{Y: vg.Points(3)}
		}
		p.Add(labels)
	}
	return p, nil
}
