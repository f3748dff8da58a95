package eda

import (
	"fmt"

	"gonum.org/v1/plot/vg"

	"github.com/KaramelBytes/edaloom-cli/internal/dataset"
	"github.com/KaramelBytes/edaloom-cli/internal/plots"
	"github.com/KaramelBytes/edaloom-cli/internal/summary"
)

// FigureOptions are shared by every orchestrator. Sizes are in inches and
// FigHeight is per row of panels where a figure stacks several rows.
type FigureOptions struct {
	FigWidth  float64
	FigHeight float64
	FontSize  float64
	Palette   string
	DPI       int
}

func (f FigureOptions) style() plots.Style {
	return plots.Style{Palette: f.Palette, FontSize: f.FontSize, DPI: f.DPI}
}

func (f FigureOptions) validate() error {
	if f.FigWidth <= 0 || f.FigHeight <= 0 {
		return invalid("figure size", fmt.Sprintf("%gx%g", f.FigWidth, f.FigHeight), fmt.Errorf("width and height must be positive"))
	}
	if err := f.style().Validate(); err != nil {
		return invalid("style", f.Palette, err)
	}
	return nil
}

// newFigure sizes a rows x cols figure with FigHeight per row.
func (f FigureOptions) newFigure(rows, cols int) *plots.Figure {
	w := vg.Length(f.FigWidth) * vg.Inch
	h := vg.Length(f.FigHeight*float64(rows)) * vg.Inch
	return plots.NewFigure(w, h, rows, cols, f.style())
}

// Interaction controls immediate display of results.
type Interaction struct {
	Interactive bool
	// Displayer shows the results; nil uses the terminal displayer.
	Displayer Displayer
}

func (i Interaction) show(label string, t *summary.Table, fig *plots.Figure) error {
	if !i.Interactive {
		return nil
	}
	d := i.Displayer
	if d == nil {
		d = TerminalDisplayer{}
	}
	return d.Display(label, t, fig)
}

// DiscreteOptions configure Discrete.
type DiscreteOptions struct {
	FigureOptions
	Interaction
	// Order is auto, descending, ascending, sorted or random.
	Order string
	// Levels fixes the level domain and order.
	Levels        []string
	MaxLevels     int
	LabelRotation float64
	LabelFontSize float64
	// FlipAxis nil flips when there are more than five levels.
	FlipAxis       *bool
	PercentAxis    bool
	LabelCounts    bool
	IncludeMissing bool
	Seed           int64
}

// DefaultDiscreteOptions returns the defaults for discrete summaries.
func DefaultDiscreteOptions() DiscreteOptions {
	return DiscreteOptions{
		FigureOptions: FigureOptions{FigWidth: 10, FigHeight: 5, FontSize: 15},
		Order:         string(plots.OrderAuto),
		MaxLevels:     30,
		PercentAxis:   true,
		LabelCounts:   true,
	}
}

// ContinuousOptions configure Continuous.
type ContinuousOptions struct {
	FigureOptions
	Interaction
	Bins      int
	Transform string
	KDE       bool
	LowerTrim int
	UpperTrim int
	// NumberFormat controls parsing of textual numbers.
	NumberFormat dataset.NumberFormat
}

// DefaultContinuousOptions returns the defaults for continuous summaries.
func DefaultContinuousOptions() ContinuousOptions {
	return ContinuousOptions{
		FigureOptions: FigureOptions{FigWidth: 8, FigHeight: 4, FontSize: 15},
		Transform:     string(plots.TransformIdentity),
	}
}

// DatetimeOptions configure Datetime.
type DatetimeOptions struct {
	FigureOptions
	Interaction
	// TSFreq is auto, a pandas-style offset such as 2W, or "4 months".
	TSFreq string
	// DeltaUnits is auto or a unit in the TSFreq grammar.
	DeltaUnits string
	TSType     string
	TrendLine  string
	// DateLabels is a strftime pattern for the time axis.
	DateLabels string
	// DateBreaks is the tick interval such as "1 month".
	DateBreaks string
	LowerTrim  int
	UpperTrim  int
	// MinBuckets and MaxBuckets bound the auto frequency bucket count.
	MinBuckets int
	MaxBuckets int
}

// DefaultDatetimeOptions returns the defaults for datetime summaries.
func DefaultDatetimeOptions() DatetimeOptions {
	return DatetimeOptions{
		FigureOptions: FigureOptions{FigWidth: 8, FigHeight: 4, FontSize: 15},
		TSFreq:        "auto",
		DeltaUnits:    "auto",
		TSType:        string(plots.SeriesLine),
		TrendLine:     string(plots.TrendAuto),
		MinBuckets:    DefaultMinBuckets,
		MaxBuckets:    DefaultMaxBuckets,
	}
}

// TextOptions configure Text.
type TextOptions struct {
	FigureOptions
	Interaction
	TopNgrams     int
	ComputeNgrams bool
	RemovePunct   bool
	RemoveStop    bool
	LowerCase     bool
}

// DefaultTextOptions returns the defaults for text summaries.
func DefaultTextOptions() TextOptions {
	return TextOptions{
		FigureOptions: FigureOptions{FigWidth: 18, FigHeight: 6, FontSize: 15},
		TopNgrams:     10,
		RemovePunct:   true,
		RemoveStop:    true,
		LowerCase:     true,
	}
}

// ListOptions configure List.
type ListOptions struct {
	FigureOptions
	Interaction
	TopEntries int
}

// DefaultListOptions returns the defaults for list summaries.
func DefaultListOptions() ListOptions {
	return ListOptions{
		FigureOptions: FigureOptions{FigWidth: 8, FigHeight: 4, FontSize: 15},
		TopEntries:    10,
	}
}

// Options bundle the per-kind options used by Summarize.
type Options struct {
	Kind       dataset.Kind
	Discrete   DiscreteOptions
	Continuous ContinuousOptions
	Datetime   DatetimeOptions
	Text       TextOptions
	List       ListOptions
}

// DefaultOptions returns auto dispatch with every kind at its defaults.
func DefaultOptions() Options {
	return Options{
		Kind:       dataset.Auto,
		Discrete:   DefaultDiscreteOptions(),
		Continuous: DefaultContinuousOptions(),
		Datetime:   DefaultDatetimeOptions(),
		Text:       DefaultTextOptions(),
		List:       DefaultListOptions(),
	}
}

// ApplyFigure overrides font, palette and DPI on every kind.
func (o *Options) ApplyFigure(fontSize float64, palette string, dpi int) {
	for _, f := range []*FigureOptions{
		&o.Discrete.FigureOptions, &o.Continuous.FigureOptions, &o.Datetime.FigureOptions,
		&o.Text.FigureOptions, &o.List.FigureOptions,
	} {
		if fontSize > 0 {
			f.FontSize = fontSize
		}
		if palette != "" {
			f.Palette = palette
		}
		if dpi > 0 {
			f.DPI = dpi
		}
	}
}

// SetInteraction sets the interaction of every kind.
func (o *Options) SetInteraction(i Interaction) {
	o.Discrete.Interaction = i
	o.Continuous.Interaction = i
	o.Datetime.Interaction = i
	o.Text.Interaction = i
	o.List.Interaction = i
}
