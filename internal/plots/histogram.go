package plots

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Transform is applied to continuous values before plotting.
type Transform string

const (
	TransformIdentity    Transform = "identity"
	TransformLog         Transform = "log"
	TransformLogExclude0 Transform = "log_exclude0"
	TransformSqrt        Transform = "sqrt"
)

// ParseTransform validates a transform name; "" and "none" mean identity.
func ParseTransform(s string) (Transform, error) {
	switch t := Transform(strings.ToLower(strings.TrimSpace(s))); t {
	case "", "none":
		return TransformIdentity, nil
	case TransformIdentity, TransformLog, TransformLogExclude0, TransformSqrt:
		return t, nil
	}
	return "", &UnsupportedTransformError{Transform: s}
}

// ApplyTransform returns transformed copies of vals.
// log uses log10(x), or log10(x+1) when any zero is present.
func ApplyTransform(vals []float64, t Transform) ([]float64, error) {
	out := make([]float64, 0, len(vals))
	switch t {
	case TransformIdentity, "":
		return append(out, vals...), nil
	case TransformLog:
		shift := 0.0
		for _, v := range vals {
			if v < 0 {
				return nil, &TransformDomainError{Transform: t, Value: v}
			}
			if v == 0 {
				shift = 1
			}
		}
		for _, v := range vals {
			out = append(out, math.Log10(v+shift))
		}
	case TransformLogExclude0:
		for _, v := range vals {
			if v < 0 {
				return nil, &TransformDomainError{Transform: t, Value: v}
			}
			if v != 0 {
				out = append(out, math.Log10(v))
			}
		}
	case TransformSqrt:
		for _, v := range vals {
			if v < 0 {
				return nil, &TransformDomainError{Transform: t, Value: v}
			}
			out = append(out, math.Sqrt(v))
		}
	default:
		return nil, &UnsupportedTransformError{Transform: string(t)}
	}
	return out, nil
}

// AxisLabel decorates label with the transform applied.
func (t Transform) AxisLabel(label string) string {
	switch t {
	case TransformLog:
		return "log10(" + label + ")"
	case TransformLogExclude0:
		return "log10(" + label + ", zeros excluded)"
	case TransformSqrt:
		return "sqrt(" + label + ")"
	}
	return label
}

const maxAutoBins = 200

// AutoBins picks the larger of the Sturges and Freedman-Diaconis bin counts.
func AutoBins(vals []float64) int {
	n := len(vals)
	if n < 2 {
		return 1
	}
	sturges := int(math.Ceil(math.Log2(float64(n)))) + 1
	lo, hi := vals[0], vals[0]
	for _, v := range vals {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi == lo {
		return 1
	}
	bins := sturges
	if iqr, err := stats.InterQuartileRange(stats.Float64Data(vals)); err == nil && iqr > 0 {
		width := 2 * iqr * math.Pow(float64(n), -1.0/3)
		if fd := int(math.Ceil((hi - lo) / width)); fd > bins {
			bins = fd
		}
	}
	if bins > maxAutoBins {
		bins = maxAutoBins
	}
	return bins
}

// HistOptions configure Histogram.
type HistOptions struct {
	Title string
	Label string
	Bins  int // 0 chooses AutoBins
	KDE   bool
}

// Histogram draws the distribution of vals. With KDE the bars are normalized
// to unit area and a Gaussian kernel density is overlaid.
func Histogram(vals []float64, opt HistOptions, st Style) (*plot.Plot, error) {
	st = st.withDefaults()
	p := newPlot(opt.Title, st)
	p.X.Label.Text = opt.Label
	if len(vals) == 0 {
		p.Title.Text = opt.Title + " (no data)"
		return p, nil
	}
	bins := opt.Bins
	if bins <= 0 {
		bins = AutoBins(vals)
	}
	h, err := plotter.NewHist(plotter.Values(vals), bins)
	if err != nil {
		return nil, fmt.Errorf("histogram: %w", err)
	}
	h.FillColor = st.BarColor()
	h.LineStyle.Color = st.BarColor()
	p.Add(h)
	p.Y.Label.Text = "count"
	if opt.KDE {
		h.Normalize(1)
		p.Y.Label.Text = "density"
		if kde := newKDE(vals); kde != nil {
			lo, hi := h.Bins[0].Min, h.Bins[len(h.Bins)-1].Max
			f := plotter.NewFunction(kde)
			f.XMin, f.XMax = lo, hi
			f.Samples = 200
			f.Color = st.AccentColor()
			f.Width = vg.Points(2)
			p.Add(f)
		}
	}
	return p, nil
}

// newKDE returns a Gaussian kernel density estimate using Scott's bandwidth,
// or nil when vals have no spread.
func newKDE(vals []float64) func(float64) float64 {
	if len(vals) < 2 {
		return nil
	}
	sd := stat.StdDev(vals, nil)
	if sd == 0 || math.IsNaN(sd) {
		return nil
	}
	bw := 1.059 * sd * math.Pow(float64(len(vals)), -0.2)
	kernel := distuv.Normal{Mu: 0, Sigma: bw}
	pts := append([]float64(nil), vals...)
	sort.Float64s(pts)
	inv := 1 / float64(len(pts))
	return func(x float64) float64 {
		sum := 0.0
		for _, v := range pts {
			sum += kernel.Prob(x - v)
		}
		return sum * inv
	}
}

// BoxPlot draws a horizontal box plot of vals.
func BoxPlot(vals []float64, title, label string, st Style) (*plot.Plot, error) {
	st = st.withDefaults()
	p := newPlot(title, st)
	p.X.Label.Text = label
	p.HideY()
	if len(vals) == 0 {
		p.Title.Text = title + " (no data)"
		return p, nil
	}
	b, err := plotter.NewBoxPlot(vg.Points(40), 0, plotter.Values(vals))
	if err != nil {
		return nil, fmt.Errorf("box plot: %w", err)
	}
	b.Horizontal = true
	b.FillColor = st.BarColor()
	p.Add(b)
	return p, nil
}
