package summary

import (
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Trim holds how many extreme sorted values to drop from each end.
type Trim struct {
	Lower int
	Upper int
}

// IsZero reports whether no trimming is requested.
func (t Trim) IsZero() bool { return t.Lower == 0 && t.Upper == 0 }

func (t Trim) check(label string, observed int) error {
	if t.Lower < 0 || t.Upper < 0 {
		return &InvalidTrimError{Label: label, Lower: t.Lower, Upper: t.Upper, Observed: observed}
	}
	if !t.IsZero() && t.Lower+t.Upper >= observed {
		return &InvalidTrimError{Label: label, Lower: t.Lower, Upper: t.Upper, Observed: observed}
	}
	return nil
}

// TrimFloats returns a sorted copy of vals with the extremes removed.
func TrimFloats(label string, vals []float64, t Trim) ([]float64, error) {
	if err := t.check(label, len(vals)); err != nil {
		return nil, err
	}
	cp := make([]float64, len(vals))
	copy(cp, vals)
	sort.Float64s(cp)
	return cp[t.Lower : len(cp)-t.Upper], nil
}

// TrimTimes returns a sorted copy of vals with the extremes removed.
func TrimTimes(label string, vals []time.Time, t Trim) ([]time.Time, error) {
	if err := t.check(label, len(vals)); err != nil {
		return nil, err
	}
	cp := make([]time.Time, len(vals))
	copy(cp, vals)
	sort.Slice(cp, func(i, j int) bool { return cp[i].Before(cp[j]) })
	return cp[t.Lower : len(cp)-t.Upper], nil
}

// TrimStrings returns a sorted copy of vals with the extremes removed.
func TrimStrings(label string, vals []string, t Trim) ([]string, error) {
	if err := t.check(label, len(vals)); err != nil {
		return nil, err
	}
	cp := make([]string, len(vals))
	copy(cp, vals)
	sort.Strings(cp)
	return cp[t.Lower : len(cp)-t.Upper], nil
}

// Quantile interpolates linearly between the closest ranks of sorted.
func Quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}

// Describe computes the numeric statistics of sorted values.
func Describe(sorted []float64) NumericStats {
	s := NumericStats{
		Min: math.NaN(), Q25: math.NaN(), Median: math.NaN(), Mean: math.NaN(),
		Q75: math.NaN(), Max: math.NaN(), Std: math.NaN(), IQR: math.NaN(),
	}
	if len(sorted) == 0 {
		return s
	}
	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	s.Q25 = Quantile(sorted, 0.25)
	s.Median = Quantile(sorted, 0.5)
	s.Q75 = Quantile(sorted, 0.75)
	s.IQR = s.Q75 - s.Q25
	s.Mean = stat.Mean(sorted, nil)
	if len(sorted) > 1 {
		s.Std = stat.StdDev(sorted, nil)
	}
	return s
}

// DescribeTimes computes the temporal statistics of sorted timestamps.
// Quantiles interpolate on offsets from the minimum to keep nanosecond precision.
func DescribeTimes(sorted []time.Time) *TemporalStats {
	if len(sorted) == 0 {
		return &TemporalStats{}
	}
	base := sorted[0]
	offs := make([]float64, len(sorted))
	for i, t := range sorted {
		offs[i] = float64(t.Sub(base))
	}
	at := func(q float64) time.Time {
		return base.Add(time.Duration(math.Round(Quantile(offs, q))))
	}
	ts := &TemporalStats{
		Min:    sorted[0],
		Q25:    at(0.25),
		Median: at(0.5),
		Q75:    at(0.75),
		Max:    sorted[len(sorted)-1],
	}
	ts.IQR = ts.Q75.Sub(ts.Q25)
	return ts
}

func uniqueFloats(sorted []float64) int {
	n := 0
	for i, v := range sorted {
		if i == 0 || v != sorted[i-1] {
			n++
		}
	}
	return n
}

func uniqueTimes(sorted []time.Time) int {
	n := 0
	for i, v := range sorted {
		if i == 0 || !v.Equal(sorted[i-1]) {
			n++
		}
	}
	return n
}

func uniqueStrings(vals []string) int {
	seen := make(map[string]struct{}, len(vals))
	for _, v := range vals {
		seen[v] = struct{}{}
	}
	return len(seen)
}
