package summary

import (
	"time"

	"github.com/KaramelBytes/edaloom-cli/internal/dataset"
)

// Counts are the observation counts shared by every summary row.
// Observed + Missing always equals the number of rows summarized.
type Counts struct {
	Observed       int
	Unique         int
	Missing        int
	PercentMissing float64
}

// NumericStats are the distributional statistics of a continuous variable.
type NumericStats struct {
	Min, Q25, Median, Mean, Q75, Max, Std, IQR float64
}

// TemporalStats are the distributional statistics of a datetime variable.
type TemporalStats struct {
	Min, Q25, Median, Q75, Max time.Time
	IQR                        time.Duration
}

// Extra is an additional named statistic such as vocab_size.
type Extra struct {
	Name  string
	Value float64
}

// Row summarizes one variable.
type Row struct {
	Label    string
	Kind     dataset.Kind
	Counts   Counts
	Numeric  *NumericStats
	Temporal *TemporalStats
	Extras   []Extra
}

// Extra returns the named extra statistic.
func (r Row) Extra(name string) (float64, bool) {
	for _, e := range r.Extras {
		if e.Name == name {
			return e.Value, true
		}
	}
	return 0, false
}

// Table is an ordered set of summary rows.
type Table struct {
	Rows []Row
}

// Append adds rows from other tables.
func (t *Table) Append(others ...*Table) *Table {
	for _, o := range others {
		if o != nil {
			t.Rows = append(t.Rows, o.Rows...)
		}
	}
	return t
}

// Row returns the row with the given label.
func (t *Table) Row(label string) (Row, bool) {
	for _, r := range t.Rows {
		if r.Label == label {
			return r, true
		}
	}
	return Row{}, false
}

func counts(observed, unique, missing int) Counts {
	c := Counts{Observed: observed, Unique: unique, Missing: missing}
	if total := observed + missing; total > 0 {
		c.PercentMissing = 100 * float64(missing) / float64(total)
	}
	return c
}

// DiscreteRow summarizes observed levels after optional trimming.
func DiscreteRow(label string, vals []string, missing int, t Trim) (Row, error) {
	kept := vals
	if !t.IsZero() {
		var err error
		if kept, err = TrimStrings(label, vals, t); err != nil {
			return Row{}, err
		}
	}
	return Row{Label: label, Kind: dataset.Discrete, Counts: counts(len(kept), uniqueStrings(kept), missing)}, nil
}

// ContinuousRow summarizes observed numbers after optional trimming.
func ContinuousRow(label string, vals []float64, missing int, t Trim) (Row, error) {
	sorted, err := TrimFloats(label, vals, t)
	if err != nil {
		return Row{}, err
	}
	st := Describe(sorted)
	return Row{
		Label:   label,
		Kind:    dataset.Continuous,
		Counts:  counts(len(sorted), uniqueFloats(sorted), missing),
		Numeric: &st,
	}, nil
}

// DatetimeRow summarizes observed timestamps after optional trimming.
func DatetimeRow(label string, vals []time.Time, missing int, t Trim) (Row, error) {
	sorted, err := TrimTimes(label, vals, t)
	if err != nil {
		return Row{}, err
	}
	return Row{
		Label:    label,
		Kind:     dataset.Datetime,
		Counts:   counts(len(sorted), uniqueTimes(sorted), missing),
		Temporal: DescribeTimes(sorted),
	}, nil
}

// Options configure Build.
type Options struct {
	Trim         Trim
	NumberFormat dataset.NumberFormat
}

// Build computes the one-row summary table of a column for the declared kind.
// Text and list columns are summarized like discrete ones.
func Build(col dataset.Column, kind dataset.Kind, opt Options) (*Table, error) {
	var (
		row Row
		err error
	)
	missing := col.Missing()
	switch kind {
	case dataset.Discrete, dataset.Text, dataset.List:
		row, err = DiscreteRow(col.Name, col.Strings(), missing, opt.Trim)
		row.Kind = kind
	case dataset.Continuous:
		vals, cerr := col.Numbers(opt.NumberFormat)
		if cerr != nil {
			return nil, cerr
		}
		row, err = ContinuousRow(col.Name, vals, missing, opt.Trim)
	case dataset.Datetime:
		vals, cerr := col.Times()
		if cerr != nil {
			return nil, cerr
		}
		row, err = DatetimeRow(col.Name, vals, missing, opt.Trim)
	default:
		return nil, &UnsupportedKindError{Kind: kind}
	}
	if err != nil {
		return nil, err
	}
	return &Table{Rows: []Row{row}}, nil
}
