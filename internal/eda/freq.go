package eda

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Unit is a calendar or clock unit used to bucket timestamps and measure deltas.
type Unit string

const (
	UnitYear    Unit = "year"
	UnitQuarter Unit = "quarter"
	UnitMonth   Unit = "month"
	UnitWeek    Unit = "week"
	UnitDay     Unit = "day"
	UnitHour    Unit = "hour"
	UnitMinute  Unit = "minute"
	UnitSecond  Unit = "second"
)

// units from coarsest to finest
var units = []Unit{UnitYear, UnitQuarter, UnitMonth, UnitWeek, UnitDay, UnitHour, UnitMinute, UnitSecond}

const day = 24 * time.Hour

// Approx is the average length of one unit.
func (u Unit) Approx() time.Duration {
	switch u {
	case UnitYear:
		return time.Duration(365.2425 * float64(day))
	case UnitQuarter:
		return time.Duration(365.2425 / 4 * float64(day))
	case UnitMonth:
		return time.Duration(365.2425 / 12 * float64(day))
	case UnitWeek:
		return 7 * day
	case UnitDay:
		return day
	case UnitHour:
		return time.Hour
	case UnitMinute:
		return time.Minute
	default:
		return time.Second
	}
}

// Freq is a multiple of a unit, such as 2 weeks.
type Freq struct {
	N    int
	Unit Unit
}

// String renders the frequency as "1 month" or "2 weeks".
func (f Freq) String() string {
	if f.N == 1 {
		return "1 " + string(f.Unit)
	}
	return strconv.Itoa(f.N) + " " + string(f.Unit) + "s"
}

// Label names the frequency as a measurement unit: "days" or "2 weeks".
func (f Freq) Label() string {
	if f.N == 1 {
		return string(f.Unit) + "s"
	}
	return f.String()
}

// Duration is the average length of one step.
func (f Freq) Duration() time.Duration { return time.Duration(f.N) * f.Unit.Approx() }

// Floor truncates t to the start of its unit. Weeks start on Monday.
func (f Freq) Floor(t time.Time) time.Time {
	y, m, d := t.Date()
	loc := t.Location()
	switch f.Unit {
	case UnitYear:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
	case UnitQuarter:
		return time.Date(y, ((m-1)/3)*3+1, 1, 0, 0, 0, 0, loc)
	case UnitMonth:
		return time.Date(y, m, 1, 0, 0, 0, 0, loc)
	case UnitWeek:
		back := (int(t.Weekday()) + 6) % 7
		return time.Date(y, m, d-back, 0, 0, 0, 0, loc)
	case UnitDay:
		return time.Date(y, m, d, 0, 0, 0, 0, loc)
	case UnitHour:
		return time.Date(y, m, d, t.Hour(), 0, 0, 0, loc)
	case UnitMinute:
		return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, loc)
	default:
		return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), 0, loc)
	}
}

// Add steps t forward by k frequencies, using calendar arithmetic for
// years, quarters and months.
func (f Freq) Add(t time.Time, k int) time.Time {
	n := f.N * k
	switch f.Unit {
	case UnitYear:
		return t.AddDate(n, 0, 0)
	case UnitQuarter:
		return t.AddDate(0, 3*n, 0)
	case UnitMonth:
		return t.AddDate(0, n, 0)
	case UnitWeek:
		return t.AddDate(0, 0, 7*n)
	case UnitDay:
		return t.AddDate(0, 0, n)
	}
	return t.Add(time.Duration(n) * f.Unit.Approx())
}

var pandasAliases = map[string]Unit{
	"Y": UnitYear, "A": UnitYear, "YS": UnitYear, "AS": UnitYear, "YE": UnitYear,
	"Q": UnitQuarter, "QS": UnitQuarter, "QE": UnitQuarter,
	"M": UnitMonth, "MS": UnitMonth, "ME": UnitMonth,
	"W": UnitWeek,
	"D": UnitDay,
	"H": UnitHour, "h": UnitHour,
	"T": UnitMinute, "min": UnitMinute,
	"S": UnitSecond, "s": UnitSecond,
}

var unitWords = map[string]Unit{
	"year": UnitYear, "years": UnitYear, "yr": UnitYear, "yrs": UnitYear,
	"quarter": UnitQuarter, "quarters": UnitQuarter,
	"month": UnitMonth, "months": UnitMonth,
	"week": UnitWeek, "weeks": UnitWeek,
	"day": UnitDay, "days": UnitDay,
	"hour": UnitHour, "hours": UnitHour, "hr": UnitHour, "hrs": UnitHour,
	"minute": UnitMinute, "minutes": UnitMinute, "mins": UnitMinute,
	"second": UnitSecond, "seconds": UnitSecond, "sec": UnitSecond, "secs": UnitSecond,
}

var freqPattern = regexp.MustCompile(`^(\d*)\s*([A-Za-z]+)(?:-[A-Za-z]+)?$`)

// ParseFreq parses a pandas-style offset ("D", "2W", "MS", "15min") or a
// human form ("4 months").
func ParseFreq(s string) (Freq, error) {
	m := freqPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Freq{}, fmt.Errorf("expected an offset like 2W or an interval like \"4 months\"")
	}
	n := 1
	if m[1] != "" {
		v, err := strconv.Atoi(m[1])
		if err != nil || v < 1 {
			return Freq{}, fmt.Errorf("multiple must be a positive integer")
		}
		n = v
	}
	if u, ok := pandasAliases[m[2]]; ok {
		return Freq{N: n, Unit: u}, nil
	}
	if u, ok := unitWords[strings.ToLower(m[2])]; ok {
		return Freq{N: n, Unit: u}, nil
	}
	return Freq{}, fmt.Errorf("unknown time unit %q", m[2])
}

const (
	// DefaultMinBuckets and DefaultMaxBuckets bound the bucket count AutoFreq aims for.
	DefaultMinBuckets = 10
	DefaultMaxBuckets = 400
	// bucketing stops beyond this many buckets
	maxBuckets = 100000
	maxBreaks  = 400
)

// countBuckets counts buckets of f spanning [min, max], stopping past limit.
func countBuckets(min, max time.Time, f Freq, limit int) int {
	n := 0
	for cur := f.Floor(min); !cur.After(max); cur = f.Add(cur, 1) {
		n++
		if n > limit {
			break
		}
	}
	return n
}

// AutoFreq picks the coarsest unit giving between lo and hi buckets over
// [min, max]. When no unit lands in that range it uses the finest unit with
// fewer than lo buckets, falling back to seconds or years at the extremes.
func AutoFreq(min, max time.Time, lo, hi int) Freq {
	var lastSparse *Unit
	allDense := true
	for i, u := range units {
		n := countBuckets(min, max, Freq{N: 1, Unit: u}, hi)
		if n >= lo && n <= hi {
			return Freq{N: 1, Unit: u}
		}
		if n < lo {
			lastSparse = &units[i]
			allDense = false
		}
	}
	switch {
	case allDense:
		return Freq{N: 1, Unit: UnitYear}
	case lastSparse != nil && *lastSparse != UnitSecond:
		return Freq{N: 1, Unit: *lastSparse}
	}
	return Freq{N: 1, Unit: UnitSecond}
}

// Buckets counts sorted timestamps per bucket of f from the bucket holding
// the first timestamp to the one holding the last. Empty buckets are zero.
func Buckets(sorted []time.Time, f Freq) ([]time.Time, []float64, error) {
	if len(sorted) == 0 {
		return nil, nil, nil
	}
	var starts []time.Time
	var counts []float64
	i := 0
	last := sorted[len(sorted)-1]
	for cur := f.Floor(sorted[0]); !cur.After(last); cur = f.Add(cur, 1) {
		if len(starts) >= maxBuckets {
			return nil, nil, fmt.Errorf("frequency %s yields more than %d buckets", f, maxBuckets)
		}
		next := f.Add(cur, 1)
		c := 0
		for i < len(sorted) && sorted[i].Before(next) {
			c++
			i++
		}
		starts = append(starts, cur)
		counts = append(counts, float64(c))
	}
	return starts, counts, nil
}

// Breaks returns tick positions every f from the bucket holding min through max.
func Breaks(min, max time.Time, f Freq) []time.Time {
	var out []time.Time
	for cur := f.Floor(min); !cur.After(max) && len(out) < maxBreaks; cur = f.Add(cur, 1) {
		out = append(out, cur)
	}
	return out
}

// fixedUnits are the units usable for deltas, coarsest first.
var fixedUnits = []Unit{UnitYear, UnitMonth, UnitWeek, UnitDay, UnitHour, UnitMinute, UnitSecond}

// AutoDeltaUnit picks the coarsest unit no longer than the median positive delta.
func AutoDeltaUnit(deltas []time.Duration) Freq {
	var pos []time.Duration
	for _, d := range deltas {
		if d > 0 {
			pos = append(pos, d)
		}
	}
	if len(pos) == 0 {
		return Freq{N: 1, Unit: UnitSecond}
	}
	sort.Slice(pos, func(i, j int) bool { return pos[i] < pos[j] })
	med := pos[len(pos)/2]
	if len(pos)%2 == 0 {
		med = (pos[len(pos)/2-1] + pos[len(pos)/2]) / 2
	}
	for _, u := range fixedUnits {
		if u.Approx() <= med {
			return Freq{N: 1, Unit: u}
		}
	}
	return Freq{N: 1, Unit: UnitSecond}
}

// Deltas returns the gaps between successive sorted timestamps.
func Deltas(sorted []time.Time) []time.Duration {
	if len(sorted) < 2 {
		return nil
	}
	out := make([]time.Duration, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		out[i-1] = sorted[i].Sub(sorted[i-1])
	}
	return out
}

// InUnits converts durations to floating multiples of f.
func InUnits(ds []time.Duration, f Freq) []float64 {
	out := make([]float64, len(ds))
	step := float64(f.Duration())
	for i, d := range ds {
		out[i] = float64(d) / step
	}
	return out
}
