package plots

import (
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
)

// Order selects how the levels of a count plot are arranged.
type Order string

const (
	OrderAuto       Order = "auto"
	OrderDescending Order = "descending"
	OrderAscending  Order = "ascending"
	OrderSorted     Order = "sorted"
	OrderRandom     Order = "random"
)

// ParseOrder validates an order mode name.
func ParseOrder(s string) (Order, error) {
	switch o := Order(strings.ToLower(strings.TrimSpace(s))); o {
	case "":
		return OrderAuto, nil
	case OrderAuto, OrderDescending, OrderAscending, OrderSorted, OrderRandom:
		return o, nil
	}
	return "", fmt.Errorf("unknown order %q (use auto|descending|ascending|sorted|random)", s)
}

// OtherLevel collects the levels dropped by MaxLevels.
const OtherLevel = "Other"

// CountOptions configure CountLevels and CountPlot.
type CountOptions struct {
	BarOptions
	Order Order
	// Levels fixes the categorical domain and its order. Values outside it
	// are not plotted and levels with no observations are kept at zero.
	Levels    []string
	MaxLevels int
	Seed      int64
}

// CountLevels tallies values and arranges them for plotting.
func CountLevels(values []string, opt CountOptions) []LevelCount {
	counts := map[string]int{}
	var firstSeen []string
	for _, v := range values {
		if _, ok := counts[v]; !ok {
			firstSeen = append(firstSeen, v)
		}
		counts[v]++
	}

	var levels []LevelCount
	if len(opt.Levels) > 0 {
		for _, l := range opt.Levels {
			levels = append(levels, LevelCount{Level: l, Count: counts[l]})
		}
	} else {
		for _, l := range firstSeen {
			levels = append(levels, LevelCount{Level: l, Count: counts[l]})
		}
	}

	var other *LevelCount
	if opt.MaxLevels > 0 && len(levels) > opt.MaxLevels {
		byFreq := append([]LevelCount(nil), levels...)
		sortByCount(byFreq, true)
		keep := opt.MaxLevels - 1
		if keep < 0 {
			keep = 0
		}
		o := LevelCount{Level: OtherLevel}
		for _, l := range byFreq[keep:] {
			o.Count += l.Count
		}
		kept := map[string]bool{}
		for _, l := range byFreq[:keep] {
			kept[l.Level] = true
		}
		filtered := levels[:0:0]
		for _, l := range levels {
			if kept[l.Level] {
				filtered = append(filtered, l)
			}
		}
		levels = filtered
		other = &o
	}

	switch opt.Order {
	case OrderDescending:
		sortByCount(levels, true)
	case OrderAscending:
		sortByCount(levels, false)
	case OrderSorted:
		sortByLabel(levels)
	case OrderRandom:
		r := rand.New(rand.NewSource(opt.Seed))
		r.Shuffle(len(levels), func(i, j int) { levels[i], levels[j] = levels[j], levels[i] })
	default:
		switch {
		case len(opt.Levels) > 0:
		case allNumeric(levels):
			sortByLabel(levels)
		default:
			sortByCount(levels, true)
		}
	}
	if other != nil {
		levels = append(levels, *other)
	}
	return levels
}

// CountPlot draws the frequency of each level of values.
func CountPlot(values []string, opt CountOptions, st Style) (*plot.Plot, []LevelCount, error) {
	levels := CountLevels(values, opt)
	if opt.Total <= 0 {
		opt.Total = len(values)
	}
	p, err := BarChart(levels, opt.BarOptions, st)
	if err != nil {
		return nil, nil, err
	}
	return p, levels, nil
}

// ShouldFlip reports whether a chart with n levels reads better horizontally.
func ShouldFlip(n int) bool { return n > 5 }

func sortByCount(levels []LevelCount, desc bool) {
	sort.SliceStable(levels, func(i, j int) bool {
		if levels[i].Count != levels[j].Count {
			if desc {
				return levels[i].Count > levels[j].Count
			}
			return levels[i].Count < levels[j].Count
		}
		return levels[i].Level < levels[j].Level
	})
}

// sortByLabel orders numerically when every label is a number, else lexically.
func sortByLabel(levels []LevelCount) {
	if allNumeric(levels) {
		sort.SliceStable(levels, func(i, j int) bool {
			a, _ := strconv.ParseFloat(levels[i].Level, 64)
			b, _ := strconv.ParseFloat(levels[j].Level, 64)
			return a < b
		})
		return
	}
	sort.SliceStable(levels, func(i, j int) bool { return levels[i].Level < levels[j].Level })
}

func allNumeric(levels []LevelCount) bool {
	if len(levels) == 0 {
		return false
	}
	for _, l := range levels {
		if _, err := strconv.ParseFloat(l.Level, 64); err != nil {
			return false
		}
	}
	return true
}
