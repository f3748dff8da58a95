package dataset

import (
	"sort"
	"strings"

	"github.com/go-gota/gota/dataframe"
)

const (
	// numeric columns with at most this many levels are treated as discrete
	discreteNumericLevels = 10
	// string columns with at most this many levels are treated as discrete
	discreteStringLevels = 50
	// strings longer than this (in runes) count as free text
	shortStringRunes = 64
)

// Profile is the result of type inference for one column.
type Profile struct {
	Name     string
	Kind     Kind
	Observed int
	Missing  int
	Unique   int
}

// Infer guesses the semantic kind of a column by the predominant parsed type
// of its non-missing cells.
func Infer(c Column) Profile {
	p := Profile{Name: c.Name, Missing: c.Missing()}
	var numCnt, dtCnt, listCnt, txtCnt, longCnt int
	levels := make(map[string]struct{})
	for i, v := range c.cells {
		if c.na[i] {
			continue
		}
		p.Observed++
		if len(levels) <= 10000 {
			levels[v] = struct{}{}
		}
		if c.nums != nil {
			numCnt++
			continue
		}
		if _, ok := ParseNumber(v, NumberFormat{}); ok {
			numCnt++
			continue
		}
		if _, ok := ParseTime(v); ok {
			dtCnt++
			continue
		}
		if looksLikeList(v) {
			listCnt++
			continue
		}
		txtCnt++
		if len([]rune(v)) > shortStringRunes || strings.Count(strings.TrimSpace(v), " ") >= 4 {
			longCnt++
		}
	}
	p.Unique = len(levels)
	switch {
	case p.Observed == 0:
		p.Kind = Discrete
	case numCnt >= dtCnt && numCnt >= txtCnt && numCnt >= listCnt:
		if p.Unique <= discreteNumericLevels {
			p.Kind = Discrete
		} else {
			p.Kind = Continuous
		}
	case dtCnt >= txtCnt && dtCnt >= listCnt:
		p.Kind = Datetime
	case listCnt >= txtCnt:
		p.Kind = List
	case p.Unique <= discreteStringLevels && longCnt*2 < txtCnt:
		p.Kind = Discrete
	default:
		p.Kind = Text
	}
	return p
}

// InferFrame profiles every column of the dataframe in column order.
func InferFrame(df dataframe.DataFrame) ([]Profile, error) {
	names := df.Names()
	out := make([]Profile, 0, len(names))
	for _, n := range names {
		c, err := ColumnOf(df, n)
		if err != nil {
			return nil, err
		}
		out = append(out, Infer(c))
	}
	return out, nil
}

// KindCounts tallies profiles by kind, sorted by kind name.
func KindCounts(ps []Profile) []KindCount {
	m := map[Kind]int{}
	for _, p := range ps {
		m[p.Kind]++
	}
	out := make([]KindCount, 0, len(m))
	for k, v := range m {
		out = append(out, KindCount{Kind: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Kind < out[j].Kind })
	return out
}

// KindCount pairs a kind with the number of columns inferred as it.
type KindCount struct {
	Kind  Kind
	Count int
}
