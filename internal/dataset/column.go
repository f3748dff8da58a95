package dataset

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// NAValues are the cell strings treated as missing.
var NAValues = []string{"", "NA", "N/A", "NaN", "nan", "null", "NULL", "None", "<nil>"}

func isNAString(s string) bool {
	s = strings.TrimSpace(s)
	for _, v := range NAValues {
		if s == v {
			return true
		}
	}
	return false
}

// Column is a read-only view over one dataset column.
type Column struct {
	Name string
	// cells holds the textual value of each row; missing rows hold "".
	cells []string
	na    []bool
	// nums is set when the source series was already numeric.
	nums []float64
}

// NewColumn builds a column from raw cell strings; NA strings become missing.
func NewColumn(name string, cells []string) Column {
	c := Column{Name: name, cells: make([]string, len(cells)), na: make([]bool, len(cells))}
	for i, v := range cells {
		if isNAString(v) {
			c.na[i] = true
			continue
		}
		c.cells[i] = v
	}
	return c
}

// ColumnOf extracts a column from the dataframe.
func ColumnOf(df dataframe.DataFrame, name string) (Column, error) {
	if !hasColumn(df, name) {
		return Column{}, &ColumnNotFoundError{Column: name, Available: df.Names()}
	}
	s := df.Col(name)
	if s.Err != nil {
		return Column{}, s.Err
	}
	n := s.Len()
	c := Column{Name: name, cells: make([]string, n), na: make([]bool, n)}
	numeric := s.Type() == series.Float || s.Type() == series.Int
	if numeric {
		c.nums = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		el := s.Elem(i)
		if el.IsNA() {
			c.na[i] = true
			continue
		}
		if numeric {
			f := el.Float()
			if math.IsNaN(f) {
				c.na[i] = true
				continue
			}
			c.nums[i] = f
			c.cells[i] = strconv.FormatFloat(f, 'f', -1, 64)
			continue
		}
		v := el.String()
		if isNAString(v) {
			c.na[i] = true
			continue
		}
		c.cells[i] = v
	}
	return c, nil
}

func hasColumn(df dataframe.DataFrame, name string) bool {
	for _, n := range df.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// Len returns the number of rows including missing ones.
func (c Column) Len() int { return len(c.na) }

// Missing returns the number of missing rows.
func (c Column) Missing() int {
	n := 0
	for _, m := range c.na {
		if m {
			n++
		}
	}
	return n
}

// IsMissing reports whether row i is missing.
func (c Column) IsMissing(i int) bool { return c.na[i] }

// Strings returns the observed cell values in row order.
func (c Column) Strings() []string {
	out := make([]string, 0, len(c.cells))
	for i, v := range c.cells {
		if c.na[i] {
			continue
		}
		out = append(out, v)
	}
	return out
}

// Numbers returns the observed values as floats in row order.
func (c Column) Numbers(nf NumberFormat) ([]float64, error) {
	out := make([]float64, 0, len(c.cells))
	for i, v := range c.cells {
		if c.na[i] {
			continue
		}
		if c.nums != nil {
			if math.IsInf(c.nums[i], 0) {
				return nil, &CoercionError{Column: c.Name, Row: i, Value: v, Kind: Continuous}
			}
			out = append(out, c.nums[i])
			continue
		}
		f, ok := ParseNumber(v, nf)
		if !ok {
			return nil, &CoercionError{Column: c.Name, Row: i, Value: v, Kind: Continuous}
		}
		out = append(out, f)
	}
	return out, nil
}

// Times returns the observed values as timestamps in row order.
func (c Column) Times() ([]time.Time, error) {
	out := make([]time.Time, 0, len(c.cells))
	for i, v := range c.cells {
		if c.na[i] {
			continue
		}
		t, ok := ParseTime(v)
		if !ok {
			return nil, &CoercionError{Column: c.Name, Row: i, Value: v, Kind: Datetime}
		}
		out = append(out, t)
	}
	return out, nil
}

// Lists returns the observed values parsed as lists in row order.
func (c Column) Lists() [][]string {
	out := make([][]string, 0, len(c.cells))
	for i, v := range c.cells {
		if c.na[i] {
			continue
		}
		out = append(out, ParseList(v))
	}
	return out
}
