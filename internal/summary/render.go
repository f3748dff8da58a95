package summary

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/KaramelBytes/edaloom-cli/internal/utils"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// column names in display order
var statColumns = []string{
	"count_observed", "count_unique", "count_missing", "percent_missing",
	"min", "25%", "median", "mean", "75%", "max", "std", "iqr",
}

// Columns returns the statistic names present in the table, in display order.
func (t *Table) Columns() []string {
	var hasNum, hasTemporal bool
	var extras []string
	seen := map[string]bool{}
	for _, r := range t.Rows {
		if r.Numeric != nil {
			hasNum = true
		}
		if r.Temporal != nil {
			hasTemporal = true
		}
		for _, e := range r.Extras {
			if !seen[e.Name] {
				seen[e.Name] = true
				extras = append(extras, e.Name)
			}
		}
	}
	cols := make([]string, 0, len(statColumns)+len(extras))
	for _, c := range statColumns {
		switch c {
		case "min", "25%", "median", "75%", "max", "iqr":
			if !hasNum && !hasTemporal {
				continue
			}
		case "mean", "std":
			if !hasNum {
				continue
			}
		}
		cols = append(cols, c)
	}
	return append(cols, extras...)
}

// Value returns the raw value of a statistic: int, float64, time.Time,
// time.Duration, or nil when the row does not carry it.
func (r Row) Value(col string) any {
	switch col {
	case "count_observed":
		return r.Counts.Observed
	case "count_unique":
		return r.Counts.Unique
	case "count_missing":
		return r.Counts.Missing
	case "percent_missing":
		return r.Counts.PercentMissing
	}
	if r.Numeric != nil {
		n := r.Numeric
		switch col {
		case "min":
			return n.Min
		case "25%":
			return n.Q25
		case "median":
			return n.Median
		case "mean":
			return n.Mean
		case "75%":
			return n.Q75
		case "max":
			return n.Max
		case "std":
			return n.Std
		case "iqr":
			return n.IQR
		}
	}
	if r.Temporal != nil && r.Counts.Observed > 0 {
		tm := r.Temporal
		switch col {
		case "min":
			return tm.Min
		case "25%":
			return tm.Q25
		case "median":
			return tm.Median
		case "75%":
			return tm.Q75
		case "max":
			return tm.Max
		case "iqr":
			return tm.IQR
		}
	}
	if v, ok := r.Extra(col); ok {
		return v
	}
	return nil
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case int:
		return strconv.Itoa(x)
	case float64:
		if math.IsNaN(x) {
			return "NaN"
		}
		if x == math.Trunc(x) && math.Abs(x) < 1e15 {
			return strconv.FormatFloat(x, 'f', -1, 64)
		}
		return strconv.FormatFloat(x, 'g', 6, 64)
	case time.Time:
		return x.Format("2006-01-02 15:04:05")
	case time.Duration:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

func (t *Table) writer() table.Writer {
	cols := t.Columns()
	w := table.NewWriter()
	header := table.Row{""}
	configs := []table.ColumnConfig{{Number: 1, Align: text.AlignLeft}}
	for i, c := range cols {
		header = append(header, c)
		configs = append(configs, table.ColumnConfig{Number: i + 2, Align: text.AlignRight, AlignHeader: text.AlignCenter})
	}
	w.AppendHeader(header)
	w.SetColumnConfigs(configs)
	for _, r := range t.Rows {
		row := table.Row{r.Label}
		for _, c := range cols {
			row = append(row, formatValue(r.Value(c)))
		}
		w.AppendRow(row)
	}
	return w
}

// String renders the table as a box-drawn terminal table.
func (t *Table) String() string {
	w := t.writer()
	w.SetStyle(table.StyleLight)
	return w.Render()
}

// Markdown renders the table as a Markdown table.
func (t *Table) Markdown() string {
	return t.writer().RenderMarkdown()
}

// CSV renders the table as comma-separated values.
func (t *Table) CSV() string {
	return t.writer().RenderCSV()
}

// Records converts the table into JSON-friendly maps. NaN becomes nil and
// timestamps are RFC 3339 strings.
func (t *Table) Records() []map[string]any {
	cols := t.Columns()
	out := make([]map[string]any, 0, len(t.Rows))
	for _, r := range t.Rows {
		m := map[string]any{"label": r.Label, "type": string(r.Kind)}
		for _, c := range cols {
			switch x := r.Value(c).(type) {
			case nil:
			case float64:
				if math.IsNaN(x) || math.IsInf(x, 0) {
					m[c] = nil
				} else {
					m[c] = x
				}
			case time.Time:
				m[c] = x.Format(time.RFC3339Nano)
			case time.Duration:
				m[c] = x.String()
			default:
				m[c] = x
			}
		}
		out = append(out, m)
	}
	return out
}

// Format names a rendering of the table.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
)

// Render writes the table in the requested format.
func (t *Table) Render(w io.Writer, f Format) error {
	var s string
	switch Format(strings.ToLower(string(f))) {
	case FormatText, "":
		s = t.String() + "\n"
	case FormatMarkdown, "md":
		s = t.Markdown() + "\n"
	case FormatCSV:
		s = t.CSV() + "\n"
	case FormatJSON:
		b, err := utils.PrettyJSON(t.Records())
		if err != nil {
			return err
		}
		s = string(b) + "\n"
	default:
		return fmt.Errorf("unsupported table format %q (use text|markdown|csv|json)", f)
	}
	_, err := io.WriteString(w, s)
	return err
}
