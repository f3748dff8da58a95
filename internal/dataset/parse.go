package dataset

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// NumberFormat controls how numeric cells are parsed.
type NumberFormat struct {
	// DecimalSeparator; if 0, auto-detect per value.
	DecimalSeparator rune
	// ThousandsSeparator; if 0, auto-detect common separators (',' '.' space).
	ThousandsSeparator rune
}

var timeLayouts = []string{
	time.RFC3339Nano, time.RFC3339, "2006-01-02", "2006/01/02", "02/01/2006", "01/02/2006",
	"2006-01-02 15:04", "2006-01-02 15:04:05", "2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05", "1/2/2006 15:04", "1/2/2006 15:04:05",
}

// ParseTime parses a timestamp in one of the common layouts.
func ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, l := range timeLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseNumber parses a locale-formatted number. A trailing percent sign is ignored.
// Infinities and NaN are not numbers here.
func ParseNumber(s string, nf NumberFormat) (float64, bool) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return 0, false
	}
	if strings.Contains(raw, "%") {
		raw = strings.ReplaceAll(raw, "%", "")
	}
	raw = strings.ReplaceAll(raw, "\u00A0", " ")
	raw = strings.TrimSpace(raw)
	if nf == (NumberFormat{}) {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f, finite(f)
		}
	}
	dec := nf.DecimalSeparator
	thou := nf.ThousandsSeparator
	if dec == 0 {
		cpos := strings.LastIndex(raw, ",")
		dpos := strings.LastIndex(raw, ".")
		if cpos >= 0 && dpos >= 0 {
			if cpos > dpos {
				dec = ','
				thou = '.'
			} else {
				dec = '.'
				thou = ','
			}
		} else if cpos >= 0 {
			dec = ','
		} else {
			dec = '.'
		}
	}
	if thou == 0 {
		for _, sep := range []rune{',', '.', ' '} {
			if sep != dec {
				raw = strings.ReplaceAll(raw, string(sep), "")
			}
		}
	} else if thou != dec {
		raw = strings.ReplaceAll(raw, string(thou), "")
	}
	if dec != '.' {
		raw = strings.ReplaceAll(raw, string(dec), ".")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return f, finite(f)
}

func finite(f float64) bool { return !math.IsInf(f, 0) && !math.IsNaN(f) }

// ParseList splits a list-valued cell. JSON arrays are decoded element-wise;
// otherwise the cell is split on the first of '|', ';' or ',' it contains.
// Surrounding brackets or parentheses are stripped.
func ParseList(s string) []string {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return []string{}
	}
	if strings.HasPrefix(raw, "[") && gjson.Valid(raw) {
		res := gjson.Parse(raw)
		if res.IsArray() {
			arr := res.Array()
			out := make([]string, 0, len(arr))
			for _, el := range arr {
				out = append(out, el.String())
			}
			return out
		}
	}
	inner := raw
	if n := len(inner); n >= 2 {
		switch {
		case inner[0] == '[' && inner[n-1] == ']',
			inner[0] == '(' && inner[n-1] == ')',
			inner[0] == '{' && inner[n-1] == '}':
			inner = strings.TrimSpace(inner[1 : n-1])
		}
	}
	if inner == "" {
		return []string{}
	}
	sep := ""
	for _, cand := range []string{"|", ";", ","} {
		if strings.Contains(inner, cand) {
			sep = cand
			break
		}
	}
	if sep == "" {
		return []string{strings.Trim(inner, `"'`)}
	}
	parts := strings.Split(inner, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(strings.TrimSpace(p), `"'`)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

func looksLikeList(s string) bool {
	raw := strings.TrimSpace(s)
	if !strings.HasPrefix(raw, "[") || !strings.HasSuffix(raw, "]") {
		return false
	}
	return gjson.Valid(raw) && gjson.Parse(raw).IsArray()
}
