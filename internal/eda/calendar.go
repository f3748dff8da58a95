package eda

import (
	"strconv"
	"time"
)

// CalendarFields holds the calendar attributes of each timestamp as level strings.
type CalendarFields struct {
	Month      []string
	DayOfMonth []string
	Year       []string
	Hour       []string
	DayOfWeek  []string
}

// Calendar derives calendar fields from ts.
func Calendar(ts []time.Time) CalendarFields {
	f := CalendarFields{
		Month:      make([]string, len(ts)),
		DayOfMonth: make([]string, len(ts)),
		Year:       make([]string, len(ts)),
		Hour:       make([]string, len(ts)),
		DayOfWeek:  make([]string, len(ts)),
	}
	for i, t := range ts {
		f.Month[i] = t.Month().String()
		f.DayOfMonth[i] = strconv.Itoa(t.Day())
		f.Year[i] = strconv.Itoa(t.Year())
		f.Hour[i] = strconv.Itoa(t.Hour())
		f.DayOfWeek[i] = t.Weekday().String()
	}
	return f
}

// MonthLevels are January through December.
func MonthLevels() []string {
	out := make([]string, 12)
	for i := range out {
		out[i] = time.Month(i + 1).String()
	}
	return out
}

// DayOfMonthLevels are "1" through "31".
func DayOfMonthLevels() []string { return intLevels(1, 31) }

// HourLevels are "0" through "23".
func HourLevels() []string { return intLevels(0, 23) }

// WeekdayLevels are Monday through Sunday.
func WeekdayLevels() []string {
	out := make([]string, 7)
	for i := range out {
		out[i] = time.Weekday((i + 1) % 7).String()
	}
	return out
}

func intLevels(lo, hi int) []string {
	out := make([]string, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		out = append(out, strconv.Itoa(i))
	}
	return out
}
