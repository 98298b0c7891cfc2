package utils

import "time"

// MonthWindow is a closed range of unix seconds covering one calendar month (or part of it).
type MonthWindow struct {
	Start time.Time
	End   time.Time
}

func (w MonthWindow) StartUnix() int64 { return w.Start.Unix() }
func (w MonthWindow) EndUnix() int64   { return w.End.Unix() }

// MonthWindows returns [first of this month, now] and the whole previous month,
// both in now's location.
func MonthWindows(now time.Time) (current MonthWindow, previous MonthWindow) {
	loc := now.Location()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	startOfLastMonth := startOfMonth.AddDate(0, -1, 0)

	current = MonthWindow{Start: startOfMonth, End: now}
	previous = MonthWindow{Start: startOfLastMonth, End: startOfMonth.Add(-time.Second)}
	return current, previous
}

// FromUnixSeconds returns zero time if t<=0 to let callers decide how to render.
func FromUnixSeconds(t int64) time.Time {
	if t <= 0 {
		return time.Time{}
	}
	return time.Unix(t, 0).UTC()
}

func FormatRFC3339(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// DayKey formats t as the YYYY-MM-DD bucket used by the growth charts.
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
