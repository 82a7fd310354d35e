package analytics

import "time"

// PreviousWindow resolves the comparison window for percentage-change
// metrics. With both bounds supplied the previous window is the
// immediately-preceding range of equal duration, half-open at its end.
// With either bound missing it is the trailing 30 days ending yesterday.
func PreviousWindow(start, end *time.Time, now time.Time) (time.Time, time.Time) {
	if start != nil && end != nil {
		duration := end.Sub(*start)
		return start.Add(-duration), *start
	}
	return now.AddDate(0, 0, -30), now.AddDate(0, 0, -1)
}

// ParseDate accepts the date formats the frontend sends: RFC 3339 or a bare
// YYYY-MM-DD day.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// ParseRange returns both bounds, or nothing unless both parse. A request
// supplying only one bound is treated as unfiltered.
func ParseRange(startStr, endStr string) (*time.Time, *time.Time) {
	start, okS := ParseDate(startStr)
	end, okE := ParseDate(endStr)
	if !okS || !okE {
		return nil, nil
	}
	return &start, &end
}
