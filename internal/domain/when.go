package domain

import (
	"strings"
	"time"
)

// WhenFilter selects a calendar window for event listings. The numeric
// values are part of the public query contract (?when=1..5).
type WhenFilter int

const (
	WhenAll WhenFilter = iota + 1
	WhenToday
	WhenTomorrow
	WhenThisWeek
	WhenNextWeek
)

func (w WhenFilter) Valid() bool {
	return w >= WhenAll && w <= WhenNextWeek
}

func (w WhenFilter) String() string {
	switch w {
	case WhenAll:
		return "all"
	case WhenToday:
		return "today"
	case WhenTomorrow:
		return "tomorrow"
	case WhenThisWeek:
		return "this_week"
	case WhenNextWeek:
		return "next_week"
	default:
		return "unknown"
	}
}

func ParseWhenFilter(s string) (WhenFilter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "1", "all":
		return WhenAll, nil
	case "2", "today":
		return WhenToday, nil
	case "3", "tomorrow":
		return WhenTomorrow, nil
	case "4", "this_week":
		return WhenThisWeek, nil
	case "5", "next_week":
		return WhenNextWeek, nil
	}
	return 0, ErrValidationMeta("invalid query param", map[string]string{
		"when": "must be one of: 1..5, all, today, tomorrow, this_week, next_week",
	})
}

// Range returns the half-open interval [from, to) selected by w, anchored on
// the calendar date of now in now's location. ok is false for WhenAll.
//
// Weeks are ISO weeks (Monday first), so ThisWeek/NextWeek match ISO
// week-number equality with a 0/+1 offset, including across year ends.
func (w WhenFilter) Range(now time.Time) (from, to time.Time, ok bool) {
	y, m, d := now.Date()
	loc := now.Location()
	day := func(offset int) time.Time { return time.Date(y, m, d+offset, 0, 0, 0, 0, loc) }

	monday := -((int(now.Weekday()) + 6) % 7)

	switch w {
	case WhenToday:
		return day(0), day(1), true
	case WhenTomorrow:
		return day(1), day(2), true
	case WhenThisWeek:
		return day(monday), day(monday + 7), true
	case WhenNextWeek:
		return day(monday + 7), day(monday + 14), true
	default:
		return time.Time{}, time.Time{}, false
	}
}
