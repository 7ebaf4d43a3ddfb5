package timewindow

import "time"

// Window is a half-open time range [Start, End): inclusive of Start,
// exclusive of End.
type Window struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two half-open windows intersect. Windows that
// merely touch at a boundary (a.End == b.Start) do not overlap.
func Overlaps(a, b Window) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// StrictConflict is the pairwise test for pricing rules submitted in one
// replace request. On top of the interval overlap, any endpoint of one rule
// equal to any endpoint of the other is a conflict — this catches
// duplicate-date submissions a pure interval test would accept.
func StrictConflict(a, b Window) bool {
	if Overlaps(a, b) {
		return true
	}
	return a.Start.Equal(b.Start) ||
		a.End.Equal(b.End) ||
		a.Start.Equal(b.End) ||
		a.End.Equal(b.Start)
}

// Day returns the single-day window [midnight, midnight+24h) containing t,
// in t's location. Maintenance scheduled dates are compared against bookings
// through this window.
func Day(t time.Time) Window {
	start := Truncate(t)
	return Window{Start: start, End: start.AddDate(0, 0, 1)}
}

// Truncate drops the time-of-day component of t.
func Truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
