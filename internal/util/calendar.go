package util

import "time"

// HolidaySource reports full-market-closure days. The Alpaca gateway derives
// these from the exchange trading calendar; StaticHolidaySource is the
// offline fallback.
type HolidaySource interface {
	// IsHoliday reports whether the market is fully closed on the given day.
	IsHoliday(day time.Time) bool
}

// StaticHolidaySource answers holiday lookups from a fixed table of NYSE/
// NASDAQ full-closure days. Half days (early closes) are deliberately not
// included.
type StaticHolidaySource struct {
	days map[string]bool // keyed by YYYY-MM-DD
}

// Compile-time interface check.
var _ HolidaySource = (*StaticHolidaySource)(nil)

// NewStaticHolidaySource creates a source from the given days. With no
// arguments it loads the built-in NYSE table.
func NewStaticHolidaySource(days ...time.Time) *StaticHolidaySource {
	if len(days) == 0 {
		days = nyseFullClosures()
	}
	s := &StaticHolidaySource{days: make(map[string]bool, len(days))}
	for _, d := range days {
		s.days[d.Format("2006-01-02")] = true
	}
	return s
}

// IsHoliday reports whether day is in the table.
func (s *StaticHolidaySource) IsHoliday(day time.Time) bool {
	return s.days[day.Format("2006-01-02")]
}

// nyseFullClosures lists the NYSE/NASDAQ full market closures for 2025-2026.
func nyseFullClosures() []time.Time {
	d := func(y int, m time.Month, day int) time.Time {
		return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
	}
	return []time.Time{
		// 2025
		d(2025, time.January, 1),    // New Year's Day
		d(2025, time.January, 20),   // Martin Luther King, Jr. Day
		d(2025, time.February, 17),  // Washington's Birthday
		d(2025, time.April, 18),     // Good Friday
		d(2025, time.May, 26),       // Memorial Day
		d(2025, time.June, 19),      // Juneteenth
		d(2025, time.July, 4),       // Independence Day
		d(2025, time.September, 1),  // Labor Day
		d(2025, time.November, 27),  // Thanksgiving Day
		d(2025, time.December, 25),  // Christmas Day
		// 2026
		d(2026, time.January, 1),    // New Year's Day
		d(2026, time.January, 19),   // Martin Luther King, Jr. Day
		d(2026, time.February, 16),  // Washington's Birthday
		d(2026, time.April, 3),      // Good Friday
		d(2026, time.May, 25),       // Memorial Day
		d(2026, time.June, 19),      // Juneteenth
		d(2026, time.July, 3),       // Independence Day (observed)
		d(2026, time.September, 7),  // Labor Day
		d(2026, time.November, 26),  // Thanksgiving Day
		d(2026, time.December, 25),  // Christmas Day
	}
}
