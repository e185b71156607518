// Package dateutil provides the pure calendar arithmetic behind the journal
// layout: weekday lookup, leap-year handling, floating-holiday rules and the
// closed-form Easter computation.
package dateutil

import "time"

// IsLeapYear reports whether the year is a Gregorian leap year.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month int) int {
	if month < 1 || month > 12 {
		return 0
	}
	// Day 0 of the next month normalizes to the last day of this month.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// IsValidDate reports whether (year, month, day) names a real calendar date.
// time.Date normalizes out-of-range values (Feb 30 becomes Mar 2), so the
// components are checked against the round trip.
func IsValidDate(year, month, day int) bool {
	if month < 1 || month > 12 || day < 1 {
		return false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Year() == year && int(t.Month()) == month && t.Day() == day
}

// DayOfWeek returns the abbreviated weekday ("Mon".."Sun") for the date, or
// the empty string for invalid dates such as Feb 29 of a non-leap year.
// Callers render a blank cell for the empty value instead of failing.
func DayOfWeek(year, month, day int) string {
	if !IsValidDate(year, month, day) {
		return ""
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Weekday().String()[:3]
}

// dayGlyphs maps weekdays to the single-character Japanese day glyphs used
// when localized day display is enabled.
var dayGlyphs = [7]string{"日", "月", "火", "水", "木", "金", "土"}

// DayGlyph returns the localized single-character weekday glyph for the
// date, or the empty string for invalid dates (same sentinel contract as
// DayOfWeek).
func DayGlyph(year, month, day int) string {
	if !IsValidDate(year, month, day) {
		return ""
	}
	wd := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Weekday()
	return dayGlyphs[int(wd)]
}

// NthWeekdayOfMonth returns the day of month for the nth occurrence of the
// weekday. n counts from 1; negative n counts from the end of the month
// (-1 = last occurrence). The second return is false when the month has no
// such occurrence.
func NthWeekdayOfMonth(year, month int, weekday time.Weekday, n int) (int, bool) {
	if n == 0 || month < 1 || month > 12 {
		return 0, false
	}

	var days []int
	for d := 1; d <= DaysInMonth(year, month); d++ {
		t := time.Date(year, time.Month(month), d, 0, 0, 0, 0, time.UTC)
		if t.Weekday() == weekday {
			days = append(days, d)
		}
	}

	if n > 0 {
		if n > len(days) {
			return 0, false
		}
		return days[n-1], true
	}
	if -n > len(days) {
		return 0, false
	}
	return days[len(days)+n], true
}

// EasterDate returns (month, day) of Western Easter for the year, using the
// anonymous Gregorian algorithm.
func EasterDate(year int) (month, day int) {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month = (h + l - 7*m + 114) / 31
	day = (h+l-7*m+114)%31 + 1
	return month, day
}

// ElectionDay returns (month, day) of US Election Day for the year: the
// first Tuesday after the first Monday in November.
func ElectionDay(year int) (month, day int) {
	firstMonday, _ := NthWeekdayOfMonth(year, 11, time.Monday, 1)
	return 11, firstMonday + 1
}

// ParseISODate parses a YYYY-MM-DD date string.
func ParseISODate(dateStr string) (time.Time, error) {
	return time.Parse("2006-01-02", dateStr)
}

// MonthName returns the full English month name ("January".."December").
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return time.Month(month).String()
}

// MonthAbbr returns the three-letter month abbreviation ("Jan".."Dec").
func MonthAbbr(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return time.Month(month).String()[:3]
}

// FirstLeapYearFrom returns the first leap year at or after the given year.
// The journal iterates a leap reference year so Feb 29 pages exist.
func FirstLeapYearFrom(year int) int {
	for !IsLeapYear(year) {
		year++
	}
	return year
}
