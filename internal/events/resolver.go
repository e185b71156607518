// Package events resolves configured special days (fixed and floating annual
// holidays, recurring dated events) against concrete calendar dates.
package events

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/username/forever-journal/pkg/dateutil"
)

// Category classifies a recurring dated event.
type Category string

const (
	CategoryBirthday    Category = "Birthday"
	CategoryAnniversary Category = "Anniversary"
	CategoryOther       Category = "Other"
)

// AnnualRule is a named yearly event, either fixed (Month/Day set) or
// floating (Rule set, e.g. "3rd Mon Jan", "last Mon May", "easter",
// "election").
type AnnualRule struct {
	Name  string `yaml:"name"`
	Month int    `yaml:"month,omitempty"`
	Day   int    `yaml:"day,omitempty"`
	Rule  string `yaml:"rule,omitempty"`
}

// RuleText returns the human-readable rule or date for title-page listings.
func (r AnnualRule) RuleText() string {
	if r.Rule != "" {
		return r.Rule
	}
	return fmt.Sprintf("%s %d", dateutil.MonthAbbr(r.Month), r.Day)
}

// DatedRule is a recurring event anchored to a full date; each anniversary
// displays the number of years elapsed.
type DatedRule struct {
	Name     string   `yaml:"name"`
	Date     string   `yaml:"date"` // ISO 8601 YYYY-MM-DD
	Category Category `yaml:"-"`
}

// Resolver matches dates against the configured rule set. It is immutable
// after construction.
type Resolver struct {
	annual []AnnualRule
	dated  []DatedRule
	whimsy bool
}

// NewResolver builds a resolver. Dated rules must already be ordered by
// category (birthdays, anniversaries, others); resolution preserves
// configuration order within each category.
func NewResolver(annual []AnnualRule, dated []DatedRule, whimsy bool) *Resolver {
	return &Resolver{annual: annual, dated: dated, whimsy: whimsy}
}

// Resolve returns the decorated labels of every configured event falling on
// (year, month, day), annual rules first, then dated events in category
// order. Malformed rules and dates resolve to no match.
func (r *Resolver) Resolve(year, month, day int) []string {
	var matched []string

	for _, item := range r.annual {
		m, d := item.Month, item.Day
		if item.Rule != "" {
			var ok bool
			m, d, ok = ResolveRule(item.Rule, year)
			if !ok {
				continue
			}
		}
		if m == month && d == day {
			matched = append(matched, r.decorate(item.Name, item.Name))
		}
	}

	for _, item := range r.dated {
		t, err := dateutil.ParseISODate(item.Date)
		if err != nil {
			continue
		}
		if int(t.Month()) != month || t.Day() != day {
			continue
		}
		elapsed := year - t.Year()
		if elapsed < 0 {
			// One-off future events never display before their start year.
			continue
		}
		// Decoration wraps the name only; the elapsed-years suffix stays
		// in the default text color.
		name := r.decorate(item.Name, DatedStyleKey(item.Category))
		matched = append(matched, fmt.Sprintf("%s (%dy)", name, elapsed))
	}

	return matched
}

// DatedStyleKey maps a dated event's category to its decoration style.
// Birthdays get the cake; anniversaries and everything else share the ring.
func DatedStyleKey(c Category) string {
	if c == CategoryBirthday {
		return string(CategoryBirthday)
	}
	return string(CategoryAnniversary)
}

// decorate applies the whimsy icon and color for the style key, if enabled.
func (r *Resolver) decorate(label, styleKey string) string {
	if !r.whimsy {
		return label
	}
	style, ok := whimsyStyles[styleKey]
	if !ok {
		return label
	}
	return fmt.Sprintf(`\textcolor{%s}{%s %s}`, style.color, style.icon, label)
}

var weekdayAbbrevs = map[string]time.Weekday{
	"Mon": time.Monday,
	"Tue": time.Tuesday,
	"Wed": time.Wednesday,
	"Thu": time.Thursday,
	"Fri": time.Friday,
	"Sat": time.Saturday,
	"Sun": time.Sunday,
}

var monthAbbrevs = map[string]int{
	"Jan": 1, "Feb": 2, "Mar": 3, "Apr": 4, "May": 5, "Jun": 6,
	"Jul": 7, "Aug": 8, "Sep": 9, "Oct": 10, "Nov": 11, "Dec": 12,
}

// ResolveRule resolves a floating-rule string for the year. Supported forms:
// "easter", "election", and "<nth|last> <Weekday> <Month>" with three-letter
// abbreviations. Unparseable rules return ok=false; rules are static
// configuration, so resolution never fails hard.
func ResolveRule(rule string, year int) (month, day int, ok bool) {
	switch rule {
	case "easter":
		m, d := dateutil.EasterDate(year)
		return m, d, true
	case "election":
		m, d := dateutil.ElectionDay(year)
		return m, d, true
	}

	parts := strings.Fields(rule)
	if len(parts) != 3 {
		return 0, 0, false
	}
	nthStr, weekdayStr, monthStr := parts[0], parts[1], parts[2]

	m, found := monthAbbrevs[abbrevTitle(monthStr)]
	if !found {
		return 0, 0, false
	}

	weekday, found := weekdayAbbrevs[abbrevTitle(weekdayStr)]
	if !found {
		return 0, 0, false
	}

	n := -1
	if !strings.EqualFold(nthStr, "last") {
		// "1st", "2nd", "3rd", "4th"
		var err error
		n, err = strconv.Atoi(nthStr[:1])
		if err != nil || n < 1 {
			return 0, 0, false
		}
	}

	d, found := dateutil.NthWeekdayOfMonth(year, m, weekday, n)
	if !found {
		return 0, 0, false
	}
	return m, d, true
}

// abbrevTitle normalizes a token to a title-cased three-letter abbreviation.
func abbrevTitle(s string) string {
	if len(s) < 3 {
		return ""
	}
	s = s[:3]
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
