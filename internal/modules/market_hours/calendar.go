// Package market_hours decides whether the collector may run at a given
// moment: business-day evaluation against a holiday set, the hour window
// gate, and the combined execution decision.
package market_hours

import (
	"sort"
	"strings"
	"time"

	"github.com/aristath/radar-runner/internal/domain"
)

// HolidaySet is an immutable set of holiday dates keyed by YYYY-MM-DD.
type HolidaySet struct {
	dates map[string]struct{}
}

// NewHolidaySet builds a set from date strings. Blank entries are dropped and
// duplicates collapse. Entries that are not valid dates are kept verbatim; they
// simply never match a real date.
func NewHolidaySet(dates ...string) HolidaySet {
	set := HolidaySet{dates: make(map[string]struct{}, len(dates))}
	for _, d := range dates {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		set.dates[d] = struct{}{}
	}
	return set
}

// Contains reports whether date's calendar day is a holiday.
func (h HolidaySet) Contains(date time.Time) bool {
	return h.ContainsString(date.Format(domain.DateLayout))
}

// ContainsString reports whether the YYYY-MM-DD string is a holiday.
func (h HolidaySet) ContainsString(date string) bool {
	_, ok := h.dates[date]
	return ok
}

// Len returns the number of distinct holidays.
func (h HolidaySet) Len() int {
	return len(h.dates)
}

// Dates returns the holidays in ascending order.
func (h HolidaySet) Dates() []string {
	out := make([]string, 0, len(h.dates))
	for d := range h.dates {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// Invalid returns entries that do not parse as YYYY-MM-DD.
func (h HolidaySet) Invalid() []string {
	var out []string
	for _, d := range h.Dates() {
		if _, err := time.Parse(domain.DateLayout, d); err != nil {
			out = append(out, d)
		}
	}
	return out
}

// IsoWeekday returns the ISO weekday number, 1=Monday through 7=Sunday.
func IsoWeekday(date time.Time) int {
	wd := int(date.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// IsBusinessDay reports whether date is Monday to Friday and not a holiday.
func IsBusinessDay(date time.Time, holidays HolidaySet) bool {
	wd := IsoWeekday(date)
	return wd >= 1 && wd <= 5 && !holidays.Contains(date)
}
