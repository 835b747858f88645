package holiday

import (
	"math"
	"time"

	"github.com/zapponejosh/holiday-calendar/internal/calendar"
)

// Entry is one holiday resolved to a day.
type Entry struct {
	Name string             `json:"name"`
	JD   calendar.JulianDay `json:"jd"`
}

// Table is the holidays of one Gregorian year ordered by day. It is
// immutable and safe for concurrent use.
type Table struct {
	year    int
	entries []Entry
	byName  map[string]int

	first, last calendar.JulianDay
}

// Year returns the Gregorian year of the table.
func (t *Table) Year() int { return t.year }

// Len returns the number of holidays in the table.
func (t *Table) Len() int { return len(t.entries) }

// First returns the Julian day of January 1.
func (t *Table) First() calendar.JulianDay { return t.first }

// Last returns the Julian day of December 31.
func (t *Table) Last() calendar.JulianDay { return t.last }

// Entries returns a copy of the table in order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// HolidaysOn returns the names of the holidays on the day containing jd,
// in table order. A time of day in jd is ignored. The result is empty,
// never nil, when there are none.
func (t *Table) HolidaysOn(jd calendar.JulianDay) []string {
	day := calendar.JulianDay(math.Floor(float64(jd)-0.5) + 0.5)

	names := []string{}
	for _, e := range t.entries {
		if e.JD == day {
			names = append(names, e.Name)
		}
	}
	return names
}

// DateOf returns the Julian day of the named holiday and whether it is in
// the table.
func (t *Table) DateOf(name string) (calendar.JulianDay, bool) {
	i, ok := t.byName[name]
	if !ok {
		return 0, false
	}
	return t.entries[i].JD, true
}

// TimeOf returns civil midnight of the named holiday in loc.
func (t *Table) TimeOf(name string, loc *time.Location) (time.Time, bool) {
	jd, ok := t.DateOf(name)
	if !ok {
		return time.Time{}, false
	}
	return jd.Time(loc), true
}

// Days calls fn for every day of the year that has at least one holiday,
// in order, until fn returns false.
func (t *Table) Days(fn func(jd calendar.JulianDay, names []string) bool) {
	for i := 0; i < len(t.entries); {
		jd := t.entries[i].JD

		var names []string
		for ; i < len(t.entries) && t.entries[i].JD == jd; i++ {
			names = append(names, t.entries[i].Name)
		}
		if !fn(jd, names) {
			return
		}
	}
}
