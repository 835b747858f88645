// Package holiday builds a year's holiday table from a set of declared rules
// and answers lookups by date and by name.
package holiday

import (
	"errors"
	"fmt"

	"github.com/zapponejosh/holiday-calendar/internal/calendar"
)

var (
	// ErrInvalidRule is returned when a rule spec is malformed.
	ErrInvalidRule = errors.New("invalid holiday rule")

	// ErrUnknownComputed is returned for a computed rule with no known
	// computation.
	ErrUnknownComputed = errors.New("unknown computed holiday")
)

// Rule resolves to a single Julian day in a given Gregorian year.
type Rule interface {
	Resolve(year int) calendar.JulianDay
	kind() Kind
}

// Kind discriminates rule variants in their serialized form.
type Kind string

const (
	KindFixed       Kind = "fixed"
	KindNthWeekday  Kind = "nth_weekday"
	KindLastWeekday Kind = "last_weekday"
	KindEaster      Kind = "easter"
	KindComputed    Kind = "computed"
	KindHebrew      Kind = "hebrew"
	KindIslamic     Kind = "islamic"
)

// FixedDate is the same month and day every year.
type FixedDate struct {
	Month int
	Day   int
}

func (r FixedDate) Resolve(year int) calendar.JulianDay {
	return calendar.GregorianToJD(calendar.GregorianDate{Year: year, Month: r.Month, Day: r.Day})
}

func (FixedDate) kind() Kind { return KindFixed }

// NthWeekday is the N-th occurrence of a weekday in a month.
type NthWeekday struct {
	N       int
	Weekday calendar.Weekday
	Month   int
}

func (r NthWeekday) Resolve(year int) calendar.JulianDay {
	return calendar.NthWeekdayOfMonth(r.N, r.Weekday, r.Month, year)
}

func (NthWeekday) kind() Kind { return KindNthWeekday }

// LastWeekday is the last occurrence of a weekday in a month.
type LastWeekday struct {
	Weekday calendar.Weekday
	Month   int
}

func (r LastWeekday) Resolve(year int) calendar.JulianDay {
	return calendar.LastWeekdayOfMonth(r.Weekday, r.Month, year)
}

func (LastWeekday) kind() Kind { return KindLastWeekday }

// EasterRelative is Easter Sunday shifted by Offset days.
type EasterRelative struct {
	Offset int
}

func (r EasterRelative) Resolve(year int) calendar.JulianDay {
	return calendar.EasterJD(year, r.Offset)
}

func (EasterRelative) kind() Kind { return KindEaster }

// Computed names a dedicated computation, for dates no other rule shape
// expresses exactly.
type Computed struct {
	Name string
}

// Computations available to Computed rules.
var computations = map[string]func(year int) calendar.JulianDay{
	"memorialday": calendar.MemorialDay,
	"advent":      calendar.FirstSundayOfAdvent,
}

// Resolve panics when the name has no computation; ParseRule rejects such
// rules before they reach a registry.
func (r Computed) Resolve(year int) calendar.JulianDay {
	fn, ok := computations[r.Name]
	if !ok {
		panic(fmt.Sprintf("holiday: %v: %q", ErrUnknownComputed, r.Name))
	}
	return fn(year)
}

func (Computed) kind() Kind { return KindComputed }

// HebrewDate is a fixed Hebrew month and day, observed on its first
// occurrence on or after January 1 of the Gregorian year. Month 13
// (Adar II) falls back to Adar in common years.
type HebrewDate struct {
	Month int
	Day   int
}

func (r HebrewDate) Resolve(year int) calendar.JulianDay {
	jan1 := calendar.GregorianToJD(calendar.GregorianDate{Year: year, Month: calendar.January, Day: 1})
	hy := calendar.JDToHebrew(jan1).Year

	jd := r.in(hy)
	if jd < jan1 {
		jd = r.in(hy + 1)
	}
	return jd
}

func (r HebrewDate) in(hebrewYear int) calendar.JulianDay {
	month := r.Month
	if month == calendar.VeAdar && !calendar.IsHebrewLeap(hebrewYear) {
		month = calendar.Adar
	}
	return calendar.HebrewToJD(calendar.HebrewDate{Year: hebrewYear, Month: month, Day: r.Day})
}

func (HebrewDate) kind() Kind { return KindHebrew }

// IslamicDate is a fixed Islamic month and day, observed on its first
// occurrence on or after January 1. An Islamic year is shorter than a
// Gregorian one, so some dates occur twice in a year; only the first is
// reported.
type IslamicDate struct {
	Month int
	Day   int
}

func (r IslamicDate) Resolve(year int) calendar.JulianDay {
	jan1 := calendar.GregorianToJD(calendar.GregorianDate{Year: year, Month: calendar.January, Day: 1})
	iy := calendar.JDToIslamic(jan1).Year

	jd := calendar.IslamicToJD(calendar.IslamicDate{Year: iy, Month: r.Month, Day: r.Day})
	if jd < jan1 {
		jd = calendar.IslamicToJD(calendar.IslamicDate{Year: iy + 1, Month: r.Month, Day: r.Day})
	}
	return jd
}

func (IslamicDate) kind() Kind { return KindIslamic }
