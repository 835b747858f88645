// Package render turns Julian days and holiday tables into named,
// JSON-ready views, and parses the date notations the API and CLI accept.
package render

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/zapponejosh/holiday-calendar/internal/calendar"
	"github.com/zapponejosh/holiday-calendar/internal/holiday"
	"github.com/zapponejosh/holiday-calendar/internal/locale"
)

// ErrInvalidDate is returned for unparseable or nonexistent dates.
var ErrInvalidDate = errors.New("invalid date")

// MinJD and MaxJD bound the days ParseDay accepts: 1 Muharram AH 1
// (0622-07-19) through 9999-12-31. Every calendar has a positive year
// across the whole window.
var (
	MinJD = calendar.JulianDay(calendar.IslamicEpoch)
	MaxJD = calendar.GregorianToJD(calendar.GregorianDate{Year: 9999, Month: 12, Day: 31})

	maxHebrewYear  = calendar.JDToHebrew(MaxJD).Year
	maxIslamicYear = calendar.JDToIslamic(MaxJD).Year
)

// Gregorian is a named Gregorian date.
type Gregorian struct {
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	Day       int    `json:"day"`
	MonthName string `json:"month_name"`
	ISO       string `json:"iso"`
}

// Lunar is a named Hebrew or Islamic date.
type Lunar struct {
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	Day       int    `json:"day"`
	MonthName string `json:"month_name"`
}

// Day is one day in every supported representation.
type Day struct {
	JD          float64   `json:"jd"`
	UnixMillis  int64     `json:"unix_ms"`
	Weekday     int       `json:"weekday"`
	WeekdayName string    `json:"weekday_name"`
	Gregorian   Gregorian `json:"gregorian"`
	Hebrew      Lunar     `json:"hebrew"`
	Islamic     Lunar     `json:"islamic"`
}

// DescribeDay expands jd into every calendar.
func DescribeDay(jd calendar.JulianDay, names locale.Names) Day {
	g := calendar.JDToGregorian(jd)
	h := calendar.JDToHebrew(jd)
	i := calendar.JDToIslamic(jd)
	w := calendar.WeekdayOf(jd)

	return Day{
		JD:          float64(jd),
		UnixMillis:  calendar.JDToUnixMillis(jd),
		Weekday:     int(w),
		WeekdayName: names.WeekdayName(w),
		Gregorian: Gregorian{
			Year: g.Year, Month: g.Month, Day: g.Day,
			MonthName: names.MonthName(g.Month),
			ISO:       ISODate(jd),
		},
		Hebrew: Lunar{
			Year: h.Year, Month: h.Month, Day: h.Day,
			MonthName: names.HebrewMonthName(h.Month, h.Year),
		},
		Islamic: Lunar{
			Year: i.Year, Month: i.Month, Day: i.Day,
			MonthName: names.IslamicMonthName(i.Month),
		},
	}
}

// Holiday is a resolved holiday with its display names.
type Holiday struct {
	Name        string  `json:"name"`
	DisplayName string  `json:"display_name"`
	Date        string  `json:"date"`
	JD          float64 `json:"jd"`
	Weekday     int     `json:"weekday"`
	WeekdayName string  `json:"weekday_name"`
}

// DescribeHoliday names a table entry.
func DescribeHoliday(e holiday.Entry, names locale.Names) Holiday {
	w := calendar.WeekdayOf(e.JD)
	return Holiday{
		Name:        e.Name,
		DisplayName: names.HolidayName(e.Name),
		Date:        ISODate(e.JD),
		JD:          float64(e.JD),
		Weekday:     int(w),
		WeekdayName: names.WeekdayName(w),
	}
}

// Table is a whole holiday table.
type Table struct {
	Year     int       `json:"year"`
	Language string    `json:"language"`
	First    string    `json:"first"`
	Last     string    `json:"last"`
	Holidays []Holiday `json:"holidays"`
}

// DescribeTable names every entry of t. lang is reported as given.
func DescribeTable(t *holiday.Table, names locale.Names, lang string) Table {
	entries := t.Entries()
	out := Table{
		Year:     t.Year(),
		Language: lang,
		First:    ISODate(t.First()),
		Last:     ISODate(t.Last()),
		Holidays: make([]Holiday, len(entries)),
	}
	for i, e := range entries {
		out.Holidays[i] = DescribeHoliday(e, names)
	}
	return out
}

// ISODate formats the Gregorian date of jd as YYYY-MM-DD.
func ISODate(jd calendar.JulianDay) string {
	g := calendar.JDToGregorian(jd)
	return fmt.Sprintf("%04d-%02d-%02d", g.Year, g.Month, g.Day)
}

// ParseGregorian parses a YYYY-MM-DD date.
func ParseGregorian(s string) (calendar.GregorianDate, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return calendar.GregorianDate{}, fmt.Errorf("%w: %q, use YYYY-MM-DD", ErrInvalidDate, s)
	}
	return calendar.GregorianDate{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}, nil
}

// ParseHebrew parses a Y-M-D Hebrew date and checks that it exists.
// Months are numbered from Nisan; 13 is Adar II.
func ParseHebrew(s string) (calendar.HebrewDate, error) {
	y, m, d, err := splitYMD(s)
	if err != nil {
		return calendar.HebrewDate{}, err
	}
	if y < 1 || y > maxHebrewYear || m < 1 || m > calendar.HebrewYearMonths(y) || d < 1 || d > calendar.HebrewMonthDays(m, y) {
		return calendar.HebrewDate{}, fmt.Errorf("%w: hebrew %q does not exist", ErrInvalidDate, s)
	}
	return calendar.HebrewDate{Year: y, Month: m, Day: d}, nil
}

// ParseIslamic parses a Y-M-D Islamic date and checks that it exists.
func ParseIslamic(s string) (calendar.IslamicDate, error) {
	y, m, d, err := splitYMD(s)
	if err != nil {
		return calendar.IslamicDate{}, err
	}
	if y < 1 || y > maxIslamicYear || m < 1 || m > 12 || d < 1 || d > calendar.IslamicMonthDays(m, y) {
		return calendar.IslamicDate{}, fmt.Errorf("%w: islamic %q does not exist", ErrInvalidDate, s)
	}
	return calendar.IslamicDate{Year: y, Month: m, Day: d}, nil
}

func splitYMD(s string) (y, m, d int, err error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("%w: %q, use Y-M-D", ErrInvalidDate, s)
	}

	var vals [3]int
	for i, p := range parts {
		if vals[i], err = strconv.Atoi(p); err != nil {
			return 0, 0, 0, fmt.Errorf("%w: %q, use Y-M-D", ErrInvalidDate, s)
		}
	}
	return vals[0], vals[1], vals[2], nil
}

// ValidEasterYear reports whether EasterJD is defined for year.
func ValidEasterYear(year int) bool {
	return year >= calendar.MinEasterYear && year <= calendar.MaxEasterYear
}

// Notations lists the inputs ParseDay accepts.
var Notations = []string{"jd", "gregorian", "hebrew", "islamic", "unix_ms"}

// ParseDay parses value in the named notation. The day must fall between
// MinJD and MaxJD.
func ParseDay(notation, value string) (calendar.JulianDay, error) {
	jd, err := parseNotation(notation, value)
	if err != nil {
		return 0, err
	}
	if jd < MinJD || jd >= MaxJD+1 {
		return 0, fmt.Errorf("%w: %s %q is outside %s to %s", ErrInvalidDate, notation, value, ISODate(MinJD), ISODate(MaxJD))
	}
	return jd, nil
}

func parseNotation(notation, value string) (calendar.JulianDay, error) {
	switch notation {
	case "jd":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
			return 0, fmt.Errorf("%w: jd must be a non-negative number, got %q", ErrInvalidDate, value)
		}
		return calendar.JulianDay(f), nil
	case "gregorian":
		d, err := ParseGregorian(value)
		if err != nil {
			return 0, err
		}
		return d.JD(), nil
	case "hebrew":
		d, err := ParseHebrew(value)
		if err != nil {
			return 0, err
		}
		return d.JD(), nil
	case "islamic":
		d, err := ParseIslamic(value)
		if err != nil {
			return 0, err
		}
		return d.JD(), nil
	case "unix_ms":
		ms, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: unix_ms must be an integer, got %q", ErrInvalidDate, value)
		}
		return calendar.UnixMillisToJD(ms), nil
	}
	return 0, fmt.Errorf("unknown notation %q, use one of %s", notation, strings.Join(Notations, ", "))
}
