// Package calendar provides exact conversions between Julian Day Numbers and
// the Gregorian, Hebrew and Islamic calendars, weekday arithmetic and the
// Gregorian Easter computation.
//
// Every function is pure. Inputs are not validated: callers must pass real
// calendar dates (a day that exists in its month, years >= 1, Easter years
// 1583 through 4099). Anything else produces an unspecified date rather than
// an error.
package calendar

import (
	"math"
	"time"
)

// Julian day of the start of each calendar and of the Unix epoch.
const (
	GregorianEpoch = 1721425.5
	HebrewEpoch    = 347995.5
	IslamicEpoch   = 1948439.5
	UnixEpoch      = 2440587.5

	SecondsPerDay = 86400
)

// Gregorian month numbers.
const (
	January = iota + 1
	February
	March
	April
	May
	June
	July
	August
	September
	October
	November
	December
)

// JulianDay is a continuous day count. Civil midnight falls on the .5
// fraction, so every date produced by this package ends in .5.
type JulianDay float64

// AddDays returns the Julian day n days later (earlier for negative n).
func (jd JulianDay) AddDays(n int) JulianDay {
	return jd + JulianDay(n)
}

// Time returns civil midnight of the day in loc.
func (jd JulianDay) Time(loc *time.Location) time.Time {
	d := JDToGregorian(jd)
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, loc)
}

// GregorianDate is a proleptic Gregorian calendar date.
type GregorianDate struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// JD returns the Julian day of the date.
func (d GregorianDate) JD() JulianDay {
	return GregorianToJD(d)
}

// IsGregorianLeap reports whether year is a Gregorian leap year.
func IsGregorianLeap(year int) bool {
	return year%4 == 0 && !(year%100 == 0 && year%400 != 0)
}

// GregorianToJD returns the Julian day of a Gregorian date.
func GregorianToJD(d GregorianDate) JulianDay {
	y := d.Year - 1

	leapAdj := 0
	if d.Month > February {
		if IsGregorianLeap(d.Year) {
			leapAdj = -1
		} else {
			leapAdj = -2
		}
	}

	days := 365*y + floorDiv(y, 4) - floorDiv(y, 100) + floorDiv(y, 400) +
		floorDiv(367*d.Month-362, 12) + leapAdj + d.Day

	return JulianDay(GregorianEpoch - 1 + float64(days))
}

// JDToGregorian returns the Gregorian date containing jd.
func JDToGregorian(jd JulianDay) GregorianDate {
	wjd := math.Floor(float64(jd)-0.5) + 0.5
	depoch := int(wjd - GregorianEpoch)

	quadricent := floorDiv(depoch, 146097)
	dqc := floorMod(depoch, 146097)
	cent := dqc / 36524
	dcent := dqc % 36524
	quad := dcent / 1461
	dquad := dcent % 1461
	yindex := dquad / 365

	year := quadricent*400 + cent*100 + quad*4 + yindex
	// The last day of a leap cycle belongs to the year just ended.
	if cent != 4 && yindex != 4 {
		year++
	}

	w := JulianDay(wjd)
	yearDay := int(w - GregorianToJD(GregorianDate{Year: year, Month: January, Day: 1}))

	leapAdj := 0
	if w >= GregorianToJD(GregorianDate{Year: year, Month: March, Day: 1}) {
		if IsGregorianLeap(year) {
			leapAdj = 1
		} else {
			leapAdj = 2
		}
	}

	month := floorDiv((yearDay+leapAdj)*12+373, 367)
	day := int(w-GregorianToJD(GregorianDate{Year: year, Month: month, Day: 1})) + 1

	return GregorianDate{Year: year, Month: month, Day: day}
}

// DaysInMonth returns the length of a Gregorian month.
func DaysInMonth(month, year int) int {
	switch month {
	case February:
		if IsGregorianLeap(year) {
			return 29
		}
		return 28
	case April, June, September, November:
		return 30
	default:
		return 31
	}
}

// JDToUnixMillis converts a Julian day to milliseconds since the Unix epoch,
// rounded to the nearest millisecond.
func JDToUnixMillis(jd JulianDay) int64 {
	return int64(math.Round((float64(jd) - UnixEpoch) * SecondsPerDay * 1000))
}

// UnixMillisToJD converts milliseconds since the Unix epoch to a Julian day.
func UnixMillisToJD(ms int64) JulianDay {
	return JulianDay(UnixEpoch + float64(ms)/(SecondsPerDay*1000))
}

// FromTime returns the Julian day of the civil date of t in t's own zone.
// The zone offset is the only time zone handling in this package.
func FromTime(t time.Time) JulianDay {
	_, offset := t.Zone()
	ms := t.UnixMilli() + int64(offset)*1000
	jd := UnixMillisToJD(ms)
	return JulianDay(math.Floor(float64(jd)-0.5) + 0.5)
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}
