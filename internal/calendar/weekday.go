package calendar

import "math"

// Weekday is a day of the week, 0 = Sunday.
type Weekday int

const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// WeekdayOf returns the day of the week of jd.
func WeekdayOf(jd JulianDay) Weekday {
	w := math.Mod(math.Floor(float64(jd)+1.5), 7)
	if w < 0 {
		w += 7
	}
	return Weekday(w)
}

// NthWeekdayOfMonth returns the Julian day of the n-th weekday of month in
// year, e.g. the 4th Thursday of November. n is not bounded by the month
// length: n = 6 lands in the following month.
func NthWeekdayOfMonth(n int, weekday Weekday, month, year int) JulianDay {
	first := GregorianToJD(GregorianDate{Year: year, Month: month, Day: 1})

	days := int(weekday - WeekdayOf(first))
	if days < 0 {
		days += 7
	}

	return first.AddDays(days + (n-1)*7)
}

// LastWeekdayOfMonth returns the Julian day of the last weekday of month.
func LastWeekdayOfMonth(weekday Weekday, month, year int) JulianDay {
	last := GregorianToJD(GregorianDate{Year: year, Month: month, Day: DaysInMonth(month, year)})

	back := int(WeekdayOf(last) - weekday)
	if back < 0 {
		back += 7
	}

	return last.AddDays(-back)
}

// MemorialDay returns the last Monday of May. A Sunday May 31 counts as
// day 7 of its week, so the result is the Monday six days earlier.
func MemorialDay(year int) JulianDay {
	may31 := GregorianToJD(GregorianDate{Year: year, Month: May, Day: 31})

	w := WeekdayOf(may31)
	if w == Sunday {
		w = 7
	}

	return may31.AddDays(-int(w - Monday))
}
