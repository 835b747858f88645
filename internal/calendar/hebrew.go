package calendar

import "math"

// Hebrew month numbers. The year begins in Tishri (7); VeAdar (Adar II)
// exists only in leap years.
const (
	Nisan = iota + 1
	Iyyar
	Sivan
	Tammuz
	Av
	Elul
	Tishri
	Heshvan
	Kislev
	Teveth
	Shevat
	Adar
	VeAdar
)

// HebrewDate is a date in the arithmetic Hebrew calendar.
type HebrewDate struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// JD returns the Julian day of the date.
func (d HebrewDate) JD() JulianDay {
	return HebrewToJD(d)
}

// IsHebrewLeap reports whether year has thirteen months.
func IsHebrewLeap(year int) bool {
	return floorMod(year*7+1, 19) < 7
}

// HebrewYearMonths returns 13 for leap years and 12 otherwise.
func HebrewYearMonths(year int) int {
	if IsHebrewLeap(year) {
		return 13
	}
	return 12
}

// hebrewDelay1 returns the days from the epoch to the molad of Tishri of
// year, postponed a day when it would fall on Sunday, Wednesday or Friday.
func hebrewDelay1(year int) int {
	months := floorDiv(235*year-234, 19)
	parts := 12084 + 13753*months
	day := months*29 + floorDiv(parts, 25920)

	if floorMod(3*(day+1), 7) < 3 {
		day++
	}
	return day
}

// hebrewDelay2 returns the extra postponement needed to keep the lengths
// of year and its neighbours within the permitted range.
func hebrewDelay2(year int) int {
	last := hebrewDelay1(year - 1)
	present := hebrewDelay1(year)
	next := hebrewDelay1(year + 1)

	switch {
	case next-present == 356:
		return 2
	case present-last == 382:
		return 1
	default:
		return 0
	}
}

// HebrewYearDays returns the number of days in year.
func HebrewYearDays(year int) int {
	return int(HebrewToJD(HebrewDate{Year: year + 1, Month: Tishri, Day: 1}) -
		HebrewToJD(HebrewDate{Year: year, Month: Tishri, Day: 1}))
}

// HebrewMonthDays returns the length of month in year.
func HebrewMonthDays(month, year int) int {
	switch month {
	case Iyyar, Tammuz, Elul, Teveth, VeAdar:
		return 29
	case Adar:
		if !IsHebrewLeap(year) {
			return 29
		}
	case Heshvan:
		if HebrewYearDays(year)%10 != 5 {
			return 29
		}
	case Kislev:
		if HebrewYearDays(year)%10 == 3 {
			return 29
		}
	}
	return 30
}

// HebrewToJD returns the Julian day of a Hebrew date.
func HebrewToJD(d HebrewDate) JulianDay {
	jd := HebrewEpoch + float64(hebrewDelay1(d.Year)+hebrewDelay2(d.Year)+d.Day+1)

	if d.Month < Tishri {
		for m := Tishri; m <= HebrewYearMonths(d.Year); m++ {
			jd += float64(HebrewMonthDays(m, d.Year))
		}
		for m := Nisan; m < d.Month; m++ {
			jd += float64(HebrewMonthDays(m, d.Year))
		}
	} else {
		for m := Tishri; m < d.Month; m++ {
			jd += float64(HebrewMonthDays(m, d.Year))
		}
	}

	return JulianDay(jd)
}

// JDToHebrew returns the Hebrew date containing jd.
func JDToHebrew(jd JulianDay) HebrewDate {
	day := JulianDay(math.Floor(float64(jd)) + 0.5)

	count := int(math.Floor((float64(day) - HebrewEpoch) * 98496.0 / 35975351.0))
	year := count - 1
	for next := count; day >= HebrewToJD(HebrewDate{Year: next, Month: Tishri, Day: 1}); next++ {
		year++
	}

	month := Nisan
	if day < HebrewToJD(HebrewDate{Year: year, Month: Nisan, Day: 1}) {
		month = Tishri
	}
	for day > HebrewToJD(HebrewDate{Year: year, Month: month, Day: HebrewMonthDays(month, year)}) {
		month++
	}

	return HebrewDate{
		Year:  year,
		Month: month,
		Day:   int(day-HebrewToJD(HebrewDate{Year: year, Month: month, Day: 1})) + 1,
	}
}
