package calendar

import "math"

// IslamicDate is a date in the arithmetic (tabular) Islamic calendar.
type IslamicDate struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// JD returns the Julian day of the date.
func (d IslamicDate) JD() JulianDay {
	return IslamicToJD(d)
}

// IsIslamicLeap reports whether year has 355 days.
func IsIslamicLeap(year int) bool {
	return floorMod(year*11+14, 30) < 11
}

// IslamicMonthDays returns the length of month in year. Odd months have 30
// days, even months 29, and the last month gains a day in leap years.
func IslamicMonthDays(month, year int) int {
	if month == 12 && IsIslamicLeap(year) {
		return 30
	}
	if month%2 == 1 {
		return 30
	}
	return 29
}

// IslamicToJD returns the Julian day of an Islamic date.
func IslamicToJD(d IslamicDate) JulianDay {
	days := float64(d.Day) + math.Ceil(29.5*float64(d.Month-1)) +
		float64((d.Year-1)*354+floorDiv(3+11*d.Year, 30))
	return JulianDay(days + IslamicEpoch - 1)
}

// JDToIslamic returns the Islamic date containing jd.
func JDToIslamic(jd JulianDay) IslamicDate {
	day := math.Floor(float64(jd)) + 0.5
	year := int(math.Floor((30*(day-IslamicEpoch) + 10646) / 10631))

	start := float64(IslamicToJD(IslamicDate{Year: year, Month: 1, Day: 1}))
	month := int(math.Min(12, math.Ceil((day-(29+start))/29.5)+1))

	return IslamicDate{
		Year:  year,
		Month: month,
		Day:   int(day-float64(IslamicToJD(IslamicDate{Year: year, Month: month, Day: 1}))) + 1,
	}
}
