package calendar

// Day offsets from Easter Sunday of the movable feasts.
const (
	OffsetMardiGras    = -47
	OffsetAshWednesday = -46 // 40 days of Lent + 6 Sundays
	OffsetPalmSunday   = -7
	OffsetGoodFriday   = -2
	OffsetAscension    = 39 // always a Thursday
	OffsetPentecost    = 49 // 7 weeks
)

// Years for which EasterJD is defined.
const (
	MinEasterYear = 1583
	MaxEasterYear = 4099
)

// EasterJD returns the Julian day of Easter Sunday in year plus offset days.
//
// The paschal full moon is found with Ronald W. Mallen's Easter Dating
// Method and the following Sunday is Easter. Valid for 1583 through 4099.
func EasterJD(year, offset int) JulianDay {
	firstDig := year / 100 // first two digits of the year
	remain19 := year % 19  // position in the Metonic cycle

	// Paschal full moon
	temp := (firstDig-15)/2 + 202 - 11*remain19

	switch firstDig {
	case 21, 24, 25, 27, 28, 29, 30, 31, 32, 34, 35, 38:
		temp--
	case 33, 36, 37, 39, 40:
		temp -= 2
	}

	temp %= 30

	tA := temp + 21
	if temp == 29 {
		tA--
	}
	if temp == 28 && remain19 > 10 {
		tA--
	}

	// Next Sunday
	tB := (tA - 19) % 7

	tC := (40 - firstDig) % 4
	if tC == 3 {
		tC++
	}
	if tC > 1 {
		tC++
	}

	temp = year % 100
	tD := (temp + temp/4) % 7

	tE := ((20 - tB - tC - tD) % 7) + 1
	da := tA + tE

	month := March
	if da > 31 {
		da -= 31
		month = April
	}

	return GregorianToJD(GregorianDate{Year: year, Month: month, Day: da}).AddDays(offset)
}

// FirstSundayOfAdvent returns the fourth Sunday before Christmas, which
// falls between November 27 and December 3.
func FirstSundayOfAdvent(year int) JulianDay {
	christmas := GregorianToJD(GregorianDate{Year: year, Month: December, Day: 25})

	// Sunday strictly before Christmas
	back := int(WeekdayOf(christmas))
	if back == 0 {
		back = 7
	}

	return christmas.AddDays(-back - 21)
}
