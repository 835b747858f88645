package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsHebrewLeap(t *testing.T) {
	assert.True(t, IsHebrewLeap(5784))
	assert.False(t, IsHebrewLeap(5783))
	assert.Equal(t, 13, HebrewYearMonths(5784))
	assert.Equal(t, 12, HebrewYearMonths(5783))
}

func TestHebrewToJD_KnownValues(t *testing.T) {
	tests := []struct {
		name   string
		hebrew HebrewDate
		want   GregorianDate
	}{
		{"Rosh Hashanah 5784", HebrewDate{Year: 5784, Month: Tishri, Day: 1}, g(2023, 9, 16)},
		{"Yom Kippur 5784", HebrewDate{Year: 5784, Month: Tishri, Day: 10}, g(2023, 9, 25)},
		{"Hanukkah 5784", HebrewDate{Year: 5784, Month: Kislev, Day: 25}, g(2023, 12, 8)},
		{"Passover 5783", HebrewDate{Year: 5783, Month: Nisan, Day: 15}, g(2023, 4, 6)},
		{"millennium", HebrewDate{Year: 5760, Month: Teveth, Day: 23}, g(2000, 1, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jd := HebrewToJD(tt.hebrew)
			assert.Equal(t, tt.want, JDToGregorian(jd))
			assert.Equal(t, tt.hebrew, JDToHebrew(jd))
		})
	}
}

func TestHebrewYearDays(t *testing.T) {
	valid := map[int]bool{353: true, 354: true, 355: true, 383: true, 384: true, 385: true}

	for year := 5600; year < 5900; year++ {
		days := HebrewYearDays(year)
		require.True(t, valid[days], "year %d has %d days", year, days)

		sum := 0
		for m := 1; m <= HebrewYearMonths(year); m++ {
			sum += HebrewMonthDays(m, year)
		}
		require.Equal(t, days, sum, "year %d", year)
	}
}

func TestRoshHashanahAvoidsSundayWednesdayFriday(t *testing.T) {
	for year := 5600; year < 5900; year++ {
		w := WeekdayOf(HebrewToJD(HebrewDate{Year: year, Month: Tishri, Day: 1}))
		require.NotContains(t, []Weekday{Sunday, Wednesday, Friday}, w, "year %d", year)
	}
}

func TestHebrewRoundTrip(t *testing.T) {
	for year := 5600; year < 5900; year++ {
		for month := 1; month <= HebrewYearMonths(year); month++ {
			for day := 1; day <= HebrewMonthDays(month, year); day++ {
				d := HebrewDate{Year: year, Month: month, Day: day}
				require.Equal(t, d, JDToHebrew(HebrewToJD(d)))
			}
		}
	}
}
