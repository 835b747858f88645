package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapponejosh/holiday-calendar/internal/calendar"
	"github.com/zapponejosh/holiday-calendar/internal/holiday"
	"github.com/zapponejosh/holiday-calendar/internal/locale"
)

func TestDescribeDay(t *testing.T) {
	names := locale.MustNew().For("en")

	// 2000-01-01 is 23 Teveth 5760 and 24 Ramadan 1420.
	day := DescribeDay(2451544.5, names)

	assert.Equal(t, 2451544.5, day.JD)
	assert.Equal(t, int64(946684800000), day.UnixMillis)
	assert.Equal(t, int(calendar.Saturday), day.Weekday)
	assert.Equal(t, "Saturday", day.WeekdayName)
	assert.Equal(t, Gregorian{Year: 2000, Month: 1, Day: 1, MonthName: "January", ISO: "2000-01-01"}, day.Gregorian)
	assert.Equal(t, Lunar{Year: 5760, Month: calendar.Teveth, Day: 23, MonthName: "Teveth"}, day.Hebrew)
	assert.Equal(t, Lunar{Year: 1420, Month: 9, Day: 24, MonthName: "Ramadan"}, day.Islamic)
}

func TestDescribeTable(t *testing.T) {
	names := locale.MustNew().For("es")
	table := DescribeTable(holiday.Standard().ForYear(2023), names, "es")

	assert.Equal(t, 2023, table.Year)
	assert.Equal(t, "2023-01-01", table.First)
	assert.Equal(t, "2023-12-31", table.Last)
	require.Len(t, table.Holidays, 18)

	last := table.Holidays[len(table.Holidays)-1]
	assert.Equal(t, Holiday{
		Name:        "newyearseve",
		DisplayName: "Nochevieja",
		Date:        "2023-12-31",
		JD:          2460309.5,
		Weekday:     int(calendar.Sunday),
		WeekdayName: "domingo",
	}, last)
}

func TestISODate_PadsYear(t *testing.T) {
	jd := calendar.GregorianToJD(calendar.GregorianDate{Year: 33, Month: 4, Day: 3})
	assert.Equal(t, "0033-04-03", ISODate(jd))
}

func TestParseGregorian(t *testing.T) {
	got, err := ParseGregorian("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, calendar.GregorianDate{Year: 2024, Month: 2, Day: 29}, got)

	for _, bad := range []string{"", "2023-02-29", "2023-13-01", "12/25/2023", "2023-1-1"} {
		_, err := ParseGregorian(bad)
		assert.ErrorIs(t, err, ErrInvalidDate, bad)
	}
}

func TestParseHebrew(t *testing.T) {
	got, err := ParseHebrew("5784-7-1")
	require.NoError(t, err)
	assert.Equal(t, calendar.HebrewDate{Year: 5784, Month: 7, Day: 1}, got)

	_, err = ParseHebrew("5784-13-1") // leap year
	assert.NoError(t, err)

	for _, bad := range []string{"5783-13-1", "5784-6-30", "5784-0-1", "0-1-1", "5784-7", "a-b-c"} {
		_, err := ParseHebrew(bad)
		assert.ErrorIs(t, err, ErrInvalidDate, bad)
	}
}

func TestParseIslamic(t *testing.T) {
	got, err := ParseIslamic("1445-1-1")
	require.NoError(t, err)
	assert.Equal(t, calendar.IslamicDate{Year: 1445, Month: 1, Day: 1}, got)

	for _, bad := range []string{"1445-2-30", "1445-13-1", "1445-1-0", "1445/1/1"} {
		_, err := ParseIslamic(bad)
		assert.ErrorIs(t, err, ErrInvalidDate, bad)
	}
}

func TestValidEasterYear(t *testing.T) {
	assert.False(t, ValidEasterYear(1582))
	assert.True(t, ValidEasterYear(1583))
	assert.True(t, ValidEasterYear(4099))
	assert.False(t, ValidEasterYear(4100))
}

func TestParseDay(t *testing.T) {
	inputs := map[string]string{
		"jd":        "2451544.5",
		"gregorian": "2000-01-01",
		"hebrew":    "5760-10-23",
		"islamic":   "1420-9-24",
		"unix_ms":   "946684800000",
	}
	for _, notation := range Notations {
		jd, err := ParseDay(notation, inputs[notation])
		require.NoError(t, err, notation)
		assert.Equal(t, calendar.JulianDay(2451544.5), jd, notation)
	}

	for _, bad := range [][2]string{{"jd", "NaN"}, {"jd", "-1"}, {"unix_ms", "1e3"}, {"gregorian", "2000-13-01"}} {
		_, err := ParseDay(bad[0], bad[1])
		assert.ErrorIs(t, err, ErrInvalidDate, bad[1])
	}

	_, err := ParseDay("julian", "2000-01-01")
	assert.ErrorContains(t, err, "unknown notation")
}

func TestParseDay_Window(t *testing.T) {
	assert.Equal(t, "0622-07-19", ISODate(MinJD))
	assert.Equal(t, calendar.JulianDay(5373483.5), MaxJD)

	for _, ok := range [][2]string{
		{"jd", "1948439.5"},
		{"islamic", "1-1-1"},
		{"gregorian", "0622-07-19"},
		{"gregorian", "9999-12-31"},
		{"unix_ms", "253402300799999"},
	} {
		_, err := ParseDay(ok[0], ok[1])
		assert.NoError(t, err, ok[1])
	}

	for _, bad := range [][2]string{
		{"jd", "1e18"},
		{"jd", "0.5"},
		{"jd", "1948439.0"},
		{"jd", "5373484.5"},
		{"gregorian", "0622-07-18"},
		{"gregorian", "0001-01-01"},
		{"hebrew", "1-7-1"},
		{"hebrew", "99999999999-7-1"},
		{"islamic", "99999999999-1-1"},
		{"unix_ms", "253402300800000"},
		{"unix_ms", "-9223372036854775808"},
		{"unix_ms", "9223372036854775807"},
	} {
		_, err := ParseDay(bad[0], bad[1])
		assert.ErrorIs(t, err, ErrInvalidDate, bad[1])
	}

	_, err := ParseDay("jd", "1e18")
	assert.ErrorContains(t, err, "outside 0622-07-19 to 9999-12-31")
}

func TestDescribeDay_AdarInLeapYear(t *testing.T) {
	names := locale.MustNew().For("en")

	leap := DescribeDay(calendar.HebrewToJD(calendar.HebrewDate{Year: 5784, Month: calendar.Adar, Day: 15}), names)
	assert.Equal(t, "Adar I", leap.Hebrew.MonthName)

	common := DescribeDay(calendar.HebrewToJD(calendar.HebrewDate{Year: 5783, Month: calendar.Adar, Day: 15}), names)
	assert.Equal(t, "Adar", common.Hebrew.MonthName)
}
