package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func g(year, month, day int) GregorianDate {
	return GregorianDate{Year: year, Month: month, Day: day}
}

func TestIsGregorianLeap(t *testing.T) {
	tests := []struct {
		year int
		want bool
	}{
		{1900, false},
		{2000, true},
		{2023, false},
		{2024, true},
		{2100, false},
		{2400, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsGregorianLeap(tt.year), "year %d", tt.year)
	}
}

func TestGregorianToJD_KnownValues(t *testing.T) {
	tests := []struct {
		date GregorianDate
		want JulianDay
	}{
		{g(1, 1, 1), 1721425.5},
		{g(1970, 1, 1), 2440587.5},
		{g(2000, 1, 1), 2451544.5},
		{g(2023, 1, 1), 2459945.5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GregorianToJD(tt.date), "%+v", tt.date)
		assert.Equal(t, tt.date, JDToGregorian(tt.want))
	}
}

func TestGregorianRoundTrip(t *testing.T) {
	for year := 1; year <= 2600; year += 3 {
		for month := January; month <= December; month++ {
			for day := 1; day <= DaysInMonth(month, year); day++ {
				d := g(year, month, day)
				require.Equal(t, d, JDToGregorian(GregorianToJD(d)))
			}
		}
	}
}

func TestGregorianConsecutiveDays(t *testing.T) {
	start := GregorianToJD(g(1899, 12, 31))
	end := GregorianToJD(g(2101, 1, 1))
	prev := JDToGregorian(start)

	for jd := start + 1; jd <= end; jd++ {
		cur := JDToGregorian(jd)
		require.Equal(t, jd, GregorianToJD(cur))
		if cur.Day != 1 {
			require.Equal(t, prev.Day+1, cur.Day, "after %+v", prev)
		}
		prev = cur
	}
}

func TestJDToGregorian_IgnoresTimeOfDay(t *testing.T) {
	assert.Equal(t, g(2000, 1, 1), JDToGregorian(2451544.5))
	assert.Equal(t, g(2000, 1, 1), JDToGregorian(2451545.0)) // noon
	assert.Equal(t, g(2000, 1, 1), JDToGregorian(2451545.49))
	assert.Equal(t, g(2000, 1, 2), JDToGregorian(2451545.5))
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 29, DaysInMonth(February, 2024))
	assert.Equal(t, 28, DaysInMonth(February, 2023))
	assert.Equal(t, 30, DaysInMonth(April, 2023))
	assert.Equal(t, 31, DaysInMonth(December, 2023))
}

func TestUnixMillis(t *testing.T) {
	assert.Equal(t, int64(0), JDToUnixMillis(UnixEpoch))
	assert.Equal(t, JulianDay(UnixEpoch), UnixMillisToJD(0))

	jd := GregorianToJD(g(2023, 12, 25))
	want := time.Date(2023, time.December, 25, 0, 0, 0, 0, time.UTC).UnixMilli()
	assert.Equal(t, want, JDToUnixMillis(jd))
	assert.Equal(t, jd, UnixMillisToJD(want))

	for _, ms := range []int64{1, 999, 86_399_999, 1_700_000_000_123, -86_400_000} {
		assert.Equal(t, ms, JDToUnixMillis(UnixMillisToJD(ms)), "ms %d", ms)
	}
}

func TestFromTime(t *testing.T) {
	utc := time.Date(2023, time.July, 4, 18, 30, 0, 0, time.UTC)
	assert.Equal(t, GregorianToJD(g(2023, 7, 4)), FromTime(utc))

	// 23:30 on July 4 in UTC-5 is already July 5 in UTC; the local civil date wins.
	est := time.FixedZone("EST", -5*60*60)
	late := time.Date(2023, time.July, 4, 23, 30, 0, 0, est)
	assert.Equal(t, GregorianToJD(g(2023, 7, 4)), FromTime(late))

	tokyo := time.FixedZone("JST", 9*60*60)
	early := time.Date(2023, time.July, 5, 0, 15, 0, 0, tokyo)
	assert.Equal(t, GregorianToJD(g(2023, 7, 5)), FromTime(early))
}

func TestJulianDay_Time(t *testing.T) {
	jd := GregorianToJD(g(2024, 2, 29))
	got := jd.Time(time.UTC)
	assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), got)
	assert.Equal(t, jd, FromTime(got))
}
