package holiday

import (
	"fmt"

	"github.com/zapponejosh/holiday-calendar/internal/calendar"
)

// RuleSpec is the flat, serializable form of a Rule. Only the fields used by
// Kind are meaningful.
type RuleSpec struct {
	Kind    Kind   `json:"kind"`
	Month   int    `json:"month,omitempty"`
	Day     int    `json:"day,omitempty"`
	N       int    `json:"n,omitempty"`
	Weekday int    `json:"weekday,omitempty"`
	Offset  int    `json:"offset,omitempty"`
	Name    string `json:"name,omitempty"`
}

// ParseRule validates a spec and returns the rule it describes.
func ParseRule(s RuleSpec) (Rule, error) {
	var r Rule

	switch s.Kind {
	case KindFixed:
		r = FixedDate{Month: s.Month, Day: s.Day}
	case KindNthWeekday:
		r = NthWeekday{N: s.N, Weekday: calendar.Weekday(s.Weekday), Month: s.Month}
	case KindLastWeekday:
		r = LastWeekday{Weekday: calendar.Weekday(s.Weekday), Month: s.Month}
	case KindEaster:
		r = EasterRelative{Offset: s.Offset}
	case KindComputed:
		r = Computed{Name: s.Name}
	case KindHebrew:
		r = HebrewDate{Month: s.Month, Day: s.Day}
	case KindIslamic:
		r = IslamicDate{Month: s.Month, Day: s.Day}
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidRule, s.Kind)
	}

	if err := Validate(r); err != nil {
		return nil, err
	}
	return r, nil
}

// SpecOf returns the serializable form of r.
func SpecOf(r Rule) RuleSpec {
	switch r := r.(type) {
	case FixedDate:
		return RuleSpec{Kind: KindFixed, Month: r.Month, Day: r.Day}
	case NthWeekday:
		return RuleSpec{Kind: KindNthWeekday, N: r.N, Weekday: int(r.Weekday), Month: r.Month}
	case LastWeekday:
		return RuleSpec{Kind: KindLastWeekday, Weekday: int(r.Weekday), Month: r.Month}
	case EasterRelative:
		return RuleSpec{Kind: KindEaster, Offset: r.Offset}
	case Computed:
		return RuleSpec{Kind: KindComputed, Name: r.Name}
	case HebrewDate:
		return RuleSpec{Kind: KindHebrew, Month: r.Month, Day: r.Day}
	case IslamicDate:
		return RuleSpec{Kind: KindIslamic, Month: r.Month, Day: r.Day}
	}
	return RuleSpec{}
}

// Validate checks that a rule can be resolved for every year. FixedDate on
// February 29 is accepted; in common years it resolves to March 1.
func Validate(r Rule) error {
	switch r := r.(type) {
	case FixedDate:
		if r.Month < 1 || r.Month > 12 {
			return fmt.Errorf("%w: month %d out of range 1-12", ErrInvalidRule, r.Month)
		}
		if r.Day < 1 || r.Day > calendar.DaysInMonth(r.Month, 2000) {
			return fmt.Errorf("%w: day %d out of range for month %d", ErrInvalidRule, r.Day, r.Month)
		}
	case NthWeekday:
		if r.Month < 1 || r.Month > 12 {
			return fmt.Errorf("%w: month %d out of range 1-12", ErrInvalidRule, r.Month)
		}
		if r.N < 1 || r.N > 5 {
			return fmt.Errorf("%w: n %d out of range 1-5", ErrInvalidRule, r.N)
		}
		if r.Weekday < calendar.Sunday || r.Weekday > calendar.Saturday {
			return fmt.Errorf("%w: weekday %d out of range 0-6", ErrInvalidRule, r.Weekday)
		}
	case LastWeekday:
		if r.Month < 1 || r.Month > 12 {
			return fmt.Errorf("%w: month %d out of range 1-12", ErrInvalidRule, r.Month)
		}
		if r.Weekday < calendar.Sunday || r.Weekday > calendar.Saturday {
			return fmt.Errorf("%w: weekday %d out of range 0-6", ErrInvalidRule, r.Weekday)
		}
	case EasterRelative:
		// Any offset is arithmetic on the Easter date.
	case Computed:
		if _, ok := computations[r.Name]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownComputed, r.Name)
		}
	case HebrewDate:
		if r.Month < 1 || r.Month > 13 {
			return fmt.Errorf("%w: hebrew month %d out of range 1-13", ErrInvalidRule, r.Month)
		}
		maxDay := 30
		if !hebrewMonthCanHave30(r.Month) {
			maxDay = 29
		}
		if r.Day < 1 || r.Day > maxDay {
			return fmt.Errorf("%w: day %d out of range for hebrew month %d", ErrInvalidRule, r.Day, r.Month)
		}
	case IslamicDate:
		if r.Month < 1 || r.Month > 12 {
			return fmt.Errorf("%w: islamic month %d out of range 1-12", ErrInvalidRule, r.Month)
		}
		if r.Day < 1 || r.Day > 29 {
			// Day 30 does not exist every year.
			return fmt.Errorf("%w: day %d out of range 1-29 for islamic month %d", ErrInvalidRule, r.Day, r.Month)
		}
	case nil:
		return fmt.Errorf("%w: missing rule", ErrInvalidRule)
	default:
		return fmt.Errorf("%w: unsupported rule type %T", ErrInvalidRule, r)
	}
	return nil
}

// hebrewMonthCanHave30 reports whether month is 30 days long in at least
// some years. Day 30 of a variable month still shifts into the next month
// in short years, so only the always-29 months are rejected.
func hebrewMonthCanHave30(month int) bool {
	switch month {
	case calendar.Iyyar, calendar.Tammuz, calendar.Elul, calendar.Teveth, calendar.VeAdar:
		return false
	}
	return true
}
