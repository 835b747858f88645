package holiday

import "github.com/zapponejosh/holiday-calendar/internal/calendar"

// Declaration is a named holiday rule. SortOrder breaks ties between
// holidays on the same day; equal SortOrders keep declaration order.
type Declaration struct {
	Name      string
	Rule      Rule
	SortOrder int
}

// Rule sets selectable by name.
const (
	RuleSetStandard = "standard"
	RuleSetExtended = "extended"
)

// StandardDeclarations returns the U.S. civic and popular holidays plus
// Mardi Gras and Easter.
func StandardDeclarations() []Declaration {
	return []Declaration{
		{Name: "newyearseve", Rule: FixedDate{Month: calendar.December, Day: 31}},
		{Name: "valentinesday", Rule: FixedDate{Month: calendar.February, Day: 14}},
		{Name: "presidentsday", Rule: NthWeekday{N: 3, Weekday: calendar.Monday, Month: calendar.February}},
		{Name: "stpatricksday", Rule: FixedDate{Month: calendar.March, Day: 17}},
		{Name: "aprilfoolsday", Rule: FixedDate{Month: calendar.April, Day: 1}},
		{Name: "cincodemayo", Rule: FixedDate{Month: calendar.May, Day: 5}},
		{Name: "mothersday", Rule: NthWeekday{N: 2, Weekday: calendar.Sunday, Month: calendar.May}},
		{Name: "memorialday", Rule: Computed{Name: "memorialday"}},
		{Name: "fathersday", Rule: NthWeekday{N: 3, Weekday: calendar.Sunday, Month: calendar.June}},
		{Name: "fourthofjuly", Rule: FixedDate{Month: calendar.July, Day: 4}},
		{Name: "laborday", Rule: NthWeekday{N: 1, Weekday: calendar.Monday, Month: calendar.September}},
		{Name: "columbusday", Rule: NthWeekday{N: 2, Weekday: calendar.Monday, Month: calendar.October}},
		{Name: "halloween", Rule: FixedDate{Month: calendar.October, Day: 31}},
		{Name: "thanksgiving", Rule: NthWeekday{N: 4, Weekday: calendar.Thursday, Month: calendar.November}},
		{Name: "christmaseve", Rule: FixedDate{Month: calendar.December, Day: 24}},
		{Name: "christmasday", Rule: FixedDate{Month: calendar.December, Day: 25}},
		{Name: "mardigras", Rule: EasterRelative{Offset: calendar.OffsetMardiGras}},
		{Name: "easter", Rule: EasterRelative{Offset: 0}},
	}
}

// ExtendedDeclarations returns the standard set followed by the movable
// Christian feasts and the major Hebrew and Islamic holidays.
func ExtendedDeclarations() []Declaration {
	return append(StandardDeclarations(),
		Declaration{Name: "ashwednesday", Rule: EasterRelative{Offset: calendar.OffsetAshWednesday}},
		Declaration{Name: "palmsunday", Rule: EasterRelative{Offset: calendar.OffsetPalmSunday}},
		Declaration{Name: "goodfriday", Rule: EasterRelative{Offset: calendar.OffsetGoodFriday}},
		Declaration{Name: "ascension", Rule: EasterRelative{Offset: calendar.OffsetAscension}},
		Declaration{Name: "pentecost", Rule: EasterRelative{Offset: calendar.OffsetPentecost}},
		Declaration{Name: "advent", Rule: Computed{Name: "advent"}},

		Declaration{Name: "roshhashanah", Rule: HebrewDate{Month: calendar.Tishri, Day: 1}},
		Declaration{Name: "yomkippur", Rule: HebrewDate{Month: calendar.Tishri, Day: 10}},
		Declaration{Name: "sukkot", Rule: HebrewDate{Month: calendar.Tishri, Day: 15}},
		Declaration{Name: "hanukkah", Rule: HebrewDate{Month: calendar.Kislev, Day: 25}},
		Declaration{Name: "purim", Rule: HebrewDate{Month: calendar.VeAdar, Day: 14}},
		Declaration{Name: "passover", Rule: HebrewDate{Month: calendar.Nisan, Day: 15}},

		Declaration{Name: "islamicnewyear", Rule: IslamicDate{Month: 1, Day: 1}},
		Declaration{Name: "ramadanbegins", Rule: IslamicDate{Month: 9, Day: 1}},
		Declaration{Name: "eidalfitr", Rule: IslamicDate{Month: 10, Day: 1}},
		Declaration{Name: "eidaladha", Rule: IslamicDate{Month: 12, Day: 10}},
	)
}

// DeclarationsFor returns the named rule set and whether it exists.
func DeclarationsFor(ruleSet string) ([]Declaration, bool) {
	switch ruleSet {
	case RuleSetStandard, "":
		return StandardDeclarations(), true
	case RuleSetExtended:
		return ExtendedDeclarations(), true
	}
	return nil, false
}
