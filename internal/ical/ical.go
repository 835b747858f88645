// Package ical renders a holiday table as an RFC 5545 calendar of all-day
// events.
package ical

import (
	"fmt"
	"io"
	"time"

	goical "github.com/emersion/go-ical"
	"github.com/google/uuid"

	"github.com/zapponejosh/holiday-calendar/internal/holiday"
	"github.com/zapponejosh/holiday-calendar/internal/locale"
)

const (
	ProductID = "-//zapponejosh//holiday-calendar//EN"
	uidDomain = "holiday-calendar"
)

// uidNamespace seeds the name-based event UIDs.
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/zapponejosh/holiday-calendar"))

// emptyCalendar is written for tables with no holidays; go-ical refuses to
// encode a VCALENDAR without components.
const emptyCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ProductID + "\r\nCALSCALE:GREGORIAN\r\nEND:VCALENDAR\r\n"

// UID returns the stable event UID of a holiday in a year.
func UID(name string, year int) string {
	id := uuid.NewSHA1(uidNamespace, []byte(fmt.Sprintf("%s/%d", name, year)))
	return id.String() + "@" + uidDomain
}

// Encode writes table to w. Summaries come from names when it is non-nil.
// now stamps every event.
func Encode(w io.Writer, table *holiday.Table, names locale.Names, now time.Time) error {
	if table.Len() == 0 {
		_, err := io.WriteString(w, emptyCalendar)
		return err
	}

	cal := goical.NewCalendar()
	cal.Props.SetText(goical.PropVersion, "2.0")
	cal.Props.SetText(goical.PropProductID, ProductID)
	cal.Props.SetText(goical.PropCalendarScale, "GREGORIAN")
	cal.Props.SetText("X-WR-CALNAME", fmt.Sprintf("Holidays %d", table.Year()))

	stamp := goical.NewProp(goical.PropDateTimeStamp)
	stamp.SetDateTime(now.UTC())

	for _, e := range table.Entries() {
		summary := e.Name
		if names != nil {
			summary = names.HolidayName(e.Name)
		}

		day := e.JD.Time(time.UTC)

		event := goical.NewEvent()
		event.Props.SetText(goical.PropUID, UID(e.Name, table.Year()))
		event.Props.Set(stamp)
		event.Props.SetText(goical.PropSummary, summary)
		event.Props.SetText(goical.PropTransparency, "TRANSPARENT")

		start := goical.NewProp(goical.PropDateTimeStart)
		start.SetDate(day)
		event.Props.Set(start)

		end := goical.NewProp(goical.PropDateTimeEnd)
		end.SetDate(day.AddDate(0, 0, 1))
		event.Props.Set(end)

		cal.Children = append(cal.Children, event.Component)
	}

	if err := goical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("encode calendar: %w", err)
	}
	return nil
}
