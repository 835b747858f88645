// Shared output helpers for holidays CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/zapponejosh/holiday-calendar/internal/calendar"
	"github.com/zapponejosh/holiday-calendar/internal/render"
)

func (c *cli) printJSON(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (c *cli) table() *tabwriter.Writer {
	return tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
}

func (c *cli) printHolidays(holidays []render.Holiday) error {
	tw := c.table()
	fmt.Fprintln(tw, "DATE\tWEEKDAY\tNAME\tHOLIDAY")
	for _, h := range holidays {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", h.Date, h.WeekdayName, h.Name, h.DisplayName)
	}
	return tw.Flush()
}

// printDay writes d as aligned label/value lines, followed by holidays when
// any are given.
func (c *cli) printDay(d render.Day, holidays []render.Holiday) error {
	tw := c.table()
	fmt.Fprintf(tw, "gregorian\t%s\t%s %d %s %d\n", d.Gregorian.ISO, d.WeekdayName, d.Gregorian.Day, d.Gregorian.MonthName, d.Gregorian.Year)
	fmt.Fprintf(tw, "hebrew\t%d-%d-%d\t%d %s %d\n", d.Hebrew.Year, d.Hebrew.Month, d.Hebrew.Day, d.Hebrew.Day, d.Hebrew.MonthName, d.Hebrew.Year)
	fmt.Fprintf(tw, "islamic\t%d-%d-%d\t%d %s %d\n", d.Islamic.Year, d.Islamic.Month, d.Islamic.Day, d.Islamic.Day, d.Islamic.MonthName, d.Islamic.Year)
	fmt.Fprintf(tw, "jd\t%s\t\n", strconv.FormatFloat(d.JD, 'f', -1, 64))
	fmt.Fprintf(tw, "unix_ms\t%d\t\n", d.UnixMillis)

	if len(holidays) > 0 {
		names := make([]string, len(holidays))
		for i, h := range holidays {
			names[i] = h.DisplayName
		}
		fmt.Fprintf(tw, "holidays\t%s\t\n", strings.Join(names, ", "))
	}
	return tw.Flush()
}

// parseYearArg reads an optional year argument, defaulting to the current
// year.
func parseYearArg(args []string, i int) (int, error) {
	if len(args) <= i {
		return time.Now().Year(), nil
	}
	year, err := strconv.Atoi(args[i])
	if err != nil {
		return 0, fmt.Errorf("year must be an integer, got %q", args[i])
	}
	return year, checkYear(year)
}

func checkYear(year int) error {
	if !render.ValidEasterYear(year) {
		return fmt.Errorf("year must be between %d and %d, got %d",
			calendar.MinEasterYear, calendar.MaxEasterYear, year)
	}
	return nil
}
