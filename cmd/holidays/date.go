// Date command resolves one holiday.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/holiday-calendar/internal/holiday"
	"github.com/zapponejosh/holiday-calendar/internal/render"
)

func (c *cli) dateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "date <name> [year]",
		Short: "Print the date of a holiday",
		Long: `Date prints the date a holiday falls on in the Gregorian year (default: the
current year).

Example:
  holidays date thanksgiving 2024
  holidays date passover 2025 --rules extended`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			year, err := parseYearArg(args, 1)
			if err != nil {
				return err
			}

			jd, ok := c.registry.ForYear(year).DateOf(name)
			if !ok {
				return fmt.Errorf("unknown holiday %q", name)
			}

			h := render.DescribeHoliday(holiday.Entry{Name: name, JD: jd}, c.names)
			if c.jsonOutput() {
				return c.printJSON(h)
			}
			_, err = fmt.Fprintf(c.out, "%s %s %s\n", h.Date, h.WeekdayName, h.DisplayName)
			return err
		},
	}
}
