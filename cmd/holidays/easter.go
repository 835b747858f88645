// Easter command prints Western Easter or a day relative to it.
package main

import (
	"github.com/spf13/cobra"

	"github.com/zapponejosh/holiday-calendar/internal/calendar"
	"github.com/zapponejosh/holiday-calendar/internal/render"
)

func (c *cli) easterCmd() *cobra.Command {
	var offset int

	cmd := &cobra.Command{
		Use:   "easter [year]",
		Short: "Print the date of Easter Sunday",
		Long: `Easter prints Western Easter Sunday for a Gregorian year, or the day
--offset days from it.

Example:
  holidays easter 2025
  holidays easter 2025 --offset -47   # Mardi Gras`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := parseYearArg(args, 0)
			if err != nil {
				return err
			}

			day := render.DescribeDay(calendar.EasterJD(year, offset), c.names)
			if c.jsonOutput() {
				return c.printJSON(map[string]any{"year": year, "offset": offset, "day": day})
			}
			return c.printDay(day, nil)
		},
	}

	cmd.Flags().IntVar(&offset, "offset", 0, "days after Easter (negative for before)")
	return cmd
}
