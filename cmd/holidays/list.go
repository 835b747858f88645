// List command prints every holiday of a year.
package main

import (
	"github.com/spf13/cobra"

	"github.com/zapponejosh/holiday-calendar/internal/render"
)

func (c *cli) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [year]",
		Short: "List the holidays of a year in date order",
		Long: `List resolves every declared holiday for the Gregorian year (default: the
current year) and prints them in date order.

Example:
  holidays list 2024
  holidays list 2024 --rules extended --lang es`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := parseYearArg(args, 0)
			if err != nil {
				return err
			}

			table := render.DescribeTable(c.registry.ForYear(year), c.names, c.names.Language().String())
			if c.jsonOutput() {
				return c.printJSON(table)
			}
			return c.printHolidays(table.Holidays)
		},
	}
}
