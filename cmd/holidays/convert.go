// Convert command re-expresses a day in every calendar.
package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/holiday-calendar/internal/render"
)

func (c *cli) convertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <" + strings.Join(render.Notations, "|") + "> <value>",
		Short: "Convert a day between calendars",
		Long: `Convert reads a day in one notation and prints it in all of them.

Hebrew months are numbered from Nisan (1) with Adar II as 13. Islamic dates
use the tabular calendar.

The day must fall between 1 Muharram AH 1 (0622-07-19, JD 1948439.5) and
9999-12-31 (JD 5373483.5).

Example:
  holidays convert gregorian 2000-01-01
  holidays convert hebrew 5785-7-1
  holidays convert jd 2460309.5`,
		Args:      cobra.ExactArgs(2),
		ValidArgs: render.Notations,
		RunE: func(cmd *cobra.Command, args []string) error {
			jd, err := render.ParseDay(args[0], args[1])
			if err != nil {
				return err
			}

			day := render.DescribeDay(jd, c.names)
			if c.jsonOutput() {
				return c.printJSON(day)
			}
			return c.printDay(day, nil)
		},
	}
}
