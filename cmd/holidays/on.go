// On command describes one day and the holidays falling on it.
package main

import (
	"github.com/spf13/cobra"

	"github.com/zapponejosh/holiday-calendar/internal/holiday"
	"github.com/zapponejosh/holiday-calendar/internal/render"
)

func (c *cli) onCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "on <YYYY-MM-DD>",
		Short: "Show the holidays on a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := render.ParseGregorian(args[0])
			if err != nil {
				return err
			}
			if err := checkYear(date.Year); err != nil {
				return err
			}

			jd := date.JD()
			holidays := []render.Holiday{}
			for _, name := range c.registry.ForYear(date.Year).HolidaysOn(jd) {
				holidays = append(holidays, render.DescribeHoliday(holiday.Entry{Name: name, JD: jd}, c.names))
			}
			day := render.DescribeDay(jd, c.names)

			if c.jsonOutput() {
				return c.printJSON(map[string]any{"day": day, "holidays": holidays})
			}
			return c.printDay(day, holidays)
		},
	}
}
