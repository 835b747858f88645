// ICS command exports a year of holidays as an iCalendar file.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/holiday-calendar/internal/ical"
)

func (c *cli) icsCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "ics [year]",
		Short: "Export the holidays of a year as iCalendar",
		Long: `ICS writes one all-day event per holiday. Event UIDs depend only on the
holiday and the year, so re-importing a file updates events in place.

Example:
  holidays ics 2025 -o holidays-2025.ics`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := parseYearArg(args, 0)
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				return c.encodeICS(c.out, year)
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}
			if err := c.encodeICS(f, year); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return cmd
}

func (c *cli) encodeICS(w io.Writer, year int) error {
	if err := ical.Encode(w, c.registry.ForYear(year), c.names, time.Now()); err != nil {
		return fmt.Errorf("encode calendar: %w", err)
	}
	return nil
}
