package database

import (
	"time"

	"github.com/zapponejosh/holiday-calendar/internal/holiday"
)

// DeclaredHoliday is one row of declared_holidays.
type DeclaredHoliday struct {
	ID        int64            `json:"id"`
	Name      string           `json:"name"`
	Rule      holiday.RuleSpec `json:"rule"`
	SortOrder int              `json:"sort_order"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// Declaration parses the stored rule. Rows written through this package are
// always valid, but the table can be edited by hand.
func (h DeclaredHoliday) Declaration() (holiday.Declaration, error) {
	rule, err := holiday.ParseRule(h.Rule)
	if err != nil {
		return holiday.Declaration{}, err
	}
	return holiday.Declaration{Name: h.Name, Rule: rule, SortOrder: h.SortOrder}, nil
}
