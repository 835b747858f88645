// Package locale provides display names for months, weekdays and holidays.
// The calendar core only deals in numbers and slugs; callers look names up
// through the Names interface.
package locale

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/zapponejosh/holiday-calendar/internal/calendar"
)

//go:embed locales/*.json
var localeFS embed.FS

// Names looks up display names. Unknown keys fall back to English and then
// to the lookup key itself.
type Names interface {
	MonthName(month int) string
	WeekdayName(w calendar.Weekday) string
	HebrewMonthName(month, year int) string
	IslamicMonthName(month int) string
	HolidayName(slug string) string
}

// Catalog holds every embedded translation.
type Catalog struct {
	bundle  *i18n.Bundle
	tags    []language.Tag
	matcher language.Matcher
}

// New loads the embedded message files. English is the default language and
// is always listed first.
func New() (*Catalog, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("read locales: %w", err)
	}

	tags := []language.Tag{language.English}
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			continue
		}

		mf, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", name, err)
		}
		if mf.Tag != language.English {
			tags = append(tags, mf.Tag)
		}
	}

	return &Catalog{
		bundle:  bundle,
		tags:    tags,
		matcher: language.NewMatcher(tags),
	}, nil
}

// MustNew is like New but panics on error. The message files are embedded,
// so an error here is a build defect.
func MustNew() *Catalog {
	c, err := New()
	if err != nil {
		panic(err)
	}
	return c
}

// Languages returns the supported languages, English first.
func (c *Catalog) Languages() []language.Tag {
	out := make([]language.Tag, len(c.tags))
	copy(out, c.tags)
	return out
}

// Match picks the best supported language for a list of preferences, tried
// in order. Each preference may be a single tag ("es") or a full
// Accept-Language header. Anything unmatched resolves to English.
func (c *Catalog) Match(prefs ...string) language.Tag {
	for _, p := range prefs {
		if p == "" {
			continue
		}
		want, _, err := language.ParseAcceptLanguage(p)
		if err != nil || len(want) == 0 {
			continue
		}
		if _, index, confidence := c.matcher.Match(want...); confidence != language.No {
			return c.tags[index]
		}
	}
	return language.English
}

// For returns the names of the best match for prefs.
func (c *Catalog) For(prefs ...string) *Localizer {
	tag := c.Match(prefs...)
	return &Localizer{
		tag:       tag,
		localizer: i18n.NewLocalizer(c.bundle, tag.String()),
	}
}

// Localizer implements Names for one language.
type Localizer struct {
	tag       language.Tag
	localizer *i18n.Localizer
}

// Language returns the language names are looked up in.
func (l *Localizer) Language() language.Tag { return l.tag }

func (l *Localizer) MonthName(month int) string {
	return l.lookup(fmt.Sprintf("month_%d", month))
}

func (l *Localizer) WeekdayName(w calendar.Weekday) string {
	return l.lookup(fmt.Sprintf("weekday_%d", int(w)))
}

// HebrewMonthName names month of the Hebrew year. Adar is Adar I in leap
// years.
func (l *Localizer) HebrewMonthName(month, year int) string {
	if month == calendar.Adar && calendar.IsHebrewLeap(year) {
		return l.lookup("hebrew_month_adar_i")
	}
	return l.lookup(fmt.Sprintf("hebrew_month_%d", month))
}

func (l *Localizer) IslamicMonthName(month int) string {
	return l.lookup(fmt.Sprintf("islamic_month_%d", month))
}

// HolidayName returns the display name of a holiday slug, or the slug when
// no translation exists.
func (l *Localizer) HolidayName(slug string) string {
	msg := l.lookup("holiday_" + slug)
	if msg == "holiday_"+slug {
		return slug
	}
	return msg
}

func (l *Localizer) lookup(id string) string {
	// A fallback translation may come back alongside an error.
	msg, _ := l.localizer.Localize(&i18n.LocalizeConfig{MessageID: id})
	if msg == "" {
		return id
	}
	return msg
}
