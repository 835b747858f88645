package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/zapponejosh/holiday-calendar/internal/calendar"
	"github.com/zapponejosh/holiday-calendar/internal/config"
	"github.com/zapponejosh/holiday-calendar/internal/database"
	"github.com/zapponejosh/holiday-calendar/internal/holiday"
	"github.com/zapponejosh/holiday-calendar/internal/ical"
	"github.com/zapponejosh/holiday-calendar/internal/locale"
	"github.com/zapponejosh/holiday-calendar/internal/logger"
	"github.com/zapponejosh/holiday-calendar/internal/render"
)

// Handlers contains all HTTP handlers and their dependencies.
type Handlers struct {
	registry atomic.Pointer[holiday.Registry]
	db       *database.DB // nil when serving a built-in rule set
	catalog  *locale.Catalog
	cfg      *config.Config
	logger   *slog.Logger

	// now is replaced in tests.
	now func() time.Time
}

// NewHandlers creates handlers serving reg. db may be nil; declaration admin
// is only routed when it is not.
func NewHandlers(reg *holiday.Registry, db *database.DB, catalog *locale.Catalog, cfg *config.Config, logger *slog.Logger) *Handlers {
	h := &Handlers{
		db:      db,
		catalog: catalog,
		cfg:     cfg,
		logger:  logger,
		now:     time.Now,
	}
	h.registry.Store(reg)
	return h
}

// Registry returns the registry currently being served.
func (h *Handlers) Registry() *holiday.Registry {
	return h.registry.Load()
}

// Reload rebuilds the registry from the database. In-flight requests keep
// the registry they started with.
func (h *Handlers) Reload(ctx context.Context) error {
	if h.db == nil {
		return nil
	}

	var opts []holiday.Option
	if h.cfg.CacheTables {
		opts = append(opts, holiday.WithCache())
	}

	reg, err := holiday.NewRegistryFromSource(ctx, h.db, opts...)
	if err != nil {
		return fmt.Errorf("reload registry: %w", err)
	}
	h.registry.Store(reg)

	h.logger.Info("registry reloaded", slog.Int("declarations", len(reg.Declarations())))
	return nil
}

// names picks the display language from ?lang=, then Accept-Language, then
// the configured default.
func (h *Handlers) names(r *http.Request) *locale.Localizer {
	return h.catalog.For(r.URL.Query().Get("lang"), r.Header.Get("Accept-Language"), h.cfg.DefaultLocale)
}

// year reads ?year=, defaulting to the current year.
func (h *Handlers) year(r *http.Request) (int, error) {
	s := r.URL.Query().Get("year")
	if s == "" {
		return h.now().Year(), nil
	}
	return parseYear(s)
}

func parseYear(s string) (int, error) {
	year, err := strconv.Atoi(s)
	if err != nil || !render.ValidEasterYear(year) {
		return 0, fmt.Errorf("year must be an integer between %d and %d, got %q",
			calendar.MinEasterYear, calendar.MaxEasterYear, s)
	}
	return year, nil
}

// =============================================================================
// Health
// =============================================================================

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	source := "builtin"
	if h.db != nil {
		source = "database"
		if err := h.db.Health(ctx); err != nil {
			logger.Warn(ctx, "health check failed", slog.Any("error", err))
			WriteError(w, http.StatusServiceUnavailable, "Database unhealthy", CodeUnavailable)
			return
		}
	}

	WriteSuccess(w, map[string]any{
		"status":       "healthy",
		"source":       source,
		"declarations": len(h.Registry().Declarations()),
		"languages":    languageStrings(h.catalog),
	})
}

func languageStrings(c *locale.Catalog) []string {
	var out []string
	for _, tag := range c.Languages() {
		out = append(out, tag.String())
	}
	return out
}

// =============================================================================
// Holidays
// =============================================================================

// ListHolidays handles GET /api/v1/holidays?year=&lang=
func (h *Handlers) ListHolidays(w http.ResponseWriter, r *http.Request) {
	year, err := h.year(r)
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	names := h.names(r)
	table := h.Registry().ForYear(year)

	WriteSuccess(w, render.DescribeTable(table, names, names.Language().String()))
}

// GetHoliday handles GET /api/v1/holidays/{name}?year=
func (h *Handlers) GetHoliday(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	year, err := h.year(r)
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	table := h.Registry().ForYear(year)
	jd, ok := table.DateOf(name)
	if !ok {
		WriteNotFound(w, fmt.Sprintf("Unknown holiday: %s", name))
		return
	}

	WriteSuccess(w, render.DescribeHoliday(holiday.Entry{Name: name, JD: jd}, h.names(r)))
}

// HolidaysOn handles GET /api/v1/holidays/on/{YYYY-MM-DD}
func (h *Handlers) HolidaysOn(w http.ResponseWriter, r *http.Request) {
	dateStr := chi.URLParam(r, "date")

	date, err := render.ParseGregorian(dateStr)
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}
	if !render.ValidEasterYear(date.Year) {
		WriteBadRequest(w, fmt.Sprintf("year must be between %d and %d", calendar.MinEasterYear, calendar.MaxEasterYear))
		return
	}

	names := h.names(r)
	jd := date.JD()
	table := h.Registry().ForYear(date.Year)

	holidays := []render.Holiday{}
	for _, name := range table.HolidaysOn(jd) {
		holidays = append(holidays, render.DescribeHoliday(holiday.Entry{Name: name, JD: jd}, names))
	}

	WriteSuccess(w, map[string]any{
		"day":      render.DescribeDay(jd, names),
		"holidays": holidays,
	})
}

// HolidaysICS handles GET /api/v1/holidays.ics?year=&lang=
func (h *Handlers) HolidaysICS(w http.ResponseWriter, r *http.Request) {
	year, err := h.year(r)
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	table := h.Registry().ForYear(year)

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="holidays-%d.ics"`, year))
	if err := ical.Encode(w, table, h.names(r), h.now()); err != nil {
		// Headers are already sent.
		logger.Error(r.Context(), "failed to encode calendar", err, slog.Int("year", year))
	}
}

// =============================================================================
// Conversions
// =============================================================================

// Convert handles GET /api/v1/convert with exactly one of jd, gregorian,
// hebrew, islamic or unix_ms.
func (h *Handlers) Convert(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var given []string
	for _, key := range render.Notations {
		if q.Has(key) {
			given = append(given, key)
		}
	}
	if len(given) != 1 {
		WriteBadRequest(w, "Exactly one of jd, gregorian, hebrew, islamic or unix_ms is required")
		return
	}

	jd, err := render.ParseDay(given[0], q.Get(given[0]))
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	WriteSuccess(w, render.DescribeDay(jd, h.names(r)))
}

// Easter handles GET /api/v1/easter/{year}?offset=
func (h *Handlers) Easter(w http.ResponseWriter, r *http.Request) {
	year, err := parseYear(chi.URLParam(r, "year"))
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	offset := 0
	if s := r.URL.Query().Get("offset"); s != "" {
		if offset, err = strconv.Atoi(s); err != nil {
			WriteBadRequest(w, fmt.Sprintf("offset must be an integer, got %q", s))
			return
		}
	}

	WriteSuccess(w, map[string]any{
		"year":   year,
		"offset": offset,
		"day":    render.DescribeDay(calendar.EasterJD(year, offset), h.names(r)),
	})
}

// =============================================================================
// Declarations
// =============================================================================

// ListDeclarations handles GET /api/v1/declarations
func (h *Handlers) ListDeclarations(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.ListDeclarations(r.Context())
	if err != nil {
		logger.Error(r.Context(), "failed to list declarations", err)
		WriteInternalError(w, "Failed to list declarations")
		return
	}
	if rows == nil {
		rows = []database.DeclaredHoliday{}
	}
	WriteSuccess(w, rows)
}

// CreateDeclaration handles POST /api/v1/declarations
func (h *Handlers) CreateDeclaration(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var decl holiday.Declaration
	if err := json.NewDecoder(r.Body).Decode(&decl); err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid declaration: %v", err))
		return
	}
	if decl.Name == "" {
		WriteBadRequest(w, "name is required")
		return
	}

	row, err := h.db.CreateDeclaration(ctx, decl)
	switch {
	case database.IsDuplicate(err):
		WriteConflict(w, fmt.Sprintf("Holiday already declared: %s", decl.Name))
		return
	case errors.Is(err, holiday.ErrInvalidRule), errors.Is(err, holiday.ErrUnknownComputed):
		WriteBadRequest(w, err.Error())
		return
	case err != nil:
		logger.Error(ctx, "failed to create declaration", err, slog.String("name", decl.Name))
		WriteInternalError(w, "Failed to create declaration")
		return
	}

	if err := h.Reload(ctx); err != nil {
		logger.Error(ctx, "failed to reload registry", err)
		WriteInternalError(w, "Declaration stored but registry reload failed")
		return
	}

	WriteCreated(w, row)
}

// DeleteDeclaration handles DELETE /api/v1/declarations/{name}
func (h *Handlers) DeleteDeclaration(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := chi.URLParam(r, "name")

	err := h.db.DeleteDeclaration(ctx, name)
	if database.IsNotFound(err) {
		WriteNotFound(w, fmt.Sprintf("Unknown holiday: %s", name))
		return
	}
	if err != nil {
		logger.Error(ctx, "failed to delete declaration", err, slog.String("name", name))
		WriteInternalError(w, "Failed to delete declaration")
		return
	}

	if err := h.Reload(ctx); err != nil {
		logger.Error(ctx, "failed to reload registry", err)
		WriteInternalError(w, "Declaration deleted but registry reload failed")
		return
	}

	WriteSuccess(w, map[string]string{"deleted": name})
}
