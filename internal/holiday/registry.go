package holiday

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/zapponejosh/holiday-calendar/internal/calendar"
)

// Registry evaluates a fixed list of declarations against any year.
type Registry struct {
	decls []Declaration

	cache *tableCache
}

// Option configures a Registry.
type Option func(*Registry)

// WithCache memoizes one table per requested year.
func WithCache() Option {
	return func(r *Registry) {
		r.cache = &tableCache{tables: make(map[int]*Table)}
	}
}

// NewRegistry validates decls and returns a registry over a copy of them.
// Names must be unique and non-empty.
func NewRegistry(decls []Declaration, opts ...Option) (*Registry, error) {
	seen := make(map[string]bool, len(decls))
	var errs []error

	for _, d := range decls {
		if d.Name == "" {
			errs = append(errs, errors.New("holiday name is required"))
			continue
		}
		if seen[d.Name] {
			errs = append(errs, fmt.Errorf("duplicate holiday %q", d.Name))
			continue
		}
		seen[d.Name] = true

		if err := Validate(d.Rule); err != nil {
			errs = append(errs, fmt.Errorf("holiday %q: %w", d.Name, err))
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	r := &Registry{decls: make([]Declaration, len(decls))}
	copy(r.decls, decls)

	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Standard returns a registry over StandardDeclarations.
func Standard(opts ...Option) *Registry {
	r, err := NewRegistry(StandardDeclarations(), opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// Declarations returns a copy of the registry's declarations.
func (r *Registry) Declarations() []Declaration {
	out := make([]Declaration, len(r.decls))
	copy(out, r.decls)
	return out
}

// ForYear returns the holiday table of year.
func (r *Registry) ForYear(year int) *Table {
	if r.cache != nil {
		return r.cache.get(year, r.build)
	}
	return r.build(year)
}

func (r *Registry) build(year int) *Table {
	type ordered struct {
		entry Entry
		sort  int
	}

	rows := make([]ordered, len(r.decls))
	for i, d := range r.decls {
		rows[i] = ordered{
			entry: Entry{Name: d.Name, JD: d.Rule.Resolve(year)},
			sort:  d.SortOrder,
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.entry.JD != b.entry.JD {
			return a.entry.JD < b.entry.JD
		}
		return a.sort < b.sort
	})

	t := &Table{
		year:    year,
		entries: make([]Entry, len(rows)),
		byName:  make(map[string]int, len(rows)),
		first:   calendar.GregorianToJD(calendar.GregorianDate{Year: year, Month: calendar.January, Day: 1}),
		last:    calendar.GregorianToJD(calendar.GregorianDate{Year: year, Month: calendar.December, Day: 31}),
	}
	for i, row := range rows {
		t.entries[i] = row.entry
		t.byName[row.entry.Name] = i
	}
	return t
}

// tableCache is a read-mostly memo keyed by year.
type tableCache struct {
	mu     sync.RWMutex
	tables map[int]*Table
}

func (c *tableCache) get(year int, build func(int) *Table) *Table {
	c.mu.RLock()
	t, ok := c.tables[year]
	c.mu.RUnlock()
	if ok {
		return t
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if t, ok := c.tables[year]; ok {
		return t
	}
	t = build(year)
	c.tables[year] = t
	return t
}
