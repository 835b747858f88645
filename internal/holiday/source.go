package holiday

import (
	"context"
	"encoding/json"
	"fmt"
)

// Source supplies the declarations a registry is built from, replacing the
// built-in rule sets with an externally configured one.
type Source interface {
	ListDeclaredHolidays(ctx context.Context) ([]Declaration, error)
}

// StaticSource serves a fixed slice of declarations.
type StaticSource []Declaration

func (s StaticSource) ListDeclaredHolidays(ctx context.Context) ([]Declaration, error) {
	out := make([]Declaration, len(s))
	copy(out, s)
	return out, nil
}

// NewRegistryFromSource loads declarations from src and builds a registry.
func NewRegistryFromSource(ctx context.Context, src Source, opts ...Option) (*Registry, error) {
	decls, err := src.ListDeclaredHolidays(ctx)
	if err != nil {
		return nil, fmt.Errorf("list declared holidays: %w", err)
	}
	return NewRegistry(decls, opts...)
}

// declarationJSON is the wire form of a Declaration.
type declarationJSON struct {
	Name      string   `json:"name"`
	Rule      RuleSpec `json:"rule"`
	SortOrder int      `json:"sort_order"`
}

func (d Declaration) MarshalJSON() ([]byte, error) {
	return json.Marshal(declarationJSON{Name: d.Name, Rule: SpecOf(d.Rule), SortOrder: d.SortOrder})
}

func (d *Declaration) UnmarshalJSON(data []byte) error {
	var raw declarationJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	rule, err := ParseRule(raw.Rule)
	if err != nil {
		return fmt.Errorf("holiday %q: %w", raw.Name, err)
	}

	*d = Declaration{Name: raw.Name, Rule: rule, SortOrder: raw.SortOrder}
	return nil
}
