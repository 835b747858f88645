package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/zapponejosh/holiday-calendar/internal/holiday"
)

// =============================================================================
// Helper Functions
// =============================================================================

// execer is satisfied by both *DB and *Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// parseTimestamp parses SQLite TEXT timestamps, returning the zero time when
// the value is in no known format.
func parseTimestamp(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04:05.999999"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

const declarationColumns = `
	id, name, kind, month, day, n, weekday, offset_days, computed_name,
	sort_order, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanDeclaration(s scanner) (*DeclaredHoliday, error) {
	var (
		h                DeclaredHoliday
		kind             string
		created, updated string
	)
	err := s.Scan(
		&h.ID, &h.Name, &kind,
		&h.Rule.Month, &h.Rule.Day, &h.Rule.N, &h.Rule.Weekday, &h.Rule.Offset, &h.Rule.Name,
		&h.SortOrder, &created, &updated,
	)
	if err != nil {
		return nil, err
	}
	h.Rule.Kind = holiday.Kind(kind)
	h.CreatedAt = parseTimestamp(created)
	h.UpdatedAt = parseTimestamp(updated)
	return &h, nil
}

func insertDeclaration(ctx context.Context, ex execer, d holiday.Declaration) (int64, error) {
	if d.Name == "" {
		return 0, errors.New("holiday name is required")
	}
	if err := holiday.Validate(d.Rule); err != nil {
		return 0, fmt.Errorf("holiday %q: %w", d.Name, err)
	}
	spec := holiday.SpecOf(d.Rule)

	result, err := ex.ExecContext(ctx, `
		INSERT INTO declared_holidays (
			name, kind, month, day, n, weekday, offset_days, computed_name, sort_order
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.Name, string(spec.Kind), spec.Month, spec.Day, spec.N, spec.Weekday, spec.Offset, spec.Name, d.SortOrder,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicate
		}
		return 0, fmt.Errorf("insert declaration: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id: %w", err)
	}
	return id, nil
}

// =============================================================================
// Declaration Queries
// =============================================================================

// CreateDeclaration stores a new declaration. Returns ErrDuplicate if the
// name is taken.
func (db *DB) CreateDeclaration(ctx context.Context, d holiday.Declaration) (*DeclaredHoliday, error) {
	id, err := insertDeclaration(ctx, db, d)
	if err != nil {
		return nil, err
	}

	db.logger.Debug("declaration created",
		slog.String("name", d.Name),
		slog.Int64("id", id),
	)

	return db.getDeclaration(ctx, "id = ?", id)
}

// CreateDeclaration stores a new declaration within the transaction.
func (tx *Tx) CreateDeclaration(ctx context.Context, d holiday.Declaration) error {
	_, err := insertDeclaration(ctx, tx, d)
	return err
}

// DeleteAllDeclarations empties the store within the transaction and returns
// the number of rows removed.
func (tx *Tx) DeleteAllDeclarations(ctx context.Context) (int64, error) {
	result, err := tx.ExecContext(ctx, `DELETE FROM declared_holidays`)
	if err != nil {
		return 0, fmt.Errorf("delete declarations: %w", err)
	}
	return result.RowsAffected()
}

// GetDeclaration retrieves a declaration by name.
// Returns ErrNotFound if it doesn't exist.
func (db *DB) GetDeclaration(ctx context.Context, name string) (*DeclaredHoliday, error) {
	return db.getDeclaration(ctx, "name = ?", name)
}

func (db *DB) getDeclaration(ctx context.Context, where string, arg any) (*DeclaredHoliday, error) {
	row := db.QueryRowContext(ctx, `SELECT `+declarationColumns+` FROM declared_holidays WHERE `+where, arg)

	h, err := scanDeclaration(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get declaration: %w", err)
	}
	return h, nil
}

// ListDeclarations returns every stored declaration ordered by sort_order,
// then insertion order.
func (db *DB) ListDeclarations(ctx context.Context) ([]DeclaredHoliday, error) {
	rows, err := db.QueryContext(ctx, `SELECT `+declarationColumns+` FROM declared_holidays ORDER BY sort_order, id`)
	if err != nil {
		return nil, fmt.Errorf("query declarations: %w", err)
	}
	defer rows.Close()

	var out []DeclaredHoliday
	for rows.Next() {
		h, err := scanDeclaration(rows)
		if err != nil {
			return nil, fmt.Errorf("scan declaration: %w", err)
		}
		out = append(out, *h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate declarations: %w", err)
	}
	return out, nil
}

// DeleteDeclaration removes a declaration by name.
// Returns ErrNotFound if it doesn't exist.
func (db *DB) DeleteDeclaration(ctx context.Context, name string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM declared_holidays WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete declaration: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// ReplaceDeclarations swaps the whole store for decls in one transaction.
func (db *DB) ReplaceDeclarations(ctx context.Context, decls []holiday.Declaration) error {
	err := db.WithTx(ctx, func(tx *Tx) error {
		if _, err := tx.DeleteAllDeclarations(ctx); err != nil {
			return err
		}
		for _, d := range decls {
			if err := tx.CreateDeclaration(ctx, d); err != nil {
				if IsDuplicate(err) {
					return fmt.Errorf("holiday %q: %w", d.Name, err)
				}
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	db.logger.Info("declarations replaced", slog.Int("count", len(decls)))
	return nil
}

// ListDeclaredHolidays implements holiday.Source.
func (db *DB) ListDeclaredHolidays(ctx context.Context) ([]holiday.Declaration, error) {
	rows, err := db.ListDeclarations(ctx)
	if err != nil {
		return nil, err
	}

	decls := make([]holiday.Declaration, 0, len(rows))
	for _, row := range rows {
		d, err := row.Declaration()
		if err != nil {
			return nil, fmt.Errorf("declaration %q: %w", row.Name, err)
		}
		decls = append(decls, d)
	}
	return decls, nil
}
