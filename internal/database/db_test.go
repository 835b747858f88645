package database

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/zapponejosh/holiday-calendar/internal/calendar"
	"github.com/zapponejosh/holiday-calendar/internal/holiday"
)

// testDB creates a temporary in-memory database for testing.
func testDB(t *testing.T) *DB {
	t.Helper()

	cfg := Config{
		Path:            ":memory:",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
	}

	// Quiet logger for tests
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))

	db, err := Open(cfg, logger)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	ctx := context.Background()
	if _, err := db.Migrate(ctx); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// seedTestData inserts a few declarations for testing.
func seedTestData(t *testing.T, db *DB) {
	t.Helper()
	ctx := context.Background()

	decls := []holiday.Declaration{
		{Name: "thanksgiving", Rule: holiday.NthWeekday{N: 4, Weekday: calendar.Thursday, Month: calendar.November}},
		{Name: "easter", Rule: holiday.EasterRelative{Offset: 0}},
		{Name: "memorialday", Rule: holiday.Computed{Name: "memorialday"}, SortOrder: 2},
	}
	for _, d := range decls {
		if _, err := db.CreateDeclaration(ctx, d); err != nil {
			t.Fatalf("create test declaration %s: %v", d.Name, err)
		}
	}
}

// -----------------------------------------------------------------
// DB tests
// -----------------------------------------------------------------

func TestOpen(t *testing.T) {
	db := testDB(t)

	ctx := context.Background()
	if err := db.Health(ctx); err != nil {
		t.Errorf("Health() error = %v", err)
	}
}

func TestMigrate(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	// Running again should be a no-op
	count, err := db.Migrate(ctx)
	if err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	if count != 0 {
		t.Errorf("Migrate() count = %d, want 0 (already applied)", count)
	}
}

// -----------------------------------------------------------------
// Declaration tests
// -----------------------------------------------------------------

func TestCreateDeclaration(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	got, err := db.CreateDeclaration(ctx, holiday.Declaration{
		Name:      "purim",
		Rule:      holiday.HebrewDate{Month: calendar.VeAdar, Day: 14},
		SortOrder: 5,
	})
	if err != nil {
		t.Fatalf("CreateDeclaration() error = %v", err)
	}

	if got.ID == 0 {
		t.Error("CreateDeclaration() did not set ID")
	}
	if got.Rule.Kind != holiday.KindHebrew || got.Rule.Month != calendar.VeAdar || got.Rule.Day != 14 {
		t.Errorf("CreateDeclaration() rule = %+v, want hebrew 13/14", got.Rule)
	}
	if got.SortOrder != 5 {
		t.Errorf("CreateDeclaration() sort_order = %d, want 5", got.SortOrder)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreateDeclaration() created_at not parsed")
	}
}

func TestCreateDeclaration_Duplicate(t *testing.T) {
	db := testDB(t)
	seedTestData(t, db)
	ctx := context.Background()

	_, err := db.CreateDeclaration(ctx, holiday.Declaration{
		Name: "easter",
		Rule: holiday.FixedDate{Month: 4, Day: 1},
	})
	if err != ErrDuplicate {
		t.Errorf("CreateDeclaration() duplicate error = %v, want ErrDuplicate", err)
	}
}

func TestCreateDeclaration_InvalidRule(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	tests := []struct {
		name string
		decl holiday.Declaration
	}{
		{"missing name", holiday.Declaration{Rule: holiday.FixedDate{Month: 1, Day: 1}}},
		{"missing rule", holiday.Declaration{Name: "x"}},
		{"bad month", holiday.Declaration{Name: "x", Rule: holiday.FixedDate{Month: 13, Day: 1}}},
		{"unknown computed", holiday.Declaration{Name: "x", Rule: holiday.Computed{Name: "solstice"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := db.CreateDeclaration(ctx, tt.decl); err == nil {
				t.Error("CreateDeclaration() error = nil, want error")
			}
		})
	}
}

func TestGetDeclaration(t *testing.T) {
	db := testDB(t)
	seedTestData(t, db)
	ctx := context.Background()

	got, err := db.GetDeclaration(ctx, "thanksgiving")
	if err != nil {
		t.Fatalf("GetDeclaration() error = %v", err)
	}

	want := holiday.RuleSpec{Kind: holiday.KindNthWeekday, N: 4, Weekday: 4, Month: 11}
	if got.Rule != want {
		t.Errorf("GetDeclaration() rule = %+v, want %+v", got.Rule, want)
	}
}

func TestGetDeclaration_NotFound(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	_, err := db.GetDeclaration(ctx, "festivus")
	if !IsNotFound(err) {
		t.Errorf("GetDeclaration() error = %v, want ErrNotFound", err)
	}
}

func TestListDeclarations(t *testing.T) {
	db := testDB(t)
	seedTestData(t, db)
	ctx := context.Background()

	got, err := db.ListDeclarations(ctx)
	if err != nil {
		t.Fatalf("ListDeclarations() error = %v", err)
	}

	wantOrder := []string{"thanksgiving", "easter", "memorialday"}
	if len(got) != len(wantOrder) {
		t.Fatalf("ListDeclarations() returned %d rows, want %d", len(got), len(wantOrder))
	}
	for i, name := range wantOrder {
		if got[i].Name != name {
			t.Errorf("row[%d].Name = %q, want %q", i, got[i].Name, name)
		}
	}
}

func TestListDeclarations_SortOrder(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	decls := []holiday.Declaration{
		{Name: "late", Rule: holiday.FixedDate{Month: 1, Day: 1}, SortOrder: 3},
		{Name: "early", Rule: holiday.FixedDate{Month: 1, Day: 2}, SortOrder: 1},
		{Name: "alsoearly", Rule: holiday.FixedDate{Month: 1, Day: 3}, SortOrder: 1},
	}
	for _, d := range decls {
		if _, err := db.CreateDeclaration(ctx, d); err != nil {
			t.Fatalf("CreateDeclaration(%s) error = %v", d.Name, err)
		}
	}

	got, err := db.ListDeclarations(ctx)
	if err != nil {
		t.Fatalf("ListDeclarations() error = %v", err)
	}

	wantOrder := []string{"early", "alsoearly", "late"}
	if len(got) != len(wantOrder) {
		t.Fatalf("ListDeclarations() returned %d rows, want %d", len(got), len(wantOrder))
	}
	for i, name := range wantOrder {
		if got[i].Name != name {
			t.Errorf("row[%d].Name = %q, want %q", i, got[i].Name, name)
		}
	}
}

func TestDeleteDeclaration(t *testing.T) {
	db := testDB(t)
	seedTestData(t, db)
	ctx := context.Background()

	if err := db.DeleteDeclaration(ctx, "easter"); err != nil {
		t.Fatalf("DeleteDeclaration() error = %v", err)
	}
	if _, err := db.GetDeclaration(ctx, "easter"); !IsNotFound(err) {
		t.Errorf("GetDeclaration() after delete error = %v, want ErrNotFound", err)
	}
	if err := db.DeleteDeclaration(ctx, "easter"); err != ErrNotFound {
		t.Errorf("second DeleteDeclaration() error = %v, want ErrNotFound", err)
	}
}

func TestReplaceDeclarations(t *testing.T) {
	db := testDB(t)
	seedTestData(t, db)
	ctx := context.Background()

	err := db.ReplaceDeclarations(ctx, holiday.StandardDeclarations())
	if err != nil {
		t.Fatalf("ReplaceDeclarations() error = %v", err)
	}

	got, err := db.ListDeclarations(ctx)
	if err != nil {
		t.Fatalf("ListDeclarations() error = %v", err)
	}
	if len(got) != len(holiday.StandardDeclarations()) {
		t.Errorf("ListDeclarations() returned %d rows, want %d", len(got), len(holiday.StandardDeclarations()))
	}
}

func TestReplaceDeclarations_RollsBackOnDuplicate(t *testing.T) {
	db := testDB(t)
	seedTestData(t, db)
	ctx := context.Background()

	err := db.ReplaceDeclarations(ctx, []holiday.Declaration{
		{Name: "a", Rule: holiday.FixedDate{Month: 1, Day: 1}},
		{Name: "a", Rule: holiday.FixedDate{Month: 1, Day: 2}},
	})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("ReplaceDeclarations() error = %v, want ErrDuplicate", err)
	}

	got, err := db.ListDeclarations(ctx)
	if err != nil {
		t.Fatalf("ListDeclarations() error = %v", err)
	}
	if len(got) != 3 {
		t.Errorf("ListDeclarations() returned %d rows after rollback, want 3", len(got))
	}
}

// -----------------------------------------------------------------
// Source tests
// -----------------------------------------------------------------

func TestListDeclaredHolidays_BuildsRegistry(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	if err := db.ReplaceDeclarations(ctx, holiday.StandardDeclarations()); err != nil {
		t.Fatalf("ReplaceDeclarations() error = %v", err)
	}

	fromDB, err := holiday.NewRegistryFromSource(ctx, db)
	if err != nil {
		t.Fatalf("NewRegistryFromSource() error = %v", err)
	}

	got := fromDB.ForYear(2023).Entries()
	want := holiday.Standard().ForYear(2023).Entries()
	if len(got) != len(want) {
		t.Fatalf("ForYear() returned %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestListDeclaredHolidays_RejectsCorruptRow(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	// Bypass validation the way a hand edit would.
	_, err := db.ExecContext(ctx,
		`INSERT INTO declared_holidays (name, kind, month, day) VALUES ('bogus', 'fixed', 2, 31)`)
	if err != nil {
		t.Fatalf("insert corrupt row: %v", err)
	}

	if _, err := db.ListDeclaredHolidays(ctx); !errors.Is(err, holiday.ErrInvalidRule) {
		t.Errorf("ListDeclaredHolidays() error = %v, want ErrInvalidRule", err)
	}
}

// -----------------------------------------------------------------
// Transaction tests
// -----------------------------------------------------------------

func TestWithTx(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	err := db.WithTx(ctx, func(tx *Tx) error {
		return tx.CreateDeclaration(ctx, holiday.Declaration{
			Name: "laborday",
			Rule: holiday.NthWeekday{N: 1, Weekday: calendar.Monday, Month: calendar.September},
		})
	})
	if err != nil {
		t.Fatalf("WithTx() success case error = %v", err)
	}

	if _, err := db.GetDeclaration(ctx, "laborday"); err != nil {
		t.Errorf("declaration not created: %v", err)
	}
}

func TestWithTx_Rollback(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	err := db.WithTx(ctx, func(tx *Tx) error {
		err := tx.CreateDeclaration(ctx, holiday.Declaration{
			Name: "columbusday",
			Rule: holiday.NthWeekday{N: 2, Weekday: calendar.Monday, Month: calendar.October},
		})
		if err != nil {
			return err
		}
		// Force error to trigger rollback
		return ErrNotFound
	})
	if err != ErrNotFound {
		t.Fatalf("WithTx() rollback case error = %v, want ErrNotFound", err)
	}

	if _, err := db.GetDeclaration(ctx, "columbusday"); err != ErrNotFound {
		t.Errorf("declaration should not exist after rollback, got error: %v", err)
	}
}
