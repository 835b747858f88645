// Command import loads holiday declarations from JSON into the SQLite database.
//
// Usage:
//
//	go run ./cmd/import -json data/holidays.json -db data/holidays.db
//	go run ./cmd/import -rules extended -db data/holidays.db
//
// The file has the form
//
//	{"holidays": [{"name": "thanksgiving", "rule": {"kind": "nth_weekday", "n": 4, "weekday": 4, "month": 11}}]}
//
// This tool:
// 1. Parses and validates every declaration
// 2. Creates/opens the SQLite database and runs migrations
// 3. Replaces all declarations in a single transaction
// 4. Builds a registry from the stored rows to verify them
//
// Running it twice with the same input leaves the same rows.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/zapponejosh/holiday-calendar/internal/database"
	"github.com/zapponejosh/holiday-calendar/internal/holiday"
)

// importFile is the JSON document read by -json.
type importFile struct {
	Holidays []holiday.Declaration `json:"holidays"`
}

func main() {
	// Parse command line flags
	jsonPath := flag.String("json", "", "Path to declarations JSON file")
	ruleSet := flag.String("rules", "", "Built-in rule set to import instead of -json (standard, extended)")
	dbPath := flag.String("db", "data/holidays.db", "Path to SQLite database")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	// Setup logger
	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))

	// Run import
	if err := run(*jsonPath, *ruleSet, *dbPath, logger); err != nil {
		logger.Error("import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("import complete")
}

func run(jsonPath, ruleSet, dbPath string, logger *slog.Logger) error {
	ctx := context.Background()
	startTime := time.Now()

	// =========================================================================
	// Step 1: Load declarations
	// =========================================================================
	decls, err := loadDeclarations(jsonPath, ruleSet)
	if err != nil {
		return err
	}

	// Resolve once before touching the database
	if _, err := holiday.NewRegistry(decls); err != nil {
		return fmt.Errorf("validate declarations: %w", err)
	}
	logger.Info("parsed declarations", slog.Int("count", len(decls)))

	// =========================================================================
	// Step 2: Open database and run migrations
	// =========================================================================
	logger.Info("opening database", slog.String("path", dbPath))

	db, err := database.Open(database.DefaultConfig(dbPath), logger)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	migrated, err := db.Migrate(ctx)
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("migrations complete", slog.Int("applied", migrated))

	// =========================================================================
	// Step 3: Replace declarations in a transaction
	// =========================================================================
	if err := db.ReplaceDeclarations(ctx, decls); err != nil {
		return fmt.Errorf("import declarations: %w", err)
	}

	// =========================================================================
	// Step 4: Verify import
	// =========================================================================
	reg, err := holiday.NewRegistryFromSource(ctx, db)
	if err != nil {
		return fmt.Errorf("verify declarations: %w", err)
	}

	year := time.Now().Year()
	table := reg.ForYear(year)
	elapsed := time.Since(startTime)

	logger.Info("import verified",
		slog.Int("declarations", len(reg.Declarations())),
		slog.Int("year", year),
		slog.Int("resolved", table.Len()),
		slog.Duration("elapsed", elapsed),
	)

	// Print summary
	fmt.Println()
	fmt.Println("=== Import Summary ===")
	fmt.Printf("Declarations imported: %d\n", len(decls))
	fmt.Printf("Resolved for %d:     %d\n", year, table.Len())
	fmt.Printf("Time elapsed:          %v\n", elapsed.Round(time.Millisecond))

	return nil
}

func loadDeclarations(jsonPath, ruleSet string) ([]holiday.Declaration, error) {
	switch {
	case jsonPath != "" && ruleSet != "":
		return nil, errors.New("use either -json or -rules, not both")

	case ruleSet != "":
		decls, ok := holiday.DeclarationsFor(ruleSet)
		if !ok {
			return nil, fmt.Errorf("unknown rule set %q", ruleSet)
		}
		return decls, nil

	case jsonPath != "":
		data, err := os.ReadFile(jsonPath)
		if err != nil {
			return nil, fmt.Errorf("read JSON file: %w", err)
		}

		var file importFile
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse JSON: %w", err)
		}
		return file.Holidays, nil
	}

	return nil, errors.New("one of -json or -rules is required")
}
