// Package main is the entry point for the holiday calendar API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/zapponejosh/holiday-calendar/internal/api"
	"github.com/zapponejosh/holiday-calendar/internal/config"
	"github.com/zapponejosh/holiday-calendar/internal/database"
	"github.com/zapponejosh/holiday-calendar/internal/holiday"
	"github.com/zapponejosh/holiday-calendar/internal/locale"
	"github.com/zapponejosh/holiday-calendar/internal/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// Setup structured logging
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	log.Info("starting holiday calendar API",
		slog.String("env", cfg.Env),
		slog.Int("port", cfg.Port),
		slog.String("rule_set", cfg.RuleSet),
		slog.String("log_level", cfg.LogLevel),
	)

	if err := run(cfg, log); err != nil {
		log.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped")
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx := context.Background()

	var opts []holiday.Option
	if cfg.CacheTables {
		opts = append(opts, holiday.WithCache())
	}

	// Declarations come from SQLite when configured, otherwise from the
	// built-in rule set.
	var (
		db  *database.DB
		reg *holiday.Registry
		err error
	)
	if cfg.HasDatabase() {
		db, err = openDatabase(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer db.Close()

		reg, err = holiday.NewRegistryFromSource(ctx, db, opts...)
	} else {
		decls, _ := holiday.DeclarationsFor(cfg.RuleSet)
		reg, err = holiday.NewRegistry(decls, opts...)
	}
	if err != nil {
		return fmt.Errorf("build registry: %w", err)
	}

	catalog, err := locale.New()
	if err != nil {
		return fmt.Errorf("load translations: %w", err)
	}

	h := api.NewHandlers(reg, db, catalog, cfg, log)
	router := api.NewRouter(h, cfg, log)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening",
			slog.String("addr", server.Addr),
			slog.Int("declarations", len(reg.Declarations())),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for interrupt signal or a listener failure
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case sig := <-quit:
		log.Info("shutting down", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// openDatabase opens and migrates the database, seeding it from the
// configured rule set the first time.
func openDatabase(ctx context.Context, cfg *config.Config, log *slog.Logger) (*database.DB, error) {
	db, err := database.Open(database.DefaultConfig(cfg.DatabasePath), log)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	migrated, err := db.Migrate(ctx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	log.Info("migrations complete", slog.Int("applied", migrated))

	existing, err := db.ListDeclarations(ctx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("list declarations: %w", err)
	}
	if len(existing) == 0 {
		decls, _ := holiday.DeclarationsFor(cfg.RuleSet)
		if err := db.ReplaceDeclarations(ctx, decls); err != nil {
			db.Close()
			return nil, fmt.Errorf("seed declarations: %w", err)
		}
		log.Info("seeded declarations",
			slog.String("rule_set", cfg.RuleSet),
			slog.Int("count", len(decls)),
		)
	}

	return db, nil
}
