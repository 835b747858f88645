// Root command for the holidays CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zapponejosh/holiday-calendar/internal/database"
	"github.com/zapponejosh/holiday-calendar/internal/holiday"
	"github.com/zapponejosh/holiday-calendar/internal/locale"
	"github.com/zapponejosh/holiday-calendar/internal/logger"
)

// cli holds what every subcommand needs, populated by PersistentPreRunE.
type cli struct {
	configFile string

	cfg      *viper.Viper
	out      io.Writer
	log      *slog.Logger
	db       *database.DB
	registry *holiday.Registry
	names    *locale.Localizer
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "holidays",
		Short: "Holiday dates and calendar conversions",
		Long: `holidays resolves holiday dates for a Gregorian year and converts days
between the Julian day count, Gregorian, Hebrew, Islamic and Unix time.

Settings are read from flags, then HOLIDAYS_* environment variables, then
holidays.yaml in the current directory or the user config directory.`,
		Version:            version,
		SilenceUsage:       true,
		PersistentPreRunE:  c.setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error { return c.close() },
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.configFile, "config", "", "config file (default: ./holidays.yaml)")
	flags.String(cfgKeyRules, holiday.RuleSetStandard, "built-in rule set: standard, extended")
	flags.String(cfgKeyDB, "", "SQLite database of declarations (replaces --rules)")
	flags.String(cfgKeyLang, "", "display language (default: from $LANG, then en)")
	flags.Bool(cfgKeyJSON, false, "output as JSON")
	flags.BoolP(cfgKeyVerbose, "v", false, "log debug output to stderr")

	root.AddCommand(
		c.listCmd(),
		c.onCmd(),
		c.dateCmd(),
		c.convertCmd(),
		c.easterCmd(),
		c.icsCmd(),
		versionCmd(),
	)
	return root
}

// setup loads configuration and builds the registry.
func (c *cli) setup(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	cfg, err := loadConfig(c.configFile, cmd.Root().PersistentFlags())
	if err != nil {
		return err
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}
	c.cfg = cfg
	c.out = cmd.OutOrStdout()

	level := "warn"
	if cfg.GetBool(cfgKeyVerbose) {
		level = "debug"
	}
	c.log = logger.New(cmd.ErrOrStderr(), level, "text")

	reg, err := c.openRegistry(cmd.Context())
	if err != nil {
		return err
	}
	c.registry = reg

	catalog, err := locale.New()
	if err != nil {
		return fmt.Errorf("load translations: %w", err)
	}
	c.names = catalog.For(cfg.GetString(cfgKeyLang), envLanguage())

	c.log.Debug("cli ready",
		slog.Int("declarations", len(reg.Declarations())),
		slog.String("language", c.names.Language().String()),
	)
	return nil
}

func (c *cli) openRegistry(ctx context.Context) (*holiday.Registry, error) {
	path := c.cfg.GetString(cfgKeyDB)
	if path == "" {
		decls, _ := holiday.DeclarationsFor(c.cfg.GetString(cfgKeyRules))
		return holiday.NewRegistry(decls)
	}

	db, err := database.Open(database.DefaultConfig(path), c.log)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	c.db = db

	if _, err := db.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	reg, err := holiday.NewRegistryFromSource(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("load declarations: %w", err)
	}
	if len(reg.Declarations()) == 0 {
		c.log.Warn("database has no declarations; run cmd/import first", slog.String("path", path))
	}
	return reg, nil
}

func (c *cli) close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

func (c *cli) jsonOutput() bool {
	return c.cfg.GetBool(cfgKeyJSON)
}
