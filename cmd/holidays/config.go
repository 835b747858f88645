// Config loading for the holidays CLI.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/zapponejosh/holiday-calendar/internal/holiday"
)

const (
	configFileName = "holidays"
	configFileType = "yaml"
	envPrefix      = "HOLIDAYS"

	// Config keys; each is also a persistent flag and a HOLIDAYS_* variable.
	cfgKeyRules   = "rules"
	cfgKeyDB      = "db"
	cfgKeyLang    = "lang"
	cfgKeyJSON    = "json"
	cfgKeyVerbose = "verbose"
)

// loadConfig layers flags over HOLIDAYS_* variables over holidays.yaml over
// flag defaults. A missing holidays.yaml is not an error unless configFile
// names it explicitly.
func loadConfig(configFile string, flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if err := v.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "holidays"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile == "" && errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}

func validateConfig(v *viper.Viper) error {
	if _, ok := holiday.DeclarationsFor(v.GetString(cfgKeyRules)); !ok {
		return fmt.Errorf("unknown rule set %q (valid: %s, %s)",
			v.GetString(cfgKeyRules), holiday.RuleSetStandard, holiday.RuleSetExtended)
	}
	return nil
}

// envLanguage turns a POSIX locale such as "es_MX.UTF-8" into a language
// tag. "C" and "POSIX" yield nothing.
func envLanguage() string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		val := os.Getenv(key)
		if val == "" {
			continue
		}
		if i := strings.IndexAny(val, ".@"); i >= 0 {
			val = val[:i]
		}
		if val == "C" || val == "POSIX" {
			return ""
		}
		return strings.ReplaceAll(val, "_", "-")
	}
	return ""
}
