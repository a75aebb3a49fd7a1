// Package config resolves runtime settings from flags, FOCUSDASH_*
// environment variables and an optional config.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/tgienger/focusdash/internal/db"
)

// Config holds resolved settings
type Config struct {
	DBPath   string `mapstructure:"db"`
	LogLevel string `mapstructure:"log_level"`
	LogFile  string `mapstructure:"log_file"`
}

const envPrefix = "FOCUSDASH"

// Load builds a Config. configFile may be empty to use the default
// location. flags may be nil; bound flags override env and file values
// only when set on the command line.
func Load(configFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()

	dbPath, err := db.DefaultPath()
	if err != nil {
		return Config{}, fmt.Errorf("resolve default db path: %w", err)
	}
	v.SetDefault("db", dbPath)
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_file", filepath.Join(StateDir(), "focusdash.log"))

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(ConfigDir())
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	if flags != nil {
		for _, name := range []string{"db", "log-level", "log-file"} {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(strings.ReplaceAll(name, "-", "_"), f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// ConfigDir is $XDG_CONFIG_HOME/focusdash
func ConfigDir() string {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// StateDir is $XDG_STATE_HOME/focusdash, where logs go
func StateDir() string {
	return xdgDir("XDG_STATE_HOME", filepath.Join(".local", "state"))
}

func xdgDir(env, fallback string) string {
	if dir := os.Getenv(env); dir != "" {
		return filepath.Join(dir, "focusdash")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "focusdash")
	}
	return filepath.Join(home, fallback, "focusdash")
}
