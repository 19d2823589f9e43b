package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zephyrtronium/calcline"
)

// Config is the host configuration.
type Config struct {
	// Precision is the number of significant digits of results.
	Precision uint32
	// HistorySize is the number of committed calculations kept.
	HistorySize int
	Log         *LogConfig
}

// LogConfig configures the host logger.
type LogConfig struct {
	Level  string
	Format string
	File   string
}

const envPrefix = "CALCLINE"

func setDefaults(v *viper.Viper) {
	v.SetDefault("precision", calcline.DefaultPrecision)
	v.SetDefault("history.size", 50)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
}

// newViper creates a viper instance reading CALCLINE_* environment variables
// and bound to the persistent flags of root.
func newViper(root *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	binds := map[string]string{
		"precision":  "precision",
		"log.level":  "log-level",
		"log.format": "log-format",
		"log.file":   "log-file",
	}
	for key, flag := range binds {
		f := root.PersistentFlags().Lookup(flag)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return nil, fmt.Errorf("binding flag %s: %w", flag, err)
		}
	}
	return v, nil
}

// loadConfig reads the config file, if any, and decodes the configuration.
// An explicit path must exist; the default locations are optional.
func loadConfig(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("calcline")
		v.SetConfigType("yaml")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "calcline"))
		}
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &nf) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return decodeConfig(v)
}

func decodeConfig(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Precision:   v.GetUint32("precision"),
		HistorySize: v.GetInt("history.size"),
		Log: &LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			File:   v.GetString("log.file"),
		},
	}
	if cfg.Precision == 0 {
		return nil, fmt.Errorf("precision must be positive")
	}
	if cfg.HistorySize < 0 {
		return nil, fmt.Errorf("history size (%d) must not be negative", cfg.HistorySize)
	}
	switch cfg.Log.Format {
	case "text", "json":
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Log.Format)
	}
	return cfg, nil
}

// watchConfig calls fn with the new configuration each time the config file
// changes. Invalid configurations are reported to onErr and otherwise
// ignored. fn runs on the watcher's goroutine.
func watchConfig(v *viper.Viper, fn func(*Config), onErr func(error)) {
	if v.ConfigFileUsed() == "" {
		return
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		cfg, err := decodeConfig(v)
		if err != nil {
			onErr(fmt.Errorf("reloading %s: %w", e.Name, err))
			return
		}
		fn(cfg)
	})
	v.WatchConfig()
}
