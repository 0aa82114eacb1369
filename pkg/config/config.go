// Package config loads calculator configuration files using Viper
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/raykavin/technicals"
	"github.com/spf13/viper"
)

const (
	// DefaultConfigPath is used when no path is given
	DefaultConfigPath = "./technicals.yaml"

	// EnvPrefix prefixes the environment overrides, e.g. TECHNICALS_MACD_SHORT
	EnvPrefix = "TECHNICALS"
)

// Load reads the configuration at path, applying environment overrides.
// A missing file is created with the example configuration, which is then
// returned.
func Load(path string) (technicals.Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := saveDefaultConfig(path); err != nil {
			return technicals.Config{}, err
		}
	}

	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return technicals.Config{}, fmt.Errorf("failed to read configuration %s: %w", path, err)
	}

	var config technicals.Config
	if err := v.Unmarshal(&config); err != nil {
		return technicals.Config{}, fmt.Errorf("failed to parse configuration %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return technicals.Config{}, fmt.Errorf("invalid configuration %s: %w", path, err)
	}

	return config, nil
}

// newViper returns a viper instance aware of every configuration key, so
// environment variables can override keys absent from the file
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, key := range []string{
		"macd.short", "macd.long", "macd.signal",
		"sma", "rsi", "adx", "wr",
		"bollinger.window", "bollinger.deviation",
		"parallelism",
	} {
		_ = v.BindEnv(key)
	}

	return v
}

// saveDefaultConfig writes the example configuration to path
func saveDefaultConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("could not create configuration directory: %w", err)
	}

	example := technicals.ExampleConfig()

	v := viper.New()
	v.Set("macd.short", example.MACD.Short)
	v.Set("macd.long", example.MACD.Long)
	v.Set("macd.signal", example.MACD.Signal)
	v.Set("sma", example.SMA)
	v.Set("rsi", example.RSI)
	v.Set("adx", example.ADX)
	v.Set("wr", example.WR)
	v.Set("bollinger.window", example.Bollinger.Window)
	v.Set("bollinger.deviation", example.Bollinger.Deviation)
	v.Set("parallelism", example.Parallelism)

	v.SetConfigFile(path)
	if err := v.WriteConfig(); err != nil {
		return fmt.Errorf("could not save default configuration: %w", err)
	}

	technicals.DefaultLog.WithField("path", path).Info("Default configuration file created")

	return nil
}
