// Package config resolves the options of the benchmark driver from flags, FSTBENCH_* environment variables
// and an optional YAML config file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix is prepended to every environment variable, e.g. FSTBENCH_ALGO.
	EnvPrefix = "FSTBENCH"

	KeyAlgorithm  = "algo"
	KeyFormat     = "format"
	KeyRender     = "render"
	KeyStyle      = "style"
	KeyDebug      = "debug"
	KeyTimestamps = "timestamps"
)

// Config Options that are not positional arguments.
type Config struct {
	Algorithm  string `mapstructure:"algo"`
	Format     string `mapstructure:"format"`
	Render     bool   `mapstructure:"render"`
	Style      string `mapstructure:"style"`
	Debug      bool   `mapstructure:"debug"`
	Timestamps bool   `mapstructure:"timestamps"`
}

func DefaultConfig() Config {
	return Config{
		Algorithm: "rm_final_epsilon",
		Format:    "auto",
	}
}

// AddFlags Declares the flags matching Config on cmd.
func AddFlags(cmd *cobra.Command) {
	defaults := DefaultConfig()
	flags := cmd.Flags()
	flags.String("config", "", "YAML config file providing defaults for the flags below")
	flags.String(KeyAlgorithm, defaults.Algorithm, "algorithm to benchmark")
	flags.String(KeyFormat, defaults.Format, "fst file format: auto, binary or text")
	flags.Bool(KeyRender, defaults.Render, "print the report section to stdout")
	flags.String(KeyStyle, defaults.Style, "glamour style used by --render (auto-detected when empty)")
	flags.Bool(KeyDebug, defaults.Debug, "log every iteration")
	flags.Bool(KeyTimestamps, defaults.Timestamps, "prefix log lines with a timestamp")
}

// Load Resolves the configuration for cmd, whose flags were declared with AddFlags.
func Load(cmd *cobra.Command) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault(KeyAlgorithm, defaults.Algorithm)
	v.SetDefault(KeyFormat, defaults.Format)
	v.SetDefault(KeyRender, defaults.Render)
	v.SetDefault(KeyStyle, defaults.Style)
	v.SetDefault(KeyDebug, defaults.Debug)
	v.SetDefault(KeyTimestamps, defaults.Timestamps)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for _, key := range []string{KeyAlgorithm, KeyFormat, KeyRender, KeyStyle, KeyDebug, KeyTimestamps} {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(key)); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", key, err)
		}
	}

	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Algorithm == "" {
		return nil, errors.New("algorithm must not be empty")
	}
	return cfg, nil
}
