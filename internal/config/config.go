// Package config binds the run command's flags, environment variables,
// and an optional chip8.yaml into a single Config struct, so the same
// setting can be overridden by flag, env var, or config file with a
// single consistent precedence order.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix CHIP8_* environment variables use to override
// config values, e.g. CHIP8_TPS=1000.
const EnvPrefix = "CHIP8"

// Config holds every setting the run command needs, regardless of whether
// it arrived via flag, environment variable, or config file.
type Config struct {
	RomPath  string  `mapstructure:"rom"`
	TPS      int     `mapstructure:"tps"`
	FgColor  string  `mapstructure:"fg-color"`
	BgColor  string  `mapstructure:"bg-color"`
	Volume   float64 `mapstructure:"volume"`
	Headless bool    `mapstructure:"headless"`
}

// Default returns the Config used when no flag, env var, or config file
// overrides a field.
func Default() Config {
	return Config{
		TPS:     500,
		FgColor: "FFFFFFFF",
		BgColor: "000000FF",
		Volume:  1.0,
	}
}

// Load builds a viper instance bound to flags, reads CHIP8_*-prefixed
// environment variables and, if present, a chip8.yaml in the working
// directory, and unmarshals the result into a Config seeded with Default.
func Load(flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("chip8")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if err := v.BindPFlags(flags); err != nil {
		return Config{}, fmt.Errorf("bind flags: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := Default()
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}
