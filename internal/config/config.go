// Package config provides Viper-based configuration loading for the DPS calculator.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// RotationConfig holds the defaults for rotation modelling.
type RotationConfig struct {
	// CasterTax is the per-cast latency in seconds.
	CasterTax float64 `mapstructure:"caster_tax"`
	// BurstPerMinute is the number of burst-window casts per minute.
	BurstPerMinute int `mapstructure:"burst_per_minute"`
	// FillerCastsOmitted is the number of filler casts lost per cycle minute.
	FillerCastsOmitted int `mapstructure:"filler_casts_omitted"`
	// WindowSeconds is the fight length for the window estimate; 0 disables it.
	WindowSeconds float64 `mapstructure:"window_seconds"`
}

// EvaluatorConfig holds batch evaluation settings.
type EvaluatorConfig struct {
	// Workers bounds the number of concurrent evaluations.
	Workers int `mapstructure:"workers"`
}

// ContentConfig points at optional YAML catalog extensions.
type ContentConfig struct {
	// JobsDir holds extra job definitions; empty = built-in catalog only.
	JobsDir string `mapstructure:"jobs_dir"`
	// BuffsDir holds extra buff definitions; empty = built-in catalog only.
	BuffsDir string `mapstructure:"buffs_dir"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Rotation  RotationConfig  `mapstructure:"rotation"`
	Evaluator EvaluatorConfig `mapstructure:"evaluator"`
	Content   ContentConfig   `mapstructure:"content"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateRotation(c.Rotation); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateEvaluator(c.Evaluator); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateRotation(r RotationConfig) error {
	var errs []string
	if r.CasterTax < 0 {
		errs = append(errs, fmt.Sprintf("rotation.caster_tax must be >= 0, got %v", r.CasterTax))
	}
	if r.BurstPerMinute < 0 {
		errs = append(errs, fmt.Sprintf("rotation.burst_per_minute must be >= 0, got %d", r.BurstPerMinute))
	}
	if r.FillerCastsOmitted < 0 {
		errs = append(errs, fmt.Sprintf("rotation.filler_casts_omitted must be >= 0, got %d", r.FillerCastsOmitted))
	}
	if r.WindowSeconds < 0 {
		errs = append(errs, fmt.Sprintf("rotation.window_seconds must be >= 0, got %v", r.WindowSeconds))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateEvaluator(e EvaluatorConfig) error {
	if e.Workers < 1 {
		return fmt.Errorf("evaluator.workers must be >= 1, got %d", e.Workers)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with DPSCALC_ prefix
	v.SetEnvPrefix("DPSCALC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadFromViper builds a Config from an already-configured Viper instance.
// Defaults are applied for any key the instance does not set.
//
// Precondition: v must be non-nil.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	setDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the configuration used when no file is given.
//
// Postcondition: Returns a valid Config.
func Default() Config {
	cfg, err := LoadFromViper(viper.New())
	if err != nil {
		panic("config.Default: defaults are invalid: " + err.Error())
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("rotation.caster_tax", 0.12)
	v.SetDefault("rotation.burst_per_minute", 4)
	v.SetDefault("rotation.filler_casts_omitted", 0)
	v.SetDefault("rotation.window_seconds", 0)

	v.SetDefault("evaluator.workers", 4)

	v.SetDefault("content.jobs_dir", "")
	v.SetDefault("content.buffs_dir", "")
}
