// Package config provides configuration management for the pricing
// application: default market parameters, convergence sweep settings, and
// logging/store locations, loaded from a TOML file with env overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Defaults    DefaultsConfig    `mapstructure:"defaults"`
	Convergence ConvergenceConfig `mapstructure:"convergence"`
	Engine      EngineConfig      `mapstructure:"engine"`
	Logging     LoggingConfig     `mapstructure:"logging"`
	Store       StoreConfig       `mapstructure:"store"`
	UI          UIConfig          `mapstructure:"ui"`
}

// DefaultsConfig holds the market parameters used when a flag is omitted.
type DefaultsConfig struct {
	Spot          float64 `mapstructure:"spot"`
	Strike        float64 `mapstructure:"strike"`
	Rate          float64 `mapstructure:"rate"`
	Volatility    float64 `mapstructure:"volatility"`
	Maturity      float64 `mapstructure:"maturity"`
	DividendYield float64 `mapstructure:"dividend_yield"`
	Steps         int     `mapstructure:"steps"`
	Family        string  `mapstructure:"family"` // binomial, trinomial
	Style         string  `mapstructure:"style"`  // european, american
}

// ConvergenceConfig holds convergence sweep configuration.
type ConvergenceConfig struct {
	Steps []int `mapstructure:"steps"`
}

// EngineConfig holds pricing engine configuration.
type EngineConfig struct {
	Workers int `mapstructure:"workers"` // 0 = NumCPU
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Console    bool   `mapstructure:"console"`
	File       bool   `mapstructure:"file"`
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
}

// StoreConfig holds run-history store configuration.
type StoreConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// UIConfig holds output configuration.
type UIConfig struct {
	ColorEnabled bool `mapstructure:"color_enabled"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/lattice-pricer"
	}
	return filepath.Join(home, ".config", "lattice-pricer")
}

// Load loads configuration from the specified directory. If configDir is
// empty, the default config directory is used; a missing config file is
// replaced by a commented template plus built-in defaults.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	setDefaults(v, configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config.toml: %w", err)
		}
		if err := writeTemplateConfig(configDir); err != nil {
			return nil, fmt.Errorf("writing config template: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config.toml: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, configDir string) {
	v.SetDefault("defaults.spot", 100.0)
	v.SetDefault("defaults.strike", 100.0)
	v.SetDefault("defaults.rate", 0.05)
	v.SetDefault("defaults.volatility", 0.2)
	v.SetDefault("defaults.maturity", 1.0)
	v.SetDefault("defaults.dividend_yield", 0.0)
	v.SetDefault("defaults.steps", 100)
	v.SetDefault("defaults.family", "binomial")
	v.SetDefault("defaults.style", "european")

	v.SetDefault("convergence.steps", []int{10, 50, 100, 500})

	v.SetDefault("engine.workers", 0)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.console", true)
	v.SetDefault("logging.file", false)
	v.SetDefault("logging.file_path", filepath.Join(configDir, "logs", "pricer.log"))
	v.SetDefault("logging.max_size", 50)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age", 30)

	v.SetDefault("store.enabled", true)
	v.SetDefault("store.path", filepath.Join(configDir, "pricer.db"))

	v.SetDefault("ui.color_enabled", true)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PRICER_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("PRICER_STORE_PATH"); v != "" {
		cfg.Store.Path = v
	}
	if v := os.Getenv("PRICER_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Engine.Workers = n
		}
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Defaults.Spot <= 0 {
		return fmt.Errorf("defaults.spot must be positive")
	}
	if c.Defaults.Strike <= 0 {
		return fmt.Errorf("defaults.strike must be positive")
	}
	if c.Defaults.Volatility <= 0 {
		return fmt.Errorf("defaults.volatility must be positive")
	}
	if c.Defaults.Maturity <= 0 {
		return fmt.Errorf("defaults.maturity must be positive")
	}
	if c.Defaults.Steps < 1 {
		return fmt.Errorf("defaults.steps must be at least 1")
	}
	if f := c.Defaults.Family; f != "binomial" && f != "trinomial" {
		return fmt.Errorf("defaults.family must be 'binomial' or 'trinomial', got %q", f)
	}
	if s := c.Defaults.Style; s != "european" && s != "american" {
		return fmt.Errorf("defaults.style must be 'european' or 'american', got %q", s)
	}
	if len(c.Convergence.Steps) == 0 {
		return fmt.Errorf("convergence.steps must not be empty")
	}
	for i, n := range c.Convergence.Steps {
		if n < 1 {
			return fmt.Errorf("convergence.steps must be positive, got %d", n)
		}
		if i > 0 && n <= c.Convergence.Steps[i-1] {
			return fmt.Errorf("convergence.steps must be strictly ascending")
		}
	}
	if c.Engine.Workers < 0 {
		return fmt.Errorf("engine.workers must be non-negative")
	}
	return nil
}
