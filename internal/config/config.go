package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the triage tool settings.
type Config struct {
	// Target is the default cargo-fuzz target to reproduce against.
	Target string `mapstructure:"target"`
	// SymbolToken identifies project frames in backtraces (the crate name).
	SymbolToken string `mapstructure:"symbol_token"`
	// FuzzDir is the working directory for cargo fuzz invocations.
	FuzzDir string `mapstructure:"fuzz_dir"`
	// ReproTimeout is the reproduction timeout in seconds.
	ReproTimeout int `mapstructure:"repro_timeout"`
	// ReportDir is where markdown crash reports are written.
	ReportDir string `mapstructure:"report_dir"`
	LogLevel  string `mapstructure:"log_level"`
}

// fileConfig is the on-disk yaml shape: settings live under "triage".
type fileConfig struct {
	Triage Config `mapstructure:"triage"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		SymbolToken:  "lib3mf",
		ReproTimeout: 10,
		ReportDir:    "fuzz_reports",
		LogLevel:     "info",
	}
}

// Load reads a configuration file from the "configs" directory into a struct.
// The configName parameter should be the base name of the file without the
// extension (e.g., "config"). The result parameter should be a pointer to a
// struct that the configuration will be unmarshaled into.
func Load(configName string, result interface{}) error {
	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.AddConfigPath("configs")
	v.AddConfigPath("../configs")    // for go test run from inside a package
	v.AddConfigPath("../../configs") // for deeper packages

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := v.Unmarshal(result); err != nil {
		return fmt.Errorf("failed to unmarshal config data: %w", err)
	}

	return nil
}

// LoadConfig loads the triage section of config.yaml, filling unset
// fields from Default.
func LoadConfig() (*Config, error) {
	var fc fileConfig
	if err := Load("config", &fc); err != nil {
		return nil, err
	}

	cfg := fc.Triage
	defaults := Default()
	if cfg.SymbolToken == "" {
		cfg.SymbolToken = defaults.SymbolToken
	}
	if cfg.ReproTimeout <= 0 {
		cfg.ReproTimeout = defaults.ReproTimeout
	}
	if cfg.ReportDir == "" {
		cfg.ReportDir = defaults.ReportDir
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaults.LogLevel
	}
	return &cfg, nil
}
