package logger

import (
	"fmt"
	"io"
)

// Environment selects the baseline encoder and default level.
type Environment string

const (
	EnvironmentProduction  Environment = "production"
	EnvironmentStaging     Environment = "staging"
	EnvironmentDevelopment Environment = "development"
	EnvironmentLocal       Environment = "local"
	EnvironmentTest        Environment = "test"
)

const (
	defaultMaxSizeMB  = 100
	defaultMaxBackups = 10
	defaultMaxAgeDays = 30
)

// Config holds logger construction inputs.
type Config struct {
	Environment Environment
	// Level overrides the environment default (debug for development/local, info otherwise).
	Level string
	// Encoding is "json" or "console". Empty picks json for production-like environments.
	Encoding string

	// Output replaces stdout. Mostly useful in tests.
	Output io.Writer
	// DisableConsole drops the stdout sink; FilePath must then be set.
	DisableConsole bool

	// FilePath enables a rotating log file alongside the console sink.
	FilePath   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

func (c Config) validate() error {
	switch c.Environment {
	case EnvironmentProduction, EnvironmentStaging, EnvironmentDevelopment, EnvironmentLocal, EnvironmentTest:
	default:
		return fmt.Errorf("invalid environment %q", c.Environment)
	}

	switch c.Encoding {
	case "", "json", "console":
	default:
		return fmt.Errorf("invalid encoding %q", c.Encoding)
	}

	if c.DisableConsole && c.FilePath == "" {
		return fmt.Errorf("console output disabled without a file path")
	}

	return nil
}

func (c Config) isDevelopment() bool {
	return c.Environment == EnvironmentDevelopment || c.Environment == EnvironmentLocal
}

func (c Config) level() (Level, error) {
	if c.Level != "" {
		return ParseLevel(c.Level)
	}

	if c.isDevelopment() {
		return LevelDebug, nil
	}

	return LevelInfo, nil
}

func (c Config) encoding() string {
	if c.Encoding != "" {
		return c.Encoding
	}

	if c.isDevelopment() {
		return "console"
	}

	return "json"
}

func orDefault(v, def int) int {
	if v > 0 {
		return v
	}

	return def
}
