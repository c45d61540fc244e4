// Package config loads and validates environment configuration for the shared
// packages, optionally seeded from .env files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/Sameerbk201/sameer-shared/logger"
)

// ErrInvalidConfig is returned when the environment does not satisfy the schema.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config holds everything the shared packages read from the environment.
type Config struct {
	Environment string `env:"APP_ENV" validate:"required,oneof=production staging development local test"`

	Log        LogConfig
	Encryption EncryptionConfig
}

// LogConfig configures the logger package.
type LogConfig struct {
	Level      string `env:"LOG_LEVEL" validate:"omitempty,oneof=debug info warn warning error"`
	Encoding   string `env:"LOG_ENCODING" validate:"omitempty,oneof=json console"`
	FilePath   string `env:"LOG_FILE"`
	MaxSizeMB  int    `env:"LOG_MAX_SIZE_MB" validate:"gte=0"`
	MaxBackups int    `env:"LOG_MAX_BACKUPS" validate:"gte=0"`
	MaxAgeDays int    `env:"LOG_MAX_AGE_DAYS" validate:"gte=0"`
	Compress   bool   `env:"LOG_COMPRESS"`
}

// EncryptionConfig carries the hex key material for the crypto package.
// Both fields are optional: an empty value means encryption is not configured yet.
type EncryptionConfig struct {
	SecretKey string `env:"ENCRYPTION_SECRET_KEY" validate:"omitempty,rawhex,len=64"`
	IV        string `env:"ENCRYPTION_IV" validate:"omitempty,rawhex,len=32"`
}

// Load reads the given .env files (".env" when none are given; missing files
// are skipped), then the process environment, and validates the result.
// Variables already set in the environment win over .env files.
func Load(files ...string) (*Config, error) {
	if err := loadDotEnv(files...); err != nil {
		return nil, err
	}

	var errs []error

	cfg := &Config{
		Environment: getEnv("APP_ENV", "production"),
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", ""),
			Encoding:   getEnv("LOG_ENCODING", ""),
			FilePath:   getEnv("LOG_FILE", ""),
			MaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 0, &errs),
			MaxBackups: getEnvInt("LOG_MAX_BACKUPS", 0, &errs),
			MaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 0, &errs),
			Compress:   getEnvBool("LOG_COMPRESS", false, &errs),
		},
		Encryption: readEncryption(),
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}

	if err := validateStruct(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadEncryption reads and validates only the encryption section.
func LoadEncryption(files ...string) (EncryptionConfig, error) {
	if err := loadDotEnv(files...); err != nil {
		return EncryptionConfig{}, err
	}

	enc := readEncryption()
	if err := validateStruct(enc); err != nil {
		return EncryptionConfig{}, err
	}

	return enc, nil
}

// EncryptionKeys returns the loaded key material. It satisfies crypto.KeyProvider.
func (c *Config) EncryptionKeys() (string, string, error) {
	if c == nil {
		return "", "", nil
	}

	return c.Encryption.SecretKey, c.Encryption.IV, nil
}

// LoggerConfig maps the log section to logger.Config.
func (c *Config) LoggerConfig() logger.Config {
	return logger.Config{
		Environment: logger.Environment(c.Environment),
		Level:       c.Log.Level,
		Encoding:    c.Log.Encoding,
		FilePath:    c.Log.FilePath,
		MaxSizeMB:   c.Log.MaxSizeMB,
		MaxBackups:  c.Log.MaxBackups,
		MaxAgeDays:  c.Log.MaxAgeDays,
		Compress:    c.Log.Compress,
	}
}

// EnvProvider re-reads the encryption section from the environment on every
// call, so keys exported after startup are picked up on first use.
type EnvProvider struct {
	// Files are optional .env files, see Load.
	Files []string
}

// EncryptionKeys satisfies crypto.KeyProvider.
func (p EnvProvider) EncryptionKeys() (string, string, error) {
	enc, err := LoadEncryption(p.Files...)
	if err != nil {
		return "", "", err
	}

	return enc.SecretKey, enc.IV, nil
}

func readEncryption() EncryptionConfig {
	return EncryptionConfig{
		SecretKey: strings.TrimSpace(getEnv("ENCRYPTION_SECRET_KEY", "")),
		IV:        strings.TrimSpace(getEnv("ENCRYPTION_IV", "")),
	}
}

func loadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, fs.ErrNotExist) {
			continue
		}

		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("config: failed to load %s: %w", f, err)
		}
	}

	return nil
}

// getEnv retrieves an environment variable or returns a fallback value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return fallback
}

func getEnvInt(key string, fallback int, errs *[]error) int {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}

	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s must be an integer", key))
		return fallback
	}

	return v
}

func getEnvBool(key string, fallback bool, errs *[]error) bool {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}

	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s must be a boolean", key))
		return fallback
	}

	return v
}
