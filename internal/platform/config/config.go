// Package config loads application configuration from environment variables.
// All variables use the TRIVIA_ prefix. A .env file in the working directory
// is read first when present; variables already set take precedence.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Corpus CorpusConfig
	Engine EngineConfig
	Export ExportConfig
	Log    LogConfig
}

// CorpusConfig selects the resource corpus.
type CorpusConfig struct {
	Dir string // empty = embedded corpus
}

// EngineConfig holds selection engine settings.
type EngineConfig struct {
	RepeatQuestions bool
	Seed            uint64 // 0 = unseeded
}

// ExportConfig holds catalog export defaults.
type ExportConfig struct {
	Format string // "json" or "xlsx"
	Path   string // empty = stdout
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with TRIVIA_ prefix.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Corpus: CorpusConfig{
			Dir: envStr("TRIVIA_RESOURCE_DIR", ""),
		},
		Engine: EngineConfig{
			RepeatQuestions: envBool("TRIVIA_REPEAT_QUESTIONS", false),
			Seed:            envUint("TRIVIA_SEED", 0),
		},
		Export: ExportConfig{
			Format: envStr("TRIVIA_EXPORT_FORMAT", "json"),
			Path:   envStr("TRIVIA_EXPORT_PATH", ""),
		},
		Log: LogConfig{
			Level:  envStr("TRIVIA_LOG_LEVEL", "info"),
			Format: envStr("TRIVIA_LOG_FORMAT", "json"),
		},
	}

	return cfg, nil
}

// Validate checks that the configuration values are usable.
func (c *Config) Validate() error {
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}

	if c.Log.Format != "json" && c.Log.Format != "text" {
		return fmt.Errorf("TRIVIA_LOG_FORMAT must be 'json' or 'text', got %q", c.Log.Format)
	}

	if c.Export.Format != "json" && c.Export.Format != "xlsx" {
		return fmt.Errorf("TRIVIA_EXPORT_FORMAT must be 'json' or 'xlsx', got %q", c.Export.Format)
	}

	if c.Corpus.Dir != "" {
		info, err := os.Stat(c.Corpus.Dir)
		if err != nil {
			return fmt.Errorf("TRIVIA_RESOURCE_DIR: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("TRIVIA_RESOURCE_DIR %q is not a directory", c.Corpus.Dir)
		}
	}

	return nil
}

// SlogLevel converts Level to a slog.Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("TRIVIA_LOG_LEVEL must be debug, info, warn or error, got %q", l.Level)
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envUint(key string, fallback uint64) uint64 {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.ParseUint(v, 10, 64); err == nil {
			return i
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		return strings.EqualFold(v, "true") || v == "1"
	}
	return fallback
}
