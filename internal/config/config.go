package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime settings for the simulator.
type Config struct {
	LogLevel  string
	LogFormat string
	// Seed for obstacle picks. Zero means seed from the clock.
	Seed int64

	// MongoURI enables the event journal when set.
	MongoURI          string
	MongoDatabase     string
	JournalCollection string
	JournalTimeout    time.Duration
}

// Load reads an optional .env file and then the process environment. An
// explicit envFile must exist; the default .env may be missing.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{
		LogLevel:          getenv("SIM_LOG_LEVEL", "warn"),
		LogFormat:         getenv("SIM_LOG_FORMAT", "text"),
		MongoURI:          os.Getenv("MONGO_URI"),
		MongoDatabase:     getenv("MONGO_DB", "transport"),
		JournalCollection: getenv("SIM_JOURNAL_COLLECTION", "events"),
		JournalTimeout:    5 * time.Second,
	}

	if v := os.Getenv("SIM_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid SIM_SEED %q: %w", v, err)
		}
		cfg.Seed = seed
	}

	if v := os.Getenv("SIM_JOURNAL_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SIM_JOURNAL_TIMEOUT %q: %w", v, err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("invalid SIM_JOURNAL_TIMEOUT %q: must be positive", v)
		}
		cfg.JournalTimeout = d
	}

	return cfg, nil
}

// JournalEnabled reports whether events should be written to MongoDB.
func (c *Config) JournalEnabled() bool {
	return c.MongoURI != ""
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
