package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// Config holds the entire process configuration
type Config struct {
	Server ServerConfig   `toml:"server"`
	Corpus CorpusSettings `toml:"corpus"` // defaults applied to corpora loaded without explicit settings
}

// ServerConfig has HTTP and job related options.
type ServerConfig struct {
	Port        int    `toml:"port"`
	MaxUploadMB int    `toml:"max_upload_mb"`
	JobWorkers  int    `toml:"job_workers"`
	LogLevel    string `toml:"log_level"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        8080,
			MaxUploadMB: 32,
			JobWorkers:  2,
			LogLevel:    "info",
		},
		Corpus: CorpusSettings{
			MaxSuggestions: DefaultMaxSuggestions,
			Workers:        1,
		},
	}
}

// LoadConfig reads a TOML file on top of the defaults.
// A missing file is not an error: the defaults are returned.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		log.Warnf("Config file %s not found, using built-in defaults", path)
		return cfg, nil
	}

	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	for _, key := range meta.Undecoded() {
		log.Warnf("Unknown config key %q in %s", key.String(), path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the server options and the corpus defaults
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.MaxUploadMB < 1 {
		return fmt.Errorf("server.max_upload_mb must be positive, got %d", c.Server.MaxUploadMB)
	}
	if c.Server.JobWorkers < 1 {
		return fmt.Errorf("server.job_workers must be positive, got %d", c.Server.JobWorkers)
	}

	c.Corpus.ApplyDefaults()
	if c.Corpus.MaxSuggestions > MaxSuggestionsLimit {
		return fmt.Errorf("corpus.max_suggestions must be at most %d, got %d", MaxSuggestionsLimit, c.Corpus.MaxSuggestions)
	}
	if c.Corpus.Workers > MaxWorkers {
		return fmt.Errorf("corpus.workers must be at most %d, got %d", MaxWorkers, c.Corpus.Workers)
	}
	return nil
}

// MaxUploadBytes returns the upload limit in bytes
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.Server.MaxUploadMB) << 20
}

// CorpusDefaults returns the configured corpus settings under name
func (c *Config) CorpusDefaults(name string) CorpusSettings {
	settings := c.Corpus
	settings.Name = name
	settings.ApplyDefaults()
	return settings
}
