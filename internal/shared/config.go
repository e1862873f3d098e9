package shared

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Index    IndexConfig    `toml:"index"`
	Paths    PathsConfig    `toml:"paths"`
	Sync     SyncConfig     `toml:"sync"`
	Database DatabaseConfig `toml:"database"`
	Metrics  MetricsConfig  `toml:"metrics"`
}

// IndexConfig contains the search index endpoint and credentials.
type IndexConfig struct {
	URL      string `toml:"url"`
	Username string `toml:"username"`
	Password string `toml:"password"`
	Name     string `toml:"name"`
	Size     int    `toml:"size"`
	Timeout  int    `toml:"timeout"` // seconds
}

// RequestTimeout returns the configured timeout as a [time.Duration].
func (c IndexConfig) RequestTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// PathsConfig contains the source download tree and the destination link tree.
type PathsConfig struct {
	Source string `toml:"source"`
	Dest   string `toml:"dest"`
}

// SyncConfig contains reconciliation settings.
type SyncConfig struct {
	DryRun    bool    `toml:"dry_run"`
	RateLimit float64 `toml:"rate_limit"`
}

// DatabaseConfig contains run history database settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// MetricsConfig contains Prometheus export settings.
type MetricsConfig struct {
	Textfile string `toml:"textfile"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep their defaults from the embedded example config.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingConfig, path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate reports the first setting that makes a sync run impossible.
func (c *Config) Validate() error {
	switch {
	case c.Index.URL == "":
		return fmt.Errorf("%w: index.url is required", ErrInvalidConfig)
	case c.Index.Name == "":
		return fmt.Errorf("%w: index.name is required", ErrInvalidConfig)
	case c.Index.Size <= 0:
		return fmt.Errorf("%w: index.size must be positive", ErrInvalidConfig)
	case c.Index.Username != "" && c.Index.Password == "":
		return fmt.Errorf("%w: index.password is required when index.username is set", ErrMissingCredentials)
	case c.Index.Timeout < 0:
		return fmt.Errorf("%w: index.timeout cannot be negative", ErrInvalidConfig)
	case c.Paths.Source == "":
		return fmt.Errorf("%w: paths.source is required", ErrInvalidConfig)
	case c.Paths.Dest == "":
		return fmt.Errorf("%w: paths.dest is required", ErrInvalidConfig)
	case c.Sync.RateLimit < 0:
		return fmt.Errorf("%w: sync.rate_limit cannot be negative", ErrInvalidConfig)
	}
	return nil
}
