package config

import (
	"fmt"
	"log/slog"
	"os"
	"path"
	"time"

	"github.com/BurntSushi/toml"
)

const baseCfgPath = "ytrss/config.toml"

const (
	DefaultTimeout = 10 * time.Second
	DefaultLimit   = 5
)

type Config struct {
	Timeout   string `toml:"timeout"`    // Go duration, e.g. "10s"
	Limit     int    `toml:"limit"`      // Number of feed entries to keep
	UserAgent string `toml:"user_agent"` // Sent with both page and feed requests
	CachePath string `toml:"cache_path"` // Channel id cache, disabled when empty
	Clipboard *bool  `toml:"clipboard"`  // Copy feed URL to clipboard (defaults to true if not set)
	LogLevel  string `toml:"log_level"`  // debug, info, warn or error
}

// CopyToClipboard returns true unless the clipboard was explicitly disabled
func (c Config) CopyToClipboard() bool {
	if c.Clipboard == nil {
		return true
	}
	return *c.Clipboard
}

// RequestTimeout returns the parsed timeout, falling back to DefaultTimeout.
// Validate should be called first to surface bad values.
func (c Config) RequestTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return DefaultTimeout
	}
	return d
}

func (c Config) Validate() error {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return fmt.Errorf("invalid timeout '%s' with %w", c.Timeout, err)
	}
	if d <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.Limit <= 0 {
		return fmt.Errorf("limit must be a positive number, got %d", c.Limit)
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level '%s'", c.LogLevel)
	}
	return nil
}

func Read(path string) (Config, error) {
	conf := Default()
	dat, err := os.ReadFile(path)
	if err != nil {
		return conf, err
	}
	_, err = toml.Decode(string(dat), &conf)
	if err != nil {
		return conf, fmt.Errorf("failed to decode config at %s with %w", path, err)
	}
	return conf, nil
}

func Write(cfgPath string, cfg Config) error {
	blob, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config with %w", err)
	}
	basePath := path.Dir(cfgPath)
	err = os.MkdirAll(basePath, os.ModePerm)
	if err != nil {
		return fmt.Errorf("failed to create base config directory at '%s' with %w", basePath, err)
	}
	err = os.WriteFile(cfgPath, blob, 0644)
	if err != nil {
		return fmt.Errorf("failed to write into config file at '%s' with %w", cfgPath, err)
	}
	slog.Info("config written", "at", cfgPath)
	return nil
}

func Default() Config {
	return Config{
		Timeout:   DefaultTimeout.String(),
		Limit:     DefaultLimit,
		UserAgent: "Mozilla/5.0 (X11; Linux x86_64; rv:128.0) Gecko/20100101 Firefox/128.0",
		LogLevel:  "info",
	}
}

// DefaultCachePath is suggested in the written config; the cache stays off until cache_path is set.
func DefaultCachePath() string {
	cacheDir := os.Getenv("XDG_CACHE_HOME")
	if cacheDir == "" {
		home := os.Getenv("HOME")
		if home == "" {
			return "ytrss.db"
		}
		cacheDir = path.Join(home, ".cache")
	}
	return path.Join(cacheDir, "ytrss", "channels.db")
}

func DefaultPath() string {
	var xdgHome = os.Getenv("XDG_CONFIG_HOME")
	if xdgHome != "" {
		return path.Join(xdgHome, baseCfgPath)
	}

	var home = os.Getenv("HOME")
	if home != "" {
		return path.Join(home, ".config", baseCfgPath)
	}

	return "config.toml"
}
