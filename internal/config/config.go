package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the client settings read from config.toml.
type Config struct {
	APIBaseURL      string
	PageSize        int
	Token           string
	TokenFile       string
	LogFile         string
	LogLevel        string
	RequestTimeout  time.Duration
	OverviewRefresh time.Duration
}

// TokenEnv overrides the configured token when set.
const TokenEnv = "CONCIERGE_TOKEN"

const (
	defaultConfigPath      = "~/.config/concierge/config.toml"
	defaultAPIBaseURL      = "http://localhost:8080/api/v1"
	defaultLogFile         = "~/.local/state/concierge/concierge.log"
	defaultLogLevel        = "info"
	defaultPageSize        = 10
	maxPageSize            = 200
	defaultRequestTimeout  = 5 * time.Second
	defaultOverviewRefresh = 30 * time.Second
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIBaseURL:      defaultAPIBaseURL,
		PageSize:        defaultPageSize,
		LogFile:         mustExpand(defaultLogFile),
		LogLevel:        defaultLogLevel,
		RequestTimeout:  defaultRequestTimeout,
		OverviewRefresh: defaultOverviewRefresh,
	}
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.applyEnv()
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBaseURL             string `toml:"api_base_url"`
		PageSize               int    `toml:"page_size"`
		Token                  string `toml:"token"`
		TokenFile              string `toml:"token_file"`
		LogFile                string `toml:"log_file"`
		LogLevel               string `toml:"log_level"`
		RequestTimeoutSeconds  int    `toml:"request_timeout_seconds"`
		OverviewRefreshSeconds int    `toml:"overview_refresh_seconds"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIBaseURL); v != "" {
		cfg.APIBaseURL = strings.TrimRight(v, "/")
	}
	if raw.PageSize > 0 {
		cfg.PageSize = min(raw.PageSize, maxPageSize)
	}
	cfg.Token = strings.TrimSpace(raw.Token)
	if v := strings.TrimSpace(raw.TokenFile); v != "" {
		cfg.TokenFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if raw.RequestTimeoutSeconds > 0 {
		cfg.RequestTimeout = time.Duration(raw.RequestTimeoutSeconds) * time.Second
	}
	if raw.OverviewRefreshSeconds > 0 {
		cfg.OverviewRefresh = time.Duration(raw.OverviewRefreshSeconds) * time.Second
	}
	cfg.applyEnv()

	return cfg, nil
}

func (c *Config) applyEnv() {
	if tok := strings.TrimSpace(os.Getenv(TokenEnv)); tok != "" {
		c.Token = tok
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading ~ and makes path absolute.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
