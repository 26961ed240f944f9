package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

const (
	defaultBaseURL = "http://localhost:8080/api"
	// No request timeout by default: a hung request hangs its loading
	// indicator, matching the backend client behavior this replaces.
	defaultHTTPTimeout = 0 * time.Second
	defaultWatchSpec   = "@every 30s"
)

// Config is everything the client needs at startup.
type Config struct {
	// BaseURL is the backend base path, including /api.
	BaseURL string `mapstructure:"base_url"`
	// StatePath is the local state database (session storage).
	StatePath string `mapstructure:"state_path"`
	// HTTPTimeout bounds each request; zero means no timeout.
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
	// WatchSpec is the cron spec for application-status watch mode.
	WatchSpec string `mapstructure:"watch_spec"`
	// Debug enables diagnostic logging to stderr.
	Debug bool `mapstructure:"debug"`
}

// Load reads the optional config file and PARKCLI_* environment overrides.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("base_url", defaultBaseURL)
	v.SetDefault("state_path", defaultStatePath())
	v.SetDefault("http_timeout", defaultHTTPTimeout)
	v.SetDefault("watch_spec", defaultWatchSpec)
	v.SetDefault("debug", false)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "parkcli"))
	}
	v.AddConfigPath(".")

	v.SetEnvPrefix("PARKCLI")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// a missing config file is normal; anything else is not
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base_url must not be empty")
	}

	if err := os.MkdirAll(filepath.Dir(cfg.StatePath), 0o700); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	return &cfg, nil
}

func defaultStatePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "parkcli", "state.db")
}
