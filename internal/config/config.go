package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"
)

type Config struct {
	APIBaseURL string           `json:"api_base_url"`
	Token      string           `json:"token"`
	UserID     string           `json:"user_id"`
	PageLimit  int              `json:"page_limit"`
	DebounceMS int              `json:"debounce_ms"`
	CachePath  string           `json:"cache_path"`
	LogConfig  logger.LogConfig `json:"log_config"`
	Watch      WatchConfig      `json:"watch"`
}

// WatchConfig drives the scheduled jobs of `notewind watch`.
type WatchConfig struct {
	RefreshSpec string `json:"refresh_spec"`
	StreakSpec  string `json:"streak_spec"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("api_base_url is required")
	}
	if cfg.PageLimit == 0 {
		cfg.PageLimit = 8
	}
	if cfg.DebounceMS == 0 {
		cfg.DebounceMS = 500
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.Watch.RefreshSpec == "" {
		cfg.Watch.RefreshSpec = "*/1 * * * *"
	}
	if cfg.Watch.StreakSpec == "" {
		cfg.Watch.StreakSpec = "0 6 * * *"
	}
	return &cfg, nil
}
