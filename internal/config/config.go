package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFallbackSymbols is used when neither the config file nor the remote
// index list provides a symbol universe.
var DefaultFallbackSymbols = []string{
	"RELIANCE", "TCS", "HDFCBANK", "ICICIBANK", "INFY", "HINDUNILVR",
	"ADANIENT", "ZOMATO", "VEDL", "ITC", "BAJFINANCE", "SBIN",
}

// Config holds all application configuration.
type Config struct {
	Server struct {
		Port           string `yaml:"port"`
		CacheMaxAgeSec int    `yaml:"cache_max_age_sec"`
	} `yaml:"server"`
	Market struct {
		Suffix      string `yaml:"suffix"`
		HistoryDays int    `yaml:"history_days"`
		RSIWindow   int    `yaml:"rsi_window"`
		DelayMS     int    `yaml:"delay_ms"`
	} `yaml:"market"`
	Symbols struct {
		IndexURL string   `yaml:"index_url"`
		Fallback []string `yaml:"fallback"`
	} `yaml:"symbols"`
	Pledge struct {
		Enabled bool   `yaml:"enabled"`
		BaseURL string `yaml:"base_url"`
	} `yaml:"pledge"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"schedule"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.Pledge.Enabled = true

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("CACHE_MAX_AGE_SEC"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Server.CacheMaxAgeSec = n
		}
	}
	if v := os.Getenv("MARKET_SUFFIX"); v != "" {
		cfg.Market.Suffix = v
	}
	if v := os.Getenv("SYMBOLS_INDEX_URL"); v != "" {
		cfg.Symbols.IndexURL = v
	}
	if v := os.Getenv("SYMBOLS_FALLBACK"); v != "" {
		cfg.Symbols.Fallback = splitCSV(v)
	}
	if v := os.Getenv("PLEDGE_BASE_URL"); v != "" {
		cfg.Pledge.BaseURL = v
	}
	if v := os.Getenv("PLEDGE_ENABLED"); v != "" {
		cfg.Pledge.Enabled = v == "true" || v == "1"
	}
	if v := os.Getenv("REFRESH_CRON"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Server.CacheMaxAgeSec == 0 {
		cfg.Server.CacheMaxAgeSec = 900
	}
	if cfg.Market.Suffix == "" {
		cfg.Market.Suffix = ".NS"
	}
	if cfg.Market.HistoryDays == 0 {
		cfg.Market.HistoryDays = 30
	}
	if cfg.Market.RSIWindow == 0 {
		cfg.Market.RSIWindow = 14
	}
	if cfg.Market.DelayMS == 0 {
		cfg.Market.DelayMS = 500
	}
	if len(cfg.Symbols.Fallback) == 0 {
		cfg.Symbols.Fallback = append([]string(nil), DefaultFallbackSymbols...)
	}
	if cfg.Pledge.BaseURL == "" {
		cfg.Pledge.BaseURL = "https://www.screener.in"
	}
	if cfg.Schedule.RefreshCron == "" {
		cfg.Schedule.RefreshCron = "0 */15 * * * *"
	}

	return cfg, nil
}

// Validate checks that all required fields are consistent.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server.port is required")
	}
	if c.Server.CacheMaxAgeSec < 0 {
		return fmt.Errorf("server.cache_max_age_sec must not be negative")
	}
	if c.Market.HistoryDays <= 0 {
		return fmt.Errorf("market.history_days must be positive")
	}
	if c.Market.RSIWindow <= 0 {
		return fmt.Errorf("market.rsi_window must be positive")
	}
	if c.Market.DelayMS < 0 {
		return fmt.Errorf("market.delay_ms must not be negative")
	}
	if len(c.Symbols.Fallback) == 0 {
		return fmt.Errorf("symbols.fallback must not be empty")
	}
	return nil
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
