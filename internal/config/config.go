package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"SatoshiSim/internal/model"
)

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		BaseURL   string `yaml:"base_url"`   // CoinGecko-compatible API root, empty for the public one
		ChartPath string `yaml:"chart_path"` // historical dataset override, empty for the bundled one
	} `yaml:"data_source"`
	Scenario struct {
		FiatAmount   float64 `yaml:"fiat_amount"`
		ExchangeRate float64 `yaml:"exchange_rate"`
		DefaultYear  int     `yaml:"default_year"`
	} `yaml:"scenario"`
	Holdings struct {
		BTC float64 `yaml:"btc"` // the fortune the cart spends against
	} `yaml:"holdings"`
	DefaultQuote struct {
		USD       float64 `yaml:"usd"`
		Change24h float64 `yaml:"change_24h"`
	} `yaml:"default_quote"`
	Schedule struct {
		RefreshCron  string `yaml:"refresh_cron"`
		SnapshotCron string `yaml:"snapshot_cron"`
	} `yaml:"schedule"`
	State struct {
		Dir string `yaml:"dir"`
	} `yaml:"state"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Catalog []model.ComparisonItem `yaml:"catalog"`
	Proxy   string                 `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

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
	if v := os.Getenv("COINGECKO_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("CHART_PATH"); v != "" {
		cfg.DataSource.ChartPath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("FIAT_AMOUNT"); v != "" {
		var amount float64
		if _, err := fmt.Sscanf(v, "%f", &amount); err == nil {
			cfg.Scenario.FiatAmount = amount
		}
	}
	if v := os.Getenv("EXCHANGE_RATE"); v != "" {
		var rate float64
		if _, err := fmt.Sscanf(v, "%f", &rate); err == nil {
			cfg.Scenario.ExchangeRate = rate
		}
	}
	if v := os.Getenv("STATE_DIR"); v != "" {
		cfg.State.Dir = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("CRON_REFRESH"); v != "" {
		cfg.Schedule.RefreshCron = v
	}

	// Defaults
	if cfg.Scenario.FiatAmount == 0 {
		cfg.Scenario.FiatAmount = 5000
	}
	if cfg.Scenario.ExchangeRate == 0 {
		cfg.Scenario.ExchangeRate = 6.5
	}
	if cfg.Scenario.DefaultYear == 0 {
		cfg.Scenario.DefaultYear = 2014
	}
	if cfg.Holdings.BTC == 0 {
		cfg.Holdings.BTC = 1000000
	}
	if cfg.DefaultQuote.USD == 0 {
		cfg.DefaultQuote.USD = 100000
		cfg.DefaultQuote.Change24h = 2.5
	}
	if cfg.Schedule.RefreshCron == "" {
		cfg.Schedule.RefreshCron = "*/30 * * * * *"
	}
	if cfg.Schedule.SnapshotCron == "" {
		cfg.Schedule.SnapshotCron = "0 0 * * * *"
	}
	if cfg.State.Dir == "" {
		cfg.State.Dir = "data/state"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/satoshi_sim.db"
	}

	return cfg, nil
}

// Validate checks that all required fields are sane.
func (c *Config) Validate() error {
	if c.Scenario.FiatAmount <= 0 {
		return fmt.Errorf("scenario.fiat_amount must be positive")
	}
	if c.Scenario.ExchangeRate <= 0 {
		return fmt.Errorf("scenario.exchange_rate must be positive")
	}
	if c.Holdings.BTC <= 0 {
		return fmt.Errorf("holdings.btc must be positive")
	}
	if c.DefaultQuote.USD <= 0 {
		return fmt.Errorf("default_quote.usd must be positive")
	}
	for i, item := range c.Catalog {
		if item.Price <= 0 {
			return fmt.Errorf("catalog[%d]: price must be positive", i)
		}
	}
	return nil
}
