package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

// Config is the full runtime configuration, populated from the environment.
// TELEGRAM_BOT_TOKEN is the only required setting.
type Config struct {
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN,required"`
	RedisURL         string `env:"REDIS_URL"`
	HTTPAddr         string `env:"HTTP_ADDR" envDefault:":8080"`

	AlertCheckSecs      int `env:"ALERT_CHECK_SECS" envDefault:"300"`
	AlertFirstDelaySecs int `env:"ALERT_FIRST_DELAY_SECS" envDefault:"10"`
	UpstreamTimeoutSecs int `env:"UPSTREAM_TIMEOUT_SECS" envDefault:"30"`

	// Override points for tests and self-hosted mirrors; empty picks the
	// provider defaults.
	QuoteBaseURL string `env:"QUOTE_API_BASE_URL"`
	RateBaseURL  string `env:"RATE_API_BASE_URL"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.AlertCheckSecs <= 0 {
		return nil, fmt.Errorf("ALERT_CHECK_SECS must be positive, got %d", cfg.AlertCheckSecs)
	}
	if cfg.AlertFirstDelaySecs < 0 {
		return nil, fmt.Errorf("ALERT_FIRST_DELAY_SECS must not be negative, got %d", cfg.AlertFirstDelaySecs)
	}
	if cfg.UpstreamTimeoutSecs <= 0 {
		return nil, fmt.Errorf("UPSTREAM_TIMEOUT_SECS must be positive, got %d", cfg.UpstreamTimeoutSecs)
	}
	return cfg, nil
}

func (c *Config) CheckInterval() time.Duration {
	return time.Duration(c.AlertCheckSecs) * time.Second
}

func (c *Config) FirstDelay() time.Duration {
	return time.Duration(c.AlertFirstDelaySecs) * time.Second
}

func (c *Config) UpstreamTimeout() time.Duration {
	return time.Duration(c.UpstreamTimeoutSecs) * time.Second
}
