package config

import (
	"errors"
	"time"
)

const (
	defaultQueueExchange      = "gelato.staking.events"
	defaultQueueMaxRetryTimes = 3
	defaultQueueRetryInterval = 200 * time.Millisecond
)

// QueueConfig configures the RabbitMQ event publisher. An empty Url disables
// publishing.
type QueueConfig struct {
	Url           string        `mapstructure:"url"`
	User          string        `mapstructure:"user"`
	Password      string        `mapstructure:"password"`
	Exchange      string        `mapstructure:"exchange"`
	MaxRetryTimes uint          `mapstructure:"max-retry-times"`
	RetryInterval time.Duration `mapstructure:"retry-interval"`
}

func (cfg *QueueConfig) Enabled() bool {
	return cfg.Url != ""
}

func (cfg *QueueConfig) Validate() error {
	if !cfg.Enabled() {
		return nil
	}
	if cfg.Exchange == "" {
		return errors.New("exchange is required")
	}
	if cfg.MaxRetryTimes == 0 {
		return errors.New("max-retry-times must be positive")
	}
	if cfg.RetryInterval <= 0 {
		return errors.New("retry-interval must be positive")
	}

	return nil
}
