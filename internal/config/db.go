package config

import (
	"errors"
	"time"
)

const (
	defaultDbMaxRetryTimes = 5
	defaultDbRetryInterval = 500 * time.Millisecond
)

type DbConfig struct {
	Username      string        `mapstructure:"username"`
	Password      string        `mapstructure:"password"`
	DbName        string        `mapstructure:"db-name"`
	Address       string        `mapstructure:"address"`
	MaxRetryTimes uint          `mapstructure:"max-retry-times"`
	RetryInterval time.Duration `mapstructure:"retry-interval"`
}

func (cfg *DbConfig) Validate() error {
	if cfg.Address == "" {
		return errors.New("address is required")
	}
	if cfg.DbName == "" {
		return errors.New("db-name is required")
	}
	if cfg.MaxRetryTimes == 0 {
		return errors.New("max-retry-times must be positive")
	}
	if cfg.RetryInterval <= 0 {
		return errors.New("retry-interval must be positive")
	}

	return nil
}
