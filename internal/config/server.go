package config

import (
	"errors"
	"time"
)

const (
	defaultServerHost        = "0.0.0.0"
	defaultServerPort        = 8090
	defaultServerTimeout     = 30 * time.Second
	defaultServerIdleTimeout = 120 * time.Second
)

type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read-timeout"`
	WriteTimeout time.Duration `mapstructure:"write-timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle-timeout"`
	// DevClock exposes POST /v1/dev/increase-time, shifting the clock every
	// contract reads. Never enable it outside local networks.
	DevClock bool `mapstructure:"dev-clock"`
}

func (cfg *ServerConfig) Validate() error {
	if cfg.Host == "" {
		return errors.New("host is required")
	}
	if cfg.Port < 1024 || cfg.Port > 65535 {
		return errors.New("port must be between 1024 and 65535")
	}
	if cfg.ReadTimeout <= 0 || cfg.WriteTimeout <= 0 || cfg.IdleTimeout <= 0 {
		return errors.New("timeouts must be positive")
	}

	return nil
}
