package config

import (
	"errors"
	"net"
)

const (
	defaultMetricsHost = "0.0.0.0"
	defaultMetricsPort = 2112
)

type MetricsConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

func (cfg *MetricsConfig) Validate() error {
	if cfg.Port < 0 || cfg.Port > 65535 {
		return errors.New("port must be between 0 and 65535")
	}
	if net.ParseIP(cfg.Host) == nil {
		return errors.New("host must be a valid IP address")
	}

	return nil
}

func (cfg *MetricsConfig) GetMetricsPort() int {
	return cfg.Port
}
