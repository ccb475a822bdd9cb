package config

import (
	"errors"
	"time"
)

const defaultMissionCheckInterval = time.Minute

type PollerConfig struct {
	MissionCheckInterval time.Duration `mapstructure:"mission-check-interval"`
}

func (cfg *PollerConfig) Validate() error {
	if cfg.MissionCheckInterval <= 0 {
		return errors.New("mission-check-interval must be positive")
	}

	return nil
}
