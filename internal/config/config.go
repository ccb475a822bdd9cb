package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Db         DbConfig         `mapstructure:"db"`
	Queue      QueueConfig      `mapstructure:"queue"`
	Staking    StakingConfig    `mapstructure:"staking"`
	Token      TokenConfig      `mapstructure:"token"`
	Collection CollectionConfig `mapstructure:"collection"`
	Deployment DeploymentConfig `mapstructure:"deployment"`
	Poller     PollerConfig     `mapstructure:"poller"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
}

func (cfg *Config) Validate() error {
	if err := cfg.Server.Validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := cfg.Db.Validate(); err != nil {
		return fmt.Errorf("db: %w", err)
	}
	if err := cfg.Queue.Validate(); err != nil {
		return fmt.Errorf("queue: %w", err)
	}
	if err := cfg.Staking.Validate(); err != nil {
		return fmt.Errorf("staking: %w", err)
	}
	if err := cfg.Token.Validate(); err != nil {
		return fmt.Errorf("token: %w", err)
	}
	if err := cfg.Collection.Validate(); err != nil {
		return fmt.Errorf("collection: %w", err)
	}
	if err := cfg.Deployment.Validate(); err != nil {
		return fmt.Errorf("deployment: %w", err)
	}
	if err := cfg.Poller.Validate(); err != nil {
		return fmt.Errorf("poller: %w", err)
	}
	if err := cfg.Metrics.Validate(); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	return nil
}

// New returns a fully parsed Config object from a given file path.
// Every key can be overridden by an environment variable where dots are
// replaced by underscores, e.g. DB_ADDRESS overrides db.address.
func New(cfgFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(cfgFile)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", defaultServerHost)
	v.SetDefault("server.port", defaultServerPort)
	v.SetDefault("server.read-timeout", defaultServerTimeout)
	v.SetDefault("server.write-timeout", defaultServerTimeout)
	v.SetDefault("server.idle-timeout", defaultServerIdleTimeout)

	v.SetDefault("db.max-retry-times", defaultDbMaxRetryTimes)
	v.SetDefault("db.retry-interval", defaultDbRetryInterval)

	v.SetDefault("queue.exchange", defaultQueueExchange)
	v.SetDefault("queue.max-retry-times", defaultQueueMaxRetryTimes)
	v.SetDefault("queue.retry-interval", defaultQueueRetryInterval)

	v.SetDefault("staking.reward-tokens-per-day", DefaultRewardTokensPerDay)

	v.SetDefault("token.name", DefaultTokenName)
	v.SetDefault("token.symbol", DefaultTokenSymbol)
	v.SetDefault("token.decimals", DefaultTokenDecimals)
	v.SetDefault("token.staker-allocation", DefaultStakerAllocation)
	v.SetDefault("token.team-allocation", DefaultTeamAllocation)

	v.SetDefault("collection.name", DefaultCollectionName)
	v.SetDefault("collection.symbol", DefaultCollectionSymbol)
	v.SetDefault("collection.max-supply", DefaultMaxSupply)
	v.SetDefault("collection.team-reserve", DefaultTeamReserve)
	v.SetDefault("collection.max-per-wallet", DefaultMaxPerWallet)

	v.SetDefault("deployment.deployer", DefaultDeployer)
	v.SetDefault("deployment.team-wallet", DefaultTeamWallet)
	v.SetDefault("deployment.artifacts-dir", defaultArtifactsDir)

	v.SetDefault("poller.mission-check-interval", defaultMissionCheckInterval)

	v.SetDefault("metrics.host", defaultMetricsHost)
	v.SetDefault("metrics.port", defaultMetricsPort)
}

// Default returns a configuration usable without a config file, e.g. by the
// deploy command and tests.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         defaultServerHost,
			Port:         defaultServerPort,
			ReadTimeout:  defaultServerTimeout,
			WriteTimeout: defaultServerTimeout,
			IdleTimeout:  defaultServerIdleTimeout,
		},
		Db: DbConfig{
			MaxRetryTimes: defaultDbMaxRetryTimes,
			RetryInterval: defaultDbRetryInterval,
		},
		Queue: QueueConfig{
			Exchange:      defaultQueueExchange,
			MaxRetryTimes: defaultQueueMaxRetryTimes,
			RetryInterval: defaultQueueRetryInterval,
		},
		Staking: StakingConfig{
			RewardTokensPerDay: DefaultRewardTokensPerDay,
		},
		Token: TokenConfig{
			Name:             DefaultTokenName,
			Symbol:           DefaultTokenSymbol,
			Decimals:         DefaultTokenDecimals,
			StakerAllocation: DefaultStakerAllocation,
			TeamAllocation:   DefaultTeamAllocation,
		},
		Collection: CollectionConfig{
			Name:         DefaultCollectionName,
			Symbol:       DefaultCollectionSymbol,
			MaxSupply:    DefaultMaxSupply,
			TeamReserve:  DefaultTeamReserve,
			MaxPerWallet: DefaultMaxPerWallet,
		},
		Deployment: DeploymentConfig{
			Deployer:     DefaultDeployer,
			TeamWallet:   DefaultTeamWallet,
			ArtifactsDir: defaultArtifactsDir,
		},
		Poller: PollerConfig{
			MissionCheckInterval: defaultMissionCheckInterval,
		},
		Metrics: MetricsConfig{
			Host: defaultMetricsHost,
			Port: defaultMetricsPort,
		},
	}
}
