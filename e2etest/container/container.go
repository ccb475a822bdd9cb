package container

import (
	"fmt"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/require"

	"github.com/gelato-nft/gelato-staker/internal/config"
	"github.com/gelato-nft/gelato-staker/testutil"
)

const (
	mongoUsername  = "user"
	mongoPassword  = "password"
	mongoDbName    = "gelato-e2e"
	rabbitUser     = "user"
	rabbitPassword = "password"
)

// Manager is a wrapper around the docker resources an e2e run needs.
type Manager struct {
	cfg       ImageConfig
	pool      *dockertest.Pool
	resources map[string]*dockertest.Resource
}

func NewManager(t *testing.T) (*Manager, error) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		return nil, err
	}
	pool.MaxWait = 2 * time.Minute

	return &Manager{
		cfg:       NewImageConfig(),
		pool:      pool,
		resources: make(map[string]*dockertest.Resource),
	}, nil
}

func (m *Manager) run(t *testing.T, name string, opts *dockertest.RunOptions) *dockertest.Resource {
	t.Helper()

	suffix, err := testutil.RandomAlphaNum(4)
	require.NoError(t, err)
	opts.Name = fmt.Sprintf("%s-e2e-%s", name, suffix)

	resource, err := m.pool.RunWithOptions(opts, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{
			Name: "no",
		}
	})
	require.NoError(t, err)
	m.resources[name] = resource
	return resource
}

// RunMongoResource starts MongoDB and returns the db config pointing at it.
func (m *Manager) RunMongoResource(t *testing.T) *config.DbConfig {
	resource := m.run(t, "mongo", &dockertest.RunOptions{
		Repository: m.cfg.MongoRepository,
		Tag:        m.cfg.MongoVersion,
		Env: []string{
			"MONGO_INITDB_ROOT_USERNAME=" + mongoUsername,
			"MONGO_INITDB_ROOT_PASSWORD=" + mongoPassword,
			"MONGO_INITDB_DATABASE=" + mongoDbName,
		},
	})

	return &config.DbConfig{
		Username:      mongoUsername,
		Password:      mongoPassword,
		DbName:        mongoDbName,
		Address:       fmt.Sprintf("mongodb://localhost:%s/", resource.GetPort("27017/tcp")),
		MaxRetryTimes: 30,
		RetryInterval: time.Second,
	}
}

// RunRabbitMQResource starts RabbitMQ, waits until it accepts connections and
// returns the queue config pointing at it.
func (m *Manager) RunRabbitMQResource(t *testing.T) *config.QueueConfig {
	resource := m.run(t, "rabbitmq", &dockertest.RunOptions{
		Repository: m.cfg.RabbitMQRepository,
		Tag:        m.cfg.RabbitMQVersion,
		Env: []string{
			"RABBITMQ_DEFAULT_USER=" + rabbitUser,
			"RABBITMQ_DEFAULT_PASS=" + rabbitPassword,
		},
	})

	url := fmt.Sprintf("amqp://localhost:%s/", resource.GetPort("5672/tcp"))
	err := m.pool.Retry(func() error {
		conn, err := amqp.DialConfig(url, amqp.Config{
			SASL: []amqp.Authentication{&amqp.PlainAuth{Username: rabbitUser, Password: rabbitPassword}},
		})
		if err != nil {
			return err
		}
		return conn.Close()
	})
	require.NoError(t, err)

	return &config.QueueConfig{
		Url:           url,
		User:          rabbitUser,
		Password:      rabbitPassword,
		Exchange:      "gelato.staking.events.e2e",
		MaxRetryTimes: 3,
		RetryInterval: 200 * time.Millisecond,
	}
}

// ClearResources removes all outstanding docker resources created by the Manager.
func (m *Manager) ClearResources() error {
	for _, resource := range m.resources {
		if err := m.pool.Purge(resource); err != nil {
			return err
		}
	}
	return nil
}
