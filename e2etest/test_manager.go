package e2etest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gelato-nft/gelato-staker/e2etest/container"
	"github.com/gelato-nft/gelato-staker/internal/api"
	"github.com/gelato-nft/gelato-staker/internal/config"
	"github.com/gelato-nft/gelato-staker/internal/db"
	"github.com/gelato-nft/gelato-staker/internal/db/model"
	"github.com/gelato-nft/gelato-staker/internal/queue"
	"github.com/gelato-nft/gelato-staker/internal/services"
	"github.com/gelato-nft/gelato-staker/internal/types"
	"github.com/gelato-nft/gelato-staker/internal/utils"
	"github.com/gelato-nft/gelato-staker/internal/utils/poller"
)

var (
	eventuallyWaitTimeOut = 20 * time.Second
	eventuallyPollTime    = 500 * time.Millisecond
)

// TestManager runs the service against real MongoDB and RabbitMQ containers
// and talks to it over http, the way a client of a deployment would.
type TestManager struct {
	Config   *config.Config
	Clock    *utils.OffsetClock
	DbClient *db.Database
	Server   *httptest.Server

	poller    *poller.Poller
	manager   *container.Manager
	publisher *queue.QueueManager
	consumer  *amqp.Connection
	events    <-chan amqp.Delivery
}

func StartManager(t *testing.T) *TestManager {
	manager, err := container.NewManager(t)
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Db = *manager.RunMongoResource(t)
	cfg.Queue = *manager.RunRabbitMQResource(t)
	cfg.Server.DevClock = true
	cfg.Poller.MissionCheckInterval = eventuallyPollTime

	ctx := t.Context()
	require.NoError(t, model.Setup(ctx, &cfg.Db))
	dbClient, err := db.New(ctx, cfg.Db)
	require.NoError(t, err)

	publisher, err := queue.NewQueueManager(&cfg.Queue, zap.NewNop())
	require.NoError(t, err)

	tm := &TestManager{
		Config:    cfg,
		Clock:     utils.NewOffsetClock(utils.NewFixedClock(time.Unix(1_700_000_000, 0))),
		DbClient:  dbClient,
		manager:   manager,
		publisher: publisher,
	}
	tm.subscribe(t)
	tm.startServer(t)
	return tm
}

// subscribe binds an exclusive queue to the event exchange so the test sees
// every published event.
func (tm *TestManager) subscribe(t *testing.T) {
	cfg := tm.Config.Queue
	conn, err := amqp.DialConfig(cfg.Url, amqp.Config{
		SASL: []amqp.Authentication{&amqp.PlainAuth{Username: cfg.User, Password: cfg.Password}},
	})
	require.NoError(t, err)
	ch, err := conn.Channel()
	require.NoError(t, err)

	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	require.NoError(t, err)
	require.NoError(t, ch.QueueBind(q.Name, "#", cfg.Exchange, false, nil))
	deliveries, err := ch.Consume(q.Name, "", true, true, false, false, nil)
	require.NoError(t, err)

	tm.consumer = conn
	tm.events = deliveries
}

func (tm *TestManager) startServer(t *testing.T) {
	var dbClient db.DbInterface = db.NewDbWithMetrics(tm.DbClient)
	service := services.NewService(tm.Config, dbClient, tm.publisher, tm.Clock)
	require.NoError(t, service.Bootstrap(t.Context()))

	tm.poller = service.StartMissionPoller(context.Background())
	tm.Server = httptest.NewServer(api.New(service).Handler())
}

// Restart drops the in-memory state and boots a new service from the
// database, keeping the clock.
func (tm *TestManager) Restart(t *testing.T) {
	tm.poller.Stop()
	tm.Server.Close()
	tm.startServer(t)
}

func (tm *TestManager) Stop(t *testing.T) {
	tm.poller.Stop()
	tm.Server.Close()
	tm.publisher.Shutdown()
	require.NoError(t, tm.consumer.Close())
	require.NoError(t, tm.DbClient.Close(context.Background()))
	require.NoError(t, tm.manager.ClearResources())
}

// Post sends body to path and decodes the data of the response into out. It
// returns the status code.
func (tm *TestManager) Post(t *testing.T, path string, body, out any) int {
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(tm.Server.URL+path, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	return decode(t, resp, out)
}

func (tm *TestManager) Get(t *testing.T, path string, out any) int {
	resp, err := http.Get(tm.Server.URL + path)
	require.NoError(t, err)
	return decode(t, resp, out)
}

func decode(t *testing.T, resp *http.Response, out any) int {
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK || out == nil {
		return resp.StatusCode
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))
	return resp.StatusCode
}

// WaitForEvent returns the next published event of the given type, skipping
// events of other types.
func (tm *TestManager) WaitForEvent(t *testing.T, eventType types.EventType) *types.StakingEvent {
	timeout := time.After(eventuallyWaitTimeOut)
	for {
		select {
		case d := <-tm.events:
			if d.RoutingKey != eventType.String() {
				continue
			}
			var ev types.StakingEvent
			require.NoError(t, json.Unmarshal(d.Body, &ev))
			return &ev
		case <-timeout:
			t.Fatalf("no %s event published", eventType)
			return nil
		}
	}
}
