package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gelato-nft/gelato-staker/internal/api"
	"github.com/gelato-nft/gelato-staker/internal/config"
	"github.com/gelato-nft/gelato-staker/internal/db"
	dbmodel "github.com/gelato-nft/gelato-staker/internal/db/model"
	"github.com/gelato-nft/gelato-staker/internal/observability/metrics"
	"github.com/gelato-nft/gelato-staker/internal/observability/tracing"
	"github.com/gelato-nft/gelato-staker/internal/queue"
	"github.com/gelato-nft/gelato-staker/internal/services"
	"github.com/gelato-nft/gelato-staker/internal/utils"
)

const shutdownTimeout = 10 * time.Second

func StartServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start-server",
		Short: "Starts the gelato staker api server",
		Args:  cobra.ExactArgs(0),
		RunE:  startServer,
	}

	return cmd
}

func startServer(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctx = tracing.InjectTraceID(ctx)
	log := log.Ctx(ctx)

	// load config
	cfgPath := GetConfigPath()
	cfg, err := config.New(cfgPath)
	if err != nil {
		return fmt.Errorf("error while loading config file %s: %w", cfgPath, err)
	}

	err = dbmodel.Setup(ctx, &cfg.Db)
	if err != nil {
		return fmt.Errorf("error while setting up db model: %w", err)
	}

	var dbClient db.DbInterface
	dbClient, err = db.New(ctx, cfg.Db)
	if err != nil {
		return fmt.Errorf("error while creating db client: %w", err)
	}
	dbClient = db.NewDbWithMetrics(dbClient)

	zapLogger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("error while creating zap logger: %w", err)
	}
	defer func() {
		// syncing stderr fails on some platforms, nothing to recover
		_ = zapLogger.Sync()
	}()

	var publisher queue.EventPublisher = queue.NoopPublisher{}
	if cfg.Queue.Enabled() {
		publisher, err = queue.NewQueueManager(&cfg.Queue, zapLogger)
		if err != nil {
			return fmt.Errorf("failed to initialize event publisher: %w", err)
		}
	} else {
		log.Warn().Msg("Queue is not configured, events are not published")
	}
	defer publisher.Shutdown()

	var clock utils.Clock = utils.SystemClock{}
	if cfg.Server.DevClock {
		log.Warn().Msg("Dev clock enabled, time can be moved forward over the api")
		clock = utils.NewOffsetClock(clock)
	}

	service := services.NewService(cfg, dbClient, publisher, clock)
	if err := service.Bootstrap(ctx); err != nil {
		return fmt.Errorf("error while bootstrapping service: %w", err)
	}

	// initialize metrics with the metrics port from config
	metricsPort := cfg.Metrics.GetMetricsPort()
	metrics.Init(metricsPort)

	missionPoller := service.StartMissionPoller(ctx)
	defer missionPoller.Stop()

	server := api.New(service)
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error while shutting down api server: %w", err)
	}
	return nil
}
