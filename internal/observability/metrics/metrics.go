package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

type Outcome string

const (
	Success                  Outcome       = "success"
	Error                    Outcome       = "error"
	MetricRequestTimeout     time.Duration = 5 * time.Second
	MetricRequestIdleTimeout time.Duration = 10 * time.Second
)

func (O Outcome) String() string {
	return string(O)
}

func outcome(failure bool) Outcome {
	if failure {
		return Error
	}
	return Success
}

var defaultHistogramBucketsSeconds = []float64{0.001, 0.01, 0.1, 0.5, 1, 2.5, 5, 10, 30}

// Collectors are created eagerly so recording is safe before Init is called
// (tests, one-shot cli commands); Init only registers and serves them.
var (
	once sync.Once

	operationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "staker_operation_duration_seconds",
			Help:    "Histogram of staker operation durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"operation", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of incoming http request durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"method", "route", "status"},
	)

	pollerDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "poller_duration_seconds",
			Help:    "Histogram of poller durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"type", "status"},
	)

	dbLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "db_latency_seconds",
			Help: "DB latency in seconds splitted by method and execution status",
		},
		[]string{"method", "status"},
	)

	// add a counter for the number of errors from the fail to push message into queue
	queueSendErrorCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "queue_send_error_count",
			Help: "The total number of errors when sending messages to the queue",
		},
	)

	stakedAssetsGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "staked_assets_count",
			Help: "Number of assets currently held in staking custody",
		},
	)

	currentMissionEndGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "current_mission_end_timestamp",
			Help: "Unix timestamp at which the current mission ends",
		},
	)

	rewardsClaimedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rewards_claimed_tokens_total",
			Help: "Whole reward tokens transferred out by claims",
		},
	)
)

// Init initializes the metrics package.
func Init(metricsPort int) {
	once.Do(func() {
		registerMetrics()
		initMetricsRouter(metricsPort)
	})
}

// initMetricsRouter initializes the metrics router.
func initMetricsRouter(metricsPort int) {
	metricsRouter := chi.NewRouter()
	metricsRouter.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})
	// Create a custom server with timeout settings
	metricsAddr := fmt.Sprintf(":%d", metricsPort)
	server := &http.Server{
		Addr:         metricsAddr,
		Handler:      metricsRouter,
		ReadTimeout:  MetricRequestTimeout,
		WriteTimeout: MetricRequestTimeout,
		IdleTimeout:  MetricRequestIdleTimeout,
	}

	// Start the server in a separate goroutine
	go func() {
		log.Printf("Starting metrics server on %s", metricsAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msgf("Error starting metrics server on %s", metricsAddr)
		}
	}()
}

// registerMetrics registers the Prometheus metrics.
func registerMetrics() {
	prometheus.MustRegister(
		operationDuration,
		httpRequestDuration,
		pollerDurationHistogram,
		dbLatency,
		queueSendErrorCounter,
		stakedAssetsGauge,
		currentMissionEndGauge,
		rewardsClaimedCounter,
	)
}

func RecordOperationDuration(d time.Duration, operation string, failure bool) {
	operationDuration.WithLabelValues(operation, outcome(failure).String()).Observe(d.Seconds())
}

func RecordHttpRequestDuration(d time.Duration, method, route string, statusCode int) {
	httpRequestDuration.WithLabelValues(method, route, strconv.Itoa(statusCode)).Observe(d.Seconds())
}

func RecordDbLatency(d time.Duration, method string, failure bool) {
	dbLatency.WithLabelValues(method, outcome(failure).String()).Observe(d.Seconds())
}

func RecordQueueSendError() {
	queueSendErrorCounter.Inc()
}

func RecordStakedAssetsCount(count int) {
	stakedAssetsGauge.Set(float64(count))
}

func RecordCurrentMissionEnd(endTime int64) {
	currentMissionEndGauge.Set(float64(endTime))
}

func RecordRewardsClaimed(wholeTokens float64) {
	rewardsClaimedCounter.Add(wholeTokens)
}
