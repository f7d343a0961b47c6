// Package app assembles the services, handlers and router from a config and
// a record store. cmd/server owns process lifecycle; tests build the same
// graph against an in-memory store.
package app

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	ackhandler "frontier/internal/acknowledgment/handler"
	ackservice "frontier/internal/acknowledgment/service"
	ackstore "frontier/internal/acknowledgment/store"
	"frontier/internal/advisory"
	advisoryhandler "frontier/internal/advisory/handler"
	compliancehandler "frontier/internal/compliance/handler"
	compliancemetrics "frontier/internal/compliance/metrics"
	compliancemodels "frontier/internal/compliance/models"
	complianceservice "frontier/internal/compliance/service"
	compliancestore "frontier/internal/compliance/store"
	hazardhandler "frontier/internal/hazard/handler"
	hazardmetrics "frontier/internal/hazard/metrics"
	hazardservice "frontier/internal/hazard/service"
	hazardstore "frontier/internal/hazard/store"
	"frontier/internal/platform/authtoken"
	"frontier/internal/platform/config"
	"frontier/internal/platform/metrics"
	ratelimitmetrics "frontier/internal/ratelimit/metrics"
	ratelimitmw "frontier/internal/ratelimit/middleware"
	ratelimitmodels "frontier/internal/ratelimit/models"
	"frontier/internal/ratelimit/store/bucket"
	"frontier/internal/storage"
	httptransport "frontier/internal/transport/http"
	userhandler "frontier/internal/user/handler"
	userservice "frontier/internal/user/service"
	userstore "frontier/internal/user/store"
	"frontier/internal/user/watcher"
	"frontier/pkg/platform/audit/publisher"
	auditrecords "frontier/pkg/platform/audit/store/records"
	"frontier/pkg/platform/tx"
)

// Metrics groups the per-module collectors. Any field may be nil.
type Metrics struct {
	Platform   *metrics.Metrics
	Hazard     *hazardmetrics.Metrics
	Compliance *compliancemetrics.Metrics
	RateLimit  *ratelimitmetrics.Metrics
}

// NewMetrics registers every collector with the default registry. Call once
// per process.
func NewMetrics() Metrics {
	return Metrics{
		Platform:   metrics.New(),
		Hazard:     hazardmetrics.New(),
		Compliance: compliancemetrics.New(),
		RateLimit:  ratelimitmetrics.New(),
	}
}

type Option func(*options)

type options struct {
	metrics     Metrics
	analyzer    advisory.Analyzer
	auditBuffer int
	redisClient *redis.Client
}

func WithMetrics(m Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithAnalyzer replaces the OpenAI-backed advisory gateway.
func WithAnalyzer(a advisory.Analyzer) Option {
	return func(o *options) {
		o.analyzer = a
	}
}

// WithAuditBuffer makes audit writes asynchronous with a buffer of n events.
func WithAuditBuffer(n int) Option {
	return func(o *options) {
		o.auditBuffer = n
	}
}

// WithRedis shares rate limit windows across replicas through client.
// Without it each process limits on its own.
func WithRedis(client *redis.Client) Option {
	return func(o *options) {
		o.redisClient = client
	}
}

// App is the wired engine.
type App struct {
	Router      http.Handler
	Tokens      *authtoken.Service
	Users       *userservice.Service
	Hazards     *hazardservice.Service
	Inspections *compliancestore.Inspections
	Audit       *publisher.Publisher

	broker      *watcher.Broker
	coordinator *watcher.Coordinator
}

// New wires every module onto records.
func New(cfg *config.Config, records storage.Store, logger *slog.Logger, opts ...Option) *App {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	pubOpts := []publisher.Option{publisher.WithLogger(logger)}
	if o.auditBuffer > 0 {
		pubOpts = append(pubOpts, publisher.WithAsyncBuffer(o.auditBuffer))
	}
	auditPublisher := publisher.NewPublisher(auditrecords.New(records), pubOpts...)

	users := userstore.New(records)
	userSvc := userservice.New(users,
		userservice.WithLogger(logger),
		userservice.WithAuditPublisher(auditPublisher),
		userservice.WithMetrics(o.metrics.Platform),
	)

	hazards := hazardstore.New(records)
	hazardSvc := hazardservice.New(hazards, userSvc,
		hazardservice.WithLogger(logger),
		hazardservice.WithAuditPublisher(auditPublisher),
		hazardservice.WithMetrics(o.metrics.Hazard),
		hazardservice.WithLocks(tx.NewSharded(cfg.Server.RequestTimeout)),
	)

	acks := ackstore.New(records)
	ackSvc := ackservice.New(acks,
		ackservice.WithLogger(logger),
		ackservice.WithAuditPublisher(auditPublisher),
	)

	inspections := compliancestore.NewInspections(records)
	complianceSvc := complianceservice.New(hazards, acks, users, inspections,
		complianceservice.WithLogger(logger),
		complianceservice.WithMetrics(o.metrics.Compliance),
		complianceservice.WithExternalInputs(compliancemodels.ExternalInputs{
			TrainingCompliance:    cfg.Dashboard.TrainingCompliance,
			DaysSinceLastIncident: cfg.Dashboard.DaysSinceIncident,
		}),
	)

	analyzer := o.analyzer
	if analyzer == nil {
		analyzer = advisory.New(cfg.Advisory, advisory.WithLogger(logger))
	}
	advisorySvc := advisory.NewService(hazardSvc, analyzer,
		advisory.WithServiceLogger(logger),
		advisory.WithAuditPublisher(auditPublisher),
	)

	broker := watcher.NewBroker(0, logger)
	coordinator := watcher.NewCoordinator(broker, userSvc,
		watcher.WithLogger(logger),
		watcher.WithMetrics(o.metrics.Platform),
	)

	tokens := authtoken.New(cfg.Auth.JWTSigningKey, cfg.Auth.Issuer, cfg.Auth.Audience)
	router := httptransport.NewRouter(httptransport.Deps{
		Logger:         logger,
		Metrics:        o.metrics.Platform,
		Validator:      tokens,
		Presence:       broker,
		Health:         records,
		RateLimit:      rateLimiter(cfg, o, logger),
		RequestTimeout: cfg.Server.RequestTimeout,
		Handlers: []httptransport.Registrar{
			hazardhandler.New(hazardSvc, logger),
			advisoryhandler.New(advisorySvc, logger),
			ackhandler.New(ackSvc, logger),
			compliancehandler.New(complianceSvc, logger),
			userhandler.New(userSvc, broker, logger),
		},
	})

	return &App{
		Router:      router,
		Tokens:      tokens,
		Users:       userSvc,
		Hazards:     hazardSvc,
		Inspections: inspections,
		Audit:       auditPublisher,
		broker:      broker,
		coordinator: coordinator,
	}
}

func rateLimiter(cfg *config.Config, o options, logger *slog.Logger) func(http.Handler) http.Handler {
	if !cfg.RateLimit.Enabled {
		return nil
	}
	var store ratelimitmw.BucketStore = bucket.NewInMemoryBucketStore()
	if o.redisClient != nil {
		store = bucket.NewRedisBucketStore(o.redisClient, cfg.Redis.KeyPrefix)
	}
	limits := map[ratelimitmodels.Class]ratelimitmodels.Limit{
		ratelimitmodels.ClassRead:  {Requests: cfg.RateLimit.ReadPerMinute, Window: time.Minute},
		ratelimitmodels.ClassWrite: {Requests: cfg.RateLimit.WritePerMinute, Window: time.Minute},
	}
	return ratelimitmw.New(store, limits, logger, ratelimitmw.WithMetrics(o.metrics.RateLimit)).Handler
}

// Run consumes presence events until ctx is done. The coordinator's
// subscription is released when Run returns.
func (a *App) Run(ctx context.Context) error {
	return a.coordinator.Run(ctx)
}

// Close ends presence delivery and flushes buffered audit events.
func (a *App) Close() error {
	a.broker.Close()
	return a.Audit.Close()
}
