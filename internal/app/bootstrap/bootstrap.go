package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	validationengine "impulse/contexts/challenge-core/validation-engine"
	validationpostgres "impulse/contexts/challenge-core/validation-engine/adapters/postgres"
	validationworkers "impulse/contexts/challenge-core/validation-engine/application/workers"
	validationports "impulse/contexts/challenge-core/validation-engine/ports"
	rewardservice "impulse/contexts/community-experience/reward-service"
	rewardpostgres "impulse/contexts/community-experience/reward-service/adapters/postgres"
	rewardports "impulse/contexts/community-experience/reward-service/ports"
	capabilityservice "impulse/contexts/identity-access/capability-service"
	capabilitymemory "impulse/contexts/identity-access/capability-service/adapters/memory"
	capabilitypostgres "impulse/contexts/identity-access/capability-service/adapters/postgres"
	"impulse/internal/platform/config"
	"impulse/internal/platform/db"
	"impulse/internal/platform/httpserver"
	"impulse/internal/platform/messaging"
	"impulse/internal/shared/events"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres       *db.Postgres
	bus            *messaging.Kafka
	outboxRelay    validationworkers.OutboxRelay
	rewards        rewardservice.Module
	pollInterval   time.Duration
	enableRelay    bool
	enableConsumer bool
	logger         *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	validationRepo := validationpostgres.NewRepository(pg.DB, logger)
	validationModule := validationengine.NewModule(validationengine.Dependencies{
		Challenges:  validationRepo,
		Reports:     validationRepo,
		Roles:       validationRepo,
		Outbox:      validationRepo,
		Clock:       validationpostgres.SystemClock{},
		IDGen:       validationpostgres.UUIDGenerator{},
		MaxAttempts: cfg.VoteMaxAttempts,
		Logger:      logger,
	})

	capabilityRepo := capabilitypostgres.NewRepository(pg.DB, logger)
	capabilityCache := capabilitymemory.NewStore()
	capabilityModule := capabilityservice.NewModule(capabilityservice.Dependencies{
		Challenges: capabilityRepo,
		Roles:      capabilityRepo,
		Cache:      capabilityCache,
		Clock:      capabilitypostgres.SystemClock{},
		CacheTTL:   cfg.PermissionCacheTTL,
		Logger:     logger,
	})

	rewardRepo := rewardpostgres.NewRepository(pg.DB, logger)
	rewardModule := rewardservice.NewModule(rewardservice.Dependencies{
		Repo:   rewardRepo,
		Clock:  rewardpostgres.SystemClock{},
		IDGen:  rewardpostgres.UUIDGenerator{},
		Logger: logger,
	})

	server := httpserver.New(validationModule, capabilityModule, rewardModule, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	kafka, err := messaging.NewKafka(cfg.KafkaBrokers, logger)
	if err != nil {
		return nil, err
	}

	validationRepo := validationpostgres.NewRepository(pg.DB, logger)
	rewardRepo := rewardpostgres.NewRepository(pg.DB, logger)
	rewardModule := rewardservice.NewModule(rewardservice.Dependencies{
		Repo:   rewardRepo,
		Clock:  rewardpostgres.SystemClock{},
		IDGen:  rewardpostgres.UUIDGenerator{},
		Logger: logger,
	})

	return &WorkerApp{
		postgres: pg,
		bus:      kafka,
		outboxRelay: validationworkers.OutboxRelay{
			Outbox:    validationRepo,
			Publisher: busPublisher{bus: kafka},
			Clock:     validationpostgres.SystemClock{},
			BatchSize: cfg.OutboxBatchSize,
			Logger:    logger,
		},
		rewards:        rewardModule,
		pollInterval:   cfg.OutboxPollInterval,
		enableRelay:    cfg.EnableOutboxRelay,
		enableConsumer: cfg.EnableRewardConsumer,
		logger:         logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	if w.enableConsumer {
		consumer := w.rewards.Consumer
		err := w.bus.Subscribe(ctx, "reward.granted", "reward-service-cg",
			func(ctx context.Context, event events.Envelope) error {
				return consumer.Handle(ctx, rewardEnvelope(event))
			})
		if err != nil {
			return err
		}
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	for {
		if w.enableRelay {
			if err := w.outboxRelay.RunOnce(ctx); err != nil {
				return err
			}
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

// busPublisher bridges the validation-engine publisher port onto the shared
// bus envelope. Contexts declare their own envelope types so they never
// import platform packages; the fields map one to one.
type busPublisher struct {
	bus *messaging.Kafka
}

func (p busPublisher) Publish(ctx context.Context, topic string, event validationports.EventEnvelope) error {
	return p.bus.Publish(ctx, topic, events.Envelope{
		EventID:          event.EventID,
		EventType:        event.EventType,
		OccurredAt:       event.OccurredAt,
		SourceService:    event.SourceService,
		TraceID:          event.TraceID,
		SchemaVersion:    event.SchemaVersion,
		PartitionKeyPath: event.PartitionKeyPath,
		PartitionKey:     event.PartitionKey,
		Data:             event.Data,
	})
}

func rewardEnvelope(event events.Envelope) rewardports.EventEnvelope {
	return rewardports.EventEnvelope{
		EventID:       event.EventID,
		EventType:     event.EventType,
		OccurredAt:    event.OccurredAt,
		SourceService: event.SourceService,
		SchemaVersion: event.SchemaVersion,
		PartitionKey:  event.PartitionKey,
		Data:          event.Data,
	}
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
