package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/arinherbz/chat-interferes-sub000/internal/application/usecase"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/port"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/valueobject"
	"github.com/arinherbz/chat-interferes-sub000/internal/infrastructure/catalog"
	"github.com/arinherbz/chat-interferes-sub000/internal/infrastructure/config"
	infrakafka "github.com/arinherbz/chat-interferes-sub000/internal/infrastructure/kafka"
	"github.com/arinherbz/chat-interferes-sub000/internal/infrastructure/memory"
	"github.com/arinherbz/chat-interferes-sub000/internal/infrastructure/postgres"
	infraredis "github.com/arinherbz/chat-interferes-sub000/internal/infrastructure/redis"
	"github.com/arinherbz/chat-interferes-sub000/internal/presentation/rest"
	pkgkafka "github.com/arinherbz/chat-interferes-sub000/pkg/kafka"
	pkgpostgres "github.com/arinherbz/chat-interferes-sub000/pkg/postgres"
)

// storage is the persistence wiring chosen by STORAGE_DRIVER.
type storage struct {
	assessments port.AssessmentRepository
	auditLog    port.AuditLogRepository
	blocklist   port.BlocklistRepository
	reference   usecase.ReferenceData
	checks      map[string]rest.Pinger
	closers     []func()
}

func (s *storage) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

// loadCatalog reads CATALOG_FILE, or the embedded default, and applies the
// configured shared thresholds.
func loadCatalog(cfg config.EngineConfig) (*catalog.Catalog, error) {
	var (
		cat *catalog.Catalog
		err error
	)
	if cfg.CatalogFile != "" {
		cat, err = catalog.Load(cfg.CatalogFile)
	} else {
		cat, err = catalog.Default()
	}
	if err != nil {
		return nil, err
	}

	rule, err := valueobject.NewScoringRule(cfg.AcceptMinScore, cfg.RejectMaxScore)
	if err != nil {
		return nil, fmt.Errorf("invalid scoring thresholds: %w", err)
	}
	return cat.WithDefaultRule(rule), nil
}

func openStorage(ctx context.Context, cfg config.Config, cat *catalog.Catalog, logger *slog.Logger) (*storage, error) {
	st := &storage{checks: map[string]rest.Pinger{}}

	switch cfg.Storage.Driver {
	case config.StorageMemory:
		store := memory.NewStore()
		st.assessments, st.auditLog, st.blocklist = store, store, store
		st.reference = usecase.ReferenceData{BaseValues: cat, Questions: cat, Rules: cat}
		logger.Warn("using in-memory storage, data is lost on restart")

	default:
		pool, err := pkgpostgres.NewPool(ctx, pkgpostgres.Config{
			URL:      cfg.Storage.DatabaseURL,
			MaxConns: cfg.Storage.MaxConns,
			MinConns: cfg.Storage.MinConns,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		st.closers = append(st.closers, pool.Close)
		logger.Info("connected to database")

		if cfg.Storage.MigrateOnStart {
			if err := pkgpostgres.RunMigrations(cfg.Storage.DatabaseURL, postgres.Migrations, postgres.MigrationsDir); err != nil {
				st.close()
				return nil, fmt.Errorf("failed to run migrations: %w", err)
			}
			logger.Info("database migrations applied")
		}
		if err := postgres.SeedReferenceData(ctx, pool, cat); err != nil {
			st.close()
			return nil, err
		}

		st.assessments = postgres.NewAssessmentRepository(pool)
		st.auditLog = postgres.NewAuditLogRepository(pool)
		st.blocklist = postgres.NewBlocklistRepository(pool)
		st.reference = usecase.ReferenceData{
			BaseValues: postgres.NewBaseValueRepository(pool),
			Questions:  postgres.NewQuestionRepository(pool),
			Rules:      postgres.NewScoringRuleRepository(pool, cat.DefaultRule()),
		}
		st.checks["postgres"] = func(ctx context.Context) error { return pkgpostgres.HealthCheck(ctx, pool) }
	}

	if cfg.Redis.URL != "" {
		client, err := infraredis.NewClient(ctx, cfg.Redis.URL)
		if err != nil {
			st.close()
			return nil, err
		}
		st.closers = append(st.closers, func() { _ = client.Close() })

		cache := infraredis.NewBaseValueCache(client, st.reference.BaseValues, cfg.Redis.BaseValueTTL, logger)
		// Seeding may have changed prices since the entries were cached.
		if err := cache.Invalidate(ctx); err != nil {
			logger.Warn("failed to invalidate base value cache", "error", err)
		}
		st.reference.BaseValues = cache
		st.checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		logger.Info("base value cache enabled", "ttl", cfg.Redis.BaseValueTTL)
	}

	return st, nil
}

func kafkaConfig(cfg config.KafkaConfig) pkgkafka.Config {
	return pkgkafka.Config{
		ClientID:      cfg.ClientID,
		ConsumerGroup: cfg.ConsumerGroup,
		SASLMechanism: cfg.SASLMechanism,
		SASLUsername:  cfg.SASLUsername,
		SASLPassword:  cfg.SASLPassword,
		Brokers:       cfg.Brokers,
		TLS:           cfg.TLS,
		SASLEnabled:   cfg.SASLMechanism != "",
	}
}

// newPublisher returns the Kafka publisher, or a logging one when no broker
// is configured. The returned func releases the producer.
func newPublisher(cfg config.KafkaConfig, logger *slog.Logger) (port.EventPublisher, func(), error) {
	if !cfg.Enabled() {
		logger.Warn("KAFKA_BROKERS not set, domain events are logged only")
		return infrakafka.NewPublisher(infrakafka.NewLogWriter(logger), cfg.Topic, logger), func() {}, nil
	}

	producer, err := pkgkafka.NewProducer(kafkaConfig(cfg))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}
	release := func() {
		if err := producer.Close(); err != nil {
			logger.Error("failed to close kafka producer", "error", err)
		}
	}
	return infrakafka.NewPublisher(producer, cfg.Topic, logger), release, nil
}
