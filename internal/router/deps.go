package router

import (
	"context"
	"fmt"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/clubhousefc/backend/internal/events"
	"github.com/clubhousefc/backend/internal/handlers"
	"github.com/clubhousefc/backend/internal/middleware"
	"github.com/clubhousefc/backend/internal/repositories"
	"github.com/clubhousefc/backend/internal/repositories/memory"
	"github.com/clubhousefc/backend/internal/session"
	"github.com/clubhousefc/backend/pkg/config"
	"github.com/clubhousefc/backend/pkg/storage"
	"github.com/labstack/echo/v4"
)

// Build assembles Deps from configuration and open connections. The returned
// function releases what Build opened; connections in db are left to the caller.
func Build(ctx context.Context, cfg *config.Config, db *config.DB, fb *auth.Client, logger echo.Logger) (Deps, func(), error) {
	d := Deps{
		Tokens: session.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL),
		Logger: logger,
		Events: events.Noop{},
		Health: map[string]handlers.HealthCheck{},
	}
	cleanup := func() {}

	if db.Postgres != nil {
		if cfg.AutoMigrate {
			if err := Migrate(db.Postgres); err != nil {
				return d, cleanup, fmt.Errorf("auto migrate: %w", err)
			}
		}
		d.Store = repositories.NewPostgresStore(db.Postgres)
		d.Health["postgres"] = func(ctx context.Context) error {
			sqlDB, err := db.Postgres.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}
	} else {
		logger.Warn("DB_DRIVER=memory, data will not survive a restart")
		d.Store = memory.NewStore()
	}

	images, err := buildStorage(ctx, cfg, db)
	if err != nil {
		return d, cleanup, err
	}
	d.Images = images

	if db.Mongo != nil {
		d.Health["mongo"] = func(ctx context.Context) error { return db.Mongo.Ping(ctx, nil) }
	}

	if db.Redis != nil {
		d.Limiter = middleware.NewLimiter(db.Redis, cfg.RateLimitPerMinute, time.Minute)
		d.Health["redis"] = func(ctx context.Context) error { return db.Redis.Ping(ctx).Err() }
	}

	if cfg.KafkaBrokers != "" {
		pub := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaNotificationsTopic, logger)
		d.Events = pub
		cleanup = func() {
			if err := pub.Close(); err != nil {
				logger.Errorf("closing kafka writer: %v", err)
			}
		}
	}

	// Leave the interface nil rather than wrapping a nil *auth.Client
	if fb != nil {
		d.Firebase = fb
	}

	return d, cleanup, nil
}

func buildStorage(ctx context.Context, cfg *config.Config, db *config.DB) (storage.Backend, error) {
	switch {
	case cfg.StorageDriver == "minio":
		s, err := storage.NewMinIO(storage.MinIOConfig{
			Endpoint:  cfg.MinIOEndpoint,
			AccessKey: cfg.MinIOAccessKey,
			SecretKey: cfg.MinIOSecretKey,
			UseSSL:    cfg.MinIOUseSSL,
			Bucket:    cfg.MinIOBucket,
			BaseURL:   cfg.MediaBaseURL(),
		})
		if err != nil {
			return nil, fmt.Errorf("minio: %w", err)
		}
		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := s.EnsureBucket(ctx); err != nil {
			return nil, fmt.Errorf("minio bucket %s: %w", cfg.MinIOBucket, err)
		}
		return s, nil
	case db.Mongo != nil:
		return storage.NewGridFS(db.Mongo.Database(cfg.MongoDatabase), cfg.MediaBaseURL())
	default:
		return storage.NewMemory(cfg.MediaBaseURL()), nil
	}
}
