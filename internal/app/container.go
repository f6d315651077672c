package app

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"campus-jobs/internal/config"
	"campus-jobs/internal/database"
	"campus-jobs/internal/database/migration"
	dbpostgres "campus-jobs/internal/database/postgres"
	"campus-jobs/internal/domain/application"
	"campus-jobs/internal/domain/experience"
	"campus-jobs/internal/domain/meeting"
	"campus-jobs/internal/domain/posting"
	"campus-jobs/internal/domain/review"
	"campus-jobs/internal/domain/tracker"
	"campus-jobs/internal/domain/user"
	"campus-jobs/internal/events"
	"campus-jobs/internal/infrastructure/cache"
	"campus-jobs/internal/repository"
	"campus-jobs/internal/repository/memory"
	"campus-jobs/migrations"
)

type Repositories struct {
	Users        user.Repository
	Reviews      review.Repository
	Postings     posting.Repository
	Applications application.Repository
	Experiences  experience.Repository
	Meetings     meeting.Repository
	Tracker      tracker.Repository
}

func PostgresRepositories(db database.DB) Repositories {
	return Repositories{
		Users:        repository.NewPostgresUserRepository(db),
		Reviews:      repository.NewPostgresReviewRepository(db),
		Postings:     repository.NewPostgresPostingRepository(db),
		Applications: repository.NewPostgresApplicationRepository(db),
		Experiences:  repository.NewPostgresExperienceRepository(db),
		Meetings:     repository.NewPostgresMeetingRepository(db),
		Tracker:      repository.NewPostgresTrackerRepository(db),
	}
}

func MemoryRepositories(s *memory.Store) Repositories {
	return Repositories{
		Users:        s.Users(),
		Reviews:      s.Reviews(),
		Postings:     s.Postings(),
		Applications: s.Applications(),
		Experiences:  s.Experiences(),
		Meetings:     s.Meetings(),
		Tracker:      s.Tracker(),
	}
}

// Container owns every long-lived connection the server uses.
type Container struct {
	Config config.Config
	Logger *zap.Logger

	// DB is nil when running on the in-memory store.
	DB     database.DB
	Repos  Repositories
	Redis  *cache.Redis
	Local  *cache.Local
	Events events.Publisher
}

func NewContainer(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Container{Config: cfg, Logger: logger}

	if cfg.Database.Configured() {
		connCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		db, err := dbpostgres.Connect(connCtx, cfg.Database, cfg.App.AppName, logger)
		cancel()
		if err != nil {
			return nil, err
		}
		c.DB = db

		migCtx, migCancel := context.WithTimeout(ctx, 2*time.Minute)
		err = migration.Runner{FS: migrations.FS, Logger: logger}.Run(migCtx, db.SQLDB())
		migCancel()
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		c.Repos = PostgresRepositories(db)
	} else {
		logger.Warn("database not configured, using in-memory store")
		c.Repos = MemoryRepositories(memory.New())
	}

	c.Redis = cache.NewRedis(cfg.Redis, logger)

	local, err := cache.NewLocal(ctx, cfg.Feed.LocalCacheTTL)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	c.Local = local

	c.Events = events.Noop{}
	if cfg.NATS.URL != "" {
		pub, err := events.NewNATSPublisher(cfg.NATS.URL, cfg.NATS.ConnTimeout, logger)
		if err != nil {
			logger.Warn("nats unavailable, events disabled", zap.Error(err))
		} else {
			c.Events = pub
		}
	}

	return c, nil
}

// Checks lists the dependencies /health reports on.
func (c *Container) Checks() map[string]func(context.Context) error {
	checks := map[string]func(context.Context) error{}
	if c.DB != nil {
		checks["database"] = c.DB.Ping
	}
	if c.Redis.Available() {
		checks["redis"] = c.Redis.Ping
	}
	return checks
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errList []error
	if c.Events != nil {
		c.Events.Close()
	}
	if c.Local != nil {
		errList = append(errList, c.Local.Close())
	}
	if c.Redis != nil {
		errList = append(errList, c.Redis.Close())
	}
	if c.DB != nil {
		errList = append(errList, c.DB.Close())
	}
	return errors.Join(errList...)
}
