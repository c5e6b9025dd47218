package http

import (
	"context"
	"errors"
	"fmt"

	"tasknotes/internal/adapter/cache/memory"
	"tasknotes/internal/adapter/cache/redis"
	"tasknotes/internal/adapter/database/postgres"
	pgrepository "tasknotes/internal/adapter/database/postgres/repository"
	"tasknotes/internal/adapter/database/sqlite"
	sqliterepository "tasknotes/internal/adapter/database/sqlite/repository"
	"tasknotes/internal/adapter/http/handler"
	"tasknotes/internal/adapter/http/routes"
	"tasknotes/internal/core/domain"
	"tasknotes/internal/core/port"
	"tasknotes/internal/core/service"
	"tasknotes/internal/core/telemetry"
	"tasknotes/pkg/auth"
	"tasknotes/pkg/config"
	"tasknotes/pkg/logger"

	"go.uber.org/zap"
)

type Container struct {
	Config    *config.AppConfig
	Logger    *logger.Logger
	Telemetry port.Telemetry
	Tokens    *auth.JWT
	Cache     port.CacheRepository

	UserRepo port.UserRepository
	TaskRepo port.ItemRepository[domain.Task]
	NoteRepo port.ItemRepository[domain.Note]

	AuthService port.AuthService
	TaskService port.ItemService[domain.Task, domain.TaskPatch]
	NoteService port.ItemService[domain.Note, domain.NotePatch]

	AuthHandler *handler.AuthHandler
	TaskHandler *handler.TaskHandler
	NoteHandler *handler.NoteHandler

	healthCheck func() error
	closers     []func() error
}

// NewContainer opens the configured store and cache and wires every service
// and handler on top of them. A nil probe falls back to the no-op probe.
func NewContainer(ctx context.Context, cfg *config.AppConfig, log *logger.Logger, probe port.Telemetry) (*Container, error) {
	if probe == nil {
		probe = telemetry.NewNoOpProbe()
	}

	c := &Container{
		Config:    cfg,
		Logger:    log,
		Telemetry: probe,
		Tokens:    auth.New(cfg.JWT.Secret, cfg.JWT.TTL),
	}

	if err := c.openStore(ctx); err != nil {
		return nil, err
	}

	if err := c.openCache(ctx); err != nil {
		c.Close()
		return nil, err
	}

	itemOptions := []service.ItemOption{service.WithTelemetry(probe)}
	if c.Cache != nil {
		itemOptions = append(itemOptions, service.WithCache(c.Cache, cfg.Cache.TTL))
	}

	c.AuthService = service.NewAuthService(c.UserRepo, c.Tokens, probe)
	c.TaskService = service.NewTaskService(c.TaskRepo, itemOptions...)
	c.NoteService = service.NewNoteService(c.NoteRepo, itemOptions...)

	c.AuthHandler = handler.NewAuthHandler(c.AuthService, log)
	c.TaskHandler = handler.NewTaskHandler(c.TaskService, log)
	c.NoteHandler = handler.NewNoteHandler(c.NoteService, log)

	return c, nil
}

func (c *Container) openStore(ctx context.Context) error {
	switch c.Config.Database.Driver {
	case config.DriverPostgres:
		db, err := postgres.NewDB(ctx, c.Config.Database.URL)
		if err != nil {
			return err
		}

		c.UserRepo = pgrepository.NewUserRepository(db, c.Telemetry)
		c.TaskRepo = pgrepository.NewTaskRepository(db, c.Telemetry)
		c.NoteRepo = pgrepository.NewNoteRepository(db, c.Telemetry)
		c.healthCheck = func() error { return db.Ping(context.Background()) }
		c.closers = append(c.closers, func() error { db.Close(); return nil })

	case config.DriverSQLite, "":
		db, err := sqlite.NewDB(sqlite.Options{
			Path:       c.Config.Database.Path,
			LogQueries: c.Config.Database.LogQueries,
			Tracing:    c.Config.Telemetry.Enabled,
		})
		if err != nil {
			return err
		}

		c.UserRepo = sqliterepository.NewUserRepository(db, c.Telemetry)
		c.TaskRepo = sqliterepository.NewTaskRepository(db, c.Telemetry)
		c.NoteRepo = sqliterepository.NewNoteRepository(db, c.Telemetry)
		c.healthCheck = db.Ping
		c.closers = append(c.closers, db.Close)

	default:
		return fmt.Errorf("unsupported database driver %q", c.Config.Database.Driver)
	}

	return nil
}

func (c *Container) openCache(ctx context.Context) error {
	switch c.Config.Cache.Driver {
	case config.CacheRedis:
		cache, err := redis.NewRedisRepository(ctx, redis.Options{
			Addr:       c.Config.Cache.RedisAddr,
			Password:   c.Config.Cache.RedisPassword,
			DB:         c.Config.Cache.RedisDB,
			DefaultTTL: c.Config.Cache.TTL,
		})
		if err != nil {
			return err
		}
		c.Cache = cache

	case config.CacheMemory:
		c.Cache = memory.NewMemoryRepository(c.Config.Cache.TTL)

	case config.CacheNone, "":
		return nil

	default:
		return fmt.Errorf("unsupported cache driver %q", c.Config.Cache.Driver)
	}

	c.closers = append(c.closers, c.Cache.Close)

	return nil
}

func (c *Container) Handlers() routes.HandlersConfig {
	return routes.HandlersConfig{
		AuthHandler: c.AuthHandler,
		TaskHandler: c.TaskHandler,
		NoteHandler: c.NoteHandler,
		Tokens:      c.Tokens,
		HealthCheck: c.healthCheck,
	}
}

func (c *Container) Close() error {
	var errs []error

	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 && c.Logger != nil {
		c.Logger.Warn("Failed to release resources", zap.Errors("errors", errs))
	}

	return errors.Join(errs...)
}
