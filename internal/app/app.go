package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/batch26/keepsake/internal/config"
	"github.com/batch26/keepsake/internal/db"
	"github.com/batch26/keepsake/internal/latency"
	"github.com/batch26/keepsake/internal/repository"
	"github.com/batch26/keepsake/internal/service"
	"github.com/batch26/keepsake/internal/session"
	"github.com/batch26/keepsake/internal/storage"
)

// timelineCacheTTL applies outside development, where content edits should
// show up on reload.
const timelineCacheTTL = 10 * time.Minute

type App struct {
	Cfg             *config.Config
	DB              *sqlx.DB // nil with the memory backend
	Repositories    *repository.Repositories
	Storage         storage.Storage
	Latency         latency.Policy
	SessionProvider session.Provider // nil for headless apps
	AuthService     *service.AuthService
	EmailService    *service.EmailService
	YearbookService *service.YearbookService
	WallService     *service.WallService
	VaultService    *service.VaultService
	TimelineService *service.TimelineService
	SitemapService  *service.SitemapService

	closers []func() error
}

// New wires the web application: content store, services and the session
// provider chosen by SESSION_BACKEND.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a, err := NewHeadless(ctx, cfg)
	if err != nil {
		return nil, err
	}

	err = a.initSessions(ctx)
	if err != nil {
		closeErr := a.Close()
		return nil, errors.Join(err, closeErr)
	}
	return a, nil
}

// NewHeadless wires everything but the web session provider. The CLI uses it
// and brings its own file slot.
func NewHeadless(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{Cfg: cfg}

	err := a.initContent(ctx)
	if err != nil {
		closeErr := a.Close()
		return nil, errors.Join(err, closeErr)
	}

	a.Storage, err = storage.New(cfg)
	if err != nil {
		closeErr := a.Close()
		return nil, errors.Join(fmt.Errorf("failed to initialize storage: %w", err), closeErr)
	}

	a.Latency = newLatencyPolicy(cfg)

	a.EmailService = service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.ResendAudienceID,
		cfg.AppURL,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	a.AuthService = service.NewAuthService(a.EmailService, a.Latency, cfg.SignupFailureMarker, cfg.SigninFailureEmail)
	a.YearbookService = service.NewYearbookService(a.Repositories.Students, a.Repositories.Signatures, a.Latency)
	a.WallService = service.NewWallService(a.Repositories.Messages, a.Latency)
	a.VaultService = service.NewVaultService(a.Repositories.Media, a.Storage, a.Latency, cfg.MaxUploadSize)

	ttl := timelineCacheTTL
	if cfg.IsDevelopment() {
		ttl = 0
	}
	a.TimelineService = service.NewTimelineService(os.DirFS(cfg.ContentPath), ttl)
	a.SitemapService = service.NewSitemapService(cfg.AppURL)

	return a, nil
}

func (a *App) initContent(ctx context.Context) error {
	switch a.Cfg.DataBackend {
	case config.DataBackendSQL:
		database, err := db.Init(a.Cfg.DBDriver, a.Cfg.DBConnection)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		a.DB = database
		a.closers = append(a.closers, func() error { return db.Close(database) })

		err = db.RunMigrations(ctx, database.DB, a.Cfg.DBDriver)
		if err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		a.Repositories = repository.NewSQLRepositories(database)
		err = repository.SeedIfEmpty(ctx, a.Repositories)
		if err != nil {
			return fmt.Errorf("failed to seed database: %w", err)
		}
	case config.DataBackendMemory, "":
		slog.Info("using in-memory content store", "hint", "posts and profiles are lost on restart")
		a.Repositories = repository.NewMemoryRepositories(repository.NewMemoryStore())
	default:
		return fmt.Errorf("unknown DATA_BACKEND %q", a.Cfg.DataBackend)
	}
	return nil
}

func (a *App) initSessions(ctx context.Context) error {
	secure := a.Cfg.IsProduction()

	switch a.Cfg.SessionBackend {
	case config.SessionBackendRedis:
		client := session.NewRedisClient(a.Cfg.RedisAddr, a.Cfg.RedisPassword, a.Cfg.RedisDB)
		store := session.NewRedisStore(client, a.Cfg.SessionExpiry, secure)
		a.closers = append(a.closers, store.Close)

		err := store.Ping(ctx)
		if err != nil {
			return fmt.Errorf("failed to connect to redis at %s: %w", a.Cfg.RedisAddr, err)
		}
		slog.Info("session store connected", "backend", "redis", "addr", a.Cfg.RedisAddr)
		a.SessionProvider = store
	case config.SessionBackendCookie, "":
		a.SessionProvider = session.NewCookieStore(a.Cfg.SessionSecret, a.Cfg.SessionExpiry, secure)
	default:
		return fmt.Errorf("unknown SESSION_BACKEND %q", a.Cfg.SessionBackend)
	}
	return nil
}

func newLatencyPolicy(cfg *config.Config) latency.Policy {
	switch cfg.Latency {
	case config.LatencyNone:
		return latency.None()
	case config.LatencyRandom:
		return latency.Random(cfg.LatencyMin, cfg.LatencyMax)
	default:
		return latency.Simulated()
	}
}

// Close releases the database and redis connections, newest first.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}
