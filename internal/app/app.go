package app

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/knowledge-backend/internal/data/txrunner"
	kbdb "github.com/yungbote/knowledge-backend/internal/db"
	kbhttp "github.com/yungbote/knowledge-backend/internal/http"
	"github.com/yungbote/knowledge-backend/internal/observability"
	"github.com/yungbote/knowledge-backend/internal/platform/logger"
	"github.com/yungbote/knowledge-backend/internal/usecases/usecase"
)

type App struct {
	Log      *logger.Logger
	Cfg      *Config
	DB       *kbdb.Service
	Repos    Repos
	UseCases UseCases
	Server   *kbhttp.Server
	Metrics  *observability.Metrics
	Tracing  *observability.Tracing
}

// Options overrides pieces of the wiring; zero values use the defaults.
type Options struct {
	Log     *logger.Logger
	Version string
}

// New wires the whole process: logger, pool, repositories, use cases and the
// HTTP server. The schema is migrated when cfg.Database.AutoMigrate is set.
func New(ctx context.Context, cfg *Config, opts Options) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := opts.Log
	if log == nil {
		l, err := logger.New(cfg.Env)
		if err != nil {
			return nil, fmt.Errorf("init logger: %w", err)
		}
		log = l
	}

	tracing := observability.InitTracing(ctx, log, cfg.TracingConfig(opts.Version))

	svc, err := kbdb.NewService(cfg.DBConfig(), log)
	if err != nil {
		_ = tracing.Shutdown(ctx)
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}

	a := &App{
		Log:     log,
		Cfg:     cfg,
		DB:      svc,
		Tracing: tracing,
	}

	if cfg.Database.AutoMigrate {
		if err := a.Migrate(); err != nil {
			a.Close(ctx)
			return nil, err
		}
	}

	if cfg.Metrics.Enabled {
		a.Metrics = observability.NewMetrics(cfg.Metrics.Namespace)
	}

	a.Repos = wireRepos(svc.DB(), log)
	run := usecase.NewRunner(txrunner.NewGormTxRunner(svc.DB()), a.Metrics, tracing)
	a.UseCases = wireUseCases(a.Repos, run, log)
	a.Server = wireServer(cfg, log, wireHandlers(log, a.UseCases, svc), a.Metrics, tracing)
	return a, nil
}

func (a *App) Migrate() error {
	a.Log.Info("Running schema migration...", "driver", a.DB.Driver())
	if err := a.DB.AutoMigrateAll(); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}

// Run serves HTTP until ctx is cancelled or the server fails.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.Log.Info("HTTP server listening", "addr", a.Server.Addr())
		return a.Server.Run(gctx)
	})
	if a.Metrics != nil {
		g.Go(func() error {
			return a.Metrics.RunDBCollector(gctx, a.Log, a.DB.DB(), a.Cfg.Metrics.ScrapeInterval.Duration)
		})
	}
	return g.Wait()
}

func (a *App) Close(ctx context.Context) {
	if a == nil {
		return
	}
	if a.Tracing != nil {
		if ctx == nil || ctx.Err() != nil {
			ctx = context.Background()
		}
		sctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := a.Tracing.Shutdown(sctx); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
		cancel()
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			a.Log.Warn("database close failed", "error", err)
		}
	}
	a.Log.Sync()
}
