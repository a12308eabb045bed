// Package server assembles the radicación backend from its configuration:
// repositories, object storage, the expiry machinery and the gRPC endpoint,
// and runs them until shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/dmitrijs2005/radicacion/internal/logging"
	"github.com/dmitrijs2005/radicacion/internal/server/config"
	"github.com/dmitrijs2005/radicacion/internal/server/jobs"
	"github.com/dmitrijs2005/radicacion/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/radicacion/internal/server/services"
	"github.com/dmitrijs2005/radicacion/internal/server/storage"

	gs "github.com/dmitrijs2005/radicacion/internal/server/grpc"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	repomanager repomanager.RepositoryManager
	store       storage.ObjectStore
	queue       *asynq.Client
	submissions *services.SubmissionService
}

func newLogger(level string) logging.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})))
}

func newRepositoryManager(ctx context.Context, c *config.Config) (repomanager.RepositoryManager, error) {
	if c.DatabaseDSN == "" {
		return repomanager.NewInMemoryRepositoryManager(), nil
	}
	m, err := repomanager.OpenPostgres(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	if err := m.RunMigrations(ctx); err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}
	return m, nil
}

// minioEndpoint splits a base URL into the host:port minio-go expects and
// whether TLS is on. A bare host:port is accepted as is.
func minioEndpoint(base string, useSSL bool) (string, bool) {
	u, err := url.Parse(base)
	if err != nil || u.Host == "" {
		return base, useSSL
	}
	return u.Host, u.Scheme == "https"
}

func newObjectStore(ctx context.Context, c *config.Config) (storage.ObjectStore, error) {
	switch c.StorageBackend {
	case config.StorageS3:
		store, err := storage.NewS3Store(ctx, storage.S3Config{
			Region:       c.S3Region,
			AccessKey:    c.S3AccessKey,
			SecretKey:    c.S3SecretKey,
			BaseEndpoint: c.S3BaseEndpoint,
			Bucket:       c.S3Bucket,
		})
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.StorageMinio:
		endpoint, secure := minioEndpoint(c.S3BaseEndpoint, c.S3UseSSL)
		store, err := storage.NewMinioStore(storage.MinioConfig{
			Endpoint:  endpoint,
			AccessKey: c.S3AccessKey,
			SecretKey: c.S3SecretKey,
			UseSSL:    secure,
			Region:    c.S3Region,
			Bucket:    c.S3Bucket,
		})
		if err != nil {
			return nil, err
		}
		if err := store.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return store, nil
	case config.StorageMemory:
		return storage.NewMemoryStore(c.MemoryStoreBaseURL, []byte(c.SecretKey), c.MaxFileSize), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := newLogger(c.LogLevel)

	rm, err := newRepositoryManager(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	store, err := newObjectStore(ctx, c)
	if err != nil {
		_ = rm.Close()
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	app := &App{config: c, logger: logger, repomanager: rm, store: store}

	var scheduler services.Scheduler
	if c.RedisAddr != "" {
		app.queue = asynq.NewClient(asynq.RedisClientOpt{Addr: c.RedisAddr})
		scheduler = jobs.NewScheduler(app.queue)
	}
	app.submissions = services.NewSubmissionService(rm, store, scheduler, c, logger)

	return app, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.submissions, app.config.SecretKey)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// startUploadEndpoint serves signed PUTs when objects live in memory.
func (app *App) startUploadEndpoint(ctx context.Context, cancelFunc context.CancelFunc, handler http.Handler) {
	srv := &http.Server{Addr: app.config.MemoryStoreAddr, Handler: handler, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	app.logger.Info(ctx, "Starting upload endpoint", "address", app.config.MemoryStoreAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// startExpiry runs the asynq worker when a queue is configured and the
// polling sweeper otherwise.
func (app *App) startExpiry(ctx context.Context) {
	if app.config.RedisAddr != "" {
		w := jobs.NewWorker(app.config.RedisAddr, jobs.NewProcessor(app.submissions, app.logger))
		if err := w.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
		}
		return
	}
	_ = jobs.NewSweeper(app.submissions, app.config.SweepInterval, app.logger).Run(ctx)
}

func (app *App) close(ctx context.Context) {
	if app.queue != nil {
		if err := app.queue.Close(); err != nil {
			app.logger.Warn(ctx, "queue close", "error", err)
		}
	}
	if err := app.repomanager.Close(); err != nil {
		app.logger.Warn(ctx, "db close", "error", err)
	}
}

// Run serves until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "storage", app.config.StorageBackend)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	if h, ok := app.store.(http.Handler); ok {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startUploadEndpoint(ctx, cancelFunc, h)
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startExpiry(ctx)
	}()

	wg.Wait()
	app.close(context.Background())
	app.logger.Info(context.Background(), "App stopped")
}
