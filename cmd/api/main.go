package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/baharkarakas/studygo-backend/internal/api"
	"github.com/baharkarakas/studygo-backend/internal/auth"
	"github.com/baharkarakas/studygo-backend/internal/cache"
	"github.com/baharkarakas/studygo-backend/internal/config"
	"github.com/baharkarakas/studygo-backend/internal/db"
	"github.com/baharkarakas/studygo-backend/internal/logger"
	"github.com/baharkarakas/studygo-backend/internal/metrics"
	"github.com/baharkarakas/studygo-backend/internal/repository/postgres"
	"github.com/baharkarakas/studygo-backend/internal/services"
	"github.com/baharkarakas/studygo-backend/internal/storage"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	if cfg.Migrate {
		if err := db.RunMigrations(ctx, pool); err != nil {
			return err
		}
	}

	repos := postgres.NewRepositories(pool)

	var feed services.FeedCache
	if cfg.RedisURL != "" {
		fc, err := cache.Connect(ctx, cfg.RedisURL, cfg.FeedCacheTTL)
		if err != nil {
			log.Warn("redis unavailable, continuing without cache", "err", err)
		} else {
			defer fc.Close()
			feed = fc
		}
	}

	files, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}

	tm := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL)

	metrics.Init()
	r := api.NewRouter(api.RouterDeps{
		Cfg:         cfg,
		Tokens:      tm,
		UserSvc:     services.NewUserService(repos.Users, tm),
		PostSvc:     services.NewPostService(repos.Posts, feed),
		ProgressSvc: services.NewProgressService(repos.Progress),
		UploadSvc:   services.NewUploadService(files, cfg.BaseURL),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "env", cfg.Env, "storage", cfg.StorageBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openStorage(ctx context.Context, cfg config.Config) (storage.Store, error) {
	if cfg.StorageBackend == "minio" {
		m, err := storage.NewMinIO(cfg.MinIO)
		if err != nil {
			return nil, err
		}
		if err := m.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return m, nil
	}
	return storage.NewLocal(cfg.UploadDir)
}
