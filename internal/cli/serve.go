package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"holocron/config"
	"holocron/internal/database"
	"holocron/internal/middleware"
	"holocron/internal/router"
	"holocron/internal/ws"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer database.Close(db)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Database.MigrateOnStart {
		if err := database.Migrate(ctx, db, cfg.Database.Driver, cfg.Database.Migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	limiter, closeLimiter, err := newLimiter(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeLimiter()

	gin.DefaultWriter = io.Discard
	engine := router.Setup(cfg, db, limiter, ws.NewHub())

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.Handler(cfg, engine),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", srv.Addr, "mode", cfg.Server.Mode, "driver", cfg.Database.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}

// newLimiter picks the redis limiter when redis is enabled, the in-memory one otherwise.
func newLimiter(ctx context.Context, cfg *config.Config) (middleware.Limiter, func(), error) {
	noop := func() {}
	if !cfg.RateLimit.Enabled {
		return nil, noop, nil
	}
	rdb, err := database.NewRedis(ctx, &cfg.Redis)
	if err != nil {
		return nil, noop, err
	}
	if rdb != nil {
		return middleware.NewRedisLimiter(rdb, cfg.RateLimit.RequestsPerMinute, time.Minute), func() { _ = rdb.Close() }, nil
	}
	mem := middleware.NewMemoryLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	go mem.Cleanup(ctx, time.Minute)
	return mem, noop, nil
}
