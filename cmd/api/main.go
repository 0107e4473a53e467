package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"petshop/internal/adapters/storage/redisstore"
	"petshop/internal/adapters/storage/snapshot"
	"petshop/internal/config"
	"petshop/internal/platform/logger"
	"petshop/internal/platform/tracing"
	"petshop/internal/router"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Primero la config: el .env puede traer LOG_LEVEL/LOG_FORMAT.
	cfg, err := config.Load()
	log := logger.NewFromEnv()
	if zl, ok := log.(*logger.ZapLogger); ok {
		defer func() { _ = zl.Zap().Sync() }()
	}
	if err != nil {
		log.Error("invalid config", map[string]any{"error": err})
		os.Exit(1)
	}

	if err := run(cfg, log); err != nil {
		log.Error("server stopped with error", map[string]any{"error": err})
		os.Exit(1)
	}
}

func run(cfg config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Setup(ctx, tracing.Options{
		ServiceName: "petshop",
		Exporter:    cfg.TracingExporter,
		Endpoint:    cfg.OTLPEndpoint,
	})
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.Warn("tracing shutdown failed", map[string]any{"error": err})
		}
	}()

	opts := router.Options{
		Logger:          log,
		DebugAuthHeader: cfg.DebugAuthHeader,
		FrontendURL:     cfg.FrontendURL,
		MockDelays:      cfg.MockDelays,
		RateLimitRPS:    cfg.RateLimitRPS,
		RateLimitBurst:  cfg.RateLimitBurst,
		TrustProxy:      cfg.TrustProxy,
	}
	if cfg.CatalogSnapshotPath != "" {
		opts.Snapshot = snapshot.NewFileWriter(cfg.CatalogSnapshotPath)
	}
	if cfg.RedisURL != "" {
		client, err := redisstore.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer client.Close()
		opts.Wishlist = redisstore.NewWishlistRepo(client, "")
		log.Info("wishlist backed by redis", nil)
	}

	h, err := router.NewRouter(opts)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           otelhttp.NewHandler(h, "petshop"),
		ReadHeaderTimeout: 5 * time.Second,
		// Los pagos y el sync simulados tardan hasta 2s.
		WriteTimeout: 30 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting server", map[string]any{
			"addr":        srv.Addr,
			"debug_auth":  cfg.DebugAuthHeader,
			"mock_delays": cfg.MockDelays,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down", map[string]any{"timeout": cfg.ShutdownTimeout.String()})

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
