package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/ricirt/dummy-predictor/internal/api"
	"github.com/ricirt/dummy-predictor/internal/config"
	"github.com/ricirt/dummy-predictor/internal/db"
	"github.com/ricirt/dummy-predictor/internal/domain"
	"github.com/ricirt/dummy-predictor/internal/logging"
	"github.com/ricirt/dummy-predictor/internal/metrics"
	"github.com/ricirt/dummy-predictor/internal/provider"
	"github.com/ricirt/dummy-predictor/internal/queue"
	"github.com/ricirt/dummy-predictor/internal/ratelimiter"
	"github.com/ricirt/dummy-predictor/internal/repository"
	"github.com/ricirt/dummy-predictor/internal/service"
	"github.com/ricirt/dummy-predictor/internal/worker"
)

// Set at build time with -ldflags "-X main.Version=...".
var (
	Version string
	Commit  string
)

func main() {
	app := &cli.App{
		Name:            logging.AppName,
		Usage:           "Serve a placeholder prediction model over HTTP.",
		Version:         version(),
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "host",
				Aliases:  []string{"H"},
				Usage:    "the host to listen on.",
				Category: "http",
				EnvVars:  []string{"HTTP_HOST"},
			},
			&cli.IntFlag{
				Name:     "port",
				Aliases:  []string{"P"},
				Usage:    "the port to listen on.",
				Category: "http",
				EnvVars:  []string{"HTTP_PORT"},
			},
			&cli.BoolFlag{
				Name:     "h2c",
				Usage:    "enable HTTP/2 cleartext upgrade.",
				Category: "http",
				EnvVars:  []string{"HTTP_H2C"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "set the log level. Options: debug, info, warn, error.",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "log-format",
				Usage:   "set the log format. Options: production, development.",
				EnvVars: []string{"LOG_FORMAT"},
			},
		},
		Action: serve,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "exit error: %s\n", err)
		os.Exit(1)
	}
}

func version() string {
	if Version != "" {
		return Version
	}
	return "local"
}

func serve(c *cli.Context) error {
	// ---- configuration ----
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyFlags(c, cfg)

	// ---- error reporting ----
	if err := setupSentry(cfg); err != nil {
		return fmt.Errorf("sentry init: %w", err)
	}
	defer sentry.Flush(2 * time.Second)

	// ---- logging ----
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	// ---- metrics ----
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	// ---- audit pipeline ----
	// Context for all background goroutines; cancelled on shutdown signal.
	ctx := context.Background()
	workerCtx, cancelWorkers := context.WithCancel(ctx)
	defer cancelWorkers()

	var (
		q    *queue.AuditQueue
		pool *worker.Pool
	)
	if cfg.AuditEnabled() {
		repo, closeRepo, err := openAuditRepository(ctx, cfg, logger)
		if err != nil {
			logger.Error("failed to open audit sink", zap.String("sink", string(cfg.AuditSink)), zap.Error(err))
			return err
		}
		defer closeRepo()

		q = queue.New(cfg.AuditQueueSize)
		metrics.RegisterQueueDepth(reg, q.Depth)

		onWritten, onFailed := m.WorkerHooks()
		pool = worker.NewPool(cfg, q, repo, ratelimiter.New(cfg.AuditRateLimit), logger, worker.MetricHooks{
			OnWritten: onWritten,
			OnFailed:  onFailed,
		})
		pool.Start(workerCtx)
		logger.Info("audit pipeline started",
			zap.String("sink", string(cfg.AuditSink)),
			zap.Int("workers", pool.Size()),
			zap.Int("queue_size", q.Capacity()),
		)
	}

	onPrediction, onDropped := m.ServiceHooks()
	svc := service.NewPredictionService(q, logger, service.Hooks{
		OnPrediction: onPrediction,
		OnDropped:    onDropped,
	})

	// ---- HTTP server ----
	router := api.NewRouter(svc, m, logger, api.Options{MaxBodyBytes: cfg.MaxBodyBytes})
	srv := api.NewServer(cfg, router)

	serverErr := make(chan error, 2)
	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr), zap.Bool("h2c", cfg.H2C))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	var metricsSrv *http.Server
	if cfg.MetricsEnabled {
		metricsSrv = api.NewMetricsServer(cfg, reg)
		go func() {
			logger.Info("metrics server starting", zap.String("addr", metricsSrv.Addr))
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serverErr <- fmt.Errorf("metrics server: %w", err)
			}
		}()
	}

	// ---- graceful shutdown ----
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-serverErr:
		logger.Error("server error", zap.Error(err))
		_ = srv.Close()
		if metricsSrv != nil {
			_ = metricsSrv.Close()
		}
		cancelWorkers()
		if pool != nil {
			pool.Wait()
		}
		return err
	}

	// 1. Stop accepting new HTTP requests.
	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}
	if metricsSrv != nil {
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			logger.Error("metrics server shutdown error", zap.Error(err))
		}
	}

	// 2. Signal audit workers to stop, then wait for in-flight writes.
	cancelWorkers()
	if pool != nil {
		pool.Wait()
		if left := q.Depth(); left > 0 {
			logger.Warn("audit records left unwritten at shutdown", zap.Int("count", left))
		}
	}

	logger.Info("server stopped cleanly")
	return nil
}

// applyFlags lets explicitly passed CLI flags win over the environment.
func applyFlags(c *cli.Context, cfg *config.Config) {
	if c.IsSet("host") {
		cfg.HTTPHost = c.String("host")
	}
	if c.IsSet("port") {
		cfg.HTTPPort = c.Int("port")
	}
	if c.IsSet("h2c") {
		cfg.H2C = c.Bool("h2c")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("log-format") {
		cfg.LogFormat = c.String("log-format")
	}
}

// openAuditRepository connects the configured sink. The returned func
// releases its resources and is always non-nil on success.
func openAuditRepository(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.AuditRepository, func(), error) {
	switch cfg.AuditSink {
	case domain.AuditSinkPostgres:
		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		if err := db.Migrate(cfg.DatabaseURL); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("run migrations: %w", err)
		}
		logger.Info("database migrations applied")
		return repository.NewPgAuditRepository(pool), closePool(pool), nil

	case domain.AuditSinkWebhook:
		return provider.NewWebhookProvider(cfg.AuditWebhookURL, cfg.AuditWebhookTimeout), func() {}, nil
	}
	return nil, nil, fmt.Errorf("%w: %q", domain.ErrInvalidAuditSink, cfg.AuditSink)
}

func closePool(pool *pgxpool.Pool) func() {
	return func() { pool.Close() }
}

func setupSentry(cfg *config.Config) error {
	if cfg.SentryDSN == "" {
		return nil
	}

	return sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Debug:            cfg.SentryDebug,
		TracesSampleRate: 1.0,
		EnableTracing:    true,
		Environment:      cfg.SentryEnvironment,
		Release:          Commit,
	})
}
