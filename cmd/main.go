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

	"connectrpc.com/grpchealth"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/KasumiMercury/primind-daily-reminder/internal/calendar"
	"github.com/KasumiMercury/primind-daily-reminder/internal/config"
	"github.com/KasumiMercury/primind-daily-reminder/internal/handler"
	"github.com/KasumiMercury/primind-daily-reminder/internal/health"
	"github.com/KasumiMercury/primind-daily-reminder/internal/host"
	"github.com/KasumiMercury/primind-daily-reminder/internal/infra/notificationcenter"
	"github.com/KasumiMercury/primind-daily-reminder/internal/infra/reconcilerecorder"
	"github.com/KasumiMercury/primind-daily-reminder/internal/observability/logging"
	"github.com/KasumiMercury/primind-daily-reminder/internal/observability/metrics"
	"github.com/KasumiMercury/primind-daily-reminder/internal/observability/middleware"
	"github.com/KasumiMercury/primind-daily-reminder/internal/service/daily"
	"github.com/KasumiMercury/primind-daily-reminder/internal/service/decision"
	"github.com/KasumiMercury/primind-daily-reminder/internal/service/reminder"
)

// Version is set via ldflags at build time
var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	obs, err := initObservability(ctx)
	if err != nil {
		slog.Error("failed to initialize observability", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("observability shutdown error", slog.String("error", err.Error()))
		}
	}()

	slog.SetDefault(obs.Logger())

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}

	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	if err := cfg.TaskQueue.Validate(); err != nil {
		slog.Error("task queue configuration error", slog.String("error", err.Error()))
		return 1
	}

	httpMetrics, err := metrics.NewHTTPMetrics()
	if err != nil {
		slog.Error("failed to initialize HTTP metrics", slog.String("error", err.Error()))
		return 1
	}

	reminderMetrics, err := metrics.NewReminderMetrics()
	if err != nil {
		slog.Error("failed to initialize reminder metrics", slog.String("error", err.Error()))
		return 1
	}

	// InfluxDB for local, BigQuery for gcloud
	recorder, err := reconcilerecorder.NewRecorder(ctx, reconcilerecorder.LoadConfig())
	if err != nil {
		slog.Error("failed to initialize reconciliation recorder", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := recorder.Close(); err != nil {
			slog.Warn("failed to close reconciliation recorder", slog.String("error", err.Error()))
		}
	}()

	taskQueue, cleanup, err := initTaskQueue(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize task queue", slog.String("error", err.Error()))
		return 1
	}
	if cleanup != nil {
		defer func() {
			if err := cleanup(); err != nil {
				slog.Error("task queue cleanup error", slog.String("error", err.Error()))
			}
		}()
	}

	redisClient := redis.NewClient(cfg.Redis.Options())

	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		slog.Error("failed to instrument redis tracing",
			slog.String("event", "redis.otel.tracing.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	if err := redisotel.InstrumentMetrics(redisClient); err != nil {
		slog.Error("failed to instrument redis metrics",
			slog.String("event", "redis.otel.metrics.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.Error("failed to connect redis",
			slog.String("event", "redis.connect.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Warn("failed to close redis client", slog.String("error", err.Error()))
		}
	}()

	slog.Info("redis connected",
		slog.String("addr", cfg.Redis.Addr),
	)

	loc := cfg.Reminder.Location
	clock := func() time.Time { return time.Now().In(loc) }

	loop := host.NewMainLoop()
	go loop.Run(ctx)

	center := notificationcenter.NewRedisCenter(redisClient, taskQueue, notificationcenter.Config{
		Namespace:         cfg.Reminder.Namespace,
		DefaultPermission: cfg.Reminder.DefaultPermission,
	}, notificationcenter.WithClock(clock))

	reminderService := reminder.NewService(
		center,
		center,
		decision.NewEngine(calendar.New(loc)),
		reminderMetrics,
		recorder,
		reminder.WithClock(clock),
		reminder.WithDispatcher(loop.Post),
	)

	driver, err := daily.NewDriver(loop, reminderService, daily.Config{
		Schedule:   cfg.Reminder.DailySchedule,
		Location:   loc,
		RunOnStart: cfg.Reminder.RunOnStart,
	})
	if err != nil {
		slog.Error("failed to initialize daily driver", slog.String("error", err.Error()))
		return 1
	}

	reminderHandler := handler.NewReminderHandler(loop, reminderService, center)

	r := gin.New()
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:   []string{"/health", "/health/live", "/health/ready"},
		Module:      logging.Module("daily-reminder"),
		TracerName:  "github.com/KasumiMercury/primind-daily-reminder/internal/observability/middleware",
		HTTPMetrics: httpMetrics,
	}))
	r.Use(middleware.PanicRecoveryGin())

	healthChecker := health.NewChecker(redisClient, loop, Version)
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.ReadyHandler())

	grpcHealthPath, grpcHealthHandler := grpchealth.NewHandler(healthChecker)
	r.Any(grpcHealthPath+"*method", gin.WrapH(grpcHealthHandler))

	reminderHandler.Register(r.Group("/api/v1"))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: h2c.NewHandler(r, &http2.Server{}),
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.String("namespace", cfg.Reminder.Namespace),
			slog.String("tz", loc.String()),
			slog.String("daily_schedule", cfg.Reminder.DailySchedule),
		)
		serverErr <- srv.ListenAndServe()
	}()

	driver.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		driver.Stop(shutdownCtx)

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
			return 1
		}

		loop.Stop()
		<-loop.Done()

		slog.Info("server exited properly")
		return 0

	case err := <-serverErr:
		driver.Stop(context.Background())
		if errors.Is(err, http.ErrServerClosed) {
			return 0
		}
		slog.Error("server exited with error", slog.String("error", err.Error()))
		return 1
	}
}
