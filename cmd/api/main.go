package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/incident-report-service/internal/api/http"
	"github.com/spec-kit/incident-report-service/internal/api/http/handlers"
	"github.com/spec-kit/incident-report-service/internal/auth"
	"github.com/spec-kit/incident-report-service/internal/config"
	"github.com/spec-kit/incident-report-service/internal/conversation"
	"github.com/spec-kit/incident-report-service/internal/events"
	"github.com/spec-kit/incident-report-service/internal/messenger"
	"github.com/spec-kit/incident-report-service/internal/observability"
	"github.com/spec-kit/incident-report-service/internal/persistence"
	"github.com/spec-kit/incident-report-service/internal/repository"
	"github.com/spec-kit/incident-report-service/internal/service"
	"github.com/spec-kit/incident-report-service/internal/session"
	"github.com/spec-kit/incident-report-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	reportRepo := repository.NewReportRepository(pool)

	sessions := newSessionStore(cfg.Session, redis, logger)

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	gateway := messenger.NewClient(cfg.Messenger, logger)
	engine := conversation.NewEngine(conversation.Dependencies{
		Sessions:   sessions,
		Sender:     gateway,
		UserRepo:   userRepo,
		ReportRepo: reportRepo,
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	reportService := service.NewReportService(reportRepo, dispatcher)
	adminMiddleware := auth.NewAdminMiddleware(cfg.Admin.Token)

	metrics := observability.NewMetrics()
	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:          handlers.NewHealthHandler(pg, redis),
		Webhook:         handlers.NewWebhookHandler(cfg.Messenger.VerifyToken, engine, metrics, logger),
		Reports:         handlers.NewReportsHandler(reportService),
		Pages:           handlers.NewPagesHandler(cfg.App.PublicDir),
		AdminMiddleware: adminMiddleware,
		PublicDir:       cfg.App.PublicDir,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func newSessionStore(cfg config.SessionConfig, redis *persistence.Redis, logger *zap.Logger) session.Store {
	if strings.EqualFold(cfg.Backend, "redis") && redis != nil && redis.Client != nil {
		logger.Info("using redis session store")
		return session.NewRedisStore(redis.Client, cfg.TTL())
	}
	return session.NewMemoryStore()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
