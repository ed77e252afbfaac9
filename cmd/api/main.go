package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/visitor-service/internal/api/http"
	"github.com/spec-kit/visitor-service/internal/api/http/handlers"
	"github.com/spec-kit/visitor-service/internal/auth"
	"github.com/spec-kit/visitor-service/internal/config"
	"github.com/spec-kit/visitor-service/internal/events"
	"github.com/spec-kit/visitor-service/internal/observability"
	"github.com/spec-kit/visitor-service/internal/persistence"
	"github.com/spec-kit/visitor-service/internal/repository"
	"github.com/spec-kit/visitor-service/internal/service"
	"github.com/spec-kit/visitor-service/internal/worker"
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
	accountRepo := repository.NewAccountRepository(pool)
	residentRepo := repository.NewResidentRepository(pool)
	visitorRepo := repository.NewVisitorRepository(pool)
	passRepo := repository.NewPassRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	accountService := service.NewAccountService(*cfg, service.AccountDependencies{
		AccountRepo:  accountRepo,
		ResidentRepo: residentRepo,
	})
	visitorService := service.NewVisitorService(service.VisitorDependencies{
		VisitorRepo:  visitorRepo,
		ResidentRepo: residentRepo,
		Dispatcher:   dispatcher,
	})
	passService := service.NewPassService(service.PassDependencies{
		PassRepo:    passRepo,
		AccountRepo: accountRepo,
		Cache:       redis.ClientHandle(),
		Dispatcher:  dispatcher,
	})
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(accountService.TokenManager(), accountRepo)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Accounts:       handlers.NewAccountsHandler(accountService),
		Visitors:       handlers.NewVisitorsHandler(visitorService),
		Passes:         handlers.NewPassesHandler(passService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
