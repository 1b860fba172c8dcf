package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/car-rental-service/internal/api/http"
	"github.com/spec-kit/car-rental-service/internal/api/http/handlers"
	"github.com/spec-kit/car-rental-service/internal/auth"
	"github.com/spec-kit/car-rental-service/internal/config"
	"github.com/spec-kit/car-rental-service/internal/events"
	"github.com/spec-kit/car-rental-service/internal/notification"
	"github.com/spec-kit/car-rental-service/internal/observability"
	"github.com/spec-kit/car-rental-service/internal/persistence"
	"github.com/spec-kit/car-rental-service/internal/repository"
	"github.com/spec-kit/car-rental-service/internal/service"
	"github.com/spec-kit/car-rental-service/internal/worker"
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
	carRepo := repository.NewCarRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)

	mailer := notification.NewBrevoMailer(cfg.Mail)
	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		AccountRepo: accountRepo,
		Sender:      mailer,
	})
	ownerService := service.NewOwnerService(accountRepo)
	carService := service.NewCarService(carRepo, redis, cfg.Redis.CacheTTL(), logger)
	bookingService := service.NewBookingService(bookingRepo, carRepo, dispatcher)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Mail)

	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewMiddleware(authService.TokenManager(), accountRepo)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Accounts:       handlers.NewAccountsHandler(authService),
		Cars:           handlers.NewCarsHandler(carService),
		Owner:          handlers.NewOwnerHandler(ownerService, carService, bookingService),
		Bookings:       handlers.NewBookingsHandler(bookingService),
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
