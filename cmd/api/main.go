package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/supplychain-service/internal/api/http"
	"github.com/spec-kit/supplychain-service/internal/api/http/handlers"
	"github.com/spec-kit/supplychain-service/internal/auth"
	"github.com/spec-kit/supplychain-service/internal/cache"
	"github.com/spec-kit/supplychain-service/internal/config"
	"github.com/spec-kit/supplychain-service/internal/events"
	"github.com/spec-kit/supplychain-service/internal/observability"
	"github.com/spec-kit/supplychain-service/internal/persistence"
	"github.com/spec-kit/supplychain-service/internal/repository"
	"github.com/spec-kit/supplychain-service/internal/service"
	"github.com/spec-kit/supplychain-service/internal/storage"
	"github.com/spec-kit/supplychain-service/internal/worker"
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
	productRepo := repository.NewProductRepository(pool)
	dealRepo := repository.NewDealRepository(pool)

	dispatcher := events.NewInMemoryDispatcher(logger)
	profiles := cache.NewUserCache(redis.Client, cfg.Redis.ProfileTTL(), logger)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:   userRepo,
		Profiles:   profiles,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	productService := service.NewProductService(productRepo, dispatcher)
	dealService := service.NewDealService(dealRepo, productRepo, dispatcher)

	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger))

	var presigner handlers.Presigner
	if cfg.Storage.Enabled() {
		uploader, err := storage.NewUploader(ctx, cfg.Storage, logger)
		if err != nil {
			logger.Fatal("failed to init object storage", zap.Error(err))
		}
		presigner = uploader
	} else {
		logger.Warn("STORAGE_BUCKET not set; presigned uploads disabled")
	}

	cookies := auth.NewCookiePolicy(cfg.Auth.SessionTTL())
	sessionMiddleware := auth.NewSessionMiddleware(authService.TokenManager(), userRepo)

	app := fiber.New()
	metrics := observability.NewMetrics()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.WebOrigin, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:            handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:              handlers.NewAuthHandler(authService, cookies),
		Products:          handlers.NewProductsHandler(productService),
		Deals:             handlers.NewDealsHandler(dealService),
		Uploads:           handlers.NewUploadsHandler(presigner),
		SessionMiddleware: sessionMiddleware,
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
