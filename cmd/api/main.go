package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/menu-assistant/internal/api/http"
	"github.com/spec-kit/menu-assistant/internal/api/http/handlers"
	"github.com/spec-kit/menu-assistant/internal/auth"
	"github.com/spec-kit/menu-assistant/internal/config"
	"github.com/spec-kit/menu-assistant/internal/events"
	"github.com/spec-kit/menu-assistant/internal/integrations/openrouter"
	"github.com/spec-kit/menu-assistant/internal/menu"
	"github.com/spec-kit/menu-assistant/internal/observability"
	"github.com/spec-kit/menu-assistant/internal/persistence"
	"github.com/spec-kit/menu-assistant/internal/service"
	"github.com/spec-kit/menu-assistant/internal/worker"
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

	if cfg.Auth.JWTSecret == config.DefaultJWTSecret {
		logger.Warn("AUTH_JWT_SECRET not set, using insecure default")
	}
	if cfg.Upstream.APIKey == "" {
		logger.Warn("OPENROUTER_API_KEY not set, completion requests will fail")
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher(logger)
	worker.StartAnalyticsWorker(dispatcher, metrics, logger)

	var redis *persistence.Redis
	var quotaStore service.QuotaStore
	if cfg.Auth.QuotaStore == config.QuotaStoreRedis {
		redis = persistence.NewRedis(cfg.Redis, logger)
		defer redis.Close()
		quotaStore = redis
	}

	menuStore := menu.NewStore(cfg.Menu, logger)

	tokenService := service.NewTokenService(cfg.Auth, service.TokenDependencies{
		QuotaStore: quotaStore,
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	completionClient := openrouter.NewClient(cfg.Upstream.APIKey,
		openrouter.WithBaseURL(cfg.Upstream.BaseURL),
		openrouter.WithTimeout(cfg.Upstream.Timeout()),
	)

	chatService := service.NewChatService(cfg.Upstream, service.ChatDependencies{
		Menu:       menuStore,
		Client:     completionClient,
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	quotaMiddleware := auth.NewQuotaMiddleware(tokenService, cfg.Auth.RequireToken)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, menuStore, redis),
		Auth:   handlers.NewAuthHandler(tokenService),
		Chat:   handlers.NewChatHandler(chatService),
		Quota:  quotaMiddleware,
		Static: cfg.Static,
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
