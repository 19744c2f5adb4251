package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	_ "feedsvc/docs" // swagger docs

	"feedsvc/internal/auth"
	"feedsvc/internal/cache"
	"feedsvc/internal/config"
	"feedsvc/internal/handler"
	"feedsvc/internal/logging"
	"feedsvc/internal/observability"
	"feedsvc/internal/repository"
	"feedsvc/internal/router"
	"feedsvc/internal/service"
)

// @title Feed API
// @version 1.0
// @description Users, login and posts for a small social feed.
// @host localhost:3000
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.ServiceName, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stores, err := repository.Open(ctx, cfg)
	if err != nil {
		logger.Fatal("store init", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}
	logger.Info("store ready", zap.String("driver", cfg.StoreDriver))

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, logger)
	if err := cacheClient.Ping(ctx); err != nil {
		logger.Warn("redis unavailable, serving uncached", zap.String("addr", cfg.RedisAddr), zap.Error(err))
	}

	hasher := auth.NewPasswordHasher(auth.DefaultCost)
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL)

	userService := service.NewUserService(stores.Users, hasher, cacheClient, cfg.CacheTTL)
	authService := service.NewAuthService(stores.Users, hasher, jwtService)
	postService := service.NewPostService(stores.Posts, stores.Users, cacheClient, cfg.CacheTTL)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	router.Register(
		e,
		logger,
		observability.NewMetrics(observability.NewRegistry(), cfg.ServiceName),
		jwtService,
		handler.NewUserHandler(userService, logger),
		handler.NewAuthHandler(authService, logger),
		handler.NewPostHandler(postService, logger),
	)

	logger.Info("swagger documentation available", zap.String("url", swaggerURL(cfg)))

	go func() {
		addr := ":" + cfg.ServerPort
		logger.Info("server listening", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server start", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	if err := stores.Close(shutdownCtx); err != nil {
		logger.Error("store close", zap.Error(err))
	}
	if err := cacheClient.Close(); err != nil {
		logger.Error("cache close", zap.Error(err))
	}
}

func swaggerURL(cfg *config.Config) string {
	host := cfg.SwaggerHost
	if host == "" {
		host = "localhost:" + cfg.ServerPort
	}
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}
	return host + "/swagger/index.html"
}
