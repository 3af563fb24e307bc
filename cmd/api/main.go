// @title                       GMS API
// @version                     1.0
// @description                 User directory and account endpoints of the GMS lesson-booking backend.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/gms2/gms-api/docs"
	"github.com/gms2/gms-api/internal/api"
	"github.com/gms2/gms-api/internal/api/handler"
	"github.com/gms2/gms-api/internal/api/metrics"
	"github.com/gms2/gms-api/internal/core/service"
	mongodb "github.com/gms2/gms-api/internal/infrastructure/db/mongo"
	redisdb "github.com/gms2/gms-api/internal/infrastructure/db/redis"
	"github.com/gms2/gms-api/internal/pkg/config"
	"github.com/gms2/gms-api/pkg/logger"
)

const serviceName = "gms-api"

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: serviceName,
	})
	log.Info().Str("env", cfg.Env).Str("port", cfg.Port).Msg("starting")

	ctx := context.Background()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  serviceName,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection")
	}

	userRepo := mongodb.NewUserRepository(db)
	roleRepo := mongodb.NewRoleRepository(db)
	if err := mongodb.EnsureIndexes(ctx, userRepo, roleRepo); err != nil {
		log.Fatal().Err(err).Msg("mongo indexes")
	}

	recorder := metrics.NewRecorder()
	userService := service.NewUserService(
		userRepo,
		roleRepo,
		redisdb.NewUserCache(rdb, cfg.Redis.UserCacheTTL),
		recorder,
		logger.Component("user-service"),
	)
	accountService := service.NewAccountService(userRepo, cfg.JWTSecret, cfg.TokenTTL, recorder)

	if cfg.BootstrapRoles {
		if err := userService.BootstrapRoles(ctx); err != nil {
			log.Fatal().Err(err).Msg("role bootstrap")
		}
	}

	e := api.NewRouter(api.Dependencies{
		Users:    userService,
		Accounts: accountService,
		Readiness: map[string]handler.Pinger{
			"mongodb": handler.MongoPinger(db),
			"redis":   handler.RedisPinger(rdb),
		},
		JWTSecret: cfg.JWTSecret,
		Logger:    logger.Component("http"),
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server stopped")
		}
	}()
	log.Info().Str("addr", ":"+cfg.Port).Msg("listening")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("mongo disconnect")
	}
	if err := rdb.Close(); err != nil {
		log.Error().Err(err).Msg("redis close")
	}

	log.Info().Msg("stopped")
}
