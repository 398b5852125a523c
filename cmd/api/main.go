package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/dealerdesk/identity-service/docs"
	"github.com/dealerdesk/identity-service/internal/api"
	"github.com/dealerdesk/identity-service/internal/core/service"
	"github.com/dealerdesk/identity-service/internal/infrastructure/config"
	mongodb "github.com/dealerdesk/identity-service/internal/infrastructure/db/mongo"
	redisdb "github.com/dealerdesk/identity-service/internal/infrastructure/db/redis"
	"github.com/dealerdesk/identity-service/internal/infrastructure/queue"
	"github.com/dealerdesk/identity-service/internal/security"
	"github.com/dealerdesk/identity-service/internal/token"
	"github.com/dealerdesk/identity-service/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title        Identity Service API
// @version      1.0
// @description  Credential authentication, token rotation and role-based access control.
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.New(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWT.AccessSecret == "" || cfg.JWT.RefreshSecret == "" {
		log.Fatal().Msg("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must be set")
	}
	if cfg.JWT.AccessSecret == cfg.JWT.RefreshSecret {
		log.Fatal().Msg("access and refresh secrets must differ")
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	userRepo := mongodb.NewUserRepository(db)
	roleRepo := mongodb.NewRoleRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)

	dispatcher := queue.NewDispatcher(cfg.Audit.Workers, auditRepo, log)
	dispatcher.Start(ctx)

	hasher := security.NewHasher(cfg.Hash.BcryptCost, cfg.Hash.MaxConcurrency)
	issuer := token.NewIssuer(token.Config{
		AccessSecret:  cfg.JWT.AccessSecret,
		RefreshSecret: cfg.JWT.RefreshSecret,
		AccessTTL:     cfg.JWT.AccessTTL,
		RefreshTTL:    cfg.JWT.RefreshTTL,
	})
	revoker := redisdb.NewRevocationList(rdb)

	authService := service.NewAuthService(userRepo, hasher, issuer, revoker, dispatcher, log)
	userService := service.NewUserService(userRepo, roleRepo, hasher, log)
	roleService := service.NewRoleService(roleRepo, userRepo, log)

	e := api.NewRouter(api.Dependencies{
		Auth:   authService,
		Users:  userService,
		Roles:  roleService,
		Audit:  auditRepo,
		Tokens: issuer,
		Mongo:  db,
		Redis:  rdb,
		Logger: log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("identity service listening")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
