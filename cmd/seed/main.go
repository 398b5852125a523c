// Command seed bootstraps a development database: the three built-in roles
// plus one account per user type, idempotently.
package main

import (
	"context"
	"errors"

	"github.com/dealerdesk/identity-service/internal/core/domain"
	"github.com/dealerdesk/identity-service/internal/core/ports"
	"github.com/dealerdesk/identity-service/internal/core/service"
	"github.com/dealerdesk/identity-service/internal/infrastructure/config"
	mongodb "github.com/dealerdesk/identity-service/internal/infrastructure/db/mongo"
	"github.com/dealerdesk/identity-service/internal/security"
	"github.com/dealerdesk/identity-service/pkg/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.New(logger.Options{Level: cfg.LogLevel, Pretty: true})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	userRepo := mongodb.NewUserRepository(db)
	roleRepo := mongodb.NewRoleRepository(db)
	hasher := security.NewHasher(cfg.Hash.BcryptCost, cfg.Hash.MaxConcurrency)

	roleService := service.NewRoleService(roleRepo, userRepo, log)
	userService := service.NewUserService(userRepo, roleRepo, hasher, log)

	roles := []ports.CreateRoleInput{
		{Name: domain.TypeAdmin, Description: "Full administrative access"},
		{Name: domain.TypeDealer, Description: "Dealer operations"},
		{Name: domain.TypeBroker, Description: "Broker operations"},
	}
	for _, input := range roles {
		if _, err := roleService.Create(ctx, input, "seed"); err != nil {
			if errors.Is(err, domain.ErrRoleExists) {
				log.Info().Str("role", input.Name).Msg("role already present")
				continue
			}
			log.Fatal().Err(err).Str("role", input.Name).Msg("role seed failed")
		}
		log.Info().Str("role", input.Name).Msg("role created")
	}

	users := []ports.CreateUserInput{
		{Email: cfg.Seed.MasterEmail, Password: cfg.Seed.MasterPassword, FirstName: "Master", Role: domain.TypeAdmin},
		{Email: cfg.Seed.DealerEmail, Password: cfg.Seed.DealerPassword, FirstName: "Dealer", Role: domain.TypeDealer},
		{Email: cfg.Seed.BrokerEmail, Password: cfg.Seed.BrokerPassword, FirstName: "Broker", Role: domain.TypeBroker},
	}
	for _, input := range users {
		if input.Password == "" {
			log.Warn().Str("email", input.Email).Msg("no password configured, skipping")
			continue
		}
		if _, err := userService.Create(ctx, input); err != nil {
			if errors.Is(err, domain.ErrUserExists) {
				log.Info().Str("email", input.Email).Msg("user already present")
				continue
			}
			log.Fatal().Err(err).Str("email", input.Email).Msg("user seed failed")
		}
		log.Info().Str("email", input.Email).Str("role", input.Role).Msg("user created")
	}

	log.Info().Msg("seed complete")
}
