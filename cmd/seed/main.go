package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-account-service/config"
	"github.com/oksasatya/go-account-service/internal/application"
	"github.com/oksasatya/go-account-service/internal/domain/entity"
	"github.com/oksasatya/go-account-service/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/go-account-service/internal/infrastructure/postgres"
	"github.com/oksasatya/go-account-service/pkg/helpers"
)

// seed creates the root "admin" account with ADMIN_PASSWORD if it is missing.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	if cfg.AdminPassword == "" {
		log.Fatal("ADMIN_PASSWORD is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	hasher, err := helpers.NewPBKDF2Hasher(cfg.PasswordHashMethod, cfg.PasswordHashIterations)
	if err != nil {
		log.Fatalf("invalid password hash settings: %v", err)
	}

	// seeding never binds a session
	svc := application.NewService(pginfra.NewUserRepository(pool), memory.NewSessionStore(0), hasher, logger)
	if cfg.RabbitMQURL != "" {
		if pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEventsQueue); err == nil {
			defer pub.Close()
			svc.WithEvents(pub)
		}
	}

	created, err := svc.EnsureRootAdmin(ctx, cfg.AdminPassword)
	if err != nil {
		log.Fatalf("failed to seed root admin: %v", err)
	}
	helpers.LogInfo(logger, "root admin seed finished", logrus.Fields{
		"username": entity.RootAdminUsername,
		"created":  created,
	})
}
