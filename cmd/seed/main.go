package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/portfolio-cms/config"
	"github.com/oksasatya/portfolio-cms/internal/application"
	"github.com/oksasatya/portfolio-cms/internal/infrastructure/jsonstore"
	"github.com/oksasatya/portfolio-cms/pkg/helpers"
)

// seed creates or rotates an admin account in DATA_DIR. Rotating the
// bootstrap account's password clears its one-time flag.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	username := flag.String("username", cfg.AdminUsername, "admin username")
	password := flag.String("password", "", "new password (min 8 chars)")
	email := flag.String("email", cfg.AdminEmail, "contact email stored on the account")
	flag.Parse()

	if *password == "" {
		log.Fatal("-password is required")
	}

	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	store, err := jsonstore.Open(cfg.DataDir, logger)
	if err != nil {
		log.Fatalf("failed to open data dir: %v", err)
	}

	jwt := helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL, cfg.AppName)
	auth := application.NewAuthService(jsonstore.NewUserRepository(store), jwt, logger)

	created, err := auth.SetPassword(*username, *password, *email)
	if err != nil {
		log.Fatalf("seed failed: %v", err)
	}
	logger.WithFields(logrus.Fields{"username": *username, "created": created}).Info("admin password set")
}
