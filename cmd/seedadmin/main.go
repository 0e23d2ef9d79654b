// Command seedadmin creates (or resets) the initial administrator account.
// Run once after provisioning a new environment:
//
//	seedadmin -email admin@example.com -name "Admin" -password "..."
package main

import (
	"context"
	"errors"
	"flag"
	"time"

	"backoffice/internal/config"
	"backoffice/internal/infra"
	"backoffice/internal/model"
	"backoffice/internal/repository"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	email := flag.String("email", "", "admin email (required)")
	name := flag.String("name", "Administrateur", "display name")
	password := flag.String("password", "", "initial password (required)")
	flag.Parse()

	if *email == "" || *password == "" {
		flag.Usage()
		log.Fatal().Msg("email and password are required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to hash password")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo := repository.NewUserRepository(db)
	existing, err := repo.FindByEmail(ctx, *email)
	switch {
	case err == nil:
		existing.Name = *name
		existing.PasswordHash = string(hash)
		existing.Role = model.RoleAdmin
		existing.IsActive = true
		if err := repo.Update(ctx, existing); err != nil {
			log.Fatal().Err(err).Msg("failed to update admin account")
		}
		log.Info().Str("email", *email).Msg("existing admin account reset")
	case errors.Is(err, gorm.ErrRecordNotFound):
		user := &model.User{
			Email:        *email,
			Name:         *name,
			PasswordHash: string(hash),
			Role:         model.RoleAdmin,
			IsActive:     true,
		}
		if err := repo.Create(ctx, user); err != nil {
			log.Fatal().Err(err).Msg("failed to create admin account")
		}
		log.Info().Str("email", *email).Msg("admin account created")
	default:
		log.Fatal().Err(err).Msg("failed to look up admin account")
	}
}
