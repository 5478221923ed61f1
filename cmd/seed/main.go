// Seeds a development user so the frontend can log in against a fresh
// database without registering first.
package main

import (
	"context"
	"log"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"promptia-be/internal/config"
	"promptia-be/internal/entity"
	"promptia-be/internal/pkg/credentials"
	"promptia-be/internal/repository/implementation"
	"promptia-be/pkg/database"
)

const (
	seedEmail    = "user@gmail.com"
	seedPassword = "password12345"
	seedName     = "Usuario de prueba"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	cfg, err := config.Load()
	if err != nil {
		color.Red("Configuration error: %v", err)
		return
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		color.Red("Failed to connect to database: %v", err)
		return
	}

	ctx := context.Background()
	users := implementation.NewUserRepository(db)
	hasher := credentials.NewPasswordHasher(cfg.Auth.BcryptCost)

	// Idempotent: drop any previous seed user before recreating it.
	if err := users.DeleteByEmail(ctx, seedEmail); err != nil {
		color.Red("Failed to remove previous seed user: %v", err)
		return
	}

	hash, err := hasher.Hash(seedPassword)
	if err != nil {
		color.Red("Failed to hash password: %v", err)
		return
	}

	name := seedName
	now := time.Now()
	user := &entity.User{
		Id:           uuid.New(),
		Email:        seedEmail,
		PasswordHash: hash,
		Name:         &name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := users.Create(ctx, user); err != nil {
		color.Red("Failed to create seed user: %v", err)
		return
	}

	color.Green("Seed user created")
	color.Cyan("  email:    %s", seedEmail)
	color.Cyan("  password: %s", seedPassword)
}
