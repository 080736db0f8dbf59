// Command seedadmin creates the bootstrap admin user. The row is written
// directly with a bcrypt credential in the auth provider's account table, so
// the provider accepts the password on first login.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/inkpost/inkpost/internal/adapter/repository/postgres"
	"github.com/inkpost/inkpost/internal/config"
	"github.com/inkpost/inkpost/internal/domain"
	"github.com/inkpost/inkpost/internal/port"
)

func main() {
	email := flag.String("email", "admin@inkpost.local", "admin email")
	name := flag.String("name", "Admin", "admin display name")
	password := flag.String("password", "", "admin password (required)")
	flag.Parse()

	if *password == "" {
		slog.Error("password is required")
		os.Exit(1)
	}
	if err := run(*email, *name, *password); err != nil {
		slog.Error("seed failed", "err", err)
		os.Exit(1)
	}
	slog.Info("admin created", "email", *email)
}

func run(email, name, password string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	users := postgres.NewUserRepository(pool)
	if _, err := users.FindByEmail(ctx, email); err == nil {
		return fmt.Errorf("user %s already exists", email)
	} else if !errors.Is(err, port.ErrNotFound) {
		return err
	}

	now := time.Now().UTC()
	admin := &domain.User{
		ID:            uuid.NewString(),
		Email:         email,
		Name:          name,
		Role:          domain.RoleAdmin,
		Status:        domain.UserActive,
		EmailVerified: true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := users.Save(ctx, admin); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	// The accounts table belongs to the auth provider; only the credential
	// row is seeded here.
	_, err = pool.Exec(ctx, `
		INSERT INTO accounts (id, user_id, provider_id, password, created_at, updated_at)
		VALUES ($1, $2, 'credential', $3, $4, $4)
	`, uuid.NewString(), admin.ID, string(hash), now)
	return err
}
