// Command createadmin seeds the default admin account. It is idempotent:
// rerunning against a database that already has the admin is a no-op.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/taskdash/apigateway/internal/config"
	"github.com/taskdash/apigateway/internal/database"
	"github.com/taskdash/apigateway/internal/domain"
	"github.com/taskdash/apigateway/internal/repository"
)

const (
	adminName     = "Admin"
	adminEmail    = "admin@admin.com"
	adminPassword = "admin123"
)

func main() {
	ctx := context.Background()

	if err := config.LoadEnvConfig(); err != nil {
		log.Fatalf("failed to load env config: %v", err)
	}
	cfg := config.DefaultEnvConfig

	db, err := database.NewPostgresDB(ctx, database.Config{
		Host:            cfg.DB_HOST,
		Port:            cfg.DB_PORT,
		User:            cfg.DB_USER,
		Password:        cfg.DB_PASSWORD,
		DBName:          cfg.DB_NAME,
		SSLMode:         cfg.DB_SSL_MODE,
		MaxOpenConns:    cfg.DB_MAX_OPEN_CONNS,
		MaxIdleConns:    cfg.DB_MAX_IDLE_CONNS,
		ConnMaxLifetime: cfg.DB_CONN_MAX_LIFETIME,
	})
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer db.Close()

	users := repository.NewPostgresUserRepository(db)
	if err := users.Migrate(ctx); err != nil {
		log.Fatalf("failed to migrate users schema: %v", err)
	}

	if _, err := users.GetByEmail(ctx, adminEmail); err == nil {
		fmt.Println("Admin user already exists!")
		return
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		log.Fatalf("failed to check for existing admin: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash admin password: %v", err)
	}

	admin := &domain.User{
		Name:         adminName,
		Email:        adminEmail,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		CreatedAt:    time.Now(),
	}
	if err := users.Create(ctx, admin); err != nil {
		log.Fatalf("failed to create admin user: %v", err)
	}

	fmt.Println("Admin user created successfully!")
	fmt.Println("Email:", adminEmail)
	fmt.Println("Password:", adminPassword)
}
