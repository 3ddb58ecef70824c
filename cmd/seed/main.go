// Seed creates a demo owner and seeker account in the configured byte
// store and makes sure the sample catalogue is present. Safe to re-run:
// existing accounts are left alone.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/bookbuddy/bookbuddy-api/config"
	"github.com/bookbuddy/bookbuddy-api/internal/domain/entity"
	"github.com/bookbuddy/bookbuddy-api/internal/domain/repository"
	"github.com/bookbuddy/bookbuddy-api/internal/infrastructure/kv"
	"github.com/bookbuddy/bookbuddy-api/internal/infrastructure/localstore"
	"github.com/bookbuddy/bookbuddy-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)

	byteStore, cleanup, err := openByteStore(context.Background(), cfg)
	if err != nil {
		log.Fatalf("failed to open %s store: %v", cfg.StoreBackend, err)
	}
	defer cleanup()

	// Loading the store seeds the sample books when the key is absent.
	store, err := localstore.New(byteStore, logger)
	if err != nil {
		log.Fatalf("failed to load store: %v", err)
	}

	demo := []entity.User{
		{Name: "Demo Owner", Email: "owner@bookbuddy.dev", Password: "password123", Mobile: "555-0001", Role: entity.RoleOwner},
		{Name: "Demo Seeker", Email: "seeker@bookbuddy.dev", Password: "password123", Mobile: "555-0002", Role: entity.RoleSeeker},
	}
	for i := range demo {
		u := demo[i]
		if err := store.CreateUser(&u); err != nil {
			if errors.Is(err, repository.ErrEmailTaken) {
				fmt.Printf("user already present: %s\n", u.Email)
				continue
			}
			log.Fatalf("failed to seed user %s: %v", u.Email, err)
		}
		fmt.Printf("seeded user: id=%s email=%s role=%s password=%s\n", u.ID, u.Email, u.Role, u.Password)
	}

	books, err := store.GetAllBooks()
	if err != nil {
		log.Fatalf("failed to read books: %v", err)
	}
	fmt.Printf("catalogue holds %d books\n", len(books))
}

func openByteStore(ctx context.Context, cfg *config.Config) (kv.Store, func(), error) {
	switch cfg.StoreBackend {
	case "file":
		fs, err := kv.NewFile(cfg.DataDir)
		if err != nil {
			return nil, func() {}, err
		}
		return fs, func() {}, nil
	case "redis":
		client := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		return kv.NewRedis(client, cfg.StorePrefix), func() { _ = client.Close() }, nil
	case "postgres":
		pool, err := kv.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
		if err != nil {
			return nil, func() {}, err
		}
		return kv.NewPostgres(pool), pool.Close, nil
	default:
		// Seeding an in-memory store would be lost on exit.
		return nil, func() {}, fmt.Errorf("store backend %q cannot be seeded", cfg.StoreBackend)
	}
}
