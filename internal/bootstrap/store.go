package bootstrap

import (
	"context"
	"fmt"
	"log"

	"github.com/soumyadeepdutta/tamperproof-users/internal/config"
	"github.com/soumyadeepdutta/tamperproof-users/internal/infrastructure/gateway"
)

// OpenStore logs in to the record store and, when a database name is
// configured, creates it if missing and switches the session to it.
func OpenStore(ctx context.Context, cfg config.Config) (*gateway.PgxStore, error) {
	store, err := gateway.Connect(ctx, gateway.Credentials{
		URL:      cfg.DatabaseURL,
		User:     cfg.DatabaseUser,
		Password: cfg.DatabasePassword,
	})
	if err != nil {
		return nil, err
	}

	if cfg.DatabaseName == "" {
		return store, nil
	}

	if err := gateway.IgnoreExists(store.CreateDatabase(ctx, cfg.DatabaseName)); err != nil {
		store.Close()
		return nil, fmt.Errorf("create database %s: %w", cfg.DatabaseName, err)
	}
	if err := store.UseDatabase(ctx, cfg.DatabaseName); err != nil {
		store.Close()
		return nil, fmt.Errorf("use database %s: %w", cfg.DatabaseName, err)
	}
	log.Printf("using database %s", cfg.DatabaseName)
	return store, nil
}
