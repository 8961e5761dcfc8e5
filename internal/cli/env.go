// Package cli implements the stagectl subcommands.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/jackc/pgx/v5/pgxpool"

	"agency_portal_backend/internal/events"
	"agency_portal_backend/platform/config"
	"agency_portal_backend/platform/db"
	"agency_portal_backend/platform/logger"
)

// env is what every subcommand needs: configuration, a logger writing to the
// command's stderr, and an event bus so services can be built unchanged.
type env struct {
	cfg *config.Config
	log *logger.Logger
	bus *events.InMemoryBus
}

func loadEnv(stderr io.Writer) (*env, error) {
	cfg, err := config.LoadCLI()
	if err != nil {
		return nil, err
	}
	log := logger.NewWithWriter(stderr, cfg.Env)
	return &env{cfg: cfg, log: log, bus: events.NewInMemoryBus(log)}, nil
}

func (e *env) connect(ctx context.Context) (*pgxpool.Pool, error) {
	pool, err := db.NewPool(ctx, e.cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return pool, nil
}
