package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agency_portal_backend/internal/activity"
	"agency_portal_backend/internal/adapters"
	"agency_portal_backend/internal/countries"
	countryrepo "agency_portal_backend/internal/countries/repository"
	"agency_portal_backend/internal/events"
	apphttp "agency_portal_backend/internal/http"
	"agency_portal_backend/internal/http/router"
	"agency_portal_backend/internal/stages"
	stagerepo "agency_portal_backend/internal/stages/repository"
	stageservice "agency_portal_backend/internal/stages/service"
	"agency_portal_backend/migrations"
	"agency_portal_backend/platform/config"
	"agency_portal_backend/platform/db"
	"agency_portal_backend/platform/logger"
	"agency_portal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

// stores bundles the repositories selected by STORE_DRIVER.
type stores struct {
	stages    stagerepo.Repository
	countries countryrepo.Repository
	health    apphttp.HealthChecker
	close     func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr, "store", cfg.StoreDriver)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Error("failed to initialize stores", "error", err)
		panic("failed to initialize stores: " + err.Error())
	}
	defer st.close()

	stageStore, closeCache := stagerepo.WithCache(ctx, cfg, log, st.stages)
	defer closeCache()

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules
	// ========================================================================

	stagesModule := stages.NewModule(stageStore, eventBus, val, log)
	countriesModule := countries.NewModule(
		st.countries,
		adapters.NewStageCatalogReader(stageStore),
		eventBus,
		cfg,
		val,
		log,
	)
	activity.New(log).RegisterHandlers(eventBus)

	seed, err := catalogSeed(cfg)
	if err != nil {
		log.Error("failed to read catalog seed", "error", err)
		panic("failed to read catalog seed: " + err.Error())
	}
	if _, err := stagesModule.Seed(ctx, seed); err != nil {
		log.Error("failed to seed stage catalog", "error", err)
		panic("failed to seed stage catalog: " + err.Error())
	}

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   st.health,
		EventBus: eventBus,
		Modules: []apphttp.Module{
			stagesModule,
			countriesModule,
		},
	}

	engine := router.New(app)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GetShutdownTimeout())
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		eventBus.Wait()
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) (*stores, error) {
	if cfg.GetStoreDriver() == config.StoreDriverMemory {
		log.Warn("STORE_DRIVER=memory; data is lost on restart")
		return &stores{
			stages:    stagerepo.NewMemory(),
			countries: countryrepo.NewMemory(),
			close:     func() {},
		}, nil
	}

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	log.Info("database connection established")

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, pool, migrations.FS)
	}); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run database migrations: %w", err)
	}
	log.Info("database migrations complete")

	return &stores{
		stages:    stagerepo.New(pool),
		countries: countryrepo.New(pool),
		health:    db.NewPoolAdapter(pool),
		close:     pool.Close,
	}, nil
}

func catalogSeed(cfg config.CatalogConfig) ([]string, error) {
	if cfg.GetCatalogSeedFile() == "" {
		return stageservice.DefaultSeed, nil
	}
	return stageservice.LoadSeedFile(cfg.GetCatalogSeedFile())
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
