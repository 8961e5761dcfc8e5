package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"agency_portal_backend/internal/stages/domain"
	"agency_portal_backend/platform/cache"
	"agency_portal_backend/platform/config"
	"agency_portal_backend/platform/logger"
	"agency_portal_backend/platform/metrics"
)

// CatalogCacheKey is the redis key holding the serialised catalog.
const CatalogCacheKey = "stages:catalog"

type cachedStage struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// CachedRepo decorates a Repository with a cache-aside list in redis.
// Redis failures are logged and fall through to the inner repository.
type CachedRepo struct {
	inner  Repository
	client redis.UniversalClient
	ttl    time.Duration
	log    *logger.Logger
}

// NewCached wraps inner with a redis-backed catalog cache.
func NewCached(inner Repository, client redis.UniversalClient, ttl time.Duration, log *logger.Logger) *CachedRepo {
	return &CachedRepo{inner: inner, client: client, ttl: ttl, log: log}
}

var _ Repository = (*CachedRepo)(nil)

// WithCache wraps inner with the redis catalog cache when cfg enables it.
// A redis outage only disables the cache. The returned func releases the
// redis client.
func WithCache(ctx context.Context, cfg config.CatalogConfig, log *logger.Logger, inner Repository) (Repository, func()) {
	if !cfg.IsCatalogCacheEnabled() {
		log.Info("REDIS_URL not configured; catalog cache disabled")
		return inner, func() {}
	}

	client, err := cache.NewRedisClient(ctx, cfg.GetRedisURL())
	if err != nil {
		log.Error("failed to connect to redis; catalog cache disabled", "error", err)
		return inner, func() {}
	}
	log.Info("catalog cache enabled", "ttl", cfg.GetCatalogCacheTTL())
	return NewCached(inner, client, cfg.GetCatalogCacheTTL(), log), func() { _ = client.Close() }
}

// Create writes through and drops the cached list.
func (r *CachedRepo) Create(ctx context.Context, name string) (domain.Stage, error) {
	st, err := r.inner.Create(ctx, name)
	if err != nil {
		return domain.Stage{}, err
	}
	r.invalidate(ctx)
	return st, nil
}

// List serves from redis when possible.
func (r *CachedRepo) List(ctx context.Context) ([]domain.Stage, error) {
	if stages, ok := r.load(ctx); ok {
		return stages, nil
	}

	stages, err := r.inner.List(ctx)
	if err != nil {
		return nil, err
	}
	r.store(ctx, stages)
	return stages, nil
}

// Exists always asks the inner repository so assignment checks never see a
// stale catalog.
func (r *CachedRepo) Exists(ctx context.Context, name string) (bool, error) {
	return r.inner.Exists(ctx, name)
}

func (r *CachedRepo) load(ctx context.Context) ([]domain.Stage, bool) {
	raw, err := r.client.Get(ctx, CatalogCacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.IncCache("miss")
		} else {
			metrics.IncCache("error")
			r.log.Warn("catalog cache read failed", "error", err)
		}
		return nil, false
	}

	var cached []cachedStage
	if err := json.Unmarshal(raw, &cached); err != nil {
		metrics.IncCache("error")
		r.log.Warn("catalog cache entry corrupt", "error", err)
		return nil, false
	}

	metrics.IncCache("hit")
	stages := make([]domain.Stage, len(cached))
	for i, c := range cached {
		stages[i] = domain.Stage{Name: c.Name, CreatedAt: c.CreatedAt}
	}
	return stages, true
}

func (r *CachedRepo) store(ctx context.Context, stages []domain.Stage) {
	cached := make([]cachedStage, len(stages))
	for i, st := range stages {
		cached[i] = cachedStage{Name: st.Name, CreatedAt: st.CreatedAt}
	}
	raw, err := json.Marshal(cached)
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, CatalogCacheKey, raw, r.ttl).Err(); err != nil {
		r.log.Warn("catalog cache write failed", "error", err)
	}
}

func (r *CachedRepo) invalidate(ctx context.Context) {
	if err := r.client.Del(ctx, CatalogCacheKey).Err(); err != nil {
		r.log.Warn("catalog cache invalidation failed", "error", err)
	}
}
