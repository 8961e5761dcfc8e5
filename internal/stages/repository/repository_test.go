package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"agency_portal_backend/internal/stages/domain"
	"agency_portal_backend/platform/config"
	"agency_portal_backend/platform/logger"
)

type countingRepo struct {
	*MemoryRepo
	listCalls int
}

func (r *countingRepo) List(ctx context.Context) ([]domain.Stage, error) {
	r.listCalls++
	return r.MemoryRepo.List(ctx)
}

func newCachedForTest(t *testing.T) (*CachedRepo, *countingRepo, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	inner := &countingRepo{MemoryRepo: NewMemory()}
	return NewCached(inner, client, time.Minute, logger.New("development")), inner, mr
}

func TestMemoryRepoStartsWithPinnedStage(t *testing.T) {
	repo := NewMemory()

	ok, err := repo.Exists(context.Background(), domain.PinnedStage)
	if err != nil || !ok {
		t.Fatalf("expected pinned stage in fresh catalog, ok=%v err=%v", ok, err)
	}
}

func TestMemoryRepoRejectsDuplicate(t *testing.T) {
	repo := NewMemory()
	ctx := context.Background()

	if _, err := repo.Create(ctx, "Docs"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.Create(ctx, "Docs"); !errors.Is(err, domain.ErrDuplicateStage) {
		t.Fatalf("expected ErrDuplicateStage, got %v", err)
	}

	// case-sensitive identity
	if _, err := repo.Create(ctx, "docs"); err != nil {
		t.Fatalf("expected differently cased name to be accepted, got %v", err)
	}

	stages, _ := repo.List(ctx)
	names := make([]string, len(stages))
	for i, st := range stages {
		names[i] = st.Name
	}
	if strings.Join(names, ",") != "New,Docs,docs" {
		t.Fatalf("expected insertion order, got %v", names)
	}
}

func TestCachedRepoServesSecondListFromRedis(t *testing.T) {
	repo, inner, mr := newCachedForTest(t)
	ctx := context.Background()

	if _, err := repo.List(ctx); err != nil {
		t.Fatalf("first list: %v", err)
	}
	if !mr.Exists(CatalogCacheKey) {
		t.Fatal("expected catalog to be cached after first list")
	}
	if _, err := repo.List(ctx); err != nil {
		t.Fatalf("second list: %v", err)
	}

	if inner.listCalls != 1 {
		t.Fatalf("expected one inner list call, got %d", inner.listCalls)
	}
}

func TestCachedRepoInvalidatesOnCreate(t *testing.T) {
	repo, inner, mr := newCachedForTest(t)
	ctx := context.Background()

	_, _ = repo.List(ctx)
	if _, err := repo.Create(ctx, "Visa Filed"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if mr.Exists(CatalogCacheKey) {
		t.Fatal("expected cache key to be dropped after create")
	}

	stages, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list after create: %v", err)
	}
	if len(stages) != 2 || stages[1].Name != "Visa Filed" {
		t.Fatalf("expected fresh catalog with new stage, got %v", stages)
	}
	if inner.listCalls != 2 {
		t.Fatalf("expected inner list to be hit again, got %d calls", inner.listCalls)
	}
}

func TestCachedRepoFallsThroughWhenRedisIsDown(t *testing.T) {
	repo, inner, mr := newCachedForTest(t)
	mr.Close()

	stages, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("expected fall-through, got %v", err)
	}
	if len(stages) != 1 || inner.listCalls != 1 {
		t.Fatalf("expected inner catalog, got %v (calls %d)", stages, inner.listCalls)
	}
}

func TestWithCacheSkipsRedisWhenDisabled(t *testing.T) {
	inner := NewMemory()
	repo, closeCache := WithCache(context.Background(), &config.Config{CatalogCacheTTL: time.Minute}, logger.New("development"), inner)
	defer closeCache()

	if repo != Repository(inner) {
		t.Fatalf("expected inner repository without REDIS_URL, got %T", repo)
	}
}

func TestWithCacheFallsBackWhenRedisIsUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	inner := NewMemory()
	cfg := &config.Config{RedisURL: "redis://" + addr, CatalogCacheTTL: time.Minute}
	repo, closeCache := WithCache(context.Background(), cfg, logger.New("development"), inner)
	defer closeCache()

	if repo != Repository(inner) {
		t.Fatalf("expected inner repository when redis is down, got %T", repo)
	}
}

func TestWithCacheDropsCatalogAfterCreate(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()
	cfg := &config.Config{RedisURL: "redis://" + mr.Addr(), CatalogCacheTTL: time.Minute}

	repo, closeCache := WithCache(ctx, cfg, logger.New("development"), NewMemory())
	defer closeCache()
	if _, ok := repo.(*CachedRepo); !ok {
		t.Fatalf("expected cached repository, got %T", repo)
	}

	if _, err := repo.List(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}
	if !mr.Exists(CatalogCacheKey) {
		t.Fatal("expected catalog to be cached after list")
	}
	if _, err := repo.Create(ctx, "Docs"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if mr.Exists(CatalogCacheKey) {
		t.Fatal("expected cached catalog to be dropped after create")
	}
}

func TestCreateQueryIgnoresConflicts(t *testing.T) {
	if !strings.Contains(strings.ToLower(createStageQuery), "on conflict (name) do nothing") {
		t.Fatal("create must not raise on duplicate names; duplicates are detected by the missing row")
	}
}
