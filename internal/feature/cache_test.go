package feature

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"commerce-saas-be/internal/entity"
	"commerce-saas-be/internal/pkg/logger"
	"commerce-saas-be/internal/repository/contract"
	"commerce-saas-be/internal/repository/memory"

	"github.com/google/uuid"
)

// countingRepo counts store reads so tests can assert which lookups touch
// the override store at all.
type countingRepo struct {
	inner     contract.OverrideRepository
	listCalls int64
}

func (c *countingRepo) ListForTenant(ctx context.Context, tenantId *uuid.UUID) (map[string]*entity.TenantOverride, error) {
	atomic.AddInt64(&c.listCalls, 1)
	return c.inner.ListForTenant(ctx, tenantId)
}

func (c *countingRepo) Upsert(ctx context.Context, params contract.UpsertOverrideParams) (*entity.TenantOverride, error) {
	return c.inner.Upsert(ctx, params)
}

func (c *countingRepo) calls() int64 {
	return atomic.LoadInt64(&c.listCalls)
}

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

var _ logger.ILogger = nopLogger{}

func newTestCache(t *testing.T) (*Cache, *countingRepo, *memory.OverrideRepository) {
	t.Helper()
	cat := scenarioCatalog()
	store := memory.NewOverrideRepository(cat)
	repo := &countingRepo{inner: store}
	return NewCache(cat, repo, time.Minute, nopLogger{}), repo, store
}

func TestCacheCoreBypassTouchesNothing(t *testing.T) {
	cache, repo, _ := newTestCache(t)
	tenant := uuid.New()

	enabled, err := cache.IsEnabled(context.Background(), &tenant, "Core.Auth")
	if err != nil {
		t.Fatal(err)
	}
	if !enabled {
		t.Error("core module must be enabled")
	}
	if repo.calls() != 0 {
		t.Errorf("core check hit the store %d times, want 0", repo.calls())
	}
}

func TestCacheUnknownNameFailsOpen(t *testing.T) {
	cache, _, _ := newTestCache(t)
	tenant := uuid.New()

	enabled, err := cache.IsEnabled(context.Background(), &tenant, "NotARealFeature")
	if err != nil {
		t.Fatal(err)
	}
	if !enabled {
		t.Error("unknown feature must fail open")
	}

	st, err := cache.State(context.Background(), &tenant, "NotARealFeature")
	if err != nil {
		t.Fatal(err)
	}
	if !st.IsEffective || !st.IsAvailable || !st.IsEnabled {
		t.Errorf("unknown state should default all-true, got %+v", st)
	}
}

func TestCacheNoTenantSkipsStore(t *testing.T) {
	cache, repo, _ := newTestCache(t)

	states, err := cache.AllStates(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if repo.calls() != 0 {
		t.Errorf("no-tenant resolution hit the store %d times, want 0", repo.calls())
	}
	if !states["Content.Blog"].IsEffective {
		t.Error("no-tenant resolution should return catalog defaults")
	}
}

func TestCacheRequestAndSharedTiers(t *testing.T) {
	cache, repo, _ := newTestCache(t)
	tenant := uuid.New()

	// Same request: one store read serves any number of lookups.
	req1 := WithRequestScope(context.Background())
	for i := 0; i < 3; i++ {
		if _, err := cache.AllStates(req1, &tenant); err != nil {
			t.Fatal(err)
		}
	}
	if repo.calls() != 1 {
		t.Fatalf("store reads = %d, want 1 within a single request", repo.calls())
	}

	// New request: shared tier still holds the entry.
	req2 := WithRequestScope(context.Background())
	if _, err := cache.AllStates(req2, &tenant); err != nil {
		t.Fatal(err)
	}
	if repo.calls() != 1 {
		t.Fatalf("store reads = %d, want 1 across requests before invalidation", repo.calls())
	}

	// Invalidation forces the next request to resolve freshly.
	cache.Invalidate(&tenant)
	req3 := WithRequestScope(context.Background())
	if _, err := cache.AllStates(req3, &tenant); err != nil {
		t.Fatal(err)
	}
	if repo.calls() != 2 {
		t.Fatalf("store reads = %d, want 2 after invalidation", repo.calls())
	}
}

func TestCacheCoherenceAfterUpsertAndInvalidate(t *testing.T) {
	cache, _, store := newTestCache(t)
	tenant := uuid.New()

	// Warm the cache with defaults.
	if enabled, _ := cache.IsEnabled(WithRequestScope(context.Background()), &tenant, "Content.Blog"); !enabled {
		t.Fatal("expected default-enabled module")
	}

	if _, err := store.Upsert(context.Background(), contract.UpsertOverrideParams{
		TenantId:    &tenant,
		FeatureName: "Content.Blog",
		IsEnabled:   boolPtr(false),
	}); err != nil {
		t.Fatal(err)
	}
	cache.Invalidate(&tenant)

	enabled, err := cache.IsEnabled(WithRequestScope(context.Background()), &tenant, "Content.Blog")
	if err != nil {
		t.Fatal(err)
	}
	if enabled {
		t.Error("read after invalidation must reflect the mutation")
	}
}

func TestCachePopulationLocksAreReleased(t *testing.T) {
	cache, _, _ := newTestCache(t)

	for i := 0; i < 5; i++ {
		tenant := uuid.New()
		if _, err := cache.AllStates(context.Background(), &tenant); err != nil {
			t.Fatal(err)
		}
	}

	cache.mu.Lock()
	held := len(cache.inflight)
	cache.mu.Unlock()
	if held != 0 {
		t.Errorf("inflight locks retained = %d, want 0 after population", held)
	}
}

func TestCacheCanceledContextDoesNotPopulate(t *testing.T) {
	cache, repo, _ := newTestCache(t)
	tenant := uuid.New()

	canceled, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := cache.AllStates(canceled, &tenant); err == nil {
		t.Fatal("expected error from canceled context")
	}

	// A good lookup afterwards must hit the store again: nothing was cached.
	before := repo.calls()
	if _, err := cache.AllStates(context.Background(), &tenant); err != nil {
		t.Fatal(err)
	}
	if repo.calls() != before+1 {
		t.Error("canceled lookup must not seed the shared tier")
	}
}
