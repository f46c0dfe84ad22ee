// FILE: internal/feature/cache.go
// Two-tier feature state cache in front of the resolver
package feature

import (
	"context"
	"sync"
	"time"

	"commerce-saas-be/internal/catalog"
	"commerce-saas-be/internal/entity"
	"commerce-saas-be/internal/pkg/logger"
	"commerce-saas-be/internal/repository/contract"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

// DefaultTTL bounds how long a tenant's resolved states may be served without
// a fresh store read when no invalidation arrives.
const DefaultTTL = 5 * time.Minute

// noTenantKey is the shared-tier sentinel for anonymous / platform callers.
const noTenantKey = "__platform__"

// Cache serves effective feature states from a request-scoped map first, then
// a process-wide TTL cache, and only then resolves from the override store.
type Cache struct {
	cat    *catalog.Catalog
	repo   contract.OverrideRepository
	shared *gocache.Cache
	logger logger.ILogger

	mu       sync.Mutex
	inflight map[string]*sync.Mutex // per-tenant population locks
}

func NewCache(cat *catalog.Catalog, repo contract.OverrideRepository, ttl time.Duration, log logger.ILogger) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		cat:      cat,
		repo:     repo,
		shared:   gocache.New(ttl, 10*time.Minute),
		logger:   log,
		inflight: make(map[string]*sync.Mutex),
	}
}

func tenantKey(tenantId *uuid.UUID) string {
	if tenantId == nil {
		return noTenantKey
	}
	return tenantId.String()
}

// IsEnabled reports whether the named module/feature is effective for the
// tenant. Core names short-circuit true without touching either tier, and
// names missing from the catalog fail open so an unknown gate annotation
// never blocks unrelated functionality.
func (c *Cache) IsEnabled(ctx context.Context, tenantId *uuid.UUID, name string) (bool, error) {
	if c.cat.IsCore(name) {
		return true, nil
	}

	states, err := c.AllStates(ctx, tenantId)
	if err != nil {
		return false, err
	}

	st, ok := states[name]
	if !ok {
		c.logger.Warn("FeatureCache", "Unknown feature name, failing open", map[string]interface{}{"feature": name})
		return true, nil
	}
	return st.IsEffective, nil
}

// State returns the full resolved state for one name, defaulting to an
// all-true state when the name is unknown.
func (c *Cache) State(ctx context.Context, tenantId *uuid.UUID, name string) (entity.EffectiveFeatureState, error) {
	if c.cat.IsCore(name) {
		return entity.EffectiveFeatureState{IsAvailable: true, IsEnabled: true, IsEffective: true, IsCore: true}, nil
	}

	states, err := c.AllStates(ctx, tenantId)
	if err != nil {
		return entity.EffectiveFeatureState{}, err
	}

	if st, ok := states[name]; ok {
		return st, nil
	}
	return entity.EffectiveFeatureState{IsAvailable: true, IsEnabled: true, IsEffective: true, IsCore: c.cat.IsCore(name)}, nil
}

// AllStates returns the complete name -> state mapping for the tenant,
// populating both tiers on a miss. Concurrent misses for the same tenant
// resolve once; the stragglers pick the fresh entry up from the shared tier.
func (c *Cache) AllStates(ctx context.Context, tenantId *uuid.UUID) (map[string]entity.EffectiveFeatureState, error) {
	key := tenantKey(tenantId)
	scope := scopeFrom(ctx)

	if states, ok := scope.get(key); ok {
		return states, nil
	}

	if cached, ok := c.shared.Get(key); ok {
		states := cached.(map[string]entity.EffectiveFeatureState)
		scope.put(key, states)
		return states, nil
	}

	lock := c.tenantLock(key)
	lock.Lock()
	defer func() {
		lock.Unlock()
		c.releaseTenantLock(key, lock)
	}()

	// Re-check: another request may have populated while we waited.
	if cached, ok := c.shared.Get(key); ok {
		states := cached.(map[string]entity.EffectiveFeatureState)
		scope.put(key, states)
		return states, nil
	}

	var overrides map[string]*entity.TenantOverride
	if tenantId != nil {
		var err error
		overrides, err = c.repo.ListForTenant(ctx, tenantId)
		if err != nil {
			return nil, err
		}
	}
	// No tenant context: skip the store entirely, catalog defaults apply.

	// A canceled lookup must not seed the cache with a partial view.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	states := Resolve(c.cat, overrides)
	c.shared.SetDefault(key, states)
	scope.put(key, states)
	return states, nil
}

// Invalidate drops the shared-tier entry for the tenant. In-flight request
// scopes keep their view until their request ends; that window is accepted.
func (c *Cache) Invalidate(tenantId *uuid.UUID) {
	c.shared.Delete(tenantKey(tenantId))
}

// Catalog exposes the backing catalog for enforcement fast paths.
func (c *Cache) Catalog() *catalog.Catalog {
	return c.cat
}

func (c *Cache) tenantLock(key string) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	lock, ok := c.inflight[key]
	if !ok {
		lock = &sync.Mutex{}
		c.inflight[key] = lock
	}
	return lock
}

// releaseTenantLock drops the lock entry once population finished so the map
// does not retain one mutex per tenant forever. A waiter still holding the
// old pointer just re-checks the shared tier after acquiring it; at worst two
// stragglers resolve concurrently, which is safe.
func (c *Cache) releaseTenantLock(key string, lock *sync.Mutex) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inflight[key] == lock {
		delete(c.inflight, key)
	}
}
