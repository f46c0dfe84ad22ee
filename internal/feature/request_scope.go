// FILE: internal/feature/request_scope.go
package feature

import (
	"context"

	"commerce-saas-be/internal/entity"
)

type requestScopeKey struct{}

// RequestScope is the per-request cache tier: a plain map created when a
// request starts and discarded with it. Never shared across requests, so no
// locking is needed.
type RequestScope struct {
	states map[string]map[string]entity.EffectiveFeatureState // tenant key -> states
}

// WithRequestScope installs a fresh request-scoped tier on the context.
// Middleware calls this once per inbound request.
func WithRequestScope(ctx context.Context) context.Context {
	return context.WithValue(ctx, requestScopeKey{}, &RequestScope{
		states: make(map[string]map[string]entity.EffectiveFeatureState),
	})
}

// scopeFrom returns the request tier, or nil for callers outside a request
// (background jobs, tests); the cache then skips straight to the shared tier.
func scopeFrom(ctx context.Context) *RequestScope {
	rs, _ := ctx.Value(requestScopeKey{}).(*RequestScope)
	return rs
}

func (rs *RequestScope) get(key string) (map[string]entity.EffectiveFeatureState, bool) {
	if rs == nil {
		return nil, false
	}
	m, ok := rs.states[key]
	return m, ok
}

func (rs *RequestScope) put(key string, states map[string]entity.EffectiveFeatureState) {
	if rs == nil {
		return
	}
	rs.states[key] = states
}
