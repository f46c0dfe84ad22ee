// FILE: internal/feature/gate.go
// Operation-level gate: commands/queries declare required features up front
package feature

import (
	"context"

	"commerce-saas-be/internal/pkg/logger"

	"github.com/google/uuid"
)

// Operation is implemented by any command or query that is feature-gated.
// The declaration is static; the gate consults it before the business logic
// runs, so a denied operation never executes partially.
type Operation interface {
	RequiredFeatures() []string
}

type Gate struct {
	cache  *Cache
	logger logger.ILogger
}

func NewGate(cache *Cache, log logger.ILogger) *Gate {
	return &Gate{cache: cache, logger: log}
}

// Check evaluates every required name and fails with the first disabled one
// in declaration order. Core names bypass the cache entirely.
func (g *Gate) Check(ctx context.Context, tenantId *uuid.UUID, required ...string) error {
	var denied string
	for _, name := range required {
		if g.cache.Catalog().IsCore(name) {
			continue
		}
		enabled, err := g.cache.IsEnabled(ctx, tenantId, name)
		if err != nil {
			return err
		}
		if !enabled && denied == "" {
			denied = name
		}
	}
	if denied != "" {
		g.logger.Info("FeatureGate", "Operation denied", map[string]interface{}{
			"feature":   denied,
			"tenant_id": tenantKey(tenantId),
		})
		return &NotAvailableError{Feature: denied}
	}
	return nil
}

// Execute runs fn only if every feature the operation declares is effective.
func (g *Gate) Execute(ctx context.Context, tenantId *uuid.UUID, op Operation, fn func(ctx context.Context) error) error {
	if err := g.Check(ctx, tenantId, op.RequiredFeatures()...); err != nil {
		return err
	}
	return fn(ctx)
}
