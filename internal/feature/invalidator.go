// FILE: internal/feature/invalidator.go
// Shared-cache eviction + change notification on override mutations
package feature

import (
	"context"
	"encoding/json"
	"fmt"

	"commerce-saas-be/internal/pkg/logger"
	"commerce-saas-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// TopicFeaturesUpdated carries invalidation events to in-process subscribers
// (the realtime handler fans them out to websocket clients and NATS).
const TopicFeaturesUpdated = "features.updated"

// Invalidator evicts the shared cache entry for a tenant and publishes the
// change event. Mutation paths call Invalidate synchronously after the store
// write commits; a publish failure fails the mutation so admins never see a
// success that left stale cached state behind.
type Invalidator struct {
	cache     *Cache
	publisher message.Publisher
	logger    logger.ILogger
}

func NewInvalidator(cache *Cache, publisher message.Publisher, log logger.ILogger) *Invalidator {
	return &Invalidator{
		cache:     cache,
		publisher: publisher,
		logger:    log,
	}
}

func (i *Invalidator) Invalidate(ctx context.Context, tenantId *uuid.UUID) error {
	i.cache.Invalidate(tenantId)

	evt := events.NewFeaturesUpdated(tenantId)
	payload, err := json.Marshal(evt.Payload())
	if err != nil {
		return fmt.Errorf("marshal features_updated event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_type", evt.EventType())
	msg.SetContext(ctx)

	if err := i.publisher.Publish(TopicFeaturesUpdated, msg); err != nil {
		return fmt.Errorf("publish features_updated: %w", err)
	}

	i.logger.Info("Invalidator", "Feature cache invalidated", map[string]interface{}{
		"tenant_id": tenantKey(tenantId),
	})
	return nil
}
