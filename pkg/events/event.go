package events

import (
	"time"

	"github.com/google/uuid"
)

// Event is the contract every system event satisfies.
type Event interface {
	// EventType returns the unique tag for this event (e.g. "features_updated").
	EventType() string

	// Payload returns the data carried by the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is a plain implementation for events with no extra behavior.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// TypeFeaturesUpdated tags the refetch hint sent to a tenant's subscribers
// after a feature override mutation. It carries no state beyond the tenant:
// clients react by re-fetching their current feature map.
const TypeFeaturesUpdated = "features_updated"

// NewFeaturesUpdated builds the change notification for one tenant. A nil
// tenant marks a platform-scope change.
func NewFeaturesUpdated(tenantId *uuid.UUID) BaseEvent {
	data := map[string]interface{}{}
	if tenantId != nil {
		data["tenant_id"] = tenantId.String()
	}
	return BaseEvent{
		Type:       TypeFeaturesUpdated,
		Data:       data,
		OccurredAt: time.Now(),
	}
}
