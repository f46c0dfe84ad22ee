package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"commerce-saas-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// redisChannel carries hub messages between instances so a tenant's admins
// connected to different replicas all receive the refetch hint.
const redisChannel = "cluster_events"

// Hub tracks live connections grouped by tenant. Each tenant is one
// subscriber group; a broadcast targets every connection in the group.
type Hub struct {
	// tenant group -> connections (multi-tab / multi-admin)
	groups map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Redis connection for cross-instance fan-out; nil runs single-instance.
	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		groups:     make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.groups[client.TenantID] = append(h.groups[client.TenantID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"tenant_id": client.TenantID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.groups[client.TenantID]; ok {
				for i, c := range clients {
					if c == client {
						h.groups[client.TenantID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.groups[client.TenantID]) == 0 {
					delete(h.groups, client.TenantID)
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastToTenant delivers payload to every local connection in the
// tenant's group and republishes it over Redis for sibling instances.
func (h *Hub) BroadcastToTenant(tenantID uuid.UUID, payload []byte) {
	h.deliverLocal(tenantID, payload)

	if h.rdb != nil {
		envelope, _ := json.Marshal(map[string]interface{}{
			"target_tenant_id": tenantID.String(),
			"message":          json.RawMessage(payload),
		})
		h.rdb.Publish(context.Background(), redisChannel, envelope)
	}
}

func (h *Hub) deliverLocal(tenantID uuid.UUID, payload []byte) {
	h.mu.RLock()
	clients := h.groups[tenantID]
	h.mu.RUnlock()

	for _, client := range clients {
		select {
		case client.Send <- payload:
		default:
			// Slow consumer: drop the connection rather than block the hub.
			// The unregister path owns closing Send; closing here too would
			// close the channel twice.
			h.logger.Warn("Hub", "Client send buffer full, dropping connection", map[string]interface{}{"tenant_id": tenantID})
			h.unregister <- client
		}
	}
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, redisChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var envelope struct {
			TargetTenantID string          `json:"target_tenant_id"`
			Message        json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &envelope); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		tenantID, err := uuid.Parse(envelope.TargetTenantID)
		if err != nil {
			continue
		}
		h.deliverLocal(tenantID, envelope.Message)
	}
}
