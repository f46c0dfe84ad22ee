// FILE: internal/handler/feature_events_handler.go
// Bridges feature invalidation events to websocket groups and NATS
package handler

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"commerce-saas-be/internal/feature"
	"commerce-saas-be/internal/pkg/logger"
	internalWS "commerce-saas-be/internal/websocket"
	"commerce-saas-be/pkg/events"
	pktNats "commerce-saas-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// FeatureEventsHandler consumes features_updated events from the in-process
// bus, pushes the refetch hint to the tenant's live connections and
// republishes to NATS for sibling services.
type FeatureEventsHandler struct {
	pubSub    *gochannel.GoChannel
	hub       *internalWS.Hub
	publisher *pktNats.Publisher
	logger    logger.ILogger
}

func NewFeatureEventsHandler(pubSub *gochannel.GoChannel, hub *internalWS.Hub, pub *pktNats.Publisher, log logger.ILogger) *FeatureEventsHandler {
	return &FeatureEventsHandler{
		pubSub:    pubSub,
		hub:       hub,
		publisher: pub,
		logger:    log,
	}
}

// Run subscribes to the invalidation topic and processes events until ctx is
// canceled. Runs on its own goroutine, started by main.
func (h *FeatureEventsHandler) Run(ctx context.Context) error {
	messages, err := h.pubSub.Subscribe(ctx, feature.TopicFeaturesUpdated)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			h.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (h *FeatureEventsHandler) processMessage(ctx context.Context, msg *message.Message) {
	// Refetch hints carry nothing re-processable; malformed ones are acked
	// away instead of retried forever.
	defer msg.Ack()

	var payload struct {
		TenantId string `json:"tenant_id"`
	}
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		h.logger.Error("FeatureEvents", "Failed to unmarshal event", map[string]interface{}{"error": err.Error()})
		return
	}

	hint, _ := json.Marshal(map[string]string{"type": events.TypeFeaturesUpdated})

	if payload.TenantId != "" {
		if tenantID, err := uuid.Parse(payload.TenantId); err == nil {
			h.hub.BroadcastToTenant(tenantID, hint)
		}
	}

	if h.publisher != nil {
		evt := events.BaseEvent{
			Type:       events.TypeFeaturesUpdated,
			Data:       map[string]interface{}{"tenant_id": payload.TenantId},
			OccurredAt: time.Now(),
		}
		if err := h.publisher.Publish(ctx, evt); err != nil {
			// External fan-out is best-effort; local subscribers were served.
			h.logger.Warn("FeatureEvents", "NATS republish failed", map[string]interface{}{"error": err.Error()})
		}
	}
}

// ServeWs upgrades the connection after validating the tenant claim; the
// connection joins that tenant's subscriber group.
func (h *FeatureEventsHandler) ServeWs(c *fiber.Ctx) error {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}
	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token (Query 'token' or Header 'Authorization')"})
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		h.logger.Warn("FeatureEvents", "Invalid token in WS handshake", map[string]interface{}{"error": err})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}

	tenantIDStr, ok := claims["tenant_id"].(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token missing tenant_id"})
	}
	tenantID, err := uuid.Parse(tenantIDStr)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid tenant ID format in token"})
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("FeatureEvents", "WebSocket session started", map[string]interface{}{"tenant_id": tenantID})
			internalWS.ServeWs(h.hub, conn, tenantID)
			h.logger.Info("FeatureEvents", "WebSocket session ended", map[string]interface{}{"tenant_id": tenantID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

// RegisterRoutes registers the realtime endpoint.
func (h *FeatureEventsHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws", h.ServeWs)
}
