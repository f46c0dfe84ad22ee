package bootstrap

import (
	"log"

	"commerce-saas-be/internal/catalog"
	"commerce-saas-be/internal/config"
	"commerce-saas-be/internal/controller"
	"commerce-saas-be/internal/feature"
	"commerce-saas-be/internal/handler"
	"commerce-saas-be/internal/pkg/logger"
	"commerce-saas-be/internal/repository/implementation"
	"commerce-saas-be/internal/service"
	"commerce-saas-be/internal/websocket"
	pktNats "commerce-saas-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Container is the composition root. Everything is wired explicitly here;
// catalog construction panics on a duplicate name, halting startup.
type Container struct {
	// HTTP surface
	FeatureController controller.FeatureController

	// Realtime / events (exposed for main.go to run)
	FeatureEventsHandler *handler.FeatureEventsHandler
	WebSocketHub         *websocket.Hub

	// Enforcement points for gated route groups elsewhere in the platform
	FeatureGate  *feature.Gate
	FeatureCache *feature.Cache

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// Static module registry; duplicate names abort startup by design.
	cat := catalog.New(catalog.Definitions()...)

	// In-process event bus carrying cache invalidation events.
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)

	// Gating core
	overrideRepo := implementation.NewOverrideRepository(db, cat)
	featureCache := feature.NewCache(cat, overrideRepo, cfg.Feature.CacheTTL, sysLogger)
	invalidator := feature.NewInvalidator(featureCache, pubSub, sysLogger)
	featureGate := feature.NewGate(featureCache, sysLogger)

	featureService := service.NewFeatureService(cat, overrideRepo, featureCache, invalidator)
	featureController := controller.NewFeatureController(featureService)

	// NATS for external fan-out; degraded mode without it is acceptable.
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}

	// Redis for cross-instance websocket fan-out; nil runs single-instance.
	var rdb *redis.Client
	if opt, err := redis.ParseURL(cfg.App.RedisURL); err == nil {
		rdb = redis.NewClient(opt)
	} else {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Hub runs single-instance", err)
	}

	hub := websocket.NewHub(rdb, sysLogger)
	eventsHandler := handler.NewFeatureEventsHandler(pubSub, hub, natsPub, sysLogger)

	return &Container{
		FeatureController:    featureController,
		FeatureEventsHandler: eventsHandler,
		WebSocketHub:         hub,
		FeatureGate:          featureGate,
		FeatureCache:         featureCache,
		Logger:               sysLogger,
	}
}
