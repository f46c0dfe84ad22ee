package main

import (
	"context"
	"log"

	"commerce-saas-be/internal/bootstrap"
	"commerce-saas-be/internal/config"
	"commerce-saas-be/internal/server"
	"commerce-saas-be/internal/tracer"
	"commerce-saas-be/pkg/database"
)

func main() {
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)

	// Hub and event bridge run for the process lifetime.
	go container.WebSocketHub.Run()
	go func() {
		if err := container.FeatureEventsHandler.Run(context.Background()); err != nil {
			log.Printf("Feature events bridge error: %v", err)
		}
	}()

	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
