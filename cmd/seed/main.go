// FILE: cmd/seed/main.go
// Seeds demo override rows: a platform-wide promotion rollout plus one demo
// tenant with the blog module switched off. Idempotent; safe to re-run.
package main

import (
	"context"
	"log"
	"os"

	"commerce-saas-be/internal/catalog"
	"commerce-saas-be/internal/repository/contract"
	"commerce-saas-be/internal/repository/implementation"
	"commerce-saas-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	cat := catalog.New(catalog.Definitions()...)
	repo := implementation.NewOverrideRepository(db, cat)
	ctx := context.Background()

	boolPtr := func(b bool) *bool { return &b }
	meta := map[string]interface{}{"actor": "seed", "source": "seed"}

	log.Println("Seeding platform-wide overrides...")

	// Promotions is opt-in by default; the demo environment enables it
	// platform-wide so coupon flows are exercisable out of the box.
	platformRows := []contract.UpsertOverrideParams{
		{FeatureName: catalog.ModulePromotions, IsAvailable: boolPtr(true), IsEnabled: boolPtr(true), Metadata: meta},
	}
	for _, row := range platformRows {
		if _, err := repo.Upsert(ctx, row); err != nil {
			log.Printf("Error seeding platform row for '%s': %v", row.FeatureName, err)
		} else {
			log.Printf("Seeded platform row: %s", row.FeatureName)
		}
	}

	tenantEnv := os.Getenv("SEED_TENANT_ID")
	if tenantEnv == "" {
		log.Println("SEED_TENANT_ID not set, skipping tenant overrides")
		return
	}
	tenantId, err := uuid.Parse(tenantEnv)
	if err != nil {
		log.Fatal("Error: SEED_TENANT_ID is not a valid UUID:", err)
	}

	log.Printf("Seeding overrides for tenant %s...", tenantId)

	tenantRows := []contract.UpsertOverrideParams{
		{TenantId: &tenantId, FeatureName: catalog.ModuleBlog, IsEnabled: boolPtr(false), Metadata: meta},
		{TenantId: &tenantId, FeatureName: catalog.FeatureProductInventory, IsEnabled: boolPtr(true), Metadata: meta},
	}
	for _, row := range tenantRows {
		if _, err := repo.Upsert(ctx, row); err != nil {
			log.Printf("Error seeding tenant row for '%s': %v", row.FeatureName, err)
		} else {
			log.Printf("Seeded tenant row: %s", row.FeatureName)
		}
	}

	log.Println("Seeding completed!")
}
