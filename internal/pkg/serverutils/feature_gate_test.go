package serverutils

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"commerce-saas-be/internal/catalog"
	"commerce-saas-be/internal/feature"
	"commerce-saas-be/internal/repository/contract"
	"commerce-saas-be/internal/repository/memory"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

// newGatedApp wires a fiber app the way server.New does: request scope first,
// error handler next, then a route guarded by the feature gate. The tenant is
// injected via locals in place of the JWT middleware.
func newGatedApp(t *testing.T, tenant uuid.UUID, store *memory.OverrideRepository, cat *catalog.Catalog) *fiber.App {
	t.Helper()

	cache := feature.NewCache(cat, store, time.Minute, nopLogger{})
	gate := feature.NewGate(cache, nopLogger{})

	app := fiber.New()
	app.Use(FeatureScopeMiddleware())
	app.Use(ErrorHandlerMiddleware())
	app.Use(func(ctx *fiber.Ctx) error {
		ctx.Locals("tenant_id", tenant.String())
		return ctx.Next()
	})
	app.Get("/blog/posts",
		RequireFeatures(gate, catalog.ModuleBlog),
		func(ctx *fiber.Ctx) error {
			return ctx.JSON(SuccessResponse("ok", []string{}))
		})
	return app
}

func TestRequireFeaturesAllowsEnabledFeature(t *testing.T) {
	cat := catalog.New(catalog.Definitions()...)
	store := memory.NewOverrideRepository(cat)
	app := newGatedApp(t, uuid.New(), store, cat)

	resp, err := app.Test(httptest.NewRequest("GET", "/blog/posts", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireFeaturesRendersProblemDetails(t *testing.T) {
	cat := catalog.New(catalog.Definitions()...)
	store := memory.NewOverrideRepository(cat)
	tenant := uuid.New()

	disabled := false
	_, err := store.Upsert(context.Background(), contract.UpsertOverrideParams{
		TenantId:    &tenant,
		FeatureName: catalog.ModuleBlog,
		IsEnabled:   &disabled,
	})
	require.NoError(t, err)

	app := newGatedApp(t, tenant, store, cat)
	resp, err := app.Test(httptest.NewRequest("GET", "/blog/posts", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var problem map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &problem))
	assert.Equal(t, "feature_not_available", problem["code"])
	assert.Contains(t, problem["detail"], catalog.ModuleBlog)
}
