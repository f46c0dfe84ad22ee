// FILE: internal/pkg/serverutils/feature_gate.go
package serverutils

import (
	"commerce-saas-be/internal/feature"

	"github.com/gofiber/fiber/v2"
)

// FeatureScopeMiddleware installs the request-scoped cache tier. Must run
// before any handler or gate that consults feature states.
func FeatureScopeMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		ctx.SetUserContext(feature.WithRequestScope(ctx.UserContext()))
		return ctx.Next()
	}
}

// RequireFeatures short-circuits a route group when any declared feature is
// not effective for the caller's tenant. The denial is returned as an error
// so ErrorHandlerMiddleware renders the 403 problem details.
func RequireFeatures(gate *feature.Gate, names ...string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		tenantId := TenantIDFromLocals(ctx)
		if err := gate.Check(ctx.UserContext(), tenantId, names...); err != nil {
			return err
		}
		return ctx.Next()
	}
}
