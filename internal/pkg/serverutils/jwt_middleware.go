// FILE: internal/pkg/serverutils/jwt_middleware.go
package serverutils

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Roles issued by the external identity service.
const (
	RoleTenantAdmin   = "tenant_admin"
	RolePlatformAdmin = "platform_admin"
)

// JwtMiddleware requires a valid bearer token and stores its claims in
// locals. Platform admins carry no tenant_id claim.
func JwtMiddleware(ctx *fiber.Ctx) error {
	claims, err := parseClaims(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": err.Error()})
	}

	storeClaims(ctx, claims)
	return ctx.Next()
}

// TenantContextMiddleware extracts claims when a token is present but never
// rejects: anonymous callers proceed with no tenant context and resolve to
// catalog defaults downstream.
func TenantContextMiddleware(ctx *fiber.Ctx) error {
	if claims, err := parseClaims(ctx); err == nil {
		storeClaims(ctx, claims)
	}
	return ctx.Next()
}

// RequireRole guards a route group behind one of the listed roles.
func RequireRole(roles ...string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		role, _ := ctx.Locals("role").(string)
		for _, allowed := range roles {
			if role == allowed {
				return ctx.Next()
			}
		}
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Insufficient role"})
	}
}

// TenantIDFromLocals returns the caller's tenant, or nil for anonymous and
// platform-scope callers.
func TenantIDFromLocals(ctx *fiber.Ctx) *uuid.UUID {
	raw, ok := ctx.Locals("tenant_id").(string)
	if !ok || raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}

func parseClaims(ctx *fiber.Ctx) (jwt.MapClaims, error) {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Missing token")
	}
	tokenStr := authHeader[7:]

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid claims")
	}
	return claims, nil
}

func storeClaims(ctx *fiber.Ctx, claims jwt.MapClaims) {
	if v, ok := claims["user_id"].(string); ok {
		ctx.Locals("user_id", v)
	}
	if v, ok := claims["tenant_id"].(string); ok {
		ctx.Locals("tenant_id", v)
	}
	if v, ok := claims["role"].(string); ok {
		ctx.Locals("role", v)
	}
}
