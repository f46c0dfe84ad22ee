// FILE: internal/pkg/serverutils/error_handler.go
package serverutils

import (
	"errors"

	"commerce-saas-be/internal/feature"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps typed service errors onto HTTP responses so
// controllers can simply return them. Gating denials become 403 problem
// details; validation failures of the toggle commands become 400/403/404.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var notAvailable *feature.NotAvailableError
		if errors.As(err, &notAvailable) {
			return ctx.Status(fiber.StatusForbidden).JSON(ProblemResponse(
				"Feature not available",
				notAvailable.Error(),
				"feature_not_available",
			))
		}

		switch {
		case errors.Is(err, feature.ErrFeatureUnknown):
			return ctx.Status(fiber.StatusNotFound).JSON(ProblemResponse(
				"Unknown feature", err.Error(), "feature_unknown"))
		case errors.Is(err, feature.ErrCoreModuleProtected):
			return ctx.Status(fiber.StatusForbidden).JSON(ProblemResponse(
				"Core module protected", err.Error(), "core_module_protected"))
		case errors.Is(err, feature.ErrParentUnavailable):
			return ctx.Status(fiber.StatusConflict).JSON(ProblemResponse(
				"Parent module unavailable", err.Error(), "parent_module_unavailable"))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, err.Error()))
	}
}
