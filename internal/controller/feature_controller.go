// FILE: internal/controller/feature_controller.go
// Controller for the feature gating endpoints
package controller

import (
	"commerce-saas-be/internal/dto"
	"commerce-saas-be/internal/pkg/serverutils"
	"commerce-saas-be/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// platformScope in the tenantId path position addresses the platform-wide
// (tenant_id NULL) override row.
const platformScope = "platform"

type FeatureController interface {
	RegisterRoutes(api fiber.Router)
}

type featureController struct {
	featureService service.FeatureService
	validate       *validator.Validate
}

func NewFeatureController(featureService service.FeatureService) FeatureController {
	return &featureController{
		featureService: featureService,
		validate:       validator.New(),
	}
}

func (c *featureController) RegisterRoutes(api fiber.Router) {
	features := api.Group("/features")

	// Anonymous callers resolve to catalog defaults.
	features.Get("/current-tenant", serverutils.TenantContextMiddleware, c.GetCurrentTenant)

	features.Get("/catalog",
		serverutils.JwtMiddleware,
		serverutils.RequireRole(serverutils.RolePlatformAdmin, serverutils.RoleTenantAdmin),
		c.GetCatalog)

	features.Get("/tenant/:tenantId",
		serverutils.JwtMiddleware,
		serverutils.RequireRole(serverutils.RolePlatformAdmin),
		c.GetTenantFeatures)

	features.Put("/tenant/:tenantId/availability",
		serverutils.JwtMiddleware,
		serverutils.RequireRole(serverutils.RolePlatformAdmin),
		c.SetAvailability)

	features.Put("/toggle",
		serverutils.JwtMiddleware,
		serverutils.RequireRole(serverutils.RoleTenantAdmin),
		c.Toggle)
}

// GetCurrentTenant returns the resolved state map for the caller's tenant.
// @Summary Current tenant feature states
// @Tags Features
// @Produce json
// @Success 200 {object} map[string]dto.EffectiveStateResponse
// @Router /api/features/current-tenant [get]
func (c *featureController) GetCurrentTenant(ctx *fiber.Ctx) error {
	tenantId := serverutils.TenantIDFromLocals(ctx)

	states, err := c.featureService.CurrentTenantStates(ctx.UserContext(), tenantId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Feature states retrieved", states))
}

// GetCatalog returns the full module/feature catalog definitions.
// @Summary Feature catalog
// @Tags Features
// @Security BearerAuth
// @Produce json
// @Success 200 {object} []dto.ModuleDefinitionResponse
// @Router /api/features/catalog [get]
func (c *featureController) GetCatalog(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Catalog retrieved", c.featureService.Catalog(ctx.UserContext())))
}

// GetTenantFeatures returns the catalog merged with one tenant's states.
// @Summary Tenant feature overview
// @Tags Features
// @Security BearerAuth
// @Produce json
// @Success 200 {object} []dto.TenantModuleResponse
// @Router /api/features/tenant/{tenantId} [get]
func (c *featureController) GetTenantFeatures(ctx *fiber.Ctx) error {
	tenantId, err := parseTenantParam(ctx)
	if err != nil {
		return err
	}

	modules, err := c.featureService.TenantFeatures(ctx.UserContext(), tenantId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Tenant features retrieved", modules))
}

// SetAvailability upserts the platform-level availability override.
// @Summary Set feature availability
// @Tags Features
// @Security BearerAuth
// @Accept json
// @Produce json
// @Router /api/features/tenant/{tenantId}/availability [put]
func (c *featureController) SetAvailability(ctx *fiber.Ctx) error {
	tenantId, err := parseTenantParam(ctx)
	if err != nil {
		return err
	}

	var req dto.SetAvailabilityRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := c.validate.Struct(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	actor, _ := ctx.Locals("user_id").(string)
	if err := c.featureService.SetAvailability(ctx.UserContext(), tenantId, req, actor); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Availability updated", nil))
}

// Toggle upserts the caller's own tenant-level enablement override.
// @Summary Toggle a feature for the caller's tenant
// @Tags Features
// @Security BearerAuth
// @Accept json
// @Produce json
// @Router /api/features/toggle [put]
func (c *featureController) Toggle(ctx *fiber.Ctx) error {
	tenantId := serverutils.TenantIDFromLocals(ctx)
	if tenantId == nil {
		return ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(403, "Token carries no tenant context"))
	}

	var req dto.ToggleFeatureRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := c.validate.Struct(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	actor, _ := ctx.Locals("user_id").(string)
	if err := c.featureService.Toggle(ctx.UserContext(), *tenantId, req, actor); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Feature toggled", nil))
}

func parseTenantParam(ctx *fiber.Ctx) (*uuid.UUID, error) {
	raw := ctx.Params("tenantId")
	if raw == platformScope {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid tenant ID")
	}
	return &id, nil
}
