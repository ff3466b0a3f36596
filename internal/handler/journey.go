package handler

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/journeycircle/api/internal/generation"
	"github.com/journeycircle/api/internal/model"
	"github.com/journeycircle/api/internal/service"
	"github.com/journeycircle/api/internal/store"
	"github.com/journeycircle/api/pkg/response"
)

// JourneyHandler exposes service areas, journey circles and asset operations
type JourneyHandler struct {
	service    *service.JourneyService
	controller *generation.Controller
	validator  *validator.Validate
}

func NewJourneyHandler(svc *service.JourneyService, controller *generation.Controller, v *validator.Validate) *JourneyHandler {
	return &JourneyHandler{
		service:    svc,
		controller: controller,
		validator:  v,
	}
}

// CreateServiceArea handles POST /api/service-areas
func (h *JourneyHandler) CreateServiceArea(c *fiber.Ctx) error {
	var req model.CreateServiceAreaRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ValidationError(c, "Invalid request body", nil)
	}
	if err := h.validator.Struct(&req); err != nil {
		return response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	}

	result, err := h.service.CreateServiceArea(c.Context(), &req)
	if err != nil {
		return response.ServiceError(c, err.Error())
	}
	return response.Created(c, result)
}

// GetServiceArea handles GET /api/service-areas/:id
func (h *JourneyHandler) GetServiceArea(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.ValidationError(c, "Invalid service area id", nil)
	}

	area, err := h.service.GetServiceArea(c.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return response.NotFound(c, "Service area not found")
		}
		return response.ServiceError(c, err.Error())
	}
	return response.OK(c, area)
}

// ListServiceAreas handles GET /api/service-areas?client_id=N
func (h *JourneyHandler) ListServiceAreas(c *fiber.Ctx) error {
	clientID, err := strconv.ParseInt(c.Query("client_id"), 10, 64)
	if err != nil {
		return response.ValidationError(c, "client_id is required", nil)
	}

	areas, err := h.service.ListServiceAreas(c.Context(), clientID)
	if err != nil {
		return response.ServiceError(c, err.Error())
	}
	return response.OK(c, areas)
}

// EnsureCircle handles POST /api/service-areas/:id/journey-circle. Creating
// is idempotent; a second call returns the existing circle with 200.
func (h *JourneyHandler) EnsureCircle(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.ValidationError(c, "Invalid service area id", nil)
	}

	circle, created, err := h.service.EnsureCircle(c.Context(), id)
	if err != nil {
		return response.ServiceError(c, err.Error())
	}
	if created {
		return response.Created(c, circle)
	}
	return response.OK(c, circle)
}

// ListProblems handles GET /api/journey-circles/:id/problems
func (h *JourneyHandler) ListProblems(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.ValidationError(c, "Invalid journey circle id", nil)
	}

	problems, err := h.service.ListProblems(c.Context(), id)
	if err != nil {
		return response.ServiceError(c, err.Error())
	}
	return response.OK(c, problems)
}

// ListAssets handles GET /api/journey-circles/:id/assets?linked_to_type=&linked_to_id=
func (h *JourneyHandler) ListAssets(c *fiber.Ctx) error {
	linkedType := model.LinkedToType(c.Query("linked_to_type"))
	if linkedType != model.LinkedToProblem && linkedType != model.LinkedToSolution {
		return response.ValidationError(c, "linked_to_type must be problem or solution", nil)
	}
	linkedID, err := strconv.ParseInt(c.Query("linked_to_id"), 10, 64)
	if err != nil {
		return response.ValidationError(c, "linked_to_id is required", nil)
	}

	assets, err := h.service.ListAssets(c.Context(), linkedType, linkedID)
	if err != nil {
		return response.ServiceError(c, err.Error())
	}
	return response.OK(c, assets)
}

// GetAsset handles GET /api/journey-circles/:id/assets/:assetId
func (h *JourneyHandler) GetAsset(c *fiber.Ctx) error {
	assetID, err := paramID(c, "assetId")
	if err != nil {
		return response.ValidationError(c, "Invalid asset id", nil)
	}

	asset, err := h.service.GetAsset(c.Context(), assetID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return response.NotFound(c, "Asset not found")
		}
		return response.ServiceError(c, err.Error())
	}
	return response.OK(c, asset)
}

// ApproveAsset handles POST /api/journey-circles/:id/assets/:assetId/approve
func (h *JourneyHandler) ApproveAsset(c *fiber.Ctx) error {
	sid := sessionID(c)
	if sid == "" {
		return response.ValidationError(c, "Session ID is required", nil)
	}
	assetID, err := paramID(c, "assetId")
	if err != nil {
		return response.ValidationError(c, "Invalid asset id", nil)
	}

	result, err := h.controller.Approve(c.Context(), sid, assetID)
	if err != nil {
		return handleGenerationError(c, err)
	}
	return response.OK(c, result)
}

// SetAssetURLs handles PUT /api/journey-circles/:id/problems/:problemId/asset-urls
func (h *JourneyHandler) SetAssetURLs(c *fiber.Ctx) error {
	sid := sessionID(c)
	if sid == "" {
		return response.ValidationError(c, "Session ID is required", nil)
	}
	problemID, err := paramID(c, "problemId")
	if err != nil {
		return response.ValidationError(c, "Invalid problem id", nil)
	}

	var req model.AssetURLsRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ValidationError(c, "Invalid request body", nil)
	}
	if err := h.validator.Struct(&req); err != nil {
		return response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	}

	if err := h.service.SyncAssetURLs(c.Context(), sid, problemID, req.AssetURLs); err != nil {
		return response.ValidationError(c, err.Error(), nil)
	}
	return response.OK(c, fiber.Map{"success": true})
}

func paramID(c *fiber.Ctx, name string) (int64, error) {
	return strconv.ParseInt(c.Params(name), 10, 64)
}
