package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/journeycircle/api/internal/generation"
	"github.com/journeycircle/api/internal/model"
	"github.com/journeycircle/api/pkg/response"
)

// AIHandler exposes the generation lifecycle over HTTP. Every operation acts
// on the wizard session identified by the X-Session-ID header.
type AIHandler struct {
	controller *generation.Controller
	validator  *validator.Validate
}

func NewAIHandler(controller *generation.Controller, v *validator.Validate) *AIHandler {
	return &AIHandler{
		controller: controller,
		validator:  v,
	}
}

// CheckStatus handles GET /api/ai/check-status
func (h *AIHandler) CheckStatus(c *fiber.Ctx) error {
	return response.OK(c, h.controller.CheckStatus())
}

// GenerateProblemTitles handles POST /api/ai/generate-problem-titles
func (h *AIHandler) GenerateProblemTitles(c *fiber.Ctx) error {
	sid := sessionID(c)
	if sid == "" {
		return response.ValidationError(c, "Session ID is required", nil)
	}

	var req model.ProblemTitlesRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ValidationError(c, "Invalid request body", nil)
	}
	if err := h.validator.Struct(&req); err != nil {
		return response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	}

	result, err := h.controller.GenerateProblemTitles(c.Context(), sid, &req)
	if err != nil {
		return handleGenerationError(c, err)
	}
	return response.OK(c, result)
}

// GenerateSolutionTitles handles POST /api/ai/generate-solution-titles
func (h *AIHandler) GenerateSolutionTitles(c *fiber.Ctx) error {
	sid := sessionID(c)
	if sid == "" {
		return response.ValidationError(c, "Session ID is required", nil)
	}

	var req model.SolutionTitlesRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ValidationError(c, "Invalid request body", nil)
	}
	if err := h.validator.Struct(&req); err != nil {
		return response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	}

	result, err := h.controller.GenerateSolutionTitles(c.Context(), sid, &req)
	if err != nil {
		return handleGenerationError(c, err)
	}
	return response.OK(c, result)
}

// GenerateAllSolutions handles POST /api/ai/generate-all-solutions
func (h *AIHandler) GenerateAllSolutions(c *fiber.Ctx) error {
	sid := sessionID(c)
	if sid == "" {
		return response.ValidationError(c, "Session ID is required", nil)
	}

	var req model.AllSolutionsRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ValidationError(c, "Invalid request body", nil)
	}
	if err := h.validator.Struct(&req); err != nil {
		return response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	}

	result, err := h.controller.GenerateAllSolutions(c.Context(), sid, &req)
	if err != nil {
		return handleGenerationError(c, err)
	}
	return response.OK(c, result)
}

// GenerateOutline handles POST /api/ai/generate-outline
func (h *AIHandler) GenerateOutline(c *fiber.Ctx) error {
	sid := sessionID(c)
	if sid == "" {
		return response.ValidationError(c, "Session ID is required", nil)
	}

	var req model.OutlineRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ValidationError(c, "Invalid request body", nil)
	}
	if err := h.validator.Struct(&req); err != nil {
		return response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	}

	result, err := h.controller.GenerateOutline(c.Context(), sid, &req)
	if err != nil {
		return handleGenerationError(c, err)
	}
	return response.OK(c, result)
}

// ReviseOutline handles POST /api/ai/revise-outline
func (h *AIHandler) ReviseOutline(c *fiber.Ctx) error {
	sid := sessionID(c)
	if sid == "" {
		return response.ValidationError(c, "Session ID is required", nil)
	}

	var req model.ReviseOutlineRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ValidationError(c, "Invalid request body", nil)
	}
	if err := h.validator.Struct(&req); err != nil {
		return response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	}

	result, err := h.controller.ReviseOutline(c.Context(), sid, &req)
	if err != nil {
		return handleGenerationError(c, err)
	}
	return response.OK(c, result)
}

// GenerateContent handles POST /api/ai/generate-content
func (h *AIHandler) GenerateContent(c *fiber.Ctx) error {
	sid := sessionID(c)
	if sid == "" {
		return response.ValidationError(c, "Session ID is required", nil)
	}

	var req model.ContentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ValidationError(c, "Invalid request body", nil)
	}
	if err := h.validator.Struct(&req); err != nil {
		return response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	}

	result, err := h.controller.GenerateContent(c.Context(), sid, &req)
	if err != nil {
		return handleGenerationError(c, err)
	}
	return response.OK(c, result)
}

// ReviseContent handles POST /api/ai/revise-content
func (h *AIHandler) ReviseContent(c *fiber.Ctx) error {
	sid := sessionID(c)
	if sid == "" {
		return response.ValidationError(c, "Session ID is required", nil)
	}

	var req model.ReviseContentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ValidationError(c, "Invalid request body", nil)
	}
	if err := h.validator.Struct(&req); err != nil {
		return response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	}

	result, err := h.controller.ReviseContent(c.Context(), sid, &req)
	if err != nil {
		return handleGenerationError(c, err)
	}
	return response.OK(c, result)
}

// GenerateSlideImage handles POST /api/ai/generate-slide-image
func (h *AIHandler) GenerateSlideImage(c *fiber.Ctx) error {
	var req model.SlideImageRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ValidationError(c, "Invalid request body", nil)
	}
	if err := h.validator.Struct(&req); err != nil {
		return response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	}

	result, err := h.controller.GenerateSlideImage(c.Context(), &req)
	if err != nil {
		return handleGenerationError(c, err)
	}
	return response.OK(c, result)
}

// ManualMode handles POST /api/ai/manual-mode
func (h *AIHandler) ManualMode(c *fiber.Ctx) error {
	sid := sessionID(c)
	if sid == "" {
		return response.ValidationError(c, "Session ID is required", nil)
	}

	var req model.ManualModeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ValidationError(c, "Invalid request body", nil)
	}
	if req.ArtifactID.Kind == "" {
		return response.ValidationError(c, "Artifact ID is required", nil)
	}

	var err error
	switch {
	case !req.Enabled:
		err = h.controller.BackToAI(c.Context(), sid, req.ArtifactID)
	case req.Titles != nil || req.Text != "":
		err = h.controller.SetManualPayload(c.Context(), sid, req.ArtifactID, req.Titles, req.Text)
	default:
		err = h.controller.EnableManual(c.Context(), sid, req.ArtifactID)
	}
	if err != nil {
		return handleGenerationError(c, err)
	}
	return response.OK(c, fiber.Map{"success": true})
}

// Cancel handles POST /api/ai/cancel
func (h *AIHandler) Cancel(c *fiber.Ctx) error {
	sid := sessionID(c)
	if sid == "" {
		return response.ValidationError(c, "Session ID is required", nil)
	}

	var req model.CancelRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ValidationError(c, "Invalid request body", nil)
	}
	if req.ArtifactID.Kind == "" {
		return response.ValidationError(c, "Artifact ID is required", nil)
	}

	if err := h.controller.Cancel(c.Context(), sid, req.ArtifactID); err != nil {
		return handleGenerationError(c, err)
	}
	return response.OK(c, fiber.Map{"success": true})
}
