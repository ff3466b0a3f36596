package handler

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/journeycircle/api/internal/model"
	"github.com/journeycircle/api/internal/service"
	"github.com/journeycircle/api/internal/workflow"
	"github.com/journeycircle/api/pkg/response"
)

// WorkflowHandler exposes the wizard session state
type WorkflowHandler struct {
	sessions  *workflow.Store
	journeys  *service.JourneyService
	uploads   *service.UploadService
	validator *validator.Validate
}

func NewWorkflowHandler(sessions *workflow.Store, journeys *service.JourneyService, uploads *service.UploadService, v *validator.Validate) *WorkflowHandler {
	return &WorkflowHandler{
		sessions:  sessions,
		journeys:  journeys,
		uploads:   uploads,
		validator: v,
	}
}

// Get handles GET /api/workflow/:sessionId
func (h *WorkflowHandler) Get(c *fiber.Ctx) error {
	session, err := h.sessions.Get(c.Context(), c.Params("sessionId"))
	if err != nil {
		return response.ServiceError(c, err.Error())
	}
	return response.OK(c, session)
}

// Update handles PUT /api/workflow/:sessionId
func (h *WorkflowHandler) Update(c *fiber.Ctx) error {
	var req model.WorkflowUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ValidationError(c, "Invalid request body", nil)
	}
	if err := h.validator.Struct(&req); err != nil {
		return response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	}

	session, err := h.sessions.Update(c.Context(), c.Params("sessionId"), req.Field, func(s *model.WorkflowSession) error {
		return workflow.ApplyField(s, req.Field, req.Value)
	})
	if err != nil {
		return response.ValidationError(c, err.Error(), nil)
	}
	return response.OK(c, session)
}

// SelectProblems handles POST /api/workflow/:sessionId/select-problems.
// The session is the source of truth; the rows are pushed to the journey
// circle as well when one is linked.
func (h *WorkflowHandler) SelectProblems(c *fiber.Ctx) error {
	var req model.SelectProblemsRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ValidationError(c, "Invalid request body", nil)
	}
	if err := h.validator.Struct(&req); err != nil {
		return response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	}

	session, err := h.sessions.Update(c.Context(), c.Params("sessionId"), "selectedProblems", func(s *model.WorkflowSession) error {
		return workflow.SelectProblems(s, req.Problems)
	})
	if err != nil {
		return response.ValidationError(c, err.Error(), nil)
	}

	if session.JourneyCircleID != nil {
		if err := h.journeys.SaveSelectedProblems(c.Context(), *session.JourneyCircleID, req.Problems); err != nil {
			log.Printf("Failed to persist selected problems: %v", err)
		}
	}
	return response.OK(c, session)
}

// SelectSolution handles POST /api/workflow/:sessionId/select-solution
func (h *WorkflowHandler) SelectSolution(c *fiber.Ctx) error {
	var req model.SelectSolutionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ValidationError(c, "Invalid request body", nil)
	}
	if err := h.validator.Struct(&req); err != nil {
		return response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	}

	session, err := h.sessions.Update(c.Context(), c.Params("sessionId"), "selectedSolutions", func(s *model.WorkflowSession) error {
		return workflow.SelectSolution(s, req.ProblemID, req.Title)
	})
	if err != nil {
		return response.ValidationError(c, err.Error(), nil)
	}
	return response.OK(c, session)
}

// Reset handles DELETE /api/workflow/:sessionId
func (h *WorkflowHandler) Reset(c *fiber.Ctx) error {
	if err := h.sessions.Reset(c.Context(), c.Params("sessionId")); err != nil {
		return response.ServiceError(c, err.Error())
	}
	return response.NoContent(c)
}

// UploadAsset handles POST /api/workflow/:sessionId/assets. Accepts either a
// multipart file upload or a JSON body with inline HTML content.
func (h *WorkflowHandler) UploadAsset(c *fiber.Ctx) error {
	sid := c.Params("sessionId")

	var asset *model.UploadedAsset
	if file, err := c.FormFile("file"); err == nil {
		src, err := file.Open()
		if err != nil {
			return response.ValidationError(c, "Could not read uploaded file", nil)
		}
		defer src.Close()

		asset, err = h.uploads.UploadReferenceAsset(c.Context(), sid, file.Filename,
			file.Header.Get("Content-Type"), src, file.Size)
		if err != nil {
			return response.ServiceError(c, err.Error())
		}
	} else {
		var req struct {
			Name    string `json:"name"`
			Content string `json:"content"`
		}
		if err := c.BodyParser(&req); err != nil {
			return response.ValidationError(c, "Invalid request body", nil)
		}
		asset, err = h.uploads.AddHTMLContent(req.Name, req.Content)
		if err != nil {
			return response.ValidationError(c, err.Error(), nil)
		}
	}

	_, err := h.sessions.Update(c.Context(), sid, "existingAssets", func(s *model.WorkflowSession) error {
		s.ExistingAssets = append(s.ExistingAssets, *asset)
		return nil
	})
	if err != nil {
		return response.ServiceError(c, err.Error())
	}
	return response.Created(c, asset)
}

// DeleteAsset handles DELETE /api/workflow/:sessionId/assets/:assetId
func (h *WorkflowHandler) DeleteAsset(c *fiber.Ctx) error {
	sid := c.Params("sessionId")
	assetID := c.Params("assetId")

	var removed *model.UploadedAsset
	_, err := h.sessions.Update(c.Context(), sid, "existingAssets", func(s *model.WorkflowSession) error {
		kept := s.ExistingAssets[:0]
		for i := range s.ExistingAssets {
			if s.ExistingAssets[i].ID == assetID {
				a := s.ExistingAssets[i]
				removed = &a
				continue
			}
			kept = append(kept, s.ExistingAssets[i])
		}
		s.ExistingAssets = kept
		return nil
	})
	if err != nil {
		return response.ServiceError(c, err.Error())
	}
	if removed == nil {
		return response.NotFound(c, "Asset not found")
	}

	h.uploads.DeleteReferenceAsset(c.Context(), sid, removed)
	return response.NoContent(c)
}
