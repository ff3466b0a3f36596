package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/journeycircle/api/internal/client"
	"github.com/journeycircle/api/internal/generation"
	"github.com/journeycircle/api/internal/store"
	"github.com/journeycircle/api/pkg/response"
)

// formatValidationErrors formats validator errors for response
func formatValidationErrors(err error) interface{} {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		errors := make(map[string]string)
		for _, e := range validationErrors {
			errors[e.Field()] = e.Tag()
		}
		return errors
	}
	return nil
}

// sessionID resolves the wizard session the request acts on
func sessionID(c *fiber.Ctx) string {
	if id := c.Get("X-Session-ID"); id != "" {
		return id
	}
	return c.Query("session_id")
}

// handleGenerationError maps controller errors onto the response envelope.
// Cancellation is not a failure: a superseded request acknowledges with
// cancelled=true and no error body.
func handleGenerationError(c *fiber.Ctx, err error) error {
	if client.IsCancelled(err) {
		return response.OK(c, fiber.Map{"success": false, "cancelled": true})
	}

	var valErr *generation.ValidationError
	if errors.As(err, &valErr) {
		return response.ValidationError(c, valErr.Message, nil)
	}
	if errors.Is(err, generation.ErrAlreadyInProgress) {
		return response.Conflict(c, "Generation already in progress for this artifact")
	}
	if errors.Is(err, generation.ErrWrongState) {
		return response.Conflict(c, "Artifact cannot be modified in its current state")
	}
	if errors.Is(err, store.ErrInvalidTransition) {
		return response.Conflict(c, "Asset status can only move forward")
	}
	if errors.Is(err, store.ErrNotFound) {
		return response.NotFound(c, "Not found")
	}
	return response.AIError(c, err.Error())
}
