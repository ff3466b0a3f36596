package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/journeycircle/api/internal/middleware"
	"github.com/journeycircle/api/pkg/response"
)

// AuthHandler exposes token verification
type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

// Verify handles GET /auth/verify. It runs behind the auth middleware, so
// reaching it means the token was accepted.
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	return response.OK(c, fiber.Map{
		"valid":  true,
		"userId": middleware.GetUserID(c),
		"email":  middleware.GetUserEmail(c),
	})
}
