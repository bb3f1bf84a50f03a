package server

import (
	"microblog/internal/middleware"
	"microblog/internal/models"
	"microblog/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Register handles POST /api/auth/register
func (s *Server) Register(c *fiber.Ctx) error {
	var req service.RegisterInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, token, err := s.authService.Register(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}

	s.setSessionCookie(c, token)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Login handles POST /api/auth/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req service.LoginInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, token, err := s.authService.Login(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}

	s.setSessionCookie(c, token)
	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Refresh handles GET /api/auth/refresh, reissuing a token for the caller.
func (s *Server) Refresh(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthenticatedError("Authentication required"))
	}

	token, err := s.authService.Refresh(identity)
	if err != nil {
		return respondError(c, err)
	}

	s.setSessionCookie(c, token)
	return c.JSON(fiber.Map{"token": token})
}

// Me handles GET /api/auth/me
func (s *Server) Me(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthenticatedError("Authentication required"))
	}

	user, err := s.authService.Me(c.UserContext(), identity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// Logout handles POST /api/auth/logout. Tokens are stateless; logout only
// clears the browser session cookie.
func (s *Server) Logout(c *fiber.Ctx) error {
	s.clearSessionCookie(c)
	return c.JSON(fiber.Map{"message": "Logged out"})
}
