package server

import (
	"microblog/internal/middleware"
	"microblog/internal/models"
	"microblog/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts. A parent_uid in the body makes the new
// post a reply.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthenticatedError("Authentication required"))
	}

	var req struct {
		Body      string `json:"body"`
		ParentUID string `json:"parent_uid"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		Identity:  identity,
		Body:      req.Body,
		ParentUID: req.ParentUID,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// LikePost handles POST /api/posts/:uid/like
func (s *Server) LikePost(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthenticatedError("Authentication required"))
	}

	like, err := s.postService.LikePost(c.UserContext(), identity, c.Params("uid"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(like)
}

// UnlikePost handles DELETE /api/posts/:uid/like
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthenticatedError("Authentication required"))
	}

	like, err := s.postService.UnlikePost(c.UserContext(), identity, c.Params("uid"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(like)
}
