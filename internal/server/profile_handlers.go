package server

import (
	"time"

	"microblog/internal/models"

	"github.com/gofiber/fiber/v2"
)

// profileResponse is the public view of an account; email and internal ids
// stay private.
type profileResponse struct {
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	Summary     string    `json:"summary"`
	CreatedAt   time.Time `json:"created_at"`
}

func toProfileResponse(user *models.User) profileResponse {
	return profileResponse{
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Summary:     user.Summary,
		CreatedAt:   user.CreatedAt,
	}
}

// GetProfile handles GET /api/profiles/:username
func (s *Server) GetProfile(c *fiber.Ctx) error {
	user, err := s.profileService.GetProfile(c.UserContext(), c.Params("username"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toProfileResponse(user))
}

// GetProfilePosts handles GET /api/profiles/:username/posts
func (s *Server) GetProfilePosts(c *fiber.Ctx) error {
	page := parsePagination(c, 20)

	posts, err := s.profileService.GetProfilePosts(c.UserContext(), c.Params("username"),
		page.Limit, page.Offset, currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}
