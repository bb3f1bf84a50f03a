package server

import (
	"microblog/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetFeed handles GET /api/feeds, the reverse-chronological list of
// top-level posts.
func (s *Server) GetFeed(c *fiber.Ctx) error {
	page := parsePagination(c, 20)

	posts, err := s.feedService.ListFeed(c.UserContext(), service.ListFeedInput{
		Limit:         page.Limit,
		Offset:        page.Offset,
		CurrentUserID: currentUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}

// GetPostDetails handles GET /api/feeds/:uid
func (s *Server) GetPostDetails(c *fiber.Ctx) error {
	post, err := s.feedService.GetPost(c.UserContext(), c.Params("uid"), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

// GetPostReplies handles GET /api/feeds/:uid/replies
func (s *Server) GetPostReplies(c *fiber.Ctx) error {
	page := parsePagination(c, 20)

	replies, err := s.feedService.ListReplies(c.UserContext(), c.Params("uid"),
		page.Limit, page.Offset, currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(replies)
}
