package server

import (
	"quill/internal/models"

	"github.com/gofiber/fiber/v2"
)

// FollowAuthor handles POST /api/users/:username/follow. Following yourself
// or an author you already follow changes nothing; every outcome lands the
// client back on the author's profile.
func (s *Server) FollowAuthor(c *fiber.Ctx) error {
	username := c.Params("username")
	userID := c.Locals("userID").(uint)

	author, err := s.followService.Follow(c.Context(), userID, username)
	if err != nil {
		return respondServiceError(c, err)
	}

	return seeOther(c, profileURL(author.Username))
}

// UnfollowAuthor handles DELETE /api/users/:username/follow.
func (s *Server) UnfollowAuthor(c *fiber.Ctx) error {
	username := c.Params("username")
	userID := c.Locals("userID").(uint)

	author, err := s.followService.Unfollow(c.Context(), userID, username)
	if err != nil {
		return respondServiceError(c, err)
	}

	return seeOther(c, profileURL(author.Username))
}

// GetFollowing handles GET /api/users/me/following.
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	authors, err := s.followService.ListFollowing(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	if authors == nil {
		authors = []models.User{}
	}
	return c.JSON(authors)
}
