package server

import (
	"quill/internal/models"

	"github.com/gofiber/fiber/v2"
)

// FlushCache handles POST /api/admin/cache/flush. It drops every cached
// entry, the landing view included; subsequent reads repopulate on miss.
func (s *Server) FlushCache(c *fiber.Ctx) error {
	if err := s.cacheStore.Clear(c.Context()); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return c.JSON(fiber.Map{"message": "Cache flushed"})
}
