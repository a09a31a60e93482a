package server

import (
	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetUsers handles GET /api/v1/users, returning the usernames of all
// registered users.
func (s *Server) GetUsers(c *fiber.Ctx) error {
	usernames, err := s.userService.ListUsernames(c.Context())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(usernames)
}
