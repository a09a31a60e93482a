package server

import (
	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
)

// AddLike handles POST /api/v1/posts/:id/like
func (s *Server) AddLike(c *fiber.Ctx) error {
	return s.react(c, models.ReactionAdd, models.Positive)
}

// RemoveLike handles DELETE /api/v1/posts/:id/like
func (s *Server) RemoveLike(c *fiber.Ctx) error {
	return s.react(c, models.ReactionRemove, models.Positive)
}

// AddDislike handles POST /api/v1/posts/:id/dislike
func (s *Server) AddDislike(c *fiber.Ctx) error {
	return s.react(c, models.ReactionAdd, models.Negative)
}

// RemoveDislike handles DELETE /api/v1/posts/:id/dislike
func (s *Server) RemoveDislike(c *fiber.Ctx) error {
	return s.react(c, models.ReactionRemove, models.Negative)
}

// react applies one reaction transition for the authenticated caller and
// reports the transition table's message.
func (s *Server) react(c *fiber.Ctx, op models.ReactionOp, polarity models.Polarity) error {
	postID, err := s.parseID(c)
	if err != nil {
		return nil
	}

	outcome, err := s.reactionService.Apply(c.Context(), postID, callerID(c), op, polarity)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{"message": outcome.Message})
}
