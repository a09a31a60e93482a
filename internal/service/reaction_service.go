// Package service contains the application's business logic.
package service

import (
	"context"
	"errors"

	"ripple/internal/models"
	"ripple/internal/observability"
	"ripple/internal/repository"

	"gorm.io/gorm"
)

// ReactionService applies reaction transitions against the ledger.
//
// For a given (post, caller) pair the stored state is one of absent, liked or
// disliked, and every Add/Remove request maps to exactly one deterministic
// outcome:
//
//	absent   + Add(p)                      -> p, "added"
//	absent   + Remove(p)                   -> absent, "not found"
//	p        + Add(p)                      -> p, "already added"
//	p        + Add(opposite)               -> opposite, "updated"
//	p        + Remove(p)                   -> absent, "removed"
//	p        + Remove(opposite)            -> p, "already removed"
type ReactionService struct {
	reactionRepo repository.ReactionRepository
	postRepo     repository.PostRepository
}

// NewReactionService creates a new reaction service
func NewReactionService(reactionRepo repository.ReactionRepository, postRepo repository.PostRepository) *ReactionService {
	return &ReactionService{
		reactionRepo: reactionRepo,
		postRepo:     postRepo,
	}
}

// Apply validates the preconditions and applies one reaction transition.
// The post must exist, and the caller must not be its author. A write that
// loses a race for the same (post, caller) pair is retried once against the
// re-read state; every interleaving still lands in a valid table cell.
func (s *ReactionService) Apply(ctx context.Context, postID, callerID uint, op models.ReactionOp, polarity models.Polarity) (*models.ReactionOutcome, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post not found")
		}
		return nil, err
	}

	if post.AuthorID == callerID {
		if polarity == models.Positive {
			return nil, models.NewForbiddenError("Cannot like your own posts")
		}
		return nil, models.NewForbiddenError("Cannot dislike your own posts")
	}

	outcome, err := s.applyOnce(ctx, postID, callerID, op, polarity)
	if errors.Is(err, repository.ErrWriteConflict) {
		observability.ReactionConflictRetries.Inc()
		outcome, err = s.applyOnce(ctx, postID, callerID, op, polarity)
	}
	if err != nil {
		return nil, err
	}

	observability.ReactionTransitions.WithLabelValues(string(outcome.Status)).Inc()
	return outcome, nil
}

// applyOnce evaluates the transition table against the current stored state
// and issues the single conditional write for the chosen cell. The write's
// WHERE clause re-encodes the observed state, so if a concurrent transition
// commits in between, the write affects no rows and surfaces as
// repository.ErrWriteConflict instead of corrupting the ledger.
func (s *ReactionService) applyOnce(ctx context.Context, postID, callerID uint, op models.ReactionOp, polarity models.Polarity) (*models.ReactionOutcome, error) {
	stored, err := s.reactionRepo.Get(ctx, postID, callerID)
	if err != nil {
		return nil, err
	}

	label := polarity.Label()
	positive := polarity == models.Positive

	if op == models.ReactionAdd {
		switch {
		case stored == nil:
			if err := s.reactionRepo.Insert(ctx, postID, callerID, positive); err != nil {
				return nil, err
			}
			return &models.ReactionOutcome{
				Status:  models.ReactionAdded,
				Message: label + " added",
			}, nil

		case stored.IsPositive == positive:
			return &models.ReactionOutcome{
				Status:  models.ReactionAlreadyAdded,
				Message: label + " already added",
			}, nil

		default:
			if err := s.reactionRepo.UpdatePolarity(ctx, postID, callerID, !positive, positive); err != nil {
				return nil, err
			}
			return &models.ReactionOutcome{
				Status:  models.ReactionUpdated,
				Message: "Reaction updated to " + label,
			}, nil
		}
	}

	// Remove
	switch {
	case stored == nil:
		return &models.ReactionOutcome{
			Status:  models.ReactionNotFound,
			Message: label + " not found",
		}, nil

	case stored.IsPositive == positive:
		if err := s.reactionRepo.Delete(ctx, postID, callerID, positive); err != nil {
			return nil, err
		}
		return &models.ReactionOutcome{
			Status:  models.ReactionRemoved,
			Message: label + " removed",
		}, nil

	default:
		return &models.ReactionOutcome{
			Status:  models.ReactionAlreadyRemoved,
			Message: label + " already removed",
		}, nil
	}
}
