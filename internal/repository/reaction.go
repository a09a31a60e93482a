package repository

import (
	"context"
	"errors"

	"ripple/internal/models"

	"gorm.io/gorm"
)

// ErrWriteConflict is returned when a ledger write matched no row because a
// concurrent transition for the same (post, user) pair committed first. The
// caller re-reads the stored state and retries the transition once.
var ErrWriteConflict = errors.New("reaction write conflict")

// ReactionRepository is the reaction ledger's storage interface. Every
// mutation is a single conditional statement whose WHERE clause encodes the
// expected prior state, so a transition either applies fully against that
// state or fails as a write conflict. No partial state is ever observable.
type ReactionRepository interface {
	// Get returns the caller's stored reaction for the post, or nil when the
	// caller is neutral on it.
	Get(ctx context.Context, postID, userID uint) (*models.Reaction, error)
	// Insert records a new reaction. ErrWriteConflict means a row for the
	// pair already exists (the unique index detected a race).
	Insert(ctx context.Context, postID, userID uint, positive bool) error
	// UpdatePolarity flips an existing reaction from one polarity to the
	// other. ErrWriteConflict means the stored state no longer matches from.
	UpdatePolarity(ctx context.Context, postID, userID uint, from, to bool) error
	// Delete removes the reaction if it currently has the given polarity.
	// ErrWriteConflict means the stored state changed underneath the caller.
	Delete(ctx context.Context, postID, userID uint, positive bool) error
	// CountsForPost derives the aggregate like/dislike counts for a post.
	CountsForPost(ctx context.Context, postID uint) (likes, dislikes int64, err error)
}

type reactionRepository struct {
	db *gorm.DB
}

// NewReactionRepository creates a new reaction repository
func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

func (r *reactionRepository) Get(ctx context.Context, postID, userID uint) (*models.Reaction, error) {
	var reaction models.Reaction
	err := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		First(&reaction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reaction, nil
}

func (r *reactionRepository) Insert(ctx context.Context, postID, userID uint, positive bool) error {
	reaction := models.Reaction{
		PostID:     postID,
		UserID:     userID,
		IsPositive: positive,
	}
	err := r.db.WithContext(ctx).Create(&reaction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
			return ErrWriteConflict
		}
		return err
	}
	return nil
}

func (r *reactionRepository) UpdatePolarity(ctx context.Context, postID, userID uint, from, to bool) error {
	res := r.db.WithContext(ctx).
		Model(&models.Reaction{}).
		Where("post_id = ? AND user_id = ? AND is_positive = ?", postID, userID, from).
		Update("is_positive", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrWriteConflict
	}
	return nil
}

func (r *reactionRepository) Delete(ctx context.Context, postID, userID uint, positive bool) error {
	res := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ? AND is_positive = ?", postID, userID, positive).
		Delete(&models.Reaction{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrWriteConflict
	}
	return nil
}

func (r *reactionRepository) CountsForPost(ctx context.Context, postID uint) (int64, int64, error) {
	var likes, dislikes int64
	err := r.db.WithContext(ctx).
		Model(&models.Reaction{}).
		Where("post_id = ? AND is_positive = ?", postID, true).
		Count(&likes).Error
	if err != nil {
		return 0, 0, err
	}
	err = r.db.WithContext(ctx).
		Model(&models.Reaction{}).
		Where("post_id = ? AND is_positive = ?", postID, false).
		Count(&dislikes).Error
	if err != nil {
		return 0, 0, err
	}
	return likes, dislikes, nil
}
