package repository

import (
	"context"
	"errors"

	"ripple/internal/models"

	"gorm.io/gorm"
)

// errOwnershipCheckFailed rolls back a cascade delete whose conditional post
// delete matched no row.
var errOwnershipCheckFailed = errors.New("ownership check failed")

// PostRepository defines the interface for post data operations.
// Like/dislike counts on returned posts are always derived from the reactions
// table at query time; they are never stored on the post row.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context) ([]*models.Post, error)
	// UpdateFields applies the supplied fields with a single conditional
	// UPDATE on (id, author_id) and returns the number of rows affected.
	// Zero rows means the post is missing or the caller is not the author.
	UpdateFields(ctx context.Context, postID, authorID uint, fields map[string]any) (int64, error)
	// DeleteCascade removes the post and every reaction referencing it in one
	// transaction. The post delete is conditional on (id, author_id); if it
	// matches no row the whole transaction rolls back and zero is returned.
	DeleteCascade(ctx context.Context, postID, authorID uint) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// withCounts adds correlated subqueries deriving like and dislike counts from
// the reaction ledger in the same query.
func (r *postRepository) withCounts(db *gorm.DB) *gorm.DB {
	return db.Model(&models.Post{}).Select(
		"posts.*, "+
			"(SELECT COUNT(*) FROM reactions WHERE reactions.post_id = posts.id AND reactions.is_positive = ?) AS likes_count, "+
			"(SELECT COUNT(*) FROM reactions WHERE reactions.post_id = posts.id AND reactions.is_positive = ?) AS dislikes_count",
		true, false)
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.withCounts(r.db.WithContext(ctx)).
		Preload("Author").
		First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.withCounts(r.db.WithContext(ctx)).
		Preload("Author").
		Order("posts.id ASC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) UpdateFields(ctx context.Context, postID, authorID uint, fields map[string]any) (int64, error) {
	if len(fields) == 0 {
		// Nothing to apply; report whether the conditional write would have
		// matched so callers still get NotFound/Forbidden semantics.
		var count int64
		err := r.db.WithContext(ctx).
			Model(&models.Post{}).
			Where("id = ? AND author_id = ?", postID, authorID).
			Count(&count).Error
		return count, err
	}

	res := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ? AND author_id = ?", postID, authorID).
		Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *postRepository) DeleteCascade(ctx context.Context, postID, authorID uint) (int64, error) {
	var rows int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Reactions go first so a foreign key on reactions.post_id cannot
		// block the post delete. If the ownership check below fails the
		// rollback restores them.
		if err := tx.Where("post_id = ?", postID).Delete(&models.Reaction{}).Error; err != nil {
			return err
		}

		res := tx.Where("id = ? AND author_id = ?", postID, authorID).Delete(&models.Post{})
		if res.Error != nil {
			return res.Error
		}
		rows = res.RowsAffected
		if rows == 0 {
			return errOwnershipCheckFailed
		}
		return nil
	})
	if errors.Is(err, errOwnershipCheckFailed) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return rows, nil
}
