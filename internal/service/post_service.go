package service

import (
	"context"
	"errors"

	"ripple/internal/models"
	"ripple/internal/repository"

	"gorm.io/gorm"
)

// PostService owns post CRUD with ownership checks.
type PostService struct {
	postRepo repository.PostRepository
}

// CreatePostInput carries the fields for creating a post.
type CreatePostInput struct {
	AuthorID uint
	Title    string
	Content  string
}

// UpdatePostInput carries a partial update: nil fields are left untouched.
type UpdatePostInput struct {
	CallerID uint
	PostID   uint
	Title    *string
	Content  *string
}

// NewPostService creates a new post service
func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}

	post := &models.Post{
		Title:    in.Title,
		Content:  in.Content,
		AuthorID: in.AuthorID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	// Reload with derived counts and author preloaded.
	return s.GetPost(ctx, post.ID)
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post not found")
		}
		return nil, err
	}
	return post, nil
}

func (s *PostService) ListPosts(ctx context.Context) ([]*models.Post, error) {
	return s.postRepo.List(ctx)
}

// UpdatePost applies the supplied fields to the caller's post. The ownership
// check and the write are one conditional UPDATE; when it matches no row the
// post is re-read only to tell NotFound apart from Forbidden.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	fields := map[string]any{}
	if in.Title != nil {
		if *in.Title == "" {
			return nil, models.NewValidationError("Title cannot be empty")
		}
		fields["title"] = *in.Title
	}
	if in.Content != nil {
		if *in.Content == "" {
			return nil, models.NewValidationError("Content cannot be empty")
		}
		fields["content"] = *in.Content
	}

	rows, err := s.postRepo.UpdateFields(ctx, in.PostID, in.CallerID, fields)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, s.classifyOwnershipMiss(ctx, in.PostID)
	}

	return s.GetPost(ctx, in.PostID)
}

// DeletePost removes the caller's post together with all reactions
// referencing it in one transaction.
func (s *PostService) DeletePost(ctx context.Context, postID, callerID uint) error {
	rows, err := s.postRepo.DeleteCascade(ctx, postID, callerID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return s.classifyOwnershipMiss(ctx, postID)
	}
	return nil
}

// classifyOwnershipMiss distinguishes a missing post from a foreign one after
// a conditional write matched no row. The mutation itself never ran, so this
// read is diagnostic only and carries no check-then-act gap.
func (s *PostService) classifyOwnershipMiss(ctx context.Context, postID uint) error {
	_, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Post not found")
		}
		return err
	}
	return models.NewForbiddenError("You can only modify your own posts")
}
