package service

import (
	"context"
	"errors"
	"testing"

	"ripple/internal/models"
	"ripple/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostFixture(t *testing.T) (*PostService, *ReactionService, *models.User, *models.User) {
	t.Helper()
	db := setupTestDB(t)

	postRepo := repository.NewPostRepository(db)
	reactionRepo := repository.NewReactionRepository(db)

	owner := createTestUser(t, db, "owner")
	stranger := createTestUser(t, db, "stranger")

	return NewPostService(postRepo), NewReactionService(reactionRepo, postRepo), owner, stranger
}

func appCode(t *testing.T, err error) string {
	t.Helper()
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	return appErr.Code
}

func TestCreatePost(t *testing.T) {
	svc, _, owner, _ := newPostFixture(t)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		post, err := svc.CreatePost(ctx, CreatePostInput{
			AuthorID: owner.ID,
			Title:    "First",
			Content:  "Hello",
		})
		require.NoError(t, err)
		assert.NotZero(t, post.ID)
		assert.Equal(t, owner.ID, post.AuthorID)
		assert.Equal(t, "owner", post.Author.Username)
		assert.Zero(t, post.LikesCount)
		assert.Zero(t, post.DislikesCount)
	})

	t.Run("MissingTitle", func(t *testing.T) {
		_, err := svc.CreatePost(ctx, CreatePostInput{AuthorID: owner.ID, Content: "Hello"})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", appCode(t, err))
	})

	t.Run("MissingContent", func(t *testing.T) {
		_, err := svc.CreatePost(ctx, CreatePostInput{AuthorID: owner.ID, Title: "First"})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", appCode(t, err))
	})
}

func TestUpdatePost(t *testing.T) {
	svc, _, owner, stranger := newPostFixture(t)
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, CreatePostInput{AuthorID: owner.ID, Title: "Before", Content: "Body"})
	require.NoError(t, err)

	strPtr := func(s string) *string { return &s }

	t.Run("PartialUpdateKeepsOmittedFields", func(t *testing.T) {
		updated, err := svc.UpdatePost(ctx, UpdatePostInput{
			CallerID: owner.ID,
			PostID:   post.ID,
			Title:    strPtr("After"),
		})
		require.NoError(t, err)
		assert.Equal(t, "After", updated.Title)
		assert.Equal(t, "Body", updated.Content)
	})

	t.Run("EmptyFieldRejected", func(t *testing.T) {
		_, err := svc.UpdatePost(ctx, UpdatePostInput{
			CallerID: owner.ID,
			PostID:   post.ID,
			Content:  strPtr(""),
		})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", appCode(t, err))
	})

	t.Run("NonOwnerForbidden", func(t *testing.T) {
		_, err := svc.UpdatePost(ctx, UpdatePostInput{
			CallerID: stranger.ID,
			PostID:   post.ID,
			Title:    strPtr("Hijacked"),
		})
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", appCode(t, err))

		// The post is untouched.
		fetched, getErr := svc.GetPost(ctx, post.ID)
		require.NoError(t, getErr)
		assert.Equal(t, "After", fetched.Title)
	})

	t.Run("MissingPostNotFound", func(t *testing.T) {
		_, err := svc.UpdatePost(ctx, UpdatePostInput{
			CallerID: owner.ID,
			PostID:   9999,
			Title:    strPtr("x"),
		})
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", appCode(t, err))
	})

	t.Run("NoFieldsIsNoOp", func(t *testing.T) {
		updated, err := svc.UpdatePost(ctx, UpdatePostInput{CallerID: owner.ID, PostID: post.ID})
		require.NoError(t, err)
		assert.Equal(t, "After", updated.Title)
	})
}

func TestDeletePost(t *testing.T) {
	postSvc, reactionSvc, owner, stranger := newPostFixture(t)
	ctx := context.Background()

	post, err := postSvc.CreatePost(ctx, CreatePostInput{AuthorID: owner.ID, Title: "Doomed", Content: "Body"})
	require.NoError(t, err)

	_, err = reactionSvc.Apply(ctx, post.ID, stranger.ID, models.ReactionAdd, models.Positive)
	require.NoError(t, err)

	t.Run("NonOwnerForbidden", func(t *testing.T) {
		err := postSvc.DeletePost(ctx, post.ID, stranger.ID)
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", appCode(t, err))

		// Post and reaction both survive the rejected delete.
		fetched, getErr := postSvc.GetPost(ctx, post.ID)
		require.NoError(t, getErr)
		assert.Equal(t, int64(1), fetched.LikesCount)
	})

	t.Run("OwnerDeletes", func(t *testing.T) {
		err := postSvc.DeletePost(ctx, post.ID, owner.ID)
		require.NoError(t, err)

		_, err = postSvc.GetPost(ctx, post.ID)
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", appCode(t, err))
	})

	t.Run("MissingPostNotFound", func(t *testing.T) {
		err := postSvc.DeletePost(ctx, 9999, owner.ID)
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", appCode(t, err))
	})
}

func TestListPosts(t *testing.T) {
	svc, _, owner, _ := newPostFixture(t)
	ctx := context.Background()

	first, err := svc.CreatePost(ctx, CreatePostInput{AuthorID: owner.ID, Title: "One", Content: "a"})
	require.NoError(t, err)
	second, err := svc.CreatePost(ctx, CreatePostInput{AuthorID: owner.ID, Title: "Two", Content: "b"})
	require.NoError(t, err)

	posts, err := svc.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, first.ID, posts[0].ID)
	assert.Equal(t, second.ID, posts[1].ID)
}
