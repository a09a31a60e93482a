package server

import (
	"io"
	"net/http"
	"testing"

	"ripple/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostLifecycle(t *testing.T) {
	_, app := newTestServer(t)
	ownerToken, ownerID := signupUser(t, app, "owner")

	var postID uint

	t.Run("Create", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/v1/posts/", map[string]string{
			"title":   "Hello",
			"content": "First post",
		}, ownerToken)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var out struct {
			Message string      `json:"message"`
			Post    models.Post `json:"post"`
		}
		decodeBody(t, resp, &out)
		assert.Equal(t, "Post created", out.Message)
		assert.Equal(t, ownerID, out.Post.AuthorID)
		assert.Equal(t, "owner", out.Post.Author.Username)
		require.NotZero(t, out.Post.ID)
		postID = out.Post.ID
	})

	t.Run("CreateRequiresAuth", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/v1/posts/", map[string]string{
			"title":   "Nope",
			"content": "Nope",
		}, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		_ = resp.Body.Close()
	})

	t.Run("CreateMissingTitle", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/v1/posts/", map[string]string{
			"content": "no title",
		}, ownerToken)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		_ = resp.Body.Close()
	})

	t.Run("ListIsPublic", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/v1/posts", nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var entries []models.PostWithCounts
		decodeBody(t, resp, &entries)
		require.Len(t, entries, 1)
		assert.Equal(t, "Hello", entries[0].Post.Title)
		assert.Zero(t, entries[0].LikesCount)
		assert.Zero(t, entries[0].DislikesCount)
	})

	t.Run("GetByID", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/v1/posts/1", nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var entry models.PostWithCounts
		decodeBody(t, resp, &entry)
		require.NotNil(t, entry.Post)
		assert.Equal(t, postID, entry.Post.ID)
	})

	t.Run("GetMissing", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/v1/posts/999", nil, "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "Post not found", bodyError(t, resp).Error)
	})

	t.Run("GetInvalidID", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/v1/posts/abc", nil, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Invalid post ID", bodyError(t, resp).Error)
	})

	t.Run("Update", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPut, "/api/v1/posts/1", map[string]string{
			"title": "Hello again",
		}, ownerToken)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var out struct {
			Message string      `json:"message"`
			Post    models.Post `json:"post"`
		}
		decodeBody(t, resp, &out)
		assert.Equal(t, "Post updated", out.Message)
		assert.Equal(t, "Hello again", out.Post.Title)
		// Omitted content is untouched.
		assert.Equal(t, "First post", out.Post.Content)
	})

	t.Run("UpdateByNonOwner", func(t *testing.T) {
		strangerToken, _ := signupUser(t, app, "stranger")

		resp := doJSON(t, app, http.MethodPut, "/api/v1/posts/1", map[string]string{
			"title": "Hijacked",
		}, strangerToken)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "You can only modify your own posts", bodyError(t, resp).Error)
	})

	t.Run("DeleteByNonOwner", func(t *testing.T) {
		strangerToken, _ := signupUser(t, app, "stranger2")

		resp := doJSON(t, app, http.MethodDelete, "/api/v1/posts/1", nil, strangerToken)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		_ = resp.Body.Close()
	})

	t.Run("Delete", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodDelete, "/api/v1/posts/1", nil, ownerToken)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Post deleted", bodyMessage(t, resp))

		resp = doJSON(t, app, http.MethodGet, "/api/v1/posts/1", nil, "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		_ = resp.Body.Close()
	})

	t.Run("DeleteMissing", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodDelete, "/api/v1/posts/1", nil, ownerToken)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		_ = resp.Body.Close()
	})
}

// TestPublicPostResponsesOmitAuthorEmail: the embedded author must never leak
// an email address on the unauthenticated read paths.
func TestPublicPostResponsesOmitAuthorEmail(t *testing.T) {
	_, app := newTestServer(t)
	token, _ := signupUser(t, app, "leaky")

	resp := doJSON(t, app, http.MethodPost, "/api/v1/posts/", map[string]string{
		"title":   "Visible",
		"content": "body",
	}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	for _, path := range []string{"/api/v1/posts", "/api/v1/posts/1"} {
		resp := doJSON(t, app, http.MethodGet, path, nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		_ = resp.Body.Close()

		body := string(raw)
		assert.Contains(t, body, `"username":"leaky"`, path)
		assert.NotContains(t, body, "leaky@example.com", path)
		assert.NotContains(t, body, `"email"`, path)
	}
}

func TestGetUsers(t *testing.T) {
	_, app := newTestServer(t)
	token, _ := signupUser(t, app, "first")
	signupUser(t, app, "second")

	resp := doJSON(t, app, http.MethodGet, "/api/v1/users", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var usernames []string
	decodeBody(t, resp, &usernames)
	assert.Equal(t, []string{"first", "second"}, usernames)
}

func TestRootAndHealth(t *testing.T) {
	_, app := newTestServer(t)

	resp := doJSON(t, app, http.MethodGet, "/", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var links map[string]string
	decodeBody(t, resp, &links)
	assert.Equal(t, "/api/v1/posts", links["posts"])

	resp = doJSON(t, app, http.MethodGet, "/health/live", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/health/ready", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()
}
