package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"ripple/internal/config"
	"ripple/internal/emailverify"
	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestServer builds a Server against an in-memory database with the full
// route table mounted.
func newTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Post{}, &models.Reaction{}))

	cfg := &config.Config{
		Port:      "0",
		JWTSecret: "test-secret-used-only-in-tests-1234",
		Env:       "test",
	}

	s := NewServerWithDeps(cfg, db, nil, nil)

	app := fiber.New()
	s.SetupRoutes(app)

	return s, app
}

func withRedis(s *Server, client *redis.Client) {
	s.redis = client
}

func withVerifier(s *Server, v emailverify.Verifier) {
	s.verifier = v
}

// signupUser registers a user through the API and returns its token and id.
func signupUser(t *testing.T, app *fiber.App, username string) (string, uint) {
	t.Helper()

	body := map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
	}
	resp := doJSON(t, app, http.MethodPost, "/api/v1/auth/signup", body, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	decodeBody(t, resp, &out)
	require.NotEmpty(t, out.Token)
	require.NotZero(t, out.User.ID)
	return out.Token, out.User.ID
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, token string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func bodyMessage(t *testing.T, resp *http.Response) string {
	t.Helper()
	var out struct {
		Message string `json:"message"`
	}
	decodeBody(t, resp, &out)
	return out.Message
}

func bodyError(t *testing.T, resp *http.Response) models.ErrorResponse {
	t.Helper()
	var out models.ErrorResponse
	decodeBody(t, resp, &out)
	return out
}
