package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"devconnect/internal/config"
	"devconnect/internal/database"
	"devconnect/internal/github"
	"devconnect/internal/models"
	"devconnect/internal/repository"
	"devconnect/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestServer builds a Server against an in-memory SQLite database. It
// wires repositories and services directly, skipping Prometheus
// registration so tests can build many servers in one process.
func newTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		JWTSecret: "test-secret",
		Port:      "0",
		Env:       "test",
	}

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	profileRepo := repository.NewProfileRepository(db)

	s := &Server{
		config:         cfg,
		db:             db,
		userRepo:       userRepo,
		postRepo:       postRepo,
		profileRepo:    profileRepo,
		postService:    service.NewPostService(postRepo, userRepo),
		profileService: service.NewProfileService(profileRepo, userRepo),
		githubClient:   github.NewClient(""),
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if fe, ok := err.(*fiber.Error); ok {
				return c.Status(fe.Code).JSON(models.ErrorResponse{Msg: fe.Message})
			}
			return models.RespondWithError(c, models.StatusForError(err), err)
		},
	})
	s.SetupRoutes(app)

	return s, app
}

// registerUser creates a user directly in the database and returns it with
// a valid token.
func registerUser(t *testing.T, s *Server, name, email string) (*models.User, string) {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := &models.User{Name: name, Email: email, Password: string(hashed)}
	require.NoError(t, s.db.Create(user).Error)

	token, err := s.generateToken(user.ID)
	require.NoError(t, err)
	return user, token
}

// doJSON performs a JSON request against the app and decodes the response
// body into a generic map.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	status, raw := doRaw(t, app, method, path, token, body)

	var decoded map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return status, decoded
}

// doJSONList is doJSON for endpoints returning a JSON array.
func doJSONList(t *testing.T, app *fiber.App, method, path, token string, body any) (int, []map[string]any) {
	t.Helper()
	status, raw := doRaw(t, app, method, path, token, body)

	var decoded []map[string]any
	if len(raw) > 0 && raw[0] == '[' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return status, decoded
}

func doRaw(t *testing.T, app *fiber.App, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("x-auth-token", token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

// errMsgs extracts the messages from a validation error response body.
func errMsgs(t *testing.T, body map[string]any) []string {
	t.Helper()
	list, ok := body["errors"].([]any)
	require.True(t, ok, "expected errors list, got %v", body)

	msgs := make([]string, 0, len(list))
	for _, item := range list {
		entry := item.(map[string]any)
		msgs = append(msgs, entry["msg"].(string))
	}
	return msgs
}
