package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"quill/internal/auth"
	"quill/internal/config"
	"quill/internal/database"
	"quill/internal/models"
	"quill/internal/repository"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestServer wires a Server against an in-memory database with the full
// route table and no external dependencies.
func newTestServer(t *testing.T) (*Server, *fiber.App, *gorm.DB) {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(database.PersistentModels()...); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	cfg := &config.Config{
		JWTSecret: "unit-test-secret",
		Port:      "0",
		Env:       "test",
	}
	tokens, err := auth.NewTokenService(cfg.JWTSecret)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	blogRepo := repository.NewBlogRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	s := &Server{
		config:         cfg,
		db:             db,
		tokens:         tokens,
		userRepo:       userRepo,
		blogRepo:       blogRepo,
		commentRepo:    commentRepo,
		blogService:    service.NewBlogService(blogRepo, nil),
		commentService: service.NewCommentService(commentRepo, blogRepo),
		userService:    service.NewUserService(userRepo, nil),
	}

	app := fiber.New()
	s.SetupRoutes(app)
	return s, app, db
}

// envelope is the standard success body shape.
type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
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

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &env)
	}
	return resp, env
}

// createAccount persists a user directly and returns it with a valid token.
func createAccount(t *testing.T, s *Server, db *gorm.DB, email, role string) (*models.User, string) {
	t.Helper()

	hashed, err := auth.HashPassword("password1234")
	require.NoError(t, err)
	user := &models.User{Name: "Account " + email, Email: email, Password: hashed, Role: role}
	require.NoError(t, db.Create(user).Error)

	token, err := s.tokens.Issue(auth.Identity{UserID: user.ID, Email: user.Email, Role: user.Role})
	require.NoError(t, err)
	return user, token
}

func createBlogRow(t *testing.T, db *gorm.DB, userID uint, slug string) *models.Blog {
	t.Helper()
	blog := &models.Blog{
		Title:  "Seeded Blog",
		Body:   "seeded body",
		Image:  "https://example.com/seeded.png",
		Slug:   slug,
		UserID: userID,
	}
	require.NoError(t, db.Create(blog).Error)
	return blog
}

func blogPath(id uint) string { return fmt.Sprintf("/api/blogs/%d", id) }
