package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/anonto42/nano-social/backend/internal/middleware"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/anonto42/nano-social/backend/internal/services"
	"github.com/anonto42/nano-social/backend/internal/testutil"
	"github.com/anonto42/nano-social/backend/internal/validators"
	"github.com/labstack/echo/v4"
)

const testSecret = "handler-test-secret"

type envelope struct {
	Success bool               `json:"success"`
	Data    json.RawMessage    `json:"data"`
	Meta    *services.PageMeta `json:"meta"`
	Error   *struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
	} `json:"error"`
}

type testServer struct {
	t *testing.T
	e *echo.Echo
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db := testutil.NewDB(t)
	posts := repositories.PostgresPostStore()
	users := services.NewUserService(db)
	content := services.NewContentService(db, posts)

	e := echo.New()
	e.Validator = validators.NewValidator()
	e.GET("/health", HealthCheck)

	NewAuthHandler(users, nil, testSecret).RegisterAuthRoutes(e.Group("/api/v1/auth"))

	api := e.Group("/api/v1", middleware.JWTAuthMiddleware(testSecret))
	NewUserHandler(users).RegisterProfileRoutes(api)
	NewFollowHandler(services.NewGraphService(db)).RegisterFollowRoutes(api)
	NewPostHandler(content).RegisterPostRoutes(api)
	NewLikeHandler(content).RegisterLikeRoutes(api)
	NewSavedPostHandler(content).RegisterSavedPostRoutes(api)
	NewCommentHandler(content).RegisterCommentRoutes(api)
	NewFeedHandler(services.NewFeedService(db, posts)).RegisterFeedRoutes(api)
	NewNotificationHandler(services.NewNotificationService(db)).RegisterNotificationRoutes(api)

	return &testServer{t: t, e: e}
}

func (s *testServer) do(method, path, token, body string) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			s.t.Fatalf("%s %s: decode %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return rec, env
}

// register signs up username and returns its token and id.
func (s *testServer) register(username string) (string, uint) {
	s.t.Helper()
	body := `{"username":"` + username + `","email":"` + username + `@example.com","password":"password123"}`
	rec, env := s.do(http.MethodPost, "/api/v1/auth/register", "", body)
	if rec.Code != http.StatusCreated {
		s.t.Fatalf("register %s: %d %s", username, rec.Code, rec.Body.String())
	}
	var data struct {
		Token string `json:"token"`
		User  struct {
			ID uint `json:"id"`
		} `json:"user"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		s.t.Fatalf("decode register: %v", err)
	}
	return data.Token, data.User.ID
}

func decode(t *testing.T, raw json.RawMessage, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(raw, v); err != nil {
		t.Fatalf("decode %s: %v", string(raw), err)
	}
}
