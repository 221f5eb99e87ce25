package endpoint_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ariebrainware/hms-portal/auth"
	"github.com/ariebrainware/hms-portal/config"
	"github.com/ariebrainware/hms-portal/endpoint"
	"github.com/ariebrainware/hms-portal/middleware"
	"github.com/ariebrainware/hms-portal/repository"
	"github.com/ariebrainware/hms-portal/store"
	"github.com/ariebrainware/hms-portal/util"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	Msg     string          `json:"msg"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
	repo   *repository.Repository
}

func setupServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	util.SetJWTSecret("test-secret-123")
	util.SetSecurityLogger(zerolog.Nop())
	config.SetRedisClientForTest(nil)

	repo := repository.New(store.NewMemory(), zerolog.Nop())
	require.NoError(t, repo.Initialize(context.Background()))
	svc := auth.NewService(repo, zerolog.Nop(), 0)

	r := endpoint.NewRouter(endpoint.RouterConfig{
		AppName:   "hms-portal",
		Repo:      repo,
		Auth:      svc,
		Logger:    zerolog.Nop(),
		RateLimit: middleware.RateLimitConfig{Limit: 100},
	})
	return &testServer{t: t, router: r, repo: repo}
}

func (s *testServer) do(method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func (s *testServer) login(portal, id, password string) string {
	s.t.Helper()
	w, env := s.do(http.MethodPost, "/api/auth/login/"+portal, "", endpoint.LoginRequest{ID: id, Password: password})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	var resp endpoint.LoginResponse
	require.NoError(s.t, json.Unmarshal(env.Data, &resp))
	return resp.Token
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}
