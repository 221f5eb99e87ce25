package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ariebrainware/hms-portal/auth"
	"github.com/ariebrainware/hms-portal/repository"
	"github.com/ariebrainware/hms-portal/store"
	"github.com/ariebrainware/hms-portal/util"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	util.SetSecurityLogger(zerolog.Nop())
}

func newAuthService(t *testing.T) *auth.Service {
	t.Helper()
	util.SetJWTSecret("middleware-test-secret")
	repo := repository.New(store.NewMemory(), zerolog.Nop())
	require.NoError(t, repo.Initialize(context.Background()))
	return auth.NewService(repo, zerolog.Nop(), 0)
}

func login(t *testing.T, svc *auth.Service, id, password string, kind auth.PortalKind) string {
	t.Helper()
	sess, err := svc.Login(context.Background(), id, password, kind)
	require.NoError(t, err)
	return sess.Token
}

func okHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "success"})
}

func serve(r *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = "192.168.1.1:1234"
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}
