package endpoint_test

import (
	"net/http"
	"testing"

	"github.com/ariebrainware/hms-portal/auth"
	"github.com/ariebrainware/hms-portal/endpoint"
	"github.com/ariebrainware/hms-portal/model"
	"github.com/ariebrainware/hms-portal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginPatientPortal(t *testing.T) {
	s := setupServer(t)

	w, env := s.do(http.MethodPost, "/api/auth/login/patient", "", endpoint.LoginRequest{ID: "1234-5678-9012", Password: "password123"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)

	resp := decode[endpoint.LoginResponse](t, env)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "p001", resp.User.ID)
	assert.Equal(t, auth.PortalPatient, resp.Portal)
	assert.Equal(t, "/patient", resp.Redirect)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	s := setupServer(t)

	w1, env1 := s.do(http.MethodPost, "/api/auth/login/hospital", "", endpoint.LoginRequest{ID: "d001", Password: "wrong"})
	w2, env2 := s.do(http.MethodPost, "/api/auth/login/hospital", "", endpoint.LoginRequest{ID: "zz999", Password: "password"})
	w3, env3 := s.do(http.MethodPost, "/api/auth/login/hospital", "", endpoint.LoginRequest{ID: "p001", Password: "password123"})

	for _, w := range []int{w1.Code, w2.Code, w3.Code} {
		assert.Equal(t, http.StatusUnauthorized, w)
	}
	assert.Equal(t, "Invalid credentials", env1.Msg)
	assert.Equal(t, env1.Msg, env2.Msg)
	assert.Equal(t, env1.Msg, env3.Msg)
}

func TestLoginValidation(t *testing.T) {
	s := setupServer(t)

	w, env := s.do(http.MethodPost, "/api/auth/login/patient", "", endpoint.LoginRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ID and password are required", env.Msg)

	w, _ = s.do(http.MethodPost, "/api/auth/login/pharmacy", "", endpoint.LoginRequest{ID: "ph001", Password: "password"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterThenLogin(t *testing.T) {
	s := setupServer(t)

	req := auth.RegisterRequest{
		PatientRequest: repository.PatientRequest{Name: "  Asha   Rao ", AbhaID: "5555-6666-7777", Aadhaar: "999988887777"},
		Password:       "s3cret!",
	}
	w, env := s.do(http.MethodPost, "/api/auth/register", "", req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	user := decode[model.User](t, env)
	assert.Equal(t, "p003", user.ID)
	assert.Equal(t, "Asha Rao", user.Name)

	w, env = s.do(http.MethodPost, "/api/auth/register", "", req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "A user with this ABHA ID or Aadhaar already exists", env.Msg)

	token := s.login("patient", "5555-6666-7777", "s3cret!")
	assert.NotEmpty(t, token)
}

func TestSessionAndLogout(t *testing.T) {
	s := setupServer(t)
	token := s.login("hospital", "n001", "password")

	w, env := s.do(http.MethodGet, "/api/auth/session", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"basePath":"/hospital"`)

	w, _ = s.do(http.MethodDelete, "/api/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(http.MethodGet, "/api/auth/session", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = s.do(http.MethodDelete, "/api/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateStaffRequiresAdminOrHR(t *testing.T) {
	s := setupServer(t)
	body := map[string]string{"name": "Dr. New", "role": "DOCTOR", "department": "Cardiology", "password": "pw"}

	w, _ := s.do(http.MethodPost, "/api/staff", s.login("hospital", "d001", "password"), body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env := s.do(http.MethodPost, "/api/staff", s.login("hospital", "h001", "password"), body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "d011", decode[model.User](t, env).ID)

	assert.NotEmpty(t, s.login("hospital", "d011", "pw"))
}
