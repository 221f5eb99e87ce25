package auth

import (
	"testing"

	"github.com/ariebrainware/hms-portal/model"
	"github.com/ariebrainware/hms-portal/util"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIsDeterministic(t *testing.T) {
	util.SetJWTSecret("test-secret")
	u := model.User{ID: "d001", Role: model.RoleDoctor}

	a, err := createJWTToken(u, PortalHospital)
	require.NoError(t, err)
	b, err := createJWTToken(u, PortalHospital)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	claims, err := ParseToken(a)
	require.NoError(t, err)
	assert.Equal(t, "d001", claims.Subject)
	assert.Equal(t, model.RoleDoctor, claims.Role)
	assert.Equal(t, PortalHospital, claims.Portal)
}

func TestParseTokenRejectsOtherSecret(t *testing.T) {
	util.SetJWTSecret("first")
	tok, err := createJWTToken(model.User{ID: "a001", Role: model.RoleAdmin}, PortalHospital)
	require.NoError(t, err)

	util.SetJWTSecret("second")
	_, err = ParseToken(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestEmptySecretNeitherSignsNorVerifies(t *testing.T) {
	util.SetJWTSecret("")
	t.Cleanup(func() { util.SetJWTSecret("test-secret") })

	admin := model.User{ID: "a001", Role: model.RoleAdmin}
	_, err := createJWTToken(admin, PortalHospital)
	assert.ErrorIs(t, err, ErrNoSigningKey)

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role:             model.RoleAdmin,
		Portal:           PortalHospital,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "a001"},
	}).SignedString([]byte(""))
	require.NoError(t, err)
	_, err = ParseToken(forged)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
