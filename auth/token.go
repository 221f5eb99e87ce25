package auth

import (
	"errors"
	"fmt"

	"github.com/ariebrainware/hms-portal/model"
	"github.com/ariebrainware/hms-portal/util"
	"github.com/golang-jwt/jwt/v4"
)

var (
	// ErrInvalidToken is returned for tokens that fail signature or claim checks.
	ErrInvalidToken = errors.New("invalid session token")
	// ErrNoSigningKey is returned when no JWT secret is configured.
	ErrNoSigningKey = errors.New("session signing key is not configured")
)

// Claims identify the user, role and portal a token was issued for. They
// carry no time claims, so the same login yields the same token.
type Claims struct {
	Role   model.Role `json:"role"`
	Portal PortalKind `json:"portal"`
	jwt.RegisteredClaims
}

func createJWTToken(user model.User, kind PortalKind) (string, error) {
	secret := util.GetJWTSecretByte()
	if len(secret) == 0 {
		return "", ErrNoSigningKey
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role:             user.Role,
		Portal:           kind,
		RegisteredClaims: jwt.RegisteredClaims{Subject: user.ID},
	})
	return token.SignedString(secret)
}

// ParseToken verifies a session token and returns its claims.
func ParseToken(tokenString string) (*Claims, error) {
	secret := util.GetJWTSecretByte()
	if len(secret) == 0 {
		return nil, ErrInvalidToken
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
