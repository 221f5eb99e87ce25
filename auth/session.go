package auth

import (
	"context"
	"time"

	"github.com/ariebrainware/hms-portal/model"
)

// PortalKind selects the login portal and hence the identifier type.
type PortalKind string

const (
	PortalPatient  PortalKind = "patient"
	PortalHospital PortalKind = "hospital"
)

// Valid reports whether k is a known portal.
func (k PortalKind) Valid() bool {
	return k == PortalPatient || k == PortalHospital
}

// Session is the persisted authenticated state of one user.
type Session struct {
	Token     string     `json:"token"`
	User      model.User `json:"user"`
	Portal    PortalKind `json:"portal"`
	CreatedAt time.Time  `json:"createdAt"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// Expired reports whether the session has a deadline before now.
func (s Session) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && !now.Before(*s.ExpiresAt)
}

// ClientInfo describes the caller for the security audit trail.
type ClientInfo struct {
	IP        string
	UserAgent string
}

type clientKey struct{}

// WithClient attaches caller details to ctx.
func WithClient(ctx context.Context, ci ClientInfo) context.Context {
	return context.WithValue(ctx, clientKey{}, ci)
}

func clientFrom(ctx context.Context) ClientInfo {
	ci, _ := ctx.Value(clientKey{}).(ClientInfo)
	return ci
}

func sessionKey(token string) string {
	return model.SessionKeyPrefix + token
}
