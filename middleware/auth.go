package middleware

import (
	"errors"
	"strings"

	"github.com/ariebrainware/hms-portal/auth"
	"github.com/ariebrainware/hms-portal/model"
	"github.com/ariebrainware/hms-portal/util"
	"github.com/gin-gonic/gin"
)

const (
	sessionKey         = "session"
	sessionTokenHeader = "session-token"
)

var (
	errMissingToken = errors.New("missing session token")
	errForbidden    = errors.New("forbidden")
)

// TokenFromRequest extracts the session token from the Authorization bearer
// header or the session-token header.
func TokenFromRequest(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	return strings.TrimSpace(c.GetHeader(sessionTokenHeader))
}

// ValidateSessionToken rehydrates the caller's session and stores it on the
// gin context. Requests without a live session are rejected with 401.
func ValidateSessionToken(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := TokenFromRequest(c)
		if token == "" {
			util.CallUserNotAuthorized(c, util.APIErrorParams{
				Msg: "Please log in to continue",
				Err: errMissingToken,
			})
			c.Abort()
			return
		}

		sess, err := svc.Resume(c.Request.Context(), token)
		if err != nil {
			util.LogUnauthorizedAccess("", c.ClientIP(), c.Request.URL.Path, "invalid or expired session")
			util.CallUserNotAuthorized(c, util.APIErrorParams{
				Msg: "Session expired, please log in again",
				Err: err,
			})
			c.Abort()
			return
		}

		c.Set(sessionKey, sess)
		c.Next()
	}
}

// GetSession returns the session stored by ValidateSessionToken.
func GetSession(c *gin.Context) (auth.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return auth.Session{}, false
	}
	sess, ok := v.(auth.Session)
	return sess, ok
}

// GetUser returns the authenticated user.
func GetUser(c *gin.Context) (model.User, bool) {
	sess, ok := GetSession(c)
	if !ok {
		return model.User{}, false
	}
	return sess.User, true
}

// GetUserID returns the authenticated user's id.
func GetUserID(c *gin.Context) (string, bool) {
	user, ok := GetUser(c)
	if !ok {
		return "", false
	}
	return user.ID, true
}

// RequireRoles lets through only users holding one of roles. It must run
// after ValidateSessionToken.
func RequireRoles(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetUser(c)
		if !ok {
			util.CallUserNotAuthorized(c, util.APIErrorParams{
				Msg: "Please log in to continue",
				Err: errMissingToken,
			})
			c.Abort()
			return
		}
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		deny(c, user, "role not permitted")
	}
}

// RequireStaff lets through any hospital staff role.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetUser(c)
		if !ok || !user.Role.IsStaff() {
			deny(c, user, "staff only")
			return
		}
		c.Next()
	}
}

// SelfOrStaff lets a patient reach only routes whose param names their own
// id. Staff pass through; their route group decides further.
func SelfOrStaff(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetUser(c)
		if !ok {
			deny(c, user, "no session")
			return
		}
		if user.IsPatient() && c.Param(param) != user.ID {
			deny(c, user, "patient may only access own records")
			return
		}
		c.Next()
	}
}

func deny(c *gin.Context, user model.User, reason string) {
	util.LogUnauthorizedAccess(user.ID, c.ClientIP(), c.Request.URL.Path, reason)
	util.CallForbidden(c, util.APIErrorParams{
		Msg: "You are not allowed to access this resource",
		Err: errForbidden,
	})
	c.Abort()
}
