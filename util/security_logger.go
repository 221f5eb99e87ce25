package util

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/ariebrainware/hms-portal/model"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SecurityEventType represents different types of security events
type SecurityEventType string

const (
	EventLoginSuccess       SecurityEventType = "LOGIN_SUCCESS"
	EventLoginFailure       SecurityEventType = "LOGIN_FAILURE"
	EventSignupSuccess      SecurityEventType = "SIGNUP_SUCCESS"
	EventLogout             SecurityEventType = "LOGOUT"
	EventPasswordChanged    SecurityEventType = "PASSWORD_CHANGED"
	EventUnauthorizedAccess SecurityEventType = "UNAUTHORIZED_ACCESS"
	EventRateLimitExceeded  SecurityEventType = "RATE_LIMIT_EXCEEDED"
	EventSuspiciousActivity SecurityEventType = "SUSPICIOUS_ACTIVITY"
	EventEndpointCall       SecurityEventType = "ENDPOINT_CALL"
)

// SecurityEvent represents a security event to be logged
type SecurityEvent struct {
	EventType SecurityEventType
	UserID    string
	LoginID   string
	Portal    string
	IP        string
	UserAgent string
	Message   string
	Details   map[string]interface{}
}

var (
	securityMu     sync.RWMutex
	securityLogger = zerolog.New(os.Stdout).With().Timestamp().Str("channel", "security").Logger()
	securityDB     *gorm.DB
)

// SetSecurityLogger replaces the logger security events are written to.
func SetSecurityLogger(l zerolog.Logger) {
	securityMu.Lock()
	defer securityMu.Unlock()
	securityLogger = l.With().Str("channel", "security").Logger()
}

// SetSecurityLoggerDB sets the gorm DB security events are persisted to.
// A nil DB disables persistence.
func SetSecurityLoggerDB(db *gorm.DB) {
	securityMu.Lock()
	defer securityMu.Unlock()
	securityDB = db
}

func securitySinks() (zerolog.Logger, *gorm.DB) {
	securityMu.RLock()
	defer securityMu.RUnlock()
	return securityLogger, securityDB
}

// sanitizeLogValue removes newlines and other characters that could break log parsing
func sanitizeLogValue(value string) string {
	value = strings.NewReplacer("\n", " ", "\r", " ", "\t", " ").Replace(value)
	if len(value) > 200 {
		value = value[:200] + "..."
	}
	return value
}

// LogSecurityEvent logs a security event and persists it best-effort.
func LogSecurityEvent(event SecurityEvent) {
	logger, db := securitySinks()

	logger.Info().
		Str("event", sanitizeLogValue(string(event.EventType))).
		Str("user_id", sanitizeLogValue(event.UserID)).
		Str("login_id", sanitizeLogValue(event.LoginID)).
		Str("portal", sanitizeLogValue(event.Portal)).
		Str("ip", sanitizeLogValue(event.IP)).
		Str("user_agent", sanitizeLogValue(event.UserAgent)).
		Int("details", len(event.Details)).
		Msg(sanitizeLogValue(event.Message))

	if db == nil {
		return
	}

	var details datatypes.JSON
	if event.Details != nil {
		if b, err := json.Marshal(event.Details); err == nil {
			details = datatypes.JSON(b)
		}
	}

	entry := model.SecurityLog{
		EventType: string(event.EventType),
		UserID:    sanitizeLogValue(event.UserID),
		LoginID:   sanitizeLogValue(event.LoginID),
		Portal:    sanitizeLogValue(event.Portal),
		IP:        sanitizeLogValue(event.IP),
		Location:  sanitizeLogValue(FormatLocation(GetIPLocation(event.IP))),
		UserAgent: sanitizeLogValue(event.UserAgent),
		Message:   sanitizeLogValue(event.Message),
		Details:   details,
	}
	if err := db.Create(&entry).Error; err != nil {
		logger.Warn().Err(err).Msg("failed to persist security event")
	}
}

// LogLoginSuccess logs a successful login event
func LogLoginSuccess(userID, loginID, portal, ip, userAgent string) {
	LogSecurityEvent(SecurityEvent{
		EventType: EventLoginSuccess,
		UserID:    userID,
		LoginID:   loginID,
		Portal:    portal,
		IP:        ip,
		UserAgent: userAgent,
		Message:   "User logged in successfully",
	})
}

// LogLoginFailure logs a failed login attempt
func LogLoginFailure(loginID, portal, ip, userAgent, reason string) {
	LogSecurityEvent(SecurityEvent{
		EventType: EventLoginFailure,
		LoginID:   loginID,
		Portal:    portal,
		IP:        ip,
		UserAgent: userAgent,
		Message:   fmt.Sprintf("Login failed: %s", reason),
	})
}

// LogSignup logs a patient self-registration
func LogSignup(userID, loginID, ip, userAgent string) {
	LogSecurityEvent(SecurityEvent{
		EventType: EventSignupSuccess,
		UserID:    userID,
		LoginID:   loginID,
		Portal:    "patient",
		IP:        ip,
		UserAgent: userAgent,
		Message:   "Patient registered",
	})
}

// LogLogout logs a logout event
func LogLogout(userID, ip, userAgent string) {
	LogSecurityEvent(SecurityEvent{
		EventType: EventLogout,
		UserID:    userID,
		IP:        ip,
		UserAgent: userAgent,
		Message:   "User logged out",
	})
}

// LogPasswordUpgraded logs the re-hash of a legacy secret
func LogPasswordUpgraded(userID, loginID string) {
	LogSecurityEvent(SecurityEvent{
		EventType: EventPasswordChanged,
		UserID:    userID,
		LoginID:   loginID,
		Message:   "Upgraded password hash to Argon2",
	})
}

// LogUnauthorizedAccess logs unauthorized access attempts
func LogUnauthorizedAccess(userID, ip, resource, reason string) {
	LogSecurityEvent(SecurityEvent{
		EventType: EventUnauthorizedAccess,
		UserID:    userID,
		IP:        ip,
		Message:   fmt.Sprintf("Unauthorized access to %s: %s", resource, reason),
	})
}

// LogRateLimitExceeded logs when rate limit is exceeded
func LogRateLimitExceeded(ip, endpoint string) {
	LogSecurityEvent(SecurityEvent{
		EventType: EventRateLimitExceeded,
		IP:        ip,
		Message:   fmt.Sprintf("Rate limit exceeded for endpoint: %s", endpoint),
	})
}
