// Package auth implements login, registration and session rehydration on top
// of the repository and the persistent store.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ariebrainware/hms-portal/model"
	"github.com/ariebrainware/hms-portal/repository"
	"github.com/ariebrainware/hms-portal/store"
	"github.com/ariebrainware/hms-portal/util"
	cache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
)

const sessionCacheCleanup = 10 * time.Minute

// dummySecret is verified against when the identifier is unknown so that
// both failure paths cost one argon2 derivation.
const dummySecret = "argon2id$c2FsdHNhbHRzYWx0c2FsdA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

// RegisterRequest is the patient self-registration form.
type RegisterRequest struct {
	repository.PatientRequest
	Password string `json:"password"`
}

// Service owns the session lifecycle.
type Service struct {
	repo  *repository.Repository
	store store.Store
	cache *cache.Cache
	ttl   time.Duration
	log   zerolog.Logger
}

// NewService returns a session service. A zero ttl keeps sessions until
// logout.
func NewService(repo *repository.Repository, log zerolog.Logger, ttl time.Duration) *Service {
	exp := cache.NoExpiration
	if ttl > 0 {
		exp = ttl
	}
	return &Service{
		repo:  repo,
		store: repo.Store(),
		cache: cache.New(exp, sessionCacheCleanup),
		ttl:   ttl,
		log:   log,
	}
}

// Login authenticates identifier/password against the chosen portal and
// persists a new session. Every failure after input validation returns the
// same invalid-credentials error.
func (s *Service) Login(ctx context.Context, identifier, password string, kind PortalKind) (Session, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return Session{}, repository.Validation("ID and password are required")
	}
	if !kind.Valid() {
		return Session{}, repository.Validation("Unknown portal")
	}
	ci := clientFrom(ctx)

	user, err := s.lookup(ctx, identifier, kind)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return Session{}, err
	}
	secret, found, err := s.repo.CredentialFor(ctx, identifier)
	if err != nil {
		return Session{}, err
	}
	if user.ID == "" || !found {
		_, _ = util.VerifyPassword(password, dummySecret)
		return Session{}, s.loginFailed(identifier, kind, ci, "unknown identifier")
	}

	match, err := util.VerifyPassword(password, secret)
	if err != nil {
		util.LogSecurityEvent(util.SecurityEvent{EventType: util.EventSuspiciousActivity, UserID: user.ID, LoginID: identifier, IP: ci.IP, Message: "Stored credential could not be parsed"})
		return Session{}, s.loginFailed(identifier, kind, ci, "credential verification error")
	}
	if !match {
		return Session{}, s.loginFailed(identifier, kind, ci, "invalid password")
	}

	s.upgradeLegacySecret(ctx, user, identifier, password, secret)

	sess, err := s.newSession(ctx, user, kind)
	if err != nil {
		return Session{}, err
	}
	util.LogLoginSuccess(user.ID, identifier, string(kind), ci.IP, ci.UserAgent)
	return sess, nil
}

func (s *Service) lookup(ctx context.Context, identifier string, kind PortalKind) (model.User, error) {
	if kind == PortalPatient {
		return s.repo.UserByNationalHealthID(ctx, identifier)
	}
	return s.repo.StaffByID(ctx, identifier)
}

func (s *Service) loginFailed(identifier string, kind PortalKind, ci ClientInfo, reason string) error {
	util.LogLoginFailure(identifier, string(kind), ci.IP, ci.UserAgent, reason)
	return repository.InvalidCredentials()
}

func (s *Service) upgradeLegacySecret(ctx context.Context, user model.User, loginID, plain, stored string) {
	if !util.NeedsUpgrade(stored) {
		return
	}
	encoded, err := util.EncodePassword(plain)
	if err == nil {
		err = s.repo.SetCredential(ctx, loginID, encoded)
	}
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to upgrade legacy credential")
		return
	}
	util.LogPasswordUpgraded(user.ID, loginID)
}

func (s *Service) newSession(ctx context.Context, user model.User, kind PortalKind) (Session, error) {
	token, err := createJWTToken(user, kind)
	if err != nil {
		return Session{}, fmt.Errorf("sign token: %w", err)
	}
	now := s.repo.Now()
	sess := Session{Token: token, User: user, Portal: kind, CreatedAt: now}
	if s.ttl > 0 {
		exp := now.Add(s.ttl)
		sess.ExpiresAt = &exp
	}
	if err := store.Write(ctx, s.store, sessionKey(token), sess); err != nil {
		return Session{}, fmt.Errorf("persist session: %w", err)
	}
	s.cache.SetDefault(token, sess)
	return sess, nil
}

// Register creates a patient account. It does not open a session.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (model.User, error) {
	if req.Password == "" {
		return model.User{}, repository.Validation("Password is required")
	}
	secret, err := util.EncodePassword(req.Password)
	if err != nil {
		return model.User{}, fmt.Errorf("hash password: %w", err)
	}
	req.Name = util.NormalizeName(req.Name)
	user, err := s.repo.CreatePatient(ctx, req.PatientRequest, secret)
	if err != nil {
		return model.User{}, err
	}
	ci := clientFrom(ctx)
	util.LogSignup(user.ID, user.AbhaID, ci.IP, ci.UserAgent)
	return user, nil
}

// CreateStaff hashes password and adds a staff member.
func (s *Service) CreateStaff(ctx context.Context, req repository.StaffRequest, password string) (model.User, error) {
	if password == "" {
		return model.User{}, repository.Validation("Password is required")
	}
	secret, err := util.EncodePassword(password)
	if err != nil {
		return model.User{}, fmt.Errorf("hash password: %w", err)
	}
	req.Name = util.NormalizeName(req.Name)
	return s.repo.AddStaff(ctx, req, secret)
}

// Resume rehydrates the session behind token. Unknown, tampered or expired
// tokens yield ErrInvalidToken.
func (s *Service) Resume(ctx context.Context, token string) (Session, error) {
	if _, err := ParseToken(token); err != nil {
		return Session{}, err
	}
	now := s.repo.Now()

	if v, ok := s.cache.Get(token); ok {
		if sess, ok := v.(Session); ok && !sess.Expired(now) {
			return sess, nil
		}
	}

	var zero Session
	sess, err := store.Read(ctx, s.store, sessionKey(token), zero)
	if err != nil {
		s.log.Warn().Err(err).Msg("unreadable session record")
		return Session{}, ErrInvalidToken
	}
	if sess.Token == "" {
		return Session{}, ErrInvalidToken
	}
	if sess.Expired(now) {
		_ = s.drop(ctx, token)
		return Session{}, ErrInvalidToken
	}
	s.cache.SetDefault(token, sess)
	return sess, nil
}

// Logout discards the session behind token. Logging out twice is harmless.
func (s *Service) Logout(ctx context.Context, token string) error {
	sess, _ := s.Resume(ctx, token)
	if err := s.drop(ctx, token); err != nil {
		return err
	}
	if sess.Token != "" {
		ci := clientFrom(ctx)
		util.LogLogout(sess.User.ID, ci.IP, ci.UserAgent)
	}
	return nil
}

func (s *Service) drop(ctx context.Context, token string) error {
	s.cache.Delete(token)
	if err := s.store.Delete(ctx, sessionKey(token)); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// PurgeExpired removes every persisted session past its deadline and returns
// how many were removed.
func (s *Service) PurgeExpired(ctx context.Context) (int, error) {
	keys, err := s.store.Keys(ctx, model.SessionKeyPrefix)
	if err != nil {
		return 0, fmt.Errorf("list sessions: %w", err)
	}
	now := s.repo.Now()
	var stale []string
	for _, key := range keys {
		var zero Session
		sess, err := store.Read(ctx, s.store, key, zero)
		if err != nil || sess.Expired(now) {
			stale = append(stale, key)
			s.cache.Delete(strings.TrimPrefix(key, model.SessionKeyPrefix))
		}
	}
	if len(stale) == 0 {
		return 0, nil
	}
	if err := s.store.Delete(ctx, stale...); err != nil {
		return 0, fmt.Errorf("delete sessions: %w", err)
	}
	return len(stale), nil
}
