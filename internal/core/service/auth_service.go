package service

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/skilllink/marketplace/internal/core/domain"
	"github.com/skilllink/marketplace/internal/core/ports"
)

var _ ports.AuthService = (*AuthService)(nil)

type session struct {
	identity  *IdentityStore
	expiresAt time.Time
}

// AuthService gives every token its own IdentityStore session over the
// shared user directory.
type AuthService struct {
	dir       ports.UserDirectory
	log       zerolog.Logger
	jwtSecret string
	tokenTTL  time.Duration
	opts      []IdentityOption
	now       func() time.Time

	mu       sync.RWMutex
	sessions map[string]*session
}

func NewAuthService(dir ports.UserDirectory, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger, opts ...IdentityOption) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		dir:       dir,
		log:       log,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		opts:      opts,
		now:       time.Now,
		sessions:  make(map[string]*session),
	}
}

func (s *AuthService) Register(ctx context.Context, in domain.RegisterInput) (*ports.AuthResult, error) {
	identity := NewIdentityStore(s.dir, s.log, s.opts...)
	user, err := identity.Register(ctx, in)
	if err != nil {
		return nil, err
	}
	return s.open(identity, user)
}

func (s *AuthService) Login(ctx context.Context, email, password string, role domain.Role) (*ports.AuthResult, error) {
	identity := NewIdentityStore(s.dir, s.log, s.opts...)
	user, err := identity.Login(ctx, email, password, role)
	if err != nil {
		return nil, err
	}
	return s.open(identity, user)
}

// Logout ends the session; its token is rejected from then on.
func (s *AuthService) Logout(_ context.Context, sessionID string) error {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	if !ok {
		return domain.ErrSessionNotFound
	}
	sess.identity.Logout()
	return nil
}

func (s *AuthService) Profile(ctx context.Context, sessionID string) (*domain.User, error) {
	identity, err := s.identity(sessionID)
	if err != nil {
		return nil, err
	}
	user, ok := identity.Current(ctx)
	if !ok {
		return nil, domain.ErrNotAuthenticated
	}
	return user, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, sessionID string, update domain.ProfileUpdate) (*domain.User, error) {
	identity, err := s.identity(sessionID)
	if err != nil {
		return nil, err
	}
	return identity.UpdateProfile(ctx, update)
}

// Active reports whether sessionID names a live, unexpired session.
func (s *AuthService) Active(sessionID string) bool {
	_, err := s.identity(sessionID)
	return err == nil
}

func (s *AuthService) identity(sessionID string) (*IdentityStore, error) {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()

	if !ok || !s.now().Before(sess.expiresAt) {
		return nil, domain.ErrSessionNotFound
	}
	return sess.identity, nil
}

func (s *AuthService) open(identity *IdentityStore, user *domain.User) (*ports.AuthResult, error) {
	now := s.now()
	sid := uuid.NewString()
	token, err := s.generateToken(sid, user, now)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.sweep(now)
	s.sessions[sid] = &session{identity: identity, expiresAt: now.Add(s.tokenTTL)}
	s.mu.Unlock()

	return &ports.AuthResult{Token: token, SessionID: sid, User: user}, nil
}

// sweep drops expired sessions. Callers hold s.mu.
func (s *AuthService) sweep(now time.Time) {
	for id, sess := range s.sessions {
		if !now.Before(sess.expiresAt) {
			delete(s.sessions, id)
		}
	}
}

func (s *AuthService) generateToken(sessionID string, user *domain.User, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sid":  sessionID,
		"sub":  user.ID,
		"role": string(user.Role),
		"name": user.Name,
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
