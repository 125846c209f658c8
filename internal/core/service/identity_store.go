package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/skilllink/marketplace/internal/core/domain"
	"github.com/skilllink/marketplace/internal/core/ports"
)

var _ ports.IdentityStore = (*IdentityStore)(nil)

// IdentityStore holds a single session's identity. The session keeps only the
// user id; every read resolves through the directory, so the session and the
// directory entry are always the same record.
type IdentityStore struct {
	dir             ports.UserDirectory
	log             zerolog.Logger
	events          ports.ActivityPublisher
	verifyPasswords bool
	now             func() time.Time

	mu     sync.RWMutex
	userID string
}

// IdentityOption customises an IdentityStore.
type IdentityOption func(*IdentityStore)

// WithPasswordVerification makes Login check the bcrypt hash of users that
// registered with a password. Users without a stored hash are always accepted.
func WithPasswordVerification(enabled bool) IdentityOption {
	return func(s *IdentityStore) { s.verifyPasswords = enabled }
}

// WithIdentityActivity publishes login, registration and profile events.
func WithIdentityActivity(p ports.ActivityPublisher) IdentityOption {
	return func(s *IdentityStore) { s.events = p }
}

func NewIdentityStore(dir ports.UserDirectory, log zerolog.Logger, opts ...IdentityOption) *IdentityStore {
	s := &IdentityStore{
		dir:    dir,
		log:    log,
		events: ports.NopPublisher{},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login starts a session for the user registered with email under role.
// On failure the session is left anonymous.
func (s *IdentityStore) Login(ctx context.Context, email, password string, role domain.Role) (*domain.User, error) {
	user, err := s.dir.FindByEmailAndRole(ctx, email, role)
	if err != nil {
		s.setSession("")
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Debug().Str("email", email).Str("role", string(role)).Msg("login rejected")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if s.verifyPasswords && user.PasswordHash != "" {
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
			s.setSession("")
			return nil, domain.ErrInvalidCredentials
		}
	}

	s.setSession(user.ID)
	s.events.Publish(domain.ActivityEvent{
		Kind:      domain.ActivityUserLoggedIn,
		Key:       user.ID,
		ActorID:   user.ID,
		Timestamp: s.now().UTC(),
	})
	s.log.Info().Str("user_id", user.ID).Str("role", string(role)).Msg("user logged in")
	return user, nil
}

// Logout clears the session. Calling it without a session is a no-op.
func (s *IdentityStore) Logout() {
	s.setSession("")
}

// Register adds a new user to the directory and makes it the current session.
func (s *IdentityStore) Register(ctx context.Context, in domain.RegisterInput) (*domain.User, error) {
	if !in.Role.Valid() {
		return nil, fmt.Errorf("register: role %q: %w", in.Role, domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.Email) == "" || strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("register: name and email are required: %w", domain.ErrInvalidInput)
	}

	now := s.now().UTC()
	user := &domain.User{
		ID:         uuid.NewString(),
		Name:       in.Name,
		Email:      in.Email,
		Role:       in.Role,
		Avatar:     in.Avatar,
		Bio:        in.Bio,
		Skills:     domain.NormalizeSkills(in.Skills),
		HourlyRate: in.HourlyRate,
		Portfolio:  in.Portfolio,
		JoinedDate: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("register: hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	created, err := s.dir.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	s.setSession(created.ID)
	s.events.Publish(domain.ActivityEvent{
		Kind:      domain.ActivityUserRegistered,
		Key:       created.ID,
		ActorID:   created.ID,
		Timestamp: now,
	})
	s.log.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user registered")
	return created, nil
}

// UpdateProfile merges update into the current user's record.
func (s *IdentityStore) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.User, error) {
	id := s.sessionID()
	if id == "" {
		return nil, domain.ErrNotAuthenticated
	}

	updated, err := s.dir.Update(ctx, id, update)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	s.events.Publish(domain.ActivityEvent{
		Kind:      domain.ActivityProfileUpdated,
		Key:       id,
		ActorID:   id,
		Timestamp: s.now().UTC(),
	})
	return updated, nil
}

// Current returns the session user, or false when the session is anonymous.
func (s *IdentityStore) Current(ctx context.Context) (*domain.User, bool) {
	id := s.sessionID()
	if id == "" {
		return nil, false
	}
	user, err := s.dir.FindByID(ctx, id)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", id).Msg("session user missing from directory")
		return nil, false
	}
	return user, true
}

func (s *IdentityStore) IsAuthenticated() bool {
	return s.sessionID() != ""
}

func (s *IdentityStore) sessionID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

func (s *IdentityStore) setSession(id string) {
	s.mu.Lock()
	s.userID = id
	s.mu.Unlock()
}
