package ports

import (
	"context"

	"github.com/skilllink/marketplace/internal/core/domain"
)

// AuthResult is returned after a successful login or registration.
type AuthResult struct {
	Token     string
	SessionID string
	User      *domain.User
}

// AuthService manages token-backed sessions, each owning an IdentityStore.
type AuthService interface {
	Register(ctx context.Context, input domain.RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string, role domain.Role) (*AuthResult, error)
	Logout(ctx context.Context, sessionID string) error
	Profile(ctx context.Context, sessionID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, sessionID string, update domain.ProfileUpdate) (*domain.User, error)
	Active(sessionID string) bool
}
