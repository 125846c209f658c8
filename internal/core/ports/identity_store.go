package ports

import (
	"context"

	"github.com/skilllink/marketplace/internal/core/domain"
)

// IdentityStore owns one session's identity over a UserDirectory.
type IdentityStore interface {
	Login(ctx context.Context, email, password string, role domain.Role) (*domain.User, error)
	Logout()
	Register(ctx context.Context, input domain.RegisterInput) (*domain.User, error)
	UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.User, error)
	Current(ctx context.Context) (*domain.User, bool)
	IsAuthenticated() bool
}
