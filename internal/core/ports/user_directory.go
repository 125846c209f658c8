package ports

import (
	"context"

	"github.com/skilllink/marketplace/internal/core/domain"
)

// UserDirectory is the process-wide registry of known users.
// Implementations return copies; Update is the only way to change a record.
type UserDirectory interface {
	FindByEmailAndRole(ctx context.Context, email string, role domain.Role) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, id string, update domain.ProfileUpdate) (*domain.User, error)
}
