// Package memory holds the in-process implementations of the marketplace's
// supporting stores. State lives for the lifetime of the process only.
package memory

import (
	"context"
	"sync"

	"github.com/skilllink/marketplace/internal/core/domain"
	"github.com/skilllink/marketplace/internal/core/ports"
)

var _ ports.UserDirectory = (*UserDirectory)(nil)

// UserDirectory keeps every registered user in insertion order.
type UserDirectory struct {
	mu    sync.RWMutex
	users []*domain.User
}

// NewUserDirectory returns a directory pre-populated with seed.
func NewUserDirectory(seed ...*domain.User) *UserDirectory {
	d := &UserDirectory{users: make([]*domain.User, 0, len(seed))}
	for _, u := range seed {
		d.users = append(d.users, u.Clone())
	}
	return d
}

// FindByEmailAndRole returns the first user whose email and role both match.
func (d *UserDirectory) FindByEmailAndRole(_ context.Context, email string, role domain.Role) (*domain.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, u := range d.users {
		if u.Email == email && u.Role == role {
			return u.Clone(), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (d *UserDirectory) FindByID(_ context.Context, id string) (*domain.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if u := d.find(id); u != nil {
		return u.Clone(), nil
	}
	return nil, domain.ErrUserNotFound
}

// Create appends user. An email may be registered once per role.
func (d *UserDirectory) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, u := range d.users {
		if u.ID == user.ID || (u.Email == user.Email && u.Role == user.Role) {
			return nil, domain.ErrUserExists
		}
	}
	stored := user.Clone()
	d.users = append(d.users, stored)
	return stored.Clone(), nil
}

// Update merges update into the stored record in place. Changing the email
// to one another user already holds for the same role fails with
// ErrUserExists and leaves the record untouched.
func (d *UserDirectory) Update(_ context.Context, id string, update domain.ProfileUpdate) (*domain.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	u := d.find(id)
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	if update.Email != nil {
		for _, other := range d.users {
			if other.ID != id && other.Email == *update.Email && other.Role == u.Role {
				return nil, domain.ErrUserExists
			}
		}
	}
	update.Apply(u)
	return u.Clone(), nil
}

// Len reports how many users are registered.
func (d *UserDirectory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.users)
}

func (d *UserDirectory) find(id string) *domain.User {
	for _, u := range d.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}
