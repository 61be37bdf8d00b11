// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"coursetracker/internal/model"
	"github.com/gofrs/uuid/v5"
)

// UserRepository provides CRUD access for user accounts.
type UserRepository interface {
	// Create inserts a new user.
	Create(ctx context.Context, u *model.User) error
	// GetByID loads a user by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	// GetByName loads a user by its unique name.
	GetByName(ctx context.Context, name string) (*model.User, error)
	// Delete removes a user; owned courses, materials and progress go with it.
	Delete(ctx context.Context, id uuid.UUID) error
}
