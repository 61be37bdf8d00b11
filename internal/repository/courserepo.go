package repository

import (
	"context"

	"coursetracker/internal/model"
	"github.com/gofrs/uuid/v5"
)

// CourseRepository provides CRUD access for courses.
// Read methods resolve OwnerName alongside the course row.
type CourseRepository interface {
	// Create inserts a new course.
	Create(ctx context.Context, c *model.Course) error
	// GetByID loads a single course.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Course, error)
	// List returns all courses.
	List(ctx context.Context) ([]model.Course, error)
	// ListByOwner returns the courses created by one user.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Course, error)
	// Update applies non-nil fields and returns the updated course.
	Update(ctx context.Context, id uuid.UUID, upd model.CourseUpdate) (*model.Course, error)
	// Delete removes a course; its materials and their progress go with it.
	Delete(ctx context.Context, id uuid.UUID) error
}
