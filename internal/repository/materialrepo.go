package repository

import (
	"context"

	"coursetracker/internal/model"
	"github.com/gofrs/uuid/v5"
)

// MaterialRepository provides access to course materials addressed by their
// stable per-course counter.
type MaterialRepository interface {
	// Create inserts a new material, allocating the next counter for its course
	// inside the same statement. On a concurrent allocation race it returns
	// errs.ErrCounterConflict and the caller may retry.
	Create(ctx context.Context, m *model.Material) error
	// GetByCounter loads one material by (course, counter).
	GetByCounter(ctx context.Context, courseID uuid.UUID, counter int) (*model.Material, error)
	// ListByCourse returns a course's materials ordered by counter.
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]model.Material, error)
	// List returns all materials.
	List(ctx context.Context) ([]model.Material, error)
	// Update applies non-nil fields and returns the updated material.
	Update(ctx context.Context, courseID uuid.UUID, counter int, upd model.MaterialUpdate) (*model.Material, error)
	// Delete removes one material; the counter is never reclaimed.
	Delete(ctx context.Context, courseID uuid.UUID, counter int) error
	// Schedule returns (title, lesson date) pairs ordered by lesson date.
	Schedule(ctx context.Context, courseID uuid.UUID) ([]model.ScheduleEntry, error)
}
