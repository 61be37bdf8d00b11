package repository

import (
	"context"

	"coursetracker/internal/model"
	"github.com/gofrs/uuid/v5"
)

// ProgressRepository records completion marks, at most one per (user, material).
type ProgressRepository interface {
	// Create inserts a completion mark. A duplicate (user, material) pair
	// returns errs.ErrAlreadyExists; there is no upsert.
	Create(ctx context.Context, p *model.Progress) error
	// Get loads the mark for one (user, material) pair.
	Get(ctx context.Context, userID, materialID uuid.UUID) (*model.Progress, error)
	// CourseProgress counts a course's materials and how many of them the user
	// has completed.
	CourseProgress(ctx context.Context, courseID, userID uuid.UUID) (model.CourseProgress, error)
}
