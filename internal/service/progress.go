package service

import (
	"context"
	"errors"

	"coursetracker/internal/errs"
	"coursetracker/internal/model"
	"coursetracker/internal/repository"
	"github.com/gofrs/uuid/v5"
)

// ProgressService records completion marks and reports per-course ratios.
// Progress is always scoped to the acting user; nobody reads another user's
// marks.
type ProgressService interface {
	// Mark records completion of one material for the acting user. A second
	// mark for the same pair returns ErrAlreadyExists; there is no unmark.
	Mark(ctx context.Context, userID, courseID uuid.UUID, counter int) (*model.Progress, error)
	// CourseProgress reports (completed, total) for the acting user.
	// Total==0 means the course has no lessons yet.
	CourseProgress(ctx context.Context, userID, courseID uuid.UUID) (model.CourseProgress, error)
}

type ProgressServiceImpl struct {
	courses   repository.CourseRepository
	materials repository.MaterialRepository
	progress  repository.ProgressRepository
}

// NewProgressService constructs ProgressService with required dependencies.
func NewProgressService(courses repository.CourseRepository, materials repository.MaterialRepository, progress repository.ProgressRepository) *ProgressServiceImpl {
	return &ProgressServiceImpl{courses: courses, materials: materials, progress: progress}
}

// Mark records completion of one material for the acting user.
func (s *ProgressServiceImpl) Mark(ctx context.Context, userID, courseID uuid.UUID, counter int) (*model.Progress, error) {
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		return nil, err
	}
	m, err := s.materials.GetByCounter(ctx, courseID, counter)
	if err != nil {
		return nil, err
	}
	if _, err := s.progress.Get(ctx, userID, m.ID); err == nil {
		return nil, errs.ErrAlreadyExists
	} else if !errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	p := &model.Progress{
		ID:         id,
		UserID:     userID,
		MaterialID: m.ID,
		Completed:  true,
	}
	// the unique (user_id, material_id) constraint backstops a concurrent mark
	if err := s.progress.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// CourseProgress reports the acting user's completion over one course.
func (s *ProgressServiceImpl) CourseProgress(ctx context.Context, userID, courseID uuid.UUID) (model.CourseProgress, error) {
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		return model.CourseProgress{}, err
	}
	return s.progress.CourseProgress(ctx, courseID, userID)
}
