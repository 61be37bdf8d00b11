package service

import (
	"context"
	"errors"
	"time"

	"coursetracker/internal/errs"
	"coursetracker/internal/model"
	"coursetracker/internal/repository"
	"github.com/gofrs/uuid/v5"
)

// counterRetries bounds how often material creation retries after losing a
// concurrent counter allocation race.
const counterRetries = 3

// MaterialService defines material CRUD addressed by the stable per-course
// counter. Every mutation requires ownership of the parent course.
type MaterialService interface {
	// Create adds a material with the next counter for the course.
	Create(ctx context.Context, actorID, courseID uuid.UUID, title, content string, dateLesson time.Time) (*model.Material, error)
	// Get returns one material by (course, counter).
	Get(ctx context.Context, courseID uuid.UUID, counter int) (*model.Material, error)
	// List returns all materials.
	List(ctx context.Context) ([]model.Material, error)
	// Update changes title/content/date; the counter never changes.
	Update(ctx context.Context, actorID, courseID uuid.UUID, counter int, upd model.MaterialUpdate) (*model.Material, error)
	// Delete removes a material; its counter is never reused.
	Delete(ctx context.Context, actorID, courseID uuid.UUID, counter int) error
	// Schedule returns the course's lessons ordered by date.
	Schedule(ctx context.Context, courseID uuid.UUID) ([]model.ScheduleEntry, error)
}

type MaterialServiceImpl struct {
	courses   repository.CourseRepository
	materials repository.MaterialRepository
}

// NewMaterialService constructs MaterialService with required dependencies.
func NewMaterialService(courses repository.CourseRepository, materials repository.MaterialRepository) *MaterialServiceImpl {
	return &MaterialServiceImpl{courses: courses, materials: materials}
}

// Create inserts a material into an owned course. The counter is allocated
// inside the insert; when a concurrent creation wins the same counter the
// insert is retried with a fresh allocation.
func (s *MaterialServiceImpl) Create(ctx context.Context, actorID, courseID uuid.UUID, title, content string, dateLesson time.Time) (*model.Material, error) {
	c, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(actorID, c.OwnerID); err != nil {
		return nil, err
	}

	var m *model.Material
	for attempt := 0; attempt < counterRetries; attempt++ {
		id, err := uuid.NewV4()
		if err != nil {
			return nil, err
		}
		m = &model.Material{
			ID:         id,
			CourseID:   courseID,
			Title:      title,
			Content:    content,
			DateLesson: dateLesson,
		}
		err = s.materials.Create(ctx, m)
		if errors.Is(err, errs.ErrCounterConflict) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return m, nil
	}
	return nil, errs.ErrCounterConflict
}

// Get returns one material; the course is checked first so an unknown course
// and an unknown counter report the same way the rest of the API does.
func (s *MaterialServiceImpl) Get(ctx context.Context, courseID uuid.UUID, counter int) (*model.Material, error) {
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		return nil, err
	}
	return s.materials.GetByCounter(ctx, courseID, counter)
}

// List returns all materials.
func (s *MaterialServiceImpl) List(ctx context.Context) ([]model.Material, error) {
	return s.materials.List(ctx)
}

// Update changes material fields after course, material and ownership checks.
func (s *MaterialServiceImpl) Update(ctx context.Context, actorID, courseID uuid.UUID, counter int, upd model.MaterialUpdate) (*model.Material, error) {
	c, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if _, err := s.materials.GetByCounter(ctx, courseID, counter); err != nil {
		return nil, err
	}
	if err := authorizeOwner(actorID, c.OwnerID); err != nil {
		return nil, err
	}
	return s.materials.Update(ctx, courseID, counter, upd)
}

// Delete removes a material after course, material and ownership checks.
// Sibling counters keep their values; the gap stays.
func (s *MaterialServiceImpl) Delete(ctx context.Context, actorID, courseID uuid.UUID, counter int) error {
	c, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return err
	}
	if _, err := s.materials.GetByCounter(ctx, courseID, counter); err != nil {
		return err
	}
	if err := authorizeOwner(actorID, c.OwnerID); err != nil {
		return err
	}
	return s.materials.Delete(ctx, courseID, counter)
}

// Schedule returns the course's lessons ordered by date.
func (s *MaterialServiceImpl) Schedule(ctx context.Context, courseID uuid.UUID) ([]model.ScheduleEntry, error) {
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		return nil, err
	}
	return s.materials.Schedule(ctx, courseID)
}
