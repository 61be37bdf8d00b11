package service

import (
	"context"

	"coursetracker/internal/errs"
	"coursetracker/internal/model"
	"coursetracker/internal/repository"
	"github.com/gofrs/uuid/v5"
)

// authorizeOwner is the single ownership predicate gating every mutating
// operation: the actor proceeds only against resources it owns.
func authorizeOwner(actorID, ownerID uuid.UUID) error {
	if actorID != ownerID {
		return errs.ErrForbidden
	}
	return nil
}

// CourseService defines course CRUD. Reads are open; mutations are gated on
// ownership.
type CourseService interface {
	// Create adds a course owned by the acting user.
	Create(ctx context.Context, owner *model.User, title string, description *string) (*model.Course, error)
	// List returns all courses.
	List(ctx context.Context) ([]model.Course, error)
	// Get returns one course together with its materials.
	Get(ctx context.Context, id uuid.UUID) (*model.Course, []model.Material, error)
	// Update changes title/description; owner only.
	Update(ctx context.Context, actorID, courseID uuid.UUID, upd model.CourseUpdate) (*model.Course, error)
	// Delete removes the course, its materials and their progress; owner only.
	Delete(ctx context.Context, actorID, courseID uuid.UUID) error
	// UserCourses returns a user together with the courses they created.
	UserCourses(ctx context.Context, userID uuid.UUID) (*model.User, []model.Course, error)
}

type CourseServiceImpl struct {
	courses   repository.CourseRepository
	materials repository.MaterialRepository
	users     repository.UserRepository
}

// NewCourseService constructs CourseService with required dependencies.
func NewCourseService(courses repository.CourseRepository, materials repository.MaterialRepository, users repository.UserRepository) *CourseServiceImpl {
	return &CourseServiceImpl{courses: courses, materials: materials, users: users}
}

// Create adds a course owned by the acting user.
func (s *CourseServiceImpl) Create(ctx context.Context, owner *model.User, title string, description *string) (*model.Course, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	c := &model.Course{
		ID:          id,
		Title:       title,
		Description: description,
		OwnerID:     owner.ID,
		OwnerName:   owner.Name,
	}
	if err := s.courses.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// List returns all courses.
func (s *CourseServiceImpl) List(ctx context.Context) ([]model.Course, error) {
	return s.courses.List(ctx)
}

// Get returns one course with its materials in counter order.
func (s *CourseServiceImpl) Get(ctx context.Context, id uuid.UUID) (*model.Course, []model.Material, error) {
	c, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	ms, err := s.materials.ListByCourse(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return c, ms, nil
}

// Update changes title/description after the ownership check.
func (s *CourseServiceImpl) Update(ctx context.Context, actorID, courseID uuid.UUID, upd model.CourseUpdate) (*model.Course, error) {
	c, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(actorID, c.OwnerID); err != nil {
		return nil, err
	}
	updated, err := s.courses.Update(ctx, courseID, upd)
	if err != nil {
		return nil, err
	}
	updated.OwnerName = c.OwnerName
	return updated, nil
}

// Delete removes the course after the ownership check; materials and progress
// rows go with it.
func (s *CourseServiceImpl) Delete(ctx context.Context, actorID, courseID uuid.UUID) error {
	c, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return err
	}
	if err := authorizeOwner(actorID, c.OwnerID); err != nil {
		return err
	}
	return s.courses.Delete(ctx, courseID)
}

// UserCourses returns the user and the courses they created.
func (s *CourseServiceImpl) UserCourses(ctx context.Context, userID uuid.UUID) (*model.User, []model.Course, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	cs, err := s.courses.ListByOwner(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return u, cs, nil
}
