package service

import (
	"context"
	"sort"
	"time"

	"coursetracker/internal/errs"
	"coursetracker/internal/limiter"
	"coursetracker/internal/model"
	"coursetracker/internal/repository"
	"github.com/gofrs/uuid/v5"
)

type fakeUsers struct {
	byName map[string]*model.User

	createErr error
	getErr    error
}

var _ repository.UserRepository = (*fakeUsers)(nil)

func (f *fakeUsers) Create(_ context.Context, u *model.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if f.byName == nil {
		f.byName = map[string]*model.User{}
	}
	if _, exists := f.byName[u.Name]; exists {
		return errs.ErrAlreadyExists
	}
	cpy := *u
	f.byName[u.Name] = &cpy
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	for _, u := range f.byName {
		if u.ID == id {
			c := *u
			return &c, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (f *fakeUsers) GetByName(_ context.Context, name string) (*model.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byName[name]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := *u
	return &c, nil
}

func (f *fakeUsers) Delete(_ context.Context, id uuid.UUID) error {
	for name, u := range f.byName {
		if u.ID == id {
			delete(f.byName, name)
			return nil
		}
	}
	return errs.ErrNotFound
}

type fakeCourses struct {
	byID map[uuid.UUID]*model.Course
}

var _ repository.CourseRepository = (*fakeCourses)(nil)

func (f *fakeCourses) Create(_ context.Context, c *model.Course) error {
	if f.byID == nil {
		f.byID = map[uuid.UUID]*model.Course{}
	}
	cpy := *c
	f.byID[c.ID] = &cpy
	return nil
}

func (f *fakeCourses) GetByID(_ context.Context, id uuid.UUID) (*model.Course, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	cpy := *c
	return &cpy, nil
}

func (f *fakeCourses) List(_ context.Context) ([]model.Course, error) {
	var out []model.Course
	for _, c := range f.byID {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCourses) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]model.Course, error) {
	var out []model.Course
	for _, c := range f.byID {
		if c.OwnerID == ownerID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCourses) Update(_ context.Context, id uuid.UUID, upd model.CourseUpdate) (*model.Course, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	if upd.Title != nil {
		c.Title = *upd.Title
	}
	if upd.Description != nil {
		c.Description = upd.Description
	}
	cpy := *c
	return &cpy, nil
}

func (f *fakeCourses) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.byID[id]; !ok {
		return errs.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeMaterials reproduces the allocate-on-insert behavior of the real repo,
// including the retryable conflict when conflictsLeft > 0.
type fakeMaterials struct {
	items map[uuid.UUID]*model.Material

	conflictsLeft int
	createErr     error
}

var _ repository.MaterialRepository = (*fakeMaterials)(nil)

func (f *fakeMaterials) Create(_ context.Context, m *model.Material) error {
	if f.createErr != nil {
		return f.createErr
	}
	if f.conflictsLeft > 0 {
		f.conflictsLeft--
		return errs.ErrCounterConflict
	}
	if f.items == nil {
		f.items = map[uuid.UUID]*model.Material{}
	}
	max := 0
	for _, it := range f.items {
		if it.CourseID == m.CourseID && it.Counter > max {
			max = it.Counter
		}
	}
	m.Counter = max + 1
	cpy := *m
	f.items[m.ID] = &cpy
	return nil
}

func (f *fakeMaterials) GetByCounter(_ context.Context, courseID uuid.UUID, counter int) (*model.Material, error) {
	for _, it := range f.items {
		if it.CourseID == courseID && it.Counter == counter {
			cpy := *it
			return &cpy, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (f *fakeMaterials) ListByCourse(_ context.Context, courseID uuid.UUID) ([]model.Material, error) {
	var out []model.Material
	for _, it := range f.items {
		if it.CourseID == courseID {
			out = append(out, *it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Counter < out[j].Counter })
	return out, nil
}

func (f *fakeMaterials) List(_ context.Context) ([]model.Material, error) {
	var out []model.Material
	for _, it := range f.items {
		out = append(out, *it)
	}
	return out, nil
}

func (f *fakeMaterials) Update(_ context.Context, courseID uuid.UUID, counter int, upd model.MaterialUpdate) (*model.Material, error) {
	for _, it := range f.items {
		if it.CourseID == courseID && it.Counter == counter {
			if upd.Title != nil {
				it.Title = *upd.Title
			}
			if upd.Content != nil {
				it.Content = *upd.Content
			}
			if upd.DateLesson != nil {
				it.DateLesson = *upd.DateLesson
			}
			cpy := *it
			return &cpy, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (f *fakeMaterials) Delete(_ context.Context, courseID uuid.UUID, counter int) error {
	for id, it := range f.items {
		if it.CourseID == courseID && it.Counter == counter {
			delete(f.items, id)
			return nil
		}
	}
	return errs.ErrNotFound
}

func (f *fakeMaterials) Schedule(_ context.Context, courseID uuid.UUID) ([]model.ScheduleEntry, error) {
	var out []model.ScheduleEntry
	for _, it := range f.items {
		if it.CourseID == courseID {
			out = append(out, model.ScheduleEntry{Title: it.Title, DateLesson: it.DateLesson})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DateLesson.Before(out[j].DateLesson) })
	return out, nil
}

type pair struct{ user, material uuid.UUID }

type fakeProgress struct {
	rows      map[pair]*model.Progress
	materials *fakeMaterials
}

var _ repository.ProgressRepository = (*fakeProgress)(nil)

func (f *fakeProgress) Create(_ context.Context, p *model.Progress) error {
	if f.rows == nil {
		f.rows = map[pair]*model.Progress{}
	}
	k := pair{p.UserID, p.MaterialID}
	if _, exists := f.rows[k]; exists {
		return errs.ErrAlreadyExists
	}
	cpy := *p
	f.rows[k] = &cpy
	return nil
}

func (f *fakeProgress) Get(_ context.Context, userID, materialID uuid.UUID) (*model.Progress, error) {
	p, ok := f.rows[pair{userID, materialID}]
	if !ok {
		return nil, errs.ErrNotFound
	}
	cpy := *p
	return &cpy, nil
}

func (f *fakeProgress) CourseProgress(_ context.Context, courseID, userID uuid.UUID) (model.CourseProgress, error) {
	var cp model.CourseProgress
	for _, it := range f.materials.items {
		if it.CourseID != courseID {
			continue
		}
		cp.Total++
		if p, ok := f.rows[pair{userID, it.ID}]; ok && p.Completed {
			cp.Completed++
		}
	}
	return cp, nil
}

type fakeLimiter struct {
	allowOK  bool
	allowErr error

	failBlocked bool
	failErr     error

	allowCalls   int
	failureCalls int
	successCalls int
}

var _ limiter.Limiter = (*fakeLimiter)(nil)

func (f *fakeLimiter) Allow(_ context.Context, _ string, _ []byte) (bool, time.Duration, error) {
	f.allowCalls++
	return f.allowOK, 0, f.allowErr
}

func (f *fakeLimiter) Success(_ context.Context, _ string, _ []byte) error {
	f.successCalls++
	return nil
}

func (f *fakeLimiter) Failure(_ context.Context, _ string, _ []byte) (bool, time.Duration, error) {
	f.failureCalls++
	return f.failBlocked, 0, f.failErr
}
