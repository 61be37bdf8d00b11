package postgres

import (
	"context"
	"errors"

	"coursetracker/internal/errs"
	"coursetracker/internal/model"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
)

// MaterialRepo implements MaterialRepository using PostgreSQL.
type MaterialRepo struct{ db *DB }

// NewMaterialRepo constructs a material repository.
func NewMaterialRepo(db *DB) *MaterialRepo { return &MaterialRepo{db: db} }

// Create inserts a material, allocating the next per-course counter in the same
// statement. The UNIQUE (course_id, counter) constraint turns a concurrent
// allocation into ErrCounterConflict instead of a silent duplicate.
func (r *MaterialRepo) Create(ctx context.Context, m *model.Material) error {
	const q = `
INSERT INTO materials (id, course_id, title, content, date_lesson, counter)
SELECT $1, $2, $3, $4, $5, COALESCE(MAX(counter), 0) + 1
FROM materials WHERE course_id = $2
RETURNING counter`
	err := r.db.Pool.QueryRow(ctx, q, m.ID, m.CourseID, m.Title, m.Content, m.DateLesson).Scan(&m.Counter)
	if isUniqueViolation(err) {
		return errs.ErrCounterConflict
	}
	return err
}

// GetByCounter selects one material by (course, counter).
func (r *MaterialRepo) GetByCounter(ctx context.Context, courseID uuid.UUID, counter int) (*model.Material, error) {
	const q = `
SELECT id, course_id, title, content, date_lesson, counter
FROM materials WHERE course_id=$1 AND counter=$2`
	row := r.db.Pool.QueryRow(ctx, q, courseID, counter)
	var m model.Material
	if err := row.Scan(&m.ID, &m.CourseID, &m.Title, &m.Content, &m.DateLesson, &m.Counter); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, errs.ErrNotFound
	}
	return &m, nil
}

// ListByCourse returns a course's materials in counter order.
func (r *MaterialRepo) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]model.Material, error) {
	const q = `
SELECT id, course_id, title, content, date_lesson, counter
FROM materials WHERE course_id=$1
ORDER BY counter`
	rows, err := r.db.Pool.Query(ctx, q, courseID)
	if err != nil {
		return nil, err
	}
	return scanMaterials(rows)
}

// List returns all materials.
func (r *MaterialRepo) List(ctx context.Context) ([]model.Material, error) {
	const q = `
SELECT id, course_id, title, content, date_lesson, counter
FROM materials
ORDER BY course_id, counter`
	rows, err := r.db.Pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	return scanMaterials(rows)
}

// Update applies non-nil fields; the counter never changes.
func (r *MaterialRepo) Update(ctx context.Context, courseID uuid.UUID, counter int, upd model.MaterialUpdate) (*model.Material, error) {
	const q = `
UPDATE materials SET
  title = COALESCE($3, title),
  content = COALESCE($4, content),
  date_lesson = COALESCE($5, date_lesson)
WHERE course_id=$1 AND counter=$2
RETURNING id, course_id, title, content, date_lesson, counter`
	row := r.db.Pool.QueryRow(ctx, q, courseID, counter, upd.Title, upd.Content, upd.DateLesson)
	var m model.Material
	if err := row.Scan(&m.ID, &m.CourseID, &m.Title, &m.Content, &m.DateLesson, &m.Counter); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, errs.ErrNotFound
	}
	return &m, nil
}

// Delete removes one material; progress rows cascade, the counter stays burned.
func (r *MaterialRepo) Delete(ctx context.Context, courseID uuid.UUID, counter int) error {
	const q = `DELETE FROM materials WHERE course_id=$1 AND counter=$2`
	tag, err := r.db.Pool.Exec(ctx, q, courseID, counter)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Schedule returns (title, lesson date) pairs ordered by lesson date.
func (r *MaterialRepo) Schedule(ctx context.Context, courseID uuid.UUID) ([]model.ScheduleEntry, error) {
	const q = `
SELECT title, date_lesson
FROM materials WHERE course_id=$1
ORDER BY date_lesson`
	rows, err := r.db.Pool.Query(ctx, q, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.ScheduleEntry
	for rows.Next() {
		var e model.ScheduleEntry
		if err := rows.Scan(&e.Title, &e.DateLesson); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func scanMaterials(rows pgx.Rows) ([]model.Material, error) {
	defer rows.Close()
	var out []model.Material
	for rows.Next() {
		var m model.Material
		if err := rows.Scan(&m.ID, &m.CourseID, &m.Title, &m.Content, &m.DateLesson, &m.Counter); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
