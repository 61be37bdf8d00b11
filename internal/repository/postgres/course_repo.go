package postgres

import (
	"context"
	"errors"

	"coursetracker/internal/errs"
	"coursetracker/internal/model"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
)

// CourseRepo implements CourseRepository using PostgreSQL.
type CourseRepo struct{ db *DB }

// NewCourseRepo constructs a course repository.
func NewCourseRepo(db *DB) *CourseRepo { return &CourseRepo{db: db} }

const courseCols = `c.id, c.title, c.description, c.owner_id, u.name, c.created_at`

// Create inserts a new course row.
func (r *CourseRepo) Create(ctx context.Context, c *model.Course) error {
	const q = `
INSERT INTO courses (id, title, description, owner_id)
VALUES ($1, $2, $3, $4)`
	_, err := r.db.Pool.Exec(ctx, q, c.ID, c.Title, c.Description, c.OwnerID)
	return err
}

// GetByID selects a course with its owner's name.
func (r *CourseRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Course, error) {
	const q = `
SELECT ` + courseCols + `
FROM courses c JOIN users u ON u.id = c.owner_id
WHERE c.id=$1`
	row := r.db.Pool.QueryRow(ctx, q, id)
	var c model.Course
	if err := row.Scan(&c.ID, &c.Title, &c.Description, &c.OwnerID, &c.OwnerName, &c.CreatedAt); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, errs.ErrNotFound
	}
	return &c, nil
}

// List returns all courses with owner names.
func (r *CourseRepo) List(ctx context.Context) ([]model.Course, error) {
	const q = `
SELECT ` + courseCols + `
FROM courses c JOIN users u ON u.id = c.owner_id
ORDER BY c.created_at`
	rows, err := r.db.Pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	return scanCourses(rows)
}

// ListByOwner returns courses created by one user.
func (r *CourseRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Course, error) {
	const q = `
SELECT ` + courseCols + `
FROM courses c JOIN users u ON u.id = c.owner_id
WHERE c.owner_id=$1
ORDER BY c.created_at`
	rows, err := r.db.Pool.Query(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	return scanCourses(rows)
}

// Update applies non-nil fields and returns the updated row with the owner name.
func (r *CourseRepo) Update(ctx context.Context, id uuid.UUID, upd model.CourseUpdate) (*model.Course, error) {
	const q = `
UPDATE courses SET
  title = COALESCE($2, title),
  description = COALESCE($3, description)
WHERE id=$1
RETURNING id, title, description, owner_id, created_at`
	row := r.db.Pool.QueryRow(ctx, q, id, upd.Title, upd.Description)
	var c model.Course
	if err := row.Scan(&c.ID, &c.Title, &c.Description, &c.OwnerID, &c.CreatedAt); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, errs.ErrNotFound
	}
	return &c, nil
}

// Delete removes a course row; materials and progress cascade in the schema.
func (r *CourseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM courses WHERE id=$1`
	tag, err := r.db.Pool.Exec(ctx, q, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func scanCourses(rows pgx.Rows) ([]model.Course, error) {
	defer rows.Close()
	var out []model.Course
	for rows.Next() {
		var c model.Course
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.OwnerID, &c.OwnerName, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
