package postgres

import (
	"context"
	"errors"

	"coursetracker/internal/errs"
	"coursetracker/internal/model"
	"github.com/gofrs/uuid/v5"
)

// ProgressRepo implements ProgressRepository using PostgreSQL.
type ProgressRepo struct{ db *DB }

// NewProgressRepo constructs a progress repository.
func NewProgressRepo(db *DB) *ProgressRepo { return &ProgressRepo{db: db} }

// Create inserts one completion mark. The UNIQUE (user_id, material_id)
// constraint rejects a second mark for the same pair.
func (r *ProgressRepo) Create(ctx context.Context, p *model.Progress) error {
	const q = `
INSERT INTO progress (id, user_id, material_id, completed)
VALUES ($1, $2, $3, $4)`
	_, err := r.db.Pool.Exec(ctx, q, p.ID, p.UserID, p.MaterialID, p.Completed)
	if isUniqueViolation(err) {
		return errs.ErrAlreadyExists
	}
	return err
}

// Get selects the mark for one (user, material) pair.
func (r *ProgressRepo) Get(ctx context.Context, userID, materialID uuid.UUID) (*model.Progress, error) {
	const q = `
SELECT id, user_id, material_id, completed
FROM progress WHERE user_id=$1 AND material_id=$2`
	row := r.db.Pool.QueryRow(ctx, q, userID, materialID)
	var p model.Progress
	if err := row.Scan(&p.ID, &p.UserID, &p.MaterialID, &p.Completed); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, errs.ErrNotFound
	}
	return &p, nil
}

// CourseProgress counts the course's materials and the user's completed ones.
func (r *ProgressRepo) CourseProgress(ctx context.Context, courseID, userID uuid.UUID) (model.CourseProgress, error) {
	const q = `
SELECT
  (SELECT count(*) FROM materials WHERE course_id=$1),
  (SELECT count(*) FROM progress p JOIN materials m ON m.id = p.material_id
   WHERE m.course_id=$1 AND p.user_id=$2 AND p.completed)`
	var cp model.CourseProgress
	if err := r.db.Pool.QueryRow(ctx, q, courseID, userID).Scan(&cp.Total, &cp.Completed); err != nil {
		return model.CourseProgress{}, err
	}
	return cp, nil
}
