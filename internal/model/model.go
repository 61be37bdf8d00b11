// Package model defines domain entities used by services and repositories.
package model

import (
	"encoding/json"
	"time"

	"github.com/gofrs/uuid/v5"
)

// DateOnly is the wire layout for lesson dates: calendar dates, no time part.
const DateOnly = "2006-01-02"

// User represents an account. The password hash is never serialized.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"` // unique
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"-"`
}

// Course is a collection of ordered materials owned by a single user.
type Course struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	OwnerID     uuid.UUID `json:"owner_id"`
	OwnerName   string    `json:"owner_name,omitempty"` // filled on read paths
	CreatedAt   time.Time `json:"-"`
}

// Material is a single lesson inside a course. Counter is the stable per-course
// sequence number assigned at creation; it is never renumbered, so "material #3"
// keeps meaning the same lesson even after sibling deletions.
type Material struct {
	ID         uuid.UUID `json:"id"`
	CourseID   uuid.UUID `json:"course_id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	DateLesson time.Time `json:"date_lesson"`
	Counter    int       `json:"counter"`
}

// MarshalJSON renders date_lesson as a bare calendar date.
func (m Material) MarshalJSON() ([]byte, error) {
	type alias Material
	return json.Marshal(struct {
		alias
		DateLesson string `json:"date_lesson"`
	}{alias(m), m.DateLesson.Format(DateOnly)})
}

// Progress is a completion mark for exactly one (user, material) pair.
type Progress struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	MaterialID uuid.UUID `json:"material_id"`
	Completed  bool      `json:"-"`
}

// Tokens collects issued access tokens.
type Tokens struct {
	AccessToken string
	ExpiresAt   time.Time // access token expiry (for diagnostics)
}

// CourseProgress aggregates a user's completion over one course.
// Total==0 means the course has no lessons yet, which is distinct from
// "nothing completed"; callers must not fold it into a 0/0 ratio.
type CourseProgress struct {
	Completed int
	Total     int
}

// ScheduleEntry is one row of a course schedule ordered by lesson date.
type ScheduleEntry struct {
	Title      string    `json:"title"`
	DateLesson time.Time `json:"date_lesson"`
}

// MarshalJSON renders date_lesson as a bare calendar date.
func (e ScheduleEntry) MarshalJSON() ([]byte, error) {
	type alias ScheduleEntry
	return json.Marshal(struct {
		alias
		DateLesson string `json:"date_lesson"`
	}{alias(e), e.DateLesson.Format(DateOnly)})
}

// CourseUpdate carries optional course fields; nil means keep current value.
type CourseUpdate struct {
	Title       *string
	Description *string
}

// MaterialUpdate carries optional material fields; nil means keep current value.
// The counter is not updatable.
type MaterialUpdate struct {
	Title      *string
	Content    *string
	DateLesson *time.Time
}
