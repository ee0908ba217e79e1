package domain

import "context"

// Course is a unit of teaching material published by a coach or admin.
type Course struct {
	Meta
	Title       string
	Description string
	Image       string // optional image URL, empty when absent
	CreatedBy   string // id of the creating user, immutable
}

// CoursePatch holds the course fields to change. Nil fields are left
// untouched. The creator cannot be changed.
type CoursePatch struct {
	Title       *string
	Description *string
	Image       *string
}

// CourseRepository defines persistence operations for courses.
type CourseRepository interface {
	Create(ctx context.Context, course *Course) error
	GetByID(ctx context.Context, id string) (*Course, error)
	List(ctx context.Context) ([]Course, error)
	Update(ctx context.Context, id string, patch CoursePatch) (*Course, error)
	Delete(ctx context.Context, id string) error
}
