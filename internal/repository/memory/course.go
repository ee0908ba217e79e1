package memory

import (
	"context"

	"github.com/msomdec/course-api/internal/domain"
)

// CourseRepository implements domain.CourseRepository on top of a Store.
type CourseRepository struct {
	store *Store[domain.Course, *domain.Course]
}

// NewCourseRepository creates a CourseRepository backed by store.
func NewCourseRepository(store *Store[domain.Course, *domain.Course]) *CourseRepository {
	return &CourseRepository{store: store}
}

func (r *CourseRepository) Create(ctx context.Context, course *domain.Course) error {
	*course = r.store.Create(*course)
	return nil
}

func (r *CourseRepository) GetByID(ctx context.Context, id string) (*domain.Course, error) {
	course, ok := r.store.GetByID(id)
	if !ok {
		return nil, domain.ErrCourseNotFound
	}
	return &course, nil
}

func (r *CourseRepository) List(ctx context.Context) ([]domain.Course, error) {
	return r.store.List(), nil
}

func (r *CourseRepository) Update(ctx context.Context, id string, patch domain.CoursePatch) (*domain.Course, error) {
	course, ok := r.store.Update(id, func(c *domain.Course) {
		if patch.Title != nil {
			c.Title = *patch.Title
		}
		if patch.Description != nil {
			c.Description = *patch.Description
		}
		if patch.Image != nil {
			c.Image = *patch.Image
		}
	})
	if !ok {
		return nil, domain.ErrCourseNotFound
	}
	return &course, nil
}

func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	if !r.store.Delete(id) {
		return domain.ErrCourseNotFound
	}
	return nil
}
