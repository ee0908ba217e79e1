package service

import (
	"context"
	"fmt"

	"github.com/msomdec/course-api/internal/domain"
)

// CourseInput is a validated course creation request.
type CourseInput struct {
	Title       string
	Description string
	Image       string
}

// CourseService handles course CRUD with the ownership rule: a course may
// be changed only by its creator or by an admin.
type CourseService struct {
	courses domain.CourseRepository
}

// NewCourseService creates a new CourseService.
func NewCourseService(courses domain.CourseRepository) *CourseService {
	return &CourseService{courses: courses}
}

// List returns every course in creation order.
func (s *CourseService) List(ctx context.Context) ([]domain.Course, error) {
	return s.courses.List(ctx)
}

// GetByID returns a course by ID.
func (s *CourseService) GetByID(ctx context.Context, id string) (*domain.Course, error) {
	return s.courses.GetByID(ctx, id)
}

// Create publishes a course owned by actor, who must be a coach or admin.
func (s *CourseService) Create(ctx context.Context, actor domain.Claims, in CourseInput) (*domain.Course, error) {
	if !actor.HasRole(domain.RoleCoach, domain.RoleAdmin) {
		return nil, domain.ErrForbidden
	}

	course := &domain.Course{
		Title:       in.Title,
		Description: in.Description,
		Image:       in.Image,
		CreatedBy:   actor.UserID,
	}
	if err := s.courses.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("create course: %w", err)
	}
	return course, nil
}

// Update applies patch with ownership check.
func (s *CourseService) Update(ctx context.Context, actor domain.Claims, id string, patch domain.CoursePatch) (*domain.Course, error) {
	if err := s.authorize(ctx, actor, id); err != nil {
		return nil, err
	}

	course, err := s.courses.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update course: %w", err)
	}
	return course, nil
}

// Delete deletes a course with ownership check.
func (s *CourseService) Delete(ctx context.Context, actor domain.Claims, id string) error {
	if err := s.authorize(ctx, actor, id); err != nil {
		return err
	}
	return s.courses.Delete(ctx, id)
}

func (s *CourseService) authorize(ctx context.Context, actor domain.Claims, id string) error {
	existing, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.CreatedBy != actor.UserID && actor.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	return nil
}
