package handler

import (
	"fmt"
	"net/mail"
	"net/url"
	"time"
	"unicode/utf8"

	"github.com/msomdec/course-api/internal/domain"
	"github.com/msomdec/course-api/internal/service"
)

// CourseDTO is the JSON representation of a course.
type CourseDTO struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
	CreatedBy   string `json:"createdBy"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

func toCourseDTO(c *domain.Course) CourseDTO {
	return CourseDTO{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Image:       c.Image,
		CreatedBy:   c.CreatedBy,
		CreatedAt:   c.CreatedAt.Format(time.RFC3339Nano),
		UpdatedAt:   c.UpdatedAt.Format(time.RFC3339Nano),
	}
}

func toCourseDTOs(courses []domain.Course) []CourseDTO {
	dtos := make([]CourseDTO, len(courses))
	for i := range courses {
		dtos[i] = toCourseDTO(&courses[i])
	}
	return dtos
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r registerRequest) validate() error {
	if err := validateName(r.Name); err != nil {
		return err
	}
	if err := validateEmail(r.Email); err != nil {
		return err
	}
	return validatePassword(r.Password)
}

func (r registerRequest) toInput() service.RegisterInput {
	return service.RegisterInput{Name: r.Name, Email: r.Email, Password: r.Password}
}

func (r registerRequest) toCoachInput() service.CoachInput {
	return service.CoachInput{Name: r.Name, Email: r.Email, Password: r.Password}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r loginRequest) validate() error {
	if err := validateEmail(r.Email); err != nil {
		return err
	}
	if r.Password == "" {
		return fmt.Errorf("%w: password is required", domain.ErrInvalidInput)
	}
	return nil
}

type updateMeRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

func (r updateMeRequest) validate() error {
	if r.Name != nil {
		if err := validateName(*r.Name); err != nil {
			return err
		}
	}
	if r.Email != nil {
		if err := validateEmail(*r.Email); err != nil {
			return err
		}
	}
	return nil
}

func (r updateMeRequest) toPatch() domain.UserPatch {
	return domain.UserPatch{Name: r.Name, Email: r.Email}
}

type createCourseRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Image       *string `json:"image"`
}

func (r createCourseRequest) validate() error {
	if r.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if r.Description == "" {
		return fmt.Errorf("%w: description is required", domain.ErrInvalidInput)
	}
	if r.Image != nil {
		return validateImageURL(*r.Image)
	}
	return nil
}

func (r createCourseRequest) toInput() service.CourseInput {
	in := service.CourseInput{Title: r.Title, Description: r.Description}
	if r.Image != nil {
		in.Image = *r.Image
	}
	return in
}

type updateCourseRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
}

func (r updateCourseRequest) validate() error {
	if r.Title != nil && *r.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if r.Description != nil && *r.Description == "" {
		return fmt.Errorf("%w: description is required", domain.ErrInvalidInput)
	}
	if r.Image != nil {
		return validateImageURL(*r.Image)
	}
	return nil
}

func (r updateCourseRequest) toPatch() domain.CoursePatch {
	return domain.CoursePatch{Title: r.Title, Description: r.Description, Image: r.Image}
}

func validateName(name string) error {
	if utf8.RuneCountInString(name) < 2 {
		return fmt.Errorf("%w: name must be at least 2 characters", domain.ErrInvalidInput)
	}
	return nil
}

func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("%w: invalid email address", domain.ErrInvalidInput)
	}
	return nil
}

func validatePassword(password string) error {
	if utf8.RuneCountInString(password) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", domain.ErrInvalidInput)
	}
	return nil
}

func validateImageURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: invalid image URL", domain.ErrInvalidInput)
	}
	return nil
}
