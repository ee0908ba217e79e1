package handler

import (
	"net/http"

	"github.com/msomdec/course-api/internal/domain"
	"github.com/msomdec/course-api/internal/service"
)

// CourseHandler handles course requests.
type CourseHandler struct {
	courses *service.CourseService
}

// NewCourseHandler creates a new CourseHandler.
func NewCourseHandler(courses *service.CourseService) *CourseHandler {
	return &CourseHandler{courses: courses}
}

// HandleList returns every course.
// GET /courses
func (h *CourseHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	courses, err := h.courses.List(r.Context())
	if err != nil {
		writeServiceError(w, "list courses", err)
		return
	}
	writeData(w, http.StatusOK, "", toCourseDTOs(courses))
}

// HandleGet returns one course.
// GET /courses/{id}
func (h *CourseHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	course, err := h.courses.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, "get course", err)
		return
	}
	writeData(w, http.StatusOK, "", toCourseDTO(course))
}

// HandleCreate publishes a course owned by the caller.
// POST /courses
// Request: {"title":"...","description":"...","image":"https://..."}
func (h *CourseHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeServiceError(w, "create course", domain.ErrUnauthenticated)
		return
	}

	var req createCourseRequest
	if err := readJSON(w, r, &req); err != nil {
		writeServiceError(w, "create course", err)
		return
	}
	if err := req.validate(); err != nil {
		writeServiceError(w, "create course", err)
		return
	}

	course, err := h.courses.Create(r.Context(), claims, req.toInput())
	if err != nil {
		writeServiceError(w, "create course", err)
		return
	}
	writeData(w, http.StatusCreated, "Course created successfully", toCourseDTO(course))
}

// HandleUpdate changes a course owned by the caller, or any course for an
// admin.
// PUT /courses/{id}
func (h *CourseHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeServiceError(w, "update course", domain.ErrUnauthenticated)
		return
	}

	var req updateCourseRequest
	if err := readJSON(w, r, &req); err != nil {
		writeServiceError(w, "update course", err)
		return
	}
	if err := req.validate(); err != nil {
		writeServiceError(w, "update course", err)
		return
	}

	course, err := h.courses.Update(r.Context(), claims, r.PathValue("id"), req.toPatch())
	if err != nil {
		writeServiceError(w, "update course", err)
		return
	}
	writeData(w, http.StatusOK, "Course updated successfully", toCourseDTO(course))
}

// HandleDelete removes a course owned by the caller, or any course for an
// admin.
// DELETE /courses/{id}
func (h *CourseHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeServiceError(w, "delete course", domain.ErrUnauthenticated)
		return
	}

	if err := h.courses.Delete(r.Context(), claims, r.PathValue("id")); err != nil {
		writeServiceError(w, "delete course", err)
		return
	}
	writeData(w, http.StatusOK, "Course deleted successfully", nil)
}
