package memory

import "github.com/msomdec/course-api/internal/domain"

// DB owns one store per entity type for the lifetime of the process.
type DB struct {
	users   *UserRepository
	courses *CourseRepository
}

// New creates an empty database. The options apply to every store.
func New(opts ...Option) *DB {
	return &DB{
		users:   NewUserRepository(NewStore[domain.User](opts...)),
		courses: NewCourseRepository(NewStore[domain.Course](opts...)),
	}
}

// Users returns the user repository.
func (db *DB) Users() *UserRepository {
	return db.users
}

// Courses returns the course repository.
func (db *DB) Courses() *CourseRepository {
	return db.courses
}
