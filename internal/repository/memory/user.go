package memory

import (
	"context"
	"errors"

	"github.com/msomdec/course-api/internal/domain"
)

// UserRepository implements domain.UserRepository on top of a Store.
type UserRepository struct {
	store *Store[domain.User, *domain.User]
}

// NewUserRepository creates a UserRepository backed by store.
func NewUserRepository(store *Store[domain.User, *domain.User]) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	created, ok := r.store.CreateUnless(*user, sameEmail)
	if !ok {
		return domain.ErrDuplicateEmail
	}
	*user = created
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, ok := r.store.GetByID(id)
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, ok := r.store.FindOne(func(u domain.User) bool { return u.Email == email })
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

func (r *UserRepository) Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	user, err := r.store.UpdateUnless(id, func(u *domain.User) {
		if patch.Name != nil {
			u.Name = *patch.Name
		}
		if patch.Email != nil {
			u.Email = *patch.Email
		}
	}, sameEmail)
	switch {
	case errors.Is(err, ErrNotFound):
		return nil, domain.ErrUserNotFound
	case errors.Is(err, ErrConflict):
		return nil, domain.ErrDuplicateEmail
	case err != nil:
		return nil, err
	}
	return &user, nil
}

// List returns every user in registration order.
func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	return r.store.List(), nil
}

// Emails are compared exactly as stored.
func sameEmail(existing, candidate domain.User) bool {
	return existing.Email == candidate.Email
}
