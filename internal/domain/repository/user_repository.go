package repository

import (
	"errors"

	"github.com/bookbuddy/bookbuddy-api/internal/domain/entity"
)

var (
	// ErrNotFound is returned by any lookup that misses.
	ErrNotFound = errors.New("not found")
	// ErrEmailTaken is returned when creating a user with an email that is
	// already registered. Uniqueness is enforced by the store itself, not
	// left to callers.
	ErrEmailTaken = errors.New("email already registered")
)

// UserRepository defines user operations over the entity store.
// Users are created once at registration and never updated or deleted.
type UserRepository interface {
	CreateUser(u *entity.User) error
	GetUserByEmail(email string) (*entity.User, error)
	GetAllUsers() ([]entity.User, error)
}
