package repository

import "github.com/bookbuddy/bookbuddy-api/internal/domain/entity"

// BookRepository defines listing operations over the entity store.
// Availability is the only mutable field; everything else is written once.
type BookRepository interface {
	CreateBook(b *entity.Book) error
	GetAllBooks() ([]entity.Book, error)
	GetBookByID(id string) (*entity.Book, error)
	GetBooksByOwnerID(ownerID string) ([]entity.Book, error)
	UpdateBookAvailability(id string, available bool) (*entity.Book, error)
	DeleteBook(id string) (bool, error)
}
