// Package localstore is the authoritative entity store: the users and
// books collections live in memory for the life of the process and every
// mutation writes the whole collection back to the byte store before
// returning. This mirrors the legacy browser client, which kept both
// collections in module state and mirrored them to local storage on every
// change.
//
// Two processes sharing one byte store are not coordinated; the last
// writer wins. That gap is inherited from the legacy design and is
// deliberately left in place.
package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/bookbuddy/bookbuddy-api/internal/domain/entity"
	"github.com/bookbuddy/bookbuddy-api/internal/domain/repository"
	"github.com/bookbuddy/bookbuddy-api/internal/infrastructure/kv"
)

// Store owns the in-memory collections and their write-through persistence.
// Construct one per process and inject it; there is no ambient instance.
type Store struct {
	kv     kv.Store
	logger *logrus.Logger

	mu    sync.Mutex
	users []entity.User
	books []entity.Book
}

var (
	_ repository.UserRepository = (*Store)(nil)
	_ repository.BookRepository = (*Store)(nil)
)

// New loads both collections from the byte store. An absent or unreadable
// books value seeds the five sample listings and persists them right away.
// A corrupt value is logged, dropped and treated as absent rather than
// crashing the process (the legacy client parsed blindly and crashed).
func New(kvs kv.Store, logger *logrus.Logger) (*Store, error) {
	s := &Store{kv: kvs, logger: logger}
	ctx := context.Background()

	if ok := s.load(ctx, kv.KeyUsers, &s.users); !ok {
		s.users = nil
	}
	if ok := s.load(ctx, kv.KeyBooks, &s.books); !ok || s.books == nil {
		s.books = seedBooks()
		if err := s.saveBooks(); err != nil {
			return nil, err
		}
		logger.WithField("count", len(s.books)).Info("seeded sample books")
	}
	return s, nil
}

// load returns false when the key is absent or its value cannot be decoded.
// Corrupt values are deleted so the next startup is clean.
func (s *Store) load(ctx context.Context, key string, dest any) bool {
	b, err := s.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, kv.ErrKeyNotFound) {
			s.logger.WithError(err).WithField("key", key).Warn("byte store read failed")
		}
		return false
	}
	if err := json.Unmarshal(b, dest); err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("corrupt value dropped")
		_ = s.kv.Delete(ctx, key)
		return false
	}
	return true
}

func (s *Store) saveUsers() error {
	b, err := json.Marshal(s.users)
	if err != nil {
		return err
	}
	return s.kv.Set(context.Background(), kv.KeyUsers, b)
}

func (s *Store) saveBooks() error {
	b, err := json.Marshal(s.books)
	if err != nil {
		return err
	}
	return s.kv.Set(context.Background(), kv.KeyBooks, b)
}

// --- UserRepository ---

// CreateUser assigns a fresh id and appends the user. The email must not
// be in use; matching is case-sensitive, like every other lookup here.
func (s *Store) CreateUser(u *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].Email == u.Email {
			return repository.ErrEmailTaken
		}
	}
	u.ID = uuid.NewString()
	s.users = append(s.users, *u)
	if err := s.saveUsers(); err != nil {
		// keep memory consistent with the byte store
		s.users = s.users[:len(s.users)-1]
		return err
	}
	return nil
}

// GetUserByEmail returns the first user with exactly this email.
func (s *Store) GetUserByEmail(email string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].Email == email {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

// GetAllUsers returns a copy of the users collection in insertion order.
func (s *Store) GetAllUsers() ([]entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entity.User, len(s.users))
	copy(out, s.users)
	return out, nil
}

// --- BookRepository ---

// CreateBook assigns id and creation timestamp and appends the listing.
// OwnerID is stored as given; the store never checks that it references an
// existing user.
func (s *Store) CreateBook(b *entity.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b.ID = uuid.NewString()
	b.CreatedAt = time.Now().UTC().Format(time.RFC3339Nano)
	s.books = append(s.books, *b)
	if err := s.saveBooks(); err != nil {
		s.books = s.books[:len(s.books)-1]
		return err
	}
	return nil
}

// GetAllBooks returns a copy of the books collection in insertion order.
func (s *Store) GetAllBooks() ([]entity.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entity.Book, len(s.books))
	copy(out, s.books)
	return out, nil
}

// GetBookByID returns the listing with this id.
func (s *Store) GetBookByID(id string) (*entity.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.books {
		if s.books[i].ID == id {
			b := s.books[i]
			return &b, nil
		}
	}
	return nil, repository.ErrNotFound
}

// GetBooksByOwnerID returns every listing of one owner, order preserved.
func (s *Store) GetBooksByOwnerID(ownerID string) ([]entity.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []entity.Book
	for i := range s.books {
		if s.books[i].OwnerID == ownerID {
			out = append(out, s.books[i])
		}
	}
	return out, nil
}

// UpdateBookAvailability flips the availability flag of one listing and
// leaves every other field untouched. An unknown id mutates nothing.
func (s *Store) UpdateBookAvailability(id string, available bool) (*entity.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.books {
		if s.books[i].ID == id {
			prev := s.books[i].IsAvailable
			s.books[i].IsAvailable = available
			if err := s.saveBooks(); err != nil {
				s.books[i].IsAvailable = prev
				return nil, err
			}
			b := s.books[i]
			return &b, nil
		}
	}
	return nil, repository.ErrNotFound
}

// DeleteBook removes every entry with this id (ids are unique in practice)
// and reports whether anything was removed. Deleting an unknown id leaves
// the collection, and the byte store, untouched.
func (s *Store) DeleteBook(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.books[:0:0]
	for i := range s.books {
		if s.books[i].ID != id {
			kept = append(kept, s.books[i])
		}
	}
	if len(kept) == len(s.books) {
		return false, nil
	}
	prev := s.books
	s.books = kept
	if err := s.saveBooks(); err != nil {
		s.books = prev
		return false, err
	}
	return true, nil
}
