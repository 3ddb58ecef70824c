package localstore

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookbuddy/bookbuddy-api/internal/domain/entity"
	"github.com/bookbuddy/bookbuddy-api/internal/domain/repository"
	"github.com/bookbuddy/bookbuddy-api/internal/infrastructure/kv"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestStore(t *testing.T) (*Store, kv.Store) {
	t.Helper()
	kvs := kv.NewMemory()
	s, err := New(kvs, quietLogger())
	require.NoError(t, err)
	return s, kvs
}

func TestNewSeedsSampleBooks(t *testing.T) {
	s, kvs := newTestStore(t)

	books, err := s.GetAllBooks()
	require.NoError(t, err)
	require.Len(t, books, 5)

	seen := map[string]bool{}
	for _, b := range books {
		assert.NotEmpty(t, b.ID)
		assert.False(t, seen[b.ID], "duplicate id %s", b.ID)
		seen[b.ID] = true

		assert.NotEmpty(t, b.Title)
		assert.NotEmpty(t, b.OwnerName)
		_, err := time.Parse(time.RFC3339Nano, b.CreatedAt)
		assert.NoError(t, err, "createdAt must be RFC3339: %s", b.CreatedAt)
	}
	assert.Equal(t, "To Kill a Mockingbird", books[0].Title)

	// the seed was persisted immediately
	raw, err := kvs.Get(context.Background(), kv.KeyBooks)
	require.NoError(t, err)
	var persisted []entity.Book
	require.NoError(t, json.Unmarshal(raw, &persisted))
	assert.Len(t, persisted, 5)
}

func TestNewDoesNotReseedExistingBooks(t *testing.T) {
	kvs := kv.NewMemory()
	one := []entity.Book{{ID: "b1", Title: "Solo", OwnerID: "o1", IsAvailable: true}}
	raw, err := json.Marshal(one)
	require.NoError(t, err)
	require.NoError(t, kvs.Set(context.Background(), kv.KeyBooks, raw))

	s, err := New(kvs, quietLogger())
	require.NoError(t, err)

	books, err := s.GetAllBooks()
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Solo", books[0].Title)
}

func TestNewRecoversFromCorruptBooks(t *testing.T) {
	kvs := kv.NewMemory()
	require.NoError(t, kvs.Set(context.Background(), kv.KeyBooks, []byte("{not json")))

	s, err := New(kvs, quietLogger())
	require.NoError(t, err)

	books, err := s.GetAllBooks()
	require.NoError(t, err)
	assert.Len(t, books, 5, "corrupt catalogue reseeds")
}

func TestCreateUser(t *testing.T) {
	s, kvs := newTestStore(t)

	u := &entity.User{Name: "Ann", Email: "ann@example.com", Password: "secret1", Mobile: "555", Role: entity.RoleOwner}
	require.NoError(t, s.CreateUser(u))
	assert.NotEmpty(t, u.ID)

	got, err := s.GetUserByEmail("ann@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "secret1", got.Password)

	// email matching is case sensitive
	_, err = s.GetUserByEmail("Ann@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// duplicate email rejected
	dup := &entity.User{Name: "Ann2", Email: "ann@example.com", Password: "x", Role: entity.RoleSeeker}
	assert.ErrorIs(t, s.CreateUser(dup), repository.ErrEmailTaken)

	all, err := s.GetAllUsers()
	require.NoError(t, err)
	assert.Len(t, all, 1)

	// persisted collection round-trips the password verbatim
	raw, err := kvs.Get(context.Background(), kv.KeyUsers)
	require.NoError(t, err)
	var persisted []entity.User
	require.NoError(t, json.Unmarshal(raw, &persisted))
	require.Len(t, persisted, 1)
	assert.Equal(t, "secret1", persisted[0].Password)
}

func TestGetAllUsersReturnsCopy(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.CreateUser(&entity.User{Name: "Ann", Email: "a@b.c", Password: "p"}))

	all, err := s.GetAllUsers()
	require.NoError(t, err)
	all[0].Name = "mutated"

	again, err := s.GetAllUsers()
	require.NoError(t, err)
	assert.Equal(t, "Ann", again[0].Name)
}

func TestCreateBook(t *testing.T) {
	s, _ := newTestStore(t)

	b := &entity.Book{Title: "New Book", Author: "Someone", OwnerID: "owner-1", OwnerName: "Ann", IsAvailable: true}
	require.NoError(t, s.CreateBook(b))
	assert.NotEmpty(t, b.ID)
	assert.NotEmpty(t, b.CreatedAt)

	got, err := s.GetBookByID(b.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Book", got.Title)

	books, err := s.GetAllBooks()
	require.NoError(t, err)
	assert.Len(t, books, 6)
	assert.Equal(t, b.ID, books[5].ID, "insertion order preserved")

	mine, err := s.GetBooksByOwnerID("owner-1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, b.ID, mine[0].ID)

	_, err = s.GetBookByID("missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdateBookAvailability(t *testing.T) {
	s, kvs := newTestStore(t)

	b := &entity.Book{Title: "Toggle Me", Author: "A", OwnerID: "o", OwnerName: "O", IsAvailable: true, Genre: "Fiction", Location: "Oslo", Contact: "c"}
	require.NoError(t, s.CreateBook(b))

	updated, err := s.UpdateBookAvailability(b.ID, false)
	require.NoError(t, err)
	assert.False(t, updated.IsAvailable)

	// every other field untouched
	assert.Equal(t, b.Title, updated.Title)
	assert.Equal(t, b.Genre, updated.Genre)
	assert.Equal(t, b.Location, updated.Location)
	assert.Equal(t, b.CreatedAt, updated.CreatedAt)

	_, err = s.UpdateBookAvailability("missing", true)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// change was written through
	raw, err := kvs.Get(context.Background(), kv.KeyBooks)
	require.NoError(t, err)
	var persisted []entity.Book
	require.NoError(t, json.Unmarshal(raw, &persisted))
	for _, p := range persisted {
		if p.ID == b.ID {
			assert.False(t, p.IsAvailable)
		}
	}
}

func TestDeleteBook(t *testing.T) {
	s, _ := newTestStore(t)

	b := &entity.Book{Title: "Doomed", OwnerID: "o"}
	require.NoError(t, s.CreateBook(b))

	removed, err := s.DeleteBook(b.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	_, err = s.GetBookByID(b.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	removed, err = s.DeleteBook(b.ID)
	require.NoError(t, err)
	assert.False(t, removed, "deleting twice reports nothing removed")

	books, err := s.GetAllBooks()
	require.NoError(t, err)
	assert.Len(t, books, 5, "sample catalogue untouched")
}

// A second store over the same byte store sees everything the first one
// wrote, since every mutation persists the whole collection.
func TestWriteThroughReload(t *testing.T) {
	kvs := kv.NewMemory()
	first, err := New(kvs, quietLogger())
	require.NoError(t, err)

	require.NoError(t, first.CreateUser(&entity.User{Name: "Ann", Email: "ann@x.y", Password: "p", Role: entity.RoleOwner}))
	b := &entity.Book{Title: "Shared", OwnerID: "o"}
	require.NoError(t, first.CreateBook(b))

	second, err := New(kvs, quietLogger())
	require.NoError(t, err)

	u, err := second.GetUserByEmail("ann@x.y")
	require.NoError(t, err)
	assert.Equal(t, "Ann", u.Name)

	got, err := second.GetBookByID(b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Shared", got.Title)
}
