package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookbuddy/bookbuddy-api/internal/domain/entity"
	"github.com/bookbuddy/bookbuddy-api/internal/domain/repository"
	"github.com/bookbuddy/bookbuddy-api/internal/infrastructure/kv"
	"github.com/bookbuddy/bookbuddy-api/internal/infrastructure/localstore"
)

func newBookFixture(t *testing.T) (*BookService, *localstore.Store) {
	t.Helper()
	store, err := localstore.New(kv.NewMemory(), quietLogger())
	require.NoError(t, err)
	return NewBookService(store, nil, "", quietLogger()), store
}

var owner = &entity.User{ID: "owner-1", Name: "Ann Owner", Role: entity.RoleOwner}

func TestListFilters(t *testing.T) {
	svc, _ := newBookFixture(t)

	// seed catalogue: 3 available, 2 not
	tests := []struct {
		name   string
		filter ListFilter
		want   []string
	}{
		{
			name:   "default hides unavailable",
			filter: ListFilter{},
			want:   []string{"To Kill a Mockingbird", "The Great Gatsby", "Pride and Prejudice"},
		},
		{
			name:   "include unavailable shows everything",
			filter: ListFilter{IncludeUnavailable: true},
			want:   []string{"To Kill a Mockingbird", "1984", "The Great Gatsby", "Pride and Prejudice", "The Hobbit"},
		},
		{
			name:   "query matches title case-insensitively",
			filter: ListFilter{Query: "gatsby"},
			want:   []string{"The Great Gatsby"},
		},
		{
			name:   "query matches author",
			filter: ListFilter{Query: "austen"},
			want:   []string{"Pride and Prejudice"},
		},
		{
			name:   "query matches genre",
			filter: ListFilter{Query: "fantasy", IncludeUnavailable: true},
			want:   []string{"The Hobbit"},
		},
		{
			name:   "location filter",
			filter: ListFilter{Location: "new york"},
			want:   []string{"To Kill a Mockingbird"},
		},
		{
			name:   "query and location combine",
			filter: ListFilter{Query: "orwell", Location: "san francisco", IncludeUnavailable: true},
			want:   []string{"1984"},
		},
		{
			name:   "no match",
			filter: ListFilter{Query: "does not exist"},
			want:   []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			books, err := svc.List(tt.filter)
			require.NoError(t, err)
			titles := make([]string, 0, len(books))
			for _, b := range books {
				titles = append(titles, b.Title)
			}
			assert.Equal(t, tt.want, titles)
		})
	}
}

func TestCreateDefaults(t *testing.T) {
	svc, _ := newBookFixture(t)

	b, err := svc.Create(owner, CreateBookInput{
		Title: "Dune", Author: "Frank Herbert", Location: "Paris", Contact: "ann@x.y",
	})
	require.NoError(t, err)

	assert.Equal(t, "owner-1", b.OwnerID)
	assert.Equal(t, "Ann Owner", b.OwnerName, "owner name denormalized at creation")
	assert.True(t, b.IsAvailable, "new listings start available")
	assert.Equal(t, defaultCoverURL, b.ImageURL, "missing image gets the placeholder")

	withImage, err := svc.Create(owner, CreateBookInput{
		Title: "Dune II", Author: "Frank Herbert", Location: "Paris", Contact: "ann@x.y",
		ImageURL: "https://covers.example.com/dune2.jpg",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://covers.example.com/dune2.jpg", withImage.ImageURL)
}

func TestSetAvailabilityOwnership(t *testing.T) {
	svc, _ := newBookFixture(t)
	b, err := svc.Create(owner, CreateBookInput{Title: "Mine", Author: "A", Location: "L", Contact: "c"})
	require.NoError(t, err)

	updated, err := svc.SetAvailability(b.ID, owner.ID, false)
	require.NoError(t, err)
	assert.False(t, updated.IsAvailable)

	_, err = svc.SetAvailability(b.ID, "someone-else", true)
	assert.ErrorIs(t, err, ErrNotListingOwner)

	_, err = svc.SetAvailability("missing", owner.ID, true)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDeleteOwnership(t *testing.T) {
	svc, store := newBookFixture(t)
	b, err := svc.Create(owner, CreateBookInput{Title: "Mine", Author: "A", Location: "L", Contact: "c"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(b.ID, "someone-else"), ErrNotListingOwner)

	require.NoError(t, svc.Delete(b.ID, owner.ID))
	_, err = store.GetBookByID(b.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(b.ID, owner.ID), repository.ErrNotFound)
}

func TestUploadCoverUnconfigured(t *testing.T) {
	svc, _ := newBookFixture(t)
	_, err := svc.UploadCover(context.Background(), owner.ID, nil, "x.jpg", "image/jpeg")
	assert.Error(t, err)
}
