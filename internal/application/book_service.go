package application

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/bookbuddy/bookbuddy-api/internal/domain/entity"
	"github.com/bookbuddy/bookbuddy-api/internal/domain/repository"
	"github.com/bookbuddy/bookbuddy-api/pkg/helpers"
)

var ErrNotListingOwner = errors.New("not the listing owner")

// defaultCoverURL is stamped on listings created without an image, same as
// the legacy add-book form did.
const defaultCoverURL = "https://via.placeholder.com/200x300?text=No+Cover"

// BookService wraps the book repository with the ownership rules the pages
// used to enforce, plus optional cover upload to GCS.
type BookService struct {
	Repo      repository.BookRepository
	GCS       *storage.Client
	GCSBucket string
	Logger    *logrus.Logger
}

func NewBookService(repo repository.BookRepository, gcs *storage.Client, gcsBucket string, logger *logrus.Logger) *BookService {
	return &BookService{Repo: repo, GCS: gcs, GCSBucket: gcsBucket, Logger: logger}
}

// ListFilter mirrors the browse page: free-text search over title, author
// and genre, a location filter, and a toggle for unavailable listings.
// Matching is case-insensitive substring.
type ListFilter struct {
	Query              string
	Location           string
	IncludeUnavailable bool
}

// List returns the catalogue with the browse filters applied, insertion
// order preserved.
func (s *BookService) List(f ListFilter) ([]entity.Book, error) {
	books, err := s.Repo.GetAllBooks()
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(f.Query)
	loc := strings.ToLower(f.Location)

	out := make([]entity.Book, 0, len(books))
	for _, b := range books {
		if !f.IncludeUnavailable && !b.IsAvailable {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(b.Title), q) &&
			!strings.Contains(strings.ToLower(b.Author), q) &&
			!strings.Contains(strings.ToLower(b.Genre), q) {
			continue
		}
		if loc != "" && !strings.Contains(strings.ToLower(b.Location), loc) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

// Get returns one listing; repository.ErrNotFound when the id is unknown.
func (s *BookService) Get(id string) (*entity.Book, error) {
	return s.Repo.GetBookByID(id)
}

// ListByOwner returns the owner's listings for the dashboard.
func (s *BookService) ListByOwner(ownerID string) ([]entity.Book, error) {
	return s.Repo.GetBooksByOwnerID(ownerID)
}

type CreateBookInput struct {
	Title    string
	Author   string
	Genre    string
	Location string
	Contact  string
	ImageURL string
}

// Create lists a new book for owner. OwnerName is copied from the owner at
// this moment and never updated afterwards. New listings start available.
func (s *BookService) Create(owner *entity.User, in CreateBookInput) (*entity.Book, error) {
	imageURL := in.ImageURL
	if imageURL == "" {
		imageURL = defaultCoverURL
	}
	b := &entity.Book{
		Title:       in.Title,
		Author:      in.Author,
		Genre:       in.Genre,
		Location:    in.Location,
		Contact:     in.Contact,
		OwnerID:     owner.ID,
		OwnerName:   owner.Name,
		IsAvailable: true,
		ImageURL:    imageURL,
	}
	if err := s.Repo.CreateBook(b); err != nil {
		return nil, err
	}
	return b, nil
}

// SetAvailability toggles one listing. Only the listing owner may do it.
func (s *BookService) SetAvailability(id, ownerID string, available bool) (*entity.Book, error) {
	b, err := s.Repo.GetBookByID(id)
	if err != nil {
		return nil, err
	}
	if b.OwnerID != ownerID {
		return nil, ErrNotListingOwner
	}
	return s.Repo.UpdateBookAvailability(id, available)
}

// Delete removes one listing. Only the listing owner may do it.
func (s *BookService) Delete(id, ownerID string) error {
	b, err := s.Repo.GetBookByID(id)
	if err != nil {
		return err
	}
	if b.OwnerID != ownerID {
		return ErrNotListingOwner
	}
	if _, err := s.Repo.DeleteBook(id); err != nil {
		return err
	}
	return nil
}

// UploadCover stores a cover image in GCS and returns its public URL. It
// runs before the listing is created, so the record is written once with
// its final imageUrl.
func (s *BookService) UploadCover(ctx context.Context, ownerID string, r io.Reader, filename, contentType string) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("gcs not configured")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("covers", ownerID, uuid.NewString()+ext))
	return helpers.UploadImageToGCS(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
}
