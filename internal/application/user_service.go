package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bookbuddy/bookbuddy-api/internal/domain/entity"
	"github.com/bookbuddy/bookbuddy-api/internal/domain/repository"
	"github.com/bookbuddy/bookbuddy-api/pkg/helpers"
	"github.com/bookbuddy/bookbuddy-api/pkg/mailer"
)

var ErrUserNotFound = errors.New("user not found")

// UserService handles registration and profile reads.
type UserService struct {
	Repo   repository.UserRepository
	Books  repository.BookRepository
	Rabbit *helpers.RabbitPublisher
	Logger *logrus.Logger
}

func NewUserService(repo repository.UserRepository, books repository.BookRepository, rabbit *helpers.RabbitPublisher, logger *logrus.Logger) *UserService {
	return &UserService{Repo: repo, Books: books, Rabbit: rabbit, Logger: logger}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Mobile   string
	Role     entity.Role
}

// Register creates the account. The store rejects duplicate emails itself;
// callers see repository.ErrEmailTaken. A welcome email job is queued
// best-effort and never blocks or fails the registration.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	u := &entity.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
		Mobile:   in.Mobile,
		Role:     in.Role,
	}
	if err := s.Repo.CreateUser(u); err != nil {
		return nil, err
	}
	s.queueWelcomeEmail(ctx, u)
	return u, nil
}

func (s *UserService) queueWelcomeEmail(ctx context.Context, u *entity.User) {
	if s.Rabbit == nil {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailer.TemplateWelcome,
		Data: map[string]any{
			"Name": u.Name,
			"Role": string(u.Role),
		},
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := s.Rabbit.PublishJSON(c, job); err != nil {
		s.Logger.WithError(err).WithField("email", u.Email).Warn("welcome email not queued")
	}
}

// Profile is what the profile page renders: the user plus their listings.
type Profile struct {
	User  *entity.User  `json:"user"`
	Books []entity.Book `json:"books"`
}

// GetProfile assembles the profile view for a user snapshot.
func (s *UserService) GetProfile(u *entity.User) (*Profile, error) {
	if u == nil {
		return nil, ErrUserNotFound
	}
	books, err := s.Books.GetBooksByOwnerID(u.ID)
	if err != nil {
		return nil, err
	}
	return &Profile{User: u, Books: books}, nil
}
