package application

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/bookbuddy/bookbuddy-api/internal/domain/entity"
	"github.com/bookbuddy/bookbuddy-api/internal/domain/repository"
	"github.com/bookbuddy/bookbuddy-api/internal/infrastructure/kv"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotLoggedIn        = errors.New("not logged in")
)

// State is the session state machine: either nobody is logged in, or one
// user snapshot is.
type State int

const (
	LoggedOut State = iota
	LoggedIn
)

// Redirect is a navigation instruction returned to the caller. The core
// never navigates anywhere itself; the view layer executes the redirect.
type Redirect struct {
	To string `json:"to"`
}

// SessionManager owns the single currentUser slot in the byte store. The
// slot holds a denormalized snapshot of the user taken at login and is the
// sole source of truth for "who is logged in"; Current re-reads it on
// every call rather than caching.
type SessionManager struct {
	kv     kv.Store
	users  repository.UserRepository
	logger *logrus.Logger
}

func NewSessionManager(kvs kv.Store, users repository.UserRepository, logger *logrus.Logger) *SessionManager {
	return &SessionManager{kv: kvs, users: users, logger: logger}
}

// Login transitions to LoggedIn when a user with this email exists and its
// stored password equals the supplied one exactly. No hashing: the
// plaintext comparison is the documented contract of this application.
// On any mismatch the session state is left untouched.
func (m *SessionManager) Login(email, password string) (*entity.User, error) {
	u, err := m.users.GetUserByEmail(email)
	if err != nil || u.Password != password {
		return nil, ErrInvalidCredentials
	}
	b, err := json.Marshal(u)
	if err != nil {
		return nil, err
	}
	if err := m.kv.Set(context.Background(), kv.KeyCurrentUser, b); err != nil {
		return nil, err
	}
	return u, nil
}

// Logout clears the slot and returns the redirect the legacy client
// performed as a hard navigation.
func (m *SessionManager) Logout() Redirect {
	if err := m.kv.Delete(context.Background(), kv.KeyCurrentUser); err != nil {
		m.logger.WithError(err).Warn("failed to clear session slot")
	}
	return Redirect{To: HomePath}
}

// Current returns the logged-in user snapshot, or ErrNotLoggedIn. A value
// that no longer decodes is dropped and reads as logged out.
func (m *SessionManager) Current() (*entity.User, error) {
	b, err := m.kv.Get(context.Background(), kv.KeyCurrentUser)
	if err != nil {
		if errors.Is(err, kv.ErrKeyNotFound) {
			return nil, ErrNotLoggedIn
		}
		return nil, err
	}
	var u entity.User
	if err := json.Unmarshal(b, &u); err != nil {
		m.logger.WithError(err).Warn("corrupt session slot dropped")
		_ = m.kv.Delete(context.Background(), kv.KeyCurrentUser)
		return nil, ErrNotLoggedIn
	}
	return &u, nil
}

// State reports the current machine state and, when logged in, the user.
func (m *SessionManager) State() (State, *entity.User) {
	u, err := m.Current()
	if err != nil {
		return LoggedOut, nil
	}
	return LoggedIn, u
}

func (m *SessionManager) IsAuthenticated() bool {
	st, _ := m.State()
	return st == LoggedIn
}

func (m *SessionManager) IsOwner() bool {
	_, u := m.State()
	return u.IsOwner()
}

func (m *SessionManager) IsSeeker() bool {
	_, u := m.State()
	return u.IsSeeker()
}
