package app

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/KeithOruwari19/walkingbuddy/internal/domain"
)

const minPasswordLen = 8

type account struct {
	user         domain.User
	passwordHash []byte
}

// UserStore is the in-memory credential store. It owns account records and
// password verification; callers only ever see domain.User.
type UserStore struct {
	mu      sync.RWMutex
	byID    map[domain.UserID]*account
	byEmail map[string]domain.UserID
}

func NewUserStore() *UserStore {
	return &UserStore{
		byID:    make(map[domain.UserID]*account),
		byEmail: make(map[string]domain.UserID),
	}
}

func (s *UserStore) Signup(name, email, password string) (domain.User, error) {
	email = domain.NormalizeEmail(email)
	if !domain.IsLaurierEmail(email) {
		return domain.User{}, domain.ErrInvalidEmail
	}
	if len(password) < minPasswordLen {
		return domain.User{}, domain.ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.byEmail[email]; taken {
		return domain.User{}, domain.ErrEmailTaken
	}

	u := domain.User{
		ID:    domain.UserID(uuid.NewString()),
		Name:  name,
		Email: email,
	}
	s.byID[u.ID] = &account{user: u, passwordHash: hash}
	s.byEmail[email] = u.ID
	log.Info().Str("module", "app.users").Str("user", string(u.ID)).Msg("user created")
	return u, nil
}

func (s *UserStore) Login(email, password string) (domain.User, error) {
	email = domain.NormalizeEmail(email)

	s.mu.RLock()
	id, ok := s.byEmail[email]
	var acct *account
	if ok {
		acct = s.byID[id]
	}
	s.mu.RUnlock()

	if acct == nil {
		return domain.User{}, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(acct.passwordHash, []byte(password)); err != nil {
		return domain.User{}, domain.ErrInvalidCredentials
	}
	return acct.user, nil
}

func (s *UserStore) GetByID(id domain.UserID) (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acct, ok := s.byID[id]
	if !ok {
		return domain.User{}, false
	}
	return acct.user, true
}

func (s *UserStore) GetByEmail(email string) (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[domain.NormalizeEmail(email)]
	if !ok {
		return domain.User{}, false
	}
	return s.byID[id].user, true
}

// DisplayName resolves a user id to a name for snapshot enrichment.
// Best-effort: a missing user is a normal outcome, not an error.
func (s *UserStore) DisplayName(id domain.UserID) (string, bool) {
	u, ok := s.GetByID(id)
	if !ok {
		return "", false
	}
	return u.Name, true
}

func (s *UserStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}
