package auth

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/mrlokans/hirehub/internal/entities"
)

// memStore is an in-memory UserStore with an injectable fault.
type memStore struct {
	mu      sync.Mutex
	byID    map[string]*entities.User
	byEmail map[string]string
	fault   error
}

func newMemStore() *memStore {
	return &memStore{
		byID:    make(map[string]*entities.User),
		byEmail: make(map[string]string),
	}
}

func (s *memStore) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fault != nil {
		return nil, s.fault
	}
	id, ok := s.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	u := *s.byID[id]
	return &u, nil
}

func (s *memStore) FindByID(_ context.Context, id string) (*entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fault != nil {
		return nil, s.fault
	}
	user, ok := s.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	u := *user
	return &u, nil
}

func (s *memStore) Create(_ context.Context, user *entities.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fault != nil {
		return s.fault
	}
	if _, exists := s.byEmail[user.Email]; exists {
		return ErrDuplicateEmail
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	u := *user
	s.byID[user.ID] = &u
	s.byEmail[user.Email] = user.ID
	return nil
}

func (s *memStore) delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user, ok := s.byID[id]; ok {
		delete(s.byEmail, user.Email)
		delete(s.byID, id)
	}
}

func (s *memStore) setFault(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fault = err
}

func (s *memStore) get(email string) *entities.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.byEmail[email]
	if !ok {
		return nil
	}
	return s.byID[id]
}
