package store

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/Klementor/java-filmorate/internal/domain"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrFriendExists = errors.New("friend edge already exists")
)

// UserStore определяет интерфейс хранилища пользователей и рёбер дружбы.
// Рёбра направленные: AddFriend(a, b) означает "a подписан на b".
type UserStore interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Delete(ctx context.Context, id int) error

	AddFriend(ctx context.Context, userID, friendID int) error
	RemoveFriend(ctx context.Context, userID, friendID int) error
	FriendIDs(ctx context.Context, userID int) ([]int, error)
}

// InMemoryUserStore — реализация UserStore на картах под RWMutex.
type InMemoryUserStore struct {
	mu      sync.RWMutex
	users   map[int]*domain.User
	friends map[int]map[int]bool // userID -> set friendID
	nextID  int
}

func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{
		users:   make(map[int]*domain.User),
		friends: make(map[int]map[int]bool),
	}
}

func (s *InMemoryUserStore) Create(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	user.ID = s.nextID
	userCopy := cloneUser(user)
	s.users[user.ID] = userCopy
	return nil
}

func (s *InMemoryUserStore) Update(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return ErrUserNotFound
	}
	s.users[user.ID] = cloneUser(user)
	return nil
}

func (s *InMemoryUserStore) GetByID(ctx context.Context, id int) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	out := cloneUser(user)
	out.Friends = s.friendIDsLocked(id)
	return out, nil
}

func (s *InMemoryUserStore) List(ctx context.Context) ([]*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*domain.User, 0, len(s.users))
	for id, user := range s.users {
		out := cloneUser(user)
		out.Friends = s.friendIDsLocked(id)
		users = append(users, out)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (s *InMemoryUserStore) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return ErrUserNotFound
	}
	delete(s.users, id)
	delete(s.friends, id)
	return nil
}

func (s *InMemoryUserStore) AddFriend(ctx context.Context, userID, friendID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return ErrUserNotFound
	}
	if s.friends[userID] == nil {
		s.friends[userID] = make(map[int]bool)
	}
	if s.friends[userID][friendID] {
		return ErrFriendExists
	}
	s.friends[userID][friendID] = true
	return nil
}

func (s *InMemoryUserStore) RemoveFriend(ctx context.Context, userID, friendID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return ErrUserNotFound
	}
	delete(s.friends[userID], friendID)
	return nil
}

func (s *InMemoryUserStore) FriendIDs(ctx context.Context, userID int) ([]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.users[userID]; !ok {
		return nil, ErrUserNotFound
	}
	return s.friendIDsLocked(userID), nil
}

func (s *InMemoryUserStore) friendIDsLocked(userID int) []int {
	edges := s.friends[userID]
	if len(edges) == 0 {
		return nil
	}
	ids := make([]int, 0, len(edges))
	for friendID := range edges {
		ids = append(ids, friendID)
	}
	sort.Ints(ids)
	return ids
}

func cloneUser(user *domain.User) *domain.User {
	out := *user
	out.Friends = append([]int(nil), user.Friends...)
	return &out
}
