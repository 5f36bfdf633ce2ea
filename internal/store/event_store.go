package store

import (
	"context"
	"sync"
	"time"

	"github.com/Klementor/java-filmorate/internal/domain"
)

// EventStore — журнал событий ленты. Записи неизменяемы: только
// добавление и чтение, id строго возрастают.
type EventStore interface {
	// Append сохраняет событие, назначая ему id и timestamp (unix millis).
	Append(ctx context.Context, event *domain.HistoryEvent) error
	// ListFor возвращает события пользователя в порядке добавления.
	ListFor(ctx context.Context, userID int) ([]domain.HistoryEvent, error)
}

// InMemoryEventStore — журнал событий в памяти.
type InMemoryEventStore struct {
	mu     sync.RWMutex
	events []domain.HistoryEvent
	nextID int
}

func NewInMemoryEventStore() *InMemoryEventStore {
	return &InMemoryEventStore{}
}

func (s *InMemoryEventStore) Append(ctx context.Context, event *domain.HistoryEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	event.EventID = s.nextID
	event.Timestamp = time.Now().UnixMilli()
	s.events = append(s.events, *event)
	return nil
}

func (s *InMemoryEventStore) ListFor(ctx context.Context, userID int) ([]domain.HistoryEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.HistoryEvent
	for _, e := range s.events {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}
