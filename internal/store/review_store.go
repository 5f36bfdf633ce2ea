package store

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/Klementor/java-filmorate/internal/domain"
)

var (
	ErrReviewNotFound = errors.New("review not found")
	ErrReactionExists = errors.New("user has already reacted to this review")
)

// ReviewStore определяет интерфейс хранилища отзывов и реакций на них.
// Оценка Useful агрегируется хранилищем при чтении.
type ReviewStore interface {
	Create(ctx context.Context, review *domain.Review) error
	Update(ctx context.Context, review *domain.Review) error
	GetByID(ctx context.Context, id int) (*domain.Review, error)
	Delete(ctx context.Context, id int) error

	// ByFilm возвращает отзывы фильма (filmID == 0 — все отзывы),
	// отсортированные по useful по убыванию, при равенстве — по id,
	// не более count штук.
	ByFilm(ctx context.Context, filmID, count int) ([]*domain.Review, error)

	// AddReaction добавляет знаковый вклад value (+1/-1) от пользователя.
	AddReaction(ctx context.Context, reviewID, userID, value int) error
	RemoveReaction(ctx context.Context, reviewID, userID int) error
}

// InMemoryReviewStore — реализация ReviewStore на картах под RWMutex.
type InMemoryReviewStore struct {
	mu        sync.RWMutex
	reviews   map[int]*domain.Review
	reactions map[int]map[int]int // reviewID -> userID -> +1/-1
	nextID    int
}

func NewInMemoryReviewStore() *InMemoryReviewStore {
	return &InMemoryReviewStore{
		reviews:   make(map[int]*domain.Review),
		reactions: make(map[int]map[int]int),
	}
}

func (s *InMemoryReviewStore) Create(ctx context.Context, review *domain.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	review.ReviewID = s.nextID
	reviewCopy := *review
	s.reviews[review.ReviewID] = &reviewCopy
	return nil
}

func (s *InMemoryReviewStore) Update(ctx context.Context, review *domain.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.reviews[review.ReviewID]
	if !ok {
		return ErrReviewNotFound
	}
	// Обновляются только содержимое и тональность.
	existing.Content = review.Content
	existing.IsPositive = review.IsPositive
	return nil
}

func (s *InMemoryReviewStore) GetByID(ctx context.Context, id int) (*domain.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	review, ok := s.reviews[id]
	if !ok {
		return nil, ErrReviewNotFound
	}
	out := *review
	out.Useful = s.usefulLocked(id)
	return &out, nil
}

func (s *InMemoryReviewStore) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reviews[id]; !ok {
		return ErrReviewNotFound
	}
	delete(s.reviews, id)
	delete(s.reactions, id)
	return nil
}

func (s *InMemoryReviewStore) ByFilm(ctx context.Context, filmID, count int) ([]*domain.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var reviews []*domain.Review
	for id, review := range s.reviews {
		if filmID != 0 && review.FilmID != filmID {
			continue
		}
		out := *review
		out.Useful = s.usefulLocked(id)
		reviews = append(reviews, &out)
	}
	sort.Slice(reviews, func(i, j int) bool {
		if reviews[i].Useful != reviews[j].Useful {
			return reviews[i].Useful > reviews[j].Useful
		}
		return reviews[i].ReviewID < reviews[j].ReviewID
	})
	if count > 0 && len(reviews) > count {
		reviews = reviews[:count]
	}
	return reviews, nil
}

func (s *InMemoryReviewStore) AddReaction(ctx context.Context, reviewID, userID, value int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reviews[reviewID]; !ok {
		return ErrReviewNotFound
	}
	if s.reactions[reviewID] == nil {
		s.reactions[reviewID] = make(map[int]int)
	}
	if _, ok := s.reactions[reviewID][userID]; ok {
		return ErrReactionExists
	}
	s.reactions[reviewID][userID] = value
	return nil
}

func (s *InMemoryReviewStore) RemoveReaction(ctx context.Context, reviewID, userID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reviews[reviewID]; !ok {
		return ErrReviewNotFound
	}
	delete(s.reactions[reviewID], userID)
	return nil
}

func (s *InMemoryReviewStore) usefulLocked(reviewID int) int {
	var useful int
	for _, value := range s.reactions[reviewID] {
		useful += value
	}
	return useful
}
