package store

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/Klementor/java-filmorate/internal/domain"
)

var (
	ErrFilmNotFound = errors.New("film not found")
	ErrLikeExists   = errors.New("user has already liked this film")
)

// FilmStore определяет интерфейс хранилища фильмов и фактов-лайков.
// Реализация назначает id при создании; отсутствие записи сигнализируется
// сентинельной ошибкой, а не паникой.
type FilmStore interface {
	Create(ctx context.Context, film *domain.Film) error
	Update(ctx context.Context, film *domain.Film) error
	GetByID(ctx context.Context, id int) (*domain.Film, error)
	List(ctx context.Context) ([]*domain.Film, error)
	Delete(ctx context.Context, id int) error

	AddLike(ctx context.Context, filmID, userID int) error
	RemoveLike(ctx context.Context, filmID, userID int) error
	AllLikes(ctx context.Context) ([]domain.Like, error)
	LikedFilmIDs(ctx context.Context, userID int) ([]int, error)
}

// InMemoryFilmStore — реализация FilmStore на картах под RWMutex.
// Используется как тестовый субстрат и как backend "memory".
type InMemoryFilmStore struct {
	mu     sync.RWMutex
	films  map[int]*domain.Film
	likes  map[int]map[int]bool // filmID -> set userID
	nextID int
}

func NewInMemoryFilmStore() *InMemoryFilmStore {
	return &InMemoryFilmStore{
		films: make(map[int]*domain.Film),
		likes: make(map[int]map[int]bool),
	}
}

func (s *InMemoryFilmStore) Create(ctx context.Context, film *domain.Film) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	film.ID = s.nextID
	filmCopy := cloneFilm(film)
	s.films[film.ID] = filmCopy
	return nil
}

func (s *InMemoryFilmStore) Update(ctx context.Context, film *domain.Film) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.films[film.ID]; !ok {
		return ErrFilmNotFound
	}
	s.films[film.ID] = cloneFilm(film)
	return nil
}

func (s *InMemoryFilmStore) GetByID(ctx context.Context, id int) (*domain.Film, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	film, ok := s.films[id]
	if !ok {
		return nil, ErrFilmNotFound
	}
	out := cloneFilm(film)
	out.Likes = s.likesOfLocked(id)
	return out, nil
}

func (s *InMemoryFilmStore) List(ctx context.Context) ([]*domain.Film, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	films := make([]*domain.Film, 0, len(s.films))
	for id, film := range s.films {
		out := cloneFilm(film)
		out.Likes = s.likesOfLocked(id)
		films = append(films, out)
	}
	sort.Slice(films, func(i, j int) bool { return films[i].ID < films[j].ID })
	return films, nil
}

func (s *InMemoryFilmStore) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.films[id]; !ok {
		return ErrFilmNotFound
	}
	delete(s.films, id)
	delete(s.likes, id)
	return nil
}

func (s *InMemoryFilmStore) AddLike(ctx context.Context, filmID, userID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.films[filmID]; !ok {
		return ErrFilmNotFound
	}
	if s.likes[filmID] == nil {
		s.likes[filmID] = make(map[int]bool)
	}
	if s.likes[filmID][userID] {
		return ErrLikeExists
	}
	s.likes[filmID][userID] = true
	return nil
}

func (s *InMemoryFilmStore) RemoveLike(ctx context.Context, filmID, userID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.films[filmID]; !ok {
		return ErrFilmNotFound
	}
	delete(s.likes[filmID], userID)
	return nil
}

func (s *InMemoryFilmStore) AllLikes(ctx context.Context) ([]domain.Like, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var facts []domain.Like
	for filmID, users := range s.likes {
		for userID := range users {
			facts = append(facts, domain.Like{UserID: userID, FilmID: filmID})
		}
	}
	return facts, nil
}

func (s *InMemoryFilmStore) LikedFilmIDs(ctx context.Context, userID int) ([]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ids []int
	for filmID, users := range s.likes {
		if users[userID] {
			ids = append(ids, filmID)
		}
	}
	sort.Ints(ids)
	return ids, nil
}

// likesOfLocked возвращает отсортированный список лайков фильма.
// Вызывается только под блокировкой.
func (s *InMemoryFilmStore) likesOfLocked(filmID int) []int {
	users := s.likes[filmID]
	if len(users) == 0 {
		return nil
	}
	ids := make([]int, 0, len(users))
	for userID := range users {
		ids = append(ids, userID)
	}
	sort.Ints(ids)
	return ids
}

// cloneFilm копирует фильм вместе со вложенными слайсами, чтобы
// вызывающий код не менял состояние хранилища через указатель.
func cloneFilm(film *domain.Film) *domain.Film {
	out := *film
	out.Genres = append([]domain.Genre(nil), film.Genres...)
	out.Directors = append([]domain.Director(nil), film.Directors...)
	out.Likes = append([]int(nil), film.Likes...)
	return &out
}
