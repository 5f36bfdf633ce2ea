package store

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/Klementor/java-filmorate/internal/domain"
)

var (
	ErrGenreNotFound    = errors.New("genre not found")
	ErrMpaNotFound      = errors.New("mpa rating not found")
	ErrDirectorNotFound = errors.New("director not found")
)

// GenreStore — справочник жанров, только чтение.
type GenreStore interface {
	List(ctx context.Context) ([]domain.Genre, error)
	GetByID(ctx context.Context, id int) (domain.Genre, error)
	// GetByIDs возвращает найденные жанры по id; отсутствующие id
	// просто не попадают в результат, полноту проверяет вызывающий.
	GetByIDs(ctx context.Context, ids []int) (map[int]domain.Genre, error)
}

// MpaStore — справочник возрастных рейтингов, только чтение.
type MpaStore interface {
	List(ctx context.Context) ([]domain.Mpa, error)
	GetByID(ctx context.Context, id int) (domain.Mpa, error)
}

// DirectorStore — хранилище режиссёров.
type DirectorStore interface {
	Create(ctx context.Context, director *domain.Director) error
	Update(ctx context.Context, director *domain.Director) error
	GetByID(ctx context.Context, id int) (domain.Director, error)
	List(ctx context.Context) ([]domain.Director, error)
	Delete(ctx context.Context, id int) error
	GetByIDs(ctx context.Context, ids []int) (map[int]domain.Director, error)
}

// Стандартное наполнение справочников. Memory-backend стартует с ним,
// в Postgres те же строки вставляет миграция.
func defaultGenres() []domain.Genre {
	return []domain.Genre{
		{ID: 1, Name: "Комедия"},
		{ID: 2, Name: "Драма"},
		{ID: 3, Name: "Мультфильм"},
		{ID: 4, Name: "Триллер"},
		{ID: 5, Name: "Документальный"},
		{ID: 6, Name: "Боевик"},
	}
}

func defaultMpa() []domain.Mpa {
	return []domain.Mpa{
		{ID: 1, Name: "G"},
		{ID: 2, Name: "PG"},
		{ID: 3, Name: "PG-13"},
		{ID: 4, Name: "R"},
		{ID: 5, Name: "NC-17"},
	}
}

// InMemoryGenreStore — справочник жанров в памяти.
type InMemoryGenreStore struct {
	genres map[int]domain.Genre
}

func NewInMemoryGenreStore() *InMemoryGenreStore {
	genres := make(map[int]domain.Genre)
	for _, g := range defaultGenres() {
		genres[g.ID] = g
	}
	return &InMemoryGenreStore{genres: genres}
}

func (s *InMemoryGenreStore) List(ctx context.Context) ([]domain.Genre, error) {
	out := make([]domain.Genre, 0, len(s.genres))
	for _, g := range s.genres {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *InMemoryGenreStore) GetByID(ctx context.Context, id int) (domain.Genre, error) {
	g, ok := s.genres[id]
	if !ok {
		return domain.Genre{}, ErrGenreNotFound
	}
	return g, nil
}

func (s *InMemoryGenreStore) GetByIDs(ctx context.Context, ids []int) (map[int]domain.Genre, error) {
	out := make(map[int]domain.Genre, len(ids))
	for _, id := range ids {
		if g, ok := s.genres[id]; ok {
			out[id] = g
		}
	}
	return out, nil
}

// InMemoryMpaStore — справочник рейтингов в памяти.
type InMemoryMpaStore struct {
	ratings map[int]domain.Mpa
}

func NewInMemoryMpaStore() *InMemoryMpaStore {
	ratings := make(map[int]domain.Mpa)
	for _, m := range defaultMpa() {
		ratings[m.ID] = m
	}
	return &InMemoryMpaStore{ratings: ratings}
}

func (s *InMemoryMpaStore) List(ctx context.Context) ([]domain.Mpa, error) {
	out := make([]domain.Mpa, 0, len(s.ratings))
	for _, m := range s.ratings {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *InMemoryMpaStore) GetByID(ctx context.Context, id int) (domain.Mpa, error) {
	m, ok := s.ratings[id]
	if !ok {
		return domain.Mpa{}, ErrMpaNotFound
	}
	return m, nil
}

// InMemoryDirectorStore — хранилище режиссёров в памяти.
type InMemoryDirectorStore struct {
	mu        sync.RWMutex
	directors map[int]domain.Director
	nextID    int
}

func NewInMemoryDirectorStore() *InMemoryDirectorStore {
	return &InMemoryDirectorStore{directors: make(map[int]domain.Director)}
}

func (s *InMemoryDirectorStore) Create(ctx context.Context, director *domain.Director) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	director.ID = s.nextID
	s.directors[director.ID] = *director
	return nil
}

func (s *InMemoryDirectorStore) Update(ctx context.Context, director *domain.Director) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.directors[director.ID]; !ok {
		return ErrDirectorNotFound
	}
	s.directors[director.ID] = *director
	return nil
}

func (s *InMemoryDirectorStore) GetByID(ctx context.Context, id int) (domain.Director, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.directors[id]
	if !ok {
		return domain.Director{}, ErrDirectorNotFound
	}
	return d, nil
}

func (s *InMemoryDirectorStore) List(ctx context.Context) ([]domain.Director, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Director, 0, len(s.directors))
	for _, d := range s.directors {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *InMemoryDirectorStore) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.directors[id]; !ok {
		return ErrDirectorNotFound
	}
	delete(s.directors, id)
	return nil
}

func (s *InMemoryDirectorStore) GetByIDs(ctx context.Context, ids []int) (map[int]domain.Director, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[int]domain.Director, len(ids))
	for _, id := range ids {
		if d, ok := s.directors[id]; ok {
			out[id] = d
		}
	}
	return out, nil
}
