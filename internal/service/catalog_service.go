package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Klementor/java-filmorate/internal/apperr"
	"github.com/Klementor/java-filmorate/internal/domain"
	"github.com/Klementor/java-filmorate/internal/store"
)

// GenreService — чтение справочника жанров.
type GenreService struct {
	genres store.GenreStore
}

func NewGenreService(genres store.GenreStore) *GenreService {
	return &GenreService{genres: genres}
}

func (s *GenreService) List(ctx context.Context) ([]domain.Genre, error) {
	return s.genres.List(ctx)
}

func (s *GenreService) Get(ctx context.Context, id int) (domain.Genre, error) {
	genre, err := s.genres.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrGenreNotFound) {
			return domain.Genre{}, apperr.NotFound("genre with id = %d does not exist", id)
		}
		return domain.Genre{}, err
	}
	return genre, nil
}

// MpaService — чтение справочника возрастных рейтингов.
type MpaService struct {
	mpa store.MpaStore
}

func NewMpaService(mpa store.MpaStore) *MpaService {
	return &MpaService{mpa: mpa}
}

func (s *MpaService) List(ctx context.Context) ([]domain.Mpa, error) {
	return s.mpa.List(ctx)
}

func (s *MpaService) Get(ctx context.Context, id int) (domain.Mpa, error) {
	mpa, err := s.mpa.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrMpaNotFound) {
			return domain.Mpa{}, apperr.NotFound("mpa rating with id = %d does not exist", id)
		}
		return domain.Mpa{}, err
	}
	return mpa, nil
}

// DirectorService — CRUD режиссёров.
type DirectorService struct {
	directors store.DirectorStore
	logger    *slog.Logger
}

func NewDirectorService(directors store.DirectorStore, logger *slog.Logger) *DirectorService {
	return &DirectorService{directors: directors, logger: logger}
}

func (s *DirectorService) List(ctx context.Context) ([]domain.Director, error) {
	return s.directors.List(ctx)
}

func (s *DirectorService) Get(ctx context.Context, id int) (domain.Director, error) {
	director, err := s.directors.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrDirectorNotFound) {
			return domain.Director{}, apperr.NotFound("director with id = %d does not exist", id)
		}
		return domain.Director{}, err
	}
	return director, nil
}

func (s *DirectorService) Create(ctx context.Context, req domain.CreateDirectorRequest) (domain.Director, error) {
	director := domain.Director{Name: req.Name}
	if err := s.directors.Create(ctx, &director); err != nil {
		return domain.Director{}, err
	}
	s.logger.InfoContext(ctx, "Director created", slog.Int("directorID", director.ID), slog.String("name", director.Name))
	return director, nil
}

func (s *DirectorService) Update(ctx context.Context, req domain.UpdateDirectorRequest) (domain.Director, error) {
	if _, err := s.Get(ctx, req.ID); err != nil {
		return domain.Director{}, err
	}
	director := domain.Director{ID: req.ID, Name: req.Name}
	if err := s.directors.Update(ctx, &director); err != nil {
		return domain.Director{}, err
	}
	return director, nil
}

func (s *DirectorService) Delete(ctx context.Context, id int) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.directors.Delete(ctx, id)
}
