package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Klementor/java-filmorate/internal/domain"
)

// PostgresGenreStore реализует GenreStore для PostgreSQL.
type PostgresGenreStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewPostgresGenreStore(db *sqlx.DB, logger *slog.Logger) (*PostgresGenreStore, error) {
	if db == nil {
		return nil, errors.New("database connection (db) cannot be nil")
	}
	return &PostgresGenreStore{db: db, logger: logger}, nil
}

func (s *PostgresGenreStore) List(ctx context.Context) ([]domain.Genre, error) {
	var genres []domain.Genre
	if err := s.db.SelectContext(ctx, &genres, `SELECT id, name FROM genres ORDER BY id`); err != nil {
		s.logger.ErrorContext(ctx, "Failed to list genres from DB", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}
	return genres, nil
}

func (s *PostgresGenreStore) GetByID(ctx context.Context, id int) (domain.Genre, error) {
	var genre domain.Genre
	err := s.db.GetContext(ctx, &genre, `SELECT id, name FROM genres WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Genre{}, ErrGenreNotFound
		}
		s.logger.ErrorContext(ctx, "Failed to get genre from DB", slog.Int("genreID", id), slog.String("error", err.Error()))
		return domain.Genre{}, fmt.Errorf("failed to get genre by id: %w", err)
	}
	return genre, nil
}

func (s *PostgresGenreStore) GetByIDs(ctx context.Context, ids []int) (map[int]domain.Genre, error) {
	out := make(map[int]domain.Genre, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var genres []domain.Genre
	query := `SELECT id, name FROM genres WHERE id = ANY($1)`
	if err := s.db.SelectContext(ctx, &genres, query, pq.Array(ids)); err != nil {
		s.logger.ErrorContext(ctx, "Failed to resolve genres from DB", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to resolve genres: %w", err)
	}
	for _, g := range genres {
		out[g.ID] = g
	}
	return out, nil
}

// PostgresMpaStore реализует MpaStore для PostgreSQL.
type PostgresMpaStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewPostgresMpaStore(db *sqlx.DB, logger *slog.Logger) (*PostgresMpaStore, error) {
	if db == nil {
		return nil, errors.New("database connection (db) cannot be nil")
	}
	return &PostgresMpaStore{db: db, logger: logger}, nil
}

func (s *PostgresMpaStore) List(ctx context.Context) ([]domain.Mpa, error) {
	var ratings []domain.Mpa
	if err := s.db.SelectContext(ctx, &ratings, `SELECT id, name FROM mpa ORDER BY id`); err != nil {
		s.logger.ErrorContext(ctx, "Failed to list mpa ratings from DB", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list mpa ratings: %w", err)
	}
	return ratings, nil
}

func (s *PostgresMpaStore) GetByID(ctx context.Context, id int) (domain.Mpa, error) {
	var mpa domain.Mpa
	err := s.db.GetContext(ctx, &mpa, `SELECT id, name FROM mpa WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Mpa{}, ErrMpaNotFound
		}
		s.logger.ErrorContext(ctx, "Failed to get mpa rating from DB", slog.Int("mpaID", id), slog.String("error", err.Error()))
		return domain.Mpa{}, fmt.Errorf("failed to get mpa by id: %w", err)
	}
	return mpa, nil
}

// PostgresDirectorStore реализует DirectorStore для PostgreSQL.
type PostgresDirectorStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewPostgresDirectorStore(db *sqlx.DB, logger *slog.Logger) (*PostgresDirectorStore, error) {
	if db == nil {
		return nil, errors.New("database connection (db) cannot be nil")
	}
	return &PostgresDirectorStore{db: db, logger: logger}, nil
}

func (s *PostgresDirectorStore) Create(ctx context.Context, director *domain.Director) error {
	query := `INSERT INTO directors (name) VALUES ($1) RETURNING id`
	if err := s.db.GetContext(ctx, &director.ID, query, director.Name); err != nil {
		s.logger.ErrorContext(ctx, "Failed to create director in DB", slog.String("error", err.Error()))
		return fmt.Errorf("failed to create director: %w", err)
	}
	return nil
}

func (s *PostgresDirectorStore) Update(ctx context.Context, director *domain.Director) error {
	result, err := s.db.ExecContext(ctx, `UPDATE directors SET name = $1 WHERE id = $2`, director.Name, director.ID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to update director in DB", slog.Int("directorID", director.ID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to update director: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrDirectorNotFound
	}
	return nil
}

func (s *PostgresDirectorStore) GetByID(ctx context.Context, id int) (domain.Director, error) {
	var director domain.Director
	err := s.db.GetContext(ctx, &director, `SELECT id, name FROM directors WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Director{}, ErrDirectorNotFound
		}
		s.logger.ErrorContext(ctx, "Failed to get director from DB", slog.Int("directorID", id), slog.String("error", err.Error()))
		return domain.Director{}, fmt.Errorf("failed to get director by id: %w", err)
	}
	return director, nil
}

func (s *PostgresDirectorStore) List(ctx context.Context) ([]domain.Director, error) {
	var directors []domain.Director
	if err := s.db.SelectContext(ctx, &directors, `SELECT id, name FROM directors ORDER BY id`); err != nil {
		s.logger.ErrorContext(ctx, "Failed to list directors from DB", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list directors: %w", err)
	}
	return directors, nil
}

func (s *PostgresDirectorStore) Delete(ctx context.Context, id int) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM directors WHERE id = $1`, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to delete director from DB", slog.Int("directorID", id), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete director: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrDirectorNotFound
	}
	return nil
}

func (s *PostgresDirectorStore) GetByIDs(ctx context.Context, ids []int) (map[int]domain.Director, error) {
	out := make(map[int]domain.Director, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var directors []domain.Director
	query := `SELECT id, name FROM directors WHERE id = ANY($1)`
	if err := s.db.SelectContext(ctx, &directors, query, pq.Array(ids)); err != nil {
		s.logger.ErrorContext(ctx, "Failed to resolve directors from DB", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to resolve directors: %w", err)
	}
	for _, d := range directors {
		out[d.ID] = d
	}
	return out, nil
}
