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

// PostgresFilmStore реализует FilmStore для PostgreSQL.
type PostgresFilmStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewPostgresFilmStore(db *sqlx.DB, logger *slog.Logger) (*PostgresFilmStore, error) {
	if db == nil {
		return nil, errors.New("database connection (db) cannot be nil")
	}
	return &PostgresFilmStore{db: db, logger: logger}, nil
}

func (s *PostgresFilmStore) Create(ctx context.Context, film *domain.Film) error {
	query := `INSERT INTO films (name, description, release_date, duration, mpa_id)
              VALUES ($1, $2, $3, $4, $5) RETURNING id`

	s.logger.DebugContext(ctx, "Executing Create film query", slog.String("name", film.Name))
	err := s.db.GetContext(ctx, &film.ID, query,
		film.Name, film.Description, film.ReleaseDate, film.Duration, film.Mpa.ID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to create film in DB", slog.String("error", err.Error()))
		return fmt.Errorf("failed to create film: %w", err)
	}

	if err := s.replaceGenreLinks(ctx, film.ID, film.Genres); err != nil {
		return err
	}
	if err := s.replaceDirectorLinks(ctx, film.ID, film.Directors); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Film created in DB", slog.Int("filmID", film.ID))
	return nil
}

func (s *PostgresFilmStore) Update(ctx context.Context, film *domain.Film) error {
	query := `UPDATE films SET name = $1, description = $2, release_date = $3, duration = $4, mpa_id = $5
              WHERE id = $6`

	s.logger.DebugContext(ctx, "Executing Update film query", slog.Int("filmID", film.ID))
	result, err := s.db.ExecContext(ctx, query,
		film.Name, film.Description, film.ReleaseDate, film.Duration, film.Mpa.ID, film.ID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to update film in DB", slog.Int("filmID", film.ID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to update film: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrFilmNotFound
	}

	if err := s.replaceGenreLinks(ctx, film.ID, film.Genres); err != nil {
		return err
	}
	if err := s.replaceDirectorLinks(ctx, film.ID, film.Directors); err != nil {
		return err
	}
	return nil
}

func (s *PostgresFilmStore) GetByID(ctx context.Context, id int) (*domain.Film, error) {
	query := `SELECT f.id, f.name, f.description, f.release_date, f.duration,
                     m.id AS "mpa.id", m.name AS "mpa.name"
              FROM films AS f
              INNER JOIN mpa AS m ON f.mpa_id = m.id
              WHERE f.id = $1`
	var film domain.Film

	err := s.db.GetContext(ctx, &film, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.WarnContext(ctx, "Film not found by ID in DB", slog.Int("filmID", id))
			return nil, ErrFilmNotFound
		}
		s.logger.ErrorContext(ctx, "Failed to get film by ID from DB", slog.Int("filmID", id), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get film by id: %w", err)
	}
	if err := s.fillRelations(ctx, &film); err != nil {
		return nil, err
	}
	return &film, nil
}

func (s *PostgresFilmStore) List(ctx context.Context) ([]*domain.Film, error) {
	query := `SELECT f.id, f.name, f.description, f.release_date, f.duration,
                     m.id AS "mpa.id", m.name AS "mpa.name"
              FROM films AS f
              INNER JOIN mpa AS m ON f.mpa_id = m.id
              ORDER BY f.id`
	var films []*domain.Film

	if err := s.db.SelectContext(ctx, &films, query); err != nil {
		s.logger.ErrorContext(ctx, "Failed to list films from DB", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list films: %w", err)
	}
	for _, film := range films {
		if err := s.fillRelations(ctx, film); err != nil {
			return nil, err
		}
	}
	return films, nil
}

func (s *PostgresFilmStore) Delete(ctx context.Context, id int) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM films WHERE id = $1`, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to delete film from DB", slog.Int("filmID", id), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete film: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrFilmNotFound
	}
	return nil
}

func (s *PostgresFilmStore) AddLike(ctx context.Context, filmID, userID int) error {
	query := `INSERT INTO film_likes (film_id, user_id) VALUES ($1, $2)`

	_, err := s.db.ExecContext(ctx, query, filmID, userID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
			return ErrLikeExists
		}
		s.logger.ErrorContext(ctx, "Failed to add like in DB", slog.Int("filmID", filmID), slog.Int("userID", userID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to add like: %w", err)
	}
	return nil
}

func (s *PostgresFilmStore) RemoveLike(ctx context.Context, filmID, userID int) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM film_likes WHERE film_id = $1 AND user_id = $2`, filmID, userID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to remove like in DB", slog.Int("filmID", filmID), slog.Int("userID", userID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to remove like: %w", err)
	}
	return nil
}

func (s *PostgresFilmStore) AllLikes(ctx context.Context) ([]domain.Like, error) {
	var likes []domain.Like
	if err := s.db.SelectContext(ctx, &likes, `SELECT user_id, film_id FROM film_likes`); err != nil {
		s.logger.ErrorContext(ctx, "Failed to list likes from DB", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list likes: %w", err)
	}
	return likes, nil
}

func (s *PostgresFilmStore) LikedFilmIDs(ctx context.Context, userID int) ([]int, error) {
	var ids []int
	query := `SELECT film_id FROM film_likes WHERE user_id = $1 ORDER BY film_id`
	if err := s.db.SelectContext(ctx, &ids, query, userID); err != nil {
		s.logger.ErrorContext(ctx, "Failed to list liked films from DB", slog.Int("userID", userID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list liked films: %w", err)
	}
	return ids, nil
}

// fillRelations догружает жанры, режиссёров и лайки фильма.
func (s *PostgresFilmStore) fillRelations(ctx context.Context, film *domain.Film) error {
	genresQuery := `SELECT g.id, g.name FROM genres AS g
                    INNER JOIN film_genres AS fg ON g.id = fg.genre_id
                    WHERE fg.film_id = $1 ORDER BY g.id`
	if err := s.db.SelectContext(ctx, &film.Genres, genresQuery, film.ID); err != nil {
		return fmt.Errorf("failed to load film genres: %w", err)
	}

	directorsQuery := `SELECT d.id, d.name FROM directors AS d
                       INNER JOIN film_directors AS fd ON d.id = fd.director_id
                       WHERE fd.film_id = $1 ORDER BY d.id`
	if err := s.db.SelectContext(ctx, &film.Directors, directorsQuery, film.ID); err != nil {
		return fmt.Errorf("failed to load film directors: %w", err)
	}

	likesQuery := `SELECT user_id FROM film_likes WHERE film_id = $1 ORDER BY user_id`
	if err := s.db.SelectContext(ctx, &film.Likes, likesQuery, film.ID); err != nil {
		return fmt.Errorf("failed to load film likes: %w", err)
	}
	return nil
}

func (s *PostgresFilmStore) replaceGenreLinks(ctx context.Context, filmID int, genres []domain.Genre) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM film_genres WHERE film_id = $1`, filmID); err != nil {
		return fmt.Errorf("failed to clear film genres: %w", err)
	}
	for _, genre := range genres {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO film_genres (film_id, genre_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			filmID, genre.ID)
		if err != nil {
			return fmt.Errorf("failed to link genre %d: %w", genre.ID, err)
		}
	}
	return nil
}

func (s *PostgresFilmStore) replaceDirectorLinks(ctx context.Context, filmID int, directors []domain.Director) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM film_directors WHERE film_id = $1`, filmID); err != nil {
		return fmt.Errorf("failed to clear film directors: %w", err)
	}
	for _, director := range directors {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO film_directors (film_id, director_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			filmID, director.ID)
		if err != nil {
			return fmt.Errorf("failed to link director %d: %w", director.ID, err)
		}
	}
	return nil
}
