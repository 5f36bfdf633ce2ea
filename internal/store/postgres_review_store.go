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

// PostgresReviewStore реализует ReviewStore для PostgreSQL.
// Оценка useful считается агрегатом по review_reactions при чтении.
type PostgresReviewStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewPostgresReviewStore(db *sqlx.DB, logger *slog.Logger) (*PostgresReviewStore, error) {
	if db == nil {
		return nil, errors.New("database connection (db) cannot be nil")
	}
	return &PostgresReviewStore{db: db, logger: logger}, nil
}

func (s *PostgresReviewStore) Create(ctx context.Context, review *domain.Review) error {
	query := `INSERT INTO reviews (content, positive, film_id, user_id) VALUES ($1, $2, $3, $4) RETURNING id`

	s.logger.DebugContext(ctx, "Executing Create review query", slog.Int("filmID", review.FilmID), slog.Int("userID", review.UserID))
	err := s.db.GetContext(ctx, &review.ReviewID, query,
		review.Content, review.IsPositive, review.FilmID, review.UserID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to create review in DB", slog.String("error", err.Error()))
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

func (s *PostgresReviewStore) Update(ctx context.Context, review *domain.Review) error {
	query := `UPDATE reviews SET content = $1, positive = $2 WHERE id = $3`

	result, err := s.db.ExecContext(ctx, query, review.Content, review.IsPositive, review.ReviewID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to update review in DB", slog.Int("reviewID", review.ReviewID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to update review: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func (s *PostgresReviewStore) GetByID(ctx context.Context, id int) (*domain.Review, error) {
	query := `SELECT r.id, r.content, r.positive, r.film_id, r.user_id,
                     COALESCE(SUM(rr.reaction), 0) AS useful
              FROM reviews AS r
              LEFT JOIN review_reactions AS rr ON r.id = rr.review_id
              WHERE r.id = $1
              GROUP BY r.id`
	var review domain.Review

	err := s.db.GetContext(ctx, &review, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.WarnContext(ctx, "Review not found by ID in DB", slog.Int("reviewID", id))
			return nil, ErrReviewNotFound
		}
		s.logger.ErrorContext(ctx, "Failed to get review by ID from DB", slog.Int("reviewID", id), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get review by id: %w", err)
	}
	return &review, nil
}

func (s *PostgresReviewStore) Delete(ctx context.Context, id int) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to delete review from DB", slog.Int("reviewID", id), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete review: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func (s *PostgresReviewStore) ByFilm(ctx context.Context, filmID, count int) ([]*domain.Review, error) {
	query := `SELECT r.id, r.content, r.positive, r.film_id, r.user_id,
                     COALESCE(SUM(rr.reaction), 0) AS useful
              FROM reviews AS r
              LEFT JOIN review_reactions AS rr ON r.id = rr.review_id`
	args := []interface{}{}
	argID := 1

	if filmID != 0 {
		query += fmt.Sprintf(" WHERE r.film_id = $%d", argID)
		args = append(args, filmID)
		argID++
	}
	query += fmt.Sprintf(" GROUP BY r.id ORDER BY useful DESC, r.id ASC LIMIT $%d", argID)
	args = append(args, count)

	var reviews []*domain.Review
	if err := s.db.SelectContext(ctx, &reviews, query, args...); err != nil {
		s.logger.ErrorContext(ctx, "Failed to list reviews from DB", slog.Int("filmID", filmID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

func (s *PostgresReviewStore) AddReaction(ctx context.Context, reviewID, userID, value int) error {
	query := `INSERT INTO review_reactions (review_id, user_id, reaction) VALUES ($1, $2, $3)`

	_, err := s.db.ExecContext(ctx, query, reviewID, userID, value)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
			return ErrReactionExists
		}
		s.logger.ErrorContext(ctx, "Failed to add review reaction in DB", slog.Int("reviewID", reviewID), slog.Int("userID", userID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to add reaction: %w", err)
	}
	return nil
}

func (s *PostgresReviewStore) RemoveReaction(ctx context.Context, reviewID, userID int) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM review_reactions WHERE review_id = $1 AND user_id = $2`, reviewID, userID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to remove review reaction in DB", slog.Int("reviewID", reviewID), slog.Int("userID", userID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to remove reaction: %w", err)
	}
	return nil
}
