package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Klementor/java-filmorate/internal/domain"
)

// PostgresEventStore реализует EventStore для PostgreSQL.
type PostgresEventStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewPostgresEventStore(db *sqlx.DB, logger *slog.Logger) (*PostgresEventStore, error) {
	if db == nil {
		return nil, errors.New("database connection (db) cannot be nil")
	}
	return &PostgresEventStore{db: db, logger: logger}, nil
}

func (s *PostgresEventStore) Append(ctx context.Context, event *domain.HistoryEvent) error {
	query := `INSERT INTO history_events (user_id, event_type, operation, entity_id, timestamp)
              VALUES ($1, $2, $3, $4, $5) RETURNING id`

	event.Timestamp = time.Now().UnixMilli()
	err := s.db.GetContext(ctx, &event.EventID, query,
		event.UserID, event.EventType, event.Operation, event.EntityID, event.Timestamp)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to append history event in DB", slog.Int("userID", event.UserID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to append history event: %w", err)
	}
	return nil
}

func (s *PostgresEventStore) ListFor(ctx context.Context, userID int) ([]domain.HistoryEvent, error) {
	query := `SELECT id, user_id, event_type, operation, entity_id, timestamp
              FROM history_events WHERE user_id = $1 ORDER BY id`
	var events []domain.HistoryEvent

	if err := s.db.SelectContext(ctx, &events, query, userID); err != nil {
		s.logger.ErrorContext(ctx, "Failed to list history events from DB", slog.Int("userID", userID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list history events: %w", err)
	}
	return events, nil
}
