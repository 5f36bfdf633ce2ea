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

// PostgresUserStore реализует UserStore для PostgreSQL.
type PostgresUserStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewPostgresUserStore(db *sqlx.DB, logger *slog.Logger) (*PostgresUserStore, error) {
	if db == nil {
		return nil, errors.New("database connection (db) cannot be nil")
	}
	return &PostgresUserStore{db: db, logger: logger}, nil
}

func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (email, login, name, birthday) VALUES ($1, $2, $3, $4) RETURNING id`

	s.logger.DebugContext(ctx, "Executing Create user query", slog.String("login", user.Login))
	err := s.db.GetContext(ctx, &user.ID, query, user.Email, user.Login, user.Name, user.Birthday)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to create user in DB", slog.String("error", err.Error()))
		return fmt.Errorf("failed to create user: %w", err)
	}
	s.logger.InfoContext(ctx, "User created in DB", slog.Int("userID", user.ID))
	return nil
}

func (s *PostgresUserStore) Update(ctx context.Context, user *domain.User) error {
	query := `UPDATE users SET email = $1, login = $2, name = $3, birthday = $4 WHERE id = $5`

	result, err := s.db.ExecContext(ctx, query, user.Email, user.Login, user.Name, user.Birthday, user.ID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to update user in DB", slog.Int("userID", user.ID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to update user: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *PostgresUserStore) GetByID(ctx context.Context, id int) (*domain.User, error) {
	var user domain.User

	err := s.db.GetContext(ctx, &user, `SELECT id, email, login, name, birthday FROM users WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.WarnContext(ctx, "User not found by ID in DB", slog.Int("userID", id))
			return nil, ErrUserNotFound
		}
		s.logger.ErrorContext(ctx, "Failed to get user by ID from DB", slog.Int("userID", id), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	friends, err := s.FriendIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Friends = friends
	return &user, nil
}

func (s *PostgresUserStore) List(ctx context.Context) ([]*domain.User, error) {
	var users []*domain.User

	err := s.db.SelectContext(ctx, &users, `SELECT id, email, login, name, birthday FROM users ORDER BY id`)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list users from DB", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	for _, user := range users {
		friends, err := s.friendIDsOf(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		user.Friends = friends
	}
	return users, nil
}

func (s *PostgresUserStore) Delete(ctx context.Context, id int) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to delete user from DB", slog.Int("userID", id), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete user: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *PostgresUserStore) AddFriend(ctx context.Context, userID, friendID int) error {
	query := `INSERT INTO user_friends (user_id, friend_id) VALUES ($1, $2)`

	_, err := s.db.ExecContext(ctx, query, userID, friendID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
			return ErrFriendExists
		}
		s.logger.ErrorContext(ctx, "Failed to add friend edge in DB", slog.Int("userID", userID), slog.Int("friendID", friendID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to add friend: %w", err)
	}
	return nil
}

func (s *PostgresUserStore) RemoveFriend(ctx context.Context, userID, friendID int) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM user_friends WHERE user_id = $1 AND friend_id = $2`, userID, friendID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to remove friend edge in DB", slog.Int("userID", userID), slog.Int("friendID", friendID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to remove friend: %w", err)
	}
	return nil
}

func (s *PostgresUserStore) FriendIDs(ctx context.Context, userID int) ([]int, error) {
	// Сначала убеждаемся, что пользователь существует: пустой список
	// друзей и отсутствующий пользователь — разные ответы.
	var exists bool
	if err := s.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, userID); err != nil {
		return nil, fmt.Errorf("failed to check user existence: %w", err)
	}
	if !exists {
		return nil, ErrUserNotFound
	}
	return s.friendIDsOf(ctx, userID)
}

func (s *PostgresUserStore) friendIDsOf(ctx context.Context, userID int) ([]int, error) {
	var ids []int
	query := `SELECT friend_id FROM user_friends WHERE user_id = $1 ORDER BY friend_id`
	if err := s.db.SelectContext(ctx, &ids, query, userID); err != nil {
		s.logger.ErrorContext(ctx, "Failed to list friend edges from DB", slog.Int("userID", userID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list friends: %w", err)
	}
	return ids, nil
}
