package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Klementor/java-filmorate/internal/apperr"
	"github.com/Klementor/java-filmorate/internal/domain"
	"github.com/Klementor/java-filmorate/internal/store"
)

// DefaultReviewCount — размер выборки отзывов по умолчанию.
const DefaultReviewCount = 10

// ReactionKind — вид реакции пользователя на отзыв.
type ReactionKind string

const (
	ReactionKindLike    ReactionKind = "LIKE"
	ReactionKindDislike ReactionKind = "DISLIKE"
)

// ReviewService реализует операции с отзывами и их оценкой полезности.
type ReviewService struct {
	reviews store.ReviewStore
	users   store.UserStore
	films   store.FilmStore
	events  store.EventStore
	logger  *slog.Logger
}

func NewReviewService(reviews store.ReviewStore, users store.UserStore, films store.FilmStore,
	events store.EventStore, logger *slog.Logger) *ReviewService {
	return &ReviewService{
		reviews: reviews,
		users:   users,
		films:   films,
		events:  events,
		logger:  logger,
	}
}

func (s *ReviewService) Create(ctx context.Context, req domain.CreateReviewRequest) (*domain.Review, error) {
	if err := validateReviewContent(req.Content); err != nil {
		return nil, err
	}
	if req.IsPositive == nil {
		return nil, apperr.InvalidArgument("review sentiment (isPositive) is required")
	}
	if req.UserID == nil || req.FilmID == nil {
		return nil, apperr.InvalidArgument("review userId and filmId are required")
	}
	if err := s.checkUser(ctx, *req.UserID); err != nil {
		return nil, err
	}
	if err := s.checkFilm(ctx, *req.FilmID); err != nil {
		return nil, err
	}

	review := &domain.Review{
		Content:    req.Content,
		IsPositive: *req.IsPositive,
		UserID:     *req.UserID,
		FilmID:     *req.FilmID,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "Review created", slog.Int("reviewID", review.ReviewID), slog.Int("filmID", review.FilmID))

	err := s.events.Append(ctx, &domain.HistoryEvent{
		UserID:    review.UserID,
		EventType: domain.EventReview,
		Operation: domain.OperationAdd,
		EntityID:  review.ReviewID,
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, review.ReviewID)
}

func (s *ReviewService) Update(ctx context.Context, req domain.UpdateReviewRequest) (*domain.Review, error) {
	if err := validateReviewContent(req.Content); err != nil {
		return nil, err
	}
	if req.IsPositive == nil {
		return nil, apperr.InvalidArgument("review sentiment (isPositive) is required")
	}
	existing, err := s.Get(ctx, req.ReviewID)
	if err != nil {
		return nil, err
	}

	update := &domain.Review{
		ReviewID:   req.ReviewID,
		Content:    req.Content,
		IsPositive: *req.IsPositive,
	}
	if err := s.reviews.Update(ctx, update); err != nil {
		return nil, err
	}

	// Событие привязывается к автору отзыва, а не к инициатору запроса.
	err = s.events.Append(ctx, &domain.HistoryEvent{
		UserID:    existing.UserID,
		EventType: domain.EventReview,
		Operation: domain.OperationUpdate,
		EntityID:  req.ReviewID,
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, req.ReviewID)
}

func (s *ReviewService) Get(ctx context.Context, id int) (*domain.Review, error) {
	review, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrReviewNotFound) {
			return nil, apperr.NotFound("review with id = %d does not exist", id)
		}
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) Delete(ctx context.Context, id int) error {
	review, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.reviews.Delete(ctx, id); err != nil {
		return err
	}
	return s.events.Append(ctx, &domain.HistoryEvent{
		UserID:    review.UserID,
		EventType: domain.EventReview,
		Operation: domain.OperationRemove,
		EntityID:  review.ReviewID,
	})
}

// ByFilm возвращает отзывы фильма (filmID == 0 — по всем фильмам),
// отсортированные по полезности по убыванию; count <= 0 заменяется
// значением по умолчанию.
func (s *ReviewService) ByFilm(ctx context.Context, filmID, count int) ([]*domain.Review, error) {
	if count <= 0 {
		count = DefaultReviewCount
	}
	if filmID != 0 {
		if err := s.checkFilm(ctx, filmID); err != nil {
			return nil, err
		}
	}
	return s.reviews.ByFilm(ctx, filmID, count)
}

// React добавляет (added == true) или удаляет реакцию пользователя на
// отзыв. Дубликат реакции — no-op. Смену LIKE на DISLIKE вызывающая
// сторона выражает парой remove+add.
func (s *ReviewService) React(ctx context.Context, reviewID, userID int, kind ReactionKind, added bool) error {
	if kind != ReactionKindLike && kind != ReactionKindDislike {
		return apperr.InvalidArgument("unsupported reaction kind %q", kind)
	}
	if _, err := s.Get(ctx, reviewID); err != nil {
		return err
	}
	if err := s.checkUser(ctx, userID); err != nil {
		return err
	}

	if !added {
		return s.reviews.RemoveReaction(ctx, reviewID, userID)
	}

	value := domain.ReactionLike
	if kind == ReactionKindDislike {
		value = domain.ReactionDislike
	}
	if err := s.reviews.AddReaction(ctx, reviewID, userID, value); err != nil {
		if errors.Is(err, store.ErrReactionExists) {
			s.logger.WarnContext(ctx, "Duplicate review reaction ignored", slog.Int("reviewID", reviewID), slog.Int("userID", userID))
			return nil
		}
		return err
	}
	return nil
}

func (s *ReviewService) checkUser(ctx context.Context, userID int) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return apperr.NotFound("user with id = %d does not exist", userID)
		}
		return err
	}
	return nil
}

func (s *ReviewService) checkFilm(ctx context.Context, filmID int) error {
	if _, err := s.films.GetByID(ctx, filmID); err != nil {
		if errors.Is(err, store.ErrFilmNotFound) {
			return apperr.NotFound("film with id = %d does not exist", filmID)
		}
		return err
	}
	return nil
}

func validateReviewContent(content string) error {
	if content == "" {
		return apperr.InvalidArgument("review content must not be blank")
	}
	return nil
}
