package service

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/Klementor/java-filmorate/internal/apperr"
	"github.com/Klementor/java-filmorate/internal/domain"
	"github.com/Klementor/java-filmorate/internal/store"
)

// UserService реализует операции с пользователями: CRUD, направленный
// граф дружбы, ленту событий и рекомендации по коллаборативной фильтрации.
type UserService struct {
	users  store.UserStore
	films  store.FilmStore
	events store.EventStore
	logger *slog.Logger
}

func NewUserService(users store.UserStore, films store.FilmStore, events store.EventStore, logger *slog.Logger) *UserService {
	return &UserService{
		users:  users,
		films:  films,
		events: events,
		logger: logger,
	}
}

func (s *UserService) Create(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	user, err := buildUser(req)
	if err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "User created", slog.Int("userID", user.ID), slog.String("login", user.Login))
	return user, nil
}

func (s *UserService) Update(ctx context.Context, req domain.UpdateUserRequest) (*domain.User, error) {
	if _, err := s.Get(ctx, req.ID); err != nil {
		return nil, err
	}
	user, err := buildUser(req.CreateUserRequest)
	if err != nil {
		return nil, err
	}
	user.ID = req.ID
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return s.Get(ctx, user.ID)
}

func (s *UserService) Get(ctx context.Context, id int) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, apperr.NotFound("user with id = %d does not exist", id)
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) Delete(ctx context.Context, id int) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.users.Delete(ctx, id)
}

// AddFriend добавляет направленное ребро userID -> friendID.
// Повторное добавление — no-op на уровне факта, событие пишется всегда.
func (s *UserService) AddFriend(ctx context.Context, userID, friendID int) error {
	if _, err := s.Get(ctx, userID); err != nil {
		return err
	}
	if _, err := s.Get(ctx, friendID); err != nil {
		return err
	}
	if err := s.users.AddFriend(ctx, userID, friendID); err != nil {
		if !errors.Is(err, store.ErrFriendExists) {
			return err
		}
		s.logger.WarnContext(ctx, "Duplicate friend edge ignored", slog.Int("userID", userID), slog.Int("friendID", friendID))
	}
	return s.events.Append(ctx, &domain.HistoryEvent{
		UserID:    userID,
		EventType: domain.EventFriend,
		Operation: domain.OperationAdd,
		EntityID:  friendID,
	})
}

func (s *UserService) RemoveFriend(ctx context.Context, userID, friendID int) error {
	if _, err := s.Get(ctx, userID); err != nil {
		return err
	}
	if _, err := s.Get(ctx, friendID); err != nil {
		return err
	}
	if err := s.users.RemoveFriend(ctx, userID, friendID); err != nil {
		return err
	}
	return s.events.Append(ctx, &domain.HistoryEvent{
		UserID:    userID,
		EventType: domain.EventFriend,
		Operation: domain.OperationRemove,
		EntityID:  friendID,
	})
}

// Friends возвращает пользователей по исходящим рёбрам. Рёбра на уже
// удалённых пользователей молча пропускаются.
func (s *UserService) Friends(ctx context.Context, userID int) ([]*domain.User, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.resolveUsers(ctx, user.Friends)
}

// CommonFriends возвращает пересечение исходящих множеств друзей двух
// пользователей. Симметрично по построению.
func (s *UserService) CommonFriends(ctx context.Context, userID, otherID int) ([]*domain.User, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	other, err := s.Get(ctx, otherID)
	if err != nil {
		return nil, err
	}

	otherSet := make(map[int]bool, len(other.Friends))
	for _, id := range other.Friends {
		otherSet[id] = true
	}
	var commonIDs []int
	for _, id := range user.Friends {
		if otherSet[id] {
			commonIDs = append(commonIDs, id)
		}
	}
	return s.resolveUsers(ctx, commonIDs)
}

// Recommendations подбирает фильмы по коллаборативной фильтрации:
// по полной таблице лайков считается сходство (размер пересечения
// множеств лайков), затем объединяются непросмотренные фильмы всех
// соседей с максимальным сходством. Пользователь без лайков или без
// пересечений с кем-либо получает пустой список.
func (s *UserService) Recommendations(ctx context.Context, userID int) ([]*domain.Film, error) {
	if _, err := s.Get(ctx, userID); err != nil {
		return nil, err
	}

	likes, err := s.films.AllLikes(ctx)
	if err != nil {
		return nil, err
	}
	likedBy := make(map[int]map[int]bool) // userID -> set filmID
	for _, like := range likes {
		if likedBy[like.UserID] == nil {
			likedBy[like.UserID] = make(map[int]bool)
		}
		likedBy[like.UserID][like.FilmID] = true
	}

	userSet := likedBy[userID]
	if len(userSet) == 0 {
		return []*domain.Film{}, nil
	}

	similarity := make(map[int]int)
	maxSimilarity := 0
	for neighbor, films := range likedBy {
		if neighbor == userID {
			continue
		}
		var common int
		for filmID := range films {
			if userSet[filmID] {
				common++
			}
		}
		similarity[neighbor] = common
		if common > maxSimilarity {
			maxSimilarity = common
		}
	}
	if maxSimilarity == 0 {
		return []*domain.Film{}, nil
	}

	recommended := make(map[int]bool)
	for neighbor, score := range similarity {
		if score != maxSimilarity {
			continue
		}
		for filmID := range likedBy[neighbor] {
			if !userSet[filmID] {
				recommended[filmID] = true
			}
		}
	}

	ids := make([]int, 0, len(recommended))
	for filmID := range recommended {
		ids = append(ids, filmID)
	}
	sort.Ints(ids)

	films := make([]*domain.Film, 0, len(ids))
	for _, id := range ids {
		film, err := s.films.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		films = append(films, film)
	}
	return films, nil
}

// Feed возвращает ленту событий пользователя в порядке записи.
func (s *UserService) Feed(ctx context.Context, userID int) ([]domain.HistoryEvent, error) {
	if _, err := s.Get(ctx, userID); err != nil {
		return nil, err
	}
	return s.events.ListFor(ctx, userID)
}

func (s *UserService) resolveUsers(ctx context.Context, ids []int) ([]*domain.User, error) {
	users := make([]*domain.User, 0, len(ids))
	for _, id := range ids {
		user, err := s.users.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				continue // висящее ребро на удалённого пользователя
			}
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// buildUser применяет доменные правила к запросу и собирает пользователя.
// Пустое имя заменяется логином.
func buildUser(req domain.CreateUserRequest) (*domain.User, error) {
	if strings.TrimSpace(req.Login) == "" {
		return nil, apperr.InvalidArgument("login must not be blank")
	}
	if strings.Contains(req.Login, " ") {
		return nil, apperr.InvalidArgument("login %q must not contain spaces", req.Login)
	}
	if strings.TrimSpace(req.Email) == "" || !strings.Contains(req.Email, "@") {
		return nil, apperr.InvalidArgument("email %q is not a valid address", req.Email)
	}
	birthday, err := time.Parse("2006-01-02", req.Birthday)
	if err != nil {
		return nil, apperr.InvalidArgument("birthday %q is not a valid date", req.Birthday)
	}
	if birthday.After(time.Now()) {
		return nil, apperr.InvalidArgument("birthday %s must not be in the future", req.Birthday)
	}

	name := req.Name
	if strings.TrimSpace(name) == "" {
		name = req.Login
	}
	return &domain.User{
		Email:    req.Email,
		Login:    req.Login,
		Name:     name,
		Birthday: birthday,
	}, nil
}
