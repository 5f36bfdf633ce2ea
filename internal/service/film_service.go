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

// DefaultPopularCount — размер выборки популярных фильмов по умолчанию.
const DefaultPopularCount = 10

// FilmService реализует операции с фильмами: CRUD, лайки, рейтинг
// популярности, общие фильмы, поиск и сортировку по режиссёру.
type FilmService struct {
	films     store.FilmStore
	users     store.UserStore
	genres    store.GenreStore
	mpa       store.MpaStore
	directors store.DirectorStore
	events    store.EventStore
	logger    *slog.Logger
}

func NewFilmService(films store.FilmStore, users store.UserStore, genres store.GenreStore,
	mpa store.MpaStore, directors store.DirectorStore, events store.EventStore, logger *slog.Logger) *FilmService {
	return &FilmService{
		films:     films,
		users:     users,
		genres:    genres,
		mpa:       mpa,
		directors: directors,
		events:    events,
		logger:    logger,
	}
}

func (s *FilmService) Create(ctx context.Context, req domain.CreateFilmRequest) (*domain.Film, error) {
	film, err := s.buildFilm(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.films.Create(ctx, film); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "Film created", slog.Int("filmID", film.ID), slog.String("name", film.Name))
	return s.Get(ctx, film.ID)
}

func (s *FilmService) Update(ctx context.Context, req domain.UpdateFilmRequest) (*domain.Film, error) {
	if _, err := s.Get(ctx, req.ID); err != nil {
		return nil, err
	}
	film, err := s.buildFilm(ctx, req.CreateFilmRequest)
	if err != nil {
		return nil, err
	}
	film.ID = req.ID
	if err := s.films.Update(ctx, film); err != nil {
		return nil, err
	}
	return s.Get(ctx, film.ID)
}

func (s *FilmService) Get(ctx context.Context, id int) (*domain.Film, error) {
	film, err := s.films.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrFilmNotFound) {
			return nil, apperr.NotFound("film with id = %d does not exist", id)
		}
		return nil, err
	}
	return film, nil
}

func (s *FilmService) List(ctx context.Context) ([]*domain.Film, error) {
	return s.films.List(ctx)
}

func (s *FilmService) Delete(ctx context.Context, id int) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.films.Delete(ctx, id)
}

// Like ставит лайк фильму от пользователя. Повторный лайк — no-op на
// уровне факта, но событие в ленту пишется в любом случае.
func (s *FilmService) Like(ctx context.Context, filmID, userID int) error {
	if err := s.checkUser(ctx, userID); err != nil {
		return err
	}
	if _, err := s.Get(ctx, filmID); err != nil {
		return err
	}
	if err := s.films.AddLike(ctx, filmID, userID); err != nil {
		if !errors.Is(err, store.ErrLikeExists) {
			return err
		}
		s.logger.WarnContext(ctx, "Duplicate like ignored", slog.Int("filmID", filmID), slog.Int("userID", userID))
	}
	return s.events.Append(ctx, &domain.HistoryEvent{
		UserID:    userID,
		EventType: domain.EventLike,
		Operation: domain.OperationAdd,
		EntityID:  filmID,
	})
}

func (s *FilmService) Unlike(ctx context.Context, filmID, userID int) error {
	if err := s.checkUser(ctx, userID); err != nil {
		return err
	}
	if _, err := s.Get(ctx, filmID); err != nil {
		return err
	}
	if err := s.films.RemoveLike(ctx, filmID, userID); err != nil {
		return err
	}
	return s.events.Append(ctx, &domain.HistoryEvent{
		UserID:    userID,
		EventType: domain.EventLike,
		Operation: domain.OperationRemove,
		EntityID:  filmID,
	})
}

// MostPopular возвращает не более count фильмов, отсортированных по числу
// лайков по убыванию (при равенстве — по возрастанию id), с необязательными
// фильтрами по жанру и году релиза.
func (s *FilmService) MostPopular(ctx context.Context, count int, genreID, year *int) ([]*domain.Film, error) {
	if count <= 0 {
		return nil, apperr.InvalidArgument("count must be positive, got %d", count)
	}
	if year != nil {
		currentYear := time.Now().Year()
		if *year < domain.CinemaBirthday.Year() || *year > currentYear {
			return nil, apperr.InvalidArgument("year must be between %d and %d, got %d",
				domain.CinemaBirthday.Year(), currentYear, *year)
		}
	}
	if genreID != nil {
		if _, err := s.genres.GetByID(ctx, *genreID); err != nil {
			if errors.Is(err, store.ErrGenreNotFound) {
				return nil, apperr.NotFound("genre with id = %d does not exist", *genreID)
			}
			return nil, err
		}
	}

	films, err := s.films.List(ctx)
	if err != nil {
		return nil, err
	}

	var matched []*domain.Film
	for _, film := range films {
		if genreID != nil && !hasGenre(film, *genreID) {
			continue
		}
		if year != nil && !releasedInYear(film, *year) {
			continue
		}
		matched = append(matched, film)
	}
	sortByLikesDesc(matched)
	if len(matched) > count {
		matched = matched[:count]
	}
	return matched, nil
}

// CommonFilms возвращает фильмы, которые лайкнули оба пользователя,
// отсортированные по популярности.
func (s *FilmService) CommonFilms(ctx context.Context, userID, friendID int) ([]*domain.Film, error) {
	if err := s.checkUser(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.checkUser(ctx, friendID); err != nil {
		return nil, err
	}

	userLikes, err := s.films.LikedFilmIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	friendLikes, err := s.films.LikedFilmIDs(ctx, friendID)
	if err != nil {
		return nil, err
	}

	friendSet := make(map[int]bool, len(friendLikes))
	for _, id := range friendLikes {
		friendSet[id] = true
	}

	var common []*domain.Film
	for _, id := range userLikes {
		if !friendSet[id] {
			continue
		}
		film, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		common = append(common, film)
	}
	sortByLikesDesc(common)
	return common, nil
}

// Search выполняет регистронезависимый поиск подстроки по названию фильма
// и/или именам его режиссёров. Пустой запрос даёт пустой результат.
func (s *FilmService) Search(ctx context.Context, query, by string) ([]*domain.Film, error) {
	byTitle, byDirector, err := parseSearchFields(by)
	if err != nil {
		return nil, err
	}
	if query == "" {
		s.logger.WarnContext(ctx, "Film search query is empty")
		return []*domain.Film{}, nil
	}

	films, err := s.films.List(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	var matched []*domain.Film
	for _, film := range films {
		if byTitle && strings.Contains(strings.ToLower(film.Name), needle) {
			matched = append(matched, film)
			continue
		}
		if byDirector && directorMatches(film, needle) {
			matched = append(matched, film)
		}
	}
	sortByLikesDesc(matched)
	return matched, nil
}

// SortedByDirector возвращает фильмы режиссёра, отсортированные по дате
// релиза ("year") или по числу лайков ("likes").
func (s *FilmService) SortedByDirector(ctx context.Context, directorID int, sortBy string) ([]*domain.Film, error) {
	if sortBy != "year" && sortBy != "likes" {
		return nil, apperr.InvalidArgument("unsupported sortBy value %q", sortBy)
	}
	if _, err := s.directors.GetByID(ctx, directorID); err != nil {
		if errors.Is(err, store.ErrDirectorNotFound) {
			return nil, apperr.NotFound("director with id = %d does not exist", directorID)
		}
		return nil, err
	}

	films, err := s.films.List(ctx)
	if err != nil {
		return nil, err
	}

	var matched []*domain.Film
	for _, film := range films {
		for _, d := range film.Directors {
			if d.ID == directorID {
				matched = append(matched, film)
				break
			}
		}
	}
	if sortBy == "year" {
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].ReleaseDate.Before(matched[j].ReleaseDate)
		})
	} else {
		sortByLikesDesc(matched)
	}
	return matched, nil
}

// buildFilm собирает доменный фильм из запроса: доменная валидация,
// разрешение ссылок на рейтинг, жанры и режиссёров.
func (s *FilmService) buildFilm(ctx context.Context, req domain.CreateFilmRequest) (*domain.Film, error) {
	releaseDate, err := time.Parse("2006-01-02", req.ReleaseDate)
	if err != nil {
		return nil, apperr.InvalidArgument("releaseDate %q is not a valid date", req.ReleaseDate)
	}

	film := &domain.Film{
		Name:        req.Name,
		Description: req.Description,
		ReleaseDate: releaseDate,
		Duration:    req.Duration,
	}
	if err := validateFilm(film); err != nil {
		return nil, err
	}

	mpa, err := s.mpa.GetByID(ctx, req.Mpa.ID)
	if err != nil {
		if errors.Is(err, store.ErrMpaNotFound) {
			return nil, apperr.NotFound("mpa rating with id = %d does not exist", req.Mpa.ID)
		}
		return nil, err
	}
	film.Mpa = mpa

	film.Genres, err = s.resolveGenres(ctx, req.Genres)
	if err != nil {
		return nil, err
	}
	film.Directors, err = s.resolveDirectors(ctx, req.Directors)
	if err != nil {
		return nil, err
	}
	return film, nil
}

// resolveGenres разрешает ссылки на жанры: дубликаты отбрасываются,
// неразрешённый id — жёсткая ошибка.
func (s *FilmService) resolveGenres(ctx context.Context, refs []domain.GenreRef) ([]domain.Genre, error) {
	ids := uniqueIDs(refs, func(r domain.GenreRef) int { return r.ID })
	if len(ids) == 0 {
		return nil, nil
	}
	resolved, err := s.genres.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(resolved) != len(ids) {
		return nil, apperr.NotFound("one or more genre ids do not exist")
	}
	genres := make([]domain.Genre, 0, len(ids))
	for _, id := range ids {
		genres = append(genres, resolved[id])
	}
	sort.Slice(genres, func(i, j int) bool { return genres[i].ID < genres[j].ID })
	return genres, nil
}

func (s *FilmService) resolveDirectors(ctx context.Context, refs []domain.DirectorRef) ([]domain.Director, error) {
	ids := uniqueIDs(refs, func(r domain.DirectorRef) int { return r.ID })
	if len(ids) == 0 {
		return nil, nil
	}
	resolved, err := s.directors.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(resolved) != len(ids) {
		return nil, apperr.NotFound("one or more director ids do not exist")
	}
	directors := make([]domain.Director, 0, len(ids))
	for _, id := range ids {
		directors = append(directors, resolved[id])
	}
	sort.Slice(directors, func(i, j int) bool { return directors[i].ID < directors[j].ID })
	return directors, nil
}

func (s *FilmService) checkUser(ctx context.Context, userID int) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return apperr.NotFound("user with id = %d does not exist", userID)
		}
		return err
	}
	return nil
}

// validateFilm — доменные правила, которые проверяются повторно даже
// после валидатора входного DTO.
func validateFilm(film *domain.Film) error {
	if strings.TrimSpace(film.Name) == "" {
		return apperr.InvalidArgument("film name must not be blank")
	}
	if len([]rune(film.Description)) > domain.MaxFilmDescriptionLen {
		return apperr.InvalidArgument("film description exceeds %d characters", domain.MaxFilmDescriptionLen)
	}
	if film.ReleaseDate.Before(domain.CinemaBirthday) {
		return apperr.InvalidArgument("film release date must not be before %s",
			domain.CinemaBirthday.Format("2006-01-02"))
	}
	if film.Duration <= 0 {
		return apperr.InvalidArgument("film duration must be positive, got %d", film.Duration)
	}
	return nil
}

// parseSearchFields разбирает селектор полей поиска. Пустой селектор
// означает поиск и по названию, и по режиссёру.
func parseSearchFields(by string) (byTitle, byDirector bool, err error) {
	if by == "" {
		return true, true, nil
	}
	tokens := strings.Split(by, ",")
	if len(tokens) > 2 {
		return false, false, apperr.InvalidArgument("search field selector contains more than two fields")
	}
	for _, token := range tokens {
		switch strings.TrimSpace(token) {
		case "title":
			byTitle = true
		case "director":
			byDirector = true
		default:
			return false, false, apperr.InvalidArgument("unknown search field %q", strings.TrimSpace(token))
		}
	}
	return byTitle, byDirector, nil
}

func directorMatches(film *domain.Film, needle string) bool {
	for _, d := range film.Directors {
		if strings.Contains(strings.ToLower(d.Name), needle) {
			return true
		}
	}
	return false
}

func hasGenre(film *domain.Film, genreID int) bool {
	for _, g := range film.Genres {
		if g.ID == genreID {
			return true
		}
	}
	return false
}

func releasedInYear(film *domain.Film, year int) bool {
	return film.ReleaseDate.Year() == year
}

// sortByLikesDesc — каноническая сортировка выдачи: по числу лайков по
// убыванию, при равенстве — по возрастанию id (детерминированный порядок).
func sortByLikesDesc(films []*domain.Film) {
	sort.SliceStable(films, func(i, j int) bool {
		if films[i].LikeCount() != films[j].LikeCount() {
			return films[i].LikeCount() > films[j].LikeCount()
		}
		return films[i].ID < films[j].ID
	})
}

func uniqueIDs[T any](refs []T, id func(T) int) []int {
	seen := make(map[int]bool, len(refs))
	var ids []int
	for _, ref := range refs {
		v := id(ref)
		if !seen[v] {
			seen[v] = true
			ids = append(ids, v)
		}
	}
	return ids
}
