package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Klementor/java-filmorate/internal/domain"
	"github.com/Klementor/java-filmorate/internal/store"
)

// fixture собирает сервисы поверх in-memory хранилищ.
type fixture struct {
	films     *store.InMemoryFilmStore
	users     *store.InMemoryUserStore
	reviews   *store.InMemoryReviewStore
	directors *store.InMemoryDirectorStore
	events    *store.InMemoryEventStore

	filmSvc     *FilmService
	userSvc     *UserService
	reviewSvc   *ReviewService
	directorSvc *DirectorService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	films := store.NewInMemoryFilmStore()
	users := store.NewInMemoryUserStore()
	reviews := store.NewInMemoryReviewStore()
	genres := store.NewInMemoryGenreStore()
	mpa := store.NewInMemoryMpaStore()
	directors := store.NewInMemoryDirectorStore()
	events := store.NewInMemoryEventStore()

	return &fixture{
		films:       films,
		users:       users,
		reviews:     reviews,
		directors:   directors,
		events:      events,
		filmSvc:     NewFilmService(films, users, genres, mpa, directors, events, logger),
		userSvc:     NewUserService(users, films, events, logger),
		reviewSvc:   NewReviewService(reviews, users, films, events, logger),
		directorSvc: NewDirectorService(directors, logger),
	}
}

func validFilmRequest(name string) domain.CreateFilmRequest {
	return domain.CreateFilmRequest{
		Name:        name,
		Description: "описание",
		ReleaseDate: "2000-06-15",
		Duration:    120,
		Mpa:         domain.MpaRef{ID: 1},
	}
}

func (f *fixture) addFilm(t *testing.T, name string) *domain.Film {
	t.Helper()
	film, err := f.filmSvc.Create(context.Background(), validFilmRequest(name))
	require.NoError(t, err)
	return film
}

func (f *fixture) addUser(t *testing.T, login string) *domain.User {
	t.Helper()
	user, err := f.userSvc.Create(context.Background(), domain.CreateUserRequest{
		Email:    login + "@example.com",
		Login:    login,
		Birthday: "1990-01-01",
	})
	require.NoError(t, err)
	return user
}

func (f *fixture) addDirector(t *testing.T, name string) domain.Director {
	t.Helper()
	director, err := f.directorSvc.Create(context.Background(), domain.CreateDirectorRequest{Name: name})
	require.NoError(t, err)
	return director
}

func (f *fixture) like(t *testing.T, filmID, userID int) {
	t.Helper()
	require.NoError(t, f.filmSvc.Like(context.Background(), filmID, userID))
}

func boolPtr(v bool) *bool { return &v }
func intPtr(v int) *int    { return &v }
