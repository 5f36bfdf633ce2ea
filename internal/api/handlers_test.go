package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Klementor/java-filmorate/internal/domain"
	"github.com/Klementor/java-filmorate/internal/service"
	"github.com/Klementor/java-filmorate/internal/store"
)

// newTestServer поднимает полный HTTP-стек приложения на memory-хранилищах.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	films := store.NewInMemoryFilmStore()
	users := store.NewInMemoryUserStore()
	reviews := store.NewInMemoryReviewStore()
	genres := store.NewInMemoryGenreStore()
	mpa := store.NewInMemoryMpaStore()
	directors := store.NewInMemoryDirectorStore()
	events := store.NewInMemoryEventStore()

	handler := NewHandler(
		service.NewFilmService(films, users, genres, mpa, directors, events, logger),
		service.NewUserService(users, films, events, logger),
		service.NewReviewService(reviews, users, films, events, logger),
		service.NewGenreService(genres),
		service.NewMpaService(mpa),
		service.NewDirectorService(directors, logger),
		logger,
		validator.New(),
	)

	srv := httptest.NewServer(NewRouter(handler, logger))
	t.Cleanup(srv.Close)
	return srv
}

func doRequest(t *testing.T, srv *httptest.Server, method, path string, body any) (*http.Response, []byte) {
	t.Helper()

	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		payload = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, srv.URL+path, payload)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	return resp, raw
}

func decodeInto(t *testing.T, raw []byte, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, out))
}

func createTestUser(t *testing.T, srv *httptest.Server, login string) domain.User {
	t.Helper()
	resp, raw := doRequest(t, srv, http.MethodPost, "/api/users", map[string]any{
		"email":    login + "@example.com",
		"login":    login,
		"birthday": "1990-01-01",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var user domain.User
	decodeInto(t, raw, &user)
	return user
}

func createTestFilm(t *testing.T, srv *httptest.Server, name string) domain.Film {
	t.Helper()
	resp, raw := doRequest(t, srv, http.MethodPost, "/api/films", map[string]any{
		"name":        name,
		"description": "описание",
		"releaseDate": "2000-06-15",
		"duration":    120,
		"mpa":         map[string]int{"id": 1},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var film domain.Film
	decodeInto(t, raw, &film)
	return film
}

func TestCreateAndGetFilm(t *testing.T) {
	srv := newTestServer(t)

	film := createTestFilm(t, srv, "Интерстеллар")
	assert.Equal(t, 1, film.ID)
	assert.Equal(t, "G", film.Mpa.Name)

	resp, raw := doRequest(t, srv, http.MethodGet, "/api/films/1", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var got domain.Film
	decodeInto(t, raw, &got)
	assert.Equal(t, "Интерстеллар", got.Name)

	resp, _ = doRequest(t, srv, http.MethodGet, "/api/films/9999", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doRequest(t, srv, http.MethodGet, "/api/films/abc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateFilmValidation(t *testing.T) {
	srv := newTestServer(t)

	// Валидатор DTO: дата в чужом формате.
	resp, _ := doRequest(t, srv, http.MethodPost, "/api/films", map[string]any{
		"name":        "Фильм",
		"releaseDate": "15.06.2000",
		"duration":    120,
		"mpa":         map[string]int{"id": 1},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Доменная валидация: дата раньше дня рождения кино.
	resp, _ = doRequest(t, srv, http.MethodPost, "/api/films", map[string]any{
		"name":        "Фильм",
		"releaseDate": "1890-01-01",
		"duration":    120,
		"mpa":         map[string]int{"id": 1},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Неизвестный рейтинг — 404.
	resp, _ = doRequest(t, srv, http.MethodPost, "/api/films", map[string]any{
		"name":        "Фильм",
		"releaseDate": "2000-06-15",
		"duration":    120,
		"mpa":         map[string]int{"id": 99},
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doRequest(t, srv, http.MethodPost, "/api/films", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateUserValidation(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doRequest(t, srv, http.MethodPost, "/api/users", map[string]any{
		"email":    "not-an-email",
		"login":    "login",
		"birthday": "1990-01-01",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doRequest(t, srv, http.MethodPost, "/api/users", map[string]any{
		"email":    "mail@example.com",
		"login":    "bad login",
		"birthday": "1990-01-01",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLikeAndPopularEndpoints(t *testing.T) {
	srv := newTestServer(t)

	first := createTestFilm(t, srv, "Первый")
	second := createTestFilm(t, srv, "Второй")
	user := createTestUser(t, srv, "liker")

	resp, _ := doRequest(t, srv, http.MethodPut, "/api/films/2/like/1", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raw := doRequest(t, srv, http.MethodGet, "/api/films/popular?count=10", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var popular []domain.Film
	decodeInto(t, raw, &popular)
	require.Len(t, popular, 2)
	assert.Equal(t, second.ID, popular[0].ID)
	assert.Equal(t, first.ID, popular[1].ID)

	resp, _ = doRequest(t, srv, http.MethodGet, "/api/films/popular?count=0", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doRequest(t, srv, http.MethodGet, "/api/films/popular?genreId=99", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doRequest(t, srv, http.MethodPut, "/api/films/9999/like/1", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = user
}

func TestFriendEndpoints(t *testing.T) {
	srv := newTestServer(t)

	alice := createTestUser(t, srv, "alice")
	bob := createTestUser(t, srv, "bob")

	resp, _ := doRequest(t, srv, http.MethodPut, "/api/users/1/friends/2", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raw := doRequest(t, srv, http.MethodGet, "/api/users/1/friends", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var friends []domain.User
	decodeInto(t, raw, &friends)
	require.Len(t, friends, 1)
	assert.Equal(t, bob.ID, friends[0].ID)

	resp, raw = doRequest(t, srv, http.MethodGet, "/api/users/2/friends", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decodeInto(t, raw, &friends)
	assert.Empty(t, friends)

	resp, raw = doRequest(t, srv, http.MethodGet, "/api/users/1/feed", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var feed []domain.HistoryEvent
	decodeInto(t, raw, &feed)
	require.Len(t, feed, 1)
	assert.Equal(t, domain.EventFriend, feed[0].EventType)
	assert.Equal(t, bob.ID, feed[0].EntityID)

	resp, _ = doRequest(t, srv, http.MethodPut, "/api/users/1/friends/9999", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = alice
}

func TestReviewEndpoints(t *testing.T) {
	srv := newTestServer(t)

	film := createTestFilm(t, srv, "Фильм")
	author := createTestUser(t, srv, "author")
	voter := createTestUser(t, srv, "voter")

	resp, raw := doRequest(t, srv, http.MethodPost, "/api/reviews", map[string]any{
		"content":    "Отличный фильм",
		"isPositive": true,
		"userId":     author.ID,
		"filmId":     film.ID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var review domain.Review
	decodeInto(t, raw, &review)
	assert.Equal(t, 1, review.ReviewID)
	assert.Equal(t, 0, review.Useful)

	resp, _ = doRequest(t, srv, http.MethodPut, "/api/reviews/1/like/2", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raw = doRequest(t, srv, http.MethodGet, "/api/reviews/1", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decodeInto(t, raw, &review)
	assert.Equal(t, 1, review.Useful)

	resp, raw = doRequest(t, srv, http.MethodGet, "/api/reviews?filmId=1&count=10", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var reviews []domain.Review
	decodeInto(t, raw, &reviews)
	assert.Len(t, reviews, 1)

	// Тело без тональности отклоняет валидатор DTO.
	resp, _ = doRequest(t, srv, http.MethodPost, "/api/reviews", map[string]any{
		"content": "Без тональности",
		"userId":  author.ID,
		"filmId":  film.ID,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doRequest(t, srv, http.MethodDelete, "/api/reviews/9999", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doRequest(t, srv, http.MethodDelete, "/api/reviews/1", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = doRequest(t, srv, http.MethodGet, "/api/reviews/1", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = voter
}

func TestSearchAndDirectorEndpoints(t *testing.T) {
	srv := newTestServer(t)

	resp, raw := doRequest(t, srv, http.MethodPost, "/api/directors", map[string]any{"name": "Кристофер Нолан"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var director domain.Director
	decodeInto(t, raw, &director)

	resp, raw = doRequest(t, srv, http.MethodPost, "/api/films", map[string]any{
		"name":        "The Dark Knight",
		"description": "описание",
		"releaseDate": "2008-07-18",
		"duration":    152,
		"mpa":         map[string]int{"id": 3},
		"directors":   []map[string]int{{"id": director.ID}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	resp, raw = doRequest(t, srv, http.MethodGet, "/api/films/search?query=dark&by=title", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var found []domain.Film
	decodeInto(t, raw, &found)
	require.Len(t, found, 1)
	assert.Equal(t, "The Dark Knight", found[0].Name)

	resp, _ = doRequest(t, srv, http.MethodGet, "/api/films/search?query=dark&by=writer", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, raw = doRequest(t, srv, http.MethodGet, "/api/films/director/1?sortBy=year", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decodeInto(t, raw, &found)
	assert.Len(t, found, 1)

	resp, _ = doRequest(t, srv, http.MethodGet, "/api/films/director/1?sortBy=rating", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doRequest(t, srv, http.MethodGet, "/api/films/director/9999?sortBy=year", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCatalogEndpoints(t *testing.T) {
	srv := newTestServer(t)

	resp, raw := doRequest(t, srv, http.MethodGet, "/api/genres", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var genres []domain.Genre
	decodeInto(t, raw, &genres)
	assert.Len(t, genres, 6)

	resp, raw = doRequest(t, srv, http.MethodGet, "/api/mpa/5", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var rating domain.Mpa
	decodeInto(t, raw, &rating)
	assert.Equal(t, "NC-17", rating.Name)

	resp, _ = doRequest(t, srv, http.MethodGet, "/api/mpa/99", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doRequest(t, srv, http.MethodGet, "/api/genres/99", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
