package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Klementor/java-filmorate/internal/domain"
)

func testFilm(name string) *domain.Film {
	return &domain.Film{
		Name:        name,
		Description: "описание",
		ReleaseDate: time.Date(2000, time.June, 15, 0, 0, 0, 0, time.UTC),
		Duration:    120,
		Mpa:         domain.Mpa{ID: 1, Name: "G"},
	}
}

func testUser(login string) *domain.User {
	return &domain.User{
		Email:    login + "@example.com",
		Login:    login,
		Name:     login,
		Birthday: time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestInMemoryFilmStore_AssignsSequentialIDs(t *testing.T) {
	s := NewInMemoryFilmStore()
	ctx := context.Background()

	first := testFilm("Первый")
	second := testFilm("Второй")
	require.NoError(t, s.Create(ctx, first))
	require.NoError(t, s.Create(ctx, second))

	assert.Equal(t, 1, first.ID)
	assert.Equal(t, 2, second.ID)

	films, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, films, 2)
	assert.Equal(t, 1, films[0].ID)
	assert.Equal(t, 2, films[1].ID)
}

func TestInMemoryFilmStore_GetReturnsCopy(t *testing.T) {
	s := NewInMemoryFilmStore()
	ctx := context.Background()

	film := testFilm("Оригинал")
	film.Genres = []domain.Genre{{ID: 1, Name: "Комедия"}}
	require.NoError(t, s.Create(ctx, film))

	got, err := s.GetByID(ctx, film.ID)
	require.NoError(t, err)
	got.Name = "Испорчен"
	got.Genres[0].Name = "Испорчен"

	fresh, err := s.GetByID(ctx, film.ID)
	require.NoError(t, err)
	assert.Equal(t, "Оригинал", fresh.Name)
	assert.Equal(t, "Комедия", fresh.Genres[0].Name)
}

func TestInMemoryFilmStore_Likes(t *testing.T) {
	s := NewInMemoryFilmStore()
	ctx := context.Background()

	film := testFilm("Фильм")
	require.NoError(t, s.Create(ctx, film))

	require.NoError(t, s.AddLike(ctx, film.ID, 7))
	require.NoError(t, s.AddLike(ctx, film.ID, 3))
	assert.ErrorIs(t, s.AddLike(ctx, film.ID, 7), ErrLikeExists)
	assert.ErrorIs(t, s.AddLike(ctx, 9999, 7), ErrFilmNotFound)

	got, err := s.GetByID(ctx, film.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 7}, got.Likes)

	liked, err := s.LikedFilmIDs(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, []int{film.ID}, liked)

	facts, err := s.AllLikes(ctx)
	require.NoError(t, err)
	assert.Len(t, facts, 2)

	require.NoError(t, s.RemoveLike(ctx, film.ID, 7))
	// Снятие несуществующего лайка — no-op.
	require.NoError(t, s.RemoveLike(ctx, film.ID, 7))

	got, err = s.GetByID(ctx, film.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{3}, got.Likes)
}

func TestInMemoryFilmStore_DeleteDropsLikes(t *testing.T) {
	s := NewInMemoryFilmStore()
	ctx := context.Background()

	film := testFilm("Фильм")
	require.NoError(t, s.Create(ctx, film))
	require.NoError(t, s.AddLike(ctx, film.ID, 1))

	require.NoError(t, s.Delete(ctx, film.ID))
	assert.ErrorIs(t, s.Delete(ctx, film.ID), ErrFilmNotFound)

	facts, err := s.AllLikes(ctx)
	require.NoError(t, err)
	assert.Empty(t, facts)
}

func TestInMemoryUserStore_Friends(t *testing.T) {
	s := NewInMemoryUserStore()
	ctx := context.Background()

	alice := testUser("alice")
	bob := testUser("bob")
	require.NoError(t, s.Create(ctx, alice))
	require.NoError(t, s.Create(ctx, bob))

	require.NoError(t, s.AddFriend(ctx, alice.ID, bob.ID))
	assert.ErrorIs(t, s.AddFriend(ctx, alice.ID, bob.ID), ErrFriendExists)
	assert.ErrorIs(t, s.AddFriend(ctx, 9999, bob.ID), ErrUserNotFound)

	ids, err := s.FriendIDs(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{bob.ID}, ids)

	// Ребро направленное: у bob друзей нет.
	ids, err = s.FriendIDs(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)

	got, err := s.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{bob.ID}, got.Friends)

	require.NoError(t, s.RemoveFriend(ctx, alice.ID, bob.ID))
	ids, err = s.FriendIDs(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)

	_, err = s.FriendIDs(ctx, 9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestInMemoryUserStore_NotFound(t *testing.T) {
	s := NewInMemoryUserStore()
	ctx := context.Background()

	_, err := s.GetByID(ctx, 1)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.ErrorIs(t, s.Update(ctx, testUser("ghost")), ErrUserNotFound)
	assert.ErrorIs(t, s.Delete(ctx, 1), ErrUserNotFound)
}

func TestInMemoryReviewStore_Reactions(t *testing.T) {
	s := NewInMemoryReviewStore()
	ctx := context.Background()

	review := &domain.Review{Content: "Отзыв", IsPositive: true, UserID: 1, FilmID: 1}
	require.NoError(t, s.Create(ctx, review))
	assert.Equal(t, 1, review.ReviewID)

	require.NoError(t, s.AddReaction(ctx, review.ReviewID, 10, domain.ReactionLike))
	require.NoError(t, s.AddReaction(ctx, review.ReviewID, 11, domain.ReactionDislike))
	assert.ErrorIs(t, s.AddReaction(ctx, review.ReviewID, 10, domain.ReactionLike), ErrReactionExists)
	assert.ErrorIs(t, s.AddReaction(ctx, 9999, 10, domain.ReactionLike), ErrReviewNotFound)

	got, err := s.GetByID(ctx, review.ReviewID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Useful)

	require.NoError(t, s.RemoveReaction(ctx, review.ReviewID, 11))
	got, err = s.GetByID(ctx, review.ReviewID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Useful)
}

func TestInMemoryEventStore_AppendAndListFor(t *testing.T) {
	s := NewInMemoryEventStore()
	ctx := context.Background()

	first := &domain.HistoryEvent{UserID: 1, EventType: domain.EventLike, Operation: domain.OperationAdd, EntityID: 5}
	second := &domain.HistoryEvent{UserID: 2, EventType: domain.EventFriend, Operation: domain.OperationAdd, EntityID: 1}
	third := &domain.HistoryEvent{UserID: 1, EventType: domain.EventLike, Operation: domain.OperationRemove, EntityID: 5}

	require.NoError(t, s.Append(ctx, first))
	require.NoError(t, s.Append(ctx, second))
	require.NoError(t, s.Append(ctx, third))

	assert.Equal(t, 1, first.EventID)
	assert.Equal(t, 2, second.EventID)
	assert.Equal(t, 3, third.EventID)
	assert.Positive(t, first.Timestamp)

	events, err := s.ListFor(ctx, 1)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, first.EventID, events[0].EventID)
	assert.Equal(t, third.EventID, events[1].EventID)
}

func TestInMemoryCatalogStores_Defaults(t *testing.T) {
	ctx := context.Background()

	genres, err := NewInMemoryGenreStore().List(ctx)
	require.NoError(t, err)
	require.Len(t, genres, 6)
	assert.Equal(t, "Комедия", genres[0].Name)

	mpa, err := NewInMemoryMpaStore().List(ctx)
	require.NoError(t, err)
	require.Len(t, mpa, 5)
	assert.Equal(t, "G", mpa[0].Name)
	assert.Equal(t, "NC-17", mpa[4].Name)
}

func TestInMemoryGenreStore_GetByIDs(t *testing.T) {
	s := NewInMemoryGenreStore()
	ctx := context.Background()

	resolved, err := s.GetByIDs(ctx, []int{1, 3, 99})
	require.NoError(t, err)
	// Неизвестный id просто не попадает в результат.
	require.Len(t, resolved, 2)
	assert.Equal(t, "Комедия", resolved[1].Name)
	assert.Equal(t, "Мультфильм", resolved[3].Name)
}

func TestInMemoryDirectorStore_CRUD(t *testing.T) {
	s := NewInMemoryDirectorStore()
	ctx := context.Background()

	director := &domain.Director{Name: "Нолан"}
	require.NoError(t, s.Create(ctx, director))
	assert.Equal(t, 1, director.ID)

	director.Name = "Кристофер Нолан"
	require.NoError(t, s.Update(ctx, director))

	got, err := s.GetByID(ctx, director.ID)
	require.NoError(t, err)
	assert.Equal(t, "Кристофер Нолан", got.Name)

	require.NoError(t, s.Delete(ctx, director.ID))
	_, err = s.GetByID(ctx, director.ID)
	assert.ErrorIs(t, err, ErrDirectorNotFound)
	assert.ErrorIs(t, s.Update(ctx, director), ErrDirectorNotFound)
	assert.ErrorIs(t, s.Delete(ctx, director.ID), ErrDirectorNotFound)
}
