package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Klementor/java-filmorate/internal/apperr"
	"github.com/Klementor/java-filmorate/internal/domain"
)

func TestUserService_Create(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.userSvc.Create(ctx, domain.CreateUserRequest{
		Email:    "dolore@example.com",
		Login:    "dolore",
		Name:     "Nick Name",
		Birthday: "1946-08-20",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, user.ID)
	assert.Equal(t, "Nick Name", user.Name)

	second := f.addUser(t, "second")
	assert.Equal(t, 2, second.ID)
}

func TestUserService_CreateBlankNameFallsBackToLogin(t *testing.T) {
	f := newFixture(t)

	user, err := f.userSvc.Create(context.Background(), domain.CreateUserRequest{
		Email:    "common@example.com",
		Login:    "common",
		Name:     "   ",
		Birthday: "2000-08-20",
	})
	require.NoError(t, err)
	assert.Equal(t, "common", user.Name)
}

func TestUserService_CreateValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(req *domain.CreateUserRequest)
	}{
		{"blank login", func(req *domain.CreateUserRequest) { req.Login = "  " }},
		{"login with space", func(req *domain.CreateUserRequest) { req.Login = "dolore ullamco" }},
		{"email without at", func(req *domain.CreateUserRequest) { req.Email = "mail.example.com" }},
		{"blank email", func(req *domain.CreateUserRequest) { req.Email = " " }},
		{"future birthday", func(req *domain.CreateUserRequest) { req.Birthday = "2446-08-20" }},
		{"unparsable birthday", func(req *domain.CreateUserRequest) { req.Birthday = "20.08.1946" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := domain.CreateUserRequest{
				Email:    "valid@example.com",
				Login:    "valid",
				Birthday: "1990-01-01",
			}
			tt.mutate(&req)
			_, err := f.userSvc.Create(ctx, req)
			require.Error(t, err)
			assert.True(t, apperr.IsInvalidArgument(err), "unexpected error class: %v", err)
		})
	}
}

func TestUserService_Update(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user := f.addUser(t, "before")

	updated, err := f.userSvc.Update(ctx, domain.UpdateUserRequest{
		ID: user.ID,
		CreateUserRequest: domain.CreateUserRequest{
			Email:    "after@example.com",
			Login:    "after",
			Birthday: "1990-01-01",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, updated.ID)
	assert.Equal(t, "after", updated.Login)

	_, err = f.userSvc.Update(ctx, domain.UpdateUserRequest{
		ID: 9999,
		CreateUserRequest: domain.CreateUserRequest{
			Email:    "ghost@example.com",
			Login:    "ghost",
			Birthday: "1990-01-01",
		},
	})
	assert.True(t, apperr.IsNotFound(err))
}

func TestUserService_FriendshipIsDirected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice := f.addUser(t, "alice")
	bob := f.addUser(t, "bob")

	require.NoError(t, f.userSvc.AddFriend(ctx, alice.ID, bob.ID))

	aliceFriends, err := f.userSvc.Friends(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, aliceFriends, 1)
	assert.Equal(t, bob.ID, aliceFriends[0].ID)

	// Обратного ребра нет: дружба направленная.
	bobFriends, err := f.userSvc.Friends(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, bobFriends)

	// Повторное добавление — no-op.
	require.NoError(t, f.userSvc.AddFriend(ctx, alice.ID, bob.ID))
	aliceFriends, err = f.userSvc.Friends(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, aliceFriends, 1)

	require.NoError(t, f.userSvc.RemoveFriend(ctx, alice.ID, bob.ID))
	aliceFriends, err = f.userSvc.Friends(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, aliceFriends)

	assert.True(t, apperr.IsNotFound(f.userSvc.AddFriend(ctx, alice.ID, 9999)))
	assert.True(t, apperr.IsNotFound(f.userSvc.AddFriend(ctx, 9999, bob.ID)))
}

func TestUserService_FriendsSkipDeletedUsers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice := f.addUser(t, "alice")
	bob := f.addUser(t, "bob")

	require.NoError(t, f.userSvc.AddFriend(ctx, alice.ID, bob.ID))
	require.NoError(t, f.userSvc.Delete(ctx, bob.ID))

	friends, err := f.userSvc.Friends(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, friends)
}

func TestUserService_CommonFriends(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice := f.addUser(t, "alice")
	bob := f.addUser(t, "bob")
	carol := f.addUser(t, "carol")
	dave := f.addUser(t, "dave")

	require.NoError(t, f.userSvc.AddFriend(ctx, alice.ID, carol.ID))
	require.NoError(t, f.userSvc.AddFriend(ctx, alice.ID, dave.ID))
	require.NoError(t, f.userSvc.AddFriend(ctx, bob.ID, carol.ID))

	common, err := f.userSvc.CommonFriends(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.Len(t, common, 1)
	assert.Equal(t, carol.ID, common[0].ID)

	// Симметрично по построению.
	reversed, err := f.userSvc.CommonFriends(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	require.Len(t, reversed, 1)
	assert.Equal(t, carol.ID, reversed[0].ID)

	none, err := f.userSvc.CommonFriends(ctx, carol.ID, dave.ID)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUserService_Recommendations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	filmA := f.addFilm(t, "A")
	filmB := f.addFilm(t, "B")
	filmC := f.addFilm(t, "C")

	u1 := f.addUser(t, "u1")
	u2 := f.addUser(t, "u2")
	u3 := f.addUser(t, "u3")

	// u2 — ближайший сосед u1 (пересечение из двух фильмов), u3 отстаёт.
	f.like(t, filmA.ID, u1.ID)
	f.like(t, filmB.ID, u1.ID)

	f.like(t, filmA.ID, u2.ID)
	f.like(t, filmB.ID, u2.ID)
	f.like(t, filmC.ID, u2.ID)

	f.like(t, filmA.ID, u3.ID)

	recommended, err := f.userSvc.Recommendations(ctx, u1.ID)
	require.NoError(t, err)
	require.Len(t, recommended, 1)
	assert.Equal(t, filmC.ID, recommended[0].ID)
}

func TestUserService_RecommendationsMergeTiedNeighbors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	filmA := f.addFilm(t, "A")
	filmB := f.addFilm(t, "B")
	filmC := f.addFilm(t, "C")

	u1 := f.addUser(t, "u1")
	u2 := f.addUser(t, "u2")
	u3 := f.addUser(t, "u3")

	f.like(t, filmA.ID, u1.ID)

	// Оба соседа пересекаются с u1 одинаково; рекомендации объединяются.
	f.like(t, filmA.ID, u2.ID)
	f.like(t, filmB.ID, u2.ID)

	f.like(t, filmA.ID, u3.ID)
	f.like(t, filmC.ID, u3.ID)

	recommended, err := f.userSvc.Recommendations(ctx, u1.ID)
	require.NoError(t, err)
	require.Len(t, recommended, 2)
	assert.Equal(t, filmB.ID, recommended[0].ID)
	assert.Equal(t, filmC.ID, recommended[1].ID)
}

func TestUserService_RecommendationsEmptyCases(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	filmA := f.addFilm(t, "A")
	filmB := f.addFilm(t, "B")

	loner := f.addUser(t, "loner")
	other := f.addUser(t, "other")

	// Без лайков рекомендаций нет.
	recommended, err := f.userSvc.Recommendations(ctx, loner.ID)
	require.NoError(t, err)
	assert.Empty(t, recommended)

	// Лайки есть, но пересечений с соседями нет.
	f.like(t, filmA.ID, loner.ID)
	f.like(t, filmB.ID, other.ID)

	recommended, err = f.userSvc.Recommendations(ctx, loner.ID)
	require.NoError(t, err)
	assert.Empty(t, recommended)

	_, err = f.userSvc.Recommendations(ctx, 9999)
	assert.True(t, apperr.IsNotFound(err))
}

func TestUserService_Feed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	film := f.addFilm(t, "Фильм")
	alice := f.addUser(t, "alice")
	bob := f.addUser(t, "bob")

	require.NoError(t, f.userSvc.AddFriend(ctx, alice.ID, bob.ID))
	require.NoError(t, f.filmSvc.Like(ctx, film.ID, alice.ID))
	require.NoError(t, f.userSvc.RemoveFriend(ctx, alice.ID, bob.ID))

	feed, err := f.userSvc.Feed(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, feed, 3)

	assert.Equal(t, domain.EventFriend, feed[0].EventType)
	assert.Equal(t, domain.OperationAdd, feed[0].Operation)
	assert.Equal(t, domain.EventLike, feed[1].EventType)
	assert.Equal(t, domain.OperationRemove, feed[2].Operation)
	assert.Equal(t, bob.ID, feed[2].EntityID)

	// Идентификаторы событий монотонно растут, временные метки проставлены.
	assert.Less(t, feed[0].EventID, feed[1].EventID)
	assert.Less(t, feed[1].EventID, feed[2].EventID)
	assert.Positive(t, feed[0].Timestamp)

	// В ленте только события самого пользователя.
	bobFeed, err := f.userSvc.Feed(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, bobFeed)

	_, err = f.userSvc.Feed(ctx, 9999)
	assert.True(t, apperr.IsNotFound(err))
}
