package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter настраивает маршруты приложения под префиксом /api.
func NewRouter(handler *Handler, logger *slog.Logger) *mux.Router {
	router := mux.NewRouter()
	router.Use(RequestLogging(logger))

	apiRouter := router.PathPrefix("/api").Subrouter()

	// Фильмы
	filmsRouter := apiRouter.PathPrefix("/films").Subrouter()
	filmsRouter.HandleFunc("", handler.CreateFilm).Methods(http.MethodPost)
	filmsRouter.HandleFunc("", handler.UpdateFilm).Methods(http.MethodPut)
	filmsRouter.HandleFunc("", handler.GetFilms).Methods(http.MethodGet)
	filmsRouter.HandleFunc("/popular", handler.PopularFilms).Methods(http.MethodGet)
	filmsRouter.HandleFunc("/common", handler.CommonFilms).Methods(http.MethodGet)
	filmsRouter.HandleFunc("/search", handler.SearchFilms).Methods(http.MethodGet)
	filmsRouter.HandleFunc("/director/{directorId}", handler.FilmsByDirector).Methods(http.MethodGet)
	filmsRouter.HandleFunc("/{filmId}", handler.GetFilm).Methods(http.MethodGet)
	filmsRouter.HandleFunc("/{filmId}", handler.DeleteFilm).Methods(http.MethodDelete)
	filmsRouter.HandleFunc("/{filmId}/like/{userId}", handler.LikeFilm).Methods(http.MethodPut)
	filmsRouter.HandleFunc("/{filmId}/like/{userId}", handler.UnlikeFilm).Methods(http.MethodDelete)

	// Пользователи
	usersRouter := apiRouter.PathPrefix("/users").Subrouter()
	usersRouter.HandleFunc("", handler.CreateUser).Methods(http.MethodPost)
	usersRouter.HandleFunc("", handler.UpdateUser).Methods(http.MethodPut)
	usersRouter.HandleFunc("", handler.GetUsers).Methods(http.MethodGet)
	usersRouter.HandleFunc("/{userId}", handler.GetUser).Methods(http.MethodGet)
	usersRouter.HandleFunc("/{userId}", handler.DeleteUser).Methods(http.MethodDelete)
	usersRouter.HandleFunc("/{userId}/friends", handler.GetFriends).Methods(http.MethodGet)
	usersRouter.HandleFunc("/{userId}/friends/common/{otherId}", handler.GetCommonFriends).Methods(http.MethodGet)
	usersRouter.HandleFunc("/{userId}/friends/{friendId}", handler.AddFriend).Methods(http.MethodPut)
	usersRouter.HandleFunc("/{userId}/friends/{friendId}", handler.RemoveFriend).Methods(http.MethodDelete)
	usersRouter.HandleFunc("/{userId}/recommendations", handler.GetRecommendations).Methods(http.MethodGet)
	usersRouter.HandleFunc("/{userId}/feed", handler.GetFeed).Methods(http.MethodGet)

	// Отзывы
	reviewsRouter := apiRouter.PathPrefix("/reviews").Subrouter()
	reviewsRouter.HandleFunc("", handler.CreateReview).Methods(http.MethodPost)
	reviewsRouter.HandleFunc("", handler.UpdateReview).Methods(http.MethodPut)
	reviewsRouter.HandleFunc("", handler.GetReviews).Methods(http.MethodGet)
	reviewsRouter.HandleFunc("/{reviewId}", handler.GetReview).Methods(http.MethodGet)
	reviewsRouter.HandleFunc("/{reviewId}", handler.DeleteReview).Methods(http.MethodDelete)
	reviewsRouter.HandleFunc("/{reviewId}/like/{userId}", handler.LikeReview).Methods(http.MethodPut)
	reviewsRouter.HandleFunc("/{reviewId}/like/{userId}", handler.UnlikeReview).Methods(http.MethodDelete)
	reviewsRouter.HandleFunc("/{reviewId}/dislike/{userId}", handler.DislikeReview).Methods(http.MethodPut)
	reviewsRouter.HandleFunc("/{reviewId}/dislike/{userId}", handler.UndislikeReview).Methods(http.MethodDelete)

	// Справочники
	apiRouter.HandleFunc("/genres", handler.GetGenres).Methods(http.MethodGet)
	apiRouter.HandleFunc("/genres/{genreId}", handler.GetGenre).Methods(http.MethodGet)
	apiRouter.HandleFunc("/mpa", handler.GetMpaRatings).Methods(http.MethodGet)
	apiRouter.HandleFunc("/mpa/{mpaId}", handler.GetMpaRating).Methods(http.MethodGet)

	directorsRouter := apiRouter.PathPrefix("/directors").Subrouter()
	directorsRouter.HandleFunc("", handler.GetDirectors).Methods(http.MethodGet)
	directorsRouter.HandleFunc("", handler.CreateDirector).Methods(http.MethodPost)
	directorsRouter.HandleFunc("", handler.UpdateDirector).Methods(http.MethodPut)
	directorsRouter.HandleFunc("/{directorId}", handler.GetDirector).Methods(http.MethodGet)
	directorsRouter.HandleFunc("/{directorId}", handler.DeleteDirector).Methods(http.MethodDelete)

	return router
}
