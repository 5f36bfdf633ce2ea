package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/Klementor/java-filmorate/internal/domain"
	"github.com/Klementor/java-filmorate/internal/service"
)

// Handler объединяет HTTP-обработчики всех ресурсов приложения.
type Handler struct {
	films     *service.FilmService
	users     *service.UserService
	reviews   *service.ReviewService
	genres    *service.GenreService
	mpa       *service.MpaService
	directors *service.DirectorService
	logger    *slog.Logger
	validator *validator.Validate
}

func NewHandler(films *service.FilmService, users *service.UserService, reviews *service.ReviewService,
	genres *service.GenreService, mpa *service.MpaService, directors *service.DirectorService,
	logger *slog.Logger, v *validator.Validate) *Handler {
	return &Handler{
		films:     films,
		users:     users,
		reviews:   reviews,
		genres:    genres,
		mpa:       mpa,
		directors: directors,
		logger:    logger,
		validator: v,
	}
}

func (h *Handler) CreateFilm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.CreateFilmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := h.validator.StructCtx(ctx, req); err != nil {
		h.logger.WarnContext(ctx, "Create film request validation failed", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	film, err := h.films.Create(ctx, req)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusCreated, film)
}

func (h *Handler) UpdateFilm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.UpdateFilmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := h.validator.StructCtx(ctx, req); err != nil {
		h.logger.WarnContext(ctx, "Update film request validation failed", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	film, err := h.films.Update(ctx, req)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, film)
}

func (h *Handler) GetFilms(w http.ResponseWriter, r *http.Request) {
	films, err := h.films.List(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, films)
}

func (h *Handler) GetFilm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "filmId")
	if !ok {
		h.respondError(w, r, http.StatusBadRequest, "Invalid film id")
		return
	}
	film, err := h.films.Get(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, film)
}

func (h *Handler) DeleteFilm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "filmId")
	if !ok {
		h.respondError(w, r, http.StatusBadRequest, "Invalid film id")
		return
	}
	if err := h.films.Delete(r.Context(), id); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, nil)
}

func (h *Handler) LikeFilm(w http.ResponseWriter, r *http.Request) {
	filmID, ok := pathInt(r, "filmId")
	if !ok {
		h.respondError(w, r, http.StatusBadRequest, "Invalid film id")
		return
	}
	userID, ok := pathInt(r, "userId")
	if !ok {
		h.respondError(w, r, http.StatusBadRequest, "Invalid user id")
		return
	}
	if err := h.films.Like(r.Context(), filmID, userID); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, nil)
}

func (h *Handler) UnlikeFilm(w http.ResponseWriter, r *http.Request) {
	filmID, ok := pathInt(r, "filmId")
	if !ok {
		h.respondError(w, r, http.StatusBadRequest, "Invalid film id")
		return
	}
	userID, ok := pathInt(r, "userId")
	if !ok {
		h.respondError(w, r, http.StatusBadRequest, "Invalid user id")
		return
	}
	if err := h.films.Unlike(r.Context(), filmID, userID); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, nil)
}

func (h *Handler) PopularFilms(w http.ResponseWriter, r *http.Request) {
	count := service.DefaultPopularCount
	if v, err := optionalInt(r, "count"); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Invalid count parameter")
		return
	} else if v != nil {
		count = *v
	}
	genreID, err := optionalInt(r, "genreId")
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Invalid genreId parameter")
		return
	}
	year, err := optionalInt(r, "year")
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Invalid year parameter")
		return
	}

	films, err := h.films.MostPopular(r.Context(), count, genreID, year)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, films)
}

func (h *Handler) CommonFilms(w http.ResponseWriter, r *http.Request) {
	userID, err := optionalInt(r, "userId")
	if err != nil || userID == nil {
		h.respondError(w, r, http.StatusBadRequest, "Invalid userId parameter")
		return
	}
	friendID, err := optionalInt(r, "friendId")
	if err != nil || friendID == nil {
		h.respondError(w, r, http.StatusBadRequest, "Invalid friendId parameter")
		return
	}

	films, err := h.films.CommonFilms(r.Context(), *userID, *friendID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, films)
}

func (h *Handler) SearchFilms(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	by := r.URL.Query().Get("by")

	films, err := h.films.Search(r.Context(), query, by)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, films)
}

func (h *Handler) FilmsByDirector(w http.ResponseWriter, r *http.Request) {
	directorID, ok := pathInt(r, "directorId")
	if !ok {
		h.respondError(w, r, http.StatusBadRequest, "Invalid director id")
		return
	}
	sortBy := r.URL.Query().Get("sortBy")

	films, err := h.films.SortedByDirector(r.Context(), directorID, sortBy)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, films)
}
