package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Klementor/java-filmorate/internal/domain"
)

func (h *Handler) GetGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.genres.List(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, genres)
}

func (h *Handler) GetGenre(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "genreId")
	if !ok {
		h.respondError(w, r, http.StatusBadRequest, "Invalid genre id")
		return
	}
	genre, err := h.genres.Get(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, genre)
}

func (h *Handler) GetMpaRatings(w http.ResponseWriter, r *http.Request) {
	ratings, err := h.mpa.List(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, ratings)
}

func (h *Handler) GetMpaRating(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "mpaId")
	if !ok {
		h.respondError(w, r, http.StatusBadRequest, "Invalid mpa id")
		return
	}
	mpa, err := h.mpa.Get(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, mpa)
}

func (h *Handler) GetDirectors(w http.ResponseWriter, r *http.Request) {
	directors, err := h.directors.List(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, directors)
}

func (h *Handler) GetDirector(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "directorId")
	if !ok {
		h.respondError(w, r, http.StatusBadRequest, "Invalid director id")
		return
	}
	director, err := h.directors.Get(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, director)
}

func (h *Handler) CreateDirector(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.CreateDirectorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := h.validator.StructCtx(ctx, req); err != nil {
		h.logger.WarnContext(ctx, "Create director request validation failed", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	director, err := h.directors.Create(ctx, req)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusCreated, director)
}

func (h *Handler) UpdateDirector(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.UpdateDirectorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := h.validator.StructCtx(ctx, req); err != nil {
		h.logger.WarnContext(ctx, "Update director request validation failed", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	director, err := h.directors.Update(ctx, req)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, director)
}

func (h *Handler) DeleteDirector(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "directorId")
	if !ok {
		h.respondError(w, r, http.StatusBadRequest, "Invalid director id")
		return
	}
	if err := h.directors.Delete(r.Context(), id); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, nil)
}
