package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Klementor/java-filmorate/internal/domain"
	"github.com/Klementor/java-filmorate/internal/service"
)

func (h *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := h.validator.StructCtx(ctx, req); err != nil {
		h.logger.WarnContext(ctx, "Create review request validation failed", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	review, err := h.reviews.Create(ctx, req)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusCreated, review)
}

func (h *Handler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.UpdateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := h.validator.StructCtx(ctx, req); err != nil {
		h.logger.WarnContext(ctx, "Update review request validation failed", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	review, err := h.reviews.Update(ctx, req)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, review)
}

func (h *Handler) GetReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "reviewId")
	if !ok {
		h.respondError(w, r, http.StatusBadRequest, "Invalid review id")
		return
	}
	review, err := h.reviews.Get(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, review)
}

func (h *Handler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "reviewId")
	if !ok {
		h.respondError(w, r, http.StatusBadRequest, "Invalid review id")
		return
	}
	if err := h.reviews.Delete(r.Context(), id); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, nil)
}

func (h *Handler) GetReviews(w http.ResponseWriter, r *http.Request) {
	var filmID int
	if v, err := optionalInt(r, "filmId"); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Invalid filmId parameter")
		return
	} else if v != nil {
		filmID = *v
	}
	count := service.DefaultReviewCount
	if v, err := optionalInt(r, "count"); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Invalid count parameter")
		return
	} else if v != nil {
		count = *v
	}

	reviews, err := h.reviews.ByFilm(r.Context(), filmID, count)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, reviews)
}

// reactToReview — общий обработчик четырёх маршрутов реакций:
// PUT/DELETE лайка и PUT/DELETE дизлайка.
func (h *Handler) reactToReview(w http.ResponseWriter, r *http.Request, kind service.ReactionKind, added bool) {
	reviewID, ok := pathInt(r, "reviewId")
	if !ok {
		h.respondError(w, r, http.StatusBadRequest, "Invalid review id")
		return
	}
	userID, ok := pathInt(r, "userId")
	if !ok {
		h.respondError(w, r, http.StatusBadRequest, "Invalid user id")
		return
	}
	if err := h.reviews.React(r.Context(), reviewID, userID, kind, added); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, nil)
}

func (h *Handler) LikeReview(w http.ResponseWriter, r *http.Request) {
	h.reactToReview(w, r, service.ReactionKindLike, true)
}

func (h *Handler) UnlikeReview(w http.ResponseWriter, r *http.Request) {
	h.reactToReview(w, r, service.ReactionKindLike, false)
}

func (h *Handler) DislikeReview(w http.ResponseWriter, r *http.Request) {
	h.reactToReview(w, r, service.ReactionKindDislike, true)
}

func (h *Handler) UndislikeReview(w http.ResponseWriter, r *http.Request) {
	h.reactToReview(w, r, service.ReactionKindDislike, false)
}
