package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Klementor/java-filmorate/internal/domain"
)

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := h.validator.StructCtx(ctx, req); err != nil {
		h.logger.WarnContext(ctx, "Create user request validation failed", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	user, err := h.users.Create(ctx, req)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusCreated, user)
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := h.validator.StructCtx(ctx, req); err != nil {
		h.logger.WarnContext(ctx, "Update user request validation failed", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	user, err := h.users.Update(ctx, req)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, user)
}

func (h *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, users)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "userId")
	if !ok {
		h.respondError(w, r, http.StatusBadRequest, "Invalid user id")
		return
	}
	user, err := h.users.Get(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, user)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "userId")
	if !ok {
		h.respondError(w, r, http.StatusBadRequest, "Invalid user id")
		return
	}
	if err := h.users.Delete(r.Context(), id); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, nil)
}

func (h *Handler) AddFriend(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathInt(r, "userId")
	if !ok {
		h.respondError(w, r, http.StatusBadRequest, "Invalid user id")
		return
	}
	friendID, ok := pathInt(r, "friendId")
	if !ok {
		h.respondError(w, r, http.StatusBadRequest, "Invalid friend id")
		return
	}
	if err := h.users.AddFriend(r.Context(), userID, friendID); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, nil)
}

func (h *Handler) RemoveFriend(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathInt(r, "userId")
	if !ok {
		h.respondError(w, r, http.StatusBadRequest, "Invalid user id")
		return
	}
	friendID, ok := pathInt(r, "friendId")
	if !ok {
		h.respondError(w, r, http.StatusBadRequest, "Invalid friend id")
		return
	}
	if err := h.users.RemoveFriend(r.Context(), userID, friendID); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, nil)
}

func (h *Handler) GetFriends(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathInt(r, "userId")
	if !ok {
		h.respondError(w, r, http.StatusBadRequest, "Invalid user id")
		return
	}
	friends, err := h.users.Friends(r.Context(), userID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, friends)
}

func (h *Handler) GetCommonFriends(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathInt(r, "userId")
	if !ok {
		h.respondError(w, r, http.StatusBadRequest, "Invalid user id")
		return
	}
	otherID, ok := pathInt(r, "otherId")
	if !ok {
		h.respondError(w, r, http.StatusBadRequest, "Invalid other user id")
		return
	}
	friends, err := h.users.CommonFriends(r.Context(), userID, otherID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, friends)
}

func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathInt(r, "userId")
	if !ok {
		h.respondError(w, r, http.StatusBadRequest, "Invalid user id")
		return
	}
	films, err := h.users.Recommendations(r.Context(), userID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, films)
}

func (h *Handler) GetFeed(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathInt(r, "userId")
	if !ok {
		h.respondError(w, r, http.StatusBadRequest, "Invalid user id")
		return
	}
	events, err := h.users.Feed(r.Context(), userID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, events)
}
