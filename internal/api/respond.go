package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Klementor/java-filmorate/internal/apperr"
)

func (h *Handler) respondJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			h.logger.ErrorContext(r.Context(), "Failed to encode JSON response", slog.String("error", err.Error()), slog.String("path", r.URL.Path))
		}
	}
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.respondJSON(w, r, status, map[string]string{"error": message})
}

// respondServiceError сопоставляет доменную таксономию ошибок со
// статус-кодами. Внутренние ошибки не раскрывают деталей реализации.
func (h *Handler) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case apperr.IsNotFound(err):
		h.respondError(w, r, http.StatusNotFound, err.Error())
	case apperr.IsInvalidArgument(err):
		h.respondError(w, r, http.StatusBadRequest, err.Error())
	case apperr.IsConflict(err):
		h.respondError(w, r, http.StatusConflict, err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "Internal service error", slog.String("error", err.Error()), slog.String("path", r.URL.Path))
		h.respondError(w, r, http.StatusInternalServerError, "internal error")
	}
}

// pathInt извлекает целочисленный параметр пути.
func pathInt(r *http.Request, name string) (int, bool) {
	value, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil {
		return 0, false
	}
	return value, true
}

// optionalInt извлекает необязательный целочисленный query-параметр.
// nil означает, что параметр не задан; некорректное значение — ошибка.
func optionalInt(r *http.Request, name string) (*int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &value, nil
}
