package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
)

func (h *Handler) readJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "method", r.Method, "path", r.URL.Path, "error", err)
	}
}

func (h *Handler) messageResponse(w http.ResponseWriter, r *http.Request, status int, msg string) {
	h.writeJSON(w, r, status, map[string]string{"message": msg})
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// badRequest renders validation failures as a field-level error list and
// everything else as a plain message.
func (h *Handler) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		h.messageResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	errs := make([]fieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		errs = append(errs, fieldError{
			Field:   fe.Field(),
			Message: fe.Translate(h.translator),
		})
	}

	h.writeJSON(w, r, http.StatusBadRequest, map[string]any{"errors": errs})
}

func (h *Handler) unauthorized(w http.ResponseWriter, r *http.Request) {
	h.messageResponse(w, r, http.StatusUnauthorized, "Unauthorized")
}

func (h *Handler) forbidden(w http.ResponseWriter, r *http.Request) {
	h.messageResponse(w, r, http.StatusForbidden, "Forbidden")
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request, msg string) {
	h.messageResponse(w, r, http.StatusNotFound, msg)
}

func (h *Handler) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("internal server error", "method", r.Method, "path", r.URL.Path, "error", err)
	h.messageResponse(w, r, http.StatusInternalServerError, err.Error())
}
