package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
)

func RespondJSON(w http.ResponseWriter, logger *slog.Logger, status int, payload any) {
	if payload == nil {
		w.WriteHeader(status)
		return
	}

	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Error encoding response to JSON", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(response)
}

func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, message string) {
	RespondJSON(w, logger, status, map[string]string{"error": message})
}

// RespondValidationError writes 422 with one entry per failed field.
// Returns false if err is not a validator.ValidationErrors.
func RespondValidationError(w http.ResponseWriter, logger *slog.Logger, err error) bool {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return false
	}
	errorMessages := make(map[string]string, len(validationErrors))
	for _, fieldErr := range validationErrors {
		errorMessages[fieldErr.Namespace()] = "failed on rule: " + fieldErr.Tag()
	}
	RespondJSON(w, logger, http.StatusUnprocessableEntity, map[string]any{"validation_errors": errorMessages})
	return true
}

// ParseID extracts a positive integer id from the request path. Returns the ID and a boolean indicating success.
func ParseID(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (int64, bool) {
	pathValueID := r.PathValue("id")
	id, err := strconv.ParseInt(pathValueID, 10, 64)
	if err != nil || id <= 0 {
		RespondError(w, logger, http.StatusBadRequest, fmt.Sprintf("Invalid ID: %s", pathValueID))
		return 0, false
	}
	return id, true
}
