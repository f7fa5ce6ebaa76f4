package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/xknRiya/cats-api/internal/http/respond"
	"github.com/xknRiya/cats-api/internal/middleware"
)

const internalMessage = "Internal server error"

// normalizer is implemented by every request DTO.
type normalizer interface {
	Normalize() error
}

// decode reads a single JSON object into dst, refusing unknown fields and
// trailing data, then normalizes it. On failure it has already written the
// response and returns false.
func decode(w http.ResponseWriter, r *http.Request, dst normalizer) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		respond.Error(w, http.StatusBadRequest, decodeMessage(err))
		return false
	}
	if dec.Decode(&struct{}{}) != io.EOF {
		respond.Error(w, http.StatusBadRequest, "request body must contain a single JSON object")
		return false
	}
	if err := dst.Normalize(); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func decodeMessage(err error) string {
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return fmt.Sprintf("%s has the wrong type", typeErr.Field)
	case errors.Is(err, io.EOF):
		return "request body is required"
	default:
		// covers syntax errors and `json: unknown field "x"`
		return "invalid JSON payload: " + err.Error()
	}
}

// pathID parses the {id} route parameter. On failure it has already written
// a 400 and returns false.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respond.Error(w, http.StatusBadRequest, "id must be a positive integer")
		return 0, false
	}
	return id, true
}

func internalError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, msg string, err error) {
	logger.ErrorContext(r.Context(), msg, "error", err, "request_id", middleware.RequestIDFromContext(r.Context()))
	respond.Error(w, http.StatusInternalServerError, internalMessage)
}
