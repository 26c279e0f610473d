package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/costcache/pkg/binder"
	"github.com/dmitrymomot/costcache/pkg/file"
	"github.com/dmitrymomot/costcache/pkg/logger"
)

// Response is the JSON envelope of every API response.
type Response struct {
	Data  any          `json:"data,omitempty"`
	Meta  any          `json:"meta,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail describes a failed request.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respond(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, Response{Data: data})
}

// classify maps an error to a status code and error code.
// Unknown errors become 500 and their message is not exposed.
func classify(err error) (int, ErrorDetail) {
	var httpErr HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Status, ErrorDetail{Code: httpErr.Key, Message: http.StatusText(httpErr.Status)}
	case errors.Is(err, file.ErrFileNotFound):
		return http.StatusNotFound, ErrorDetail{Code: "file_not_found", Message: err.Error()}
	case errors.Is(err, file.ErrFileExists):
		return http.StatusConflict, ErrorDetail{Code: "file_exists", Message: err.Error()}
	case errors.Is(err, file.ErrInvalidID),
		errors.Is(err, file.ErrInvalidSize),
		errors.Is(err, ErrMissingField):
		return http.StatusUnprocessableEntity, ErrorDetail{Code: "validation_error", Message: err.Error()}
	case errors.Is(err, binder.ErrMissingContentType),
		errors.Is(err, binder.ErrUnsupportedMediaType):
		return http.StatusUnsupportedMediaType, ErrorDetail{Code: "unsupported_media_type", Message: err.Error()}
	case errors.Is(err, binder.ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge, ErrorDetail{Code: "body_too_large", Message: err.Error()}
	case errors.Is(err, binder.ErrInvalidJSON):
		return http.StatusBadRequest, ErrorDetail{Code: "bad_request", Message: err.Error()}
	case errors.Is(err, file.ErrStorageUnavailable),
		errors.Is(err, file.ErrServiceUnavailable),
		errors.Is(err, file.ErrRequestTimeout),
		errors.Is(err, file.ErrOperationTimeout):
		return http.StatusServiceUnavailable, ErrorDetail{Code: "storage_unavailable", Message: "backing storage is unavailable"}
	default:
		return http.StatusInternalServerError, ErrorDetail{Code: "internal_error", Message: "internal server error"}
	}
}

func respondError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	status, detail := classify(err)
	if status >= http.StatusInternalServerError {
		log.ErrorContext(r.Context(), "request failed", logger.Error(err), slog.Int("status", status))
	}
	writeJSON(w, status, Response{Error: &detail})
}
