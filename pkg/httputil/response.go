package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/burhaniassociates/storefront/pkg/errors"
	"github.com/burhaniassociates/storefront/pkg/logger"
)

// Response is the JSON envelope of the storefront API.
type Response struct {
	Data  any            `json:"data,omitempty"`
	Meta  *Meta          `json:"meta,omitempty"`
	Error *ErrorResponse `json:"error,omitempty"`
}

// Meta carries response-level flags. Unavailable is set when the catalog store
// failed and Data is an empty fallback rather than a true empty result.
type Meta struct {
	Unavailable bool `json:"unavailable,omitempty"`
}

// ErrorResponse represents an error in the standard response format.
type ErrorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// WriteJSON writes v as JSON with the given status code. Encoding errors are
// ignored since the headers have already been sent.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteData writes a 200 envelope around data. A degraded result is flagged in
// meta and marked no-store so shared caches do not keep the fallback.
func WriteData(w http.ResponseWriter, data any, unavailable bool) {
	resp := Response{Data: data}
	if unavailable {
		resp.Meta = &Meta{Unavailable: true}
		w.Header().Set("Cache-Control", noStore)
	}
	WriteJSON(w, http.StatusOK, resp)
}

const noStore = "no-store"

// WriteError maps err to a status and error code and writes the envelope.
// Server-side failures are logged with the request-scoped logger when present.
func WriteError(w http.ResponseWriter, r *http.Request, err error, fallback *slog.Logger) {
	writeError(w, r, err, nil, fallback)
}

// WriteErrorMeta is WriteError with a meta block, used when an error response
// also has to report a degraded store.
func WriteErrorMeta(w http.ResponseWriter, r *http.Request, err error, meta *Meta, fallback *slog.Logger) {
	writeError(w, r, err, meta, fallback)
}

func writeError(w http.ResponseWriter, r *http.Request, err error, meta *Meta, fallback *slog.Logger) {
	l := logger.FromContext(r.Context())
	if l == slog.Default() && fallback != nil {
		l = fallback
	}
	requestID := logger.CorrelationIDFromContext(r.Context())

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Status >= http.StatusInternalServerError {
			logServerError(l, r, err)
		}
		w.Header().Set("Cache-Control", noStore)
		WriteJSON(w, appErr.Status, Response{
			Meta:  meta,
			Error: &ErrorResponse{Code: appErr.Code, Message: appErr.Message, RequestID: requestID},
		})
		return
	}

	status := apperrors.HTTPStatus(err)
	code, message := "INTERNAL_ERROR", "an internal error occurred"
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		code, message = "NOT_FOUND", "resource not found"
	case errors.Is(err, apperrors.ErrInvalidInput):
		code, message = "INVALID_INPUT", err.Error()
	case errors.Is(err, apperrors.ErrServiceUnavail):
		code, message = "SERVICE_UNAVAILABLE", "service temporarily unavailable"
	case errors.Is(err, apperrors.ErrRateLimited):
		code, message = "RATE_LIMITED", "too many requests"
	}

	if status >= http.StatusInternalServerError {
		logServerError(l, r, err)
	}

	w.Header().Set("Cache-Control", noStore)
	WriteJSON(w, status, Response{
		Meta:  meta,
		Error: &ErrorResponse{Code: code, Message: message, RequestID: requestID},
	})
}

func logServerError(l *slog.Logger, r *http.Request, err error) {
	l.ErrorContext(r.Context(), "request failed",
		slog.String("error", err.Error()),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	)
}
