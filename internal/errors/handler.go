package errors

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"lomacli/internal/infrastructure"
)

// ErrorHandler provides centralized error handling for HTTP handlers
type ErrorHandler struct {
	logger       *slog.Logger
	includeCause bool
}

// NewErrorHandler creates a new error handler. When includeCause is true the
// underlying cause is included in the response details (development only).
func NewErrorHandler(logger *slog.Logger, includeCause bool) *ErrorHandler {
	return &ErrorHandler{
		logger:       logger.With(slog.String("component", "error_handler")),
		includeCause: includeCause,
	}
}

// HandleError converts any error to a structured JSON response and writes it
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	traceID := infrastructure.GetTraceID(r.Context())

	h.logger.ErrorContext(r.Context(), "request failed",
		slog.String("error", err.Error()),
		slog.String("trace_id", traceID),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	)

	apiErr := h.toAPIError(err)
	render.Render(w, r, NewErrorResponse(apiErr))
}

// toAPIError maps application errors to API error responses
func (h *ErrorHandler) toAPIError(err error) *APIError {
	// Context errors map to timeouts
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return New(http.StatusGatewayTimeout, "REQUEST_TIMEOUT", "The request took too long to process")
	}

	// Already an API error
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	// Application errors map by type
	var appErr *AppError
	if errors.As(err, &appErr) {
		var mapped *APIError
		switch appErr.Type {
		case ErrTypeValidation:
			mapped = New(http.StatusBadRequest, "VALIDATION_FAILED", appErr.Message)
		case ErrTypeNotFound:
			mapped = New(http.StatusNotFound, "NOT_FOUND", appErr.Message)
		case ErrTypeStorage, ErrTypeParsing:
			mapped = New(http.StatusServiceUnavailable, "DATASET_UNAVAILABLE", appErr.Message)
		default:
			mapped = New(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", appErr.Message)
		}
		if h.includeCause && appErr.Cause != nil {
			mapped = NewWithDetails(mapped.StatusCode, mapped.ErrorCode, mapped.Message, appErr.Cause.Error())
		}
		return mapped
	}

	// Unknown errors get a generic 500 without leaking internals
	return ErrInternalServer
}
