package ports

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/meeplestats/meeplestats/internal/domain"
	"github.com/meeplestats/meeplestats/internal/logging"
	"github.com/meeplestats/meeplestats/internal/reporting"
	"github.com/meeplestats/meeplestats/internal/validation"
)

type successResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type errorResponse struct {
	Success bool              `json:"success"`
	Cause   string            `json:"cause"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, statusCode int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(body)
}

func writeErrorResponse(ctx context.Context, w http.ResponseWriter, cause string, statusCode int) {
	writeErrorResponseWithFields(ctx, w, cause, nil, statusCode)
}

func writeErrorResponseWithFields(ctx context.Context, w http.ResponseWriter, cause string, fields map[string]string, statusCode int) {
	recordErrorResponse(ctx, cause, statusCode)

	body, err := json.Marshal(errorResponse{Success: false, Cause: cause, Fields: fields})
	if err != nil {
		reporting.Report(ctx, fmt.Errorf("failed to marshal error response: %w", err))
		writeJSON(w, http.StatusInternalServerError, []byte(`{"success":false,"cause":"internal server error"}`))
		return
	}
	writeJSON(w, statusCode, body)
}

func writeSuccessResponse(ctx context.Context, w http.ResponseWriter, data any) {
	body, err := json.Marshal(successResponse{Success: true, Data: data})
	if err != nil {
		reporting.Report(ctx, fmt.Errorf("failed to marshal response: %w", err))
		writeErrorResponse(ctx, w, "internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, body)
}

func writeParamsError(ctx context.Context, w http.ResponseWriter, err error) {
	logging.FromContext(ctx).InfoContext(ctx, "Invalid parameters", "error", err.Error())

	var fieldErrors validation.FieldErrors
	if errors.As(err, &fieldErrors) {
		writeErrorResponseWithFields(ctx, w, "invalid parameters", fieldErrors, http.StatusBadRequest)
		return
	}
	writeErrorResponse(ctx, w, "invalid parameters", http.StatusBadRequest)
}

// writeQueryError maps errors returned by the app queries to a response
func writeQueryError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidYear):
		writeErrorResponse(ctx, w, "invalid year", http.StatusBadRequest)
	case errors.Is(err, domain.ErrInvalidMetric):
		writeErrorResponse(ctx, w, "invalid metric", http.StatusBadRequest)
	case errors.Is(err, domain.ErrInvalidBand):
		writeErrorResponse(ctx, w, "invalid band", http.StatusBadRequest)
	case errors.Is(err, domain.ErrInvalidRankingKind):
		writeErrorResponse(ctx, w, "invalid ranking kind", http.StatusBadRequest)
	case errors.Is(err, domain.ErrSnapshotUnavailable):
		writeErrorResponse(ctx, w, "collection unavailable", http.StatusServiceUnavailable)
	default:
		// NOTE: The app queries handle their own error reporting
		writeErrorResponse(ctx, w, "internal server error", http.StatusInternalServerError)
	}
}
