package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aretw0/automata/pkg/domain"
)

// ErrorResponse is the JSON body of every non-2xx answer.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Key     string `json:"key,omitempty"`
	Value   string `json:"value,omitempty"`
}

// Error codes carried in ErrorResponse.Error.
const (
	CodeBadRequest        = "bad_request"
	CodeInvalidDefinition = "invalid_definition"
	CodeInvalidInput      = "invalid_input"
	CodeNotFound          = "not_found"
	CodeUnknownKind       = "unknown_kind"
	CodeKindMismatch      = "kind_mismatch"
	CodeStepLimit         = "step_limit_exceeded"
	CodeInternal          = "internal_error"
)

// statusFor maps a service error to an HTTP status and error code.
func statusFor(err error) (int, string) {
	var reqErr *requestError
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &reqErr), errors.As(err, &maxErr):
		return http.StatusBadRequest, CodeBadRequest
	case errors.Is(err, domain.ErrInvalidDefinition):
		return http.StatusBadRequest, CodeInvalidDefinition
	case errors.Is(err, domain.ErrInputTooLarge), errors.Is(err, domain.ErrInvalidUTF8):
		return http.StatusBadRequest, CodeInvalidInput
	case errors.Is(err, domain.ErrUnknownKind):
		return http.StatusNotFound, CodeUnknownKind
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, domain.ErrKindMismatch):
		return http.StatusConflict, CodeKindMismatch
	case errors.Is(err, domain.ErrStepLimitExceeded):
		return http.StatusUnprocessableEntity, CodeStepLimit
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	status, code := statusFor(err)
	resp := ErrorResponse{Error: code, Message: err.Error()}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		resp.Field = verr.Field
		resp.Key = verr.Key
		resp.Value = verr.Value
	}

	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "err", err)
	} else {
		logger.Debug("request rejected", "status", status, "code", code, "err", err)
	}
	writeJSON(w, logger, status, resp)
}
