package response

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/colorkit/coloring-book-api/internal/domain"
)

// ErrorBody is the error payload sent to clients. Causes stay in the logs.
type ErrorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type errorResponse struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
}

// JSON sends a JSON response
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// OK sends a 200 OK response with data
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// Created sends a 201 Created response with data
func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, data)
}

// Error sends an error response with an explicit status and code
func Error(w http.ResponseWriter, status int, code, message string) {
	JSON(w, status, errorResponse{Error: ErrorBody{Code: code, Message: message}})
}

// ValidationFailed sends a 400 with field-level detail
func ValidationFailed(w http.ResponseWriter, message string, fields map[string]string) {
	JSON(w, http.StatusBadRequest, errorResponse{Error: ErrorBody{
		Code:    domain.ErrCodeValidation,
		Message: message,
		Fields:  fields,
	}})
}

// DomainError maps a pipeline error to its HTTP status and payload. Rate
// limit responses carry a Retry-After header in whole seconds.
func DomainError(w http.ResponseWriter, err error) {
	de, ok := domain.AsError(err)
	if !ok {
		log.Error().Err(err).Msg("unclassified error reached the handler")
		Error(w, http.StatusInternalServerError, domain.ErrCodeStorage, "internal server error")
		return
	}

	status := statusFor(de.Code)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("code", de.Code).Msg("request failed")
	}

	if de.Code == domain.ErrCodeRateLimited && de.RetryAfter > 0 {
		seconds := int(de.RetryAfter.Seconds())
		if seconds < 1 {
			seconds = 1
		}
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	JSON(w, status, errorResponse{Error: ErrorBody{
		Code:    de.Code,
		Message: de.Message,
		Fields:  de.Fields,
	}})
}

func statusFor(code string) int {
	switch code {
	case domain.ErrCodeValidation, domain.ErrCodeContentPolicy:
		return http.StatusBadRequest
	case domain.ErrCodeUnauthenticated, domain.ErrCodeInvalidToken:
		return http.StatusUnauthorized
	case domain.ErrCodeNotFound:
		return http.StatusNotFound
	case domain.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case domain.ErrCodeUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
