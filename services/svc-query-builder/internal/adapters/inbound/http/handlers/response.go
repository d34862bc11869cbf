package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Shubhamshah007/nse-query-builder/pkg/circuitbreaker"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/adapters/inbound/http/middleware"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/domain/model"
)

const (
	contentTypeHeader = "Content-Type"
	applicationJSON   = "application/json"

	codeInvalidJSON          = "INVALID_JSON"
	codeInvalidQuery         = "INVALID_QUERY"
	codeUnsupportedOperator  = "UNSUPPORTED_OPERATOR"
	codeUnknownField         = "UNKNOWN_FIELD"
	codeInvalidSort          = "INVALID_SORT"
	codeInvalidFilterValue   = "INVALID_FILTER_VALUE"
	codeInvalidTemplate      = "INVALID_TEMPLATE"
	codeNotFound             = "NOT_FOUND"
	codeConflict             = "CONFLICT"
	codeReadOnly             = "READ_ONLY"
	codeServiceUnavailable   = "SERVICE_UNAVAILABLE"
	codeQueryExecutionFailed = "QUERY_EXECUTION_FAILED"
	codeInternalError        = "INTERNAL_ERROR"

	msgInvalidRequestBody = "invalid request body"
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Errors    []string  `json:"errors,omitempty"`
	RequestID string    `json:"requestId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type errorMapping struct {
	target error
	status int
	code   string
}

// Order matters: circuit errors are checked before datastore errors, and the
// generic invalid-query sentinel comes after the more specific ones.
var errorMappings = []errorMapping{
	{target: model.ErrUnsupportedOperator, status: http.StatusBadRequest, code: codeUnsupportedOperator},
	{target: model.ErrUnknownField, status: http.StatusBadRequest, code: codeUnknownField},
	{target: model.ErrInvalidSort, status: http.StatusBadRequest, code: codeInvalidSort},
	{target: model.ErrInvalidFilterValue, status: http.StatusBadRequest, code: codeInvalidFilterValue},
	{target: model.ErrInvalidTemplate, status: http.StatusBadRequest, code: codeInvalidTemplate},
	{target: model.ErrInvalidQuery, status: http.StatusBadRequest, code: codeInvalidQuery},
	{target: model.ErrTemplateNotFound, status: http.StatusNotFound, code: codeNotFound},
	{target: model.ErrTemplateConflict, status: http.StatusConflict, code: codeConflict},
	{target: model.ErrTemplateStoreReadOnly, status: http.StatusMethodNotAllowed, code: codeReadOnly},
	{target: circuitbreaker.ErrCircuitOpen, status: http.StatusServiceUnavailable, code: codeServiceUnavailable},
	{target: circuitbreaker.ErrTooManyRequests, status: http.StatusServiceUnavailable, code: codeServiceUnavailable},
	{target: model.ErrDatabaseQuery, status: http.StatusInternalServerError, code: codeQueryExecutionFailed},
	{target: model.ErrDatabaseConnection, status: http.StatusInternalServerError, code: codeQueryExecutionFailed},
}

func writeJSONResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set(contentTypeHeader, applicationJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeErrorResponse(w http.ResponseWriter, r *http.Request, status int, code, message string, details ...string) {
	writeJSONResponse(w, status, ErrorResponse{
		Code:      code,
		Message:   message,
		Errors:    details,
		RequestID: middleware.GetRequestID(r.Context()),
		Timestamp: time.Now().UTC(),
	})
}

// writeDomainError maps an error returned by the application layer onto a
// status code and error code.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *model.ValidationError
	if errors.As(err, &validationErr) {
		writeErrorResponse(w, r, http.StatusBadRequest, codeInvalidQuery, err.Error(), validationErr.Errors...)

		return
	}

	status, code := StatusFor(err)
	writeErrorResponse(w, r, status, code, err.Error())
}

// StatusFor returns the HTTP status and error code for err.
func StatusFor(err error) (int, string) {
	for _, mapping := range errorMappings {
		if errors.Is(err, mapping.target) {
			return mapping.status, mapping.code
		}
	}

	return http.StatusInternalServerError, codeInternalError
}

func decodeJSONBody(r *http.Request, target any) error {
	return json.NewDecoder(r.Body).Decode(target)
}
